// Package v1 hosts the REST API surface.
package v1

import (
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/hrygo/notewise/ai/genai"
	"github.com/hrygo/notewise/ai/metrics"
	"github.com/hrygo/notewise/ai/notegen"
	"github.com/hrygo/notewise/internal/profile"
	"github.com/hrygo/notewise/plugin/markdown"
	"github.com/hrygo/notewise/plugin/storage"
	"github.com/hrygo/notewise/plugin/storage/supabase"
	"github.com/hrygo/notewise/server/auth"
	"github.com/hrygo/notewise/store"
)

type APIV1Service struct {
	Profile *profile.Profile
	Store   *store.Store

	// Shared infra
	MarkdownService markdown.Service
	Exporter        *metrics.Exporter

	// Generation pipeline; nil when the provider is not configured.
	NoteGenService *notegen.Service
}

// NewAPIV1Service wires the API service and, when configured, the
// generation pipeline with its provider gateway and blob publisher.
func NewAPIV1Service(profile *profile.Profile, store *store.Store) *APIV1Service {
	service := &APIV1Service{
		Profile:         profile,
		Store:           store,
		MarkdownService: markdown.NewService(),
		Exporter:        metrics.NewExporter(metrics.Config{}),
	}

	if !profile.IsAIEnabled() {
		slog.Info("AI note generation disabled", "provider", profile.AIProvider)
		return service
	}

	gateway := genai.NewClient(&genai.Config{
		Provider: profile.AIProvider,
		APIKey:   profile.AIAPIKey,
		BaseURL:  profile.AIBaseURL,
		Timeout:  profile.AITimeout,
	})

	var publisher storage.Publisher
	if profile.IsStorageEnabled() {
		publisher = supabase.NewClient(&supabase.Config{
			URL:        profile.StorageURL,
			ServiceKey: profile.StorageServiceKey,
			Bucket:     profile.StorageBucket,
		})
	} else {
		slog.Info("object storage not configured; image generation disabled")
	}

	service.NoteGenService = notegen.NewService(gateway, store, publisher, service.Exporter, notegen.Config{
		TextModel:  profile.AITextModel,
		ImageModel: profile.AIImageModel,
	})
	slog.Info("generation pipeline initialized",
		"provider", profile.AIProvider,
		"text_model", profile.AITextModel,
		"image_model", profile.AIImageModel,
	)

	return service
}

// RegisterRoutes mounts all API routes behind the identity middleware.
func (s *APIV1Service) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1", auth.Middleware())

	g.POST("/notes", s.CreateNote)
	g.GET("/notes", s.ListNotes)
	g.GET("/notes/:id", s.GetNote)
	g.PATCH("/notes/:id", s.UpdateNote)
	g.DELETE("/notes/:id", s.DeleteNote)
	g.GET("/notes/:id/render", s.RenderNote)

	g.POST("/notes/ai/create", s.AICreateNote)
	g.POST("/notes/ai/summarize/:id", s.AISummarizeNote)
	g.POST("/notes/ai/image", s.AIGenerateImage)
}
