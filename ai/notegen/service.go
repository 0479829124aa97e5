// Package notegen sequences the AI-assisted note ingestion pipelines:
// drafting a note from freeform text, summarizing a stored note, and
// generating an illustration image.
//
// Each run is a sequential pipeline over the provider gateway, the
// extraction/validation layer, the record store, and the blob publisher.
// No stage retries, and nothing is persisted when a stage fails.
package notegen

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hrygo/notewise/ai/genai"
	"github.com/hrygo/notewise/ai/imagery"
	"github.com/hrygo/notewise/ai/mdnorm"
	"github.com/hrygo/notewise/ai/metrics"
	"github.com/hrygo/notewise/ai/prompt"
	"github.com/hrygo/notewise/plugin/storage"
	"github.com/hrygo/notewise/store"
)

// NoteStore is the record-store surface the pipeline writes through.
type NoteStore interface {
	CreateNote(ctx context.Context, create *store.Note) (*store.Note, error)
	GetNote(ctx context.Context, find *store.FindNote) (*store.Note, error)
	UpdateNote(ctx context.Context, update *store.UpdateNote) error
}

// Config holds the model identifiers used per intent.
type Config struct {
	TextModel  string
	ImageModel string
}

// Service runs the three ingestion pipelines.
type Service struct {
	gateway   genai.Generator
	notes     NoteStore
	publisher storage.Publisher
	exporter  *metrics.Exporter
	config    Config
}

// NewService creates the pipeline service. The exporter may be nil.
func NewService(gateway genai.Generator, notes NoteStore, publisher storage.Publisher, exporter *metrics.Exporter, config Config) *Service {
	return &Service{
		gateway:   gateway,
		notes:     notes,
		publisher: publisher,
		exporter:  exporter,
		config:    config,
	}
}

// CreateFromText drafts a Markdown note from freeform user text and
// persists it for the owner. The note title comes from the first H1 of
// the generated Markdown, or the fallback title when absent.
func (s *Service) CreateFromText(ctx context.Context, ownerID, text string) (*store.Note, error) {
	start := time.Now()

	env, err := s.gateway.Generate(ctx, &genai.Request{
		Model:  s.config.TextModel,
		Prompt: prompt.Draft(text),
	})
	if err != nil {
		s.observe(prompt.IntentDraft, outcomeOf(err), start)
		return nil, err
	}

	md := mdnorm.Normalize(env)
	note, err := s.notes.CreateNote(ctx, &store.Note{
		CreatorID: ownerID,
		Title:     md.Title,
		Content:   md.Content,
	})
	if err != nil {
		s.observe(prompt.IntentDraft, "store_error", start)
		return nil, err
	}

	slog.Info("notegen: note drafted", "note_id", note.ID, "title", note.Title, "owner_id", ownerID)
	s.observe(prompt.IntentDraft, "success", start)
	return note, nil
}

// SummarizeResult reports the outcome of a summarize run. A note whose
// generated summary is empty is left untouched and reported as not
// summarized; that is a non-fatal outcome, not an error.
type SummarizeResult struct {
	Summary    string
	Summarized bool
}

// SummarizeExisting generates and stores a summary for one of the owner's
// notes. Returns ErrNotFound when the note is absent or owned by someone
// else.
func (s *Service) SummarizeExisting(ctx context.Context, ownerID, noteID string) (*SummarizeResult, error) {
	start := time.Now()

	note, err := s.notes.GetNote(ctx, &store.FindNote{ID: &noteID, CreatorID: &ownerID})
	if err != nil {
		s.observe(prompt.IntentSummarize, "store_error", start)
		return nil, err
	}
	if note == nil {
		s.observe(prompt.IntentSummarize, "not_found", start)
		return nil, ErrNotFound
	}

	// Nothing to summarize; skip the provider round-trip entirely.
	if strings.TrimSpace(note.Content) == "" {
		s.observe(prompt.IntentSummarize, "not_summarized", start)
		return &SummarizeResult{Summarized: false}, nil
	}

	env, err := s.gateway.Generate(ctx, &genai.Request{
		Model:  s.config.TextModel,
		Prompt: prompt.Summarize(note.Content),
	})
	if err != nil {
		s.observe(prompt.IntentSummarize, outcomeOf(err), start)
		return nil, err
	}

	summary := mdnorm.Text(env)
	if summary == "" {
		s.observe(prompt.IntentSummarize, "not_summarized", start)
		return &SummarizeResult{Summarized: false}, nil
	}

	if err := s.notes.UpdateNote(ctx, &store.UpdateNote{
		ID:        noteID,
		CreatorID: ownerID,
		Summary:   &summary,
	}); err != nil {
		s.observe(prompt.IntentSummarize, "store_error", start)
		return nil, err
	}

	slog.Info("notegen: note summarized", "note_id", noteID, "owner_id", ownerID, "summary_length", len(summary))
	s.observe(prompt.IntentSummarize, "success", start)
	return &SummarizeResult{Summary: summary, Summarized: true}, nil
}

// GeneratedImage is the published result of an image run. The image is not
// recorded in the note store; referencing the URL is the caller's choice.
type GeneratedImage struct {
	Key       string
	PublicURL string
}

// GenerateImage produces an illustration for the description, verifies it
// is a PNG, and publishes it to the object store. Every pipeline failure
// surfaces as an ImageGenerationError carrying the underlying reason.
func (s *Service) GenerateImage(ctx context.Context, ownerID, description string) (*GeneratedImage, error) {
	start := time.Now()

	if utf8.RuneCountInString(strings.TrimSpace(description)) < prompt.IllustratePromptMinLen {
		s.observe(prompt.IntentIllustrate, "invalid_prompt", start)
		return nil, ErrPromptTooShort
	}

	env, err := s.gateway.Generate(ctx, &genai.Request{
		Model:            s.config.ImageModel,
		Prompt:           prompt.Illustrate(description),
		ResponseMIMEType: "image/png",
	})
	if err != nil {
		s.observe(prompt.IntentIllustrate, outcomeOf(err), start)
		return nil, imageFailure(err)
	}

	asset, strategy, err := imagery.Extract(env)
	if err != nil {
		s.observe(prompt.IntentIllustrate, outcomeOf(err), start)
		return nil, imageFailure(err)
	}
	if s.exporter != nil {
		s.exporter.ObserveExtraction(strategy)
	}

	published, err := s.publisher.Publish(ctx, ownerID, asset.Bytes(), asset.MimeType())
	if err != nil {
		s.observe(prompt.IntentIllustrate, "upload_failed", start)
		return nil, imageFailure(err)
	}
	if s.exporter != nil {
		s.exporter.ObserveUpload(len(asset.Bytes()))
	}

	slog.Info("notegen: image published",
		"owner_id", ownerID,
		"key", published.Key,
		"strategy", strategy,
		"size", len(asset.Bytes()),
	)
	s.observe(prompt.IntentIllustrate, "success", start)
	return &GeneratedImage{Key: published.Key, PublicURL: published.PublicURL}, nil
}

func (s *Service) observe(intent prompt.Intent, outcome string, start time.Time) {
	if s.exporter == nil {
		return
	}
	s.exporter.ObserveGeneration(string(intent), outcome, time.Since(start))
}

// outcomeOf maps a pipeline error to its metrics outcome label.
func outcomeOf(err error) string {
	switch {
	case errors.Is(err, genai.ErrUnavailable):
		return "provider_unavailable"
	case genai.IsRejected(err):
		return "provider_rejected"
	case errors.Is(err, imagery.ErrNoImagePayload):
		return "no_image_payload"
	case errors.Is(err, imagery.ErrInvalidFormat):
		return "invalid_image_format"
	default:
		return "error"
	}
}
