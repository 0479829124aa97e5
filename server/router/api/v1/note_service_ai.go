package v1

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hrygo/notewise/ai/genai"
	"github.com/hrygo/notewise/ai/notegen"
	"github.com/hrygo/notewise/server/auth"
)

type aiCreateNoteRequest struct {
	Text string `json:"text"`
}

// AICreateNote drafts a Markdown note from freeform text via the
// generation pipeline and stores it for the caller.
func (s *APIV1Service) AICreateNote(c echo.Context) error {
	if s.NoteGenService == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "AI note generation is not configured")
	}

	var req aiCreateNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if req.Text == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "text is required")
	}

	note, err := s.NoteGenService.CreateFromText(c.Request().Context(), auth.UserID(c), req.Text)
	if err != nil {
		return mapPipelineError(err)
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"message": "Note created successfully",
		"note":    convertNoteFromStore(note),
	})
}

// AISummarizeNote generates and stores a summary for one of the caller's
// notes. A run that produces no summary is reported as unsuccessful
// without an error status.
func (s *APIV1Service) AISummarizeNote(c echo.Context) error {
	if s.NoteGenService == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "AI note generation is not configured")
	}

	result, err := s.NoteGenService.SummarizeExisting(c.Request().Context(), auth.UserID(c), c.Param("id"))
	if err != nil {
		return mapPipelineError(err)
	}

	if !result.Summarized {
		return c.JSON(http.StatusOK, map[string]any{
			"success": false,
			"message": "Note not summarized or already summarized",
		})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success":   true,
		"message":   "Note summarized successfully",
		"summarize": result.Summary,
	})
}

type aiGenerateImageRequest struct {
	Prompt string `json:"prompt"`
}

// AIGenerateImage produces an illustration for the description and
// publishes it to object storage, returning the public URL.
func (s *APIV1Service) AIGenerateImage(c echo.Context) error {
	if s.NoteGenService == nil || !s.Profile.IsStorageEnabled() {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "AI image generation is not configured")
	}

	var req aiGenerateImageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}

	image, err := s.NoteGenService.GenerateImage(c.Request().Context(), auth.UserID(c), req.Prompt)
	if err != nil {
		return mapPipelineError(err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"url": image.PublicURL,
		"key": image.Key,
	})
}

// mapPipelineError translates generation pipeline errors to HTTP statuses.
// Provider faults are 503 (retryable), provider rejections 422 (the input
// was refused), and image pipeline failures 502.
func mapPipelineError(err error) *echo.HTTPError {
	var imageErr *notegen.ImageGenerationError

	switch {
	case errors.Is(err, notegen.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "note not found")
	case errors.Is(err, notegen.ErrPromptTooShort):
		return echo.NewHTTPError(http.StatusBadRequest, notegen.ErrPromptTooShort.Error())
	case errors.Is(err, genai.ErrUnavailable):
		return echo.NewHTTPError(http.StatusServiceUnavailable, "generation provider unavailable").SetInternal(err)
	case genai.IsRejected(err):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &imageErr):
		return echo.NewHTTPError(http.StatusBadGateway, imageErr.Error()).SetInternal(err)
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "note generation failed").SetInternal(err)
	}
}
