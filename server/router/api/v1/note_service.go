package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hrygo/notewise/server/auth"
	"github.com/hrygo/notewise/store"
)

// Note is the API representation of a stored note.
type Note struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	Summary   *string `json:"summary,omitempty"`
	CreatedTs int64   `json:"createdTs"`
	UpdatedTs int64   `json:"updatedTs"`
}

func convertNoteFromStore(note *store.Note) *Note {
	return &Note{
		ID:        note.ID,
		Title:     note.Title,
		Content:   note.Content,
		Summary:   note.Summary,
		CreatedTs: note.CreatedTs,
		UpdatedTs: note.UpdatedTs,
	}
}

type createNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (s *APIV1Service) CreateNote(c echo.Context) error {
	var req createNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if req.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}

	note, err := s.Store.CreateNote(c.Request().Context(), &store.Note{
		CreatorID: auth.UserID(c),
		Title:     req.Title,
		Content:   req.Content,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create note").SetInternal(err)
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"message": "Note created successfully",
		"note":    convertNoteFromStore(note),
	})
}

func (s *APIV1Service) ListNotes(c echo.Context) error {
	userID := auth.UserID(c)
	notes, err := s.Store.ListNotes(c.Request().Context(), &store.FindNote{CreatorID: &userID})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list notes").SetInternal(err)
	}

	converted := make([]*Note, 0, len(notes))
	for _, note := range notes {
		converted = append(converted, convertNoteFromStore(note))
	}
	return c.JSON(http.StatusOK, map[string]any{"notes": converted})
}

// fetchOwnedNote loads the note for the current user or returns a 404.
func (s *APIV1Service) fetchOwnedNote(c echo.Context) (*store.Note, error) {
	noteID := c.Param("id")
	userID := auth.UserID(c)
	note, err := s.Store.GetNote(c.Request().Context(), &store.FindNote{ID: &noteID, CreatorID: &userID})
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "failed to get note").SetInternal(err)
	}
	if note == nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "note not found")
	}
	return note, nil
}

func (s *APIV1Service) GetNote(c echo.Context) error {
	note, err := s.fetchOwnedNote(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"note": convertNoteFromStore(note)})
}

type updateNoteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

func (s *APIV1Service) UpdateNote(c echo.Context) error {
	var req updateNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if req.Title == nil && req.Content == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "nothing to update")
	}

	note, err := s.fetchOwnedNote(c)
	if err != nil {
		return err
	}

	if err := s.Store.UpdateNote(c.Request().Context(), &store.UpdateNote{
		ID:        note.ID,
		CreatorID: note.CreatorID,
		Title:     req.Title,
		Content:   req.Content,
	}); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update note").SetInternal(err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "Note updated successfully",
	})
}

func (s *APIV1Service) DeleteNote(c echo.Context) error {
	note, err := s.fetchOwnedNote(c)
	if err != nil {
		return err
	}

	if err := s.Store.DeleteNote(c.Request().Context(), &store.DeleteNote{
		ID:        note.ID,
		CreatorID: note.CreatorID,
	}); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete note").SetInternal(err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "Note deleted successfully",
	})
}

// RenderNote returns the note content rendered to HTML.
func (s *APIV1Service) RenderNote(c echo.Context) error {
	note, err := s.fetchOwnedNote(c)
	if err != nil {
		return err
	}

	html, err := s.MarkdownService.RenderHTML([]byte(note.Content))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to render note").SetInternal(err)
	}
	return c.HTML(http.StatusOK, html)
}
