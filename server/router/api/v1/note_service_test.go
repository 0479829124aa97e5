package v1_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/notewise/ai/genai"
	"github.com/hrygo/notewise/ai/notegen"
	"github.com/hrygo/notewise/internal/profile"
	"github.com/hrygo/notewise/server/auth"
	v1 "github.com/hrygo/notewise/server/router/api/v1"
	"github.com/hrygo/notewise/store"
	"github.com/hrygo/notewise/store/db/sqlite"
)

type fakeGateway struct {
	envelope *genai.Envelope
	err      error
	calls    int
}

func (f *fakeGateway) Generate(_ context.Context, _ *genai.Request) (*genai.Envelope, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.envelope, nil
}

type testHarness struct {
	e       *echo.Echo
	store   *store.Store
	gateway *fakeGateway
}

func newHarness(t *testing.T) *testHarness {
	t.Helper()
	p := &profile.Profile{
		Mode:   "dev",
		Driver: "sqlite",
		DSN:    t.TempDir() + "/notewise_test.db",
	}
	driver, err := sqlite.NewDB(p)
	require.NoError(t, err)
	t.Cleanup(func() { _ = driver.Close() })

	s := store.New(driver, p)
	require.NoError(t, s.Migrate(context.Background()))

	gateway := &fakeGateway{}
	service := v1.NewAPIV1Service(p, s)
	service.NoteGenService = notegen.NewService(gateway, s, nil, nil, notegen.Config{
		TextModel: "test-model",
	})

	e := echo.New()
	service.RegisterRoutes(e)
	return &testHarness{e: e, store: s, gateway: gateway}
}

func (h *testHarness) do(method, target, userID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if userID != "" {
		req.Header.Set(auth.UserIDHeader, userID)
	}
	rec := httptest.NewRecorder()
	h.e.ServeHTTP(rec, req)
	return rec
}

func TestMissingIdentityRejected(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodGet, "/api/v1/notes", "", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestNoteLifecycle(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodPost, "/api/v1/notes", "owner-1", `{"title":"Meeting notes","content":"# Meeting notes\n\nAgenda."}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Note v1.Note `json:"note"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.Note.ID)
	require.Equal(t, "Meeting notes", created.Note.Title)

	rec = h.do(http.MethodGet, "/api/v1/notes", "owner-1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var listed struct {
		Notes []v1.Note `json:"notes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed.Notes, 1)

	rec = h.do(http.MethodPatch, "/api/v1/notes/"+created.Note.ID, "owner-1", `{"content":"updated"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = h.do(http.MethodDelete, "/api/v1/notes/"+created.Note.ID, "owner-1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = h.do(http.MethodGet, "/api/v1/notes/"+created.Note.ID, "owner-1", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNotesAreOwnerScoped(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodPost, "/api/v1/notes", "owner-1", `{"title":"Private"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		Note v1.Note `json:"note"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = h.do(http.MethodGet, "/api/v1/notes/"+created.Note.ID, "owner-2", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = h.do(http.MethodGet, "/api/v1/notes", "owner-2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var listed struct {
		Notes []v1.Note `json:"notes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Empty(t, listed.Notes)
}

func TestRenderNote(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodPost, "/api/v1/notes", "owner-1", `{"title":"Doc","content":"# Doc\n\n**bold**"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		Note v1.Note `json:"note"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = h.do(http.MethodGet, "/api/v1/notes/"+created.Note.ID+"/render", "owner-1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "<strong>bold</strong>")
}

func TestAICreateNote(t *testing.T) {
	h := newHarness(t)
	h.gateway.envelope = &genai.Envelope{Text: "# Brainstorm\n\nIdeas about caching."}

	rec := h.do(http.MethodPost, "/api/v1/notes/ai/create", "owner-1", `{"text":"thoughts about caching"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Note v1.Note `json:"note"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Equal(t, "Brainstorm", created.Note.Title)
}

func TestAICreateNoteProviderUnavailable(t *testing.T) {
	h := newHarness(t)
	h.gateway.err = genai.ErrUnavailable

	rec := h.do(http.MethodPost, "/api/v1/notes/ai/create", "owner-1", `{"text":"anything"}`)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAICreateNoteProviderRejected(t *testing.T) {
	h := newHarness(t)
	h.gateway.err = &genai.RejectedError{Status: "RESOURCE_EXHAUSTED", Message: "quota exceeded", Code: 429}

	rec := h.do(http.MethodPost, "/api/v1/notes/ai/create", "owner-1", `{"text":"anything"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestAISummarizeNote(t *testing.T) {
	h := newHarness(t)
	h.gateway.envelope = &genai.Envelope{Text: "## Summary\n- point one\n- point two"}

	rec := h.do(http.MethodPost, "/api/v1/notes", "owner-1", `{"title":"Long","content":"Lots of content here."}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		Note v1.Note `json:"note"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = h.do(http.MethodPost, "/api/v1/notes/ai/summarize/"+created.Note.ID, "owner-1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var result struct {
		Success   bool   `json:"success"`
		Summarize string `json:"summarize"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.True(t, result.Success)
	require.Equal(t, "## Summary\n- point one\n- point two", result.Summarize)
}

func TestAISummarizeEmptyNoteSkipsProvider(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodPost, "/api/v1/notes", "owner-1", `{"title":"Empty"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		Note v1.Note `json:"note"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = h.do(http.MethodPost, "/api/v1/notes/ai/summarize/"+created.Note.ID, "owner-1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var result struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.False(t, result.Success)
	require.Equal(t, "Note not summarized or already summarized", result.Message)
	require.Zero(t, h.gateway.calls)
}

func TestAISummarizeUnknownNote(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodPost, "/api/v1/notes/ai/summarize/missing-id", "owner-1", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAIGenerateImageWithoutStorage(t *testing.T) {
	h := newHarness(t)

	// Storage is not configured in the harness profile.
	rec := h.do(http.MethodPost, "/api/v1/notes/ai/image", "owner-1", `{"prompt":"a lighthouse at dusk"}`)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
