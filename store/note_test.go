package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hrygo/notewise/internal/profile"
	"github.com/hrygo/notewise/store"
	"github.com/hrygo/notewise/store/db/sqlite"
)

func newTestStore(t *testing.T) *store.Store {
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
	return s
}

func TestNoteCRUD(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	created, err := s.CreateNote(ctx, &store.Note{
		CreatorID: "owner-1",
		Title:     "Git & Gitflow Overview",
		Content:   "# Git & Gitflow Overview\n\nBranching basics.",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.NotZero(t, created.CreatedTs)
	require.Nil(t, created.Summary)

	got, err := s.GetNote(ctx, &store.FindNote{ID: &created.ID, CreatorID: &created.CreatorID})
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, created.Title, got.Title)

	summary := "## Summary\n- branching"
	err = s.UpdateNote(ctx, &store.UpdateNote{
		ID:        created.ID,
		CreatorID: created.CreatorID,
		Summary:   &summary,
	})
	require.NoError(t, err)

	got, err = s.GetNote(ctx, &store.FindNote{ID: &created.ID, CreatorID: &created.CreatorID})
	require.NoError(t, err)
	require.NotNil(t, got.Summary)
	require.Equal(t, summary, *got.Summary)

	err = s.DeleteNote(ctx, &store.DeleteNote{ID: created.ID, CreatorID: created.CreatorID})
	require.NoError(t, err)

	got, err = s.GetNote(ctx, &store.FindNote{ID: &created.ID, CreatorID: &created.CreatorID})
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestGetNoteIsOwnerScoped(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	created, err := s.CreateNote(ctx, &store.Note{
		CreatorID: "owner-1",
		Title:     "Private",
		Content:   "secret",
	})
	require.NoError(t, err)

	otherOwner := "owner-2"
	got, err := s.GetNote(ctx, &store.FindNote{ID: &created.ID, CreatorID: &otherOwner})
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestUpdateNoteDoesNotCrossOwners(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	created, err := s.CreateNote(ctx, &store.Note{
		CreatorID: "owner-1",
		Title:     "Original",
		Content:   "body",
	})
	require.NoError(t, err)

	title := "Hijacked"
	err = s.UpdateNote(ctx, &store.UpdateNote{
		ID:        created.ID,
		CreatorID: "owner-2",
		Title:     &title,
	})
	require.NoError(t, err)

	got, err := s.GetNote(ctx, &store.FindNote{ID: &created.ID, CreatorID: &created.CreatorID})
	require.NoError(t, err)
	require.Equal(t, "Original", got.Title)
}

func TestCreateNoteValidation(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.CreateNote(ctx, &store.Note{CreatorID: "owner-1"})
	require.Error(t, err)

	_, err = s.CreateNote(ctx, &store.Note{Title: "No owner"})
	require.Error(t, err)
}
