package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Note represents a stored note owned by a single user.
type Note struct {
	ID        string
	CreatorID string
	Title     string
	Content   string
	Summary   *string
	CreatedTs int64
	UpdatedTs int64
}

// FindNote is the find condition for notes.
// CreatorID is mandatory in practice: every lookup is owner-scoped.
type FindNote struct {
	ID        *string
	CreatorID *string
	Limit     *int
	Offset    *int
}

// UpdateNote is the update condition for a note. Nil fields are left untouched.
type UpdateNote struct {
	ID        string
	CreatorID string
	Title     *string
	Content   *string
	Summary   *string
	UpdatedTs *int64
}

// DeleteNote is the delete condition for a note.
type DeleteNote struct {
	ID        string
	CreatorID string
}

// CreateNote inserts a new note, assigning its ID and timestamps.
func (s *Store) CreateNote(ctx context.Context, create *Note) (*Note, error) {
	if create.Title == "" {
		return nil, errors.New("note title is required")
	}
	if create.CreatorID == "" {
		return nil, errors.New("note creator is required")
	}

	if create.ID == "" {
		create.ID = uuid.NewString()
	}
	now := time.Now().Unix()
	create.CreatedTs = now
	create.UpdatedTs = now

	return s.driver.CreateNote(ctx, create)
}

// ListNotes lists notes matching the find condition.
func (s *Store) ListNotes(ctx context.Context, find *FindNote) ([]*Note, error) {
	// Default limit prevents unbounded scans on large note sets.
	if find.Limit == nil {
		defaultLimit := 100
		find.Limit = &defaultLimit
	}
	return s.driver.ListNotes(ctx, find)
}

// GetNote gets a note matching the find condition. Returns nil when absent.
func (s *Store) GetNote(ctx context.Context, find *FindNote) (*Note, error) {
	notes, err := s.ListNotes(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(notes) == 0 {
		return nil, nil
	}
	return notes[0], nil
}

// UpdateNote updates the non-nil fields of a note scoped to its creator.
func (s *Store) UpdateNote(ctx context.Context, update *UpdateNote) error {
	if update.ID == "" || update.CreatorID == "" {
		return errors.New("note id and creator are required")
	}
	if update.UpdatedTs == nil {
		now := time.Now().Unix()
		update.UpdatedTs = &now
	}
	return s.driver.UpdateNote(ctx, update)
}

// DeleteNote deletes a note scoped to its creator.
func (s *Store) DeleteNote(ctx context.Context, delete *DeleteNote) error {
	if delete.ID == "" || delete.CreatorID == "" {
		return errors.New("note id and creator are required")
	}
	return s.driver.DeleteNote(ctx, delete)
}
