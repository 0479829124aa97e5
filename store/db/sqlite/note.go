package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/pkg/errors"

	"github.com/hrygo/notewise/store"
)

func (d *DB) CreateNote(ctx context.Context, create *store.Note) (*store.Note, error) {
	stmt := `
		INSERT INTO note (id, creator_id, title, content, summary, created_ts, updated_ts)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id, creator_id, title, content, summary, created_ts, updated_ts
	`
	var note store.Note
	var summary sql.NullString
	err := d.db.QueryRowContext(ctx, stmt,
		create.ID,
		create.CreatorID,
		create.Title,
		create.Content,
		create.Summary,
		create.CreatedTs,
		create.UpdatedTs,
	).Scan(
		&note.ID,
		&note.CreatorID,
		&note.Title,
		&note.Content,
		&summary,
		&note.CreatedTs,
		&note.UpdatedTs,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create note")
	}
	if summary.Valid {
		note.Summary = &summary.String
	}
	return &note, nil
}

func (d *DB) ListNotes(ctx context.Context, find *store.FindNote) ([]*store.Note, error) {
	where, args := []string{"1 = 1"}, []any{}

	if find.ID != nil {
		where, args = append(where, "id = ?"), append(args, *find.ID)
	}
	if find.CreatorID != nil {
		where, args = append(where, "creator_id = ?"), append(args, *find.CreatorID)
	}

	query := `SELECT id, creator_id, title, content, summary, created_ts, updated_ts
		FROM note
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY updated_ts DESC`

	if find.Limit != nil {
		query += " LIMIT ?"
		args = append(args, *find.Limit)
	}
	if find.Offset != nil {
		query += " OFFSET ?"
		args = append(args, *find.Offset)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list notes")
	}
	defer rows.Close()

	var notes []*store.Note
	for rows.Next() {
		var note store.Note
		var summary sql.NullString
		if err := rows.Scan(
			&note.ID,
			&note.CreatorID,
			&note.Title,
			&note.Content,
			&summary,
			&note.CreatedTs,
			&note.UpdatedTs,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan note")
		}
		if summary.Valid {
			note.Summary = &summary.String
		}
		notes = append(notes, &note)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate notes")
	}
	return notes, nil
}

func (d *DB) UpdateNote(ctx context.Context, update *store.UpdateNote) error {
	set, args := []string{}, []any{}

	if update.Title != nil {
		set, args = append(set, "title = ?"), append(args, *update.Title)
	}
	if update.Content != nil {
		set, args = append(set, "content = ?"), append(args, *update.Content)
	}
	if update.Summary != nil {
		set, args = append(set, "summary = ?"), append(args, *update.Summary)
	}
	if update.UpdatedTs != nil {
		set, args = append(set, "updated_ts = ?"), append(args, *update.UpdatedTs)
	}
	if len(set) == 0 {
		return errors.New("no fields to update")
	}

	stmt := `UPDATE note SET ` + strings.Join(set, ", ") + ` WHERE id = ? AND creator_id = ?`
	args = append(args, update.ID, update.CreatorID)

	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return errors.Wrap(err, "failed to update note")
	}
	return nil
}

func (d *DB) DeleteNote(ctx context.Context, delete *store.DeleteNote) error {
	stmt := `DELETE FROM note WHERE id = ? AND creator_id = ?`
	if _, err := d.db.ExecContext(ctx, stmt, delete.ID, delete.CreatorID); err != nil {
		return errors.Wrap(err, "failed to delete note")
	}
	return nil
}
