package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/hrygo/notewise/store"
)

func (d *DB) CreateNote(ctx context.Context, create *store.Note) (*store.Note, error) {
	stmt := `
		INSERT INTO note (id, creator_id, title, content, summary, created_ts, updated_ts)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
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
	where, args := []string{"TRUE"}, []any{}

	if find.ID != nil {
		args = append(args, *find.ID)
		where = append(where, fmt.Sprintf("id = $%d", len(args)))
	}
	if find.CreatorID != nil {
		args = append(args, *find.CreatorID)
		where = append(where, fmt.Sprintf("creator_id = $%d", len(args)))
	}

	query := `SELECT id, creator_id, title, content, summary, created_ts, updated_ts
		FROM note
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY updated_ts DESC`

	if find.Limit != nil {
		args = append(args, *find.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if find.Offset != nil {
		args = append(args, *find.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
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
		args = append(args, *update.Title)
		set = append(set, fmt.Sprintf("title = $%d", len(args)))
	}
	if update.Content != nil {
		args = append(args, *update.Content)
		set = append(set, fmt.Sprintf("content = $%d", len(args)))
	}
	if update.Summary != nil {
		args = append(args, *update.Summary)
		set = append(set, fmt.Sprintf("summary = $%d", len(args)))
	}
	if update.UpdatedTs != nil {
		args = append(args, *update.UpdatedTs)
		set = append(set, fmt.Sprintf("updated_ts = $%d", len(args)))
	}
	if len(set) == 0 {
		return errors.New("no fields to update")
	}

	args = append(args, update.ID)
	idArg := len(args)
	args = append(args, update.CreatorID)
	creatorArg := len(args)

	stmt := `UPDATE note SET ` + strings.Join(set, ", ") +
		fmt.Sprintf(` WHERE id = $%d AND creator_id = $%d`, idArg, creatorArg)

	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return errors.Wrap(err, "failed to update note")
	}
	return nil
}

func (d *DB) DeleteNote(ctx context.Context, delete *store.DeleteNote) error {
	stmt := `DELETE FROM note WHERE id = $1 AND creator_id = $2`
	if _, err := d.db.ExecContext(ctx, stmt, delete.ID, delete.CreatorID); err != nil {
		return errors.Wrap(err, "failed to delete note")
	}
	return nil
}
