package notes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

// PGRepo implements Repo on the study_notes table, one JSONB body per note.
type PGRepo struct {
	DB *sql.DB
}

const noteColumns = `id, user_id, body, created_at, updated_at`

// Create inserts a note; id and both timestamps come from the database.
func (r *PGRepo) Create(ctx context.Context, userID string, doc Document) (string, error) {
	const query = `
INSERT INTO study_notes (user_id, body)
VALUES ($1, $2::jsonb)
RETURNING id`

	body, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	var id string
	if err := r.DB.QueryRowContext(ctx, query, userID, string(body)).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

// ListByUser lists the user's notes ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Note, error) {
	const query = `
SELECT ` + noteColumns + `
FROM study_notes
WHERE user_id = $1
ORDER BY created_at DESC`
	return r.queryNotes(ctx, query, userID)
}

// ListRecent lists at most limit notes ordered newest-first.
func (r *PGRepo) ListRecent(ctx context.Context, userID string, limit int) ([]Note, error) {
	if limit <= 0 {
		return r.ListByUser(ctx, userID)
	}
	const query = `
SELECT ` + noteColumns + `
FROM study_notes
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2`
	return r.queryNotes(ctx, query, userID, limit)
}

// Count returns the number of notes the user owns.
func (r *PGRepo) Count(ctx context.Context, userID string) (int, error) {
	const query = `SELECT COUNT(*) FROM study_notes WHERE user_id = $1`
	var n int
	if err := r.DB.QueryRowContext(ctx, query, userID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// GetByID fetches one note; nil when absent.
func (r *PGRepo) GetByID(ctx context.Context, userID, noteID string) (*Note, error) {
	const query = `
SELECT ` + noteColumns + `
FROM study_notes
WHERE user_id = $1 AND id = $2`
	note, err := scanNote(r.DB.QueryRowContext(ctx, query, userID, noteID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &note, nil
}

// Update merges patch into the stored body at the top level. updated_at never moves backwards.
func (r *PGRepo) Update(ctx context.Context, userID, noteID string, patch Patch) error {
	const query = `
UPDATE study_notes
SET body = body || $3::jsonb,
    updated_at = GREATEST(now(), updated_at)
WHERE user_id = $1 AND id = $2`

	payload, err := json.Marshal(patch)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, query, userID, noteID, string(payload))
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the note unconditionally.
func (r *PGRepo) Delete(ctx context.Context, userID, noteID string) error {
	const query = `DELETE FROM study_notes WHERE user_id = $1 AND id = $2`
	_, err := r.DB.ExecContext(ctx, query, userID, noteID)
	return err
}

func (r *PGRepo) queryNotes(ctx context.Context, query string, args ...any) ([]Note, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Note{}
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, note)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (Note, error) {
	var (
		note      Note
		body      []byte
		createdAt sql.NullTime
		updatedAt sql.NullTime
	)
	if err := row.Scan(&note.ID, &note.UserID, &body, &createdAt, &updatedAt); err != nil {
		return Note{}, err
	}
	if err := json.Unmarshal(body, &note.Body); err != nil {
		return Note{}, err
	}
	if createdAt.Valid {
		t := createdAt.Time
		note.CreatedAt = &t
	}
	if updatedAt.Valid {
		t := updatedAt.Time
		note.UpdatedAt = &t
	}
	return note, nil
}

var _ Repo = (*PGRepo)(nil)
