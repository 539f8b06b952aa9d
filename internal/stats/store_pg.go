package stats

import (
	"context"
	"database/sql"
)

type pgStore struct {
	DB *sql.DB
}

// NewPGStore constructs a Postgres-backed Store.
func NewPGStore(db *sql.DB) *pgStore {
	return &pgStore{DB: db}
}

func (s *pgStore) InsertAnalyzedFile(ctx context.Context, f AnalyzedFile) (string, error) {
	const query = `
INSERT INTO analyzed_files (user_id, file_name, file_type, repo_name)
VALUES ($1, $2, $3, $4)
RETURNING id`
	var id string
	err := s.DB.QueryRowContext(ctx, query, f.UserID, f.FileName, string(f.FileType), f.RepoName).Scan(&id)
	return id, err
}

func (s *pgStore) InsertQuizAttempt(ctx context.Context, a QuizAttempt) (string, error) {
	const query = `
INSERT INTO quiz_attempts (user_id, note_id, score, total_questions, completed)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`
	var id string
	err := s.DB.QueryRowContext(ctx, query, a.UserID, a.NoteID, a.Score, a.TotalQuestions, a.Completed).Scan(&id)
	return id, err
}

func (s *pgStore) CountAnalyzedFiles(ctx context.Context, userID string) (int, error) {
	var n int
	err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM analyzed_files WHERE user_id = $1`, userID).Scan(&n)
	return n, err
}

func (s *pgStore) CountCompletedQuizzes(ctx context.Context, userID string) (int, error) {
	var n int
	err := s.DB.QueryRowContext(ctx, `
SELECT COUNT(*) FROM quiz_attempts
WHERE user_id = $1 AND completed = TRUE`, userID).Scan(&n)
	return n, err
}
