package stats

import (
	"context"

	"codenote-backend/internal/notes"
)

// Store persists file-analysis and quiz-completion events.
type Store interface {
	InsertAnalyzedFile(ctx context.Context, f AnalyzedFile) (string, error)
	InsertQuizAttempt(ctx context.Context, a QuizAttempt) (string, error)
	CountAnalyzedFiles(ctx context.Context, userID string) (int, error)
	CountCompletedQuizzes(ctx context.Context, userID string) (int, error)
}

// NoteReader is the slice of the note repository the aggregate needs.
type NoteReader interface {
	Count(ctx context.Context, userID string) (int, error)
	ListRecent(ctx context.Context, userID string, limit int) ([]notes.Note, error)
}
