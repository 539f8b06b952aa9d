package stats

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryStore struct {
	mu       sync.RWMutex
	files    []AnalyzedFile
	attempts []QuizAttempt
}

// NewMemoryStore constructs an in-memory Store.
func NewMemoryStore() *memoryStore {
	return &memoryStore{}
}

func (s *memoryStore) InsertAnalyzedFile(ctx context.Context, f AnalyzedFile) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	f.ID = uuid.NewString()
	f.AnalyzedAt = time.Now().UTC()
	s.files = append(s.files, f)
	return f.ID, nil
}

func (s *memoryStore) InsertQuizAttempt(ctx context.Context, a QuizAttempt) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = uuid.NewString()
	a.CompletedAt = time.Now().UTC()
	s.attempts = append(s.attempts, a)
	return a.ID, nil
}

func (s *memoryStore) CountAnalyzedFiles(ctx context.Context, userID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, f := range s.files {
		if f.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (s *memoryStore) CountCompletedQuizzes(ctx context.Context, userID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, a := range s.attempts {
		if a.UserID == userID && a.Completed {
			n++
		}
	}
	return n, nil
}
