package notes

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Update when the note does not exist for the user.
var ErrNotFound = errors.New("note not found")

// Repo persists notes under their owner. Every call addresses (userID, noteID).
type Repo interface {
	Create(ctx context.Context, userID string, doc Document) (string, error)
	ListByUser(ctx context.Context, userID string) ([]Note, error)
	ListRecent(ctx context.Context, userID string, limit int) ([]Note, error)
	Count(ctx context.Context, userID string) (int, error)
	// GetByID returns nil, nil when the note is absent.
	GetByID(ctx context.Context, userID, noteID string) (*Note, error)
	Update(ctx context.Context, userID, noteID string, patch Patch) error
	Delete(ctx context.Context, userID, noteID string) error
}
