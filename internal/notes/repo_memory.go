package notes

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]map[string]Note // userId -> noteId -> note
	now  func() time.Time
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string]map[string]Note),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Create stores a new note and returns its id.
func (r *MemoryRepo) Create(ctx context.Context, userID string, doc Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	note := Note{
		ID:        uuid.NewString(),
		UserID:    userID,
		Body:      doc,
		CreatedAt: &now,
		UpdatedAt: &now,
	}
	if r.data[userID] == nil {
		r.data[userID] = make(map[string]Note)
	}
	r.data[userID][note.ID] = note
	return note.ID, nil
}

// ListByUser returns the user's notes, newest first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]Note, error) {
	return r.ListRecent(ctx, userID, 0)
}

// ListRecent returns at most limit notes, newest first. limit <= 0 means all.
func (r *MemoryRepo) ListRecent(ctx context.Context, userID string, limit int) ([]Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]Note, 0, len(r.data[userID]))
	for _, n := range r.data[userID] {
		out = append(out, n)
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(*out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Count returns how many notes the user owns.
func (r *MemoryRepo) Count(ctx context.Context, userID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.data[userID]), nil
}

// GetByID returns the note or nil when absent.
func (r *MemoryRepo) GetByID(ctx context.Context, userID, noteID string) (*Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.data[userID][noteID]
	if !ok {
		return nil, nil
	}
	return &n, nil
}

// Update merges patch into the stored body and refreshes UpdatedAt.
func (r *MemoryRepo) Update(ctx context.Context, userID, noteID string, patch Patch) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.data[userID][noteID]
	if !ok {
		return ErrNotFound
	}
	body, err := patch.Apply(n.Body)
	if err != nil {
		return err
	}
	now := r.now()
	if n.UpdatedAt != nil && now.Before(*n.UpdatedAt) {
		now = *n.UpdatedAt
	}
	n.Body = body
	n.UpdatedAt = &now
	r.data[userID][noteID] = n
	return nil
}

// Delete removes the note. Missing notes are not an error.
func (r *MemoryRepo) Delete(ctx context.Context, userID, noteID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data[userID], noteID)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
