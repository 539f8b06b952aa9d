package notes

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"codenote-backend/internal/shared/errs"
	"codenote-backend/internal/shared/telemetry"
)

// Service contains business logic for study notes.
type Service struct {
	Repo Repo
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Create stores doc for userID and returns the new note id.
func (s *Service) Create(ctx context.Context, userID string, doc Document) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", errs.Validation("userId is required")
	}
	id, err := s.Repo.Create(ctx, userID, doc)
	if err != nil {
		return "", storageFailure("notes.create", userID, "", err, "failed to save note")
	}
	return id, nil
}

// List returns the user's notes newest first; an empty slice when there are none.
func (s *Service) List(ctx context.Context, userID string) ([]Note, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errs.Validation("userId is required")
	}
	out, err := s.Repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, storageFailure("notes.list", userID, "", err, "failed to load notes")
	}
	if out == nil {
		out = []Note{}
	}
	return out, nil
}

// Get returns the note, or nil when the user has no note with that id.
func (s *Service) Get(ctx context.Context, userID, noteID string) (*Note, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errs.Validation("userId is required")
	}
	noteID, ok := canonicalID(noteID)
	if !ok {
		return nil, nil
	}
	n, err := s.Repo.GetByID(ctx, userID, noteID)
	if err != nil {
		return nil, storageFailure("notes.get", userID, noteID, err, "failed to load note")
	}
	return n, nil
}

// Update merges patch into the stored note.
func (s *Service) Update(ctx context.Context, userID, noteID string, patch Patch) error {
	if strings.TrimSpace(userID) == "" {
		return errs.Validation("userId is required")
	}
	noteID, ok := canonicalID(noteID)
	if !ok {
		return errs.NotFound("note not found")
	}
	if err := s.Repo.Update(ctx, userID, noteID, patch); err != nil {
		if errors.Is(err, ErrNotFound) {
			return errs.NotFound("note not found")
		}
		return storageFailure("notes.update", userID, noteID, err, "failed to update note")
	}
	return nil
}

// Delete removes the note; deleting a missing note succeeds.
func (s *Service) Delete(ctx context.Context, userID, noteID string) error {
	if strings.TrimSpace(userID) == "" {
		return errs.Validation("userId is required")
	}
	noteID, ok := canonicalID(noteID)
	if !ok {
		return nil
	}
	if err := s.Repo.Delete(ctx, userID, noteID); err != nil {
		return storageFailure("notes.delete", userID, noteID, err, "failed to delete note")
	}
	return nil
}

// canonicalID returns the lower-case dashed form of a UUID note id.
// Ids are store-assigned UUIDs; anything else cannot address a note.
func canonicalID(id string) (string, bool) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return u.String(), true
}

func storageFailure(op, userID, noteID string, cause error, message string) error {
	fields := map[string]any{"op": op, "user_id": userID, "error": cause}
	if noteID != "" {
		fields["note_id"] = noteID
	}
	telemetry.Error("notes.storage_failed", fields)
	return errs.Storage(message, cause)
}
