package notes

import (
	"encoding/json"
	"time"
)

const isoMillis = "2006-01-02T15:04:05.000Z"

// Note is a stored study note as handed back to clients.
type Note struct {
	ID        string
	UserID    string
	Body      Document
	CreatedAt *time.Time
	UpdatedAt *time.Time
}

// MarshalJSON flattens the body next to id, userId and the two timestamps.
// Timestamps are UTC with millisecond precision, or null when unset.
func (n Note) MarshalJSON() ([]byte, error) {
	fields, err := n.Body.rawFields()
	if err != nil {
		return nil, err
	}
	put := func(key string, v any) error {
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		fields[key] = b
		return nil
	}
	if err := put("id", n.ID); err != nil {
		return nil, err
	}
	if err := put("userId", n.UserID); err != nil {
		return nil, err
	}
	if err := put("createdAt", formatTime(n.CreatedAt)); err != nil {
		return nil, err
	}
	if err := put("updatedAt", formatTime(n.UpdatedAt)); err != nil {
		return nil, err
	}
	return json.Marshal(fields)
}

func formatTime(t *time.Time) *string {
	if t == nil || t.IsZero() {
		return nil
	}
	s := t.UTC().Format(isoMillis)
	return &s
}
