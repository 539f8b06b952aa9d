package health

import (
	"context"
	"database/sql"
	"time"
)

// Service encapsulates health-related checks.
type Service struct {
	DB *sql.DB
}

// NewService constructs a new health service. db may be nil when running on memory repositories.
func NewService(db *sql.DB) *Service {
	return &Service{DB: db}
}

// Status returns the liveness payload.
func (s *Service) Status() map[string]string {
	return map[string]string{"status": "ok"}
}

// Ready pings the document store, if there is one.
func (s *Service) Ready(ctx context.Context) error {
	if s == nil || s.DB == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.DB.PingContext(ctx)
}
