package analysis

import (
	"context"
	"errors"
	"strings"
	"time"

	"codenote-backend/internal/learning"
	"codenote-backend/internal/shared/errs"
	"codenote-backend/internal/shared/metrics"
	"codenote-backend/internal/shared/telemetry"
)

const defaultBudget = 60 * time.Second

// Service runs analyses under a wall-clock budget.
type Service struct {
	// Requester is nil when no provider credential is configured.
	Requester *Requester
	Budget    time.Duration
}

// NewService constructs a Service.
func NewService(requester *Requester, budget time.Duration) *Service {
	if budget <= 0 {
		budget = defaultBudget
	}
	return &Service{Requester: requester, Budget: budget}
}

type outcome struct {
	content learning.Content
	err     error
}

// Analyze races the requester against the budget. When the budget wins the
// outbound call is cancelled and ErrTimeout is returned, whatever the call
// would have produced.
func (s *Service) Analyze(ctx context.Context, fileName, fileContent string) (learning.Content, error) {
	if strings.TrimSpace(fileName) == "" {
		return learning.Content{}, errs.Validation("fileName is required")
	}
	if fileContent == "" {
		return learning.Content{}, errs.Validation("fileContent is required")
	}
	if s.Requester == nil || s.Requester.Client == nil {
		return learning.Content{}, errs.Config("OpenAI API key is not configured")
	}

	metrics.IncAnalysisStarted()
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, s.Budget)
	defer cancel()

	done := make(chan outcome, 1)
	go func() {
		content, err := s.Requester.Analyze(ctx, fileName, fileContent)
		done <- outcome{content: content, err: err}
	}()

	select {
	case out := <-done:
		if out.err != nil {
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return learning.Content{}, s.timedOut(fileName, ctx.Err())
			}
			metrics.IncAnalysisFailed()
			return learning.Content{}, out.err
		}
		metrics.IncAnalysisCompleted()
		metrics.ObserveAnalysisDurationMs(float64(time.Since(start).Milliseconds()))
		return out.content, nil
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return learning.Content{}, s.timedOut(fileName, ctx.Err())
		}
		metrics.IncAnalysisFailed()
		return learning.Content{}, errs.Analysis("analysis canceled", ctx.Err())
	}
}

func (s *Service) timedOut(fileName string, cause error) error {
	metrics.IncAnalysisTimeout()
	telemetry.Warn("analysis.timeout", map[string]any{
		"file_name": fileName,
		"budget_ms": s.Budget.Milliseconds(),
	})
	return errs.Timeout("analysis timed out", cause)
}
