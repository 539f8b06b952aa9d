package stats

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"codenote-backend/internal/learning"
	"codenote-backend/internal/notes"
	"codenote-backend/internal/shared/errs"
	"codenote-backend/internal/shared/metrics"
	"codenote-backend/internal/shared/telemetry"
)

const recentNotesLimit = 3

// Service records study events and aggregates per-user stats.
type Service struct {
	Store Store
	Notes NoteReader
}

// NewService constructs a Service.
func NewService(store Store, notes NoteReader) *Service {
	return &Service{Store: store, Notes: notes}
}

// RecordFileAnalysis appends an analyzed-file event. FileType defaults to code.
func (s *Service) RecordFileAnalysis(ctx context.Context, userID string, in FileAnalysisInput) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", errs.Validation("userId is required")
	}
	if strings.TrimSpace(in.FileName) == "" {
		return "", errs.Validation("fileName is required")
	}
	if in.FileType == "" {
		in.FileType = learning.FileTypeCode
	}
	if !in.FileType.Valid() {
		return "", errs.Validation("fileType must be code or markdown")
	}

	id, err := s.Store.InsertAnalyzedFile(ctx, AnalyzedFile{
		UserID:   userID,
		FileName: in.FileName,
		FileType: in.FileType,
		RepoName: in.RepoName,
	})
	if err != nil {
		telemetry.Error("stats.record_file_failed", map[string]any{"user_id": userID, "error": err})
		return "", errs.Storage("failed to record file analysis", err)
	}
	return id, nil
}

// RecordQuizCompletion appends a completed quiz attempt.
func (s *Service) RecordQuizCompletion(ctx context.Context, userID string, in QuizCompletionInput) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", errs.Validation("userId is required")
	}
	if strings.TrimSpace(in.NoteID) == "" {
		return "", errs.Validation("noteId is required")
	}

	id, err := s.Store.InsertQuizAttempt(ctx, QuizAttempt{
		UserID:         userID,
		NoteID:         in.NoteID,
		Score:          in.Score,
		TotalQuestions: in.TotalQuestions,
		Completed:      true,
	})
	if err != nil {
		telemetry.Error("stats.record_quiz_failed", map[string]any{"user_id": userID, "note_id": in.NoteID, "error": err})
		return "", errs.Storage("failed to record quiz completion", err)
	}
	return id, nil
}

// GetUserStats runs the four reads concurrently. A failing count reads as 0;
// a failing recent-notes read fails the whole call.
func (s *Service) GetUserStats(ctx context.Context, userID string) (UserStats, error) {
	if strings.TrimSpace(userID) == "" {
		return UserStats{}, errs.Validation("userId is required")
	}

	var out UserStats
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		out.NotesCount = s.degradedCount(userID, "notes", func() (int, error) {
			return s.Notes.Count(gctx, userID)
		})
		return nil
	})
	g.Go(func() error {
		out.CompletedQuizzesCount = s.degradedCount(userID, "completed_quizzes", func() (int, error) {
			return s.Store.CountCompletedQuizzes(gctx, userID)
		})
		return nil
	})
	g.Go(func() error {
		out.AnalyzedFilesCount = s.degradedCount(userID, "analyzed_files", func() (int, error) {
			return s.Store.CountAnalyzedFiles(gctx, userID)
		})
		return nil
	})
	g.Go(func() error {
		recent, err := s.Notes.ListRecent(gctx, userID, recentNotesLimit)
		if err != nil {
			return err
		}
		out.RecentNotes = recent
		return nil
	})

	if err := g.Wait(); err != nil {
		telemetry.Error("stats.recent_notes_failed", map[string]any{"user_id": userID, "error": err})
		return UserStats{}, errs.Storage("failed to load stats", err)
	}
	if out.RecentNotes == nil {
		out.RecentNotes = []notes.Note{}
	}
	return out, nil
}

func (s *Service) degradedCount(userID, name string, read func() (int, error)) int {
	n, err := read()
	if err != nil {
		metrics.IncStatsCountDegraded()
		telemetry.Warn("stats.count_degraded", map[string]any{"user_id": userID, "count": name, "error": err})
		return 0
	}
	return n
}
