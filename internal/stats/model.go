package stats

import (
	"time"

	"codenote-backend/internal/learning"
	"codenote-backend/internal/notes"
)

// AnalyzedFile records one analysis run. Append-only.
type AnalyzedFile struct {
	ID         string
	UserID     string
	FileName   string
	FileType   learning.FileType
	RepoName   string
	AnalyzedAt time.Time
}

// QuizAttempt records one finished quiz. Append-only; Completed is always true.
type QuizAttempt struct {
	ID             string
	UserID         string
	NoteID         string
	Score          int
	TotalQuestions int
	Completed      bool
	CompletedAt    time.Time
}

// FileAnalysisInput is the client payload for RecordFileAnalysis.
type FileAnalysisInput struct {
	FileName string
	FileType learning.FileType
	RepoName string
}

// QuizCompletionInput is the client payload for RecordQuizCompletion.
type QuizCompletionInput struct {
	NoteID         string
	Score          int
	TotalQuestions int
}

// UserStats is computed on every read.
type UserStats struct {
	NotesCount            int          `json:"notesCount"`
	CompletedQuizzesCount int          `json:"completedQuizzesCount"`
	AnalyzedFilesCount    int          `json:"analyzedFilesCount"`
	RecentNotes           []notes.Note `json:"recentNotes"`
}
