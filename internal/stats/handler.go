package stats

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"codenote-backend/internal/learning"
	"codenote-backend/internal/shared/server/respond"
)

// Handler exposes stats endpoints.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches stats routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/stats/file-analysis", h.recordFileAnalysis)
	rg.POST("/stats/quiz-completion", h.recordQuizCompletion)
	rg.GET("/stats", h.getStats)
}

type fileAnalysisRequest struct {
	UserID   string `json:"userId" binding:"required"`
	FileName string `json:"fileName" binding:"required"`
	FileType string `json:"fileType"`
	RepoName string `json:"repoName"`
}

func (h *Handler) recordFileAnalysis(c *gin.Context) {
	var req fileAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, err)
		return
	}
	c.Set("userId", req.UserID)

	id, err := h.Svc.RecordFileAnalysis(c.Request.Context(), req.UserID, FileAnalysisInput{
		FileName: req.FileName,
		FileType: learning.FileType(strings.TrimSpace(req.FileType)),
		RepoName: req.RepoName,
	})
	if err != nil {
		respond.FromError(c, err)
		return
	}
	respond.Created(c, id)
}

type quizCompletionRequest struct {
	UserID         string `json:"userId" binding:"required"`
	NoteID         string `json:"noteId" binding:"required"`
	Score          *int   `json:"score" binding:"required"`
	TotalQuestions *int   `json:"totalQuestions" binding:"required"`
}

func (h *Handler) recordQuizCompletion(c *gin.Context) {
	var req quizCompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, err)
		return
	}
	c.Set("userId", req.UserID)

	id, err := h.Svc.RecordQuizCompletion(c.Request.Context(), req.UserID, QuizCompletionInput{
		NoteID:         req.NoteID,
		Score:          *req.Score,
		TotalQuestions: *req.TotalQuestions,
	})
	if err != nil {
		respond.FromError(c, err)
		return
	}
	respond.Created(c, id)
}

func (h *Handler) getStats(c *gin.Context) {
	userID := strings.TrimSpace(c.Query("userId"))
	if userID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "userId is required", nil)
		return
	}
	c.Set("userId", userID)

	out, err := h.Svc.GetUserStats(c.Request.Context(), userID)
	if err != nil {
		respond.FromError(c, err)
		return
	}
	respond.OK(c, gin.H{"stats": out})
}
