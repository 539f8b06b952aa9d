package analysis

import (
	"github.com/gin-gonic/gin"

	"codenote-backend/internal/shared/server/respond"
)

// Handler exposes the analysis endpoint.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyze", h.analyze)
}

type analyzeRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	FileContent string `json:"fileContent" binding:"required"`
}

func (h *Handler) analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, err)
		return
	}
	c.Set("fileName", req.FileName)

	content, err := h.Svc.Analyze(c.Request.Context(), req.FileName, req.FileContent)
	if err != nil {
		respond.FromError(c, err)
		return
	}
	respond.OK(c, gin.H{"analysis": content})
}
