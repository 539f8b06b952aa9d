package notes

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"codenote-backend/internal/shared/errs"
	"codenote-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches note routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/note", h.create)
	rg.GET("/note", h.list)
	rg.GET("/note/:id", h.get)
	rg.PUT("/note/:id", h.update)
	rg.DELETE("/note/:id", h.remove)
}

func (h *Handler) create(c *gin.Context) {
	data, err := c.GetRawData()
	if err != nil {
		respond.BindError(c, err)
		return
	}
	userID, err := bodyUserID(data)
	if err != nil {
		respond.FromError(c, err)
		return
	}
	if userID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "userId is required", nil)
		return
	}
	doc, err := DecodeDocument(data)
	if err != nil {
		respond.FromError(c, err)
		return
	}
	if strings.TrimSpace(doc.Title) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "title is required", nil)
		return
	}
	if strings.TrimSpace(doc.FileName) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "fileName is required", nil)
		return
	}

	c.Set("userId", userID)
	id, err := h.Svc.Create(c.Request.Context(), userID, doc)
	if err != nil {
		respond.FromError(c, err)
		return
	}
	c.Set("noteId", id)
	respond.Created(c, id)
}

func (h *Handler) list(c *gin.Context) {
	userID, ok := queryUserID(c)
	if !ok {
		return
	}
	out, err := h.Svc.List(c.Request.Context(), userID)
	if err != nil {
		respond.FromError(c, err)
		return
	}
	respond.OK(c, gin.H{"notes": out})
}

func (h *Handler) get(c *gin.Context) {
	userID, ok := queryUserID(c)
	if !ok {
		return
	}
	noteID := c.Param("id")
	c.Set("noteId", noteID)

	n, err := h.Svc.Get(c.Request.Context(), userID, noteID)
	if err != nil {
		respond.FromError(c, err)
		return
	}
	if n == nil {
		respond.Error(c, http.StatusNotFound, "not_found", "note not found", nil)
		return
	}
	respond.OK(c, gin.H{"note": n})
}

func (h *Handler) update(c *gin.Context) {
	noteID := c.Param("id")
	c.Set("noteId", noteID)

	data, err := c.GetRawData()
	if err != nil {
		respond.BindError(c, err)
		return
	}
	userID, err := bodyUserID(data)
	if err != nil {
		respond.FromError(c, err)
		return
	}
	if userID == "" {
		userID = strings.TrimSpace(c.Query("userId"))
	}
	if userID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "userId is required", nil)
		return
	}
	c.Set("userId", userID)

	patch, err := DecodePatch(data)
	if err != nil {
		respond.FromError(c, err)
		return
	}
	if err := h.Svc.Update(c.Request.Context(), userID, noteID, patch); err != nil {
		respond.FromError(c, err)
		return
	}
	respond.Success(c)
}

func (h *Handler) remove(c *gin.Context) {
	userID, ok := queryUserID(c)
	if !ok {
		return
	}
	noteID := c.Param("id")
	c.Set("noteId", noteID)

	if err := h.Svc.Delete(c.Request.Context(), userID, noteID); err != nil {
		respond.FromError(c, err)
		return
	}
	respond.Success(c)
}

func queryUserID(c *gin.Context) (string, bool) {
	userID := strings.TrimSpace(c.Query("userId"))
	if userID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "userId is required", nil)
		return "", false
	}
	c.Set("userId", userID)
	return userID, true
}

// bodyUserID reads the top-level userId of a JSON object body, "" when absent.
func bodyUserID(data []byte) (string, error) {
	var head struct {
		UserID *json.RawMessage `json:"userId"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return "", errs.Validation("request body must be a JSON object")
	}
	if head.UserID == nil || string(*head.UserID) == "null" {
		return "", nil
	}
	var id string
	if err := json.Unmarshal(*head.UserID, &id); err != nil {
		return "", errs.Validation("userId must be a string")
	}
	return strings.TrimSpace(id), nil
}
