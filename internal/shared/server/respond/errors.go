package respond

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"codenote-backend/internal/shared/errs"
	"codenote-backend/internal/shared/telemetry"
)

// ErrorBody defines the standardized error object.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse wraps the error body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Error sends a standardized error response.
func Error(c *gin.Context, status int, code, message string, details interface{}) {
	fields := map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if userID := c.GetString("userId"); userID != "" {
		fields["user_id"] = userID
	}
	if status >= http.StatusInternalServerError {
		telemetry.Error("http.error", fields)
	} else {
		telemetry.Warn("http.error", fields)
	}

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// FromError maps an errs kind onto its status code and writes the client-safe message.
func FromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrValidation):
		Error(c, http.StatusBadRequest, "validation_error", errs.Message(err, "invalid request"), nil)
	case errors.Is(err, errs.ErrNotFound):
		Error(c, http.StatusNotFound, "not_found", errs.Message(err, "not found"), nil)
	case errors.Is(err, errs.ErrTimeout):
		Error(c, http.StatusGatewayTimeout, "analysis_timeout", errs.Message(err, "analysis timed out"), nil)
	case errors.Is(err, errs.ErrConfig):
		Error(c, http.StatusInternalServerError, "config_error", errs.Message(err, "server is not configured"), nil)
	case errors.Is(err, errs.ErrAnalysis):
		Error(c, http.StatusInternalServerError, "analysis_error", errs.Message(err, "analysis failed"), nil)
	case errors.Is(err, errs.ErrStorage):
		Error(c, http.StatusInternalServerError, "storage_error", errs.Message(err, "storage failure"), nil)
	default:
		Error(c, http.StatusInternalServerError, "internal_error", "internal server error", nil)
	}
}

// BindError answers a failed body read or ShouldBindJSON: 413 past the body limit, 400 otherwise.
func BindError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		Error(c, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large", nil)
		return
	}
	Error(c, http.StatusBadRequest, "validation_error", ValidationMessage(err), nil)
}

// ValidationMessage turns binding failures into "<field> is required" style messages.
func ValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if fe.Tag() == "required" {
			return fe.Field() + " is required"
		}
		return fe.Field() + " is invalid"
	}
	return "invalid request body"
}

var fieldNamesOnce sync.Once

// UseJSONFieldNames makes validator report json tag names instead of Go field names.
func UseJSONFieldNames() {
	fieldNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
	})
}
