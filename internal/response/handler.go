package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atriumlabs/atrium/backend/internal/apperror"
)

// responseHandler implements the Handler interface
type responseHandler struct {
	logger Logger
}

// NewHandler creates a new instance of Handler
func NewHandler(logger Logger) Handler {
	return &responseHandler{
		logger: logger,
	}
}

// SuccessResponse sends a success envelope with optional data and message
func (h *responseHandler) SuccessResponse(c *gin.Context, data interface{}, message string) {
	envelope := Success(data, message)
	c.JSON(envelope.Code, envelope)
}

// PageResponse sends a paginated success envelope. Invalid pagination
// input is rendered as a validation error.
func (h *responseHandler) PageResponse(c *gin.Context, items interface{}, total int64, page, size int) {
	envelope, err := Page(items, total, page, size)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(envelope.Code, envelope)
}

// ErrorResponse sends an error envelope. The transport status code
// always equals the envelope code.
func (h *responseHandler) ErrorResponse(c *gin.Context, code int, message, detail string) {
	envelope := Error(code, message, detail)
	c.JSON(envelope.Code, envelope)
}

// HandleError is the single boundary where errors become envelopes.
// Domain errors resolve through the apperror status table; anything
// else degrades to a generic 500 with no internal detail leaked.
func (h *responseHandler) HandleError(c *gin.Context, err error) {
	code, message := apperror.Map(err)

	detail := ""
	if appErr, ok := apperror.As(err); ok {
		detail = appErr.Detail
		if appErr.Cause != nil {
			h.logger.LogError(appErr.Cause, message)
		}
	}

	if code >= http.StatusInternalServerError {
		h.logger.LogError(err, "Unhandled error processing request")
	} else {
		h.logger.LogWarn("Request failed", map[string]interface{}{
			"status": code,
			"error":  err.Error(),
			"path":   c.Request.URL.Path,
		})
	}

	h.ErrorResponse(c, code, message, detail)
}
