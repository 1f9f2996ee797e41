package middleware

import (
	stderrors "errors"
	"log/slog"

	"github.com/gin-gonic/gin"
	"neon-transcriber/internal/api/errors"
)

// ErrorHandler recovers panics into the standard error body.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		requestID := c.GetString(RequestIDKey)

		var apiErr *errors.APIError
		switch err := recovered.(type) {
		case *errors.APIError:
			apiErr = err
		case error:
			logger.Error("Internal server error",
				"error", err.Error(),
				"request_id", requestID,
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
			)
			apiErr = errors.NewInternalError("Internal server error")
		default:
			logger.Error("Unknown panic occurred",
				"recovered", recovered,
				"request_id", requestID,
			)
			apiErr = errors.NewInternalError("Internal server error")
		}

		apiErr.RequestID = requestID
		c.AbortWithStatusJSON(apiErr.HTTPStatus(), apiErr)
	})
}

// HandleError writes err as a JSON error response and aborts the chain.
// Errors that are not APIErrors are treated as internal.
func HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var apiErr *errors.APIError
	if !stderrors.As(err, &apiErr) {
		apiErr = errors.WrapError(err, errors.KindInternal, "Internal server error")
	}

	apiErr.RequestID = c.GetString(RequestIDKey)
	if apiErr.Cause != nil {
		_ = c.Error(apiErr.Cause)
	}
	c.AbortWithStatusJSON(apiErr.HTTPStatus(), apiErr)
}
