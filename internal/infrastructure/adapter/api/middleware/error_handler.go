package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/amirhossein-jamali/cnab-processor/internal/domain/error"
	coreport "github.com/amirhossein-jamali/cnab-processor/internal/domain/port/core"
	"github.com/amirhossein-jamali/cnab-processor/internal/infrastructure/adapter/api/dto"
)

// ErrorHandler recovers from panics and renders the last error attached with c.Error
// when the handler wrote no response
func ErrorHandler(logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("Panic recovered in API request", map[string]any{
					"error":      err,
					"path":       c.Request.URL.Path,
					"method":     c.Request.Method,
					"client_ip":  c.ClientIP(),
					"request_id": c.GetHeader("X-Request-ID"),
					"user_agent": c.Request.UserAgent(),
				})

				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
					Code:    errs.ErrorCode(errs.ErrInternalServer),
					Message: "Internal server error",
				})
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status := StatusCode(err)
		if status >= http.StatusInternalServerError {
			fields := map[string]any{
				"path":   c.Request.URL.Path,
				"method": c.Request.Method,
				"error":  err.Error(),
			}
			if failure, ok := errs.AsProcessingFailure(err); ok {
				for k, v := range failure.LogFields() {
					fields[k] = v
				}
			}
			logger.Error("Request failed", fields)
		}

		c.JSON(status, ErrorResponse(err, status))
	}
}

// ErrorResponse builds the body for err. Server errors never expose internal messages.
func ErrorResponse(err error, status int) dto.ErrorResponse {
	message := err.Error()
	if failure, ok := errs.AsProcessingFailure(err); ok && failure.Message != "" && status < http.StatusInternalServerError {
		message = failure.Message
	}
	if status >= http.StatusInternalServerError {
		message = http.StatusText(status)
	}

	return dto.ErrorResponse{
		Code:    errs.ErrorCode(err),
		Message: message,
	}
}

// StatusCode maps a domain error to an HTTP status
func StatusCode(err error) int {
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}

	code := errs.ErrorCode(err)
	switch code {
	case errs.CodeFileTooLarge:
		return http.StatusRequestEntityTooLarge
	case errs.CodeFileRejected, errs.CodeInvalidStatusTransition:
		return http.StatusUnprocessableEntity
	case errs.CodeFileNotFound, errs.CodeStoreNotFound, errs.CodeObjectNotFound:
		return http.StatusNotFound
	case errs.CodeFileInFlight, errs.CodeConstraintViolation:
		return http.StatusConflict
	case errs.CodeDatabaseConnection, errs.CodeStorageUnavailable, errs.CodeQueueFull:
		return http.StatusServiceUnavailable
	}

	switch {
	case code >= 4000 && code < 5000:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
