package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skillbridge/skillbridge/internal/app/models/dto"
	"github.com/skillbridge/skillbridge/internal/pkg/apperrors"
	"github.com/skillbridge/skillbridge/internal/pkg/logger"
)

// HandleAPIError maps application errors onto HTTP responses in the
// standard envelope. Unrecognized errors are logged and reported as 500
// without leaking internals.
func HandleAPIError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrBadRequest),
		errors.Is(err, apperrors.ErrMessageEmpty):
		status = http.StatusBadRequest
		message = err.Error()

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		message = "Invalid email or password"

	case errors.Is(err, apperrors.ErrUnauthenticated),
		errors.Is(err, apperrors.ErrTokenExpired),
		errors.Is(err, apperrors.ErrTokenInvalid):
		status = http.StatusUnauthorized
		message = err.Error()

	case errors.Is(err, apperrors.ErrPermissionDenied):
		status = http.StatusForbidden
		message = err.Error()

	case errors.Is(err, apperrors.ErrResourceNotFound),
		errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrProfileNotFound),
		errors.Is(err, apperrors.ErrRequestNotFound),
		errors.Is(err, apperrors.ErrNotificationNotFound):
		status = http.StatusNotFound
		message = err.Error()

	case errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrEmailAlreadyExists),
		errors.Is(err, apperrors.ErrDuplicatePendingExists),
		errors.Is(err, apperrors.ErrRequestNotPending),
		errors.Is(err, apperrors.ErrNotificationNotActionable):
		status = http.StatusConflict
		message = err.Error()

	case errors.Is(err, apperrors.ErrUnsupportedMediaType),
		errors.Is(err, apperrors.ErrFileTooLarge):
		status = http.StatusUnsupportedMediaType
		message = err.Error()

	default:
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Unhandled API error")
	}

	c.JSON(status, dto.NewErrorResponse(message))
}
