package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/okandemir/schoolhub/internal/app/models/dto"
	"github.com/okandemir/schoolhub/internal/pkg/apperrors"
	"github.com/okandemir/schoolhub/internal/pkg/logger"
)

var productionMode bool

// SetProductionMode controls whether unhandled error messages are redacted
func SetProductionMode(enabled bool) {
	productionMode = enabled
}

var notFoundErrors = []error{
	apperrors.ErrResourceNotFound,
	apperrors.ErrUserNotFound,
	apperrors.ErrStudentNotFound,
	apperrors.ErrTeacherNotFound,
	apperrors.ErrParentNotFound,
	apperrors.ErrClassNotFound,
	apperrors.ErrEnrollmentNotFound,
	apperrors.ErrAttendanceNotFound,
	apperrors.ErrGradeNotFound,
	apperrors.ErrExamNotFound,
	apperrors.ErrNotificationNotFound,
}

var conflictErrors = []error{
	apperrors.ErrConflict,
	apperrors.ErrEmailAlreadyExists,
	apperrors.ErrAlreadyEnrolled,
	apperrors.ErrAttendanceExists,
	apperrors.ErrGradeExists,
}

var badRequestErrors = []error{
	apperrors.ErrBadRequest,
	apperrors.ErrValidationFailed,
	apperrors.ErrInvalidRole,
	apperrors.ErrInvalidReference,
}

var unauthorizedErrors = []error{
	apperrors.ErrInvalidCredentials,
	apperrors.ErrTokenExpired,
	apperrors.ErrTokenInvalid,
	apperrors.ErrTokenNotFound,
}

func matchesAny(err error, targets []error) (error, bool) {
	for _, target := range targets {
		if errors.Is(err, target) {
			return target, true
		}
	}
	return nil, false
}

// HandleAPIError maps a service error to one {message} response. Sentinel
// errors carry their own message unless a wrapping CustomError overrides
// it; anything unmatched is a 500, logged here and redacted in production.
func HandleAPIError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := ""

	switch {
	case matches(err, badRequestErrors, &message):
		status = http.StatusBadRequest
	case matches(err, unauthorizedErrors, &message):
		status = http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrPermissionDenied):
		status = http.StatusForbidden
		message = "Permission denied"
	case matches(err, notFoundErrors, &message):
		status = http.StatusNotFound
	case matches(err, conflictErrors, &message):
		status = http.StatusConflict
	default:
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Unhandled error")
		message = err.Error()
		if productionMode {
			message = "Internal server error"
		}
	}

	if custom := apperrors.Message(err); custom != "" && status != http.StatusInternalServerError {
		message = custom
	}

	c.JSON(status, dto.NewMessage(message))
}

func matches(err error, targets []error, message *string) bool {
	target, ok := matchesAny(err, targets)
	if ok {
		*message = capitalize(target.Error())
	}
	return ok
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
