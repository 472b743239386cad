package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okandemir/schoolhub/internal/pkg/apperrors"
)

func respondWith(t *testing.T, err error) (int, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

	HandleAPIError(c, err)

	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return recorder.Code, body.Message
}

func TestHandleAPIErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", apperrors.ErrClassNotFound, http.StatusNotFound},
		{"conflict", apperrors.ErrAttendanceExists, http.StatusConflict},
		{"bad request", apperrors.ErrInvalidReference, http.StatusBadRequest},
		{"invalid role", apperrors.ErrInvalidRole, http.StatusBadRequest},
		{"unauthorized", apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{"forbidden", apperrors.ErrPermissionDenied, http.StatusForbidden},
		{"wrapped sentinel", fmt.Errorf("listing classes: %w", apperrors.ErrClassNotFound), http.StatusNotFound},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, message := respondWith(t, tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.NotEmpty(t, message)
		})
	}
}

func TestHandleAPIErrorMessages(t *testing.T) {
	status, message := respondWith(t, apperrors.ErrClassNotFound)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Class not found", message)

	status, message = respondWith(t, apperrors.ErrPermissionDenied)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Permission denied", message)

	// A CustomError overrides the sentinel's default text.
	status, message = respondWith(t, apperrors.NewForbiddenError("Access denied. Teacher profile not found."))
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Access denied. Teacher profile not found.", message)
}

func TestHandleAPIErrorProductionRedaction(t *testing.T) {
	SetProductionMode(true)
	defer SetProductionMode(false)

	status, message := respondWith(t, errors.New("dial tcp 10.0.0.5:5432: connect: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Internal server error", message)
}
