package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/timesheet-api/internal/services"
)

func TestFromServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{services.ErrEndNotAfterStart, http.StatusBadRequest, ErrCodeInvalidInput},
		{services.ErrInvalidCredentials, http.StatusUnauthorized, ErrCodeInvalidCredentials},
		{services.ErrOutsideDeclarationHours, http.StatusForbidden, ErrCodePolicyViolation},
		{services.ErrTaskPermissionDenied, http.StatusForbidden, ErrCodeForbidden},
		{services.ErrTaskNotFound, http.StatusNotFound, ErrCodeNotFound},
		{services.ErrDepartmentInUse, http.StatusConflict, ErrCodeConflict},
		{fmt.Errorf("failed to create task: %w", fmt.Errorf("disk full")), http.StatusInternalServerError, ErrCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			FromServiceError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			var body APIError
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
		})
	}
}

func TestFromServiceError_HidesInternalDetails(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	FromServiceError(c, fmt.Errorf("dial tcp 10.0.0.5:5432: connection refused"))

	assert.NotContains(t, w.Body.String(), "10.0.0.5")
	assert.Len(t, c.Errors, 1)
}
