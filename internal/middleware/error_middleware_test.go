package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/placement/internal/app/auth"
	"github.com/yigit/placement/internal/app/models/dto"
	"github.com/yigit/placement/internal/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func runHandleAPIError(t *testing.T, err error) (int, dto.ErrorResponse) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleAPIError(c, err)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    dto.ErrorCode
		message string
	}{
		{
			name:    "permission denial",
			err:     &auth.DenialError{Reason: auth.ReasonPermissionDenied, Message: "You do not have permission to perform this action"},
			status:  http.StatusBadRequest,
			code:    dto.ErrorCodeForbidden,
			message: "You do not have permission to perform this action",
		},
		{
			name:    "self action",
			err:     &auth.DenialError{Reason: auth.ReasonSelfActionForbidden, Message: "You cannot change your own role"},
			status:  http.StatusBadRequest,
			code:    dto.ErrorCodeSelfAction,
			message: "You cannot change your own role",
		},
		{
			name:    "invalid identifier",
			err:     &auth.DenialError{Reason: auth.ReasonInvalidIdentifier, Message: "Invalid user ID"},
			status:  http.StatusBadRequest,
			code:    dto.ErrorCodeInvalidInput,
			message: "Invalid user ID",
		},
		{
			name:    "wrapped user not found",
			err:     fmt.Errorf("lookup: %w", apperrors.NewCustomError(apperrors.ErrUserNotFound, "User not found")),
			status:  http.StatusNotFound,
			code:    dto.ErrorCodeResourceNotFound,
			message: "User not found",
		},
		{
			name:    "no users",
			err:     apperrors.NewCustomError(apperrors.ErrNoUsersFound, "No users found"),
			status:  http.StatusNotFound,
			code:    dto.ErrorCodeResourceNotFound,
			message: "No users found",
		},
		{
			name:    "bad credentials",
			err:     apperrors.ErrInvalidCredentials,
			status:  http.StatusUnauthorized,
			code:    dto.ErrorCodeInvalidCredentials,
			message: "Invalid credentials",
		},
		{
			name:    "duplicate company",
			err:     apperrors.ErrCompanyAlreadyExists,
			status:  http.StatusConflict,
			code:    dto.ErrorCodeResourceAlreadyExists,
			message: "Company with this name already exists",
		},
		{
			name:    "unknown",
			err:     errors.New("pq: relation users does not exist"),
			status:  http.StatusInternalServerError,
			code:    dto.ErrorCodeInternalServer,
			message: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := runHandleAPIError(t, tt.err)
			assert.Equal(t, tt.status, status)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.Equal(t, tt.message, resp.Message)
			assert.False(t, resp.Success)
		})
	}
}

func TestHandleAPIErrorValidationDetails(t *testing.T) {
	err := apperrors.NewValidationError("Invalid company ID", map[string]string{"id": "must be a UUID"})

	status, resp := runHandleAPIError(t, fmt.Errorf("get company: %w", err))

	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrorCodeValidationFailed, resp.Error.Code)
	assert.Equal(t, "Invalid company ID", resp.Message)
	assert.Equal(t, map[string]interface{}{"id": "must be a UUID"}, resp.Error.Details)
}

func TestBindAndValidate(t *testing.T) {
	bind := func(body string) (*httptest.ResponseRecorder, bool) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		var req dto.CompanyRequest
		return w, BindAndValidate(c, &req)
	}

	t.Run("valid", func(t *testing.T) {
		_, ok := bind(`{"name":"Globex","ctc":10,"ctcBreakup":{"base":8}}`)
		assert.True(t, ok)
	})

	t.Run("malformed json", func(t *testing.T) {
		w, ok := bind(`{"name":`)
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid request format")
	})

	t.Run("field errors are itemized", func(t *testing.T) {
		w, ok := bind(`{"name":"","ctc":5,"ctcBreakup":{"base":8}}`)
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		fields := make([]string, 0, len(resp.Errors))
		for _, fe := range resp.Errors {
			fields = append(fields, fe.Field)
		}
		assert.ElementsMatch(t, []string{"name", "ctcBreakup.base"}, fields)
	})
}
