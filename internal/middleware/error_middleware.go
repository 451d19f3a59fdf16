package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/placement/internal/app/auth"
	"github.com/yigit/placement/internal/app/models/dto"
	"github.com/yigit/placement/internal/pkg/apperrors"
	"github.com/yigit/placement/internal/pkg/logger"
)

// messageOr returns the user-facing message carried by err or fallback
func messageOr(err error, fallback string) string {
	if msg, ok := apperrors.Message(err); ok {
		return msg
	}
	return fallback
}

func respondError(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}

// HandleAPIError handles common API errors and returns appropriate responses.
// Forbidden requests are reported with status 400; the error code tells them
// apart from malformed input.
func HandleAPIError(c *gin.Context, err error) {
	var denial *auth.DenialError
	if errors.As(err, &denial) {
		code := dto.ErrorCodeInvalidInput
		switch denial.Reason {
		case auth.ReasonPermissionDenied:
			code = dto.ErrorCodeForbidden
		case auth.ReasonSelfActionForbidden:
			code = dto.ErrorCodeSelfAction
		}
		respondError(c, http.StatusBadRequest, code, denial.Message)
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrValidationFailed):
		resp := dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeValidationFailed, messageOr(err, "Validation failed")))
		var ce *apperrors.CustomError
		if errors.As(err, &ce) && len(ce.Details) > 0 {
			resp.Error.WithDetails(ce.Details)
		}
		c.JSON(http.StatusBadRequest, resp)
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeForbidden, messageOr(err, "You do not have permission to perform this action"))

	case errors.Is(err, apperrors.ErrUserNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, messageOr(err, "User not found"))
	case errors.Is(err, apperrors.ErrNoUsersFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, messageOr(err, "No users found"))
	case errors.Is(err, apperrors.ErrCompanyNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, messageOr(err, "Company not found"))

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, messageOr(err, "Invalid credentials"))
	case errors.Is(err, apperrors.ErrTokenExpired):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid), errors.Is(err, apperrors.ErrInvalidFormat):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token")

	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, messageOr(err, "Email already exists"))
	case errors.Is(err, apperrors.ErrRollNoAlreadyExists):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, messageOr(err, "Roll number already exists"))
	case errors.Is(err, apperrors.ErrCompanyAlreadyExists):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, messageOr(err, "Company with this name already exists"))
	case errors.Is(err, apperrors.ErrConflict):
		respondError(c, http.StatusConflict, dto.ErrorCodeConflict, messageOr(err, "Conflict"))

	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled error")
		respondError(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}
