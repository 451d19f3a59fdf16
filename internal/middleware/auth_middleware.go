package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/placement/internal/app/auth"
	"github.com/yigit/placement/internal/app/models"
	"github.com/yigit/placement/internal/app/models/dto"
	"github.com/yigit/placement/internal/pkg/apperrors"
	pkgauth "github.com/yigit/placement/internal/pkg/auth"
	"github.com/yigit/placement/internal/pkg/logger"
)

// Context keys set by JWTAuth
const (
	ContextKeyUser   = "user"
	ContextKeyCaller = "caller"
)

// AuthMiddleware resolves the caller of every protected request
type AuthMiddleware struct {
	jwtService *pkgauth.JWTService
	authz      *auth.AuthorizationService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *pkgauth.JWTService, authz *auth.AuthorizationService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		authz:      authz,
	}
}

func abortUnauthorized(c *gin.Context, code dto.ErrorCode, message, details string) {
	errorDetail := dto.NewErrorDetail(code, message).WithDetails(details)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
}

// JWTAuth validates the bearer token, loads the user its subject names and
// stores both the user and the derived caller in the context. The role is
// always taken from the stored user, never from the token.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authentication required", "Authorization header missing")
			return
		}

		tokenString, err := pkgauth.ExtractBearerToken(authHeader)
		if err != nil {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authentication required", "Invalid token format")
			return
		}

		userID, err := m.jwtService.ValidateAndExtractSubject(tokenString)
		if err != nil {
			if errors.Is(err, apperrors.ErrTokenExpired) {
				abortUnauthorized(c, dto.ErrorCodeExpiredToken, "Authentication failed", "Token has expired")
				return
			}
			abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Authentication failed", "Invalid token")
			return
		}

		user, err := m.authz.ResolveCaller(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, apperrors.ErrUserNotFound) {
				abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authentication failed", "User not found")
				return
			}
			HandleAPIError(c, err)
			c.Abort()
			return
		}

		c.Set(ContextKeyUser, user)
		c.Set(ContextKeyCaller, auth.CallerFrom(user))
		c.Next()
	}
}

// RequirePermission rejects callers whose role lacks perm. Denials use status
// 400 like every other policy denial.
func (m *AuthMiddleware) RequirePermission(perm auth.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := CallerFromContext(c)
		if !ok {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authentication required", "User information not found")
			return
		}

		if !auth.HasPermission(caller.Role, perm) {
			logger.Warn().
				Str("callerID", caller.ID.String()).
				Str("permission", string(perm)).
				Msg("Permission gate denied request")
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "You do not have permission to perform this action")
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Next()
	}
}

// CallerFromContext returns the caller stored by JWTAuth
func CallerFromContext(c *gin.Context) (auth.Caller, bool) {
	v, exists := c.Get(ContextKeyCaller)
	if !exists {
		return auth.Caller{}, false
	}
	caller, ok := v.(auth.Caller)
	return caller, ok
}

// UserFromContext returns the user record stored by JWTAuth
func UserFromContext(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(ContextKeyUser)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}
