package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/yigit/placement/internal/app/models"
	"github.com/yigit/placement/internal/app/repositories"
	"github.com/yigit/placement/internal/pkg/apperrors"
	"github.com/yigit/placement/internal/pkg/logger"
)

// AuthorizationService resolves callers and applies the policy to requests
type AuthorizationService struct {
	userRepo repositories.IUserRepository
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(userRepo repositories.IUserRepository) *AuthorizationService {
	return &AuthorizationService{userRepo: userRepo}
}

// ResolveCaller loads the user a token subject refers to. A subject that no
// longer exists is reported as apperrors.ErrUserNotFound.
func (s *AuthorizationService) ResolveCaller(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrUserNotFound) {
			logger.Error().Err(err).Str("userID", userID.String()).Msg("Error resolving caller")
		}
		return nil, err
	}
	return user, nil
}

// Validate returns nil when caller may perform req, or a *DenialError
func (s *AuthorizationService) Validate(ctx context.Context, caller Caller, req Request) error {
	d := Authorize(caller, req)
	if d.Allowed {
		return nil
	}

	logger.Warn().
		Str("callerID", caller.ID.String()).
		Str("role", string(caller.Role)).
		Str("action", string(req.Action)).
		Str("target", req.TargetID).
		Str("reason", string(d.Reason)).
		Msg("Request denied by policy")
	return d.Err()
}
