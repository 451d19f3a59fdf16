package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/yigit/placement/internal/app/auth"
	"github.com/yigit/placement/internal/app/models"
	"github.com/yigit/placement/internal/app/models/dto"
	"github.com/yigit/placement/internal/app/repositories"
	"github.com/yigit/placement/internal/pkg/apperrors"
	"github.com/yigit/placement/internal/pkg/logger"
)

// UserService defines the interface for user-related operations.
// Every mutation runs the authorization policy before touching the repository.
type UserService interface {
	ListUsers(ctx context.Context, role *models.Role) ([]*models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	UpdateUser(ctx context.Context, caller auth.Caller, id string, req *dto.UpdateUserRequest) (*models.User, error)
	SetVerification(ctx context.Context, caller auth.Caller, id string, value interface{}) (string, error)
	SetRole(ctx context.Context, caller auth.Caller, id string, role string) (string, error)
	AssignCompany(ctx context.Context, caller auth.Caller, id string, companyID string) (string, error)
	DeleteUser(ctx context.Context, caller auth.Caller, id string) (string, error)
}

type userServiceImpl struct {
	userRepo    repositories.IUserRepository
	companyRepo repositories.ICompanyRepository
	authz       *auth.AuthorizationService
}

// NewUserService creates a new user service instance
func NewUserService(
	userRepo repositories.IUserRepository,
	companyRepo repositories.ICompanyRepository,
	authz *auth.AuthorizationService,
) UserService {
	return &userServiceImpl{
		userRepo:    userRepo,
		companyRepo: companyRepo,
		authz:       authz,
	}
}

// ErrInvalidUserID is returned by read operations given a malformed identifier
var ErrInvalidUserID = apperrors.NewValidationError("Invalid user ID", map[string]string{"id": "must be a UUID"})

func userNotFound(err error) error {
	if errors.Is(err, apperrors.ErrUserNotFound) {
		return apperrors.NewCustomError(apperrors.ErrUserNotFound, "User not found")
	}
	return err
}

// ListUsers returns all users ordered by roll number
func (s *userServiceImpl) ListUsers(ctx context.Context, role *models.Role) ([]*models.User, error) {
	if role != nil && !role.IsValid() {
		return nil, apperrors.NewValidationError("Invalid role", map[string]string{
			"role": "must be one of student, placementCoordinator, admin",
		})
	}

	users, err := s.userRepo.List(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("error retrieving users: %w", err)
	}
	if len(users) == 0 {
		return nil, apperrors.NewCustomError(apperrors.ErrNoUsersFound, "No users found")
	}
	return users, nil
}

// GetUser returns a single user
func (s *userServiceImpl) GetUser(ctx context.Context, id string) (*models.User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrInvalidUserID
	}

	user, err := s.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, userNotFound(err)
	}
	return user, nil
}

// UpdateUser overwrites the profile of a user. Callers without users:update
// may only update themselves.
func (s *userServiceImpl) UpdateUser(ctx context.Context, caller auth.Caller, id string, req *dto.UpdateUserRequest) (*models.User, error) {
	if err := s.authz.Validate(ctx, caller, auth.Request{Action: auth.ActionUpdateUser, TargetID: id}); err != nil {
		return nil, err
	}

	updated, err := s.userRepo.UpdateProfile(ctx, uuid.MustParse(id), req.ToProfileUpdate())
	if err != nil {
		return nil, userNotFound(err)
	}

	logger.Info().Str("userID", updated.ID.String()).Str("name", updated.Name).Msg("User profile updated")
	return updated, nil
}

// SetVerification sets the verification flag of another user
func (s *userServiceImpl) SetVerification(ctx context.Context, caller auth.Caller, id string, value interface{}) (string, error) {
	req := auth.Request{Action: auth.ActionVerifyUser, TargetID: id, Verified: value}
	if err := s.authz.Validate(ctx, caller, req); err != nil {
		return "", err
	}

	verified := value.(bool)
	updated, err := s.userRepo.SetVerified(ctx, uuid.MustParse(id), verified)
	if err != nil {
		return "", userNotFound(err)
	}

	logger.Info().Str("userID", updated.ID.String()).Str("name", updated.Name).Bool("isVerified", verified).Msg("User verification updated")
	return fmt.Sprintf("Verification status of %s updated Successfully", updated.Name), nil
}

// SetRole assigns a role to another user
func (s *userServiceImpl) SetRole(ctx context.Context, caller auth.Caller, id string, role string) (string, error) {
	req := auth.Request{Action: auth.ActionSetRole, TargetID: id, Role: role}
	if err := s.authz.Validate(ctx, caller, req); err != nil {
		return "", err
	}

	updated, err := s.userRepo.SetRole(ctx, uuid.MustParse(id), models.Role(role))
	if err != nil {
		return "", userNotFound(err)
	}

	logger.Info().Str("userID", updated.ID.String()).Str("name", updated.Name).Str("role", role).Msg("User role updated")
	return fmt.Sprintf("Role of %s updated Successfully", updated.Name), nil
}

// AssignCompany places a student at a company and copies the company's name,
// compensation and primary location onto the student. companyID "np" clears
// the placement.
func (s *userServiceImpl) AssignCompany(ctx context.Context, caller auth.Caller, id string, companyID string) (string, error) {
	if err := s.authz.Validate(ctx, caller, auth.Request{Action: auth.ActionPlaceUser, TargetID: id}); err != nil {
		return "", err
	}

	placement := models.Placement{CompanyID: models.NotPlaced}
	if companyID != models.NotPlaced {
		cid, err := uuid.Parse(companyID)
		if err != nil {
			return "", apperrors.NewValidationError("Invalid company ID", map[string]string{
				"companyId": "must be a UUID or " + models.NotPlaced,
			})
		}
		company, err := s.companyRepo.GetByID(ctx, cid)
		if err != nil {
			if errors.Is(err, apperrors.ErrCompanyNotFound) {
				return "", apperrors.NewCustomError(apperrors.ErrCompanyNotFound, "Company not found")
			}
			return "", err
		}
		placement = company.PlacementFor()
	}

	updated, err := s.userRepo.SetPlacement(ctx, uuid.MustParse(id), placement)
	if err != nil {
		return "", userNotFound(err)
	}

	logger.Info().
		Str("userID", updated.ID.String()).
		Str("name", updated.Name).
		Str("companyID", placement.CompanyID).
		Msg("User placement updated")
	return fmt.Sprintf("Placement of %s updated Successfully", updated.Name), nil
}

// DeleteUser removes another user
func (s *userServiceImpl) DeleteUser(ctx context.Context, caller auth.Caller, id string) (string, error) {
	if err := s.authz.Validate(ctx, caller, auth.Request{Action: auth.ActionDeleteUser, TargetID: id}); err != nil {
		return "", err
	}

	deleted, err := s.userRepo.Delete(ctx, uuid.MustParse(id))
	if err != nil {
		return "", userNotFound(err)
	}

	logger.Info().Str("userID", deleted.ID.String()).Str("name", deleted.Name).Msg("User deleted")
	return fmt.Sprintf("Student %s deleted Successfully", deleted.Name), nil
}
