package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/placement/internal/app/models"
	"github.com/yigit/placement/internal/app/repositories/mocks"
	"github.com/yigit/placement/internal/pkg/apperrors"
)

func TestAuthorize(t *testing.T) {
	admin := Caller{ID: uuid.New(), Role: models.RoleAdmin}
	pc := Caller{ID: uuid.New(), Role: models.RolePlacementCoordinator}
	student := Caller{ID: uuid.New(), Role: models.RoleStudent}
	other := uuid.New().String()

	tests := []struct {
		name    string
		caller  Caller
		req     Request
		allowed bool
		reason  DenyReason
		message string
	}{
		{
			name:    "malformed user id",
			caller:  admin,
			req:     Request{Action: ActionDeleteUser, TargetID: "not-an-id"},
			reason:  ReasonInvalidIdentifier,
			message: "Invalid user ID",
		},
		{
			name:    "malformed id wins over missing permission",
			caller:  student,
			req:     Request{Action: ActionSetRole, TargetID: "123", Role: "admin"},
			reason:  ReasonInvalidIdentifier,
			message: "Invalid user ID",
		},
		{
			name:    "malformed company id",
			caller:  pc,
			req:     Request{Action: ActionDeleteCompany, TargetID: "x"},
			reason:  ReasonInvalidIdentifier,
			message: "Invalid company ID",
		},
		{
			name:    "admin changes role of another user",
			caller:  admin,
			req:     Request{Action: ActionSetRole, TargetID: other, Role: "placementCoordinator"},
			allowed: true,
		},
		{
			name:    "coordinator cannot change roles",
			caller:  pc,
			req:     Request{Action: ActionSetRole, TargetID: other, Role: "placementCoordinator"},
			reason:  ReasonPermissionDenied,
			message: "You do not have permission to perform this action",
		},
		{
			name:    "student cannot verify",
			caller:  student,
			req:     Request{Action: ActionVerifyUser, TargetID: other, Verified: true},
			reason:  ReasonPermissionDenied,
			message: "You do not have permission to perform this action",
		},
		{
			name:    "student deleting own account lacks the permission",
			caller:  student,
			req:     Request{Action: ActionDeleteUser, TargetID: student.ID.String()},
			reason:  ReasonPermissionDenied,
			message: "You do not have permission to perform this action",
		},
		{
			name:    "coordinator deleting own account is a self action",
			caller:  pc,
			req:     Request{Action: ActionDeleteUser, TargetID: pc.ID.String()},
			reason:  ReasonSelfActionForbidden,
			message: "You cannot delete your own account",
		},
		{
			name:    "admin cannot change own role",
			caller:  admin,
			req:     Request{Action: ActionSetRole, TargetID: admin.ID.String(), Role: "student"},
			reason:  ReasonSelfActionForbidden,
			message: "You cannot change your own role",
		},
		{
			name:    "admin cannot delete own account",
			caller:  admin,
			req:     Request{Action: ActionDeleteUser, TargetID: admin.ID.String()},
			reason:  ReasonSelfActionForbidden,
			message: "You cannot delete your own account",
		},
		{
			name:    "coordinator cannot verify self",
			caller:  pc,
			req:     Request{Action: ActionVerifyUser, TargetID: pc.ID.String(), Verified: true},
			reason:  ReasonSelfActionForbidden,
			message: "You cannot verify your own account",
		},
		{
			name:    "self check precedes role check",
			caller:  admin,
			req:     Request{Action: ActionSetRole, TargetID: admin.ID.String(), Role: "superuser"},
			reason:  ReasonSelfActionForbidden,
			message: "You cannot change your own role",
		},
		{
			name:    "unknown role",
			caller:  admin,
			req:     Request{Action: ActionSetRole, TargetID: other, Role: "superuser"},
			reason:  ReasonInvalidRole,
			message: "Invalid role",
		},
		{
			name:    "role is case sensitive",
			caller:  admin,
			req:     Request{Action: ActionSetRole, TargetID: other, Role: "Admin"},
			reason:  ReasonInvalidRole,
			message: "Invalid role",
		},
		{
			name:    "verification value is a string",
			caller:  pc,
			req:     Request{Action: ActionVerifyUser, TargetID: other, Verified: "true"},
			reason:  ReasonInvalidVerificationValue,
			message: "Invalid verification status",
		},
		{
			name:    "verification value missing",
			caller:  pc,
			req:     Request{Action: ActionVerifyUser, TargetID: other},
			reason:  ReasonInvalidVerificationValue,
			message: "Invalid verification status",
		},
		{
			name:    "unverify another user",
			caller:  pc,
			req:     Request{Action: ActionVerifyUser, TargetID: other, Verified: false},
			allowed: true,
		},
		{
			name:    "student updates own profile",
			caller:  student,
			req:     Request{Action: ActionUpdateUser, TargetID: student.ID.String()},
			allowed: true,
		},
		{
			name:    "student cannot update another profile",
			caller:  student,
			req:     Request{Action: ActionUpdateUser, TargetID: other},
			reason:  ReasonPermissionDenied,
			message: "You do not have permission to perform this action",
		},
		{
			name:    "coordinator places a student",
			caller:  pc,
			req:     Request{Action: ActionPlaceUser, TargetID: other},
			allowed: true,
		},
		{
			name:    "coordinator creates company",
			caller:  pc,
			req:     Request{Action: ActionCreateCompany},
			allowed: true,
		},
		{
			name:    "student cannot create company",
			caller:  student,
			req:     Request{Action: ActionCreateCompany},
			reason:  ReasonPermissionDenied,
			message: "You do not have permission to perform this action",
		},
		{
			name:    "unknown action",
			caller:  admin,
			req:     Request{Action: Action("user:impersonate"), TargetID: other},
			reason:  ReasonPermissionDenied,
			message: "You do not have permission to perform this action",
		},
		{
			name:    "unknown caller role holds nothing",
			caller:  Caller{ID: uuid.New(), Role: models.Role("guest")},
			req:     Request{Action: ActionDeleteUser, TargetID: other},
			reason:  ReasonPermissionDenied,
			message: "You do not have permission to perform this action",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Authorize(tt.caller, tt.req)
			assert.Equal(t, tt.allowed, d.Allowed)
			if tt.allowed {
				assert.NoError(t, d.Err())
				return
			}
			assert.Equal(t, tt.reason, d.Reason)
			assert.Equal(t, tt.message, d.Message)
		})
	}
}

func TestDecisionErr(t *testing.T) {
	tests := []struct {
		reason DenyReason
		want   error
	}{
		{ReasonInvalidIdentifier, apperrors.ErrValidationFailed},
		{ReasonPermissionDenied, apperrors.ErrPermissionDenied},
		{ReasonSelfActionForbidden, apperrors.ErrPermissionDenied},
		{ReasonInvalidRole, apperrors.ErrValidationFailed},
		{ReasonInvalidVerificationValue, apperrors.ErrValidationFailed},
	}

	for _, tt := range tests {
		t.Run(string(tt.reason), func(t *testing.T) {
			err := deny(tt.reason, "msg").Err()
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want))
			assert.Equal(t, "msg", err.Error())

			var denial *DenialError
			require.True(t, errors.As(err, &denial))
			assert.Equal(t, tt.reason, denial.Reason)
		})
	}
}

func TestCanPerform(t *testing.T) {
	assert.True(t, CanPerform(models.RoleAdmin, ActionSetRole))
	assert.False(t, CanPerform(models.RolePlacementCoordinator, ActionSetRole))
	assert.True(t, CanPerform(models.RolePlacementCoordinator, ActionDeleteUser))
	assert.False(t, CanPerform(models.RoleStudent, ActionVerifyUser))
	assert.False(t, CanPerform(models.RoleAdmin, Action("nope")))
}

func TestAuthorizationService_ResolveCaller(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("found", func(t *testing.T) {
		repo := new(mocks.MockUserRepository)
		repo.On("GetByID", ctx, id).Return(&models.User{ID: id, Role: models.RoleAdmin}, nil)

		user, err := NewAuthorizationService(repo).ResolveCaller(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, user.Role)
		repo.AssertExpectations(t)
	})

	t.Run("subject no longer exists", func(t *testing.T) {
		repo := new(mocks.MockUserRepository)
		repo.On("GetByID", ctx, id).Return(nil, apperrors.ErrUserNotFound)

		_, err := NewAuthorizationService(repo).ResolveCaller(ctx, id)
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}

func TestAuthorizationService_Validate(t *testing.T) {
	svc := NewAuthorizationService(new(mocks.MockUserRepository))
	admin := Caller{ID: uuid.New(), Role: models.RoleAdmin}

	err := svc.Validate(context.Background(), admin, Request{Action: ActionDeleteUser, TargetID: admin.ID.String()})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	err = svc.Validate(context.Background(), admin, Request{Action: ActionDeleteUser, TargetID: uuid.NewString()})
	assert.NoError(t, err)
}
