package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yigit/placement/internal/app/models"
	"github.com/yigit/placement/internal/app/models/dto"
	"github.com/yigit/placement/internal/app/repositories/mocks"
	"github.com/yigit/placement/internal/pkg/apperrors"
	"github.com/yigit/placement/internal/pkg/auth"
)

func newAuthService() (*AuthService, *mocks.MockUserRepository, *auth.JWTService) {
	users := new(mocks.MockUserRepository)
	jwtSvc := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "placement-test",
	})
	return NewAuthService(users, jwtSvc, zerolog.Nop()), users, jwtSvc
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	req := &dto.RegisterRequest{Name: "Nila", Email: "Nila@College.edu", Password: "s3cretpass", RollNo: "MCA21-001"}

	t.Run("creates an unverified student", func(t *testing.T) {
		svc, users, _ := newAuthService()
		users.On("EmailExists", ctx, "nila@college.edu").Return(false, nil)
		users.On("Create", ctx, mock.MatchedBy(func(u *models.User) bool {
			return u.Role == models.RoleStudent && !u.IsVerified && u.Password != req.Password &&
				u.PlacedAt.CompanyID == models.NotPlaced
		})).Return(nil)

		user, err := svc.Register(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "nila@college.edu", user.Email)
		users.AssertExpectations(t)
	})

	t.Run("email taken", func(t *testing.T) {
		svc, users, _ := newAuthService()
		users.On("EmailExists", ctx, "nila@college.edu").Return(true, nil)

		_, err := svc.Register(ctx, req)
		assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("roll number taken", func(t *testing.T) {
		svc, users, _ := newAuthService()
		users.On("EmailExists", ctx, "nila@college.edu").Return(false, nil)
		users.On("Create", ctx, mock.Anything).Return(apperrors.ErrRollNoAlreadyExists)

		_, err := svc.Register(ctx, req)
		assert.ErrorIs(t, err, apperrors.ErrRollNoAlreadyExists)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, err := auth.HashPassword("correct-horse")
	require.NoError(t, err)
	user := &models.User{ID: uuid.New(), Email: "ops@college.edu", Password: hash, Role: models.RoleAdmin}

	t.Run("valid credentials", func(t *testing.T) {
		svc, users, jwtSvc := newAuthService()
		users.On("GetByEmail", ctx, "ops@college.edu").Return(user, nil)

		resp, err := svc.Login(ctx, &dto.LoginRequest{Email: "ops@college.edu", Password: "correct-horse"})
		require.NoError(t, err)
		assert.Equal(t, 3600, resp.ExpiresIn)

		claims, err := jwtSvc.ValidateToken(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, user.ID.String(), claims.UserID)
		assert.Equal(t, "admin", claims.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, users, _ := newAuthService()
		users.On("GetByEmail", ctx, "ops@college.edu").Return(user, nil)

		_, err := svc.Login(ctx, &dto.LoginRequest{Email: "ops@college.edu", Password: "nope"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc, users, _ := newAuthService()
		users.On("GetByEmail", ctx, "ghost@college.edu").Return(nil, apperrors.ErrUserNotFound)

		_, err := svc.Login(ctx, &dto.LoginRequest{Email: "ghost@college.edu", Password: "x"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})
}
