// Package mocks provides testify mocks of the repository interfaces.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/yigit/placement/internal/app/models"
	"github.com/yigit/placement/internal/app/repositories"
)

var (
	_ repositories.IUserRepository    = (*MockUserRepository)(nil)
	_ repositories.ICompanyRepository = (*MockCompanyRepository)(nil)
)

// MockUserRepository
type MockUserRepository struct {
	mock.Mock
}

func userOrNil(v interface{}) *models.User {
	if v == nil {
		return nil
	}
	return v.(*models.User)
}

func (m *MockUserRepository) List(ctx context.Context, role *models.Role) ([]*models.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *MockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, update models.UserProfileUpdate) (*models.User, error) {
	args := m.Called(ctx, id, update)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *MockUserRepository) SetVerified(ctx context.Context, id uuid.UUID, verified bool) (*models.User, error) {
	args := m.Called(ctx, id, verified)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *MockUserRepository) SetRole(ctx context.Context, id uuid.UUID, role models.Role) (*models.User, error) {
	args := m.Called(ctx, id, role)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *MockUserRepository) SetPlacement(ctx context.Context, id uuid.UUID, placement models.Placement) (*models.User, error) {
	args := m.Called(ctx, id, placement)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	return userOrNil(args.Get(0)), args.Error(1)
}

// MockCompanyRepository
type MockCompanyRepository struct {
	mock.Mock
}

func companyOrNil(v interface{}) *models.Company {
	if v == nil {
		return nil
	}
	return v.(*models.Company)
}

func (m *MockCompanyRepository) List(ctx context.Context) ([]*models.Company, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Company), args.Error(1)
}

func (m *MockCompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	args := m.Called(ctx, id)
	return companyOrNil(args.Get(0)), args.Error(1)
}

func (m *MockCompanyRepository) Create(ctx context.Context, company *models.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *MockCompanyRepository) Update(ctx context.Context, company *models.Company) (*models.Company, error) {
	args := m.Called(ctx, company)
	return companyOrNil(args.Get(0)), args.Error(1)
}

func (m *MockCompanyRepository) Delete(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	args := m.Called(ctx, id)
	return companyOrNil(args.Get(0)), args.Error(1)
}
