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

// CompanyService defines the interface for company-related operations
type CompanyService interface {
	ListCompanies(ctx context.Context) ([]*models.Company, error)
	GetCompany(ctx context.Context, id string) (*models.Company, error)
	CreateCompany(ctx context.Context, caller auth.Caller, req *dto.CompanyRequest) (*models.Company, error)
	UpdateCompany(ctx context.Context, caller auth.Caller, id string, req *dto.CompanyRequest) (*models.Company, error)
	DeleteCompany(ctx context.Context, caller auth.Caller, id string) (string, error)
}

type companyServiceImpl struct {
	companyRepo repositories.ICompanyRepository
	authz       *auth.AuthorizationService
}

// NewCompanyService creates a new company service instance
func NewCompanyService(companyRepo repositories.ICompanyRepository, authz *auth.AuthorizationService) CompanyService {
	return &companyServiceImpl{
		companyRepo: companyRepo,
		authz:       authz,
	}
}

func companyNotFound(err error) error {
	if errors.Is(err, apperrors.ErrCompanyNotFound) {
		return apperrors.NewCustomError(apperrors.ErrCompanyNotFound, "Company not found")
	}
	return err
}

// ListCompanies returns all companies. An empty list is not an error.
func (s *companyServiceImpl) ListCompanies(ctx context.Context) ([]*models.Company, error) {
	companies, err := s.companyRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving companies: %w", err)
	}
	return companies, nil
}

// GetCompany returns a single company
func (s *companyServiceImpl) GetCompany(ctx context.Context, id string) (*models.Company, error) {
	cid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.NewValidationError("Invalid company ID", map[string]string{"id": "must be a UUID"})
	}

	company, err := s.companyRepo.GetByID(ctx, cid)
	if err != nil {
		return nil, companyNotFound(err)
	}
	return company, nil
}

// CreateCompany adds a company
func (s *companyServiceImpl) CreateCompany(ctx context.Context, caller auth.Caller, req *dto.CompanyRequest) (*models.Company, error) {
	if err := s.authz.Validate(ctx, caller, auth.Request{Action: auth.ActionCreateCompany}); err != nil {
		return nil, err
	}

	company := req.ToModel()
	if err := s.companyRepo.Create(ctx, company); err != nil {
		if errors.Is(err, apperrors.ErrCompanyAlreadyExists) {
			return nil, apperrors.NewCustomError(apperrors.ErrCompanyAlreadyExists, "Company with this name already exists")
		}
		return nil, err
	}

	logger.Info().Str("companyID", company.ID.String()).Str("name", company.Name).Msg("Company created")
	return company, nil
}

// UpdateCompany overwrites a company
func (s *companyServiceImpl) UpdateCompany(ctx context.Context, caller auth.Caller, id string, req *dto.CompanyRequest) (*models.Company, error) {
	if err := s.authz.Validate(ctx, caller, auth.Request{Action: auth.ActionUpdateCompany, TargetID: id}); err != nil {
		return nil, err
	}

	company := req.ToModel()
	company.ID = uuid.MustParse(id)

	updated, err := s.companyRepo.Update(ctx, company)
	if err != nil {
		if errors.Is(err, apperrors.ErrCompanyAlreadyExists) {
			return nil, apperrors.NewCustomError(apperrors.ErrCompanyAlreadyExists, "Company with this name already exists")
		}
		return nil, companyNotFound(err)
	}

	logger.Info().Str("companyID", updated.ID.String()).Str("name", updated.Name).Msg("Company updated")
	return updated, nil
}

// DeleteCompany removes a company. Students placed there keep their
// denormalized placement.
func (s *companyServiceImpl) DeleteCompany(ctx context.Context, caller auth.Caller, id string) (string, error) {
	if err := s.authz.Validate(ctx, caller, auth.Request{Action: auth.ActionDeleteCompany, TargetID: id}); err != nil {
		return "", err
	}

	deleted, err := s.companyRepo.Delete(ctx, uuid.MustParse(id))
	if err != nil {
		return "", companyNotFound(err)
	}

	logger.Info().Str("companyID", deleted.ID.String()).Str("name", deleted.Name).Msg("Company deleted")
	return fmt.Sprintf("Company %s deleted successfully", deleted.Name), nil
}
