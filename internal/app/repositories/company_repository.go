package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/placement/internal/app/models"
	"github.com/yigit/placement/internal/pkg/apperrors"
	"github.com/yigit/placement/internal/pkg/dberrors"
	"github.com/yigit/placement/internal/pkg/logger"
)

// ICompanyRepository defines the interface for company database operations
type ICompanyRepository interface {
	List(ctx context.Context) ([]*models.Company, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error)
	Create(ctx context.Context, company *models.Company) error
	Update(ctx context.Context, company *models.Company) (*models.Company, error)
	Delete(ctx context.Context, id uuid.UUID) (*models.Company, error)
}

var companyColumns = []string{
	"id", "name", "status", "type_of_offer", "profile", "profile_category",
	"interview_shortlist", "selected_students_roll_no", "date_of_offer", "locations",
	"ctc", "ctc_breakup", "cutoffs", "bond", "created_at", "updated_at",
}

// CompanyRepository handles company database operations.
// ctc_breakup and cutoffs are stored as JSONB, roll numbers and locations as TEXT[].
type CompanyRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

var _ ICompanyRepository = (*CompanyRepository)(nil)

// NewCompanyRepository creates a new CompanyRepository
func NewCompanyRepository(db DBTX) *CompanyRepository {
	return &CompanyRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanCompany(row pgx.Row) (*models.Company, error) {
	c := &models.Company{}
	err := row.Scan(
		&c.ID, &c.Name, &c.Status, &c.TypeOfOffer, &c.Profile, &c.ProfileCategory,
		&c.InterviewShortlist, &c.SelectedStudentsRollNo, &c.DateOfOffer, &c.Locations,
		&c.CTC, &c.CTCBreakup, &c.Cutoffs, &c.Bond, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if c.SelectedStudentsRollNo == nil {
		c.SelectedStudentsRollNo = []string{}
	}
	if c.Locations == nil {
		c.Locations = []string{}
	}
	return c, nil
}

// List retrieves all companies ordered by name
func (r *CompanyRepository) List(ctx context.Context) ([]*models.Company, error) {
	sql, args, err := r.sb.Select(companyColumns...).From("companies").OrderBy("name ASC").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list companies SQL")
		return nil, fmt.Errorf("failed to build list companies query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list companies query")
		return nil, fmt.Errorf("error querying companies: %w", err)
	}
	defer rows.Close()

	companies := []*models.Company{}
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning company row")
			return nil, fmt.Errorf("error scanning company row: %w", err)
		}
		companies = append(companies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating company rows: %w", err)
	}
	return companies, nil
}

// GetByID retrieves a company by ID
func (r *CompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	sql, args, err := r.sb.Select(companyColumns...).From("companies").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get company query: %w", err)
	}

	c, err := scanCompany(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCompanyNotFound
		}
		logger.Error().Err(err).Str("companyID", id.String()).Msg("Error getting company by ID")
		return nil, fmt.Errorf("error getting company: %w", err)
	}
	return c, nil
}

// Create inserts a new company and fills in its ID and timestamps
func (r *CompanyRepository) Create(ctx context.Context, c *models.Company) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	now := time.Now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now

	sql, args, err := r.sb.Insert("companies").
		Columns(companyColumns...).
		Values(
			c.ID, c.Name, c.Status, c.TypeOfOffer, c.Profile, c.ProfileCategory,
			c.InterviewShortlist, nonNil(c.SelectedStudentsRollNo), c.DateOfOffer, nonNil(c.Locations),
			c.CTC, c.CTCBreakup, c.Cutoffs, c.Bond, c.CreatedAt, c.UpdatedAt,
		).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create company SQL")
		return fmt.Errorf("failed to build create company query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "companies_name_key") {
			return apperrors.ErrCompanyAlreadyExists
		}
		logger.Error().Err(err).Msg("Error executing create company query")
		return fmt.Errorf("error creating company: %w", err)
	}
	return nil
}

// Update overwrites every mutable column of c and returns the stored record
func (r *CompanyRepository) Update(ctx context.Context, c *models.Company) (*models.Company, error) {
	sql, args, err := r.sb.Update("companies").
		SetMap(map[string]interface{}{
			"name":                      c.Name,
			"status":                    c.Status,
			"type_of_offer":             c.TypeOfOffer,
			"profile":                   c.Profile,
			"profile_category":          c.ProfileCategory,
			"interview_shortlist":       c.InterviewShortlist,
			"selected_students_roll_no": nonNil(c.SelectedStudentsRollNo),
			"date_of_offer":             c.DateOfOffer,
			"locations":                 nonNil(c.Locations),
			"ctc":                       c.CTC,
			"ctc_breakup":               c.CTCBreakup,
			"cutoffs":                   c.Cutoffs,
			"bond":                      c.Bond,
			"updated_at":                time.Now().UTC(),
		}).
		Where(squirrel.Eq{"id": c.ID}).
		Suffix("RETURNING " + strings.Join(companyColumns, ", ")).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update company SQL")
		return nil, fmt.Errorf("failed to build update company query: %w", err)
	}

	updated, err := scanCompany(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCompanyNotFound
		}
		if dberrors.IsDuplicateConstraintError(err, "companies_name_key") {
			return nil, apperrors.ErrCompanyAlreadyExists
		}
		logger.Error().Err(err).Str("companyID", c.ID.String()).Msg("Error executing update company query")
		return nil, fmt.Errorf("error updating company: %w", err)
	}
	return updated, nil
}

// Delete removes a company and returns the deleted record
func (r *CompanyRepository) Delete(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	sql, args, err := r.sb.Delete("companies").
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(companyColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build delete company query: %w", err)
	}

	c, err := scanCompany(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCompanyNotFound
		}
		logger.Error().Err(err).Str("companyID", id.String()).Msg("Error executing delete company query")
		return nil, fmt.Errorf("error deleting company: %w", err)
	}
	return c, nil
}

// nonNil keeps TEXT[] columns from being written as NULL
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
