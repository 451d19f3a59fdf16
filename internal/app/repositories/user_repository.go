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

// IUserRepository defines the interface for user-related database operations.
// Every mutating method performs exactly one statement and returns the
// affected record, or apperrors.ErrUserNotFound when no row matched.
type IUserRepository interface {
	List(ctx context.Context, role *models.Role) ([]*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *models.User) error

	UpdateProfile(ctx context.Context, id uuid.UUID, update models.UserProfileUpdate) (*models.User, error)
	SetVerified(ctx context.Context, id uuid.UUID, verified bool) (*models.User, error)
	SetRole(ctx context.Context, id uuid.UUID, role models.Role) (*models.User, error)
	SetPlacement(ctx context.Context, id uuid.UUID, placement models.Placement) (*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) (*models.User, error)
}

var userColumns = []string{
	"id", "name", "email", "password", "roll_no", "role", "is_verified",
	"placed_company_id", "placed_company_name", "placed_ctc", "placed_ctc_base", "placed_location",
	"pg_cgpa", "pg_percentage", "ug_cgpa", "ug_percentage",
	"hsc_cgpa", "hsc_percentage", "ssc_cgpa", "ssc_percentage",
	"total_gap_in_academics", "backlogs", "created_at", "updated_at",
}

// UserRepository handles user database operations
type UserRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

var _ IUserRepository = (*UserRepository)(nil)

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanUser(row pgx.Row) (*models.User, error) {
	u := &models.User{}
	var role string
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.Password, &u.RollNo, &role, &u.IsVerified,
		&u.PlacedAt.CompanyID, &u.PlacedAt.CompanyName, &u.PlacedAt.CTC, &u.PlacedAt.CTCBase, &u.PlacedAt.Location,
		&u.PG.CGPA, &u.PG.Percentage, &u.UG.CGPA, &u.UG.Percentage,
		&u.HSC.CGPA, &u.HSC.Percentage, &u.SSC.CGPA, &u.SSC.Percentage,
		&u.TotalGapInAcademics, &u.Backlogs, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.Role = models.Role(role)
	return u, nil
}

// mapUniqueViolation turns unique-constraint failures into domain errors
func mapUniqueViolation(err error) error {
	switch {
	case dberrors.IsDuplicateConstraintError(err, "users_email_key"):
		return apperrors.ErrEmailAlreadyExists
	case dberrors.IsDuplicateConstraintError(err, "users_roll_no_key"):
		return apperrors.ErrRollNoAlreadyExists
	case dberrors.IsUniqueViolation(err):
		return apperrors.ErrConflict
	}
	return nil
}

// List retrieves all users ordered by roll number, optionally filtered by role
func (r *UserRepository) List(ctx context.Context, role *models.Role) ([]*models.User, error) {
	q := r.sb.Select(userColumns...).From("users").OrderBy("roll_no ASC")
	if role != nil {
		q = q.Where(squirrel.Eq{"role": string(*role)})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list users SQL")
		return nil, fmt.Errorf("failed to build list users query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list users query")
		return nil, fmt.Errorf("error querying users: %w", err)
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning user row")
			return nil, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating user rows")
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}

	return users, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"email": strings.ToLower(email)})
}

func (r *UserRepository) getOne(ctx context.Context, where squirrel.Eq) (*models.User, error) {
	sql, args, err := r.sb.Select(userColumns...).From("users").Where(where).Limit(1).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get user SQL")
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	u, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Msg("Error scanning user row")
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	return u, nil
}

// EmailExists checks if an email already exists
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("users").
		Where(squirrel.Eq{"email": strings.ToLower(email)}).
		Prefix("SELECT EXISTS (").Suffix(")").
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build email exists query: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		logger.Error().Err(err).Msg("Error checking email existence")
		return false, fmt.Errorf("error checking email existence: %w", err)
	}
	return exists, nil
}

// Create inserts a new user and fills in its ID and timestamps
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.PlacedAt.CompanyID == "" {
		user.PlacedAt.CompanyID = models.NotPlaced
	}
	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now
	user.Email = strings.ToLower(user.Email)

	sql, args, err := r.sb.Insert("users").
		Columns(userColumns...).
		Values(
			user.ID, user.Name, user.Email, user.Password, user.RollNo, string(user.Role), user.IsVerified,
			user.PlacedAt.CompanyID, user.PlacedAt.CompanyName, user.PlacedAt.CTC, user.PlacedAt.CTCBase, user.PlacedAt.Location,
			user.PG.CGPA, user.PG.Percentage, user.UG.CGPA, user.UG.Percentage,
			user.HSC.CGPA, user.HSC.Percentage, user.SSC.CGPA, user.SSC.Percentage,
			user.TotalGapInAcademics, user.Backlogs, user.CreatedAt, user.UpdatedAt,
		).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create user SQL")
		return fmt.Errorf("failed to build create user query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			return mapped
		}
		logger.Error().Err(err).Msg("Error executing create user query")
		return fmt.Errorf("error creating user: %w", err)
	}
	return nil
}

// UpdateProfile overwrites the profile fields of a user
func (r *UserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, update models.UserProfileUpdate) (*models.User, error) {
	return r.updateReturning(ctx, id, map[string]interface{}{
		"name":                   update.Name,
		"email":                  strings.ToLower(update.Email),
		"roll_no":                update.RollNo,
		"pg_cgpa":                update.PG.CGPA,
		"pg_percentage":          update.PG.Percentage,
		"ug_cgpa":                update.UG.CGPA,
		"ug_percentage":          update.UG.Percentage,
		"hsc_cgpa":               update.HSC.CGPA,
		"hsc_percentage":         update.HSC.Percentage,
		"ssc_cgpa":               update.SSC.CGPA,
		"ssc_percentage":         update.SSC.Percentage,
		"total_gap_in_academics": update.TotalGapInAcademics,
		"backlogs":               update.Backlogs,
	})
}

// SetVerified sets the verification flag of a user
func (r *UserRepository) SetVerified(ctx context.Context, id uuid.UUID, verified bool) (*models.User, error) {
	return r.updateReturning(ctx, id, map[string]interface{}{"is_verified": verified})
}

// SetRole sets the role of a user
func (r *UserRepository) SetRole(ctx context.Context, id uuid.UUID, role models.Role) (*models.User, error) {
	return r.updateReturning(ctx, id, map[string]interface{}{"role": string(role)})
}

// SetPlacement replaces the denormalized placement of a user
func (r *UserRepository) SetPlacement(ctx context.Context, id uuid.UUID, p models.Placement) (*models.User, error) {
	return r.updateReturning(ctx, id, map[string]interface{}{
		"placed_company_id":   p.CompanyID,
		"placed_company_name": p.CompanyName,
		"placed_ctc":          p.CTC,
		"placed_ctc_base":     p.CTCBase,
		"placed_location":     p.Location,
	})
}

func (r *UserRepository) updateReturning(ctx context.Context, id uuid.UUID, set map[string]interface{}) (*models.User, error) {
	set["updated_at"] = time.Now().UTC()

	sql, args, err := r.sb.Update("users").
		SetMap(set).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(userColumns, ", ")).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update user SQL")
		return nil, fmt.Errorf("failed to build update user query: %w", err)
	}

	u, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		if mapped := mapUniqueViolation(err); mapped != nil {
			return nil, mapped
		}
		logger.Error().Err(err).Str("userID", id.String()).Msg("Error executing update user query")
		return nil, fmt.Errorf("error updating user: %w", err)
	}
	return u, nil
}

// Delete removes a user and returns the deleted record
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) (*models.User, error) {
	sql, args, err := r.sb.Delete("users").
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(userColumns, ", ")).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete user SQL")
		return nil, fmt.Errorf("failed to build delete user query: %w", err)
	}

	u, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Str("userID", id.String()).Msg("Error executing delete user query")
		return nil, fmt.Errorf("error deleting user: %w", err)
	}
	return u, nil
}
