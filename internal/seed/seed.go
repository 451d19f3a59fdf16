package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/yigit/placement/internal/app/models"
	"github.com/yigit/placement/internal/config"
	"github.com/yigit/placement/internal/db"
	"github.com/yigit/placement/internal/pkg/auth"
)

// errSeedDisabled is returned by adminFromConfig when no password is configured
var errSeedDisabled = errors.New("admin seeding disabled")

// adminFromConfig builds the verified admin account described by cfg.Seed
func adminFromConfig(cfg *config.Config) (*models.User, error) {
	if cfg.Seed.AdminPassword == "" {
		return nil, errSeedDisabled
	}

	hash, err := auth.HashPassword(cfg.Seed.AdminPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}

	name := cfg.Seed.AdminName
	if name == "" {
		name = "Administrator"
	}

	now := time.Now().UTC()
	return &models.User{
		ID:         uuid.New(),
		Name:       name,
		Email:      strings.ToLower(cfg.Seed.AdminEmail),
		Password:   hash,
		RollNo:     cfg.Seed.AdminRollNo,
		Role:       models.RoleAdmin,
		IsVerified: true,
		PlacedAt:   models.Placement{CompanyID: models.NotPlaced},
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// CreateDefaultData creates the configured admin account if no user with its
// email exists yet. Nothing is seeded when no admin password is configured.
func CreateDefaultData(ctx context.Context, database *db.PostgresDB, cfg *config.Config, lgr zerolog.Logger) error {
	admin, err := adminFromConfig(cfg)
	if errors.Is(err, errSeedDisabled) {
		lgr.Info().Msg("No seed admin password configured, skipping default data")
		return nil
	}
	if err != nil {
		return err
	}

	sb := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	created := false

	err = database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		existsSQL, args, err := sb.Select("1").From("users").
			Where(squirrel.Eq{"email": admin.Email}).
			Prefix("SELECT EXISTS (").Suffix(")").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build seed lookup: %w", err)
		}

		var exists bool
		if err := tx.QueryRow(ctx, existsSQL, args...).Scan(&exists); err != nil {
			return fmt.Errorf("failed to look up seed admin: %w", err)
		}
		if exists {
			return nil
		}

		insertSQL, args, err := sb.Insert("users").
			Columns("id", "name", "email", "password", "roll_no", "role", "is_verified",
				"placed_company_id", "created_at", "updated_at").
			Values(admin.ID, admin.Name, admin.Email, admin.Password, admin.RollNo, string(admin.Role),
				admin.IsVerified, admin.PlacedAt.CompanyID, admin.CreatedAt, admin.UpdatedAt).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build seed insert: %w", err)
		}

		if _, err := tx.Exec(ctx, insertSQL, args...); err != nil {
			return fmt.Errorf("failed to insert seed admin: %w", err)
		}
		created = true
		return nil
	})
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating default admin")
		return err
	}

	if created {
		lgr.Info().Str("email", admin.Email).Msg("Default admin created")
	} else {
		lgr.Debug().Str("email", admin.Email).Msg("Default admin already present")
	}
	return nil
}
