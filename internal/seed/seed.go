package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/okandemir/schoolhub/internal/app/models"
	appRepos "github.com/okandemir/schoolhub/internal/app/repositories"
	"github.com/okandemir/schoolhub/internal/config"
	pkgAuth "github.com/okandemir/schoolhub/internal/pkg/auth"
)

// CreateDefaultData creates the bootstrap admin account when no admin
// exists yet, so a fresh install can log in and manage the rest through
// the API. Credentials come from env (ADMIN_EMAIL/ADMIN_PASSWORD); the
// defaults are only suitable for local development.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	admins, err := userRepo.CountByRole(ctx, appModels.RoleAdmin)
	if err != nil {
		return fmt.Errorf("failed to count admin accounts: %w", err)
	}
	if admins > 0 {
		return nil
	}

	email := config.GetEnv("ADMIN_EMAIL", "admin@schoolhub.local")
	password := config.GetEnv("ADMIN_PASSWORD", "admin12345")

	hashed, err := pkgAuth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash default admin password: %w", err)
	}

	admin := &appModels.User{
		Email:    email,
		Password: hashed,
		FullName: "Administrator",
		Role:     appModels.RoleAdmin,
	}
	if _, err := userRepo.CreateWithProfile(ctx, admin); err != nil {
		return fmt.Errorf("failed to create default admin account: %w", err)
	}

	lgr.Info().Str("email", email).Msg("Default admin account created")
	return nil
}
