package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"solarne-backend/internal/config"
	"solarne-backend/internal/models"
)

// SeedAdmin inserts the configured admin user when the store is empty.
// With missing admin credentials or any existing user it does nothing.
// Called once at startup.
func SeedAdmin(ctx context.Context, users UserStore, cfg config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	count, err := users.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := HashPassword(cfg.AdminPassword, cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := &models.User{
		ID:           uuid.New().String(),
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := users.CreateUser(ctx, admin); err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}

	return nil
}
