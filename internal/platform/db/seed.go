package db

import (
	"context"
	"log/slog"

	"hrms/internal/platform/config"
)

// Seed ensures the bootstrap admin user exists. It is idempotent: an
// existing user with the configured email is left untouched.
func Seed(ctx context.Context, q Queryer, cfg config.Config, passwordHash string) error {
	var count int
	if err := q.QueryRow(ctx, "SELECT COUNT(1) FROM users WHERE email = $1", cfg.SeedAdminEmail).Scan(&count); err != nil {
		return TranslateError(err)
	}
	if count > 0 {
		return nil
	}
	_, err := q.Exec(ctx, `
    INSERT INTO users (name, email, password_hash, role, active)
    VALUES ($1, $2, $3, 'Admin', true)
  `, cfg.SeedAdminName, cfg.SeedAdminEmail, passwordHash)
	if err != nil {
		return TranslateError(err)
	}
	slog.Info("seeded admin user", "email", cfg.SeedAdminEmail)
	return nil
}
