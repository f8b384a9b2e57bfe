package server

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// EnsureAdmin creates the configured admin account if it does not exist.
// Idempotent; does nothing when email or password is empty.
func EnsureAdmin(ctx context.Context, logger *slog.Logger, store *SQLiteStore, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}
	if err := store.CreateAdmin(ctx, email, string(hash)); err != nil {
		return fmt.Errorf("creating admin: %w", err)
	}

	logger.Info("admin account ensured", "email", email)
	return nil
}
