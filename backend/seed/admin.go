// Package seed creates the initial admin account and loads curriculum files.
package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"examportal/backend/config"
	"examportal/backend/models"
	"examportal/backend/store"

	"golang.org/x/crypto/bcrypt"
)

// EnsureAdmin creates the configured admin unless a user with that email
// already exists. created reports whether a new account was written.
func EnsureAdmin(ctx context.Context, users *store.Users, cfg *config.Config) (admin *models.User, created bool, err error) {
	email := strings.ToLower(strings.TrimSpace(cfg.AdminEmail))
	if email == "" || cfg.AdminPassword == "" {
		return nil, false, fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD are required")
	}

	existing, err := users.FindByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), cfg.BcryptCost)
	if err != nil {
		return nil, false, fmt.Errorf("hashing admin password: %w", err)
	}

	admin = &models.User{
		Name:     cfg.AdminName,
		Email:    email,
		Password: string(hash),
		Role:     models.RoleAdmin,
	}
	if err := users.Create(ctx, admin); err != nil {
		return nil, false, err
	}
	return admin, true, nil
}
