package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/taskmaster/taskmaster-api/internal/config"
	"github.com/taskmaster/taskmaster-api/internal/platform/postgres"
	"github.com/taskmaster/taskmaster-api/internal/service"
	"github.com/taskmaster/taskmaster-api/internal/service/auth"
)

// createAdminUser bootstraps an administrator account from the
// TASKMASTER_ADMIN_* environment variables. Admin status is not settable
// through the API, so the first administrator has to come from here.
func createAdminUser(ctx context.Context, cfg *config.Config, log *slog.Logger, db *sql.DB) error {
	username := os.Getenv("TASKMASTER_ADMIN_USERNAME")
	email := os.Getenv("TASKMASTER_ADMIN_EMAIL")
	password := os.Getenv("TASKMASTER_ADMIN_PASSWORD")
	if username == "" || email == "" || password == "" {
		return fmt.Errorf(
			"TASKMASTER_ADMIN_USERNAME, TASKMASTER_ADMIN_EMAIL and TASKMASTER_ADMIN_PASSWORD must be set")
	}

	userStore := postgres.NewPostgresUserStore(db, log)
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	userService, err := service.NewUserService(userStore, hasher, cfg.Server.PageSize, log)
	if err != nil {
		return fmt.Errorf("failed to initialize user service: %w", err)
	}

	user, err := userService.CreateUser(ctx, service.UserParams{
		Username: username,
		Email:    email,
		Password: password,
		IsAdmin:  true,
	})
	if err != nil {
		return fmt.Errorf("failed to create administrator: %w", err)
	}

	log.Info("Administrator account created",
		"user_id", user.ID,
		"username", user.Username)
	return nil
}
