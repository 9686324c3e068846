// Package main implements the entry point for the TaskMaster API server,
// a personal task management service with categories, due-date tracking,
// completion history and daily email reminders.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/taskmaster/taskmaster-api/internal/config"
	"github.com/taskmaster/taskmaster-api/internal/platform/logger"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run database migrations and exit")
	createAdmin := flag.Bool("create-admin", false,
		"create an administrator from the TASKMASTER_ADMIN_* environment variables and exit")
	flag.Parse()

	if err := run(*migrateOnly, *createAdmin); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

// run loads configuration, wires dependencies and starts the server.
// Split from main so failures propagate as errors rather than os.Exit.
func run(migrateOnly, createAdmin bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"reminder_enabled", cfg.Reminder.Enabled)

	db, err := setupAppDatabase(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}

	if err := runMigrations(db, appLogger); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	if migrateOnly {
		appLogger.Info("Migrations applied, exiting (migrate-only)")
		return db.Close()
	}

	if createAdmin {
		if err := createAdminUser(context.Background(), cfg, appLogger, db); err != nil {
			_ = db.Close()
			return err
		}
		return db.Close()
	}

	ctx := context.Background()
	app, err := newApplication(ctx, cfg, appLogger, db)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
