package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/taskmaster/taskmaster-api/internal/api"
	"github.com/taskmaster/taskmaster-api/internal/config"
	"github.com/taskmaster/taskmaster-api/internal/platform/mail"
	"github.com/taskmaster/taskmaster-api/internal/platform/postgres"
	"github.com/taskmaster/taskmaster-api/internal/reminder"
	"github.com/taskmaster/taskmaster-api/internal/service"
	"github.com/taskmaster/taskmaster-api/internal/service/auth"
	"github.com/taskmaster/taskmaster-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore     store.UserStore
	categoryStore store.CategoryStore
	taskStore     store.TaskStore
	historyStore  store.TaskHistoryStore

	// Services
	jwtService      auth.JWTService
	passwordHasher  *auth.BcryptHasher
	userService     service.UserService
	categoryService service.CategoryService
	taskService     service.TaskService

	// Background reminder job, nil when disabled.
	reminderScheduler *reminder.Scheduler
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before application
// initialization.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordHasher = auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.categoryStore = postgres.NewPostgresCategoryStore(db, logger)
	app.taskStore = postgres.NewPostgresTaskStore(db, logger)
	app.historyStore = postgres.NewPostgresTaskHistoryStore(db, logger)

	app.userService, err = service.NewUserService(
		app.userStore,
		app.passwordHasher,
		cfg.Server.PageSize,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	app.categoryService, err = service.NewCategoryService(app.categoryStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create category service: %w", err)
	}

	app.taskService, err = service.NewTaskService(
		db,
		app.taskStore,
		app.historyStore,
		app.categoryStore,
		cfg.Server.PageSize,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	if cfg.Reminder.Enabled {
		if err := app.setupReminderJob(); err != nil {
			return nil, fmt.Errorf("failed to set up reminder job: %w", err)
		}
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// setupReminderJob wires the SMTP mailer, reminder service and cron
// scheduler, and registers the daily scan.
func (app *application) setupReminderJob() error {
	mailer := mail.NewSMTPMailer(app.config.SMTP)

	svc, err := reminder.NewService(app.taskStore, app.userStore, mailer, app.logger)
	if err != nil {
		return err
	}

	loc := time.UTC
	if app.config.Reminder.Timezone != "" {
		loc, err = time.LoadLocation(app.config.Reminder.Timezone)
		if err != nil {
			return fmt.Errorf("invalid reminder timezone %q: %w", app.config.Reminder.Timezone, err)
		}
	}

	app.reminderScheduler = reminder.NewScheduler(svc, loc, app.logger)
	if err := app.reminderScheduler.ScheduleDaily(app.config.Reminder.Time); err != nil {
		return err
	}

	return nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// authHandler builds the authentication handler from application services.
func (app *application) authHandler() *api.AuthHandler {
	return api.NewAuthHandler(
		app.userService,
		app.userStore,
		app.jwtService,
		app.passwordHasher,
	)
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.reminderScheduler != nil {
		app.reminderScheduler.Stop()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
