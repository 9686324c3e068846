// Package reminder implements the daily due-task reminder job: a scheduled
// scan that emails each user about their pending tasks due the next day.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/taskmaster/taskmaster-api/internal/domain"
	"github.com/taskmaster/taskmaster-api/internal/platform/mail"
	"github.com/taskmaster/taskmaster-api/internal/store"
)

// Service scans for tasks due tomorrow and sends one reminder email per
// task to its owner. Delivery failures are logged and skipped so a single
// bad address never blocks the rest of the batch.
type Service struct {
	taskStore store.TaskStore
	userStore store.UserStore
	mailer    mail.Mailer
	timeFunc  func() time.Time
	logger    *slog.Logger
}

// NewService creates a reminder Service.
func NewService(
	taskStore store.TaskStore,
	userStore store.UserStore,
	mailer mail.Mailer,
	logger *slog.Logger,
) (*Service, error) {
	if taskStore == nil {
		return nil, domain.NewValidationError("taskStore", "cannot be nil", domain.ErrValidation)
	}
	if userStore == nil {
		return nil, domain.NewValidationError("userStore", "cannot be nil", domain.ErrValidation)
	}
	if mailer == nil {
		return nil, domain.NewValidationError("mailer", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		return nil, domain.NewValidationError("logger", "cannot be nil", domain.ErrValidation)
	}

	return &Service{
		taskStore: taskStore,
		userStore: userStore,
		mailer:    mailer,
		timeFunc:  time.Now,
		logger:    logger.With(slog.String("component", "reminder_service")),
	}, nil
}

// Run performs one reminder scan: every pending task due tomorrow produces
// one email to its owner. Returns the number of reminders sent.
func (s *Service) Run(ctx context.Context) (int, error) {
	tomorrow := s.timeFunc().UTC().AddDate(0, 0, 1)

	tasks, err := s.taskStore.ListDueOn(ctx, tomorrow)
	if err != nil {
		return 0, fmt.Errorf("listing tasks due tomorrow: %w", err)
	}

	s.logger.Info("reminder scan started",
		slog.String("due_day", tomorrow.Format("2006-01-02")),
		slog.Int("task_count", len(tasks)))

	// Owners repeat across tasks; cache lookups within one scan.
	users := make(map[uuid.UUID]*domain.User)
	sent := 0

	for _, task := range tasks {
		user, ok := users[task.UserID]
		if !ok {
			user, err = s.userStore.GetByID(ctx, task.UserID)
			if err != nil {
				s.logger.Warn("skipping reminder, owner lookup failed",
					slog.String("task_id", task.ID.String()),
					slog.String("user_id", task.UserID.String()),
					slog.String("error", err.Error()))
				continue
			}
			users[task.UserID] = user
		}

		subject, body := composeReminder(task)
		if err := s.mailer.Send(user.Email, subject, body); err != nil {
			s.logger.Warn("reminder delivery failed",
				slog.String("task_id", task.ID.String()),
				slog.String("error", err.Error()))
			continue
		}
		sent++
	}

	s.logger.Info("reminder scan finished", slog.Int("sent", sent))
	return sent, nil
}

// composeReminder builds the subject and plain-text body for one task.
func composeReminder(task *domain.Task) (subject, body string) {
	subject = fmt.Sprintf("Reminder: %q is due tomorrow", task.Title)
	body = fmt.Sprintf(
		"Your task %q is due on %s.\n\nPriority: %s\n",
		task.Title,
		task.DueDate.Format("2006-01-02 15:04 MST"),
		task.Priority,
	)
	if task.Description != "" {
		body += "\n" + task.Description + "\n"
	}
	return subject, body
}
