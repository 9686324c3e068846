package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/taskmaster/taskmaster-api/internal/domain"
	"github.com/taskmaster/taskmaster-api/internal/platform/logger"
	"github.com/taskmaster/taskmaster-api/internal/store"
)

// TaskParams carries the caller-supplied fields for creating or updating a
// task. Updates replace the mutable fields wholesale; status and ownership
// are never set through params.
type TaskParams struct {
	Title              string
	Description        string
	DueDate            time.Time
	Priority           domain.TaskPriority
	CategoryID         *uuid.UUID
	IsRecurring        bool
	RecurrenceInterval *int
	RecurrenceEndDate  *time.Time
}

// TaskService provides task operations scoped to the requesting user.
type TaskService interface {
	// CreateTask creates a task owned by userID. The due date must be in
	// the future and any referenced category must belong to userID.
	CreateTask(ctx context.Context, userID uuid.UUID, params TaskParams) (*domain.Task, error)

	// GetTask retrieves one of userID's tasks.
	GetTask(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error)

	// ListTasks returns userID's tasks narrowed by the filter.
	ListTasks(ctx context.Context, userID uuid.UUID, filter store.TaskFilter) ([]*domain.Task, error)

	// ListCompleted returns userID's completed tasks, paginated.
	ListCompleted(ctx context.Context, userID uuid.UUID, page int) ([]*domain.Task, error)

	// ListUpcoming returns userID's pending tasks due now or later, or
	// recurring, ordered by due date ascending, paginated.
	ListUpcoming(ctx context.Context, userID uuid.UUID, page int) ([]*domain.Task, error)

	// UpdateTask replaces the mutable fields of one of userID's tasks,
	// applying the same validation as CreateTask.
	UpdateTask(ctx context.Context, userID, taskID uuid.UUID, params TaskParams) (*domain.Task, error)

	// DeleteTask removes one of userID's tasks and its history.
	DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error

	// CompleteTask transitions a pending task to COMPLETED and appends the
	// audit record, atomically. Returns domain.ErrTaskAlreadyCompleted
	// without mutation if the task is already completed.
	CompleteTask(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error)

	// ReopenTask transitions a completed task back to PENDING and appends
	// the audit record, atomically. Returns domain.ErrTaskAlreadyPending
	// without mutation if the task is already pending.
	ReopenTask(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error)

	// GetHistory returns the transition history of one of userID's tasks,
	// newest first.
	GetHistory(ctx context.Context, userID, taskID uuid.UUID) ([]*domain.TaskHistory, error)
}

// taskServiceImpl implements the TaskService interface.
type taskServiceImpl struct {
	db            *sql.DB
	taskStore     store.TaskStore
	historyStore  store.TaskHistoryStore
	categoryStore store.CategoryStore
	pageSize      int
	timeFunc      func() time.Time // Injectable for testing
	logger        *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if any of the required dependencies are nil.
func NewTaskService(
	db *sql.DB,
	taskStore store.TaskStore,
	historyStore store.TaskHistoryStore,
	categoryStore store.CategoryStore,
	pageSize int,
	logger *slog.Logger,
) (TaskService, error) {
	if taskStore == nil {
		return nil, domain.NewValidationError("taskStore", "cannot be nil", domain.ErrValidation)
	}
	if historyStore == nil {
		return nil, domain.NewValidationError("historyStore", "cannot be nil", domain.ErrValidation)
	}
	if categoryStore == nil {
		return nil, domain.NewValidationError("categoryStore", "cannot be nil", domain.ErrValidation)
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		db:            db,
		taskStore:     taskStore,
		historyStore:  historyStore,
		categoryStore: categoryStore,
		pageSize:      pageSize,
		timeFunc:      time.Now,
		logger:        logger.With(slog.String("component", "task_service")),
	}, nil
}

// resolveCategory verifies that a referenced category belongs to the
// requesting user. A category that is missing or owned by someone else
// yields ErrInvalidCategory and the write is rejected entirely.
func (s *taskServiceImpl) resolveCategory(ctx context.Context, userID uuid.UUID, categoryID *uuid.UUID) error {
	if categoryID == nil {
		return nil
	}

	if _, err := s.categoryStore.GetByID(ctx, userID, *categoryID); err != nil {
		if errors.Is(err, store.ErrCategoryNotFound) {
			return ErrInvalidCategory
		}
		return err
	}
	return nil
}

// CreateTask implements TaskService.CreateTask
func (s *taskServiceImpl) CreateTask(ctx context.Context, userID uuid.UUID, params TaskParams) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(userID, params.Title, params.Description, params.DueDate, params.Priority)
	if err != nil {
		return nil, err
	}
	task.CategoryID = params.CategoryID
	task.IsRecurring = params.IsRecurring
	task.RecurrenceInterval = params.RecurrenceInterval
	task.RecurrenceEndDate = params.RecurrenceEndDate

	if err := task.Validate(); err != nil {
		return nil, err
	}
	if err := task.ValidateDueDate(s.timeFunc()); err != nil {
		return nil, err
	}
	if err := s.resolveCategory(ctx, userID, params.CategoryID); err != nil {
		return nil, err
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		return nil, err
	}

	log.Debug("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", userID.String()))
	return task, nil
}

// GetTask implements TaskService.GetTask
func (s *taskServiceImpl) GetTask(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error) {
	return s.taskStore.GetByID(ctx, userID, taskID)
}

// ListTasks implements TaskService.ListTasks
func (s *taskServiceImpl) ListTasks(ctx context.Context, userID uuid.UUID, filter store.TaskFilter) ([]*domain.Task, error) {
	if filter.PageSize <= 0 {
		filter.PageSize = s.pageSize
	}
	return s.taskStore.List(ctx, userID, filter)
}

// ListCompleted implements TaskService.ListCompleted
func (s *taskServiceImpl) ListCompleted(ctx context.Context, userID uuid.UUID, page int) ([]*domain.Task, error) {
	return s.taskStore.List(ctx, userID, store.TaskFilter{
		Status:   domain.StatusCompleted,
		Page:     page,
		PageSize: s.pageSize,
	})
}

// ListUpcoming implements TaskService.ListUpcoming
func (s *taskServiceImpl) ListUpcoming(ctx context.Context, userID uuid.UUID, page int) ([]*domain.Task, error) {
	return s.taskStore.ListUpcoming(ctx, userID, s.timeFunc(), page, s.pageSize)
}

// UpdateTask implements TaskService.UpdateTask
func (s *taskServiceImpl) UpdateTask(ctx context.Context, userID, taskID uuid.UUID, params TaskParams) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.taskStore.GetByID(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	task.Title = params.Title
	task.Description = params.Description
	task.DueDate = params.DueDate
	if params.Priority != "" {
		task.Priority = params.Priority
	}
	task.CategoryID = params.CategoryID
	task.IsRecurring = params.IsRecurring
	task.RecurrenceInterval = params.RecurrenceInterval
	task.RecurrenceEndDate = params.RecurrenceEndDate
	task.UpdatedAt = s.timeFunc().UTC()

	if err := task.Validate(); err != nil {
		return nil, err
	}
	if err := task.ValidateDueDate(s.timeFunc()); err != nil {
		return nil, err
	}
	if err := s.resolveCategory(ctx, userID, params.CategoryID); err != nil {
		return nil, err
	}

	if err := s.taskStore.Update(ctx, task); err != nil {
		return nil, err
	}

	log.Debug("task updated", slog.String("task_id", task.ID.String()))
	return task, nil
}

// DeleteTask implements TaskService.DeleteTask
func (s *taskServiceImpl) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	return s.taskStore.Delete(ctx, userID, taskID)
}

// transition runs a status transition and its history append inside one
// transaction: either both the task update and the history insert land, or
// neither does.
func (s *taskServiceImpl) transition(
	ctx context.Context,
	userID, taskID uuid.UUID,
	mutate func(task *domain.Task, now time.Time) error,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var result *domain.Task
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txTasks := s.taskStore.WithTx(tx)
		txHistory := s.historyStore.WithTx(tx)

		task, err := txTasks.GetByID(ctx, userID, taskID)
		if err != nil {
			return err
		}

		oldStatus := task.Status
		now := s.timeFunc()
		if err := mutate(task, now); err != nil {
			return err
		}

		if err := txTasks.Update(ctx, task); err != nil {
			return err
		}

		history, err := domain.NewTaskHistory(task.ID, oldStatus, task.Status, userID, now)
		if err != nil {
			return err
		}
		if err := txHistory.Append(ctx, history); err != nil {
			return err
		}

		result = task
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("task status transition recorded",
		slog.String("task_id", taskID.String()),
		slog.String("user_id", userID.String()),
		slog.String("status", string(result.Status)))
	return result, nil
}

// CompleteTask implements TaskService.CompleteTask
func (s *taskServiceImpl) CompleteTask(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error) {
	return s.transition(ctx, userID, taskID, func(task *domain.Task, now time.Time) error {
		return task.MarkComplete(now)
	})
}

// ReopenTask implements TaskService.ReopenTask
func (s *taskServiceImpl) ReopenTask(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error) {
	return s.transition(ctx, userID, taskID, func(task *domain.Task, now time.Time) error {
		return task.MarkIncomplete(now)
	})
}

// GetHistory implements TaskService.GetHistory
// Ownership is established by loading the task first; a foreign task
// surfaces as store.ErrTaskNotFound before any history is read.
func (s *taskServiceImpl) GetHistory(ctx context.Context, userID, taskID uuid.UUID) ([]*domain.TaskHistory, error) {
	if _, err := s.taskStore.GetByID(ctx, userID, taskID); err != nil {
		return nil, err
	}
	return s.historyStore.ListByTask(ctx, taskID)
}
