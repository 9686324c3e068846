package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/taskmaster/taskmaster-api/internal/domain"
	"github.com/taskmaster/taskmaster-api/internal/platform/logger"
	"github.com/taskmaster/taskmaster-api/internal/store"
)

// taskColumns is the select list shared by every task read.
const taskColumns = `id, user_id, category_id, title, description, due_date, priority, status,
		completed_at, is_recurring, recurrence_interval, recurrence_end_date, created_at, updated_at`

// priorityOrderExpr maps the priority enum to its rank so ORDER BY follows
// urgency instead of alphabetical order.
const priorityOrderExpr = "CASE priority WHEN 'LOW' THEN 1 WHEN 'MEDIUM' THEN 2 WHEN 'HIGH' THEN 3 END"

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the
// TaskStore interface. If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// WithTx implements store.TaskStore.WithTx
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{db: tx, logger: s.logger}
}

// scanTask reads one task row from any scanner (sql.Row or sql.Rows).
func scanTask(scan func(dest ...any) error) (*domain.Task, error) {
	var task domain.Task
	err := scan(
		&task.ID,
		&task.UserID,
		&task.CategoryID,
		&task.Title,
		&task.Description,
		&task.DueDate,
		&task.Priority,
		&task.Status,
		&task.CompletedAt,
		&task.IsRecurring,
		&task.RecurrenceInterval,
		&task.RecurrenceEndDate,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Create implements store.TaskStore.Create
// Returns store.ErrInvalidEntity if the owning user or the referenced
// category does not exist.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	query := `
		INSERT INTO tasks (id, user_id, category_id, title, description, due_date, priority,
			status, completed_at, is_recurring, recurrence_interval, recurrence_end_date,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.UserID,
		task.CategoryID,
		task.Title,
		task.Description,
		task.DueDate,
		task.Priority,
		task.Status,
		task.CompletedAt,
		task.IsRecurring,
		task.RecurrenceInterval,
		task.RecurrenceEndDate,
		task.CreatedAt,
		task.UpdatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during task creation",
				slog.String("task_id", task.ID.String()))
			return MapForeignKeyViolation(err, "referenced row does not exist")
		}

		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return MapError(err)
	}

	log.Info("task created successfully",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", task.UserID.String()))
	return nil
}

// GetByID implements store.TaskStore.GetByID
// The ownership predicate is part of the query: another user's task is
// indistinguishable from a missing one.
func (s *PostgresTaskStore) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(
		"SELECT %s FROM tasks WHERE id = $1 AND user_id = $2",
		taskColumns,
	)

	row := s.db.QueryRowContext(ctx, query, id, userID)
	task, err := scanTask(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found",
				slog.String("task_id", id.String()),
				slog.String("user_id", userID.String()))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, err
	}

	return task, nil
}

// List implements store.TaskStore.List
// The ownership predicate is applied before any filter. Pagination is
// 1-based; a page past the end yields an empty slice.
func (s *PostgresTaskStore) List(ctx context.Context, userID uuid.UUID, filter store.TaskFilter) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT %s FROM tasks WHERE user_id = $1", taskColumns)
	args := []any{userID}

	if filter.Status != "" {
		args = append(args, filter.Status)
		fmt.Fprintf(&sb, " AND status = $%d", len(args))
	}
	if filter.Priority != "" {
		args = append(args, filter.Priority)
		fmt.Fprintf(&sb, " AND priority = $%d", len(args))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		fmt.Fprintf(&sb, " AND category_id = $%d", len(args))
	}
	if filter.DueOn != nil {
		dayStart := filter.DueOn.UTC().Truncate(24 * time.Hour)
		args = append(args, dayStart)
		fmt.Fprintf(&sb, " AND due_date >= $%d", len(args))
		args = append(args, dayStart.Add(24*time.Hour))
		fmt.Fprintf(&sb, " AND due_date < $%d", len(args))
	}

	orderExpr := "due_date"
	switch filter.SortBy {
	case store.SortByPriority:
		orderExpr = priorityOrderExpr
	case store.SortByDueDate, "":
		orderExpr = "due_date"
	}
	direction := "ASC"
	if filter.SortDescending {
		direction = "DESC"
	}
	fmt.Fprintf(&sb, " ORDER BY %s %s, created_at ASC", orderExpr, direction)

	page := filter.Page
	if page < 1 {
		page = 1
	}
	if filter.PageSize > 0 {
		args = append(args, filter.PageSize)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
		args = append(args, (page-1)*filter.PageSize)
		fmt.Fprintf(&sb, " OFFSET $%d", len(args))
	}

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		log.Error("failed to list tasks",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return collectTasks(rows)
}

// ListUpcoming implements store.TaskStore.ListUpcoming
// A task is upcoming when it is pending and either due at or after now or
// recurring, ordered by due date ascending.
func (s *PostgresTaskStore) ListUpcoming(ctx context.Context, userID uuid.UUID, now time.Time, page, pageSize int) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if page < 1 {
		page = 1
	}

	query := fmt.Sprintf(`
		SELECT %s FROM tasks
		WHERE user_id = $1
		  AND status = $2
		  AND (due_date >= $3 OR is_recurring)
		ORDER BY due_date ASC
		LIMIT $4 OFFSET $5
	`, taskColumns)

	rows, err := s.db.QueryContext(
		ctx,
		query,
		userID,
		domain.StatusPending,
		now.UTC(),
		pageSize,
		(page-1)*pageSize,
	)
	if err != nil {
		log.Error("failed to list upcoming tasks",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return collectTasks(rows)
}

// ListDueOn implements store.TaskStore.ListDueOn
// The reminder job's scan: pending tasks across all users whose due date
// falls on the given calendar day (UTC).
func (s *PostgresTaskStore) ListDueOn(ctx context.Context, day time.Time) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	dayStart := day.UTC().Truncate(24 * time.Hour)
	query := fmt.Sprintf(`
		SELECT %s FROM tasks
		WHERE status = $1 AND due_date >= $2 AND due_date < $3
		ORDER BY due_date ASC
	`, taskColumns)

	rows, err := s.db.QueryContext(
		ctx,
		query,
		domain.StatusPending,
		dayStart,
		dayStart.Add(24*time.Hour),
	)
	if err != nil {
		log.Error("failed to list tasks due on day",
			slog.String("error", err.Error()),
			slog.Time("day", dayStart))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return collectTasks(rows)
}

// collectTasks drains a task result set.
func collectTasks(rows *sql.Rows) ([]*domain.Task, error) {
	tasks := []*domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows.Scan)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// Update implements store.TaskStore.Update
// The owning user never changes; the WHERE clause pins both id and owner.
// Returns store.ErrTaskNotFound if it does not exist or is not owned by
// task.UserID.
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	query := `
		UPDATE tasks
		SET category_id = $3, title = $4, description = $5, due_date = $6, priority = $7,
			status = $8, completed_at = $9, is_recurring = $10, recurrence_interval = $11,
			recurrence_end_date = $12, updated_at = $13
		WHERE id = $1 AND user_id = $2
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.UserID,
		task.CategoryID,
		task.Title,
		task.Description,
		task.DueDate,
		task.Priority,
		task.Status,
		task.CompletedAt,
		task.IsRecurring,
		task.RecurrenceInterval,
		task.RecurrenceEndDate,
		task.UpdatedAt,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return MapForeignKeyViolation(err, "referenced row does not exist")
		}
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrTaskNotFound); err != nil {
		return err
	}

	log.Info("task updated successfully",
		slog.String("task_id", task.ID.String()),
		slog.String("status", string(task.Status)))
	return nil
}

// Delete implements store.TaskStore.Delete
// History records cascade in the schema.
func (s *PostgresTaskStore) Delete(ctx context.Context, userID, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(
		ctx,
		"DELETE FROM tasks WHERE id = $1 AND user_id = $2",
		id,
		userID,
	)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return err
	}

	if err := CheckRowsAffected(result, store.ErrTaskNotFound); err != nil {
		return err
	}

	log.Info("task deleted successfully",
		slog.String("task_id", id.String()),
		slog.String("user_id", userID.String()))
	return nil
}
