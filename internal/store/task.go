package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/taskmaster/taskmaster-api/internal/domain"
)

// TaskSortField selects the column task listings are ordered by.
type TaskSortField string

// Supported task orderings.
const (
	SortByDueDate  TaskSortField = "due_date"
	SortByPriority TaskSortField = "priority"
)

// TaskFilter narrows and orders a task listing. Zero-valued fields are
// ignored. The ownership predicate is always applied first and is not part
// of the filter.
type TaskFilter struct {
	Status     domain.TaskStatus
	Priority   domain.TaskPriority
	CategoryID *uuid.UUID

	// DueOn matches tasks whose due date falls on this calendar day (UTC).
	DueOn *time.Time

	SortBy         TaskSortField
	SortDescending bool

	// Page is 1-based. A page past the end yields an empty result.
	Page     int
	PageSize int
}

// TaskStore defines the interface for task and task-history persistence.
// Every read and write is scoped to the owning user before any other
// predicate, so foreign task IDs surface as ErrTaskNotFound.
type TaskStore interface {
	// Create saves a new task.
	// Returns ErrInvalidEntity if the owning user or category is missing.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves one of userID's tasks by ID.
	// Returns ErrTaskNotFound if it does not exist or is not theirs.
	GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Task, error)

	// List returns userID's tasks narrowed by the filter.
	List(ctx context.Context, userID uuid.UUID, filter TaskFilter) ([]*domain.Task, error)

	// ListUpcoming returns userID's pending tasks that are either due now
	// or later, or recurring, ordered by due date ascending.
	ListUpcoming(ctx context.Context, userID uuid.UUID, now time.Time, page, pageSize int) ([]*domain.Task, error)

	// ListDueOn returns all pending tasks, across users, due on the given
	// calendar day. Used by the reminder job.
	ListDueOn(ctx context.Context, day time.Time) ([]*domain.Task, error)

	// Update modifies one of userID's tasks. The owning user never changes.
	// Returns ErrTaskNotFound if it does not exist or is not theirs.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes one of userID's tasks along with its history records.
	// Returns ErrTaskNotFound if it does not exist or is not theirs.
	Delete(ctx context.Context, userID, id uuid.UUID) error

	// WithTx returns a TaskStore that runs against the given transaction.
	WithTx(tx *sql.Tx) TaskStore
}

// TaskHistoryStore defines the interface for the immutable audit ledger of
// task status transitions. Records are only ever appended.
type TaskHistoryStore interface {
	// Append saves a new history record.
	Append(ctx context.Context, history *domain.TaskHistory) error

	// ListByTask returns all history records for the task, newest first.
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]*domain.TaskHistory, error)

	// WithTx returns a TaskHistoryStore that runs against the given
	// transaction.
	WithTx(tx *sql.Tx) TaskHistoryStore
}
