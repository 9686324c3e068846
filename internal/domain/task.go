package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// TaskPriority indicates how urgent a task is.
type TaskPriority string

// Valid task priorities.
const (
	PriorityLow    TaskPriority = "LOW"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityHigh   TaskPriority = "HIGH"
)

// Valid reports whether the priority is one of the known values.
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

// Valid task statuses. A task only ever moves between these two states.
const (
	StatusPending   TaskStatus = "PENDING"
	StatusCompleted TaskStatus = "COMPLETED"
)

// Valid reports whether the status is one of the known values.
func (s TaskStatus) Valid() bool {
	return s == StatusPending || s == StatusCompleted
}

// Task-specific validation and transition errors.
var (
	ErrEmptyTaskID                = errors.New("task ID cannot be empty")
	ErrTaskUserIDEmpty            = errors.New("task user ID cannot be empty")
	ErrEmptyTaskTitle             = errors.New("task title cannot be empty")
	ErrTaskTitleTooLong           = errors.New("task title must be at most 200 characters long")
	ErrZeroDueDate                = errors.New("task due date is required")
	ErrDueDateNotFuture           = errors.New("due date must be in the future")
	ErrInvalidPriority            = errors.New("invalid task priority")
	ErrInvalidStatus              = errors.New("invalid task status")
	ErrInvalidRecurrenceInterval  = errors.New("recurrence interval must be a positive number of days")
	ErrRecurrenceEndBeforeDueDate = errors.New("recurrence end date cannot be before the due date")

	// ErrTaskAlreadyCompleted is returned when completing a task that is
	// already in the COMPLETED state. The task is left unchanged.
	ErrTaskAlreadyCompleted = errors.New("task is already completed")

	// ErrTaskAlreadyPending is returned when reopening a task that is
	// already in the PENDING state. The task is left unchanged.
	ErrTaskAlreadyPending = errors.New("task is already pending")
)

// Task is a user-owned unit of work. The owning user is fixed for the
// task's lifetime; the category reference is optional and must belong to
// the same user. CompletedAt is set exactly when Status is COMPLETED.
//
// The recurrence fields are descriptive metadata: they are stored,
// validated and surfaced, and the upcoming view treats recurring tasks as
// always relevant, but nothing regenerates tasks from them.
type Task struct {
	ID                 uuid.UUID    `json:"id"`
	UserID             uuid.UUID    `json:"user_id"`
	CategoryID         *uuid.UUID   `json:"category_id,omitempty"`
	Title              string       `json:"title"`
	Description        string       `json:"description,omitempty"`
	DueDate            time.Time    `json:"due_date"`
	Priority           TaskPriority `json:"priority"`
	Status             TaskStatus   `json:"status"`
	CompletedAt        *time.Time   `json:"completed_at,omitempty"`
	IsRecurring        bool         `json:"is_recurring"`
	RecurrenceInterval *int         `json:"recurrence_interval,omitempty"` // days
	RecurrenceEndDate  *time.Time   `json:"recurrence_end_date,omitempty"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

// NewTask creates a PENDING task owned by the given user. Priority defaults
// to MEDIUM when empty. Returns an error if validation fails.
func NewTask(userID uuid.UUID, title, description string, dueDate time.Time, priority TaskPriority) (*Task, error) {
	if priority == "" {
		priority = PriorityMedium
	}

	now := time.Now().UTC()
	task := &Task{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		Priority:    priority,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks structural invariants of the Task. The due-date-in-the-
// future rule is a boundary concern checked by ValidateDueDate at create
// and update time, not here: tasks loaded from the store legitimately have
// past due dates.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}

	if t.UserID == uuid.Nil {
		return ErrTaskUserIDEmpty
	}

	if t.Title == "" {
		return ErrEmptyTaskTitle
	}
	if len(t.Title) > 200 {
		return ErrTaskTitleTooLong
	}

	if t.DueDate.IsZero() {
		return ErrZeroDueDate
	}

	if !t.Priority.Valid() {
		return ErrInvalidPriority
	}
	if !t.Status.Valid() {
		return ErrInvalidStatus
	}

	// completed_at must be set exactly when the task is completed
	if t.Status == StatusCompleted && t.CompletedAt == nil {
		return errors.New("completed task must have a completion time")
	}
	if t.Status == StatusPending && t.CompletedAt != nil {
		return errors.New("pending task cannot have a completion time")
	}

	if t.IsRecurring {
		if t.RecurrenceInterval == nil || *t.RecurrenceInterval <= 0 {
			return ErrInvalidRecurrenceInterval
		}
		if t.RecurrenceEndDate != nil && t.RecurrenceEndDate.Before(t.DueDate) {
			return ErrRecurrenceEndBeforeDueDate
		}
	}

	return nil
}

// ValidateDueDate enforces the boundary rule that the due date is strictly
// later than now. Called when a task is created or its due date updated.
func (t *Task) ValidateDueDate(now time.Time) error {
	if !t.DueDate.After(now) {
		return NewValidationError("due_date", "must be in the future", ErrDueDateNotFuture)
	}
	return nil
}

// MarkComplete transitions the task from PENDING to COMPLETED, setting the
// completion time. Returns ErrTaskAlreadyCompleted without mutating the
// task if it is already completed.
func (t *Task) MarkComplete(now time.Time) error {
	if t.Status == StatusCompleted {
		return ErrTaskAlreadyCompleted
	}

	completedAt := now.UTC()
	t.Status = StatusCompleted
	t.CompletedAt = &completedAt
	t.UpdatedAt = completedAt
	return nil
}

// MarkIncomplete transitions the task from COMPLETED back to PENDING,
// clearing the completion time. Returns ErrTaskAlreadyPending without
// mutating the task if it is already pending.
func (t *Task) MarkIncomplete(now time.Time) error {
	if t.Status == StatusPending {
		return ErrTaskAlreadyPending
	}

	t.Status = StatusPending
	t.CompletedAt = nil
	t.UpdatedAt = now.UTC()
	return nil
}
