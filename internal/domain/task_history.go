package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// TaskHistory validation errors.
var (
	ErrEmptyHistoryID     = errors.New("history ID cannot be empty")
	ErrHistoryTaskIDEmpty = errors.New("history task ID cannot be empty")
	ErrHistorySameStatus  = errors.New("history must record a status change")
)

// TaskHistory is an immutable audit record of a single status transition.
// ChangedBy is the user who triggered the transition; it becomes nil if
// that user is later deleted, but the record itself persists.
type TaskHistory struct {
	ID        uuid.UUID  `json:"id"`
	TaskID    uuid.UUID  `json:"task_id"`
	OldStatus TaskStatus `json:"old_status"`
	NewStatus TaskStatus `json:"new_status"`
	ChangedAt time.Time  `json:"changed_at"`
	ChangedBy *uuid.UUID `json:"changed_by,omitempty"`
}

// NewTaskHistory creates an audit record for a transition from oldStatus to
// newStatus performed by the given actor at changedAt.
func NewTaskHistory(taskID uuid.UUID, oldStatus, newStatus TaskStatus, actor uuid.UUID, changedAt time.Time) (*TaskHistory, error) {
	history := &TaskHistory{
		ID:        uuid.New(),
		TaskID:    taskID,
		OldStatus: oldStatus,
		NewStatus: newStatus,
		ChangedAt: changedAt.UTC(),
		ChangedBy: &actor,
	}

	if err := history.Validate(); err != nil {
		return nil, err
	}

	return history, nil
}

// Validate checks if the TaskHistory has valid data.
func (h *TaskHistory) Validate() error {
	if h.ID == uuid.Nil {
		return ErrEmptyHistoryID
	}

	if h.TaskID == uuid.Nil {
		return ErrHistoryTaskIDEmpty
	}

	if !h.OldStatus.Valid() || !h.NewStatus.Valid() {
		return ErrInvalidStatus
	}

	if h.OldStatus == h.NewStatus {
		return ErrHistorySameStatus
	}

	return nil
}
