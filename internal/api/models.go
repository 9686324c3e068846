package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/taskmaster/taskmaster-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=150"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	UserID uuid.UUID `json:"user_id"`
	Token  string    `json:"token"`
}

// UserRequest defines the admin payload for creating or updating a user.
// Password is write-only and optional on update.
type UserRequest struct {
	Username string `json:"username" validate:"required,max=150"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password,omitempty" validate:"omitempty,min=8,max=72"`
}

// UserResponse defines the representation of a user returned by the API.
// The password is never echoed back in any form.
type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

// CategoryRequest defines the payload for creating or updating a category.
// The owner is implicit: it is always the authenticated caller.
type CategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// CategoryResponse defines the representation of a category.
type CategoryResponse struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	UserID uuid.UUID `json:"user"`
}

// TaskRequest defines the payload for creating or updating a task.
// CategoryID is a write-only reference; reads return the nested category.
type TaskRequest struct {
	Title              string     `json:"title"       validate:"required,max=200"`
	Description        string     `json:"description"`
	DueDate            time.Time  `json:"due_date"    validate:"required"`
	Priority           string     `json:"priority"    validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	CategoryID         *uuid.UUID `json:"category_id,omitempty"`
	IsRecurring        bool       `json:"is_recurring"`
	RecurrenceInterval *int       `json:"recurrence_interval,omitempty" validate:"omitempty,gt=0"`
	RecurrenceEndDate  *time.Time `json:"recurrence_end_date,omitempty"`
}

// TaskResponse defines the representation of a task. Timestamps and status
// are read-only; the category appears as a nested read-only object.
type TaskResponse struct {
	ID                 uuid.UUID         `json:"id"`
	Title              string            `json:"title"`
	Description        string            `json:"description"`
	DueDate            time.Time         `json:"due_date"`
	Priority           string            `json:"priority"`
	Status             string            `json:"status"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
	CompletedAt        *time.Time        `json:"completed_at"`
	Category           *CategoryResponse `json:"category"`
	IsRecurring        bool              `json:"is_recurring"`
	RecurrenceInterval *int              `json:"recurrence_interval"`
	RecurrenceEndDate  *time.Time        `json:"recurrence_end_date"`
}

// TaskHistoryResponse defines the representation of one audit record.
// ChangedBy is null when the acting user has since been deleted.
type TaskHistoryResponse struct {
	ID        uuid.UUID  `json:"id"`
	OldStatus string     `json:"old_status"`
	NewStatus string     `json:"new_status"`
	ChangedAt time.Time  `json:"changed_at"`
	ChangedBy *uuid.UUID `json:"changed_by"`
}

// DetailResponse carries a human-readable outcome message for actions that
// have no resource body, like the task transitions.
type DetailResponse struct {
	Detail string `json:"detail"`
}

// userToResponse transforms a domain user to its API representation.
func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
}

// categoryToResponse transforms a domain category to its API representation.
func categoryToResponse(category *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:     category.ID,
		Name:   category.Name,
		UserID: category.UserID,
	}
}

// taskToResponse transforms a domain task to its API representation.
// The nested category is resolved by the handler and may be nil.
func taskToResponse(task *domain.Task, category *domain.Category) TaskResponse {
	resp := TaskResponse{
		ID:                 task.ID,
		Title:              task.Title,
		Description:        task.Description,
		DueDate:            task.DueDate,
		Priority:           string(task.Priority),
		Status:             string(task.Status),
		CreatedAt:          task.CreatedAt,
		UpdatedAt:          task.UpdatedAt,
		CompletedAt:        task.CompletedAt,
		IsRecurring:        task.IsRecurring,
		RecurrenceInterval: task.RecurrenceInterval,
		RecurrenceEndDate:  task.RecurrenceEndDate,
	}
	if category != nil {
		c := categoryToResponse(category)
		resp.Category = &c
	}
	return resp
}

// historyToResponse transforms a domain history record to its API
// representation.
func historyToResponse(history *domain.TaskHistory) TaskHistoryResponse {
	return TaskHistoryResponse{
		ID:        history.ID,
		OldStatus: string(history.OldStatus),
		NewStatus: string(history.NewStatus),
		ChangedAt: history.ChangedAt,
		ChangedBy: history.ChangedBy,
	}
}
