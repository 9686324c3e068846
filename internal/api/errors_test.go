package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taskmaster/taskmaster-api/internal/domain"
	"github.com/taskmaster/taskmaster-api/internal/service"
	"github.com/taskmaster/taskmaster-api/internal/service/auth"
	"github.com/taskmaster/taskmaster-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"invalid credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"task not found", store.ErrTaskNotFound, http.StatusNotFound},
		{"category not found", store.ErrCategoryNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("loading: %w", store.ErrTaskNotFound), http.StatusNotFound},
		{"already completed", domain.ErrTaskAlreadyCompleted, http.StatusBadRequest},
		{"already pending", domain.ErrTaskAlreadyPending, http.StatusBadRequest},
		{"duplicate username", store.ErrUsernameExists, http.StatusConflict},
		{"duplicate email", store.ErrEmailExists, http.StatusConflict},
		{"invalid category", service.ErrInvalidCategory, http.StatusBadRequest},
		{"domain validation sentinel", domain.ErrDueDateNotFuture, http.StatusBadRequest},
		{"validation error type", domain.NewValidationError("title", "cannot be empty", domain.ErrValidation), http.StatusBadRequest},
		{"unknown error", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	// Internal details never reach the client
	internal := errors.New("pq: connection to postgres://admin:secret@db failed")
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(internal))

	assert.Equal(t, "Task is already completed", GetSafeErrorMessage(domain.ErrTaskAlreadyCompleted))
	assert.Equal(t, "Task is already pending", GetSafeErrorMessage(domain.ErrTaskAlreadyPending))
	assert.Equal(t, "Task not found", GetSafeErrorMessage(store.ErrTaskNotFound))
	assert.Equal(t, "Username already exists", GetSafeErrorMessage(store.ErrUsernameExists))
	assert.Equal(t, "Invalid credentials", GetSafeErrorMessage(service.ErrInvalidCredentials))

	// Domain validation sentinels are user-facing as-is
	assert.Equal(t, domain.ErrDueDateNotFuture.Error(), GetSafeErrorMessage(domain.ErrDueDateNotFuture))
}
