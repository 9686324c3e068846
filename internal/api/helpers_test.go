package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/taskmaster/taskmaster-api/internal/api/shared"
	"github.com/taskmaster/taskmaster-api/internal/service"
)

// discardLogger keeps handler logging out of test output.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// injectUser simulates the authentication middleware by placing a user ID
// in the request context.
func injectUser(userID uuid.UUID) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), shared.UserIDContextKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// newTaskRouter mounts the task routes behind a fake authenticated user.
func newTaskRouter(userID uuid.UUID, taskSvc service.TaskService, categorySvc service.CategoryService) http.Handler {
	handler := NewTaskHandler(taskSvc, categorySvc, discardLogger())

	r := chi.NewRouter()
	r.Use(injectUser(userID))
	r.Get("/tasks", handler.ListTasks)
	r.Post("/tasks", handler.CreateTask)
	r.Get("/tasks/completed", handler.ListCompleted)
	r.Get("/tasks/upcoming", handler.ListUpcoming)
	r.Get("/tasks/{id}", handler.GetTask)
	r.Put("/tasks/{id}", handler.UpdateTask)
	r.Delete("/tasks/{id}", handler.DeleteTask)
	r.Post("/tasks/{id}/mark_complete", handler.MarkComplete)
	r.Post("/tasks/{id}/mark_incomplete", handler.MarkIncomplete)
	r.Get("/tasks/{id}/history", handler.GetHistory)
	return r
}

// doRequest executes an HTTP request against the handler and returns the
// recorded response.
func doRequest(t *testing.T, handler http.Handler, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// decodeResponse unmarshals the recorded JSON body into out.
func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}
