package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/taskmaster/taskmaster-api/internal/api/shared"
	"github.com/taskmaster/taskmaster-api/internal/domain"
	"github.com/taskmaster/taskmaster-api/internal/platform/logger"
	"github.com/taskmaster/taskmaster-api/internal/service"
	"github.com/taskmaster/taskmaster-api/internal/store"
)

// TaskHandler handles task-related HTTP requests.
type TaskHandler struct {
	taskService     service.TaskService
	categoryService service.CategoryService
	validator       *validator.Validate
	logger          *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(
	taskService service.TaskService,
	categoryService service.CategoryService,
	logger *slog.Logger,
) *TaskHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}

	return &TaskHandler{
		taskService:     taskService,
		categoryService: categoryService,
		validator:       validator.New(),
		logger:          logger.With(slog.String("component", "task_handler")),
	}
}

// resolveTaskCategory loads the nested category object for a task response.
// A dangling reference degrades to a null category rather than failing the
// whole response.
func (h *TaskHandler) resolveTaskCategory(r *http.Request, userID uuid.UUID, task *domain.Task) *domain.Category {
	if task.CategoryID == nil {
		return nil
	}
	category, err := h.categoryService.GetCategory(r.Context(), userID, *task.CategoryID)
	if err != nil {
		return nil
	}
	return category
}

// respondWithTask writes a single task response with its nested category.
func (h *TaskHandler) respondWithTask(w http.ResponseWriter, r *http.Request, status int, userID uuid.UUID, task *domain.Task) {
	shared.RespondWithJSON(w, r, status, taskToResponse(task, h.resolveTaskCategory(r, userID, task)))
}

// respondWithTaskList writes a list of task responses with nested categories.
func (h *TaskHandler) respondWithTaskList(w http.ResponseWriter, r *http.Request, userID uuid.UUID, tasks []*domain.Task) {
	responses := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		responses = append(responses, taskToResponse(task, h.resolveTaskCategory(r, userID, task)))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// decodeTaskRequest decodes and validates a task payload, converting it to
// service params. Returns false after writing an error response on failure.
func (h *TaskHandler) decodeTaskRequest(w http.ResponseWriter, r *http.Request) (service.TaskParams, bool) {
	var req TaskRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return service.TaskParams{}, false
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return service.TaskParams{}, false
	}

	return service.TaskParams{
		Title:              req.Title,
		Description:        req.Description,
		DueDate:            req.DueDate,
		Priority:           domain.TaskPriority(req.Priority),
		CategoryID:         req.CategoryID,
		IsRecurring:        req.IsRecurring,
		RecurrenceInterval: req.RecurrenceInterval,
		RecurrenceEndDate:  req.RecurrenceEndDate,
	}, true
}

// CreateTask handles POST /tasks requests.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	params, ok := h.decodeTaskRequest(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), userID, params)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", userID.String()))
	h.respondWithTask(w, r, http.StatusCreated, userID, task)
}

// GetTask handles GET /tasks/{id} requests.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := handleUserIDAndPathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(r.Context(), userID, taskID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	h.respondWithTask(w, r, http.StatusOK, userID, task)
}

// ListTasks handles GET /tasks requests with optional filters:
// status, priority, category, due_date (exact day), sort (due_date or
// priority, "-" prefix for descending) and page.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	filter, err := taskFilterFromQuery(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	tasks, err := h.taskService.ListTasks(r.Context(), userID, filter)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	h.respondWithTaskList(w, r, userID, tasks)
}

// ListCompleted handles GET /tasks/completed requests.
func (h *TaskHandler) ListCompleted(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	tasks, err := h.taskService.ListCompleted(r.Context(), userID, getPageParam(r))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	h.respondWithTaskList(w, r, userID, tasks)
}

// ListUpcoming handles GET /tasks/upcoming requests.
func (h *TaskHandler) ListUpcoming(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	tasks, err := h.taskService.ListUpcoming(r.Context(), userID, getPageParam(r))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	h.respondWithTaskList(w, r, userID, tasks)
}

// UpdateTask handles PUT /tasks/{id} requests.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := handleUserIDAndPathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	params, ok := h.decodeTaskRequest(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.UpdateTask(r.Context(), userID, taskID, params)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	h.respondWithTask(w, r, http.StatusOK, userID, task)
}

// DeleteTask handles DELETE /tasks/{id} requests.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := handleUserIDAndPathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), userID, taskID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// MarkComplete handles POST /tasks/{id}/mark_complete requests.
// Completing an already-completed task returns 400 and changes nothing.
func (h *TaskHandler) MarkComplete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, taskID, ok := handleUserIDAndPathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	if _, err := h.taskService.CompleteTask(r.Context(), userID, taskID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Info("task marked complete",
		slog.String("task_id", taskID.String()),
		slog.String("user_id", userID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, DetailResponse{Detail: "Task marked as complete."})
}

// MarkIncomplete handles POST /tasks/{id}/mark_incomplete requests.
// Reopening an already-pending task returns 400 and changes nothing.
func (h *TaskHandler) MarkIncomplete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, taskID, ok := handleUserIDAndPathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	if _, err := h.taskService.ReopenTask(r.Context(), userID, taskID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Info("task marked incomplete",
		slog.String("task_id", taskID.String()),
		slog.String("user_id", userID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, DetailResponse{Detail: "Task marked as incomplete."})
}

// GetHistory handles GET /tasks/{id}/history requests.
func (h *TaskHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := handleUserIDAndPathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	records, err := h.taskService.GetHistory(r.Context(), userID, taskID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	responses := make([]TaskHistoryResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, historyToResponse(record))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// taskFilterFromQuery builds a store.TaskFilter from list query parameters.
func taskFilterFromQuery(r *http.Request) (store.TaskFilter, error) {
	query := r.URL.Query()
	filter := store.TaskFilter{Page: getPageParam(r)}

	if raw := query.Get("status"); raw != "" {
		status := domain.TaskStatus(raw)
		if !status.Valid() {
			return filter, domain.NewValidationError("status", "must be PENDING or COMPLETED", domain.ErrValidation)
		}
		filter.Status = status
	}

	if raw := query.Get("priority"); raw != "" {
		priority := domain.TaskPriority(raw)
		if !priority.Valid() {
			return filter, domain.NewValidationError("priority", "must be LOW, MEDIUM or HIGH", domain.ErrValidation)
		}
		filter.Priority = priority
	}

	if raw := query.Get("category"); raw != "" {
		categoryID, err := uuid.Parse(raw)
		if err != nil {
			return filter, domain.NewValidationError("category", "has invalid format", domain.ErrInvalidID)
		}
		filter.CategoryID = &categoryID
	}

	if raw := query.Get("due_date"); raw != "" {
		day, err := parseDueDateDay(raw)
		if err != nil {
			return filter, domain.NewValidationError("due_date", "must be a date in YYYY-MM-DD format", domain.ErrValidation)
		}
		filter.DueOn = &day
	}

	if raw := query.Get("sort"); raw != "" {
		field := raw
		if len(raw) > 1 && raw[0] == '-' {
			filter.SortDescending = true
			field = raw[1:]
		}
		switch store.TaskSortField(field) {
		case store.SortByDueDate, store.SortByPriority:
			filter.SortBy = store.TaskSortField(field)
		default:
			return filter, domain.NewValidationError("sort", "must be due_date or priority", domain.ErrValidation)
		}
	}

	return filter, nil
}

// parseDueDateDay parses a YYYY-MM-DD query value into a UTC day.
func parseDueDateDay(raw string) (time.Time, error) {
	return time.Parse("2006-01-02", raw)
}
