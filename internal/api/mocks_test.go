package api

import (
	"context"

	"github.com/google/uuid"

	"github.com/taskmaster/taskmaster-api/internal/domain"
	"github.com/taskmaster/taskmaster-api/internal/service"
	"github.com/taskmaster/taskmaster-api/internal/store"
)

// mockTaskService implements service.TaskService with overridable
// function fields. Unset methods return a zero value.
type mockTaskService struct {
	createFn     func(ctx context.Context, userID uuid.UUID, params service.TaskParams) (*domain.Task, error)
	getFn        func(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error)
	listFn       func(ctx context.Context, userID uuid.UUID, filter store.TaskFilter) ([]*domain.Task, error)
	upcomingFn   func(ctx context.Context, userID uuid.UUID, page int) ([]*domain.Task, error)
	updateFn     func(ctx context.Context, userID, taskID uuid.UUID, params service.TaskParams) (*domain.Task, error)
	deleteFn     func(ctx context.Context, userID, taskID uuid.UUID) error
	completeFn   func(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error)
	reopenFn     func(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error)
	getHistoryFn func(ctx context.Context, userID, taskID uuid.UUID) ([]*domain.TaskHistory, error)
}

var _ service.TaskService = (*mockTaskService)(nil)

func (m *mockTaskService) CreateTask(ctx context.Context, userID uuid.UUID, params service.TaskParams) (*domain.Task, error) {
	return m.createFn(ctx, userID, params)
}

func (m *mockTaskService) GetTask(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error) {
	return m.getFn(ctx, userID, taskID)
}

func (m *mockTaskService) ListTasks(ctx context.Context, userID uuid.UUID, filter store.TaskFilter) ([]*domain.Task, error) {
	return m.listFn(ctx, userID, filter)
}

func (m *mockTaskService) ListCompleted(ctx context.Context, userID uuid.UUID, page int) ([]*domain.Task, error) {
	return m.listFn(ctx, userID, store.TaskFilter{Status: domain.StatusCompleted, Page: page})
}

func (m *mockTaskService) ListUpcoming(ctx context.Context, userID uuid.UUID, page int) ([]*domain.Task, error) {
	return m.upcomingFn(ctx, userID, page)
}

func (m *mockTaskService) UpdateTask(ctx context.Context, userID, taskID uuid.UUID, params service.TaskParams) (*domain.Task, error) {
	return m.updateFn(ctx, userID, taskID, params)
}

func (m *mockTaskService) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	return m.deleteFn(ctx, userID, taskID)
}

func (m *mockTaskService) CompleteTask(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error) {
	return m.completeFn(ctx, userID, taskID)
}

func (m *mockTaskService) ReopenTask(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error) {
	return m.reopenFn(ctx, userID, taskID)
}

func (m *mockTaskService) GetHistory(ctx context.Context, userID, taskID uuid.UUID) ([]*domain.TaskHistory, error) {
	return m.getHistoryFn(ctx, userID, taskID)
}

// mockCategoryService implements service.CategoryService.
type mockCategoryService struct {
	createFn func(ctx context.Context, userID uuid.UUID, name string) (*domain.Category, error)
	getFn    func(ctx context.Context, userID, categoryID uuid.UUID) (*domain.Category, error)
	listFn   func(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error)
	updateFn func(ctx context.Context, userID, categoryID uuid.UUID, name string) (*domain.Category, error)
	deleteFn func(ctx context.Context, userID, categoryID uuid.UUID) error
}

var _ service.CategoryService = (*mockCategoryService)(nil)

func (m *mockCategoryService) CreateCategory(ctx context.Context, userID uuid.UUID, name string) (*domain.Category, error) {
	return m.createFn(ctx, userID, name)
}

func (m *mockCategoryService) GetCategory(ctx context.Context, userID, categoryID uuid.UUID) (*domain.Category, error) {
	if m.getFn == nil {
		return nil, store.ErrCategoryNotFound
	}
	return m.getFn(ctx, userID, categoryID)
}

func (m *mockCategoryService) ListCategories(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error) {
	return m.listFn(ctx, userID)
}

func (m *mockCategoryService) UpdateCategory(ctx context.Context, userID, categoryID uuid.UUID, name string) (*domain.Category, error) {
	return m.updateFn(ctx, userID, categoryID, name)
}

func (m *mockCategoryService) DeleteCategory(ctx context.Context, userID, categoryID uuid.UUID) error {
	return m.deleteFn(ctx, userID, categoryID)
}

// mockUserService implements service.UserService.
type mockUserService struct {
	createFn func(ctx context.Context, params service.UserParams) (*domain.User, error)
	getFn    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	listFn   func(ctx context.Context, page int) ([]*domain.User, error)
	updateFn func(ctx context.Context, id uuid.UUID, params service.UserParams) (*domain.User, error)
	deleteFn func(ctx context.Context, id uuid.UUID) error
}

var _ service.UserService = (*mockUserService)(nil)

func (m *mockUserService) CreateUser(ctx context.Context, params service.UserParams) (*domain.User, error) {
	return m.createFn(ctx, params)
}

func (m *mockUserService) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.getFn(ctx, id)
}

func (m *mockUserService) ListUsers(ctx context.Context, page int) ([]*domain.User, error) {
	return m.listFn(ctx, page)
}

func (m *mockUserService) UpdateUser(ctx context.Context, id uuid.UUID, params service.UserParams) (*domain.User, error) {
	return m.updateFn(ctx, id, params)
}

func (m *mockUserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

// mockUserStore implements the store.UserStore methods the auth handler
// touches; the rest are unused in these tests.
type mockUserStore struct {
	store.UserStore
	byUsername map[string]*domain.User
	byID       map[uuid.UUID]*domain.User
}

func (m *mockUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, ok := m.byUsername[username]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, ok := m.byID[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return user, nil
}
