package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/taskmaster/taskmaster-api/internal/domain"
	"github.com/taskmaster/taskmaster-api/internal/store"
)

// mockTaskStore is an in-memory TaskStore for service tests.
type mockTaskStore struct {
	tasks map[uuid.UUID]*domain.Task

	createErr error
	updateErr error

	createCalls int
	updateCalls int
}

func newMockTaskStore() *mockTaskStore {
	return &mockTaskStore{tasks: make(map[uuid.UUID]*domain.Task)}
}

func (m *mockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	m.createCalls++
	if m.createErr != nil {
		return m.createErr
	}
	copied := *task
	m.tasks[task.ID] = &copied
	return nil
}

func (m *mockTaskStore) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Task, error) {
	task, ok := m.tasks[id]
	if !ok || task.UserID != userID {
		return nil, store.ErrTaskNotFound
	}
	copied := *task
	return &copied, nil
}

func (m *mockTaskStore) List(ctx context.Context, userID uuid.UUID, filter store.TaskFilter) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, task := range m.tasks {
		if task.UserID != userID {
			continue
		}
		if filter.Status != "" && task.Status != filter.Status {
			continue
		}
		if filter.Priority != "" && task.Priority != filter.Priority {
			continue
		}
		out = append(out, task)
	}
	return out, nil
}

func (m *mockTaskStore) ListUpcoming(ctx context.Context, userID uuid.UUID, now time.Time, page, pageSize int) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, task := range m.tasks {
		if task.UserID != userID || task.Status != domain.StatusPending {
			continue
		}
		if !task.DueDate.Before(now) || task.IsRecurring {
			out = append(out, task)
		}
	}
	return out, nil
}

func (m *mockTaskStore) ListDueOn(ctx context.Context, day time.Time) ([]*domain.Task, error) {
	dayStart := day.UTC().Truncate(24 * time.Hour)
	var out []*domain.Task
	for _, task := range m.tasks {
		if task.Status != domain.StatusPending {
			continue
		}
		if task.DueDate.UTC().Truncate(24 * time.Hour).Equal(dayStart) {
			out = append(out, task)
		}
	}
	return out, nil
}

func (m *mockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	m.updateCalls++
	if m.updateErr != nil {
		return m.updateErr
	}
	existing, ok := m.tasks[task.ID]
	if !ok || existing.UserID != task.UserID {
		return store.ErrTaskNotFound
	}
	copied := *task
	m.tasks[task.ID] = &copied
	return nil
}

func (m *mockTaskStore) Delete(ctx context.Context, userID, id uuid.UUID) error {
	task, ok := m.tasks[id]
	if !ok || task.UserID != userID {
		return store.ErrTaskNotFound
	}
	delete(m.tasks, id)
	return nil
}

func (m *mockTaskStore) WithTx(tx *sql.Tx) store.TaskStore { return m }

// mockTaskHistoryStore records appended history in memory.
type mockTaskHistoryStore struct {
	records   []*domain.TaskHistory
	appendErr error
}

func (m *mockTaskHistoryStore) Append(ctx context.Context, history *domain.TaskHistory) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.records = append(m.records, history)
	return nil
}

func (m *mockTaskHistoryStore) ListByTask(ctx context.Context, taskID uuid.UUID) ([]*domain.TaskHistory, error) {
	var out []*domain.TaskHistory
	for i := len(m.records) - 1; i >= 0; i-- {
		if m.records[i].TaskID == taskID {
			out = append(out, m.records[i])
		}
	}
	return out, nil
}

func (m *mockTaskHistoryStore) WithTx(tx *sql.Tx) store.TaskHistoryStore { return m }

// mockCategoryStore is an in-memory CategoryStore.
type mockCategoryStore struct {
	categories map[uuid.UUID]*domain.Category
}

func newMockCategoryStore() *mockCategoryStore {
	return &mockCategoryStore{categories: make(map[uuid.UUID]*domain.Category)}
}

func (m *mockCategoryStore) Create(ctx context.Context, category *domain.Category) error {
	copied := *category
	m.categories[category.ID] = &copied
	return nil
}

func (m *mockCategoryStore) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Category, error) {
	category, ok := m.categories[id]
	if !ok || category.UserID != userID {
		return nil, store.ErrCategoryNotFound
	}
	copied := *category
	return &copied, nil
}

func (m *mockCategoryStore) List(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error) {
	var out []*domain.Category
	for _, category := range m.categories {
		if category.UserID == userID {
			out = append(out, category)
		}
	}
	return out, nil
}

func (m *mockCategoryStore) Update(ctx context.Context, category *domain.Category) error {
	existing, ok := m.categories[category.ID]
	if !ok || existing.UserID != category.UserID {
		return store.ErrCategoryNotFound
	}
	copied := *category
	m.categories[category.ID] = &copied
	return nil
}

func (m *mockCategoryStore) Delete(ctx context.Context, userID, id uuid.UUID) error {
	category, ok := m.categories[id]
	if !ok || category.UserID != userID {
		return store.ErrCategoryNotFound
	}
	delete(m.categories, id)
	return nil
}

func (m *mockCategoryStore) WithTx(tx *sql.Tx) store.CategoryStore { return m }

// mockUserStore is an in-memory UserStore.
type mockUserStore struct {
	users     map[uuid.UUID]*domain.User
	createErr error
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{users: make(map[uuid.UUID]*domain.User)}
}

func (m *mockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, existing := range m.users {
		if existing.Username == user.Username {
			return store.ErrUsernameExists
		}
		if existing.Email == user.Email {
			return store.ErrEmailExists
		}
	}
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *mockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *mockUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, user := range m.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (m *mockUserStore) List(ctx context.Context, page, pageSize int) ([]*domain.User, error) {
	var out []*domain.User
	for _, user := range m.users {
		out = append(out, user)
	}
	return out, nil
}

func (m *mockUserStore) Update(ctx context.Context, user *domain.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return store.ErrUserNotFound
	}
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *mockUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.users[id]; !ok {
		return store.ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *mockUserStore) WithTx(tx *sql.Tx) store.UserStore { return m }
