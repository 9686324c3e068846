package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/taskmaster/taskmaster-api/internal/domain"
	"github.com/taskmaster/taskmaster-api/internal/service/auth"
	"github.com/taskmaster/taskmaster-api/internal/store"
)

// UserParams carries the caller-supplied fields for creating or updating a
// user. Password is optional on update; when empty the stored hash is kept.
// IsAdmin is honored on create only and is never settable through the API;
// the server's -create-admin bootstrap is the one caller that sets it.
type UserParams struct {
	Username string
	Email    string
	Password string
	IsAdmin  bool
}

// UserService provides the admin-facing user management operations.
// The plaintext password is hashed before storage and never echoed back.
type UserService interface {
	// CreateUser creates a user with a hashed password.
	CreateUser(ctx context.Context, params UserParams) (*domain.User, error)

	// GetUser retrieves a user by ID.
	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// ListUsers returns users ordered by creation time, paginated.
	ListUsers(ctx context.Context, page int) ([]*domain.User, error)

	// UpdateUser modifies a user's username, email and optionally password.
	UpdateUser(ctx context.Context, id uuid.UUID, params UserParams) (*domain.User, error)

	// DeleteUser removes a user; owned categories and tasks cascade, task
	// history rows persist with the acting user cleared.
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

// userServiceImpl implements the UserService interface.
type userServiceImpl struct {
	userStore store.UserStore
	hasher    auth.PasswordHasher
	pageSize  int
	logger    *slog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(userStore store.UserStore, hasher auth.PasswordHasher, pageSize int, logger *slog.Logger) (UserService, error) {
	if userStore == nil {
		return nil, domain.NewValidationError("userStore", "cannot be nil", domain.ErrValidation)
	}
	if hasher == nil {
		return nil, domain.NewValidationError("hasher", "cannot be nil", domain.ErrValidation)
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &userServiceImpl{
		userStore: userStore,
		hasher:    hasher,
		pageSize:  pageSize,
		logger:    logger.With(slog.String("component", "user_service")),
	}, nil
}

// CreateUser implements UserService.CreateUser
func (s *userServiceImpl) CreateUser(ctx context.Context, params UserParams) (*domain.User, error) {
	user, err := domain.NewUser(params.Username, params.Email, params.Password)
	if err != nil {
		return nil, err
	}

	hashed, err := s.hasher.Hash(user.Password)
	if err != nil {
		return nil, err
	}
	user.HashedPassword = hashed
	user.Password = ""
	user.IsAdmin = params.IsAdmin

	if err := s.userStore.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser implements UserService.GetUser
func (s *userServiceImpl) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.userStore.GetByID(ctx, id)
}

// ListUsers implements UserService.ListUsers
func (s *userServiceImpl) ListUsers(ctx context.Context, page int) ([]*domain.User, error) {
	return s.userStore.List(ctx, page, s.pageSize)
}

// UpdateUser implements UserService.UpdateUser
func (s *userServiceImpl) UpdateUser(ctx context.Context, id uuid.UUID, params UserParams) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Username != "" {
		user.Username = params.Username
	}
	if params.Email != "" {
		user.Email = params.Email
	}
	if params.Password != "" {
		user.Password = params.Password
		if err := user.Validate(); err != nil {
			return nil, err
		}
		hashed, err := s.hasher.Hash(params.Password)
		if err != nil {
			return nil, err
		}
		user.HashedPassword = hashed
		user.Password = ""
	}
	user.UpdatedAt = time.Now().UTC()

	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.userStore.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser implements UserService.DeleteUser
func (s *userServiceImpl) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.userStore.Delete(ctx, id)
}
