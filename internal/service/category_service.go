package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/taskmaster/taskmaster-api/internal/domain"
	"github.com/taskmaster/taskmaster-api/internal/store"
)

// CategoryService provides category operations scoped to the requesting
// user. The owner is always implicit: it is the authenticated caller.
type CategoryService interface {
	// CreateCategory creates a category owned by userID.
	CreateCategory(ctx context.Context, userID uuid.UUID, name string) (*domain.Category, error)

	// GetCategory retrieves one of userID's categories.
	GetCategory(ctx context.Context, userID, categoryID uuid.UUID) (*domain.Category, error)

	// ListCategories returns all of userID's categories.
	ListCategories(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error)

	// UpdateCategory renames one of userID's categories.
	UpdateCategory(ctx context.Context, userID, categoryID uuid.UUID, name string) (*domain.Category, error)

	// DeleteCategory removes one of userID's categories; tasks referencing
	// it keep existing with the reference cleared.
	DeleteCategory(ctx context.Context, userID, categoryID uuid.UUID) error
}

// categoryServiceImpl implements the CategoryService interface.
type categoryServiceImpl struct {
	categoryStore store.CategoryStore
	logger        *slog.Logger
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categoryStore store.CategoryStore, logger *slog.Logger) (CategoryService, error) {
	if categoryStore == nil {
		return nil, domain.NewValidationError("categoryStore", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &categoryServiceImpl{
		categoryStore: categoryStore,
		logger:        logger.With(slog.String("component", "category_service")),
	}, nil
}

// CreateCategory implements CategoryService.CreateCategory
func (s *categoryServiceImpl) CreateCategory(ctx context.Context, userID uuid.UUID, name string) (*domain.Category, error) {
	category, err := domain.NewCategory(userID, name)
	if err != nil {
		return nil, err
	}

	if err := s.categoryStore.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// GetCategory implements CategoryService.GetCategory
func (s *categoryServiceImpl) GetCategory(ctx context.Context, userID, categoryID uuid.UUID) (*domain.Category, error) {
	return s.categoryStore.GetByID(ctx, userID, categoryID)
}

// ListCategories implements CategoryService.ListCategories
func (s *categoryServiceImpl) ListCategories(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error) {
	return s.categoryStore.List(ctx, userID)
}

// UpdateCategory implements CategoryService.UpdateCategory
func (s *categoryServiceImpl) UpdateCategory(ctx context.Context, userID, categoryID uuid.UUID, name string) (*domain.Category, error) {
	category, err := s.categoryStore.GetByID(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}

	if err := category.Rename(name); err != nil {
		return nil, err
	}

	if err := s.categoryStore.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory implements CategoryService.DeleteCategory
func (s *categoryServiceImpl) DeleteCategory(ctx context.Context, userID, categoryID uuid.UUID) error {
	return s.categoryStore.Delete(ctx, userID, categoryID)
}
