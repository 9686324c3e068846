package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/taskmaster/taskmaster-api/internal/domain"
)

// CategoryStore defines the interface for category data persistence.
// Every read and write is scoped to the owning user: a category that
// exists but belongs to someone else behaves exactly like a missing one.
type CategoryStore interface {
	// Create saves a new category.
	// Returns ErrInvalidEntity if the owning user does not exist.
	Create(ctx context.Context, category *domain.Category) error

	// GetByID retrieves one of userID's categories by ID.
	// Returns ErrCategoryNotFound if it does not exist or is not theirs.
	GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Category, error)

	// List returns all of userID's categories ordered by name.
	List(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error)

	// Update modifies one of userID's categories.
	// Returns ErrCategoryNotFound if it does not exist or is not theirs.
	Update(ctx context.Context, category *domain.Category) error

	// Delete removes one of userID's categories. Tasks referencing it keep
	// existing with their category reference cleared.
	// Returns ErrCategoryNotFound if it does not exist or is not theirs.
	Delete(ctx context.Context, userID, id uuid.UUID) error

	// WithTx returns a CategoryStore that runs against the given transaction.
	WithTx(tx *sql.Tx) CategoryStore
}
