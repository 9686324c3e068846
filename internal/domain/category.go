package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Category-specific validation errors.
var (
	ErrEmptyCategoryID     = errors.New("category ID cannot be empty")
	ErrCategoryUserIDEmpty = errors.New("category user ID cannot be empty")
	ErrEmptyCategoryName   = errors.New("category name cannot be empty")
	ErrCategoryNameTooLong = errors.New("category name must be at most 100 characters long")
)

// Category is a user-owned label grouping tasks. Deleting a category does
// not delete its tasks; their category reference is cleared instead.
type Category struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCategory creates a Category owned by the given user.
// Returns an error if validation fails.
func NewCategory(userID uuid.UUID, name string) (*Category, error) {
	now := time.Now().UTC()
	category := &Category{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := category.Validate(); err != nil {
		return nil, err
	}

	return category, nil
}

// Validate checks if the Category has valid data.
func (c *Category) Validate() error {
	if c.ID == uuid.Nil {
		return ErrEmptyCategoryID
	}

	if c.UserID == uuid.Nil {
		return ErrCategoryUserIDEmpty
	}

	if c.Name == "" {
		return ErrEmptyCategoryName
	}
	if len(c.Name) > 100 {
		return ErrCategoryNameTooLong
	}

	return nil
}

// Rename updates the category name and the UpdatedAt timestamp.
// Returns an error if the new name is invalid.
func (c *Category) Rename(name string) error {
	orig := c.Name
	c.Name = name

	if err := c.Validate(); err != nil {
		c.Name = orig
		return err
	}

	c.UpdatedAt = time.Now().UTC()
	return nil
}
