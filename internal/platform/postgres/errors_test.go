package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/taskmaster/taskmaster-api/internal/store"
)

func pgError(code, constraint, column string) *pgconn.PgError {
	return &pgconn.PgError{Code: code, ConstraintName: constraint, ColumnName: column}
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil passes through", nil, nil},
		{"no rows becomes not found", sql.ErrNoRows, store.ErrNotFound},
		{"unique violation becomes duplicate", pgError(uniqueViolationCode, "users_username_key", ""), store.ErrDuplicate},
		{"fk violation becomes invalid entity", pgError(foreignKeyViolationCode, "tasks_category_id_fkey", ""), store.ErrInvalidEntity},
		{"check violation becomes invalid entity", pgError(checkViolationCode, "tasks_status_check", ""), store.ErrInvalidEntity},
		{"not null violation becomes invalid entity", pgError(notNullViolationCode, "", "title"), store.ErrInvalidEntity},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := MapError(tc.err)
			if tc.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tc.want)
		})
	}

	t.Run("unmapped errors pass through unchanged", func(t *testing.T) {
		original := errors.New("connection reset")
		assert.Equal(t, original, MapError(original))
	})

	t.Run("wrapped pg errors still map", func(t *testing.T) {
		wrapped := fmt.Errorf("inserting user: %w", pgError(uniqueViolationCode, "users_email_key", ""))
		assert.ErrorIs(t, MapError(wrapped), store.ErrDuplicate)
	})
}

func TestViolationPredicates(t *testing.T) {
	unique := pgError(uniqueViolationCode, "users_username_key", "")
	fk := pgError(foreignKeyViolationCode, "tasks_category_id_fkey", "")

	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsUniqueViolation(fk))
	assert.True(t, IsForeignKeyViolation(fk))
	assert.False(t, IsForeignKeyViolation(unique))
	assert.False(t, IsUniqueViolation(errors.New("timeout")))

	// Wrapping must not hide the violation
	assert.True(t, IsUniqueViolation(fmt.Errorf("inserting: %w", unique)))
}

func TestMapUniqueViolation(t *testing.T) {
	uniqueErr := pgError(uniqueViolationCode, "users_username_key", "")

	t.Run("maps to the specific sentinel", func(t *testing.T) {
		got := MapUniqueViolation(uniqueErr, store.ErrUsernameExists)
		assert.ErrorIs(t, got, store.ErrUsernameExists)
		assert.ErrorIs(t, got, store.ErrDuplicate)
	})

	t.Run("nil sentinel falls back to generic duplicate", func(t *testing.T) {
		got := MapUniqueViolation(uniqueErr, nil)
		assert.ErrorIs(t, got, store.ErrDuplicate)
	})

	t.Run("non-unique errors pass through", func(t *testing.T) {
		original := errors.New("timeout")
		assert.Equal(t, original, MapUniqueViolation(original, store.ErrUsernameExists))
	})
}

func TestMapForeignKeyViolation(t *testing.T) {
	fkErr := pgError(foreignKeyViolationCode, "tasks_category_id_fkey", "")

	got := MapForeignKeyViolation(fkErr, "referenced row does not exist")
	assert.ErrorIs(t, got, store.ErrInvalidEntity)
	assert.Contains(t, got.Error(), "tasks_category_id_fkey")

	original := errors.New("timeout")
	assert.Equal(t, original, MapForeignKeyViolation(original, "detail"))
}

// fakeResult implements sql.Result with a fixed rows-affected count.
type fakeResult struct {
	rows int64
	err  error
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.rows, r.err }

func TestCheckRowsAffected(t *testing.T) {
	assert.NoError(t, CheckRowsAffected(fakeResult{rows: 1}, store.ErrTaskNotFound))

	err := CheckRowsAffected(fakeResult{rows: 0}, store.ErrTaskNotFound)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)

	err = CheckRowsAffected(fakeResult{err: errors.New("driver does not support")}, store.ErrTaskNotFound)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, store.ErrNotFound)
}
