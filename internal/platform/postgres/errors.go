package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/taskmaster/taskmaster-api/internal/store"
)

// PostgreSQL error codes the store layer distinguishes. Anything else
// passes through untranslated.
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
	notNullViolationCode    = "23502"
)

// IsUniqueViolation reports whether err is a unique constraint violation,
// such as inserting a second user with the same username.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// IsForeignKeyViolation reports whether err is a referential integrity
// violation, such as a task pointing at a category that does not exist.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode
}

// MapError folds driver-level errors into the store error taxonomy so
// callers can use errors.Is against the store sentinels. It is the
// fallback translation for paths that have no more specific mapping;
// errors it does not recognize pass through unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case uniqueViolationCode:
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	case foreignKeyViolationCode:
		return fmt.Errorf("%w: foreign key violation (%s): %v",
			store.ErrInvalidEntity, pgErr.ConstraintName, err)
	case checkViolationCode:
		return fmt.Errorf("%w: check constraint violation (%s): %v",
			store.ErrInvalidEntity, pgErr.ConstraintName, err)
	case notNullViolationCode:
		return fmt.Errorf("%w: not null violation (%s): %v",
			store.ErrInvalidEntity, pgErr.ColumnName, err)
	}

	return err
}

// MapUniqueViolation wraps a unique violation with the entity-specific
// duplicate sentinel (e.g. store.ErrUsernameExists). A nil sentinel falls
// back to the generic store.ErrDuplicate. Non-unique errors pass through.
func MapUniqueViolation(err error, sentinel error) error {
	if !IsUniqueViolation(err) {
		return err
	}
	if sentinel == nil {
		sentinel = store.ErrDuplicate
	}
	return fmt.Errorf("%w: %v", sentinel, err)
}

// MapForeignKeyViolation wraps a foreign key violation as an invalid
// entity reference, keeping the violated constraint in the message.
// Non-FK errors pass through.
func MapForeignKeyViolation(err error, detail string) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != foreignKeyViolationCode {
		return err
	}
	return fmt.Errorf("%w: %s (%s): %v",
		store.ErrInvalidEntity, detail, pgErr.ConstraintName, err)
}

// CheckRowsAffected returns notFound when an UPDATE or DELETE matched no
// rows. Every statement carries the ownership predicate, so "no rows"
// covers both a missing row and one owned by another user.
func CheckRowsAffected(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading rows affected: %w", err)
	}
	if rows == 0 {
		return notFound
	}
	return nil
}
