// Package repository provides data access layer implementations for the application.
//
// Soft deletion is explicit here: every query either goes through the active
// path (is_deleted = false) or deliberately opts into the all-records path.
// There is no implicit global filter.
package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrDuplicate is returned when a write would violate a uniqueness invariant
// (duplicate active author+title, duplicate active like). The storage engine
// enforces these atomically via partial unique indexes; repositories only
// translate the driver error.
var ErrDuplicate = errors.New("duplicate record")

// notDeleted scopes a query to the active (non-soft-deleted) rows of a table.
func notDeleted(table string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(table+".is_deleted = ?", false)
	}
}

// isUniqueViolation recognizes unique-constraint errors from postgres (pgconn
// error code 23505) and from the sqlite driver used in tests.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// translateWriteError maps driver-level uniqueness failures to ErrDuplicate.
func translateWriteError(err error) error {
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}
