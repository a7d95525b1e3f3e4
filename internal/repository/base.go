// Package repository provides GORM-backed data access for the application's entities.
package repository

import (
	"errors"
	"strings"

	"ratil/internal/database"
	"ratil/internal/models"

	"gorm.io/gorm"
)

// translateError maps storage errors onto the application error taxonomy.
// A missing row becomes NOT_FOUND, a unique violation becomes CONFLICT with
// the given message, anything else is INTERNAL.
func translateError(err error, notFound *models.AppError, conflictMsg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound) && notFound != nil:
		return notFound
	case conflictMsg != "" && database.IsUniqueViolation(err):
		return &models.AppError{Code: models.CodeConflict, Message: conflictMsg, Err: err}
	default:
		return models.NewInternalError(err)
	}
}

// containsPattern builds a case-insensitive LIKE pattern for a substring search.
func containsPattern(q string) string {
	return "%" + strings.ToLower(strings.TrimSpace(q)) + "%"
}

// searchAny adds "LOWER(c1) LIKE ? OR LOWER(c2) LIKE ? ..." for a non-blank term.
func searchAny(db *gorm.DB, q string, columns ...string) *gorm.DB {
	if strings.TrimSpace(q) == "" || len(columns) == 0 {
		return db
	}
	pattern := containsPattern(q)
	clauses := make([]string, len(columns))
	args := make([]interface{}, len(columns))
	for i, col := range columns {
		clauses[i] = "LOWER(" + col + ") LIKE ?"
		args[i] = pattern
	}
	return db.Where("("+strings.Join(clauses, " OR ")+")", args...)
}
