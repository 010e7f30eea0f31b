package repositories

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrConstraintViolation is returned when a write breaks a unique constraint.
	ErrConstraintViolation = errors.New("constraint violation")
	// ErrQueryFailed is returned when a read cannot be executed.
	ErrQueryFailed = errors.New("query failed")
	// ErrNotFound is returned by single-row lookups that match nothing.
	ErrNotFound = errors.New("not found")
)

// writeError wraps a failed write, classifying unique violations.
func writeError(op string, err error) error {
	if isUniqueViolation(err) {
		return fmt.Errorf("failed to %s: %w: %w", op, ErrConstraintViolation, err)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

// readError wraps a failed read so callers can tell it from an empty result.
func readError(op string, err error) error {
	return fmt.Errorf("failed to %s: %w: %w", op, ErrQueryFailed, err)
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// Fallback for drivers that do not translate errors.
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key value")
}

// prefixPattern builds a LIKE pattern matching names that start with prefix,
// case-insensitively. Wildcards in prefix match literally. Only used where
// LOWER folds non-ASCII letters, see sqlFoldsCase.
func prefixPattern(prefix string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(strings.ToLower(prefix)) + "%"
}

const likeEscape = `ESCAPE '\'`

// sqlFoldsCase reports whether LOWER on db folds every letter the way
// strings.ToLower does. SQLite's LOWER and LIKE fold ASCII only.
func sqlFoldsCase(db *gorm.DB) bool {
	return db.Dialector.Name() == "postgres"
}

// filterByPrefix keeps the items whose name starts with prefix, ignoring case.
func filterByPrefix[T any](items []T, prefix string, name func(T) string) []T {
	prefix = strings.ToLower(prefix)
	matched := make([]T, 0, len(items))
	for _, item := range items {
		if strings.HasPrefix(strings.ToLower(name(item)), prefix) {
			matched = append(matched, item)
		}
	}
	return matched
}
