package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

// Row is a single record keyed by column name.
type Row map[string]any

// RecordStore is the persistence interface the rest of the application
// consumes. Predicates are equality-only; uniqueness enforcement and
// single-row update atomicity are the store's responsibility, so multiple
// processes can serve requests against the same backend safely.
type RecordStore interface {
	// Insert adds a row and returns its identifier. A missing "id" column is
	// filled in by the store.
	Insert(ctx context.Context, table string, row Row) (string, error)
	// FindOne returns the first row matching all equality predicates, or
	// ErrNotFound.
	FindOne(ctx context.Context, table string, where Row) (Row, error)
	// Find returns up to limit rows matching the predicates. A nil or empty
	// predicate matches every row; limit <= 0 means no limit.
	Find(ctx context.Context, table string, where Row, limit int) ([]Row, error)
	// Update applies the patch to all matching rows in a single atomic
	// statement. A nil patch value clears the column.
	Update(ctx context.Context, table string, where Row, patch Row) error
	// Delete removes all matching rows.
	Delete(ctx context.Context, table string, where Row) error
	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
}

// ErrNotFound is returned by FindOne when no row matches.
var ErrNotFound = errors.New("store: row not found")

// ConstraintError reports a unique-column collision. Column is empty when the
// backend cannot tell which column collided.
type ConstraintError struct {
	Table  string
	Column string
}

func (e *ConstraintError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("store: unique constraint violated on %s", e.Table)
	}
	return fmt.Sprintf("store: unique constraint violated on %s.%s", e.Table, e.Column)
}

// IsConstraint reports whether err is a unique-constraint violation and, if
// so, returns the offending column.
func IsConstraint(err error) (*ConstraintError, bool) {
	var ce *ConstraintError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

var identRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// validIdent guards table and column names that end up in SQL text. Names come
// from application code and validated CSV headers, never raw user input.
func validIdent(name string) bool {
	return identRe.MatchString(name)
}
