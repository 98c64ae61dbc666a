package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// SQLite is the embedded RecordStore variant backed by a database/sql handle.
type SQLite struct {
	db *sql.DB
}

// NewSQLite wraps an open database handle. Schema setup is the caller's job
// (see internal/database).
func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

func (s *SQLite) Insert(ctx context.Context, table string, row Row) (string, error) {
	if !validIdent(table) {
		return "", fmt.Errorf("store: invalid table name %q", table)
	}
	if _, ok := row["id"]; !ok {
		row["id"] = uuid.New().String()
	}

	cols := make([]string, 0, len(row))
	args := make([]any, 0, len(row))
	for col, val := range row {
		if !validIdent(col) {
			return "", fmt.Errorf("store: invalid column name %q", col)
		}
		cols = append(cols, col)
		args = append(args, val)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(cols, ", "), placeholders(len(cols)))
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return "", translateSQLiteErr(err, table)
	}
	return fmt.Sprint(row["id"]), nil
}

func (s *SQLite) FindOne(ctx context.Context, table string, where Row) (Row, error) {
	rows, err := s.Find(ctx, table, where, 1)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return rows[0], nil
}

func (s *SQLite) Find(ctx context.Context, table string, where Row, limit int) ([]Row, error) {
	if !validIdent(table) {
		return nil, fmt.Errorf("store: invalid table name %q", table)
	}
	clause, args, err := whereClause(where)
	if err != nil {
		return nil, err
	}
	query := "SELECT * FROM " + table + clause
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []Row
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(Row, len(cols))
		for i, col := range cols {
			if b, ok := vals[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = vals[i]
			}
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (s *SQLite) Update(ctx context.Context, table string, where Row, patch Row) error {
	if !validIdent(table) {
		return fmt.Errorf("store: invalid table name %q", table)
	}
	if len(patch) == 0 {
		return nil
	}

	sets := make([]string, 0, len(patch))
	args := make([]any, 0, len(patch))
	for col, val := range patch {
		if !validIdent(col) {
			return fmt.Errorf("store: invalid column name %q", col)
		}
		sets = append(sets, col+" = ?")
		args = append(args, val)
	}

	clause, whereArgs, err := whereClause(where)
	if err != nil {
		return err
	}
	args = append(args, whereArgs...)

	query := fmt.Sprintf("UPDATE %s SET %s%s", table, strings.Join(sets, ", "), clause)
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return translateSQLiteErr(err, table)
	}
	return nil
}

func (s *SQLite) Delete(ctx context.Context, table string, where Row) error {
	if !validIdent(table) {
		return fmt.Errorf("store: invalid table name %q", table)
	}
	clause, args, err := whereClause(where)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, "DELETE FROM "+table+clause, args...)
	return err
}

func (s *SQLite) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func whereClause(where Row) (string, []any, error) {
	if len(where) == 0 {
		return "", nil, nil
	}
	conds := make([]string, 0, len(where))
	args := make([]any, 0, len(where))
	for col, val := range where {
		if !validIdent(col) {
			return "", nil, fmt.Errorf("store: invalid column name %q", col)
		}
		if val == nil {
			conds = append(conds, col+" IS NULL")
			continue
		}
		conds = append(conds, col+" = ?")
		args = append(args, val)
	}
	return " WHERE " + strings.Join(conds, " AND "), args, nil
}

// translateSQLiteErr maps driver errors for unique collisions onto
// ConstraintError, extracting the column from messages like
// "UNIQUE constraint failed: users.email".
func translateSQLiteErr(err error, table string) error {
	msg := err.Error()
	idx := strings.Index(msg, "UNIQUE constraint failed: ")
	if idx < 0 {
		return err
	}
	detail := msg[idx+len("UNIQUE constraint failed: "):]
	if end := strings.IndexAny(detail, " ("); end > 0 {
		detail = detail[:end]
	}
	ce := &ConstraintError{Table: table}
	if parts := strings.SplitN(detail, ".", 2); len(parts) == 2 {
		ce.Column = parts[1]
	}
	return ce
}
