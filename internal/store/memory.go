package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Memory is an in-process RecordStore variant. It mirrors the SQLite variant's
// behavior, including unique-column enforcement, and is the store the tests
// run against.
type Memory struct {
	mu     sync.RWMutex
	tables map[string][]Row
	unique map[string][]string
}

// NewMemory creates an empty in-memory store with the application's unique
// constraints preconfigured.
func NewMemory() *Memory {
	return &Memory{
		tables: make(map[string][]Row),
		unique: map[string][]string{
			"users": {"username", "email"},
		},
	}
}

func (m *Memory) Insert(ctx context.Context, table string, row Row) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := row["id"]; !ok {
		row["id"] = uuid.New().String()
	}
	for _, col := range m.unique[table] {
		val, ok := row[col]
		if !ok || val == nil {
			continue
		}
		for _, existing := range m.tables[table] {
			if equalValue(existing[col], val) {
				return "", &ConstraintError{Table: table, Column: col}
			}
		}
	}
	m.tables[table] = append(m.tables[table], copyRow(row))
	return fmt.Sprint(row["id"]), nil
}

func (m *Memory) FindOne(ctx context.Context, table string, where Row) (Row, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, row := range m.tables[table] {
		if matches(row, where) {
			return copyRow(row), nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) Find(ctx context.Context, table string, where Row, limit int) ([]Row, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Row
	for _, row := range m.tables[table] {
		if !matches(row, where) {
			continue
		}
		out = append(out, copyRow(row))
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (m *Memory) Update(ctx context.Context, table string, where Row, patch Row) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rows := m.tables[table]

	// Validate unique columns first so a collision leaves nothing applied,
	// like a single failed SQL UPDATE would.
	for i := range rows {
		if !matches(rows[i], where) {
			continue
		}
		for _, col := range m.unique[table] {
			val, ok := patch[col]
			if !ok || val == nil {
				continue
			}
			for j := range rows {
				if j == i {
					continue
				}
				if equalValue(rows[j][col], val) {
					return &ConstraintError{Table: table, Column: col}
				}
			}
		}
	}

	for i := range rows {
		if !matches(rows[i], where) {
			continue
		}
		for col, val := range patch {
			rows[i][col] = val
		}
	}
	return nil
}

func (m *Memory) Delete(ctx context.Context, table string, where Row) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.tables[table][:0]
	for _, row := range m.tables[table] {
		if !matches(row, where) {
			kept = append(kept, row)
		}
	}
	m.tables[table] = kept
	return nil
}

func (m *Memory) Ping(ctx context.Context) error { return nil }

func matches(row, where Row) bool {
	for col, val := range where {
		if !equalValue(row[col], val) {
			return false
		}
	}
	return true
}

func equalValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a == b
}

func copyRow(row Row) Row {
	out := make(Row, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out
}
