package services

import (
	"fmt"
	"strconv"
	"time"

	"github.com/skyops/aeroops-be/internal/store"
)

// Helpers for decoding store rows. Both store variants hand back loosely
// typed values (TEXT columns as strings, numerics as int64/float64), so every
// service funnels row access through these.

func rowString(row store.Row, col string) string {
	val, ok := row[col]
	if !ok || val == nil {
		return ""
	}
	if s, ok := val.(string); ok {
		return s
	}
	return fmt.Sprint(val)
}

func rowStringPtr(row store.Row, col string) *string {
	if val, ok := row[col]; !ok || val == nil {
		return nil
	}
	s := rowString(row, col)
	return &s
}

func rowFloat(row store.Row, col string) float64 {
	switch v := row[col].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	case string:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	default:
		return 0
	}
}

func rowInt(row store.Row, col string) int {
	switch v := row[col].(type) {
	case int64:
		return int(v)
	case int:
		return v
	case float64:
		return int(v)
	case string:
		n, _ := strconv.Atoi(v)
		return n
	default:
		return 0
	}
}

// rowTime parses a timestamp column. Accepts RFC 3339 (what the services
// write) and the SQLite CURRENT_TIMESTAMP format (what the schema default
// writes).
func rowTime(row store.Row, col string) time.Time {
	val, ok := row[col]
	if !ok || val == nil {
		return time.Time{}
	}
	if t, ok := val.(time.Time); ok {
		return t
	}
	s := rowString(row, col)
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func rowTimePtr(row store.Row, col string) *time.Time {
	if val, ok := row[col]; !ok || val == nil {
		return nil
	}
	t := rowTime(row, col)
	if t.IsZero() {
		return nil
	}
	return &t
}

func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
