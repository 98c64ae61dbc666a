// Package transfer implements CSV import and export for the operations record
// tables. Import follows the original bulk-upload semantics: rows are inserted
// one at a time and a failed row does not abort the batch.
package transfer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/skyops/aeroops-be/internal/store"
)

type colKind int

const (
	kindString colKind = iota
	kindFloat
	kindInt
)

type column struct {
	name string
	kind colKind
}

// tableColumns defines, per importable table, the known columns and their
// CSV export order.
var tableColumns = map[string][]column{
	"maintenance": {
		{"aircraft_registration", kindString},
		{"maintenance_type", kindString},
		{"scheduled_date", kindString},
		{"technician_name", kindString},
		{"hours_spent", kindFloat},
		{"cost", kindFloat},
		{"status", kindString},
		{"priority", kindString},
		{"description", kindString},
	},
	"safety_incidents": {
		{"incident_date", kindString},
		{"incident_type", kindString},
		{"severity", kindString},
		{"aircraft_registration", kindString},
		{"flight_number", kindString},
		{"location", kindString},
		{"description", kindString},
		{"investigation_status", kindString},
	},
	"flights": {
		{"flight_number", kindString},
		{"aircraft_registration", kindString},
		{"departure_airport", kindString},
		{"arrival_airport", kindString},
		{"scheduled_departure", kindString},
		{"scheduled_arrival", kindString},
		{"passengers_count", kindInt},
		{"flight_status", kindString},
	},
}

// ImportResult reports how many rows of a CSV batch made it in.
type ImportResult struct {
	Imported int `json:"imported"`
	Total    int `json:"total"`
}

// Transfer moves record batches between CSV and the Record Store.
type Transfer struct {
	store store.RecordStore
}

// New creates a Transfer over the given store.
func New(st store.RecordStore) *Transfer {
	return &Transfer{store: st}
}

// ImportableTable reports whether CSV import/export supports the table.
func ImportableTable(table string) bool {
	_, ok := tableColumns[table]
	return ok
}

// ImportCSV reads a CSV document with a header row and inserts each data row
// into the table, stamping created_by. Unknown header columns are skipped.
func (t *Transfer) ImportCSV(ctx context.Context, table string, r io.Reader, createdBy string) (ImportResult, error) {
	cols, ok := tableColumns[table]
	if !ok {
		return ImportResult{}, fmt.Errorf("unknown import table %q", table)
	}
	known := make(map[string]colKind, len(cols))
	for _, c := range cols {
		known[c.name] = c.kind
	}

	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to read CSV header: %w", err)
	}

	var result ImportResult
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return result, fmt.Errorf("failed to read CSV row: %w", err)
		}
		result.Total++

		row := store.Row{"created_by": createdBy}
		for i, name := range header {
			if i >= len(record) {
				break
			}
			kind, ok := known[name]
			if !ok {
				continue
			}
			row[name] = convert(record[i], kind)
		}

		if _, err := t.store.Insert(ctx, table, row); err != nil {
			log.Warn().Err(err).Str("table", table).Int("row", result.Total).Msg("Skipping CSV row")
			continue
		}
		result.Imported++
	}
	return result, nil
}

// ExportCSV writes the table's rows as CSV in the canonical column order,
// with created_by appended.
func (t *Transfer) ExportCSV(ctx context.Context, table string, w io.Writer) error {
	cols, ok := tableColumns[table]
	if !ok {
		return fmt.Errorf("unknown export table %q", table)
	}

	rows, err := t.store.Find(ctx, table, nil, 0)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	header := make([]string, 0, len(cols)+2)
	header = append(header, "id")
	for _, c := range cols {
		header = append(header, c.name)
	}
	header = append(header, "created_by")
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, row := range rows {
		record := make([]string, 0, len(header))
		for _, name := range header {
			record = append(record, format(row[name]))
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// convert coerces a CSV cell to the column's storage type; unparseable
// numerics fall back to the raw string and let the store decide.
func convert(value string, kind colKind) any {
	switch kind {
	case kindFloat:
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	case kindInt:
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return value
}

func format(value any) string {
	if value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	default:
		return fmt.Sprint(v)
	}
}
