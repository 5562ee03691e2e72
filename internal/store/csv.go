package store

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log/slog"

	"github.com/walexbarnes/accountabillabuddy/internal/schema"
)

// dateColumn is the row key column, always first.
const dateColumn = "Date"

// decodeTable parses CSV bytes into a table. Rows with unparseable dates or
// duplicate dates are quarantined with a warning instead of failing the whole
// load; only a structurally broken file is an error. Columns unknown to the
// schema are dropped, columns missing from the file load as unset.
func decodeTable(data []byte, sch schema.Schema, logger *slog.Logger) (*Table, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	t := NewTable(sch)
	if len(rows) == 0 {
		return t, nil
	}

	header := rows[0]
	dateIdx := -1
	colIdx := map[string]int{}
	for i, name := range header {
		if name == dateColumn {
			dateIdx = i
			continue
		}
		colIdx[name] = i
	}
	if dateIdx < 0 {
		return nil, fmt.Errorf("missing %s column", dateColumn)
	}

	for n, row := range rows[1:] {
		if dateIdx >= len(row) {
			logger.Warn("skipping short row", "row", n+2)
			continue
		}
		date, err := NormalizeDate(row[dateIdx])
		if err != nil {
			logger.Warn("skipping row with bad date", "row", n+2, "date", row[dateIdx])
			continue
		}
		if t.Exists(date) {
			logger.Warn("skipping duplicate date row", "row", n+2, "date", date)
			continue
		}

		rec := Record{Date: date, Values: map[string]schema.Value{}}
		for _, f := range sch {
			i, ok := colIdx[f.Name]
			if !ok || i >= len(row) {
				continue
			}
			v, err := f.Parse(row[i])
			if err != nil {
				logger.Warn("treating unparseable cell as unset", "row", n+2, "field", f.Name, "cell", row[i])
				continue
			}
			if v.IsSet() {
				rec.Values[f.Name] = v
			}
		}
		t.Records = append(t.Records, rec)
	}
	return t, nil
}

// encodeTable serializes a table: header of Date plus schema columns in
// order, one row per record in table order, unset cells empty. Stable output
// so persist(load()) is a byte-for-byte no-op.
func encodeTable(t *Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := append([]string{dateColumn}, t.Schema.Columns()...)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for _, rec := range t.Records {
		row := make([]string, 0, len(header))
		row = append(row, rec.Date)
		for _, f := range t.Schema {
			row = append(row, f.Format(rec.Value(f.Name)))
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write row %s: %w", rec.Date, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
