package domain

import (
	"bytes"
	"encoding/csv"
)

// Table is one generated dataset: an ordered column list plus rows of string
// cells. Empty string cells represent NULL. Rows are appended once during
// generation and never mutated afterwards.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// NewTable constructs an empty table with the given CSV base name and columns.
func NewTable(name string, columns []string) *Table {
	return &Table{Name: name, Columns: append([]string(nil), columns...)}
}

// AppendRow adds a row. Rows narrower than the column list are padded with
// empty cells; wider rows are rejected.
func (t *Table) AppendRow(row []string) error {
	if len(row) > len(t.Columns) {
		return ErrRowShape{Table: t.Name, Want: len(t.Columns), Got: len(row)}
	}
	if len(row) < len(t.Columns) {
		padded := make([]string, len(t.Columns))
		copy(padded, row)
		row = padded
	}
	t.Rows = append(t.Rows, row)
	return nil
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int { return len(t.Rows) }

// ColumnIndex returns the position of the named column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, c := range t.Columns {
		if c == name {
			return i, true
		}
	}
	return 0, false
}

// ColumnValues returns every cell of the named column in row order.
func (t *Table) ColumnValues(name string) ([]string, error) {
	idx, ok := t.ColumnIndex(name)
	if !ok {
		return nil, ErrColumnMissing{Table: t.Name, Column: name}
	}
	out := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		out = append(out, row[idx])
	}
	return out, nil
}

// MarshalCSV renders the table as CSV bytes: header row first, one record per
// row, NULL cells left empty.
func (t *Table) MarshalCSV() ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(t.Columns); err != nil {
		return nil, err
	}
	for _, row := range t.Rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Identifiers returns the unique non-empty values of the named column as
// identifiers, preserving first-seen order.
func (t *Table) Identifiers(column string) ([]Identifier, error) {
	values, err := t.ColumnValues(column)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]Identifier, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, Identifier(v))
	}
	return out, nil
}
