package model

import (
	"fmt"
)

// Table is an ordered, in-memory record table.
// Every row has exactly len(Columns) cells.
type Table struct {
	// Column names in source order
	Columns []string

	// Data rows in source order
	Rows [][]Value
}

// NewTable creates an empty table with the given columns
func NewTable(columns []string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{
		Columns: cols,
		Rows:    make([][]Value, 0),
	}
}

// Index returns the position of a column, or -1 when absent
func (t *Table) Index(column string) int {
	for i, c := range t.Columns {
		if c == column {
			return i
		}
	}
	return -1
}

// Column returns every cell of a column in row order
func (t *Table) Column(column string) ([]Value, error) {
	idx := t.Index(column)
	if idx < 0 {
		return nil, fmt.Errorf("column %q not found", column)
	}
	out := make([]Value, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[idx]
	}
	return out, nil
}

// AppendRow adds a row, padding short rows with missing cells
func (t *Table) AppendRow(cells []Value) error {
	if len(cells) > len(t.Columns) {
		return fmt.Errorf("row has %d cells, table has %d columns", len(cells), len(t.Columns))
	}
	row := make([]Value, len(t.Columns))
	copy(row, cells)
	t.Rows = append(t.Rows, row)
	return nil
}

// Len returns the number of data rows
func (t *Table) Len() int {
	return len(t.Rows)
}

// Sum adds up a numeric column, treating missing and text cells as 0
func (t *Table) Sum(column string) (float64, error) {
	values, err := t.Column(column)
	if err != nil {
		return 0, err
	}
	total := 0.0
	for _, v := range values {
		total += v.Float()
	}
	return total, nil
}
