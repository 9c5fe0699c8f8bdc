// Package dataframe provides the two tabular representations moved through a
// table dataset: Frame, the engine-native columnar dataframe backed by an
// Arrow record, and Local, the in-memory single-process table that callers
// hand in and get back when a dataset is configured for local dataframes.
package dataframe

import "fmt"

// Local is an ordered-column, row-oriented in-memory table. Every row has
// exactly one value per column; values may be nil.
type Local struct {
	columns []string
	rows    [][]any
}

// NewLocal builds a Local table. It fails if any row's width differs from
// the column count or a column name repeats.
func NewLocal(columns []string, rows [][]any) (*Local, error) {
	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		if seen[c] {
			return nil, fmt.Errorf("duplicate column %q", c)
		}
		seen[c] = true
	}
	for i, r := range rows {
		if len(r) != len(columns) {
			return nil, fmt.Errorf("row %d has %d values, want %d", i, len(r), len(columns))
		}
	}
	return &Local{
		columns: append([]string(nil), columns...),
		rows:    rows,
	}, nil
}

// Columns returns the column names in order.
func (l *Local) Columns() []string {
	return append([]string(nil), l.columns...)
}

// NumRows returns the row count.
func (l *Local) NumRows() int { return len(l.rows) }

// At returns the value at the given row and column index.
func (l *Local) At(row, col int) any { return l.rows[row][col] }

// Row returns the values of one row, in column order.
func (l *Local) Row(i int) []any {
	return append([]any(nil), l.rows[i]...)
}

// ColumnIndex returns the index of the named column, or -1.
func (l *Local) ColumnIndex(name string) int {
	for i, c := range l.columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Select returns a new Local containing exactly the named columns, in the
// given order. A name not present in the table is an error.
func (l *Local) Select(names []string) (*Local, error) {
	idx := make([]int, len(names))
	for i, name := range names {
		j := l.ColumnIndex(name)
		if j < 0 {
			return nil, fmt.Errorf("column %q not found", name)
		}
		idx[i] = j
	}
	rows := make([][]any, len(l.rows))
	for ri, r := range l.rows {
		row := make([]any, len(idx))
		for i, j := range idx {
			row[i] = r[j]
		}
		rows[ri] = row
	}
	return &Local{columns: append([]string(nil), names...), rows: rows}, nil
}
