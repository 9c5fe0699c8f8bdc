package dataframe

import (
	"encoding/csv"
	"fmt"
	"os"
)

// ReadCSV loads a CSV file with a header row into a local table. All values
// are strings; typed promotion happens later, either through an explicit
// schema or engine-side inference.
func ReadCSV(path string) (*Local, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv file: %w", err)
	}
	defer func() { _ = f.Close() }()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv file %q has no header row", path)
	}
	rows := make([][]any, len(records)-1)
	for i, rec := range records[1:] {
		row := make([]any, len(rec))
		for j, v := range rec {
			row[j] = v
		}
		rows[i] = row
	}
	return NewLocal(records[0], rows)
}

// WriteCSV writes a local table to a CSV file with a header row.
func WriteCSV(path string, l *Local) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(l.Columns()); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i := 0; i < l.NumRows(); i++ {
		row := l.Row(i)
		rec := make([]string, len(row))
		for j, v := range row {
			if v != nil {
				rec[j] = asString(v)
			}
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("write csv row %d: %w", i, err)
		}
	}
	w.Flush()
	return w.Error()
}
