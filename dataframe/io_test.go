package dataframe_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/datalift/tablegate/dataframe"
)

func TestCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.csv")
	l, err := dataframe.NewLocal(
		[]string{"id", "name"},
		[][]any{{int64(1), "alice"}, {int64(2), nil}},
	)
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	if err := dataframe.WriteCSV(path, l); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	back, err := dataframe.ReadCSV(path)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	cols := back.Columns()
	if len(cols) != 2 || cols[0] != "id" || cols[1] != "name" {
		t.Errorf("Columns() = %v", cols)
	}
	if back.NumRows() != 2 {
		t.Fatalf("NumRows() = %d, want 2", back.NumRows())
	}
	// CSV carries strings only.
	if back.At(0, 0) != "1" || back.At(0, 1) != "alice" {
		t.Errorf("row 0 = %v", back.Row(0))
	}
}

func TestReadCSV_Missing(t *testing.T) {
	if _, err := dataframe.ReadCSV(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Error("ReadCSV should fail on a missing file")
	}
}

func TestParquetRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.parquet")
	l, err := dataframe.NewLocal(
		[]string{"id", "name", "score"},
		[][]any{
			{int64(1), "alice", 1.5},
			{int64(2), "bob", 2.5},
		},
	)
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	if err := dataframe.WriteParquet(path, l); err != nil {
		t.Fatalf("WriteParquet: %v", err)
	}

	back, err := dataframe.ReadParquet(context.Background(), path)
	if err != nil {
		t.Fatalf("ReadParquet: %v", err)
	}
	if back.NumRows() != 2 {
		t.Fatalf("NumRows() = %d, want 2", back.NumRows())
	}
	if back.At(0, 0) != int64(1) || back.At(1, 1) != "bob" || back.At(1, 2) != 2.5 {
		t.Errorf("rows = %v / %v", back.Row(0), back.Row(1))
	}
}
