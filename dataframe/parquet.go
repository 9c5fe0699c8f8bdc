package dataframe

import (
	"context"
	"fmt"
	"os"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
)

// ReadParquet loads a parquet file into a local table.
func ReadParquet(ctx context.Context, path string) (*Local, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open parquet file: %w", err)
	}
	defer func() { _ = f.Close() }()

	pf, err := file.NewParquetReader(f, file.WithReadProps(&parquet.ReaderProperties{}))
	if err != nil {
		return nil, fmt.Errorf("create parquet reader: %w", err)
	}
	defer func() { _ = pf.Close() }()

	reader, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{}, memory.DefaultAllocator)
	if err != nil {
		return nil, fmt.Errorf("create arrow reader: %w", err)
	}
	tbl, err := reader.ReadTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("read parquet table: %w", err)
	}
	defer tbl.Release()

	rdr := array.NewTableReader(tbl, tbl.NumRows())
	defer rdr.Release()

	var out *Local
	for rdr.Next() {
		frame := NewFrame(rdr.Record())
		local := frame.ToLocal()
		if out == nil {
			out = local
			continue
		}
		out.rows = append(out.rows, local.rows...)
	}
	if out == nil {
		return &Local{}, nil
	}
	return out, nil
}

// WriteParquet writes a local table to a parquet file, inferring column types.
func WriteParquet(path string, l *Local) error {
	frame, err := FromLocalInferred(l)
	if err != nil {
		return err
	}
	defer frame.Release()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create parquet file: %w", err)
	}
	defer func() { _ = f.Close() }()

	props := parquet.NewWriterProperties()
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema())
	writer, err := pqarrow.NewFileWriter(frame.Schema(), f, props, arrowProps)
	if err != nil {
		return fmt.Errorf("create parquet writer: %w", err)
	}

	tbl := array.NewTableFromRecords(frame.Schema(), []arrow.Record{frame.Record()})
	defer tbl.Release()
	if err := writer.WriteTable(tbl, tbl.NumRows()); err != nil {
		_ = writer.Close()
		return fmt.Errorf("write parquet table: %w", err)
	}
	return writer.Close()
}
