package dataframe

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
)

// Frame is the engine-native dataframe: a thin wrapper over an Arrow record.
// A Frame owns its record; call Release when done with it.
type Frame struct {
	rec arrow.Record
}

// NewFrame wraps an Arrow record, taking ownership of one reference.
func NewFrame(rec arrow.Record) *Frame {
	return &Frame{rec: rec}
}

// Record exposes the underlying Arrow record.
func (f *Frame) Record() arrow.Record { return f.rec }

// Schema returns the Arrow schema of the frame.
func (f *Frame) Schema() *arrow.Schema { return f.rec.Schema() }

// NumRows returns the row count.
func (f *Frame) NumRows() int64 { return f.rec.NumRows() }

// Columns returns the column names in order.
func (f *Frame) Columns() []string {
	fields := f.rec.Schema().Fields()
	names := make([]string, len(fields))
	for i, fld := range fields {
		names[i] = fld.Name
	}
	return names
}

// Release drops the frame's reference to its record.
func (f *Frame) Release() { f.rec.Release() }

// Select returns a new Frame containing exactly the named columns, in the
// given order. A name not present in the frame is an error.
func (f *Frame) Select(names []string) (*Frame, error) {
	srcSchema := f.rec.Schema()
	fields := make([]arrow.Field, len(names))
	cols := make([]arrow.Array, len(names))
	for i, name := range names {
		indices := srcSchema.FieldIndices(name)
		if len(indices) == 0 {
			return nil, fmt.Errorf("column %q not found", name)
		}
		fields[i] = srcSchema.Field(indices[0])
		cols[i] = f.rec.Column(indices[0])
	}
	out := arrow.NewSchema(fields, nil)
	return NewFrame(array.NewRecord(out, cols, f.rec.NumRows())), nil
}

// ToLocal converts the frame into a Local table. Null cells become nil.
func (f *Frame) ToLocal() *Local {
	columns := f.Columns()
	n := int(f.rec.NumRows())
	rows := make([][]any, n)
	for i := range rows {
		rows[i] = make([]any, len(columns))
	}
	for ci := 0; ci < int(f.rec.NumCols()); ci++ {
		col := f.rec.Column(ci)
		for ri := 0; ri < n; ri++ {
			rows[ri][ci] = arrayValue(col, ri)
		}
	}
	return &Local{columns: columns, rows: rows}
}

// arrayValue extracts a Go value from an Arrow array cell.
func arrayValue(col arrow.Array, i int) any {
	if col.IsNull(i) {
		return nil
	}
	switch arr := col.(type) {
	case *array.Int8:
		return int64(arr.Value(i))
	case *array.Int16:
		return int64(arr.Value(i))
	case *array.Int32:
		return int64(arr.Value(i))
	case *array.Int64:
		return arr.Value(i)
	case *array.Float32:
		return float64(arr.Value(i))
	case *array.Float64:
		return arr.Value(i)
	case *array.Boolean:
		return arr.Value(i)
	case *array.String:
		return arr.Value(i)
	case *array.Binary:
		return append([]byte(nil), arr.Value(i)...)
	case *array.Timestamp:
		unit := arr.DataType().(*arrow.TimestampType).Unit
		return arr.Value(i).ToTime(unit)
	case *array.Date32:
		return arr.Value(i).ToTime()
	default:
		return col.ValueStr(i)
	}
}
