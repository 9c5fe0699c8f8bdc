package dataframe

import (
	"fmt"
	"strconv"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/datalift/tablegate/schema"
)

// FromLocal builds a native frame from a local table using an explicit
// schema. The local table must contain every schema field; extra local
// columns are ignored. Values are coerced to the field types, including
// parsing from strings, so CSV-sourced tables can be promoted.
func FromLocal(l *Local, s *schema.Schema) (*Frame, error) {
	as, err := s.ToArrow()
	if err != nil {
		return nil, err
	}
	idx := make([]int, len(s.Fields))
	for i, f := range s.Fields {
		j := l.ColumnIndex(f.Name)
		if j < 0 {
			return nil, fmt.Errorf("column %q required by schema not found", f.Name)
		}
		idx[i] = j
	}
	return buildFrame(as, l, idx)
}

// FromLocalInferred builds a native frame from a local table, inferring each
// column's type from its first non-nil value. Columns with no values default
// to string.
func FromLocalInferred(l *Local) (*Frame, error) {
	columns := l.Columns()
	fields := make([]arrow.Field, len(columns))
	idx := make([]int, len(columns))
	for i, name := range columns {
		fields[i] = arrow.Field{Name: name, Type: inferColumnType(l, i), Nullable: true}
		idx[i] = i
	}
	return buildFrame(arrow.NewSchema(fields, nil), l, idx)
}

func buildFrame(as *arrow.Schema, l *Local, idx []int) (*Frame, error) {
	rb := array.NewRecordBuilder(memory.DefaultAllocator, as)
	defer rb.Release()
	for ri := 0; ri < l.NumRows(); ri++ {
		for fi := range as.Fields() {
			if err := appendValue(rb.Field(fi), l.At(ri, idx[fi])); err != nil {
				return nil, fmt.Errorf("row %d, column %q: %w", ri, as.Field(fi).Name, err)
			}
		}
	}
	return NewFrame(rb.NewRecord()), nil
}

func inferColumnType(l *Local, col int) arrow.DataType {
	for ri := 0; ri < l.NumRows(); ri++ {
		switch l.At(ri, col).(type) {
		case nil:
			continue
		case bool:
			return arrow.FixedWidthTypes.Boolean
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			return arrow.PrimitiveTypes.Int64
		case float32, float64:
			return arrow.PrimitiveTypes.Float64
		case time.Time:
			return &arrow.TimestampType{Unit: arrow.Microsecond, TimeZone: "UTC"}
		case []byte:
			return arrow.BinaryTypes.Binary
		default:
			return arrow.BinaryTypes.String
		}
	}
	return arrow.BinaryTypes.String
}

// appendValue coerces v into the builder's type and appends it.
func appendValue(b array.Builder, v any) error {
	if v == nil {
		b.AppendNull()
		return nil
	}
	switch bld := b.(type) {
	case *array.Int8Builder:
		n, err := asInt64(v)
		if err != nil {
			return err
		}
		bld.Append(int8(n))
	case *array.Int16Builder:
		n, err := asInt64(v)
		if err != nil {
			return err
		}
		bld.Append(int16(n))
	case *array.Int32Builder:
		n, err := asInt64(v)
		if err != nil {
			return err
		}
		bld.Append(int32(n))
	case *array.Int64Builder:
		n, err := asInt64(v)
		if err != nil {
			return err
		}
		bld.Append(n)
	case *array.Float32Builder:
		f, err := asFloat64(v)
		if err != nil {
			return err
		}
		bld.Append(float32(f))
	case *array.Float64Builder:
		f, err := asFloat64(v)
		if err != nil {
			return err
		}
		bld.Append(f)
	case *array.BooleanBuilder:
		t, err := asBool(v)
		if err != nil {
			return err
		}
		bld.Append(t)
	case *array.StringBuilder:
		bld.Append(asString(v))
	case *array.BinaryBuilder:
		switch val := v.(type) {
		case []byte:
			bld.Append(val)
		case string:
			bld.Append([]byte(val))
		default:
			return fmt.Errorf("cannot use %T as binary", v)
		}
	case *array.TimestampBuilder:
		t, err := asTime(v)
		if err != nil {
			return err
		}
		ts, err := arrow.TimestampFromTime(t, arrow.Microsecond)
		if err != nil {
			return err
		}
		bld.Append(ts)
	case *array.Date32Builder:
		t, err := asTime(v)
		if err != nil {
			return err
		}
		bld.Append(arrow.Date32FromTime(t))
	default:
		return fmt.Errorf("unsupported builder type %T", b)
	}
	return nil
}

func asInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint:
		return int64(n), nil
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		return int64(n), nil
	case float32:
		return int64(n), nil
	case float64:
		return int64(n), nil
	case string:
		return strconv.ParseInt(n, 10, 64)
	}
	return 0, fmt.Errorf("cannot use %T as integer", v)
}

func asFloat64(v any) (float64, error) {
	switch n := v.(type) {
	case float32:
		return float64(n), nil
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case string:
		return strconv.ParseFloat(n, 64)
	}
	return 0, fmt.Errorf("cannot use %T as float", v)
}

func asBool(v any) (bool, error) {
	switch t := v.(type) {
	case bool:
		return t, nil
	case string:
		return strconv.ParseBool(t)
	}
	return false, fmt.Errorf("cannot use %T as boolean", v)
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	case time.Time:
		return s.UTC().Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(v)
	}
}

func asTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, nil
			}
		}
		return time.Time{}, fmt.Errorf("cannot parse %q as time", t)
	}
	return time.Time{}, fmt.Errorf("cannot use %T as time", v)
}
