package schema

import (
	"fmt"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
)

// FieldArrowType maps a struct-type field type name to the corresponding
// Arrow data type.
func FieldArrowType(name string) (arrow.DataType, error) {
	switch name {
	case "byte", "tinyint":
		return arrow.PrimitiveTypes.Int8, nil
	case "short", "smallint":
		return arrow.PrimitiveTypes.Int16, nil
	case "integer", "int":
		return arrow.PrimitiveTypes.Int32, nil
	case "long", "bigint":
		return arrow.PrimitiveTypes.Int64, nil
	case "float":
		return arrow.PrimitiveTypes.Float32, nil
	case "double":
		return arrow.PrimitiveTypes.Float64, nil
	case "boolean":
		return arrow.FixedWidthTypes.Boolean, nil
	case "string", "varchar", "char":
		return arrow.BinaryTypes.String, nil
	case "date":
		return arrow.FixedWidthTypes.Date32, nil
	case "timestamp":
		return &arrow.TimestampType{Unit: arrow.Microsecond, TimeZone: "UTC"}, nil
	case "binary":
		return arrow.BinaryTypes.Binary, nil
	default:
		// decimal(p,s) loses scale information here; engines that need exact
		// decimals must carry it in their own DDL mapping.
		if strings.HasPrefix(name, "decimal") {
			return arrow.PrimitiveTypes.Float64, nil
		}
		return nil, fmt.Errorf("unsupported field type %q", name)
	}
}

// ToArrow converts the schema into an Arrow schema.
func (s *Schema) ToArrow() (*arrow.Schema, error) {
	fields := make([]arrow.Field, len(s.Fields))
	for i, f := range s.Fields {
		dt, err := FieldArrowType(f.Type)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		fields[i] = arrow.Field{
			Name:     f.Name,
			Type:     dt,
			Nullable: f.Nullable,
		}
	}
	return arrow.NewSchema(fields, nil), nil
}
