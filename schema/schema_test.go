package schema_test

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/datalift/tablegate/schema"
)

func TestDecode(t *testing.T) {
	raw := []byte(`{"type":"struct","fields":[
		{"name":"id","type":"long","nullable":false,"metadata":{}},
		{"name":"name","type":"string","nullable":true,"metadata":{}},
		{"name":"score","type":"double","nullable":true,"metadata":{}}]}`)
	s, err := schema.Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	names := s.FieldNames()
	want := []string{"id", "name", "score"}
	if len(names) != len(want) {
		t.Fatalf("FieldNames() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("FieldNames()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
	if s.Fields[0].Nullable {
		t.Error("id should not be nullable")
	}
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{`},
		{"wrong type", `{"type":"map","fields":[{"name":"id","type":"long"}]}`},
		{"missing type", `{"fields":[{"name":"id","type":"long"}]}`},
		{"field without name", `{"type":"struct","fields":[{"type":"long"}]}`},
		{"field without type", `{"type":"struct","fields":[{"name":"id"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := schema.Decode([]byte(tt.raw)); err == nil {
				t.Error("Decode should fail")
			}
		})
	}
}

// An empty struct is a valid schema; only structural problems are errors.
func TestDecode_EmptyStruct(t *testing.T) {
	s, err := schema.Decode([]byte(`{"type":"struct","fields":[]}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(s.FieldNames()) != 0 {
		t.Errorf("FieldNames() = %v, want empty", s.FieldNames())
	}
}

func TestToArrow(t *testing.T) {
	raw := []byte(`{"type":"struct","fields":[
		{"name":"id","type":"long","nullable":false,"metadata":{}},
		{"name":"ok","type":"boolean","nullable":true,"metadata":{}},
		{"name":"when","type":"timestamp","nullable":true,"metadata":{}}]}`)
	s, err := schema.Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	as, err := s.ToArrow()
	if err != nil {
		t.Fatalf("ToArrow: %v", err)
	}
	if got := as.Field(0).Type.ID(); got != arrow.INT64 {
		t.Errorf("id type = %s, want INT64", got)
	}
	if got := as.Field(1).Type.ID(); got != arrow.BOOL {
		t.Errorf("ok type = %s, want BOOL", got)
	}
	if got := as.Field(2).Type.ID(); got != arrow.TIMESTAMP {
		t.Errorf("when type = %s, want TIMESTAMP", got)
	}
	if as.Field(0).Nullable {
		t.Error("id should not be nullable")
	}
}

func TestToArrow_UnknownType(t *testing.T) {
	s := &schema.Schema{Fields: []schema.Field{{Name: "x", Type: "quaternion"}}}
	if _, err := s.ToArrow(); err == nil {
		t.Error("ToArrow should fail on an unknown type name")
	}
}
