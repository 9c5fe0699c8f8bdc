package table_test

import (
	"testing"

	"github.com/datalift/tablegate/table"
	"github.com/datalift/tablegate/tgerr"
)

func validParams() table.Params {
	return table.Params{
		Format:    table.FormatDelta,
		Database:  "default",
		Catalog:   "dev",
		Table:     "events",
		WriteMode: table.ModeOverwrite,
		FrameType: table.FrameNative,
	}
}

func TestNew_Valid(t *testing.T) {
	d, err := table.New(validParams())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if d.Table() != "events" || d.Database() != "default" || d.Catalog() != "dev" {
		t.Errorf("identity = %q/%q/%q", d.Catalog(), d.Database(), d.Table())
	}
	if d.ReadOnly() {
		t.Error("descriptor with a write mode should not be read-only")
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*table.Params)
		kind   tgerr.ConfigKind
	}{
		{
			name:   "unknown format",
			mutate: func(p *table.Params) { p.Format = "orc" },
			kind:   tgerr.InvalidFormat,
		},
		{
			name:   "empty format",
			mutate: func(p *table.Params) { p.Format = "" },
			kind:   tgerr.InvalidFormat,
		},
		{
			name:   "dotted database",
			mutate: func(p *table.Params) { p.Database = "my.db" },
			kind:   tgerr.InvalidDatabaseName,
		},
		{
			name:   "empty database",
			mutate: func(p *table.Params) { p.Database = "" },
			kind:   tgerr.InvalidDatabaseName,
		},
		{
			name:   "catalog with space",
			mutate: func(p *table.Params) { p.Catalog = "my catalog" },
			kind:   tgerr.InvalidCatalogName,
		},
		{
			name:   "empty table",
			mutate: func(p *table.Params) { p.Table = "" },
			kind:   tgerr.InvalidTableName,
		},
		{
			name:   "dotted table",
			mutate: func(p *table.Params) { p.Table = "a.b" },
			kind:   tgerr.InvalidTableName,
		},
		{
			name:   "table with space",
			mutate: func(p *table.Params) { p.Table = "my table" },
			kind:   tgerr.InvalidTableName,
		},
		{
			name:   "table with leading hyphen",
			mutate: func(p *table.Params) { p.Table = "-events" },
			kind:   tgerr.InvalidTableName,
		},
		{
			name:   "table with trailing hyphen",
			mutate: func(p *table.Params) { p.Table = "events-" },
			kind:   tgerr.InvalidTableName,
		},
		{
			name:   "database with leading hyphen",
			mutate: func(p *table.Params) { p.Database = "-db" },
			kind:   tgerr.InvalidDatabaseName,
		},
		{
			name:   "unknown write mode",
			mutate: func(p *table.Params) { p.WriteMode = "merge" },
			kind:   tgerr.InvalidWriteMode,
		},
		{
			name:   "upsert rejected by base tier",
			mutate: func(p *table.Params) { p.WriteMode = table.ModeUpsert },
			kind:   tgerr.InvalidWriteMode,
		},
		{
			name:   "unknown dataframe type",
			mutate: func(p *table.Params) { p.FrameType = "polars" },
			kind:   tgerr.InvalidFrameType,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)
			_, err := table.New(p)
			if err == nil {
				t.Fatal("New should fail")
			}
			if !tgerr.IsConfiguration(err, tt.kind) {
				t.Errorf("error = %v, want configuration kind %s", err, tt.kind)
			}
		})
	}
}

// The first violated rule wins: with both a bad format and a bad table name,
// the format validator reports.
func TestNew_ValidatorOrder(t *testing.T) {
	p := validParams()
	p.Format = "orc"
	p.Table = "a.b"
	_, err := table.New(p)
	if !tgerr.IsConfiguration(err, tgerr.InvalidFormat) {
		t.Errorf("error = %v, want %s first", err, tgerr.InvalidFormat)
	}
}

func TestNew_NamesWithUnderscoreAndDash(t *testing.T) {
	p := validParams()
	p.Table = "raw_events-v2"
	p.Database = "bronze_layer"
	p.Catalog = "unity-dev"
	if _, err := table.New(p); err != nil {
		t.Fatalf("New: %v", err)
	}
	// Single-character names are word tokens too.
	p = validParams()
	p.Table = "t"
	if _, err := table.New(p); err != nil {
		t.Fatalf("New: %v", err)
	}
}

func TestNew_ReadOnly(t *testing.T) {
	p := validParams()
	p.WriteMode = table.ModeReadOnly
	d, err := table.New(p)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !d.ReadOnly() {
		t.Error("empty write mode should mean read-only")
	}
}

func TestFullTableLocation(t *testing.T) {
	tests := []struct {
		name    string
		catalog string
		want    string
	}{
		{"with catalog", "dev", "`dev`.`default`.`events`"},
		{"without catalog", "", "`default`.`events`"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			p.Catalog = tt.catalog
			d, err := table.New(p)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if got := d.FullTableLocation(); got != tt.want {
				t.Errorf("FullTableLocation() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSchema_Decodes(t *testing.T) {
	p := validParams()
	p.JSONSchema = []byte(`{"type":"struct","fields":[
		{"name":"id","type":"long","nullable":false,"metadata":{}},
		{"name":"name","type":"string","nullable":true,"metadata":{}}]}`)
	d, err := table.New(p)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !d.HasSchema() {
		t.Fatal("HasSchema should be true")
	}
	s, err := d.Schema()
	if err != nil {
		t.Fatalf("Schema: %v", err)
	}
	names := s.FieldNames()
	if len(names) != 2 || names[0] != "id" || names[1] != "name" {
		t.Errorf("FieldNames() = %v", names)
	}
}

func TestSchema_Absent(t *testing.T) {
	d, err := table.New(validParams())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if d.HasSchema() {
		t.Error("HasSchema should be false")
	}
	s, err := d.Schema()
	if err != nil {
		t.Errorf("Schema: %v", err)
	}
	if s != nil {
		t.Errorf("Schema() = %v, want nil", s)
	}
}

// A malformed schema document passes construction and only fails when the
// schema is actually decoded.
func TestSchema_MalformedFailsOnDecode(t *testing.T) {
	p := validParams()
	p.JSONSchema = []byte(`{"type":"array","fields":[]}`)
	d, err := table.New(p)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := d.Schema(); !tgerr.IsConfiguration(err, tgerr.SchemaDecode) {
		t.Errorf("Schema() error = %v, want %s", err, tgerr.SchemaDecode)
	}
}

func TestPartitionColumns_Copied(t *testing.T) {
	p := validParams()
	p.PartitionColumns = []string{"day"}
	d, err := table.New(p)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	cols := d.PartitionColumns()
	cols[0] = "mutated"
	if d.PartitionColumns()[0] != "day" {
		t.Error("PartitionColumns should return a copy")
	}
}

func TestNewManaged_Upsert(t *testing.T) {
	p := validParams()
	p.WriteMode = table.ModeUpsert
	m, err := table.NewManaged(p, []string{"id"})
	if err != nil {
		t.Fatalf("NewManaged: %v", err)
	}
	if got := m.PrimaryKey(); len(got) != 1 || got[0] != "id" {
		t.Errorf("PrimaryKey() = %v", got)
	}
}

func TestNewManaged_UpsertWithoutPrimaryKey(t *testing.T) {
	p := validParams()
	p.WriteMode = table.ModeUpsert
	_, err := table.NewManaged(p, nil)
	if !tgerr.IsConfiguration(err, tgerr.MissingPrimaryKey) {
		t.Errorf("error = %v, want %s", err, tgerr.MissingPrimaryKey)
	}
}

func TestNewManaged_BaseChecksStillApply(t *testing.T) {
	p := validParams()
	p.Table = "a.b"
	_, err := table.NewManaged(p, []string{"id"})
	if !tgerr.IsConfiguration(err, tgerr.InvalidTableName) {
		t.Errorf("error = %v, want %s", err, tgerr.InvalidTableName)
	}
}

func TestNewManaged_OverwriteWithoutPrimaryKey(t *testing.T) {
	// The primary key is only mandatory for upsert.
	if _, err := table.NewManaged(validParams(), nil); err != nil {
		t.Fatalf("NewManaged: %v", err)
	}
}
