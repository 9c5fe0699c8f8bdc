// Package table defines the immutable, validated descriptor for a
// catalog-addressed table: its identity (catalog, database, table), storage
// format, write semantics, and dataframe representation, plus an optional
// explicit schema in JSON form.
package table

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/datalift/tablegate/schema"
	"github.com/datalift/tablegate/tgerr"
)

// Format is the storage format of a table.
type Format string

const (
	FormatDelta   Format = "delta"
	FormatParquet Format = "parquet"
	FormatCSV     Format = "csv"
)

// Formats lists the valid storage formats.
func Formats() []Format {
	return []Format{FormatDelta, FormatParquet, FormatCSV}
}

// WriteMode is the policy for merging saved data into an existing table.
// The empty value means the dataset is read-only.
type WriteMode string

const (
	ModeReadOnly  WriteMode = ""
	ModeOverwrite WriteMode = "overwrite"
	ModeAppend    WriteMode = "append"
	// ModeUpsert is only accepted by the managed descriptor tier, which
	// carries the primary key the merge is keyed on.
	ModeUpsert WriteMode = "upsert"
)

// FrameType selects the dataframe representation a dataset loads and saves.
type FrameType string

const (
	// FrameNative is the engine-managed distributed dataframe. The config
	// surface calls it "spark".
	FrameNative FrameType = "spark"
	// FrameLocal is the in-memory, single-process dataframe. The config
	// surface calls it "pandas".
	FrameLocal FrameType = "pandas"
)

// namingPattern constrains table, database, and catalog names to a single
// word token: no dots, no whitespace, no empty string, and hyphens only in
// the interior.
var namingPattern = regexp.MustCompile(`^(\w[\w-]*\w|\w)$`)

// Params carries the raw field values for a Descriptor. Validation happens
// in New; a Params value itself makes no promises.
type Params struct {
	Format     Format
	Database   string
	Catalog    string
	Table      string
	WriteMode  WriteMode
	FrameType  FrameType
	OwnerGroup string
	// PartitionColumns is informational: carried for description output and
	// project hooks, never consulted by load/save logic.
	PartitionColumns []string
	// JSONSchema is the optional struct-type schema document. It is decoded
	// on demand by Schema, not at construction.
	JSONSchema json.RawMessage
}

// Descriptor is the validated, immutable description of a table. Construct
// it with New or NewManaged; the zero value is not usable.
type Descriptor struct {
	format           Format
	database         string
	catalog          string
	table            string
	writeMode        WriteMode
	frameType        FrameType
	ownerGroup       string
	partitionColumns []string
	jsonSchema       json.RawMessage
}

var baseWriteModes = []WriteMode{ModeOverwrite, ModeAppend}

// New builds and validates a Descriptor. Validators run in field declaration
// order (format, database, catalog, table, write mode, dataframe type) and
// the first violation fails construction with a *tgerr.ConfigurationError.
func New(p Params) (*Descriptor, error) {
	d := build(p)
	if err := runChecks(d.checks(baseWriteModes)); err != nil {
		return nil, err
	}
	return d, nil
}

func build(p Params) *Descriptor {
	return &Descriptor{
		format:           p.Format,
		database:         p.Database,
		catalog:          p.Catalog,
		table:            p.Table,
		writeMode:        p.WriteMode,
		frameType:        p.FrameType,
		ownerGroup:       p.OwnerGroup,
		partitionColumns: append([]string(nil), p.PartitionColumns...),
		jsonSchema:       append(json.RawMessage(nil), p.JSONSchema...),
	}
}

func runChecks(checks []func() error) error {
	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

// checks returns the ordered validator list for the base descriptor tier.
func (d *Descriptor) checks(allowedModes []WriteMode) []func() error {
	return []func() error{
		d.validateFormat,
		d.validateDatabase,
		d.validateCatalog,
		d.validateTable,
		func() error { return d.validateWriteMode(allowedModes) },
		d.validateFrameType,
	}
}

func (d *Descriptor) validateFormat() error {
	for _, f := range Formats() {
		if d.format == f {
			return nil
		}
	}
	return &tgerr.ConfigurationError{
		Kind:   tgerr.InvalidFormat,
		Field:  "format",
		Detail: fmt.Sprintf("%q is not one of %s", d.format, joinFormats()),
	}
}

func (d *Descriptor) validateDatabase() error {
	if !namingPattern.MatchString(d.database) {
		return &tgerr.ConfigurationError{
			Kind:   tgerr.InvalidDatabaseName,
			Field:  "database",
			Detail: fmt.Sprintf("database %q does not conform to naming", d.database),
		}
	}
	return nil
}

func (d *Descriptor) validateCatalog() error {
	if d.catalog == "" {
		return nil
	}
	if !namingPattern.MatchString(d.catalog) {
		return &tgerr.ConfigurationError{
			Kind:   tgerr.InvalidCatalogName,
			Field:  "catalog",
			Detail: fmt.Sprintf("catalog %q does not conform to naming", d.catalog),
		}
	}
	return nil
}

func (d *Descriptor) validateTable() error {
	if !namingPattern.MatchString(d.table) {
		return &tgerr.ConfigurationError{
			Kind:   tgerr.InvalidTableName,
			Field:  "table",
			Detail: fmt.Sprintf("table %q does not conform to naming", d.table),
		}
	}
	return nil
}

func (d *Descriptor) validateWriteMode(allowed []WriteMode) error {
	if d.writeMode == ModeReadOnly {
		return nil
	}
	for _, m := range allowed {
		if d.writeMode == m {
			return nil
		}
	}
	return &tgerr.ConfigurationError{
		Kind:   tgerr.InvalidWriteMode,
		Field:  "write_mode",
		Detail: fmt.Sprintf("%q is not one of %s", d.writeMode, joinModes(allowed)),
	}
}

func (d *Descriptor) validateFrameType() error {
	if d.frameType == FrameNative || d.frameType == FrameLocal {
		return nil
	}
	return &tgerr.ConfigurationError{
		Kind:   tgerr.InvalidFrameType,
		Field:  "dataframe_type",
		Detail: fmt.Sprintf("%q is not one of %q, %q", d.frameType, FrameNative, FrameLocal),
	}
}

func (d *Descriptor) Format() Format       { return d.format }
func (d *Descriptor) Database() string     { return d.database }
func (d *Descriptor) Catalog() string      { return d.catalog }
func (d *Descriptor) Table() string        { return d.table }
func (d *Descriptor) WriteMode() WriteMode { return d.writeMode }
func (d *Descriptor) FrameType() FrameType { return d.frameType }
func (d *Descriptor) OwnerGroup() string   { return d.ownerGroup }

// ReadOnly reports whether the descriptor forbids saving.
func (d *Descriptor) ReadOnly() bool { return d.writeMode == ModeReadOnly }

// PartitionColumns returns a copy of the informational partition column list.
func (d *Descriptor) PartitionColumns() []string {
	return append([]string(nil), d.partitionColumns...)
}

// HasSchema reports whether an explicit JSON schema was supplied.
func (d *Descriptor) HasSchema() bool { return len(d.jsonSchema) > 0 }

// FullTableLocation returns the backtick-quoted, dot-joined table location:
// `catalog`.`database`.`table` when a catalog is set, `database`.`table`
// otherwise, and the empty string when database or table is absent.
func (d *Descriptor) FullTableLocation() string {
	switch {
	case d.catalog != "" && d.database != "" && d.table != "":
		return fmt.Sprintf("`%s`.`%s`.`%s`", d.catalog, d.database, d.table)
	case d.database != "" && d.table != "":
		return fmt.Sprintf("`%s`.`%s`", d.database, d.table)
	}
	return ""
}

// Schema decodes the JSON schema supplied at construction. It returns
// (nil, nil) when no schema was supplied; absence is not an error. A
// malformed document fails with a *tgerr.ConfigurationError.
func (d *Descriptor) Schema() (*schema.Schema, error) {
	if len(d.jsonSchema) == 0 {
		return nil, nil
	}
	s, err := schema.Decode(d.jsonSchema)
	if err != nil {
		return nil, &tgerr.ConfigurationError{
			Kind:   tgerr.SchemaDecode,
			Field:  "schema",
			Detail: fmt.Sprintf("table %q", d.table),
			Err:    err,
		}
	}
	return s, nil
}

func joinFormats() string {
	parts := make([]string, 0, len(Formats()))
	for _, f := range Formats() {
		parts = append(parts, string(f))
	}
	return strings.Join(parts, ", ")
}

func joinModes(modes []WriteMode) string {
	parts := make([]string, 0, len(modes))
	for _, m := range modes {
		parts = append(parts, string(m))
	}
	return strings.Join(parts, ", ")
}
