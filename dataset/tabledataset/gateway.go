// Package tabledataset implements the table dataset gateway: one validated
// table descriptor plus load/save/exists/describe orchestration against a
// compute engine.
//
// Exists switches the session's active catalog as a side effect with no
// restoration step. Gateways sharing a session may run existence checks
// concurrently, but they can then observe each other's catalog switches; the
// check tolerates that by looking up the table in whatever catalog context is
// active.
package tabledataset

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/datalift/tablegate/dataframe"
	"github.com/datalift/tablegate/dataset"
	"github.com/datalift/tablegate/engine"
	"github.com/datalift/tablegate/metrics"
	"github.com/datalift/tablegate/schema"
	"github.com/datalift/tablegate/table"
	"github.com/datalift/tablegate/tgerr"
)

// Options carries the construction-time configuration of a table dataset.
type Options struct {
	// Table is required; everything else has defaults or is optional.
	Table    string
	Catalog  string
	Database string // default "default"
	Format   string // default "delta"

	// WriteMode defaults to "overwrite". Set ReadOnly to disable saving
	// entirely; it takes precedence over WriteMode.
	WriteMode string
	ReadOnly  bool

	// FrameType selects the dataframe representation: "spark" (native,
	// default) or "pandas" (local).
	FrameType string

	// Schema is an optional struct-type JSON document. When set, saved
	// dataframes are truncated to exactly its fields, in its order.
	Schema json.RawMessage

	// PrimaryKey names the merge key columns; only consulted by the managed
	// tier for upsert writes.
	PrimaryKey []string

	// Informational fields, surfaced by Describe and project hooks.
	PartitionColumns []string
	OwnerGroup       string
	Metadata         map[string]any
	Version          string

	// Extra is an open-ended bag forwarded verbatim into Describe output.
	Extra map[string]any
}

func (o Options) withDefaults() Options {
	if o.Database == "" {
		o.Database = "default"
	}
	if o.Format == "" {
		o.Format = string(table.FormatDelta)
	}
	if o.FrameType == "" {
		o.FrameType = string(table.FrameNative)
	}
	if o.ReadOnly {
		o.WriteMode = ""
	} else if o.WriteMode == "" {
		o.WriteMode = string(table.ModeOverwrite)
	}
	return o
}

func (o Options) params() table.Params {
	return table.Params{
		Format:           table.Format(o.Format),
		Database:         o.Database,
		Catalog:          o.Catalog,
		Table:            o.Table,
		WriteMode:        table.WriteMode(o.WriteMode),
		FrameType:        table.FrameType(o.FrameType),
		OwnerGroup:       o.OwnerGroup,
		PartitionColumns: o.PartitionColumns,
		JSONSchema:       o.Schema,
	}
}

type saveFunc func(ctx context.Context, frame *dataframe.Frame) error

// Gateway is a table-backed dataset. It holds exactly one descriptor and the
// engine handle; it has no other persisted state.
type Gateway struct {
	dataset.Versioned

	desc       *table.Descriptor
	primaryKey []string
	eng        engine.Engine
	logger     *slog.Logger
	metadata   map[string]any
	extra      map[string]any
	handlers   map[table.WriteMode]saveFunc
}

// New builds a base-tier gateway: write modes overwrite and append. The
// descriptor is validated here; on error nothing is constructed.
func New(eng engine.Engine, opts Options, logger *slog.Logger) (*Gateway, error) {
	opts = opts.withDefaults()
	desc, err := table.New(opts.params())
	if err != nil {
		return nil, err
	}
	return newGateway(eng, desc, nil, opts, logger), nil
}

// NewManaged builds a managed-tier gateway, which additionally supports the
// upsert write mode keyed on Options.PrimaryKey.
func NewManaged(eng engine.Engine, opts Options, logger *slog.Logger) (*Gateway, error) {
	opts = opts.withDefaults()
	desc, err := table.NewManaged(opts.params(), opts.PrimaryKey)
	if err != nil {
		return nil, err
	}
	g := newGateway(eng, &desc.Descriptor, desc.PrimaryKey(), opts, logger)
	g.handlers[table.ModeUpsert] = g.saveUpsert
	return g, nil
}

func newGateway(eng engine.Engine, desc *table.Descriptor, primaryKey []string, opts Options, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	g := &Gateway{
		desc:       desc,
		primaryKey: primaryKey,
		eng:        eng,
		logger:     logger.With("dataset", desc.Table()),
		metadata:   opts.Metadata,
		extra:      opts.Extra,
	}
	g.handlers = map[table.WriteMode]saveFunc{
		table.ModeOverwrite: g.saveOverwrite,
		table.ModeAppend:    g.saveAppend,
	}
	g.Versioned = dataset.NewVersioned(opts.Version, g.checkExists)
	return g
}

// Descriptor exposes the validated table descriptor.
func (g *Gateway) Descriptor() *table.Descriptor { return g.desc }

// Metadata returns the opaque metadata supplied at construction.
func (g *Gateway) Metadata() map[string]any { return g.metadata }

// Load reads the table into the configured dataframe representation. No
// schema projection happens on load: the table's columns come back as-is.
func (g *Gateway) Load(ctx context.Context) (any, error) {
	frame, err := g.eng.ReadTable(ctx, g.desc.FullTableLocation())
	if err != nil {
		metrics.Loads.WithLabelValues(g.desc.Table(), "error").Inc()
		return nil, err
	}
	metrics.Loads.WithLabelValues(g.desc.Table(), "success").Inc()
	if g.desc.FrameType() == table.FrameLocal {
		defer frame.Release()
		return frame.ToLocal(), nil
	}
	return frame, nil
}

// Save writes data into the table according to the configured write mode.
// If a schema was supplied, data is truncated to exactly its fields first.
// Local dataframes are promoted to native frames before the write.
func (g *Gateway) Save(ctx context.Context, data any) error {
	if g.desc.ReadOnly() {
		metrics.Saves.WithLabelValues(g.desc.Table(), "", "read_only").Inc()
		return &tgerr.ReadOnlyError{Table: g.desc.Table()}
	}

	s, err := g.desc.Schema()
	if err != nil {
		return err
	}
	frame, owned, err := g.prepare(data, s)
	if err != nil {
		return err
	}
	if owned {
		defer frame.Release()
	}

	mode := g.desc.WriteMode()
	handler, ok := g.handlers[mode]
	if !ok {
		return &tgerr.UnsupportedWriteModeError{Mode: string(mode)}
	}
	if err := handler(ctx, frame); err != nil {
		metrics.Saves.WithLabelValues(g.desc.Table(), string(mode), "error").Inc()
		return err
	}
	metrics.Saves.WithLabelValues(g.desc.Table(), string(mode), "success").Inc()
	metrics.RowsSaved.WithLabelValues(g.desc.Table()).Add(float64(frame.NumRows()))
	return nil
}

// prepare projects and promotes the incoming data into the native frame the
// write handlers consume. The returned bool reports whether the caller owns
// the frame and must release it.
func (g *Gateway) prepare(data any, s *schema.Schema) (*dataframe.Frame, bool, error) {
	if g.desc.FrameType() == table.FrameLocal {
		local, ok := data.(*dataframe.Local)
		if !ok {
			return nil, false, fmt.Errorf("dataset expects a local dataframe, got %T", data)
		}
		if s != nil {
			selected, err := local.Select(s.FieldNames())
			if err != nil {
				return nil, false, err
			}
			frame, err := dataframe.FromLocal(selected, s)
			return frame, true, err
		}
		frame, err := dataframe.FromLocalInferred(local)
		return frame, true, err
	}

	frame, ok := data.(*dataframe.Frame)
	if !ok {
		return nil, false, fmt.Errorf("dataset expects a native dataframe, got %T", data)
	}
	if s != nil {
		projected, err := frame.Select(s.FieldNames())
		return projected, true, err
	}
	return frame, false, nil
}

func (g *Gateway) saveAppend(ctx context.Context, frame *dataframe.Frame) error {
	return g.eng.SaveTable(ctx, g.desc.FullTableLocation(), frame, engine.WriteRequest{
		Mode:   table.ModeAppend,
		Format: g.desc.Format(),
	})
}

// saveOverwrite replaces the table contents and enables schema overwrite, so
// the destination schema follows the incoming dataframe.
func (g *Gateway) saveOverwrite(ctx context.Context, frame *dataframe.Frame) error {
	return g.eng.SaveTable(ctx, g.desc.FullTableLocation(), frame, engine.WriteRequest{
		Mode:    table.ModeOverwrite,
		Format:  g.desc.Format(),
		Options: map[string]string{"overwriteSchema": "true"},
	})
}

func (g *Gateway) saveUpsert(ctx context.Context, frame *dataframe.Frame) error {
	return g.eng.SaveTable(ctx, g.desc.FullTableLocation(), frame, engine.WriteRequest{
		Mode:       table.ModeUpsert,
		Format:     g.desc.Format(),
		PrimaryKey: g.primaryKey,
	})
}

// Describe returns the dataset's identity fields merged with the open-ended
// option bag supplied at construction.
func (g *Gateway) Describe() map[string]any {
	out := map[string]any{
		"catalog":           g.desc.Catalog(),
		"database":          g.desc.Database(),
		"table":             g.desc.Table(),
		"write_mode":        string(g.desc.WriteMode()),
		"dataframe_type":    string(g.desc.FrameType()),
		"owner_group":       g.desc.OwnerGroup(),
		"partition_columns": g.desc.PartitionColumns(),
	}
	for k, v := range g.extra {
		out[k] = v
	}
	return out
}

// checkExists is the exists function registered with the versioned base. It
// never fails: every engine-level error is downgraded to "does not exist",
// because the versioning layer consumes this as a boolean precondition.
func (g *Gateway) checkExists(ctx context.Context) bool {
	if catalog := g.desc.Catalog(); catalog != "" {
		if err := g.eng.UseCatalog(ctx, catalog); err != nil {
			// Catalog absent or the catalog feature is disabled; fall
			// through with whatever catalog context is active.
			g.logger.Warn("catalog not found or catalog feature disabled",
				"catalog", catalog,
				"error", err,
			)
		}
	}
	names, err := g.eng.ListTables(ctx, g.desc.Database())
	if err != nil {
		g.logger.Warn("table lookup failed",
			"database", g.desc.Database(),
			"table", g.desc.Table(),
			"error", err,
		)
		metrics.ExistenceChecks.WithLabelValues("error").Inc()
		return false
	}
	for _, name := range names {
		if name == g.desc.Table() {
			metrics.ExistenceChecks.WithLabelValues("exists").Inc()
			return true
		}
	}
	metrics.ExistenceChecks.WithLabelValues("missing").Inc()
	return false
}
