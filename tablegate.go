// Package tablegate resolves named dataset definitions against a compute
// engine session. It is the primary entry point for using tablegate as a
// library: open an engine, hand NewCatalog the dataset definitions, and ask
// it for datasets by name.
package tablegate

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/datalift/tablegate/dataset"
	"github.com/datalift/tablegate/engine"
)

// DefaultKind is the dataset kind used when a definition carries no type.
const DefaultKind = "managed_table"

// Catalog holds one engine session and a set of named dataset definitions,
// building datasets on demand through the kind registry.
type Catalog struct {
	eng    engine.Engine
	logger *slog.Logger
	defs   map[string]map[string]any
	kind   string
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithLogger sets the logger handed to created datasets.
// If not set, slog.Default() is used.
func WithLogger(l *slog.Logger) Option {
	return func(c *Catalog) {
		c.logger = l
	}
}

// WithDefaultKind sets the dataset kind used for definitions without an
// explicit type.
func WithDefaultKind(kind string) Option {
	return func(c *Catalog) {
		c.kind = kind
	}
}

// NewCatalog creates a Catalog over the given engine session and dataset
// definitions. The catalog does not own the engine; the caller closes it.
func NewCatalog(eng engine.Engine, defs map[string]map[string]any, opts ...Option) *Catalog {
	c := &Catalog{
		eng:  eng,
		defs: defs,
		kind: DefaultKind,
	}
	for _, o := range opts {
		o(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Names returns the defined dataset names, sorted.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.defs))
	for name := range c.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dataset builds the named dataset from its definition. The definition's
// "type" key selects the kind; absent, the catalog's default kind applies.
func (c *Catalog) Dataset(name string) (dataset.Dataset, error) {
	raw, ok := c.defs[name]
	if !ok {
		return nil, fmt.Errorf("dataset %q is not defined", name)
	}
	kind, _ := raw["type"].(string)
	if kind == "" {
		kind = c.kind
	}
	ds, err := dataset.Create(kind, dataset.CreateContext{
		Engine:  c.eng,
		Logger:  c.logger,
		Options: raw,
	})
	if err != nil {
		return nil, fmt.Errorf("dataset %q: %w", name, err)
	}
	return ds, nil
}

// Copy loads the source dataset and saves its data into the destination.
// Both must be configured for the same dataframe representation.
func (c *Catalog) Copy(ctx context.Context, from, to string) error {
	src, err := c.Dataset(from)
	if err != nil {
		return err
	}
	dst, err := c.Dataset(to)
	if err != nil {
		return err
	}
	data, err := src.Load(ctx)
	if err != nil {
		return fmt.Errorf("load %q: %w", from, err)
	}
	if err := dst.Save(ctx, data); err != nil {
		return fmt.Errorf("save %q: %w", to, err)
	}
	return nil
}

// Engine returns the underlying engine session for direct queries.
func (c *Catalog) Engine() engine.Engine {
	return c.eng
}
