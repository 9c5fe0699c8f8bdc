// Package dataset defines the dataset contract table gateways plug into and
// a self-registering factory registry for dataset kinds.
package dataset

import "context"

// Dataset is the lifecycle contract a pipeline consumes: load, save,
// existence, and description. Load and Save block on the engine; Exists
// never fails, it reports false on any engine-level problem.
type Dataset interface {
	Load(ctx context.Context) (any, error)
	Save(ctx context.Context, data any) error
	Exists(ctx context.Context) bool
	Describe() map[string]any
}

// ExistsFunc resolves whether the dataset's backing storage is present.
type ExistsFunc func(ctx context.Context) bool

// Versioned is the base for datasets participating in the versioning
// contract. Table-backed datasets have no filepath: their location is always
// empty and existence is resolved through the registered exists function.
type Versioned struct {
	version  string
	existsFn ExistsFunc
}

// NewVersioned builds the versioned base with the given exists function.
func NewVersioned(version string, exists ExistsFunc) Versioned {
	return Versioned{version: version, existsFn: exists}
}

// Version returns the configured dataset version, empty if unversioned.
func (v Versioned) Version() string { return v.version }

// Exists runs the registered exists function; a base with no function
// reports false.
func (v Versioned) Exists(ctx context.Context) bool {
	if v.existsFn == nil {
		return false
	}
	return v.existsFn(ctx)
}
