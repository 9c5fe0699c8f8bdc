// Package tgerr defines the error taxonomy shared across tablegate.
// Construction problems surface as *ConfigurationError, misuse of a
// read-only dataset as *ReadOnlyError, and a write-mode dispatch miss as
// *UnsupportedWriteModeError. Engine errors are never wrapped here; they
// propagate as returned by the engine.
package tgerr

import (
	"errors"
	"fmt"
)

// ConfigKind identifies which construction rule a configuration error violated.
type ConfigKind string

const (
	InvalidFormat       ConfigKind = "invalid_format"
	InvalidTableName    ConfigKind = "invalid_table_name"
	InvalidDatabaseName ConfigKind = "invalid_database_name"
	InvalidCatalogName  ConfigKind = "invalid_catalog_name"
	InvalidWriteMode    ConfigKind = "invalid_write_mode"
	InvalidFrameType    ConfigKind = "invalid_dataframe_type"
	MissingPrimaryKey   ConfigKind = "missing_primary_key"
	SchemaDecode        ConfigKind = "schema_decode"
)

// ConfigurationError indicates that a descriptor or dataset was constructed
// with invalid configuration. It is always fatal: no partially constructed
// value is observable once it has been returned.
type ConfigurationError struct {
	Kind   ConfigKind
	Field  string
	Detail string
	Err    error
}

func (e *ConfigurationError) Error() string {
	msg := fmt.Sprintf("invalid configuration (%s): %s", e.Kind, e.Detail)
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// IsConfiguration reports whether err is a ConfigurationError of the given kind.
func IsConfiguration(err error, kind ConfigKind) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce) && ce.Kind == kind
}

// ReadOnlyError indicates a save attempt on a dataset configured without a
// write mode. Recoverable by the caller: reconstruct with a write mode set.
type ReadOnlyError struct {
	Table string
}

func (e *ReadOnlyError) Error() string {
	return fmt.Sprintf("dataset for table %q is read-only: set a write mode to enable save", e.Table)
}

// UnsupportedWriteModeError indicates that the configured write mode has no
// registered save handler. The write-mode enum is validated at construction,
// so hitting this means the validator's allowed set and the handler table
// have drifted apart.
type UnsupportedWriteModeError struct {
	Mode string
}

func (e *UnsupportedWriteModeError) Error() string {
	return fmt.Sprintf("no save handler for write mode %q", e.Mode)
}
