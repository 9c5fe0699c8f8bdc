package tgerr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/datalift/tablegate/tgerr"
)

func TestConfigurationError(t *testing.T) {
	err := &tgerr.ConfigurationError{
		Kind:   tgerr.InvalidTableName,
		Field:  "table",
		Detail: `table "a.b" does not conform to naming`,
	}

	var target *tgerr.ConfigurationError
	if !errors.As(err, &target) {
		t.Fatal("errors.As should match ConfigurationError")
	}
	if target.Kind != tgerr.InvalidTableName {
		t.Errorf("Kind = %s, want %s", target.Kind, tgerr.InvalidTableName)
	}

	wrapped := fmt.Errorf("build dataset: %w", err)
	if !errors.As(wrapped, &target) {
		t.Fatal("errors.As should match through wrapping")
	}
	if !tgerr.IsConfiguration(wrapped, tgerr.InvalidTableName) {
		t.Error("IsConfiguration should match through wrapping")
	}
	if tgerr.IsConfiguration(wrapped, tgerr.InvalidFormat) {
		t.Error("IsConfiguration should check the kind")
	}
}

func TestConfigurationError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("parse schema JSON: unexpected end of input")
	err := &tgerr.ConfigurationError{
		Kind:   tgerr.SchemaDecode,
		Field:  "schema",
		Detail: `table "events"`,
		Err:    cause,
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should match underlying cause via Unwrap")
	}
	if msg := err.Error(); msg == "" {
		t.Error("Error() should return non-empty string")
	}
}

func TestReadOnlyError(t *testing.T) {
	err := fmt.Errorf("save: %w", &tgerr.ReadOnlyError{Table: "events"})
	var target *tgerr.ReadOnlyError
	if !errors.As(err, &target) {
		t.Fatal("errors.As should match ReadOnlyError")
	}
	if target.Table != "events" {
		t.Errorf("Table = %q, want events", target.Table)
	}
}

func TestUnsupportedWriteModeError(t *testing.T) {
	err := &tgerr.UnsupportedWriteModeError{Mode: "merge"}
	var target *tgerr.UnsupportedWriteModeError
	if !errors.As(err, &target) {
		t.Fatal("errors.As should match UnsupportedWriteModeError")
	}
	if msg := err.Error(); msg == "" {
		t.Error("Error() should return non-empty string")
	}
}
