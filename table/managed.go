package table

import (
	"fmt"

	"github.com/datalift/tablegate/tgerr"
)

var managedWriteModes = []WriteMode{ModeOverwrite, ModeAppend, ModeUpsert}

// ManagedDescriptor is the upsert-capable descriptor tier. It adds the
// primary key the merge is keyed on; the base Descriptor deliberately has no
// primary key field and rejects the upsert mode.
type ManagedDescriptor struct {
	Descriptor
	primaryKey []string
}

// NewManaged builds and validates a ManagedDescriptor. The base validators
// run first, in the same order as New but with upsert in the allowed write
// modes, followed by the primary key check.
func NewManaged(p Params, primaryKey []string) (*ManagedDescriptor, error) {
	m := &ManagedDescriptor{
		Descriptor: *build(p),
		primaryKey: append([]string(nil), primaryKey...),
	}
	checks := append(m.Descriptor.checks(managedWriteModes), m.validatePrimaryKey)
	if err := runChecks(checks); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *ManagedDescriptor) validatePrimaryKey() error {
	if m.writeMode == ModeUpsert && len(m.primaryKey) == 0 {
		return &tgerr.ConfigurationError{
			Kind:   tgerr.MissingPrimaryKey,
			Field:  "primary_key",
			Detail: fmt.Sprintf("primary_key must be provided for write mode %q", ModeUpsert),
		}
	}
	return nil
}

// PrimaryKey returns a copy of the merge key columns.
func (m *ManagedDescriptor) PrimaryKey() []string {
	return append([]string(nil), m.primaryKey...)
}
