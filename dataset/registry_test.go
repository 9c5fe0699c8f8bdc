package dataset_test

import (
	"context"
	"testing"

	"github.com/datalift/tablegate/dataset"
)

type nopDataset struct {
	dataset.Versioned
}

func (nopDataset) Load(context.Context) (any, error) { return nil, nil }
func (nopDataset) Save(context.Context, any) error   { return nil }
func (nopDataset) Describe() map[string]any          { return nil }

func TestRegisterAndCreate(t *testing.T) {
	dataset.Register(dataset.Entry{
		Name:        "registry_test_nop",
		Description: "does nothing",
		Create: func(ctx dataset.CreateContext) (dataset.Dataset, error) {
			return nopDataset{}, nil
		},
	})

	e, ok := dataset.Lookup("registry_test_nop")
	if !ok {
		t.Fatal("Lookup should find the registered kind")
	}
	if e.Description != "does nothing" {
		t.Errorf("Description = %q", e.Description)
	}

	ds, err := dataset.Create("registry_test_nop", dataset.CreateContext{})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if ds.Exists(context.Background()) {
		t.Error("a dataset with no exists function should report false")
	}
}

func TestCreate_UnknownKind(t *testing.T) {
	if _, err := dataset.Create("registry_test_missing", dataset.CreateContext{}); err == nil {
		t.Error("Create should fail for an unknown kind")
	}
}

func TestRegister_Duplicate(t *testing.T) {
	entry := dataset.Entry{
		Name:   "registry_test_dup",
		Create: func(dataset.CreateContext) (dataset.Dataset, error) { return nopDataset{}, nil },
	}
	dataset.Register(entry)
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	dataset.Register(entry)
}

func TestEntries_Sorted(t *testing.T) {
	entries := dataset.Entries()
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Name >= entries[i].Name {
			t.Errorf("entries out of order: %q before %q", entries[i-1].Name, entries[i].Name)
		}
	}
}
