package dataset

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/datalift/tablegate/engine"
)

// CreateContext carries shared resources for dataset factories.
type CreateContext struct {
	Engine  engine.Engine
	Logger  *slog.Logger
	Options map[string]any
}

// Entry describes a registered dataset kind.
type Entry struct {
	Name        string
	Description string
	Create      func(ctx CreateContext) (Dataset, error)
}

var (
	regMu   sync.RWMutex
	entries = make(map[string]Entry)
)

// Register adds a dataset kind. Registering the same name twice panics:
// kinds register from init functions, so a duplicate is a programming error.
func Register(e Entry) {
	regMu.Lock()
	defer regMu.Unlock()
	if e.Name == "" {
		panic("dataset: Register with empty name")
	}
	if _, dup := entries[e.Name]; dup {
		panic(fmt.Sprintf("dataset: Register called twice for %q", e.Name))
	}
	entries[e.Name] = e
}

// Lookup returns the entry for a dataset kind.
func Lookup(name string) (Entry, bool) {
	regMu.RLock()
	defer regMu.RUnlock()
	e, ok := entries[name]
	return e, ok
}

// Entries returns all registered kinds sorted by name.
func Entries() []Entry {
	regMu.RLock()
	defer regMu.RUnlock()
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Create builds a dataset of the given kind.
func Create(name string, ctx CreateContext) (Dataset, error) {
	e, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown dataset kind %q", name)
	}
	return e.Create(ctx)
}
