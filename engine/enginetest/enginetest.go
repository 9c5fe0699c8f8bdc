// Package enginetest provides a scripted in-memory engine for unit tests.
// It records every call and lets tests inject failures per operation.
package enginetest

import (
	"context"
	"sort"
	"sync"

	"github.com/datalift/tablegate/dataframe"
	"github.com/datalift/tablegate/engine"
)

// SaveCall records one SaveTable invocation.
type SaveCall struct {
	Location string
	Columns  []string
	NumRows  int64
	Request  engine.WriteRequest
}

// Fake implements engine.Engine with scripted responses.
type Fake struct {
	mu sync.Mutex

	// Tables maps database name to table names, consulted by ListTables.
	Tables map[string][]string
	// Frames maps qualified locations to the frames ReadTable returns.
	Frames map[string]*dataframe.Frame
	// Results maps query strings to RunQuery results.
	Results map[string]*dataframe.Local

	// Injected failures.
	UseCatalogErr error
	ListTablesErr error
	ReadErr       error
	SaveErr       error
	QueryErr      error

	// Recorded calls.
	UsedCatalogs  []string
	ListedDBs     []string
	Queries       []string
	ReadLocations []string
	Saves         []SaveCall
	Closed        bool
}

// New returns an empty fake engine.
func New() *Fake {
	return &Fake{
		Tables:  make(map[string][]string),
		Frames:  make(map[string]*dataframe.Frame),
		Results: make(map[string]*dataframe.Local),
	}
}

func (f *Fake) RunQuery(_ context.Context, query string) (*dataframe.Local, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Queries = append(f.Queries, query)
	if f.QueryErr != nil {
		return nil, f.QueryErr
	}
	if res, ok := f.Results[query]; ok {
		return res, nil
	}
	empty, _ := dataframe.NewLocal(nil, nil)
	return empty, nil
}

func (f *Fake) ReadTable(_ context.Context, location string) (*dataframe.Frame, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ReadLocations = append(f.ReadLocations, location)
	if f.ReadErr != nil {
		return nil, f.ReadErr
	}
	frame, ok := f.Frames[location]
	if !ok {
		return nil, &NotFoundError{Location: location}
	}
	return frame, nil
}

func (f *Fake) SaveTable(_ context.Context, location string, frame *dataframe.Frame, req engine.WriteRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Saves = append(f.Saves, SaveCall{
		Location: location,
		Columns:  frame.Columns(),
		NumRows:  frame.NumRows(),
		Request:  req,
	})
	if f.SaveErr != nil {
		return f.SaveErr
	}
	f.Frames[location] = frame
	return nil
}

func (f *Fake) UseCatalog(_ context.Context, catalog string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.UsedCatalogs = append(f.UsedCatalogs, catalog)
	return f.UseCatalogErr
}

func (f *Fake) ListTables(_ context.Context, database string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListedDBs = append(f.ListedDBs, database)
	if f.ListTablesErr != nil {
		return nil, f.ListTablesErr
	}
	names, ok := f.Tables[database]
	if !ok {
		return nil, &NotFoundError{Location: database}
	}
	out := append([]string(nil), names...)
	sort.Strings(out)
	return out, nil
}

func (f *Fake) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = true
	return nil
}

// NotFoundError simulates the engine's analysis error for a missing table or
// database.
type NotFoundError struct {
	Location string
}

func (e *NotFoundError) Error() string {
	return "not found: " + e.Location
}
