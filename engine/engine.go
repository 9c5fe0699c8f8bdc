// Package engine defines the compute engine contract table datasets run
// against. An engine owns one session: query execution, table reads, table
// writes, and the session's active catalog. Implementations live in the
// subpackages (duckdb, postgres); tests use enginetest.
package engine

import (
	"context"
	"strings"

	"github.com/datalift/tablegate/dataframe"
	"github.com/datalift/tablegate/table"
)

// WriteRequest carries the write policy for SaveTable.
type WriteRequest struct {
	Mode   table.WriteMode
	Format table.Format
	// Options are engine-specific write options, e.g. overwriteSchema=true
	// to replace the destination schema on overwrite.
	Options map[string]string
	// PrimaryKey names the merge key columns for upsert writes.
	PrimaryKey []string
}

// Engine is a handle on a compute session. Implementations are safe for use
// from a single goroutine at a time; the active catalog set by UseCatalog is
// session-wide, ambient state.
type Engine interface {
	// RunQuery executes a query and returns its result set.
	RunQuery(ctx context.Context, query string) (*dataframe.Local, error)

	// ReadTable reads the table at the backtick-quoted qualified location
	// into a native frame. The caller releases the frame.
	ReadTable(ctx context.Context, location string) (*dataframe.Frame, error)

	// SaveTable writes the frame as the table at the qualified location
	// according to the write request.
	SaveTable(ctx context.Context, location string, frame *dataframe.Frame, req WriteRequest) error

	// UseCatalog switches the session's active catalog.
	UseCatalog(ctx context.Context, catalog string) error

	// ListTables returns the names of the tables in the given database.
	ListTables(ctx context.Context, database string) ([]string, error)

	// Close releases the session.
	Close() error
}

// SplitLocation breaks a backtick-quoted qualified location into its parts,
// e.g. "`c`.`d`.`t`" into ["c", "d", "t"].
func SplitLocation(location string) []string {
	raw := strings.Split(location, "`.`")
	parts := make([]string, 0, len(raw))
	for _, p := range raw {
		p = strings.Trim(p, "`")
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// QuoteANSI rewrites a backtick-quoted qualified location with ANSI double
// quotes for engines speaking standard SQL identifier quoting.
func QuoteANSI(location string) string {
	return strings.ReplaceAll(location, "`", `"`)
}
