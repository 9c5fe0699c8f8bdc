// Package duckdb implements the engine contract on an embedded DuckDB
// session. It is the default engine for local development and tests.
package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	_ "github.com/marcboeker/go-duckdb/v2"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/datalift/tablegate/dataframe"
	"github.com/datalift/tablegate/engine"
	"github.com/datalift/tablegate/table"
)

// Engine is a DuckDB-backed compute session.
type Engine struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens a DuckDB session. An empty path opens an in-memory database.
func Open(path string, logger *slog.Logger) (*Engine, error) {
	if path == "" {
		path = ":memory:"
	}
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	return &Engine{db: db, logger: logger.With("engine", "duckdb")}, nil
}

// Close closes the session.
func (e *Engine) Close() error { return e.db.Close() }

// RunQuery executes a query and returns its result set.
func (e *Engine) RunQuery(ctx context.Context, query string) (*dataframe.Local, error) {
	rows, err := e.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("duckdb query: %w", err)
	}
	defer func() { _ = rows.Close() }()
	return scanRows(rows)
}

// ReadTable reads the table at the qualified location into a native frame.
func (e *Engine) ReadTable(ctx context.Context, location string) (*dataframe.Frame, error) {
	local, err := e.RunQuery(ctx, "SELECT * FROM "+engine.QuoteANSI(location))
	if err != nil {
		return nil, err
	}
	return dataframe.FromLocalInferred(local)
}

// UseCatalog switches the session's active catalog (an attached database).
func (e *Engine) UseCatalog(ctx context.Context, catalog string) error {
	if _, err := e.db.ExecContext(ctx, fmt.Sprintf("USE %q", catalog)); err != nil {
		return fmt.Errorf("use catalog %q: %w", catalog, err)
	}
	return nil
}

// ListTables returns the table names in the given database (DuckDB schema).
func (e *Engine) ListTables(ctx context.Context, database string) ([]string, error) {
	rows, err := e.db.QueryContext(ctx,
		"SELECT table_name FROM information_schema.tables WHERE table_schema = ?", database)
	if err != nil {
		return nil, fmt.Errorf("list tables in %q: %w", database, err)
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// SaveTable writes the frame as the table at the qualified location. DuckDB
// stores tables natively, so the requested storage format only affects
// external materialization and is recorded at debug level.
func (e *Engine) SaveTable(ctx context.Context, location string, frame *dataframe.Frame, req engine.WriteRequest) error {
	loc := engine.QuoteANSI(location)
	e.logger.Debug("saving table",
		"location", location,
		"mode", string(req.Mode),
		"format", string(req.Format),
		"rows", frame.NumRows(),
	)

	if err := e.ensureDatabase(ctx, location); err != nil {
		return err
	}

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	ddl, err := columnDefs(frame.Schema())
	if err != nil {
		return err
	}

	switch req.Mode {
	case table.ModeOverwrite:
		if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+loc); err != nil {
			return fmt.Errorf("drop table: %w", err)
		}
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("CREATE TABLE %s (%s)", loc, ddl)); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	case table.ModeAppend, table.ModeUpsert:
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", loc, ddl)); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	default:
		return fmt.Errorf("unsupported write mode %q", req.Mode)
	}

	local := frame.ToLocal()
	if req.Mode == table.ModeUpsert {
		if err := deleteMatching(ctx, tx, loc, local, req.PrimaryKey); err != nil {
			return err
		}
	}
	if err := insertRows(ctx, tx, loc, local); err != nil {
		return err
	}
	return tx.Commit()
}

// ensureDatabase creates the schema component of the location if missing.
func (e *Engine) ensureDatabase(ctx context.Context, location string) error {
	parts := engine.SplitLocation(location)
	if len(parts) < 2 {
		return fmt.Errorf("location %q is not qualified", location)
	}
	// database is the second-to-last part; a leading catalog is the
	// session's concern and not created here.
	db := parts[len(parts)-2]
	if _, err := e.db.ExecContext(ctx, fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %q", db)); err != nil {
		return fmt.Errorf("create schema %q: %w", db, err)
	}
	return nil
}

func insertRows(ctx context.Context, tx *sql.Tx, loc string, local *dataframe.Local) error {
	columns := local.Columns()
	if len(columns) == 0 || local.NumRows() == 0 {
		return nil
	}
	quoted := make([]string, len(columns))
	holes := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = fmt.Sprintf("%q", c)
		holes[i] = "?"
	}
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		loc, strings.Join(quoted, ", "), strings.Join(holes, ", ")))
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := 0; i < local.NumRows(); i++ {
		if _, err := stmt.ExecContext(ctx, local.Row(i)...); err != nil {
			return fmt.Errorf("insert row %d: %w", i, err)
		}
	}
	return nil
}

// deleteMatching removes rows whose primary key matches an incoming row, so
// the subsequent insert acts as a merge.
func deleteMatching(ctx context.Context, tx *sql.Tx, loc string, local *dataframe.Local, primaryKey []string) error {
	if len(primaryKey) == 0 {
		return fmt.Errorf("upsert requires primary key columns")
	}
	idx := make([]int, len(primaryKey))
	conds := make([]string, len(primaryKey))
	for i, k := range primaryKey {
		j := local.ColumnIndex(k)
		if j < 0 {
			return fmt.Errorf("primary key column %q not in dataframe", k)
		}
		idx[i] = j
		conds[i] = fmt.Sprintf("%q = ?", k)
	}
	stmt, err := tx.PrepareContext(ctx,
		fmt.Sprintf("DELETE FROM %s WHERE %s", loc, strings.Join(conds, " AND ")))
	if err != nil {
		return fmt.Errorf("prepare delete: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := 0; i < local.NumRows(); i++ {
		keys := make([]any, len(idx))
		for ki, j := range idx {
			keys[ki] = local.At(i, j)
		}
		if _, err := stmt.ExecContext(ctx, keys...); err != nil {
			return fmt.Errorf("delete matching row %d: %w", i, err)
		}
	}
	return nil
}

func columnDefs(as *arrow.Schema) (string, error) {
	defs := make([]string, len(as.Fields()))
	for i, f := range as.Fields() {
		t, err := sqlType(f.Type)
		if err != nil {
			return "", fmt.Errorf("column %q: %w", f.Name, err)
		}
		defs[i] = fmt.Sprintf("%q %s", f.Name, t)
	}
	return strings.Join(defs, ", "), nil
}

func sqlType(dt arrow.DataType) (string, error) {
	switch dt.ID() {
	case arrow.INT8:
		return "TINYINT", nil
	case arrow.INT16:
		return "SMALLINT", nil
	case arrow.INT32:
		return "INTEGER", nil
	case arrow.INT64:
		return "BIGINT", nil
	case arrow.FLOAT32:
		return "FLOAT", nil
	case arrow.FLOAT64:
		return "DOUBLE", nil
	case arrow.BOOL:
		return "BOOLEAN", nil
	case arrow.STRING:
		return "VARCHAR", nil
	case arrow.DATE32:
		return "DATE", nil
	case arrow.TIMESTAMP:
		return "TIMESTAMP", nil
	case arrow.BINARY:
		return "BLOB", nil
	default:
		return "", fmt.Errorf("unsupported arrow type %s", dt)
	}
}

func scanRows(rows *sql.Rows) (*dataframe.Local, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("result columns: %w", err)
	}
	var out [][]any
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		out = append(out, values)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return dataframe.NewLocal(columns, out)
}
