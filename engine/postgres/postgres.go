// Package postgres implements the engine contract on a PostgreSQL session.
// The table-store mapping: a tablegate database is a PostgreSQL schema, and
// the catalog corresponds to the PostgreSQL database the session is already
// connected to. Cross-database catalog switching is not supported by
// PostgreSQL sessions, so UseCatalog always fails and existence checks fall
// through to the connected database.
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/datalift/tablegate/dataframe"
	"github.com/datalift/tablegate/engine"
	"github.com/datalift/tablegate/table"
)

// Engine is a PostgreSQL-backed compute session over a connection pool, so
// existence checks may run concurrently from one process.
type Engine struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// Open connects to the database at url.
func Open(ctx context.Context, url string, logger *slog.Logger) (*Engine, error) {
	if logger == nil {
		logger = slog.Default()
	}
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	return &Engine{pool: pool, logger: logger.With("engine", "postgres")}, nil
}

// Close closes the session.
func (e *Engine) Close() error {
	e.pool.Close()
	return nil
}

// RunQuery executes a query and returns its result set.
func (e *Engine) RunQuery(ctx context.Context, query string) (*dataframe.Local, error) {
	rows, err := e.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("postgres query: %w", err)
	}
	defer rows.Close()

	fds := rows.FieldDescriptions()
	columns := make([]string, len(fds))
	for i, fd := range fds {
		columns[i] = fd.Name
	}
	var out [][]any
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		out = append(out, values)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return dataframe.NewLocal(columns, out)
}

// ReadTable reads the table at the qualified location into a native frame.
// A leading catalog part is ignored; only schema and table apply here.
func (e *Engine) ReadTable(ctx context.Context, location string) (*dataframe.Frame, error) {
	local, err := e.RunQuery(ctx, "SELECT * FROM "+e.relation(location))
	if err != nil {
		return nil, err
	}
	return dataframe.FromLocalInferred(local)
}

// UseCatalog always fails: a PostgreSQL session is bound to one database.
func (e *Engine) UseCatalog(ctx context.Context, catalog string) error {
	return fmt.Errorf("catalog %q: cross-database catalog switching is not supported by postgres sessions", catalog)
}

// ListTables returns the table names in the given database (a PostgreSQL schema).
func (e *Engine) ListTables(ctx context.Context, database string) ([]string, error) {
	rows, err := e.pool.Query(ctx,
		"SELECT table_name FROM information_schema.tables WHERE table_schema = $1 AND table_type = 'BASE TABLE'",
		database)
	if err != nil {
		return nil, fmt.Errorf("list tables in %q: %w", database, err)
	}
	defer rows.Close()

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

// SaveTable writes the frame as the table at the qualified location. Tables
// are stored natively; the requested storage format is recorded at debug
// level only.
func (e *Engine) SaveTable(ctx context.Context, location string, frame *dataframe.Frame, req engine.WriteRequest) error {
	rel := e.relation(location)
	e.logger.Debug("saving table",
		"location", location,
		"mode", string(req.Mode),
		"format", string(req.Format),
		"rows", frame.NumRows(),
	)

	parts := engine.SplitLocation(location)
	if len(parts) < 2 {
		return fmt.Errorf("location %q is not qualified", location)
	}
	db := parts[len(parts)-2]

	tx, err := e.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", pgx.Identifier{db}.Sanitize())); err != nil {
		return fmt.Errorf("create schema %q: %w", db, err)
	}

	ddl, err := columnDefs(frame)
	if err != nil {
		return err
	}
	switch req.Mode {
	case table.ModeOverwrite:
		if _, err := tx.Exec(ctx, "DROP TABLE IF EXISTS "+rel); err != nil {
			return fmt.Errorf("drop table: %w", err)
		}
		if _, err := tx.Exec(ctx, fmt.Sprintf("CREATE TABLE %s (%s)", rel, ddl)); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	case table.ModeAppend, table.ModeUpsert:
		if _, err := tx.Exec(ctx, fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", rel, ddl)); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	default:
		return fmt.Errorf("unsupported write mode %q", req.Mode)
	}

	local := frame.ToLocal()
	if req.Mode == table.ModeUpsert {
		if err := deleteMatching(ctx, tx, rel, local, req.PrimaryKey); err != nil {
			return err
		}
	}
	if err := insertRows(ctx, tx, rel, local); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// relation renders the schema-qualified relation name from a location,
// dropping any leading catalog part.
func (e *Engine) relation(location string) string {
	parts := engine.SplitLocation(location)
	if len(parts) > 2 {
		parts = parts[len(parts)-2:]
	}
	quoted := make([]string, len(parts))
	for i, p := range parts {
		quoted[i] = pgx.Identifier{p}.Sanitize()
	}
	return strings.Join(quoted, ".")
}

func insertRows(ctx context.Context, tx pgx.Tx, rel string, local *dataframe.Local) error {
	columns := local.Columns()
	if len(columns) == 0 || local.NumRows() == 0 {
		return nil
	}
	quoted := make([]string, len(columns))
	holes := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = pgx.Identifier{c}.Sanitize()
		holes[i] = fmt.Sprintf("$%d", i+1)
	}
	insertSQL := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		rel, strings.Join(quoted, ", "), strings.Join(holes, ", "))
	for i := 0; i < local.NumRows(); i++ {
		if _, err := tx.Exec(ctx, insertSQL, local.Row(i)...); err != nil {
			return fmt.Errorf("insert row %d: %w", i, err)
		}
	}
	return nil
}

func deleteMatching(ctx context.Context, tx pgx.Tx, rel string, local *dataframe.Local, primaryKey []string) error {
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
		conds[i] = fmt.Sprintf("%s = $%d", pgx.Identifier{k}.Sanitize(), i+1)
	}
	deleteSQL := fmt.Sprintf("DELETE FROM %s WHERE %s", rel, strings.Join(conds, " AND "))
	for i := 0; i < local.NumRows(); i++ {
		keys := make([]any, len(idx))
		for ki, j := range idx {
			keys[ki] = local.At(i, j)
		}
		if _, err := tx.Exec(ctx, deleteSQL, keys...); err != nil {
			return fmt.Errorf("delete matching row %d: %w", i, err)
		}
	}
	return nil
}

func columnDefs(frame *dataframe.Frame) (string, error) {
	fields := frame.Schema().Fields()
	defs := make([]string, len(fields))
	for i, f := range fields {
		t, err := sqlType(f.Type.ID())
		if err != nil {
			return "", fmt.Errorf("column %q: %w", f.Name, err)
		}
		defs[i] = fmt.Sprintf("%s %s", pgx.Identifier{f.Name}.Sanitize(), t)
	}
	return strings.Join(defs, ", "), nil
}

func sqlType(id arrow.Type) (string, error) {
	switch id {
	case arrow.INT8, arrow.INT16:
		return "SMALLINT", nil
	case arrow.INT32:
		return "INTEGER", nil
	case arrow.INT64:
		return "BIGINT", nil
	case arrow.FLOAT32:
		return "REAL", nil
	case arrow.FLOAT64:
		return "DOUBLE PRECISION", nil
	case arrow.BOOL:
		return "BOOLEAN", nil
	case arrow.STRING:
		return "TEXT", nil
	case arrow.DATE32:
		return "DATE", nil
	case arrow.TIMESTAMP:
		return "TIMESTAMPTZ", nil
	case arrow.BINARY:
		return "BYTEA", nil
	default:
		return "", fmt.Errorf("unsupported arrow type id %d", id)
	}
}
