package postgres

import (
	"context"
	"strings"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/datalift/tablegate/dataframe"
)

func TestRelation(t *testing.T) {
	e := &Engine{}
	tests := []struct {
		location string
		want     string
	}{
		// A leading catalog part is dropped; a session is bound to one database.
		{"`cat`.`analytics`.`events`", `"analytics"."events"`},
		{"`analytics`.`events`", `"analytics"."events"`},
		{"`events`", `"events"`},
	}
	for _, tt := range tests {
		if got := e.relation(tt.location); got != tt.want {
			t.Errorf("relation(%q) = %s, want %s", tt.location, got, tt.want)
		}
	}
}

func TestUseCatalog_AlwaysFails(t *testing.T) {
	e := &Engine{}
	if err := e.UseCatalog(context.Background(), "dev"); err == nil {
		t.Error("UseCatalog should always fail on a postgres session")
	}
}

func TestColumnDefs(t *testing.T) {
	l, err := dataframe.NewLocal(
		[]string{"id", "name", "score", "ok"},
		[][]any{{int64(1), "alice", 1.5, true}},
	)
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	frame, err := dataframe.FromLocalInferred(l)
	if err != nil {
		t.Fatalf("FromLocalInferred: %v", err)
	}
	defer frame.Release()

	ddl, err := columnDefs(frame)
	if err != nil {
		t.Fatalf("columnDefs: %v", err)
	}
	want := `"id" BIGINT, "name" TEXT, "score" DOUBLE PRECISION, "ok" BOOLEAN`
	if ddl != want {
		t.Errorf("columnDefs = %s, want %s", ddl, want)
	}
}

func TestSQLType(t *testing.T) {
	tests := []struct {
		id   arrow.Type
		want string
	}{
		{arrow.INT8, "SMALLINT"},
		{arrow.INT16, "SMALLINT"},
		{arrow.INT32, "INTEGER"},
		{arrow.INT64, "BIGINT"},
		{arrow.FLOAT32, "REAL"},
		{arrow.FLOAT64, "DOUBLE PRECISION"},
		{arrow.BOOL, "BOOLEAN"},
		{arrow.STRING, "TEXT"},
		{arrow.DATE32, "DATE"},
		{arrow.TIMESTAMP, "TIMESTAMPTZ"},
		{arrow.BINARY, "BYTEA"},
	}
	for _, tt := range tests {
		got, err := sqlType(tt.id)
		if err != nil {
			t.Errorf("sqlType(%s): %v", tt.id, err)
			continue
		}
		if got != tt.want {
			t.Errorf("sqlType(%s) = %s, want %s", tt.id, got, tt.want)
		}
	}
	if _, err := sqlType(arrow.DURATION); err == nil {
		t.Error("sqlType should fail for an unmapped arrow type")
	}
}

func TestRelation_QuotesEmbeddedQuote(t *testing.T) {
	e := &Engine{}
	got := e.relation("`analytics`.`eve\"nts`")
	if !strings.Contains(got, `"eve""nts"`) {
		t.Errorf("relation = %s, want doubled embedded quote", got)
	}
}
