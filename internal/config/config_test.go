package config_test

import (
	"strings"
	"testing"

	"github.com/datalift/tablegate/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Engine: config.EngineConfig{Type: "duckdb"},
		Datasets: map[string]map[string]any{
			"events": {"table": "events", "format": "delta"},
		},
	}
}

func TestValidate_OK(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantSub string
	}{
		{
			name:    "missing engine type",
			mutate:  func(c *config.Config) { c.Engine.Type = "" },
			wantSub: "engine.type is required",
		},
		{
			name:    "unknown engine type",
			mutate:  func(c *config.Config) { c.Engine.Type = "spark" },
			wantSub: `unknown engine type "spark"`,
		},
		{
			name:    "postgres without url",
			mutate:  func(c *config.Config) { c.Engine = config.EngineConfig{Type: "postgres"} },
			wantSub: "engine.url is required",
		},
		{
			name:    "dataset without table",
			mutate:  func(c *config.Config) { c.Datasets["events"] = map[string]any{} },
			wantSub: "datasets.events.table is required",
		},
		{
			name:    "unknown format",
			mutate:  func(c *config.Config) { c.Datasets["events"]["format"] = "orc" },
			wantSub: `unknown format "orc"`,
		},
		{
			name:    "unknown write mode",
			mutate:  func(c *config.Config) { c.Datasets["events"]["write_mode"] = "merge" },
			wantSub: `unknown write mode "merge"`,
		},
		{
			name:    "unknown dataframe type",
			mutate:  func(c *config.Config) { c.Datasets["events"]["dataframe_type"] = "polars" },
			wantSub: `unknown dataframe type "polars"`,
		},
		{
			name:    "upsert without primary key",
			mutate:  func(c *config.Config) { c.Datasets["events"]["write_mode"] = "upsert" },
			wantSub: "primary_key is required for upsert",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate should fail")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error = %v, want substring %q", err, tt.wantSub)
			}
		})
	}
}

func TestValidate_AccumulatesErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Engine.Type = ""
	cfg.Datasets["events"]["format"] = "orc"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate should fail")
	}
	msg := err.Error()
	if !strings.Contains(msg, "engine.type") || !strings.Contains(msg, "orc") {
		t.Errorf("error = %v, want both violations reported", err)
	}
}
