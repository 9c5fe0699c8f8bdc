// Package config holds the CLI configuration: one engine session plus any
// number of named dataset definitions.
package config

type Config struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
	ServeAddr string `mapstructure:"serve_addr"`

	Engine   EngineConfig              `mapstructure:"engine"`
	Datasets map[string]map[string]any `mapstructure:"datasets"`
}

type EngineConfig struct {
	// Type selects the engine implementation: "duckdb" or "postgres".
	Type string `mapstructure:"type"`
	// Path is the duckdb database file; empty means in-memory.
	Path string `mapstructure:"path"`
	// URL is the postgres connection string.
	URL string `mapstructure:"url"`
}
