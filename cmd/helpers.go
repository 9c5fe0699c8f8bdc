package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/viper"

	"github.com/datalift/tablegate"
	"github.com/datalift/tablegate/dataset"
	"github.com/datalift/tablegate/engine"
	"github.com/datalift/tablegate/engine/duckdb"
	"github.com/datalift/tablegate/engine/postgres"
	"github.com/datalift/tablegate/internal/config"
)

func loadConfig() (config.Config, error) {
	var cfg config.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return config.Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func openEngine(ctx context.Context, cfg config.Config) (engine.Engine, error) {
	switch cfg.Engine.Type {
	case "duckdb":
		return duckdb.Open(cfg.Engine.Path, slog.Default())
	case "postgres":
		return postgres.Open(ctx, cfg.Engine.URL, slog.Default())
	default:
		return nil, fmt.Errorf("unknown engine type %q", cfg.Engine.Type)
	}
}

func newCatalog(cfg config.Config, eng engine.Engine) *tablegate.Catalog {
	return tablegate.NewCatalog(eng, cfg.Datasets, tablegate.WithLogger(slog.Default()))
}

func buildDataset(cfg config.Config, name string, eng engine.Engine) (dataset.Dataset, error) {
	return newCatalog(cfg, eng).Dataset(name)
}

func datasetNames(cfg config.Config) []string {
	return newCatalog(cfg, nil).Names()
}
