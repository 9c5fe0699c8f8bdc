package config

import (
	"fmt"
	"strings"
)

// knownEngines is the set of valid engine types.
var knownEngines = map[string]bool{
	"duckdb": true, "postgres": true,
}

var (
	knownFormats    = map[string]bool{"delta": true, "parquet": true, "csv": true}
	knownWriteModes = map[string]bool{"overwrite": true, "append": true, "upsert": true}
	knownFrameTypes = map[string]bool{"spark": true, "pandas": true}
)

// Validate performs structural validation on the config. Descriptor-level
// naming rules are enforced again, and authoritatively, at dataset
// construction; this catches config-file mistakes early with field paths.
func (c Config) Validate() error {
	var errs []string

	if c.Engine.Type == "" {
		errs = append(errs, "engine.type is required")
	} else if !knownEngines[c.Engine.Type] {
		errs = append(errs, fmt.Sprintf("unknown engine type %q", c.Engine.Type))
	}
	if c.Engine.Type == "postgres" && c.Engine.URL == "" {
		errs = append(errs, "engine.url is required for the postgres engine")
	}

	for name, ds := range c.Datasets {
		path := func(field string) string { return fmt.Sprintf("datasets.%s.%s", name, field) }

		if tbl, _ := ds["table"].(string); tbl == "" {
			errs = append(errs, path("table")+" is required")
		}
		if f, ok := ds["format"].(string); ok && f != "" && !knownFormats[f] {
			errs = append(errs, fmt.Sprintf("%s: unknown format %q", path("format"), f))
		}
		if m, ok := ds["write_mode"].(string); ok && m != "" && !knownWriteModes[m] {
			errs = append(errs, fmt.Sprintf("%s: unknown write mode %q", path("write_mode"), m))
		}
		if t, ok := ds["dataframe_type"].(string); ok && t != "" && !knownFrameTypes[t] {
			errs = append(errs, fmt.Sprintf("%s: unknown dataframe type %q", path("dataframe_type"), t))
		}
		if m, _ := ds["write_mode"].(string); m == "upsert" {
			if pk, ok := ds["primary_key"]; !ok || pk == nil {
				errs = append(errs, path("primary_key")+" is required for upsert write mode")
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation: %s", strings.Join(errs, "; "))
	}
	return nil
}
