package tabledataset

import (
	"encoding/json"
	"fmt"
)

// Reserved option keys; anything else in a config map lands in Options.Extra.
var knownKeys = map[string]bool{
	"table": true, "catalog": true, "database": true, "format": true,
	"write_mode": true, "read_only": true, "dataframe_type": true,
	"schema": true, "primary_key": true, "partition_columns": true,
	"owner_group": true, "metadata": true, "version": true, "type": true,
}

// OptionsFromConfig decodes a raw configuration map (as produced by the
// config file) into Options. Unknown keys are kept verbatim in Extra.
func OptionsFromConfig(raw map[string]any) (Options, error) {
	var opts Options
	var err error

	if opts.Table, err = stringKey(raw, "table"); err != nil {
		return Options{}, err
	}
	if opts.Catalog, err = stringKey(raw, "catalog"); err != nil {
		return Options{}, err
	}
	if opts.Database, err = stringKey(raw, "database"); err != nil {
		return Options{}, err
	}
	if opts.Format, err = stringKey(raw, "format"); err != nil {
		return Options{}, err
	}
	if opts.WriteMode, err = stringKey(raw, "write_mode"); err != nil {
		return Options{}, err
	}
	if opts.FrameType, err = stringKey(raw, "dataframe_type"); err != nil {
		return Options{}, err
	}
	if opts.OwnerGroup, err = stringKey(raw, "owner_group"); err != nil {
		return Options{}, err
	}
	if opts.Version, err = stringKey(raw, "version"); err != nil {
		return Options{}, err
	}
	if ro, ok := raw["read_only"]; ok {
		b, ok := ro.(bool)
		if !ok {
			return Options{}, fmt.Errorf("option read_only: expected bool, got %T", ro)
		}
		opts.ReadOnly = b
	}
	if opts.PrimaryKey, err = stringsKey(raw, "primary_key"); err != nil {
		return Options{}, err
	}
	if opts.PartitionColumns, err = stringsKey(raw, "partition_columns"); err != nil {
		return Options{}, err
	}
	if md, ok := raw["metadata"]; ok {
		m, ok := md.(map[string]any)
		if !ok {
			return Options{}, fmt.Errorf("option metadata: expected map, got %T", md)
		}
		opts.Metadata = m
	}
	if sc, ok := raw["schema"]; ok && sc != nil {
		// The config file carries the schema as a nested document; the
		// descriptor wants the JSON bytes.
		encoded, err := json.Marshal(sc)
		if err != nil {
			return Options{}, fmt.Errorf("option schema: %w", err)
		}
		opts.Schema = encoded
	}

	for k, v := range raw {
		if knownKeys[k] {
			continue
		}
		if opts.Extra == nil {
			opts.Extra = make(map[string]any)
		}
		opts.Extra[k] = v
	}
	return opts, nil
}

func stringKey(raw map[string]any, key string) (string, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("option %s: expected string, got %T", key, v)
	}
	return s, nil
}

func stringsKey(raw map[string]any, key string) ([]string, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return nil, nil
	}
	switch vv := v.(type) {
	case string:
		return []string{vv}, nil
	case []string:
		return append([]string(nil), vv...), nil
	case []any:
		out := make([]string, len(vv))
		for i, item := range vv {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("option %s[%d]: expected string, got %T", key, i, item)
			}
			out[i] = s
		}
		return out, nil
	default:
		return nil, fmt.Errorf("option %s: expected string list, got %T", key, v)
	}
}
