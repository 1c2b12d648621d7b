package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/hcl"
	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

// Format is a configuration file syntax.
type Format string

const (
	// FormatHCL is HCL, which is also a superset of JSON.
	FormatHCL Format = "hcl"

	// FormatTOML is TOML.
	FormatTOML Format = "toml"

	// FormatYAML is YAML.
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from the file extension. Unknown extensions
// are read as HCL.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatHCL
	}
}

func (f Format) decode(s string) (map[string]interface{}, error) {
	var parsed map[string]interface{}

	switch f {
	case FormatHCL, "":
		if err := hcl.Decode(&parsed, s); err != nil {
			return nil, errors.Wrap(err, "parse error")
		}
	case FormatTOML:
		if _, err := toml.Decode(s, &parsed); err != nil {
			return nil, errors.Wrap(err, "parse error")
		}
	case FormatYAML:
		var raw map[interface{}]interface{}
		if err := yaml.Unmarshal([]byte(s), &raw); err != nil {
			return nil, errors.Wrap(err, "parse error")
		}
		m, ok := normalize(raw).(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("parse error: unexpected document")
		}
		parsed = m
	default:
		return nil, fmt.Errorf("unknown config format %q", string(f))
	}

	if parsed == nil {
		parsed = make(map[string]interface{})
	}
	return parsed, nil
}

// normalize rewrites the map[interface{}]interface{} values yaml produces
// into map[string]interface{} so they decode like hcl and toml maps.
func normalize(v interface{}) interface{} {
	switch typed := v.(type) {
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(typed))
		for k, v := range typed {
			m[fmt.Sprintf("%v", k)] = normalize(v)
		}
		return m
	case []interface{}:
		for i := range typed {
			typed[i] = normalize(typed[i])
		}
		return typed
	default:
		return v
	}
}
