// Package fileformat picks a TOML, YAML or JSON codec from a file extension.
package fileformat

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"

	"github.com/diillson/weekly-usage-report/internal/shared/types"
)

// Format is a structured file format.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
	TOML Format = "toml"
)

// FromPath infers the format from the extension of location. Works for plain
// paths and s3:// URIs.
func FromPath(location string) (Format, error) {
	ext := strings.ToLower(path.Ext(location))
	switch ext {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	default:
		return "", fmt.Errorf("%w: %q", types.ErrUnsupportedFormat, ext)
	}
}

// Unmarshal decodes data in format f into v.
func Unmarshal(f Format, data []byte, v interface{}) error {
	switch f {
	case JSON:
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("error parsing JSON file: %w", err)
		}
	case YAML:
		if err := yaml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("error parsing YAML file: %w", err)
		}
	case TOML:
		if err := toml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("error parsing TOML file: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", types.ErrUnsupportedFormat, f)
	}
	return nil
}

// Marshal encodes v in format f. JSON is indented with two spaces.
func Marshal(f Format, v interface{}) ([]byte, error) {
	switch f {
	case JSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return nil, fmt.Errorf("error encoding JSON data: %w", err)
		}
		return buf.Bytes(), nil
	case YAML:
		out, err := yaml.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("error encoding YAML data: %w", err)
		}
		return out, nil
	case TOML:
		out, err := toml.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("error encoding TOML data: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrUnsupportedFormat, f)
	}
}
