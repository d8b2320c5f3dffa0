// FILE: lixenwraith/konf/loader.go
package konf

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// File formats understood by the loader.
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// LoadFile reads a TOML, YAML or JSON file and sets every entry it holds.
// The file is first rendered as a text/template with the functions:
//
//	env "NAME"            value of an environment variable
//	default "x" .Value    "x" when the piped value is empty
//
// When section is non-empty only that top-level table is applied, which
// lets one file carry e.g. development and production settings.
// Nested tables map to dot-separated variable names. Keys that match no
// declared variable are rejected.
func (c *Config) LoadFile(path, section string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	rendered, err := renderTemplate(filepath.Base(path), data)
	if err != nil {
		return fmt.Errorf("failed to render config file '%s': %w", path, err)
	}

	format := detectFileFormat(path)
	if format == "" {
		format = detectFormatFromContent(rendered)
	}

	doc, err := parseDocument(rendered, format)
	if err != nil {
		return fmt.Errorf("failed to parse config file '%s': %w", path, err)
	}

	if section != "" {
		raw, ok := doc[section]
		if !ok {
			return fmt.Errorf("%w: %q in '%s'", ErrSectionNotFound, section, path)
		}
		table, ok := asStringMap(raw)
		if !ok {
			return fmt.Errorf("%w: %q in '%s' is not a table", ErrSectionNotFound, section, path)
		}
		doc = table
	}

	c.logger.Debug("loading config file", "path", path, "format", format, "section", section)
	return c.apply(flattenMap(doc, ""), SourceFile)
}

// Load sets every entry of values, which may be flat ("db.host") or nested.
func (c *Config) Load(values map[string]any) error {
	return c.apply(flattenMap(values, ""), SourceFile)
}

// apply sets entries in sorted name order so the first failure is deterministic.
func (c *Config) apply(flat map[string]any, source Source) error {
	for _, name := range sortedKeys(flat) {
		if err := c.set(name, normalizeValue(flat[name]), source); err != nil {
			return err
		}
	}
	return nil
}

// normalizeValue unwraps parser-specific number types.
func normalizeValue(value any) any {
	switch v := value.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	case []any:
		items := make([]any, len(v))
		for i, item := range v {
			items[i] = normalizeValue(item)
		}
		return items
	}
	return value
}

func renderTemplate(name string, data []byte) ([]byte, error) {
	tmpl, err := template.New(name).Option("missingkey=zero").Funcs(template.FuncMap{
		"env": os.Getenv,
		"default": func(def string, value any) any {
			if value == nil {
				return def
			}
			if s, ok := value.(string); ok && s == "" {
				return def
			}
			return value
		},
	}).Parse(string(data))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, nil); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func parseDocument(data []byte, format string) (map[string]any, error) {
	doc := make(map[string]any)
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("invalid TOML: %w", err)
		}
	case FormatJSON:
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber() // Preserve integer precision
		if err := decoder.Decode(&doc); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unable to determine config format")
	}
	return doc, nil
}

func detectFileFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".tml":
		return FormatTOML
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return ""
	}
}

// detectFormatFromContent guesses the format of an extension-less file.
func detectFormatFromContent(data []byte) string {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return FormatYAML
	}

	if trimmed[0] == '{' && json.Valid(trimmed) {
		return FormatJSON
	}

	var sample map[string]any
	if toml.Unmarshal(trimmed, &sample) == nil {
		return FormatTOML
	}
	if yaml.Unmarshal(trimmed, &sample) == nil {
		return FormatYAML
	}
	return ""
}
