// FILE: lixenwraith/konf/schemafile.go
package konf

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// SchemaFile is the on-disk form of a Registry.
//
//	env_prefix: test
//	variables:
//	  - name: level
//	    kind: integer
//	    min: 0
//	    max: 99
type SchemaFile struct {
	EnvPrefix        string           `yaml:"env_prefix" toml:"env_prefix" json:"env_prefix"`
	IgnoreUnknownEnv bool             `yaml:"ignore_unknown_env" toml:"ignore_unknown_env" json:"ignore_unknown_env"`
	Variables        []SchemaVariable `yaml:"variables" toml:"variables" json:"variables"`
}

// SchemaVariable declares one variable. Min and Max form a range and cannot
// be combined with Allowed.
type SchemaVariable struct {
	Name        string   `yaml:"name" toml:"name" json:"name"`
	Kind        Kind     `yaml:"kind" toml:"kind" json:"kind"`
	Default     any      `yaml:"default" toml:"default" json:"default"`
	Required    bool     `yaml:"required" toml:"required" json:"required"`
	Description string   `yaml:"description" toml:"description" json:"description"`
	Allowed     []any    `yaml:"allowed" toml:"allowed" json:"allowed"`
	Min         any      `yaml:"min" toml:"min" json:"min"`
	Max         any      `yaml:"max" toml:"max" json:"max"`
	Validate    string   `yaml:"validate" toml:"validate" json:"validate"`
	Separator   string   `yaml:"separator" toml:"separator" json:"separator"`
	Items       Kind     `yaml:"items" toml:"items" json:"items"`
	TrueValues  []string `yaml:"true_values" toml:"true_values" json:"true_values"`
	FalseValues []string `yaml:"false_values" toml:"false_values" json:"false_values"`
}

// LoadRegistry reads a schema file, choosing the format by extension or content.
func LoadRegistry(path string, opts ...RegistryOption) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to read schema file '%s': %w", path, err)
	}

	format := detectFileFormat(path)
	if format == "" {
		format = detectFormatFromContent(data)
	}

	reg, err := ParseRegistry(data, format, opts...)
	if err != nil {
		return nil, fmt.Errorf("schema file '%s': %w", path, err)
	}
	return reg, nil
}

// ParseRegistry builds a Registry from a schema document in the given format.
// opts are applied after the document's own settings.
func ParseRegistry(data []byte, format string, opts ...RegistryOption) (*Registry, error) {
	var file SchemaFile
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("invalid YAML schema: %w", err)
		}
	case FormatTOML:
		if _, err := toml.Decode(string(data), &file); err != nil {
			return nil, fmt.Errorf("invalid TOML schema: %w", err)
		}
	case FormatJSON:
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber()
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&file); err != nil {
			return nil, fmt.Errorf("invalid JSON schema: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported schema format %q", format)
	}

	return file.Registry(opts...)
}

// Registry declares every variable of the schema in a new Registry.
func (f *SchemaFile) Registry(opts ...RegistryOption) (*Registry, error) {
	base := []RegistryOption{
		WithEnvPrefix(f.EnvPrefix),
		WithIgnoreUnknownEnv(f.IgnoreUnknownEnv),
	}
	reg := NewRegistry(append(base, opts...)...)

	for i, sv := range f.Variables {
		varOpts, err := sv.options()
		if err != nil {
			return nil, fmt.Errorf("variable #%d (%s): %w", i+1, sv.Name, err)
		}
		if err := reg.Register(sv.Name, sv.Kind, varOpts...); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

func (sv SchemaVariable) options() ([]VarOption, error) {
	if sv.Kind == 0 {
		return nil, fmt.Errorf("%w: missing kind", ErrInvalidDeclaration)
	}

	opts := []VarOption{
		Default(normalizeValue(sv.Default)),
		Describe(sv.Description),
		ValidateTag(sv.Validate),
		WithOptions(Options{
			Separator:   sv.Separator,
			Items:       sv.Items,
			TrueValues:  sv.TrueValues,
			FalseValues: sv.FalseValues,
		}),
	}
	if sv.Required {
		opts = append(opts, Required())
	}

	hasRange := sv.Min != nil || sv.Max != nil
	switch {
	case hasRange && len(sv.Allowed) > 0:
		return nil, fmt.Errorf("%w: allowed cannot be combined with min/max", ErrInvalidDeclaration)
	case hasRange:
		if sv.Min == nil || sv.Max == nil {
			return nil, fmt.Errorf("%w: range needs both min and max", ErrInvalidDeclaration)
		}
		opts = append(opts, AllowedRange(normalizeValue(sv.Min), normalizeValue(sv.Max)))
	case len(sv.Allowed) > 0:
		allowed := make([]any, len(sv.Allowed))
		for i, v := range sv.Allowed {
			allowed[i] = normalizeValue(v)
		}
		opts = append(opts, AllowedValues(allowed...))
	}
	return opts, nil
}
