// File: lixenwraith/konf/io.go
package konf

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// nestedValues builds a nested map of resolved non-nil values, the shape
// LoadFile reads back.
func (c *Config) nestedValues() map[string]any {
	nested := make(map[string]any)
	for name, value := range c.Snapshot() {
		if value == nil {
			continue
		}
		if sym, ok := value.(Symbol); ok {
			value = string(sym)
		}
		setNestedValue(nested, name, value)
	}
	return nested
}

// Dump writes the resolved configuration to w in TOML format.
func (c *Config) Dump(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c.nestedValues())
}

// Save atomically writes the resolved configuration to path in TOML format.
func (c *Config) Save(path string) error {
	var buf bytes.Buffer
	if err := c.Dump(&buf); err != nil {
		return fmt.Errorf("failed to marshal config data to TOML: %w", err)
	}
	if err := atomicWriteFile(path, buf.Bytes()); err != nil {
		return err
	}
	c.logger.Debug("config saved", "path", path)
	return nil
}

// ExportEnv renders every explicitly set, non-nil value as an environment
// entry (PREFIX_NAME → encoded string) that New would read back unchanged.
func (c *Config) ExportEnv() (map[string]string, error) {
	prefix := c.registry.EffectivePrefix()
	exports := make(map[string]string)

	for _, v := range c.registry.Variables() {
		if !c.IsSet(v.name) {
			continue
		}
		value, err := c.Get(v.name)
		if err != nil {
			return nil, err
		}
		if value == nil {
			continue
		}
		encoded, err := Encode(v.kind, value, v.options)
		if err != nil {
			return nil, withVariable(err, v.name)
		}
		exports[v.EnvKey(prefix)] = encoded
	}
	return exports, nil
}

func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory '%s': %w", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	tempPath := tempFile.Name()
	defer os.Remove(tempPath) // Clean up on any error

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}
