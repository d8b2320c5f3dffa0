// FILE: lixenwraith/konf/config.go
package konf

import (
	"errors"
	"log/slog"
	"os"
	"sync"
)

// Source represents where an explicitly set value came from
type Source string

const (
	// SourceDefault means no explicit value; Get returns the declared default
	SourceDefault Source = "default"
	// SourceEnv represents values resolved from environment variables
	SourceEnv Source = "env"
	// SourceFile represents values loaded from a configuration file or map
	SourceFile Source = "file"
	// SourceCLI represents values bound from command-line flags
	SourceCLI Source = "cli"
	// SourceSet represents values assigned through Set or Decode
	SourceSet Source = "set"
)

// configItem holds an explicitly set value. A present item with a nil value
// is an explicit null, distinct from an absent item.
type configItem struct {
	value  any
	source Source
}

// Config is one runtime bag of values bound to a Registry.
// Each call is atomic; sequences of calls need external coordination.
type Config struct {
	registry *Registry
	items    map[string]configItem
	logger   *slog.Logger
	mutex    sync.RWMutex
}

// New freezes reg and builds a Config resolved from the process environment.
func New(reg *Registry) (*Config, error) {
	return NewWithEnv(reg, ParseEnviron(os.Environ()))
}

// NewWithEnv freezes reg and builds a Config resolved from env.
func NewWithEnv(reg *Registry, env map[string]string) (*Config, error) {
	c := newConfig(reg)
	if err := c.loadEnv(env); err != nil {
		return nil, err
	}
	return c, nil
}

// newConfig freezes reg and returns an empty Config without env resolution.
func newConfig(reg *Registry) *Config {
	reg.freeze()
	return &Config{
		registry: reg,
		items:    make(map[string]configItem),
		logger:   reg.logger,
	}
}

// Registry returns the schema the config is bound to.
func (c *Config) Registry() *Registry {
	return c.registry
}

// Get returns the explicitly set value, else the declared default, else nil.
func (c *Config) Get(name string) (any, error) {
	v, err := c.registry.Variable(name)
	if err != nil {
		return nil, err
	}

	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if item, ok := c.items[name]; ok {
		return item.value, nil
	}
	return v.defaultVal, nil
}

// Set casts, checks and stores value for name. A nil value always succeeds
// and clears the variable; required variables are only enforced by Validate.
func (c *Config) Set(name string, value any) error {
	return c.set(name, value, SourceSet)
}

// Decode decodes a string-sourced value for name and stores it.
func (c *Config) Decode(name, raw string) error {
	return c.decode(name, raw, SourceSet)
}

func (c *Config) decode(name, raw string, source Source) error {
	v, err := c.registry.Variable(name)
	if err != nil {
		return err
	}
	value, err := v.Decode(raw)
	if err != nil {
		return withVariable(err, name)
	}
	return c.set(name, value, source)
}

func (c *Config) set(name string, value any, source Source) error {
	v, err := c.registry.Variable(name)
	if err != nil {
		return err
	}

	if value == nil {
		c.store(name, nil, source)
		return nil
	}

	cast, err := v.Cast(value)
	if err != nil {
		if isMismatch(err) {
			return newError(ErrCast, name, "invalid value %s for variable `%s`, expected %s", inspect(value), name, v.kind)
		}
		return withVariable(err, name)
	}

	if v.allowed != nil && !v.allowed.Contains(cast) {
		return newError(ErrNotAllowed, name, "invalid value %s for variable `%s`, allowed values are %s", inspect(value), name, v.allowed)
	}

	if !v.validator(cast) {
		return newError(ErrInvalid, name, "invalid value %s for variable `%s`", inspect(value), name)
	}

	c.store(name, cast, source)
	return nil
}

func (c *Config) store(name string, value any, source Source) {
	c.mutex.Lock()
	c.items[name] = configItem{value: value, source: source}
	c.mutex.Unlock()
}

// withVariable attaches the variable name to a ConfigError raised below Set.
func withVariable(err error, name string) error {
	var ce *ConfigError
	if errors.As(err, &ce) {
		copied := *ce
		copied.Variable = name
		return &copied
	}
	return err
}

// Validate fails on the first required variable, in declaration order,
// whose resolved value is nil.
func (c *Config) Validate() error {
	for _, v := range c.registry.Variables() {
		if !v.required {
			continue
		}
		value, err := c.Get(v.name)
		if err != nil {
			return err
		}
		if value == nil {
			return newError(ErrRequiredMissing, v.name, "required variable `%s` is not defined", v.name)
		}
	}
	return nil
}

// Reset returns name to the unset state so Get falls back to the default.
func (c *Config) Reset(name string) error {
	if _, err := c.registry.Variable(name); err != nil {
		return err
	}

	c.mutex.Lock()
	delete(c.items, name)
	c.mutex.Unlock()
	return nil
}

// IsSet reports whether name holds an explicit value, including an explicit nil.
func (c *Config) IsSet(name string) bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	_, ok := c.items[name]
	return ok
}

// Source reports where the current value of name came from.
func (c *Config) Source(name string) (Source, error) {
	if _, err := c.registry.Variable(name); err != nil {
		return "", err
	}

	c.mutex.RLock()
	defer c.mutex.RUnlock()
	if item, ok := c.items[name]; ok {
		return item.source, nil
	}
	return SourceDefault, nil
}

// Snapshot returns the resolved value of every declared variable.
func (c *Config) Snapshot() map[string]any {
	vars := c.registry.Variables()

	c.mutex.RLock()
	defer c.mutex.RUnlock()

	snapshot := make(map[string]any, len(vars))
	for _, v := range vars {
		if item, ok := c.items[v.name]; ok {
			snapshot[v.name] = item.value
		} else {
			snapshot[v.name] = v.defaultVal
		}
	}
	return snapshot
}
