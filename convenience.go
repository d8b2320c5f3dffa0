// File: lixenwraith/konf/convenience.go
package konf

import (
	"errors"
	"flag"
	"fmt"
	"strings"
)

// Quick declares variables from structDefaults, then resolves the process
// environment under envPrefix and configFile (optional, may be missing).
// This is the shortest path for applications that keep their schema in a struct.
func Quick(structDefaults any, envPrefix, configFile string) (*Config, error) {
	reg := NewRegistry(WithEnvPrefix(envPrefix))

	if structDefaults != nil {
		if err := reg.RegisterStruct("", structDefaults); err != nil {
			return nil, fmt.Errorf("failed to register defaults: %w", err)
		}
	}

	return NewBuilder(reg).WithFile(configFile, "").Build()
}

// MustQuick is like Quick but panics on error
func MustQuick(structDefaults any, envPrefix, configFile string) *Config {
	cfg, err := Quick(structDefaults, envPrefix, configFile)
	if err != nil && !errors.Is(err, ErrConfigNotFound) {
		panic(fmt.Sprintf("konf: initialization failed: %v", err))
	}
	return cfg
}

// GenerateFlags creates a flag.FlagSet with one string flag per declared
// variable. Values go through the same decoding as environment values.
// Boolean flags may also appear bare (-debug), which sets them true; an
// explicit value must then be attached with '=' (-debug=false).
func (c *Config) GenerateFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)

	for _, v := range c.registry.Variables() {
		usage := v.description
		if usage == "" {
			usage = fmt.Sprintf("Config: %s", v.name)
		}
		usage = fmt.Sprintf("%s (%s)", usage, v.kind)

		def := ""
		if v.defaultVal != nil {
			if encoded, err := Encode(v.kind, v.defaultVal, v.options); err == nil {
				def = encoded
			}
		}
		if v.kind == KindBoolean {
			fs.Var(&boolFlag{value: def, trueToken: v.options.trueValues()[0]}, v.name, usage)
			continue
		}
		fs.String(v.name, def, usage)
	}

	return fs
}

// boolFlag keeps the raw token for decoding but lets the flag appear bare.
type boolFlag struct {
	value     string
	trueToken string
}

func (f *boolFlag) String() string {
	if f == nil {
		return ""
	}
	return f.value
}

// Set maps the flag package's bare "true" to the variable's own true token.
func (f *boolFlag) Set(s string) error {
	if s == "true" {
		s = f.trueToken
	}
	f.value = s
	return nil
}

func (f *boolFlag) IsBoolFlag() bool { return true }

// BindFlags decodes every flag set on the command line into the Config.
func (c *Config) BindFlags(fs *flag.FlagSet) error {
	var errs []error

	fs.Visit(func(f *flag.Flag) {
		if !c.registry.Has(f.Name) {
			return
		}
		if err := c.decode(f.Name, f.Value.String(), SourceCLI); err != nil {
			errs = append(errs, fmt.Errorf("flag %s: %w", f.Name, err))
		}
	})

	if len(errs) > 0 {
		return fmt.Errorf("failed to bind %d flags: %w", len(errs), errs[0])
	}
	return nil
}

// Debug returns a formatted string showing all configuration values and their sources
func (c *Config) Debug() string {
	var b strings.Builder
	b.WriteString("Configuration Debug Info:\n")
	if prefix := c.registry.EffectivePrefix(); prefix != "" {
		b.WriteString(fmt.Sprintf("Env prefix: %s\n", prefix))
	}
	b.WriteString("Current values:\n")

	for _, v := range c.registry.Variables() {
		value, _ := c.Get(v.name)
		source, _ := c.Source(v.name)

		b.WriteString(fmt.Sprintf("  %s (%s):\n", v.name, v.kind))
		b.WriteString(fmt.Sprintf("    Current: %s\n", inspect(value)))
		b.WriteString(fmt.Sprintf("    Default: %s\n", inspect(v.defaultVal)))
		b.WriteString(fmt.Sprintf("    Source: %s\n", source))
	}

	return b.String()
}

// Clone creates a copy of the configuration bound to the same registry.
// Canonical values are immutable except lists, which are copied.
func (c *Config) Clone() *Config {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	clone := &Config{
		registry: c.registry,
		items:    make(map[string]configItem, len(c.items)),
		logger:   c.logger,
	}

	for name, item := range c.items {
		if list, ok := item.value.([]any); ok {
			copied := make([]any, len(list))
			copy(copied, list)
			item.value = copied
		}
		clone.items[name] = item
	}

	return clone
}
