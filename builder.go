// File: lixenwraith/konf/builder.go
package konf

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
)

// CheckFunc validates a fully resolved Config. It runs after required
// variables have been checked.
type CheckFunc func(c *Config) error

// Builder provides a fluent interface for resolving a Config from several
// sources. Precedence, highest first: flags, environment, file, defaults.
type Builder struct {
	registry  *Registry
	env       map[string]string
	file      string
	section   string
	args      []string
	discovery *FileDiscoveryOptions
	// reserved env key naming the config file, not a variable
	reserved string
	logger   *slog.Logger
	checks   []CheckFunc
	err      error
}

// NewBuilder creates a builder over reg, reading the process environment
// unless WithEnv or WithEnviron replaces it.
func NewBuilder(reg *Registry) *Builder {
	return &Builder{
		registry: reg,
		env:      ParseEnviron(os.Environ()),
		checks:   make([]CheckFunc, 0),
	}
}

// WithEnv replaces the environment map used for resolution.
func (b *Builder) WithEnv(env map[string]string) *Builder {
	b.env = env
	return b
}

// WithEnviron replaces the environment with KEY=VALUE entries.
func (b *Builder) WithEnviron(environ []string) *Builder {
	b.env = ParseEnviron(environ)
	return b
}

// WithFile sets the configuration file and the optional section to apply.
func (b *Builder) WithFile(path, section string) *Builder {
	b.file = path
	b.section = section
	return b
}

// WithSection selects the file section without changing the path, which is
// useful together with WithFileDiscovery.
func (b *Builder) WithSection(section string) *Builder {
	b.section = section
	return b
}

// WithArgs enables command-line flags: one -name=value flag per variable.
func (b *Builder) WithArgs(args []string) *Builder {
	b.args = args
	return b
}

// WithLogger overrides the registry logger for the built Config.
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	b.logger = logger
	return b
}

// WithValidator adds a check that runs at the end of the build process.
// Multiple checks run in the order they are added.
func (b *Builder) WithValidator(fn CheckFunc) *Builder {
	if fn != nil {
		b.checks = append(b.checks, fn)
	}
	return b
}

// Build resolves the Config. A missing file is not fatal: the Config is
// returned together with an error wrapping ErrConfigNotFound.
func (b *Builder) Build() (*Config, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.registry == nil {
		return nil, fmt.Errorf("%w: builder has no registry", ErrInvalidDeclaration)
	}

	cfg := newConfig(b.registry)
	if b.logger != nil {
		cfg.logger = b.logger
	}

	file, args := b.discover()

	var loadErr error
	if file != "" {
		if err := cfg.LoadFile(file, b.section); err != nil {
			if !errors.Is(err, ErrConfigNotFound) {
				return nil, err
			}
			cfg.logger.Debug("config file not found, continuing", "path", file)
			loadErr = err
		}
	}

	env := b.env
	if _, ok := env[b.reserved]; ok && b.reserved != "" {
		env = make(map[string]string, len(b.env))
		for k, v := range b.env {
			if k != b.reserved {
				env[k] = v
			}
		}
	}
	if err := cfg.loadEnv(env); err != nil {
		return nil, err
	}

	if args != nil {
		fs := cfg.GenerateFlags("konf")
		if err := fs.Parse(args); err != nil {
			return nil, fmt.Errorf("failed to parse flags: %w", err)
		}
		if err := cfg.BindFlags(fs); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	for _, check := range b.checks {
		if err := check(cfg); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}

	// ErrConfigNotFound or nil
	return cfg, loadErr
}

// MustBuild is like Build but panics on error. A missing file is not fatal.
func (b *Builder) MustBuild() *Config {
	cfg, err := b.Build()
	if err != nil && !errors.Is(err, ErrConfigNotFound) {
		panic(fmt.Sprintf("konf: build failed: %v", err))
	}
	return cfg
}

// BuildAndScan builds the Config and decodes it into target.
func (b *Builder) BuildAndScan(target any) error {
	cfg, err := b.Build()
	if err != nil && !errors.Is(err, ErrConfigNotFound) {
		return err
	}

	if scanErr := cfg.Scan(target); scanErr != nil {
		return fmt.Errorf("failed to scan final config into target: %w", scanErr)
	}

	// ErrConfigNotFound or nil
	return err
}
