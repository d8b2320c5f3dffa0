// FILE: lixenwraith/konf/registry.go
package konf

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

// Registry is the declared schema of one configuration shape: an ordered set
// of variables plus environment binding settings.
//
// Declaration is append-only. The registry freezes when the first Config is
// built from it; after that it is immutable and safe for concurrent reads.
type Registry struct {
	vars             map[string]*Variable
	order            []string
	envPrefix        string
	ignoreUnknownEnv bool
	frozen           bool
	logger           *slog.Logger
	mutex            sync.RWMutex
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithEnvPrefix makes environment keys PREFIX_NAME. The prefix is upper-cased.
func WithEnvPrefix(prefix string) RegistryOption {
	return func(r *Registry) { r.envPrefix = prefix }
}

// WithIgnoreUnknownEnv tolerates prefixed environment keys that match no variable.
func WithIgnoreUnknownEnv(ignore bool) RegistryOption {
	return func(r *Registry) { r.ignoreUnknownEnv = ignore }
}

// WithLogger sets the logger used by the registry and the configs built from it.
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRegistry creates an empty, unfrozen registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		vars:   make(map[string]*Variable),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register declares a variable. It fails once the registry is frozen, on a
// duplicate name, or when the declaration itself is invalid.
func (r *Registry) Register(name string, kind Kind, opts ...VarOption) error {
	v, err := NewVariable(name, kind, opts...)
	if err != nil {
		return err
	}
	return r.add(v)
}

// MustRegister is like Register but panics on error. Intended for package-level schemas.
func (r *Registry) MustRegister(name string, kind Kind, opts ...VarOption) *Registry {
	if err := r.Register(name, kind, opts...); err != nil {
		panic(fmt.Sprintf("konf: %v", err))
	}
	return r
}

func (r *Registry) add(v *Variable) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.frozen {
		return fmt.Errorf("%w: cannot declare %q", ErrRegistryFrozen, v.name)
	}
	if _, exists := r.vars[v.name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateVariable, v.name)
	}

	r.vars[v.name] = v
	r.order = append(r.order, v.name)
	return nil
}

// Per-kind declaration helpers, named after the flag package's XxxVar functions.

func (r *Registry) BooleanVar(name string, opts ...VarOption) error {
	return r.Register(name, KindBoolean, opts...)
}

func (r *Registry) IntegerVar(name string, opts ...VarOption) error {
	return r.Register(name, KindInteger, opts...)
}

func (r *Registry) FloatVar(name string, opts ...VarOption) error {
	return r.Register(name, KindFloat, opts...)
}

func (r *Registry) StringVar(name string, opts ...VarOption) error {
	return r.Register(name, KindString, opts...)
}

func (r *Registry) ListVar(name string, opts ...VarOption) error {
	return r.Register(name, KindList, opts...)
}

func (r *Registry) SymbolVar(name string, opts ...VarOption) error {
	return r.Register(name, KindSymbol, opts...)
}

func (r *Registry) DurationVar(name string, opts ...VarOption) error {
	return r.Register(name, KindDuration, opts...)
}

// Variable returns the declaration for name.
func (r *Registry) Variable(name string) (*Variable, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	v, ok := r.vars[name]
	if !ok {
		return nil, newError(ErrUnknownVariable, name, "unknown configuration variable %s", name)
	}
	return v, nil
}

// Has reports whether name is declared.
func (r *Registry) Has(name string) bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	_, ok := r.vars[name]
	return ok
}

// Variables returns the declarations in declaration order.
func (r *Registry) Variables() []*Variable {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	result := make([]*Variable, len(r.order))
	for i, name := range r.order {
		result[i] = r.vars[name]
	}
	return result
}

// Len returns the number of declared variables.
func (r *Registry) Len() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.order)
}

func (r *Registry) EnvPrefix() string {
	return r.envPrefix
}

func (r *Registry) IgnoreUnknownEnv() bool {
	return r.ignoreUnknownEnv
}

// EffectivePrefix is "" without a prefix, otherwise the upper-cased prefix plus "_".
func (r *Registry) EffectivePrefix() string {
	if r.envPrefix == "" {
		return ""
	}
	return strings.ToUpper(r.envPrefix) + "_"
}

// Frozen reports whether a Config has been built from the registry.
func (r *Registry) Frozen() bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.frozen
}

func (r *Registry) freeze() {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if !r.frozen {
		r.frozen = true
		r.logger.Debug("registry frozen", "variables", len(r.order), "env_prefix", r.envPrefix)
	}
}

func (r *Registry) Logger() *slog.Logger {
	return r.logger
}
