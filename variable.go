// FILE: lixenwraith/konf/variable.go
package konf

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ValidatorFunc is a predicate over a variable's canonical value.
type ValidatorFunc func(value any) bool

// Variable is the immutable declaration of one configuration variable.
type Variable struct {
	name        string
	kind        Kind
	defaultVal  any
	required    bool
	allowed     AllowedSet
	validator   ValidatorFunc
	description string
	options     Options
}

// VarOption configures a Variable at declaration time.
type VarOption func(*varSpec)

// varSpec collects options before the Variable is built and frozen.
type varSpec struct {
	defaultVal  any
	required    bool
	allowed     AllowedSet
	validators  []ValidatorFunc
	description string
	options     Options
	err         error
}

// Default sets the value returned by Get while the variable is unset.
// Raw literals are cast once at declaration, e.g. Default("8h") for a duration.
func Default(value any) VarOption {
	return func(s *varSpec) { s.defaultVal = value }
}

// Required marks the variable as mandatory for Config.Validate.
func Required() VarOption {
	return func(s *varSpec) { s.required = true }
}

// Describe attaches documentation to the variable.
func Describe(description string) VarOption {
	return func(s *varSpec) { s.description = description }
}

// AllowedValues restricts the variable to the listed values.
func AllowedValues(values ...any) VarOption {
	return func(s *varSpec) { s.allowed = OneOf(values...) }
}

// AllowedRange restricts a numeric variable to [min, max].
func AllowedRange(min, max any) VarOption {
	return func(s *varSpec) { s.allowed = Range(min, max) }
}

// Allowed restricts the variable to an arbitrary AllowedSet.
func Allowed(set AllowedSet) VarOption {
	return func(s *varSpec) { s.allowed = set }
}

// ValidateWith adds a custom predicate. Multiple predicates must all pass.
func ValidateWith(fn ValidatorFunc) VarOption {
	return func(s *varSpec) {
		if fn != nil {
			s.validators = append(s.validators, fn)
		}
	}
}

var (
	tagValidator     *validator.Validate
	tagValidatorOnce sync.Once
)

func getTagValidator() *validator.Validate {
	tagValidatorOnce.Do(func() {
		tagValidator = validator.New()
	})
	return tagValidator
}

// ValidateTag adds a validator rule in go-playground/validator syntax,
// e.g. "gt=0,lt=65536" or "oneof=debug info warn error".
func ValidateTag(tag string) VarOption {
	return func(s *varSpec) {
		if tag == "" {
			return
		}
		v := getTagValidator()
		// Reject malformed tags at declaration instead of at first Set
		if err := checkTag(v, tag); err != nil {
			s.err = fmt.Errorf("%w: validate tag %q: %v", ErrInvalidDeclaration, tag, err)
			return
		}
		s.validators = append(s.validators, func(value any) bool {
			return v.Var(value, tag) == nil
		})
	}
}

// checkTag parses the tag against a nil value; validator panics on unknown rules.
func checkTag(v *validator.Validate, tag string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	_ = v.Var(nil, tag)
	return nil
}

// Separator sets the list item separator.
func Separator(sep string) VarOption {
	return func(s *varSpec) { s.options.Separator = sep }
}

// Items sets the kind of each list item.
func Items(kind Kind) VarOption {
	return func(s *varSpec) { s.options.Items = kind }
}

// BooleanTokens replaces the accepted true and false strings.
func BooleanTokens(trueValues, falseValues []string) VarOption {
	return func(s *varSpec) {
		s.options.TrueValues = trueValues
		s.options.FalseValues = falseValues
	}
}

// WithOptions replaces all decode options at once.
func WithOptions(opts Options) VarOption {
	return func(s *varSpec) { s.options = opts }
}

// NewVariable builds a standalone Variable. Registry.Register is the usual entry point.
func NewVariable(name string, kind Kind, opts ...VarOption) (*Variable, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: variable %q has unknown kind %d", ErrInvalidDeclaration, name, int(kind))
	}

	spec := &varSpec{}
	for _, opt := range opts {
		opt(spec)
	}
	if spec.err != nil {
		return nil, fmt.Errorf("variable %q: %w", name, spec.err)
	}
	if kind == KindList && spec.options.Items == KindList {
		return nil, fmt.Errorf("%w: variable %q: nested lists are not supported", ErrInvalidDeclaration, name)
	}

	v := &Variable{
		name:        name,
		kind:        kind,
		required:    spec.required,
		description: spec.description,
		options:     spec.options,
		validator:   combineValidators(spec.validators),
	}

	def, err := v.Cast(spec.defaultVal)
	if err != nil {
		return nil, fmt.Errorf("%w: variable %q: default: %w", ErrInvalidDeclaration, name, err)
	}
	v.defaultVal = def

	if spec.allowed != nil {
		bound, err := spec.allowed.bind(kind, spec.options)
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", name, err)
		}
		v.allowed = bound
	}

	return v, nil
}

func combineValidators(fns []ValidatorFunc) ValidatorFunc {
	switch len(fns) {
	case 0:
		return func(any) bool { return true }
	case 1:
		return fns[0]
	}
	return func(value any) bool {
		for _, fn := range fns {
			if !fn(value) {
				return false
			}
		}
		return true
	}
}

func (v *Variable) Name() string        { return v.name }
func (v *Variable) Kind() Kind          { return v.kind }
func (v *Variable) Default() any        { return v.defaultVal }
func (v *Variable) Required() bool      { return v.required }
func (v *Variable) Allowed() AllowedSet { return v.allowed }
func (v *Variable) Description() string { return v.description }
func (v *Variable) Options() Options    { return v.options }

// EnvKey returns the environment variable name for v under prefix
// (already normalized, e.g. "TEST_").
func (v *Variable) EnvKey(prefix string) string {
	return prefix + envName(v.name)
}

// Cast converts value to v's canonical type.
func (v *Variable) Cast(value any) (any, error) {
	return Cast(v.kind, value, v.options)
}

// Decode converts a string-sourced value to v's canonical type.
func (v *Variable) Decode(raw string) (any, error) {
	return DecodeString(v.kind, raw, v.options)
}

// Valid reports whether value casts and passes the custom validator.
func (v *Variable) Valid(value any) bool {
	cast, err := v.Cast(value)
	if err != nil {
		return false
	}
	return v.validator(cast)
}

// IsAllowed reports whether value, once cast, is a member of the allowed set.
// Variables without an allowed set accept everything; cast failures are not allowed.
func (v *Variable) IsAllowed(value any) bool {
	if v.allowed == nil {
		return true
	}
	cast, err := v.Cast(value)
	if err != nil {
		return false
	}
	return v.allowed.Contains(cast)
}

func (v *Variable) String() string {
	return fmt.Sprintf("%s (%s)", v.name, v.kind)
}
