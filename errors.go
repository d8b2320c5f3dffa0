// FILE: lixenwraith/konf/errors.go
package konf

import (
	"errors"
	"fmt"
)

// Sentinel causes carried by ConfigError. Use errors.Is to distinguish them.
var (
	ErrUnknownVariable = errors.New("unknown variable")
	ErrCast            = errors.New("cast failed")
	ErrInvalidDuration = fmt.Errorf("%w: invalid duration", ErrCast)
	ErrNotAllowed      = errors.New("value not allowed")
	ErrInvalid         = errors.New("value invalid")
	ErrRequiredMissing = errors.New("required variable missing")
	ErrUnknownEnv      = errors.New("unknown environment variable")

	// Declaration errors
	ErrRegistryFrozen     = errors.New("registry is frozen")
	ErrDuplicateVariable  = errors.New("duplicate variable")
	ErrInvalidDeclaration = errors.New("invalid declaration")

	// Loader errors
	ErrConfigNotFound  = errors.New("configuration file not found")
	ErrSectionNotFound = errors.New("configuration section not found")
)

// ConfigError is the single error kind surfaced by the package.
// Msg is the human-readable message; Cause is one of the sentinel errors above.
type ConfigError struct {
	Cause    error
	Variable string // empty when the failure is not tied to a variable
	Msg      string

	mismatch bool
}

func (e *ConfigError) Error() string {
	return e.Msg
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}

func newError(cause error, variable, format string, args ...any) *ConfigError {
	return &ConfigError{
		Cause:    cause,
		Variable: variable,
		Msg:      fmt.Sprintf(format, args...),
	}
}

// castMismatch reports a value whose Go type cannot be cast to kind.
// Config.Set rewrites the message to name the variable.
func castMismatch(kind Kind, value any) *ConfigError {
	return &ConfigError{
		Cause:    ErrCast,
		Msg:      fmt.Sprintf("invalid value %s, expected %s", inspect(value), kind),
		mismatch: true,
	}
}

// isMismatch reports whether err was produced by castMismatch, as opposed to a
// decoder failure that already carries a complete message.
func isMismatch(err error) bool {
	var ce *ConfigError
	if !errors.As(err, &ce) {
		return false
	}
	return ce.mismatch
}
