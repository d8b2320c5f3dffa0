package konf

import (
	"cmp"
	"fmt"
	"reflect"
	"strings"
)

// AllowedSet restricts a variable to a set of canonical values.
// Members are cast through the variable's kind when the variable is declared,
// so Contains always compares canonical values.
type AllowedSet interface {
	Contains(value any) bool
	String() string
	// bind casts the set's members for kind, returning a canonical copy.
	bind(kind Kind, opts Options) (AllowedSet, error)
}

type oneOf struct {
	values []any
}

// OneOf allows exactly the listed values.
func OneOf(values ...any) AllowedSet {
	return &oneOf{values: values}
}

func (s *oneOf) Contains(value any) bool {
	for _, v := range s.values {
		if reflect.DeepEqual(v, value) {
			return true
		}
	}
	return false
}

func (s *oneOf) String() string {
	parts := make([]string, len(s.values))
	for i, v := range s.values {
		parts[i] = inspect(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (s *oneOf) bind(kind Kind, opts Options) (AllowedSet, error) {
	cast := make([]any, len(s.values))
	for i, v := range s.values {
		c, err := Cast(kind, v, opts)
		if err != nil {
			return nil, fmt.Errorf("%w: allowed value %s: %w", ErrInvalidDeclaration, inspect(v), err)
		}
		cast[i] = c
	}
	return &oneOf{values: cast}, nil
}

type numericRange struct {
	min, max any
	kind     Kind
}

// Range allows numeric values between min and max inclusive.
// It only binds to integer, float and duration variables.
func Range(min, max any) AllowedSet {
	return &numericRange{min: min, max: max}
}

func (r *numericRange) Contains(value any) bool {
	lo, ok := compareNumbers(value, r.min)
	if !ok || lo < 0 {
		return false
	}
	hi, ok := compareNumbers(value, r.max)
	return ok && hi <= 0
}

// compareNumbers orders two canonical numbers, exactly when both are int64.
func compareNumbers(a, b any) (int, bool) {
	if x, ok := a.(int64); ok {
		if y, ok := b.(int64); ok {
			return cmp.Compare(x, y), true
		}
	}
	x, ok := toFloat64(a)
	if !ok {
		return 0, false
	}
	y, ok := toFloat64(b)
	if !ok {
		return 0, false
	}
	return cmp.Compare(x, y), true
}

func (r *numericRange) String() string {
	return fmt.Sprintf("%v..%v", r.min, r.max)
}

func (r *numericRange) bind(kind Kind, opts Options) (AllowedSet, error) {
	switch kind {
	case KindInteger, KindFloat, KindDuration:
	default:
		return nil, fmt.Errorf("%w: range is not applicable to %s variables", ErrInvalidDeclaration, kind)
	}

	lo, err := Cast(kind, r.min, opts)
	if err != nil || lo == nil {
		return nil, fmt.Errorf("%w: invalid range minimum %s", ErrInvalidDeclaration, inspect(r.min))
	}
	hi, err := Cast(kind, r.max, opts)
	if err != nil || hi == nil {
		return nil, fmt.Errorf("%w: invalid range maximum %s", ErrInvalidDeclaration, inspect(r.max))
	}
	return &numericRange{min: lo, max: hi, kind: kind}, nil
}
