// File: lixenwraith/konf/type.go
package konf

import (
	"fmt"
	"time"
)

// typed fetches name and checks its declared kind.
func (c *Config) typed(name string, kind Kind) (any, error) {
	v, err := c.registry.Variable(name)
	if err != nil {
		return nil, err
	}
	if v.kind != kind {
		return nil, newError(ErrCast, name, "variable `%s` is %s, not %s", name, v.kind, kind)
	}
	return c.Get(name)
}

// Bool retrieves a boolean variable. nil reads as false.
func (c *Config) Bool(name string) (bool, error) {
	val, err := c.typed(name, KindBoolean)
	if err != nil || val == nil {
		return false, err
	}
	return val.(bool), nil
}

// Int64 retrieves an integer variable. nil reads as 0.
func (c *Config) Int64(name string) (int64, error) {
	val, err := c.typed(name, KindInteger)
	if err != nil || val == nil {
		return 0, err
	}
	return val.(int64), nil
}

// Float64 retrieves a float variable. nil reads as 0.
func (c *Config) Float64(name string) (float64, error) {
	val, err := c.typed(name, KindFloat)
	if err != nil || val == nil {
		return 0, err
	}
	return val.(float64), nil
}

// String retrieves a string variable. nil reads as "".
func (c *Config) String(name string) (string, error) {
	val, err := c.typed(name, KindString)
	if err != nil || val == nil {
		return "", err
	}
	return val.(string), nil
}

// Symbol retrieves a symbol variable. nil reads as "".
func (c *Config) Symbol(name string) (Symbol, error) {
	val, err := c.typed(name, KindSymbol)
	if err != nil || val == nil {
		return "", err
	}
	return val.(Symbol), nil
}

// List retrieves a list variable as canonical items. nil reads as an empty list.
func (c *Config) List(name string) ([]any, error) {
	val, err := c.typed(name, KindList)
	if err != nil || val == nil {
		return nil, err
	}
	return val.([]any), nil
}

// Strings retrieves a list variable with each item formatted as a string.
func (c *Config) Strings(name string) ([]string, error) {
	items, err := c.List(name)
	if err != nil {
		return nil, err
	}
	result := make([]string, len(items))
	for i, item := range items {
		if s, ok := item.(string); ok {
			result[i] = s
		} else {
			result[i] = fmt.Sprint(item)
		}
	}
	return result, nil
}

// Duration retrieves a duration variable as a time.Duration. nil reads as 0.
func (c *Config) Duration(name string) (time.Duration, error) {
	val, err := c.typed(name, KindDuration)
	if err != nil || val == nil {
		return 0, err
	}
	d, ok := Seconds(val)
	if !ok {
		return 0, newError(ErrCast, name, "cannot convert %T to duration for variable `%s`", val, name)
	}
	return d, nil
}
