// FILE: lixenwraith/konf/decode.go
package konf

import (
	"fmt"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
)

// Scan decodes the resolved value of every declared variable into target,
// a pointer to a struct tagged with `konf:"name"`. Dot-separated names map to
// nested structs, durations to time.Duration and symbols to strings.
func (c *Config) Scan(target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("scan target must be non-nil pointer, got %T", target)
	}

	nested := make(map[string]any)
	for name, value := range c.Snapshot() {
		if value == nil {
			continue
		}
		setNestedValue(nested, name, value)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          TagName,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			secondsToDurationHookFunc(),
			symbolToStringHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
		),
	})
	if err != nil {
		return fmt.Errorf("decoder creation failed: %w", err)
	}

	if err := decoder.Decode(nested); err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}
	return nil
}

// secondsToDurationHookFunc converts canonical duration seconds to time.Duration.
func secondsToDurationHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if t != durationType {
			return data, nil
		}
		switch f.Kind() {
		case reflect.Int64, reflect.Float64:
			d, ok := Seconds(data)
			if !ok {
				return nil, fmt.Errorf("cannot convert %v to duration", data)
			}
			return d, nil
		}
		return data, nil
	}
}

func symbolToStringHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f != symbolType || t.Kind() != reflect.String || t == symbolType {
			return data, nil
		}
		return string(data.(Symbol)), nil
	}
}
