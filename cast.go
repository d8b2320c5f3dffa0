// FILE: lixenwraith/konf/cast.go
package konf

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Options carries the per-variable parameters used by cast and decode.
// Zero fields fall back to the defaults below.
type Options struct {
	// Separator splits list strings. Default ",".
	Separator string
	// Items is the kind of each list element. Default KindString.
	Items Kind
	// TrueValues and FalseValues are the accepted boolean tokens.
	// Default {"true", "1"} and {"false", "0"}.
	TrueValues  []string
	FalseValues []string
}

var (
	defaultTrueValues  = []string{"true", "1"}
	defaultFalseValues = []string{"false", "0"}
)

func (o Options) separator() string {
	if o.Separator == "" {
		return ","
	}
	return o.Separator
}

func (o Options) items() Kind {
	if !o.Items.Valid() {
		return KindString
	}
	return o.Items
}

func (o Options) trueValues() []string {
	if len(o.TrueValues) == 0 {
		return defaultTrueValues
	}
	return o.TrueValues
}

func (o Options) falseValues() []string {
	if len(o.FalseValues) == 0 {
		return defaultFalseValues
	}
	return o.FalseValues
}

// Cast converts value into the canonical representation for kind.
// nil casts to nil for every kind.
func Cast(kind Kind, value any, opts Options) (any, error) {
	if value == nil {
		return nil, nil
	}

	switch kind {
	case KindBoolean:
		switch v := value.(type) {
		case bool:
			return v, nil
		case string:
			return decodeBoolean(v, opts)
		}
		return nil, castMismatch(kind, value)

	case KindInteger:
		if s, ok := value.(string); ok {
			n, err := parseInteger(s)
			if err != nil {
				return nil, castMismatch(kind, value)
			}
			return n, nil
		}
		if n, ok := toInt64(value); ok {
			return n, nil
		}
		return nil, castMismatch(kind, value)

	case KindFloat:
		if s, ok := value.(string); ok {
			f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return nil, castMismatch(kind, value)
			}
			return f, nil
		}
		if f, ok := toFloat64(value); ok {
			return f, nil
		}
		return nil, castMismatch(kind, value)

	case KindString:
		if s, ok := value.(string); ok {
			return s, nil
		}
		return nil, castMismatch(kind, value)

	case KindList:
		if s, ok := value.(string); ok {
			return decodeList(s, opts)
		}
		return castList(value, opts)

	case KindSymbol:
		switch v := value.(type) {
		case Symbol:
			return v, nil
		case string:
			return Symbol(v), nil
		}
		return nil, castMismatch(kind, value)

	case KindDuration:
		d, err := castDuration(value)
		if err != nil {
			return nil, err
		}
		// durations are never negative
		if n, ok := toFloat64(d); ok && n < 0 {
			return nil, castMismatch(kind, value)
		}
		return d, nil
	}

	return nil, newError(ErrInvalidDeclaration, "", "unknown kind %s", kind)
}

// DecodeString converts a string-sourced value, such as an environment
// variable, into the canonical representation for kind. Failures carry the
// decoder message, e.g. `"XXX" is not an integer`.
func DecodeString(kind Kind, raw string, opts Options) (any, error) {
	switch kind {
	case KindBoolean:
		return decodeBoolean(raw, opts)
	case KindInteger:
		n, err := parseInteger(raw)
		if err != nil {
			return nil, newError(ErrCast, "", "%q is not an integer", raw)
		}
		return n, nil
	case KindFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, newError(ErrCast, "", "%q is not a float", raw)
		}
		return f, nil
	case KindString:
		return raw, nil
	case KindList:
		return decodeList(raw, opts)
	case KindSymbol:
		return Symbol(raw), nil
	case KindDuration:
		return ParseDuration(raw)
	}
	return nil, newError(ErrInvalidDeclaration, "", "unknown kind %s", kind)
}

// Encode renders a canonical value as a string that DecodeString reads back
// to the same value. nil encodes to "".
func Encode(kind Kind, value any, opts Options) (string, error) {
	if value == nil {
		return "", nil
	}
	canonical, err := Cast(kind, value, opts)
	if err != nil {
		return "", err
	}

	switch v := canonical.(type) {
	case bool:
		if v {
			return opts.trueValues()[0], nil
		}
		return opts.falseValues()[0], nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		if kind == KindDuration {
			// Keep float seconds a float on the way back in
			s := strconv.FormatFloat(v, 'f', -1, 64)
			if !strings.Contains(s, ".") {
				s += ".0"
			}
			return s, nil
		}
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case string:
		return v, nil
	case Symbol:
		return string(v), nil
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			s, err := Encode(opts.items(), item, Options{})
			if err != nil {
				return "", err
			}
			parts[i] = s
		}
		return strings.Join(parts, opts.separator()), nil
	}
	return "", castMismatch(kind, value)
}

func castDuration(value any) (any, error) {
	switch v := value.(type) {
	case string:
		return ParseDuration(v)
	case time.Duration:
		return durationSeconds(v), nil
	case float32:
		return float64(v), nil
	case float64:
		return v, nil
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, nil
		}
		if f, err := v.Float64(); err == nil {
			return f, nil
		}
		return nil, castMismatch(KindDuration, value)
	}
	if n, ok := toInt64(value); ok {
		return n, nil
	}
	return nil, castMismatch(KindDuration, value)
}

func decodeBoolean(raw string, opts Options) (any, error) {
	trues, falses := opts.trueValues(), opts.falseValues()
	for _, t := range trues {
		if raw == t {
			return true, nil
		}
	}
	for _, f := range falses {
		if raw == f {
			return false, nil
		}
	}

	tokens := make([]string, 0, len(trues)+len(falses))
	tokens = append(tokens, trues...)
	tokens = append(tokens, falses...)
	return nil, newError(ErrCast, "", "%q is not a boolean: must be one of %s", raw, strings.Join(tokens, ", "))
}

// decodeList splits raw on the separator and decodes each item.
// Trailing empty items are dropped; an empty string is an empty list.
func decodeList(raw string, opts Options) (any, error) {
	parts := strings.Split(raw, opts.separator())
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}

	result := make([]any, 0, len(parts))
	for _, part := range parts {
		item, err := DecodeString(opts.items(), part, Options{})
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, nil
}

func castList(value any, opts Options) (any, error) {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, castMismatch(KindList, value)
	}

	result := make([]any, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		item, err := Cast(opts.items(), rv.Index(i).Interface(), Options{})
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, nil
}

// parseInteger accepts base prefixes (0x, 0o, 0b) and underscores.
func parseInteger(s string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(s), 0, 64)
}

func toInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	case bool:
		return 0, false
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if rv.Type() == reflect.TypeOf(time.Duration(0)) {
			return 0, false
		}
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, false
		}
		return int64(u), true
	case reflect.Float32, reflect.Float64:
		// Only integral floats, as produced by JSON and some YAML documents
		f := rv.Float()
		if f != math.Trunc(f) || f > math.MaxInt64 || f < math.MinInt64 {
			return 0, false
		}
		return int64(f), true
	}
	return 0, false
}

func toFloat64(value any) (float64, bool) {
	switch v := value.(type) {
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case bool:
		return 0, false
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	}
	return 0, false
}
