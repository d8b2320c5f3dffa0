// FILE: lixenwraith/konf/duration.go
package konf

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DurationExample is shown in duration parse errors.
const DurationExample = "1h 30m"

var (
	durationPart    = regexp.MustCompile(`(\d+)(ms|s|m|h|d|w)`)
	durationInteger = regexp.MustCompile(`^\d+$`)
	durationDecimal = regexp.MustCompile(`^(\d+\.\d*|\d*\.\d+)$`)
)

// durationUnits maps a unit suffix to its length in milliseconds.
var durationUnits = map[string]int64{
	"ms": 1,
	"s":  1000,
	"m":  60 * 1000,
	"h":  60 * 60 * 1000,
	"d":  24 * 60 * 60 * 1000,
	"w":  7 * 24 * 60 * 60 * 1000,
}

// ParseDuration parses a human-readable duration such as "1h 30m" into seconds.
//
// The result is an int64 when every part is a whole number of seconds and a
// float64 when a millisecond part is present. A bare integer or decimal is read
// as seconds. An empty or all-whitespace string yields nil.
func ParseDuration(s string) (any, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil, nil
	}

	if durationInteger.MatchString(trimmed) {
		n, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return nil, invalidDuration(s)
		}
		return n, nil
	}
	if durationDecimal.MatchString(trimmed) {
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return nil, invalidDuration(s)
		}
		return f, nil
	}

	matches := durationPart.FindAllStringSubmatchIndex(trimmed, -1)
	if len(matches) == 0 {
		return nil, invalidDuration(s)
	}

	var (
		totalMillis int64
		subSecond   bool
		last        int
	)
	for _, m := range matches {
		// Only whitespace may separate parts
		if strings.TrimSpace(trimmed[last:m[0]]) != "" {
			return nil, invalidDuration(s)
		}
		last = m[1]

		n, err := strconv.ParseInt(trimmed[m[2]:m[3]], 10, 64)
		if err != nil {
			return nil, invalidDuration(s)
		}
		unit := trimmed[m[4]:m[5]]
		if unit == "ms" {
			subSecond = true
		}
		scale := durationUnits[unit]
		if n > (math.MaxInt64-totalMillis)/scale {
			return nil, invalidDuration(s)
		}
		totalMillis += n * scale
	}
	if last != len(trimmed) {
		return nil, invalidDuration(s)
	}

	if subSecond {
		return float64(totalMillis) / 1000, nil
	}
	return totalMillis / 1000, nil
}

func invalidDuration(literal string) error {
	return newError(ErrInvalidDuration, "", "%q is not a duration: must be e.g. `%s`", literal, DurationExample)
}

// Seconds converts a canonical duration value (seconds as an integer or float)
// into a time.Duration. The boolean is false for nil or non-numeric values.
func Seconds(v any) (time.Duration, bool) {
	switch n := v.(type) {
	case int64:
		return time.Duration(n) * time.Second, true
	case float64:
		return time.Duration(n * float64(time.Second)), true
	case int:
		return time.Duration(n) * time.Second, true
	case time.Duration:
		return n, true
	}
	return 0, false
}

// durationSeconds converts a time.Duration into canonical seconds.
func durationSeconds(d time.Duration) any {
	if d%time.Second == 0 {
		return int64(d / time.Second)
	}
	return d.Seconds()
}
