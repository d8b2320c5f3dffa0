package konf

import (
	"fmt"
	"strings"
)

// Kind is the declared type of a configuration variable.
type Kind int

// The zero Kind is invalid, so an unset Options.Items falls back to KindString.
const (
	KindBoolean Kind = iota + 1
	KindInteger
	KindFloat
	KindString
	KindList
	KindSymbol
	KindDuration
)

var kindNames = map[Kind]string{
	KindBoolean:  "boolean",
	KindInteger:  "integer",
	KindFloat:    "float",
	KindString:   "string",
	KindList:     "list",
	KindSymbol:   "symbol",
	KindDuration: "duration",
}

// Kinds lists every kind in declaration order.
var Kinds = []Kind{KindBoolean, KindInteger, KindFloat, KindString, KindList, KindSymbol, KindDuration}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// ParseKind converts a kind name such as "integer" into a Kind.
// "bool", "int" and "enum" are accepted as aliases.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "boolean", "bool":
		return KindBoolean, nil
	case "integer", "int":
		return KindInteger, nil
	case "float":
		return KindFloat, nil
	case "string":
		return KindString, nil
	case "list":
		return KindList, nil
	case "symbol", "enum":
		return KindSymbol, nil
	case "duration":
		return KindDuration, nil
	}
	return 0, fmt.Errorf("%w: unknown kind %q", ErrInvalidDeclaration, name)
}

// UnmarshalText lets kinds appear as plain names in schema files.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// Symbol is the canonical value of a symbol variable: an enumeration-like token.
type Symbol string

func (s Symbol) String() string {
	return string(s)
}
