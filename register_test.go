// FILE: lixenwraith/konf/register_test.go
package konf

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serverDefaults struct {
	Host    string        `konf:"host" desc:"listen address"`
	Port    int           `konf:"port,required" validate:"gte=1,lte=65535"`
	Timeout time.Duration `konf:"timeout"`
}

type appDefaults struct {
	Server   serverDefaults `konf:"server"`
	Mode     Symbol         `konf:"mode"`
	Ratio    float32        `konf:"ratio"`
	Debug    bool
	Tags     []string `konf:"tags" sep:";"`
	Ports    []int    `konf:"ports"`
	Internal string   `konf:"-"`
	Cache    *serverDefaults
	hidden   int
}

func TestRegisterStruct(t *testing.T) {
	defaults := appDefaults{
		Server: serverDefaults{Host: "localhost", Port: 8080, Timeout: 90 * time.Second},
		Mode:   "fast",
		Ratio:  0.5,
		Tags:   []string{"a", "b"},
	}

	reg := NewRegistry()
	require.NoError(t, reg.RegisterStruct("", &defaults))

	expected := map[string]struct {
		kind Kind
		def  any
	}{
		"server.host":    {KindString, "localhost"},
		"server.port":    {KindInteger, int64(8080)},
		"server.timeout": {KindDuration, int64(90)},
		"mode":           {KindSymbol, Symbol("fast")},
		"ratio":          {KindFloat, 0.5},
		"debug":          {KindBoolean, false},
		"tags":           {KindList, []any{"a", "b"}},
		"ports":          {KindList, []any{}},
	}

	assert.Equal(t, len(expected), reg.Len())
	for name, want := range expected {
		v, err := reg.Variable(name)
		require.NoError(t, err, name)
		assert.Equal(t, want.kind, v.Kind(), name)
		assert.Equal(t, want.def, v.Default(), name)
	}

	t.Run("Tags", func(t *testing.T) {
		host, _ := reg.Variable("server.host")
		assert.Equal(t, "listen address", host.Description())

		port, _ := reg.Variable("server.port")
		assert.True(t, port.Required())
		assert.False(t, port.Valid(70000))

		tags, _ := reg.Variable("tags")
		assert.Equal(t, ";", tags.Options().Separator)

		ports, _ := reg.Variable("ports")
		assert.Equal(t, KindInteger, ports.Options().Items)

		assert.False(t, reg.Has("internal"))
		assert.False(t, reg.Has("hidden"))
		assert.False(t, reg.Has("cache.host"), "nil struct pointers are skipped")
	})
}

func TestRegisterStructPrefix(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.RegisterStruct("http", serverDefaults{Port: 80}))
	assert.True(t, reg.Has("http.port"))
	assert.True(t, reg.Has("http.host"))
}

func TestRegisterStructErrors(t *testing.T) {
	t.Run("NotAStruct", func(t *testing.T) {
		err := NewRegistry().RegisterStruct("", 42)
		assert.True(t, errors.Is(err, ErrInvalidDeclaration))
	})

	t.Run("NilPointer", func(t *testing.T) {
		var d *serverDefaults
		err := NewRegistry().RegisterStruct("", d)
		assert.True(t, errors.Is(err, ErrInvalidDeclaration))
	})

	t.Run("UnsupportedField", func(t *testing.T) {
		type bad struct {
			Name  string
			Flags map[string]bool
		}
		reg := NewRegistry()
		err := reg.RegisterStruct("", bad{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidDeclaration))
		assert.Contains(t, err.Error(), "flags")
		assert.True(t, reg.Has("name"), "supported fields are still declared")
	})
}
