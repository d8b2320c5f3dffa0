// FILE: lixenwraith/konf/convenience_test.go
package konf

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuick(t *testing.T) {
	type quickDefaults struct {
		Host    string        `konf:"host"`
		Port    int           `konf:"port"`
		Timeout time.Duration `konf:"timeout"`
	}

	t.Run("EnvAndFile", func(t *testing.T) {
		t.Setenv("QUICKTEST_PORT", "9999")
		file := writeFile(t, "quick.toml", `host = "file-host"`)

		cfg, err := Quick(quickDefaults{Host: "localhost", Port: 8080, Timeout: time.Minute}, "quicktest", file)
		require.NoError(t, err)

		host, _ := cfg.String("host")
		assert.Equal(t, "file-host", host)
		port, _ := cfg.Int64("port")
		assert.Equal(t, int64(9999), port)
		timeout, _ := cfg.Duration("timeout")
		assert.Equal(t, time.Minute, timeout)
	})

	t.Run("MissingFile", func(t *testing.T) {
		cfg, err := Quick(quickDefaults{Port: 1}, "quicktest2", filepath.Join(t.TempDir(), "nope.toml"))
		assert.True(t, errors.Is(err, ErrConfigNotFound))
		require.NotNil(t, cfg)

		assert.NotPanics(t, func() {
			MustQuick(quickDefaults{Port: 1}, "quicktest3", filepath.Join(t.TempDir(), "nope.toml"))
		})
	})

	t.Run("BadDefaults", func(t *testing.T) {
		_, err := Quick(42, "quicktest4", "")
		assert.True(t, errors.Is(err, ErrInvalidDeclaration))
		assert.Panics(t, func() { MustQuick(42, "quicktest5", "") })
	})
}

func TestFlags(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.IntegerVar("server.port", Default(8080), Describe("listen port")))
	require.NoError(t, reg.ListVar("tags", Separator(";")))
	require.NoError(t, reg.DurationVar("timeout", Default("1m")))
	require.NoError(t, reg.BooleanVar("debug"))
	cfg, err := NewWithEnv(reg, nil)
	require.NoError(t, err)

	fs := cfg.GenerateFlags("test")

	port := fs.Lookup("server.port")
	require.NotNil(t, port)
	assert.Equal(t, "8080", port.DefValue)
	assert.Equal(t, "listen port (integer)", port.Usage)

	timeout := fs.Lookup("timeout")
	require.NotNil(t, timeout)
	assert.Equal(t, "60", timeout.DefValue)

	require.NoError(t, fs.Parse([]string{"-server.port=9090", "-tags=a;b", "-debug=1"}))
	require.NoError(t, cfg.BindFlags(fs))

	p, _ := cfg.Int64("server.port")
	assert.Equal(t, int64(9090), p)
	tags, _ := cfg.Strings("tags")
	assert.Equal(t, []string{"a", "b"}, tags)
	debug, _ := cfg.Bool("debug")
	assert.True(t, debug)

	src, _ := cfg.Source("server.port")
	assert.Equal(t, SourceCLI, src)
	src, _ = cfg.Source("timeout")
	assert.Equal(t, SourceDefault, src, "unvisited flags are not bound")

	t.Run("BareBoolean", func(t *testing.T) {
		reg := NewRegistry()
		require.NoError(t, reg.BooleanVar("debug"))
		require.NoError(t, reg.BooleanVar("verbose", BooleanTokens([]string{"yes"}, []string{"no"})))
		require.NoError(t, reg.BooleanVar("quiet", Default(true)))
		cfg, err := NewWithEnv(reg, nil)
		require.NoError(t, err)

		fs := cfg.GenerateFlags("test")
		assert.Equal(t, "true", fs.Lookup("quiet").DefValue)
		require.NoError(t, fs.Parse([]string{"-debug", "-verbose", "-quiet=false"}))
		require.NoError(t, cfg.BindFlags(fs))

		debug, _ := cfg.Bool("debug")
		assert.True(t, debug)
		verbose, _ := cfg.Bool("verbose")
		assert.True(t, verbose, "bare flag maps to the variable's true token")
		quiet, _ := cfg.Bool("quiet")
		assert.False(t, quiet)
	})

	t.Run("BindError", func(t *testing.T) {
		fs := cfg.GenerateFlags("test")
		require.NoError(t, fs.Parse([]string{"-debug=maybe"}))
		err := cfg.BindFlags(fs)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "flag debug")
		assert.True(t, errors.Is(err, ErrCast))
	})
}

func TestDebug(t *testing.T) {
	reg := NewRegistry(WithEnvPrefix("dbg"))
	require.NoError(t, reg.StringVar("greeting", Default("hi")))
	require.NoError(t, reg.IntegerVar("level"))
	cfg, err := NewWithEnv(reg, map[string]string{"DBG_LEVEL": "3"})
	require.NoError(t, err)

	out := cfg.Debug()
	assert.Contains(t, out, "Env prefix: DBG_")
	assert.Contains(t, out, "greeting (string)")
	assert.Contains(t, out, `Current: "hi"`)
	assert.Contains(t, out, "Source: env")
}

func TestClone(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.ListVar("tags"))
	require.NoError(t, reg.IntegerVar("level"))
	cfg, err := NewWithEnv(reg, nil)
	require.NoError(t, err)
	require.NoError(t, cfg.Set("tags", []string{"a"}))
	require.NoError(t, cfg.Set("level", 1))

	clone := cfg.Clone()
	assert.Equal(t, cfg.Snapshot(), clone.Snapshot())

	require.NoError(t, clone.Set("level", 2))
	level, _ := cfg.Int64("level")
	assert.Equal(t, int64(1), level)

	list, _ := clone.List("tags")
	list[0] = "mutated"
	orig, _ := cfg.List("tags")
	assert.Equal(t, []any{"a"}, orig)

	src, _ := clone.Source("level")
	assert.Equal(t, SourceSet, src)
}
