// FILE: lixenwraith/konf/io_test.go
package konf

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ioRegistry(t *testing.T) *Registry {
	t.Helper()
	reg := NewRegistry(WithEnvPrefix("app"))
	require.NoError(t, reg.StringVar("server.host", Default("localhost")))
	require.NoError(t, reg.IntegerVar("server.port", Default(8080)))
	require.NoError(t, reg.SymbolVar("mode", Default("fast")))
	require.NoError(t, reg.ListVar("tags", Separator(";")))
	require.NoError(t, reg.DurationVar("timeout", Default("500ms")))
	require.NoError(t, reg.BooleanVar("debug", BooleanTokens([]string{"yes"}, []string{"no"})))
	require.NoError(t, reg.StringVar("unset"))
	return reg
}

func TestDump(t *testing.T) {
	cfg, err := NewWithEnv(ioRegistry(t), nil)
	require.NoError(t, err)
	require.NoError(t, cfg.Set("tags", []string{"a", "b"}))

	var buf bytes.Buffer
	require.NoError(t, cfg.Dump(&buf))
	out := buf.String()

	assert.Contains(t, out, `mode = "fast"`)
	assert.Contains(t, out, `tags = ["a", "b"]`)
	assert.Contains(t, out, "[server]")
	assert.Contains(t, out, `host = "localhost"`)
	assert.Contains(t, out, "port = 8080")
	assert.NotContains(t, out, "unset")
}

func TestSaveRoundTrip(t *testing.T) {
	cfg, err := NewWithEnv(ioRegistry(t), nil)
	require.NoError(t, err)
	require.NoError(t, cfg.Set("server.port", 9090))
	require.NoError(t, cfg.Set("tags", "x;y"))
	require.NoError(t, cfg.Set("debug", true))

	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	require.NoError(t, cfg.Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")

	loaded, err := NewWithEnv(ioRegistry(t), nil)
	require.NoError(t, err)
	require.NoError(t, loaded.LoadFile(path, ""))
	assert.Equal(t, cfg.Snapshot(), loaded.Snapshot())
}

func TestExportEnv(t *testing.T) {
	cfg, err := NewWithEnv(ioRegistry(t), map[string]string{"APP_SERVER_PORT": "9090"})
	require.NoError(t, err)
	require.NoError(t, cfg.Set("tags", []string{"a", "b"}))
	require.NoError(t, cfg.Set("debug", false))
	require.NoError(t, cfg.Set("timeout", 1.5))
	require.NoError(t, cfg.Set("unset", nil))

	exports, err := cfg.ExportEnv()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"APP_SERVER_PORT": "9090",
		"APP_TAGS":        "a;b",
		"APP_DEBUG":       "no",
		"APP_TIMEOUT":     "1.5",
	}, exports)

	t.Run("RoundTrip", func(t *testing.T) {
		again, err := NewWithEnv(ioRegistry(t), exports)
		require.NoError(t, err)
		assert.Equal(t, cfg.Snapshot(), again.Snapshot())
	})
}
