// File: lixenwraith/konf/env_test.go
package konf_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/lixenwraith/konf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envRegistry(t *testing.T, opts ...konf.RegistryOption) *konf.Registry {
	t.Helper()
	reg := konf.NewRegistry(opts...)
	require.NoError(t, reg.StringVar("greeting"))
	require.NoError(t, reg.IntegerVar("level", konf.Default(0)))
	require.NoError(t, reg.BooleanVar("enabled", konf.Default(false)))
	require.NoError(t, reg.ListVar("phrases", konf.Separator(";")))
	require.NoError(t, reg.StringVar("server.host", konf.Default("localhost")))
	return reg
}

func TestEnvironmentVariables(t *testing.T) {
	t.Run("Basic Environment Loading", func(t *testing.T) {
		env := map[string]string{
			"TEST_GREETING": "hello",
			"TEST_LEVEL":    "42",
			"TEST_ENABLED":  "true",
			"TEST_PHRASES":  "hello, world!;goodbye!;yolo!",
		}

		cfg, err := konf.NewWithEnv(envRegistry(t, konf.WithEnvPrefix("test")), env)
		require.NoError(t, err)

		greeting, _ := cfg.String("greeting")
		assert.Equal(t, "hello", greeting)

		level, _ := cfg.Int64("level")
		assert.Equal(t, int64(42), level)

		enabled, _ := cfg.Bool("enabled")
		assert.True(t, enabled)

		phrases, _ := cfg.Strings("phrases")
		assert.Equal(t, []string{"hello, world!", "goodbye!", "yolo!"}, phrases)

		src, _ := cfg.Source("level")
		assert.Equal(t, konf.SourceEnv, src)
	})

	t.Run("Nested Names", func(t *testing.T) {
		env := map[string]string{"TEST_SERVER_HOST": "example.com"}
		cfg, err := konf.NewWithEnv(envRegistry(t, konf.WithEnvPrefix("test")), env)
		require.NoError(t, err)

		host, _ := cfg.String("server.host")
		assert.Equal(t, "example.com", host)
	})

	t.Run("Unknown Prefixed Variable", func(t *testing.T) {
		env := map[string]string{"TEST_MISSING": "hello"}

		cfg, err := konf.NewWithEnv(envRegistry(t, konf.WithEnvPrefix("test")), env)
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.True(t, errors.Is(err, konf.ErrUnknownEnv))
		assert.EqualError(t, err, "all environment variables starting with `TEST_` must be valid configuration variables, but `TEST_MISSING` does not match any such variable")
	})

	t.Run("First Unknown In Sorted Order", func(t *testing.T) {
		env := map[string]string{"TEST_ZZZ": "1", "TEST_AAA": "1", "TEST_LEVEL": "3"}
		_, err := konf.NewWithEnv(envRegistry(t, konf.WithEnvPrefix("test")), env)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "`TEST_AAA`")
	})

	t.Run("Ignore Unknown Variables", func(t *testing.T) {
		env := map[string]string{"TEST_MISSING": "hello", "TEST_LEVEL": "7"}
		cfg, err := konf.NewWithEnv(envRegistry(t, konf.WithEnvPrefix("test"), konf.WithIgnoreUnknownEnv(true)), env)
		require.NoError(t, err)
		level, _ := cfg.Int64("level")
		assert.Equal(t, int64(7), level)
	})

	t.Run("No Prefix Skips Unknown Scan", func(t *testing.T) {
		env := map[string]string{"LEVEL": "5", "PATH": "/usr/bin", "HOME": "/root"}
		cfg, err := konf.NewWithEnv(envRegistry(t), env)
		require.NoError(t, err)
		level, _ := cfg.Int64("level")
		assert.Equal(t, int64(5), level)
	})

	t.Run("Other Prefixes Ignored", func(t *testing.T) {
		env := map[string]string{"OTHER_LEVEL": "5", "TESTING": "x"}
		cfg, err := konf.NewWithEnv(envRegistry(t, konf.WithEnvPrefix("test")), env)
		require.NoError(t, err)
		level, _ := cfg.Int64("level")
		assert.Equal(t, int64(0), level)
	})

	t.Run("Decode Failure Names Variable", func(t *testing.T) {
		env := map[string]string{"TEST_LEVEL": "XXX"}
		_, err := konf.NewWithEnv(envRegistry(t, konf.WithEnvPrefix("test")), env)
		require.Error(t, err)
		assert.EqualError(t, err, `"XXX" is not an integer`)

		var ce *konf.ConfigError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, "level", ce.Variable)
	})

	t.Run("Empty Value Is Decoded", func(t *testing.T) {
		env := map[string]string{"TEST_GREETING": ""}
		cfg, err := konf.NewWithEnv(envRegistry(t, konf.WithEnvPrefix("test")), env)
		require.NoError(t, err)
		assert.True(t, cfg.IsSet("greeting"))
		greeting, _ := cfg.Get("greeting")
		assert.Equal(t, "", greeting)
	})

	t.Run("Process Environment", func(t *testing.T) {
		t.Setenv("KONFTEST_LEVEL", "12")
		cfg, err := konf.New(envRegistry(t, konf.WithEnvPrefix("konftest")))
		require.NoError(t, err)
		level, _ := cfg.Int64("level")
		assert.Equal(t, int64(12), level)
	})
}

func TestLookupEnv(t *testing.T) {
	cfg, err := konf.NewWithEnv(envRegistry(t, konf.WithEnvPrefix("test")), nil)
	require.NoError(t, err)

	key, ok, err := cfg.LookupEnv("server.host", map[string]string{"TEST_SERVER_HOST": "x"})
	require.NoError(t, err)
	assert.Equal(t, "TEST_SERVER_HOST", key)
	assert.True(t, ok)

	_, _, err = cfg.LookupEnv("missing", nil)
	assert.True(t, errors.Is(err, konf.ErrUnknownVariable))
}

func TestParseEnviron(t *testing.T) {
	env := konf.ParseEnviron([]string{"A=1", "B=x=y", "C=", "NOEQUALS"})
	assert.Equal(t, map[string]string{"A": "1", "B": "x=y", "C": ""}, env)
}

func TestEnvKeyProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("env key is upper-case prefix plus name", prop.ForAll(
		func(prefix, name string) bool {
			v, err := konf.NewVariable(name, konf.KindString)
			if err != nil {
				return false
			}
			reg := konf.NewRegistry(konf.WithEnvPrefix(prefix))
			key := v.EnvKey(reg.EffectivePrefix())
			return key == strings.ToUpper(prefix)+"_"+strings.ToUpper(name) && key == strings.ToUpper(key)
		},
		gen.Identifier(), gen.Identifier(),
	))

	properties.Property("declared values round-trip through the environment", prop.ForAll(
		func(level int64, greeting string) bool {
			reg := konf.NewRegistry(konf.WithEnvPrefix("prop"))
			reg.MustRegister("level", konf.KindInteger)
			reg.MustRegister("greeting", konf.KindString)

			cfg, err := konf.NewWithEnv(reg, map[string]string{
				"PROP_LEVEL":    fmt.Sprint(level),
				"PROP_GREETING": greeting,
			})
			if err != nil {
				return false
			}
			gotLevel, _ := cfg.Int64("level")
			gotGreeting, _ := cfg.String("greeting")
			return gotLevel == level && gotGreeting == greeting
		},
		gen.Int64(), gen.AnyString(),
	))

	properties.TestingRun(t)
}
