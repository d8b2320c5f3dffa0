// FILE: lixenwraith/konf/env.go
package konf

import (
	"strings"
)

// loadEnv resolves every declared variable from env, then rejects unconsumed
// prefixed keys unless the registry tolerates them. Without a prefix there is
// no way to tell our keys from unrelated ones, so the scan is skipped.
func (c *Config) loadEnv(env map[string]string) error {
	prefix := c.registry.EffectivePrefix()
	consumed := make(map[string]bool)

	for _, v := range c.registry.Variables() {
		key := v.EnvKey(prefix)
		raw, ok := env[key]
		if !ok {
			continue
		}
		if err := c.decode(v.name, raw, SourceEnv); err != nil {
			return err
		}
		consumed[key] = true
		c.logger.Debug("resolved variable from environment", "variable", v.name, "key", key)
	}

	if prefix == "" || c.registry.ignoreUnknownEnv {
		return nil
	}

	for _, key := range sortedKeys(env) {
		if strings.HasPrefix(key, prefix) && !consumed[key] {
			return newError(ErrUnknownEnv, "",
				"all environment variables starting with `%s` must be valid configuration variables, but `%s` does not match any such variable",
				prefix, key)
		}
	}
	return nil
}

// LookupEnv returns the environment key for name and whether env holds it.
func (c *Config) LookupEnv(name string, env map[string]string) (string, bool, error) {
	v, err := c.registry.Variable(name)
	if err != nil {
		return "", false, err
	}
	key := v.EnvKey(c.registry.EffectivePrefix())
	_, ok := env[key]
	return key, ok, nil
}

// ParseEnviron converts an environ slice (["KEY=VALUE", ...]) into a map.
// Values may contain "="; entries without "=" are skipped.
func ParseEnviron(environ []string) map[string]string {
	result := make(map[string]string, len(environ))
	for _, entry := range environ {
		key, value, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		result[key] = value
	}
	return result
}
