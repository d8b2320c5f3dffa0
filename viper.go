// FILE: lixenwraith/konf/viper.go
package konf

import (
	"sort"

	"github.com/spf13/viper"
)

// LoadViper sets every key known to v. Viper lower-cases keys, so the
// declared names must be lower-case to match.
func (c *Config) LoadViper(v *viper.Viper) error {
	keys := v.AllKeys()
	sort.Strings(keys)

	c.logger.Debug("loading viper keys", "count", len(keys))
	for _, key := range keys {
		if err := c.set(key, normalizeValue(v.Get(key)), SourceFile); err != nil {
			return err
		}
	}
	return nil
}
