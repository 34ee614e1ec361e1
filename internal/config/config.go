package config

import (
	"fmt"

	goconfig "github.com/escalopa/config-go"
)

var cfg = goconfig.New()

// Get ...
func Get(key string) string {
	return cfg.Get(key)
}

// GetOrDefault ...
func GetOrDefault(key, def string) string {
	env := cfg.Get(key)
	if env != "" {
		return env
	}
	return def
}

// Require returns the values of the given keys, failing on the first
// missing one. The server refuses to start without these.
func Require(keys ...string) ([]string, error) {
	values := make([]string, len(keys))
	for i, key := range keys {
		v := cfg.Get(key)
		if v == "" {
			return nil, fmt.Errorf("missing required config: %s", key)
		}
		values[i] = v
	}
	return values, nil
}
