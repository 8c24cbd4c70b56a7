package config

import (
	"io"

	"github.com/BurntSushi/toml"
)

// Dump writes the current runtime config as TOML.
func (c *Config) Dump(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c.Copy())
}
