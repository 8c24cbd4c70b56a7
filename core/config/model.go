package config

import (
	"github.com/tryanzu/cart/modules/cart"
)

// Cart reads the runtime "cart" section over base. Unset keys keep the
// value of base.
func (c *Config) Cart(base cart.Settings) cart.Settings {
	section, ok := c.Copy()["cart"].(map[string]interface{})
	if !ok {
		return base
	}
	if v, ok := section["driver"].(string); ok && v != "" {
		base.Driver = cart.Driver(v)
	}
	if v, ok := section["session_key"].(string); ok && v != "" {
		base.SessionKey = v
	}
	if v, ok := section["table"].(string); ok && v != "" {
		base.Table = v
	}
	return base
}
