package cart

import (
	"fmt"
	"strings"
)

// Driver selects which backends a Store reads and writes.
type Driver string

const (
	SessionDriver  Driver = "session"
	DatabaseDriver Driver = "database"
	BothDriver     Driver = "both"
)

const (
	DefaultDriver     = BothDriver
	DefaultSessionKey = "shopping_cart"
	DefaultTable      = "cart_items"
)

// ParseDriver accepts the configured driver name. Empty means the default.
func ParseDriver(name string) (Driver, error) {
	switch d := Driver(strings.ToLower(strings.TrimSpace(name))); d {
	case "":
		return DefaultDriver, nil
	case SessionDriver, DatabaseDriver, BothDriver:
		return d, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownDriver, name)
	}
}

func (d Driver) usesSession() bool {
	return d == SessionDriver || d == BothDriver
}

func (d Driver) usesRecords() bool {
	return d == DatabaseDriver || d == BothDriver
}

// Settings configure a Store.
type Settings struct {
	Driver     Driver
	SessionKey string
	Table      string
}

// DefaultSettings are used for any zero field.
func DefaultSettings() Settings {
	return Settings{
		Driver:     DefaultDriver,
		SessionKey: DefaultSessionKey,
		Table:      DefaultTable,
	}
}

func (s Settings) withDefaults() Settings {
	def := DefaultSettings()
	if s.Driver == "" {
		s.Driver = def.Driver
	}
	if s.SessionKey == "" {
		s.SessionKey = def.SessionKey
	}
	if s.Table == "" {
		s.Table = def.Table
	}
	return s
}
