// Package kv keeps small expiring values, the server side of kv sessions.
package kv

import (
	"context"
	"fmt"
	"time"
)

// Store is an expiring key/value backend.
type Store interface {

	// Get returns the value of key, found is false when missing or expired.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set stores value under key. A zero ttl keeps it forever.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Del removes key. Missing keys are not an error.
	Del(ctx context.Context, key string) error

	Close() error
}

// Options configures Open.
type Options struct {
	Driver string // bunt, ledis or redis
	Path   string // bunt file or ledis data dir
	Addr   string // redis address
}

// Open boots the store named by o.Driver.
func Open(o Options) (Store, error) {
	switch o.Driver {
	case "", "bunt":
		path := o.Path
		if path == "" {
			path = ":memory:"
		}
		return OpenBunt(path)
	case "ledis":
		return OpenLedis(o.Path)
	case "redis":
		return OpenRedis(o.Addr)
	default:
		return nil, fmt.Errorf("kv: unknown driver %q", o.Driver)
	}
}
