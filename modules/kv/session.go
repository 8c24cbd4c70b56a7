package kv

import (
	"context"
	"time"

	"github.com/tryanzu/cart/modules/cart"
)

// Session is a cart.SessionStore kept in a kv Store under the client's
// session id. Every write refreshes the ttl.
type Session struct {
	Store Store
	ID    string
	TTL   time.Duration
}

var _ cart.SessionStore = Session{}

func (s Session) key(name string) string {
	return "session:" + s.ID + ":" + name
}

func (s Session) Get(ctx context.Context, key string) (string, bool, error) {
	return s.Store.Get(ctx, s.key(key))
}

func (s Session) Put(ctx context.Context, key, blob string) error {
	return s.Store.Set(ctx, s.key(key), blob, s.TTL)
}

func (s Session) Forget(ctx context.Context, key string) error {
	return s.Store.Del(ctx, s.key(key))
}
