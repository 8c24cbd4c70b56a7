package cart

import (
	"context"
)

// SessionStore is the keyed blob storage of one client session.
type SessionStore interface {

	// Get returns the blob stored under key, found is false when missing.
	Get(ctx context.Context, key string) (blob string, found bool, err error)

	// Put replaces the blob stored under key.
	Put(ctx context.Context, key, blob string) error

	// Forget drops key from the session.
	Forget(ctx context.Context, key string) error
}

// Row is a persisted cart line.
type Row struct {
	Scope    Scope
	ItemID   string
	Name     string
	Price    float64
	Quantity int
	Options  Options
}

// Item converts a row back into a cart line.
func (r Row) Item() Item {
	return Item{
		ID:       r.ItemID,
		Name:     r.Name,
		Price:    r.Price,
		Quantity: r.Quantity,
		Options:  r.Options.clone(),
	}
}

// RecordStore persists rows keyed by (scope, item id). Every lookup filters
// on both scope columns so rows never cross owners.
type RecordStore interface {
	FindOne(ctx context.Context, scope Scope, itemID string) (Row, bool, error)
	FindAll(ctx context.Context, scope Scope) ([]Row, error)

	// Upsert inserts the row, or atomically adds its quantity to the stored
	// one and overwrites name, price and options.
	Upsert(ctx context.Context, row Row) error

	// IncrementQuantity and DecrementQuantity report whether a row matched.
	// Decrements never go below 1.
	IncrementQuantity(ctx context.Context, scope Scope, itemID string, delta int) (bool, error)
	DecrementQuantity(ctx context.Context, scope Scope, itemID string, delta int) (bool, error)

	DeleteOne(ctx context.Context, scope Scope, itemID string) error
	DeleteAll(ctx context.Context, scope Scope) error
}

// backend is what a Store dispatches every operation to.
type backend interface {
	name() string
	find(ctx context.Context, id string) (Item, bool, error)
	add(ctx context.Context, item Item) error
	remove(ctx context.Context, id string) error
	increase(ctx context.Context, id string, quantity int) error
	decrease(ctx context.Context, id string, quantity int) error
	clear(ctx context.Context) error
	all(ctx context.Context) ([]Item, error)
}
