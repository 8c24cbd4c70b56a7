package cart

import (
	"context"
	"encoding/json"
	"fmt"
)

// sessionBackend keeps the whole cart as one JSON blob (id -> item) in the
// session. Writes are read-modify-write without locking.
type sessionBackend struct {
	store SessionStore
	key   string
}

func (b *sessionBackend) name() string {
	return "session"
}

func (b *sessionBackend) restore(ctx context.Context) (map[string]Item, error) {
	items := map[string]Item{}
	blob, found, err := b.store.Get(ctx, b.key)
	if err != nil {
		return nil, fmt.Errorf("restore: %w", err)
	}
	if !found || blob == "" {
		return items, nil
	}
	if err := json.Unmarshal([]byte(blob), &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", b.key, err)
	}
	return items, nil
}

func (b *sessionBackend) save(ctx context.Context, items map[string]Item) error {
	encoded, err := json.Marshal(items)
	if err != nil {
		return err
	}
	if err := b.store.Put(ctx, b.key, string(encoded)); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

func (b *sessionBackend) find(ctx context.Context, id string) (Item, bool, error) {
	items, err := b.restore(ctx)
	if err != nil {
		return Item{}, false, err
	}
	item, exists := items[id]
	return item, exists, nil
}

func (b *sessionBackend) add(ctx context.Context, item Item) error {
	items, err := b.restore(ctx)
	if err != nil {
		return err
	}
	if current, exists := items[item.ID]; exists {
		items[item.ID] = current.merge(item)
	} else {
		items[item.ID] = item
	}
	return b.save(ctx, items)
}

func (b *sessionBackend) remove(ctx context.Context, id string) error {
	items, err := b.restore(ctx)
	if err != nil {
		return err
	}
	if _, exists := items[id]; !exists {
		return nil
	}
	delete(items, id)
	return b.save(ctx, items)
}

func (b *sessionBackend) increase(ctx context.Context, id string, quantity int) error {
	return b.mutate(ctx, id, func(item *Item) {
		item.Quantity += quantity
	})
}

func (b *sessionBackend) decrease(ctx context.Context, id string, quantity int) error {
	return b.mutate(ctx, id, func(item *Item) {
		item.Quantity = clampQuantity(item.Quantity - quantity)
	})
}

// mutate applies fn to an existing item and saves; missing ids are left alone.
func (b *sessionBackend) mutate(ctx context.Context, id string, fn func(*Item)) error {
	items, err := b.restore(ctx)
	if err != nil {
		return err
	}
	item, exists := items[id]
	if !exists {
		return nil
	}
	fn(&item)
	items[id] = item
	return b.save(ctx, items)
}

func (b *sessionBackend) clear(ctx context.Context) error {
	return b.store.Forget(ctx, b.key)
}

func (b *sessionBackend) all(ctx context.Context) ([]Item, error) {
	items, err := b.restore(ctx)
	if err != nil {
		return nil, err
	}
	list := make([]Item, 0, len(items))
	for _, item := range items {
		list = append(list, item)
	}
	return sortItems(list), nil
}

// clampQuantity floors a decreased quantity at one; decreasing never removes.
func clampQuantity(q int) int {
	if q < 1 {
		return 1
	}
	return q
}
