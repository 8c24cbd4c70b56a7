package cart

import (
	"context"
)

type recordBackend struct {
	store RecordStore
	scope Scope
}

func (b *recordBackend) name() string {
	return "records"
}

func (b *recordBackend) find(ctx context.Context, id string) (Item, bool, error) {
	row, found, err := b.store.FindOne(ctx, b.scope, id)
	if err != nil || !found {
		return Item{}, false, err
	}
	return row.Item(), true, nil
}

func (b *recordBackend) add(ctx context.Context, item Item) error {
	return b.store.Upsert(ctx, Row{
		Scope:    b.scope,
		ItemID:   item.ID,
		Name:     item.Name,
		Price:    item.Price,
		Quantity: item.Quantity,
		Options:  item.Options.clone(),
	})
}

func (b *recordBackend) remove(ctx context.Context, id string) error {
	return b.store.DeleteOne(ctx, b.scope, id)
}

func (b *recordBackend) increase(ctx context.Context, id string, quantity int) error {
	_, err := b.store.IncrementQuantity(ctx, b.scope, id, quantity)
	return err
}

func (b *recordBackend) decrease(ctx context.Context, id string, quantity int) error {
	_, err := b.store.DecrementQuantity(ctx, b.scope, id, quantity)
	return err
}

func (b *recordBackend) clear(ctx context.Context) error {
	return b.store.DeleteAll(ctx, b.scope)
}

func (b *recordBackend) all(ctx context.Context) ([]Item, error) {
	rows, err := b.store.FindAll(ctx, b.scope)
	if err != nil {
		return nil, err
	}
	list := make([]Item, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.Item())
	}
	return sortItems(list), nil
}
