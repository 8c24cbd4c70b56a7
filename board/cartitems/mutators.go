package cartitems

import (
	"context"
	"fmt"

	"github.com/tryanzu/cart/modules/cart"
)

// Upsert merges row into the stored line of the same item, or inserts it,
// in a single statement. Concurrent first adds of one item meet on the
// scope index and both quantities land on the same row.
func (s *SQLStore) Upsert(ctx context.Context, row cart.Row) error {
	options, err := encodeOptions(row.Options)
	if err != nil {
		return fmt.Errorf("encode options: %w", err)
	}

	query := s.rebind("INSERT INTO " + s.table + " (" + columns + ") VALUES (?, ?, ?, ?, ?, ?, ?)" +
		" ON CONFLICT " + s.conflictTarget() + " DO UPDATE SET" +
		" quantity = " + s.table + ".quantity + excluded.quantity," +
		" name = excluded.name, price = excluded.price, options = excluded.options," +
		" updated_at = CURRENT_TIMESTAMP")
	_, err = s.db.ExecContext(ctx, query,
		nullable(row.Scope.SessionID),
		nullable(row.Scope.UserID),
		row.ItemID,
		row.Name,
		row.Price,
		row.Quantity,
		options,
	)
	if err != nil {
		return fmt.Errorf("upsert %s: %w", row.ItemID, err)
	}
	return nil
}

// IncrementQuantity adds delta to the stored quantity.
func (s *SQLStore) IncrementQuantity(ctx context.Context, scope cart.Scope, itemID string, delta int) (bool, error) {
	where, args := itemWhere(scope, itemID)
	query := s.rebind("UPDATE " + s.table + " SET quantity = quantity + ?, updated_at = CURRENT_TIMESTAMP WHERE " + where)
	return s.exec(ctx, query, append([]interface{}{delta}, args...)...)
}

// DecrementQuantity subtracts delta, flooring the result at 1, in a single statement.
func (s *SQLStore) DecrementQuantity(ctx context.Context, scope cart.Scope, itemID string, delta int) (bool, error) {
	where, args := itemWhere(scope, itemID)
	query := s.rebind("UPDATE " + s.table + " SET quantity = CASE WHEN quantity - ? < 1 THEN 1 ELSE quantity - ? END, updated_at = CURRENT_TIMESTAMP WHERE " + where)
	return s.exec(ctx, query, append([]interface{}{delta, delta}, args...)...)
}

// DeleteOne removes itemID from scope.
func (s *SQLStore) DeleteOne(ctx context.Context, scope cart.Scope, itemID string) error {
	where, args := itemWhere(scope, itemID)
	_, err := s.exec(ctx, s.rebind("DELETE FROM "+s.table+" WHERE "+where), args...)
	return err
}

// DeleteAll removes every row of scope.
func (s *SQLStore) DeleteAll(ctx context.Context, scope cart.Scope) error {
	where, args := scopeWhere(scope)
	_, err := s.exec(ctx, s.rebind("DELETE FROM "+s.table+" WHERE "+where), args...)
	return err
}

func (s *SQLStore) exec(ctx context.Context, query string, args ...interface{}) (bool, error) {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
