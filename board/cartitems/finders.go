package cartitems

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tryanzu/cart/modules/cart"
)

const columns = "session_id, user_id, item_id, name, price, quantity, options"

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRow(sc rowScanner) (cart.Row, error) {
	var (
		row       cart.Row
		sessionID sql.NullString
		userID    sql.NullString
		options   string
	)
	if err := sc.Scan(&sessionID, &userID, &row.ItemID, &row.Name, &row.Price, &row.Quantity, &options); err != nil {
		return row, err
	}
	row.Scope = cart.Scope{SessionID: sessionID.String, UserID: userID.String}

	var err error
	row.Options, err = decodeOptions(options)
	if err != nil {
		return row, fmt.Errorf("decode options of %s: %w", row.ItemID, err)
	}
	return row, nil
}

// FindOne gets the row of itemID within scope.
func (s *SQLStore) FindOne(ctx context.Context, scope cart.Scope, itemID string) (cart.Row, bool, error) {
	where, args := itemWhere(scope, itemID)
	query := s.rebind("SELECT " + columns + " FROM " + s.table + " WHERE " + where)

	row, err := scanRow(s.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return cart.Row{}, false, nil
	}
	if err != nil {
		return cart.Row{}, false, err
	}
	return row, true, nil
}

// FindAll lists the rows of scope ordered by item id.
func (s *SQLStore) FindAll(ctx context.Context, scope cart.Scope) ([]cart.Row, error) {
	where, args := scopeWhere(scope)
	query := s.rebind("SELECT " + columns + " FROM " + s.table + " WHERE " + where + " ORDER BY item_id")

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []cart.Row
	for rows.Next() {
		row, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}
