package deps

import (
	"github.com/tryanzu/cart/board/cartitems"
	"github.com/tryanzu/cart/modules/cart"
)

// IgniteRecords binds the cart row storage to the opened database.
// Drivers that never touch records skip it.
func IgniteRecords(container Deps) (Deps, error) {
	driver, err := cart.ParseDriver(container.Config().UString("cart.driver", string(cart.DefaultDriver)))
	if err != nil {
		return container, err
	}
	if driver == cart.SessionDriver {
		return container, nil
	}

	table := container.Config().UString("cart.table", cart.DefaultTable)
	store, err := cartitems.Open(container, recordsDriver(container), table)
	if err != nil {
		return container, err
	}

	container.RecordsProvider = store
	return container, nil
}
