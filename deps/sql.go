package deps

import (
	"database/sql"

	"github.com/tryanzu/cart/modules/cart"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// IgniteSQL opens the relational connection when records live in postgres
// or sqlite. The pq driver registers as "postgres", modernc as "sqlite".
func IgniteSQL(container Deps) (Deps, error) {
	driver := recordsDriver(container)
	if !needsRecords(container) || (driver != "postgres" && driver != "sqlite") {
		return container, nil
	}

	dsn := container.Config().UString("records.dsn", "file:cart.db?_pragma=busy_timeout(5000)")
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return container, err
	}
	if driver == "sqlite" {
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		log.Errorf("could not reach %s records database: %v", driver, err)
		return container, err
	}

	container.SQLProvider = db
	return container, nil
}

func recordsDriver(container Deps) string {
	if container.Config() == nil {
		return "sqlite"
	}
	return container.Config().UString("records.driver", "sqlite")
}

// needsRecords is false for session only carts, or when the driver is
// invalid and IgniteRecords will report it.
func needsRecords(container Deps) bool {
	if container.Config() == nil {
		return true
	}
	driver, err := cart.ParseDriver(container.Config().UString("cart.driver", string(cart.DefaultDriver)))
	return err == nil && driver != cart.SessionDriver
}
