package cartitems

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tryanzu/cart/modules/cart"
	"gopkg.in/mgo.v2"
)

// Deps gives access to the databases a record store can live in.
type Deps interface {
	SQL() *sql.DB
	Mgo() *mgo.Database
}

// Open returns the record store configured by driver (postgres, sqlite or mongo).
func Open(d Deps, driver, table string) (cart.RecordStore, error) {
	if table == "" {
		table = cart.DefaultTable
	}
	switch driver {
	case "postgres", "sqlite":
		if d.SQL() == nil {
			return nil, fmt.Errorf("cartitems: %s driver without sql connection", driver)
		}
		return NewSQLStore(d.SQL(), Dialect(driver), table)
	case "mongo":
		if d.Mgo() == nil {
			return nil, fmt.Errorf("cartitems: mongo driver without database")
		}
		return NewMongoStore(d.Mgo(), table), nil
	default:
		return nil, fmt.Errorf("cartitems: unknown records driver %q", driver)
	}
}

// Prepare creates the table or indexes store needs.
func Prepare(ctx context.Context, store cart.RecordStore) error {
	switch s := store.(type) {
	case *SQLStore:
		return s.Migrate(ctx)
	case *MongoStore:
		return s.EnsureIndexes()
	}
	return nil
}
