package deps

import (
	"database/sql"

	"github.com/getsentry/raven-go"
	"github.com/olebedev/config"
	"github.com/op/go-logging"
	"github.com/tryanzu/cart/modules/cart"
	"github.com/tryanzu/cart/modules/kv"
	"gopkg.in/mgo.v2"
)

type Deps struct {
	ConfigProvider          *config.Config
	LoggerProvider          *logging.Logger
	SQLProvider             *sql.DB
	DatabaseSessionProvider *mgo.Session
	DatabaseProvider        *mgo.Database
	RecordsProvider         cart.RecordStore
	KVProvider              kv.Store
	SentryProvider          *raven.Client
}

func (d Deps) Config() *config.Config {
	return d.ConfigProvider
}

func (d Deps) Log() *logging.Logger {
	return d.LoggerProvider
}

func (d Deps) SQL() *sql.DB {
	return d.SQLProvider
}

func (d Deps) Mgo() *mgo.Database {
	return d.DatabaseProvider
}

// Records is the configured cart row storage.
func (d Deps) Records() cart.RecordStore {
	return d.RecordsProvider
}

func (d Deps) KV() kv.Store {
	return d.KVProvider
}

func (d Deps) Sentry() *raven.Client {
	return d.SentryProvider
}

// Close releases every opened connection.
func (d Deps) Close() {
	if d.SQLProvider != nil {
		d.SQLProvider.Close()
	}
	if d.DatabaseSessionProvider != nil {
		d.DatabaseSessionProvider.Close()
	}
	if d.KVProvider != nil {
		d.KVProvider.Close()
	}
}
