package deps

import (
	"github.com/tryanzu/cart/modules/kv"
)

func IgniteLedisDB(container Deps) (Deps, error) {
	db, err := kv.OpenLedis(container.Config().UString("kv.path", "var"))
	if err != nil {
		return container, err
	}

	container.KVProvider = db
	return container, nil
}
