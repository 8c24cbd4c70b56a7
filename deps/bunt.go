package deps

import (
	"github.com/tryanzu/cart/modules/kv"
)

func IgniteBuntDB(container Deps) (Deps, error) {
	path := container.Config().UString("kv.path", "cache.db")
	db, err := kv.OpenBunt(path)
	if err != nil {
		return container, err
	}

	container.KVProvider = db
	return container, nil
}
