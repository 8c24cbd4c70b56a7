package deps

import (
	"github.com/tryanzu/cart/modules/kv"
)

func IgniteRedis(container Deps) (Deps, error) {
	address, err := container.Config().String("kv.redis")
	if err != nil {
		return container, err
	}

	client, err := kv.OpenRedis(address)
	if err != nil {
		return container, err
	}

	container.KVProvider = client
	return container, nil
}
