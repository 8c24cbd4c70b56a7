package deps

import (
	"fmt"
)

// IgniteKV boots the kv store when sessions keep their cart server side.
// The shell boots it on its own through KVIgnitor.
func IgniteKV(container Deps) (Deps, error) {
	if container.Config().UString("session.store", "cookie") != "kv" {
		return container, nil
	}
	fn, err := KVIgnitor(container)
	if err != nil {
		return container, err
	}
	return fn(container)
}

// KVIgnitor picks the ignitor of the configured kv.driver.
func KVIgnitor(container Deps) (Ignitor, error) {
	switch driver := container.Config().UString("kv.driver", "bunt"); driver {
	case "bunt":
		return IgniteBuntDB, nil
	case "ledis":
		return IgniteLedisDB, nil
	case "redis":
		return IgniteRedis, nil
	default:
		return nil, fmt.Errorf("unknown kv driver %q", driver)
	}
}
