package deps

import (
	"os"
	"path/filepath"

	"github.com/olebedev/config"
)

var (
	// ENV is the running environment (development, production...).
	ENV string
	// AppSecret signs session cookies and JWTs.
	AppSecret string
	// EnvFile is the infrastructure config location, ENV_FILE overrides it.
	EnvFile = "./env.json"
)

// Defaults lists every known key so environment variables can override
// them even when the env file leaves them out (RECORDS_DSN, KV_DRIVER...).
const Defaults = `{
	"application": {"environment": "development", "secret": ""},
	"http": {"bind": ":3200"},
	"log": {"level": "DEBUG"},
	"sentry": {"dsn": ""},
	"cart": {"driver": "both", "session_key": "shopping_cart", "table": "cart_items"},
	"records": {"driver": "sqlite", "dsn": "file:cart.db?_pragma=busy_timeout(5000)"},
	"mongo": {"url": "mongodb://localhost:27017", "name": "cart"},
	"session": {"store": "cookie", "name": "session", "secret": "", "redis": "localhost:6379"},
	"kv": {"driver": "bunt", "path": "cache.db", "redis": "localhost:6379", "ttl": 604800}
}`

// IgniteConfig parses the env file (json or yaml) over the defaults and
// applies environment variable overrides.
func IgniteConfig(d Deps) (Deps, error) {
	if f := os.Getenv("ENV_FILE"); f != "" {
		EnvFile = f
	}

	conf, err := Load(EnvFile)
	if err != nil {
		return d, err
	}

	ENV = conf.UString("application.environment", "development")
	AppSecret = conf.UString("application.secret", "")
	d.ConfigProvider = conf
	return d, nil
}

// Load reads file over the defaults. A missing file is not an error.
func Load(file string) (*config.Config, error) {
	base, err := config.ParseJson(Defaults)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(file); os.IsNotExist(err) {
		return base.Env(), nil
	}

	var parsed *config.Config
	switch filepath.Ext(file) {
	case ".yml", ".yaml":
		parsed, err = config.ParseYamlFile(file)
	default:
		parsed, err = config.ParseJsonFile(file)
	}
	if err != nil {
		return nil, err
	}

	merged, err := base.Extend(parsed)
	if err != nil {
		return nil, err
	}
	return merged.Env(), nil
}
