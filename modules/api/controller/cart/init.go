package cart

import (
	"time"

	"github.com/gin-gonic/contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/olebedev/config"
	"github.com/op/go-logging"
	rconfig "github.com/tryanzu/cart/core/config"
	chttp "github.com/tryanzu/cart/core/http"
	"github.com/tryanzu/cart/modules/cart"
	"github.com/tryanzu/cart/modules/exceptions"
	"github.com/tryanzu/cart/modules/kv"
)

var log = logging.MustGetLogger("cart")

// Provider hands out the shared stores carts are built on.
type Provider interface {
	Config() *config.Config
	Records() cart.RecordStore
	KV() kv.Store
}

type API struct {
	Provider Provider                     `inject:""`
	Runtime  *rconfig.Config              `inject:""`
	Errors   *exceptions.ExceptionsModule `inject:""`
}

// settings reads the env config, then lets the runtime config override it.
// Overrides the booted stores cannot serve are ignored with a warning: the
// record store is bound to one table at boot and may not exist at all.
func (api API) settings() cart.Settings {
	conf := api.Provider.Config()
	base := cart.Settings{
		Driver:     cart.Driver(conf.UString("cart.driver", string(cart.DefaultDriver))),
		SessionKey: conf.UString("cart.session_key", cart.DefaultSessionKey),
		Table:      conf.UString("cart.table", cart.DefaultTable),
	}
	if api.Runtime == nil {
		return base
	}

	settings := api.Runtime.Cart(base)
	if settings.Table != base.Table {
		log.Warningf("runtime cart.table %q ignored, records are bound to %q until restart", settings.Table, base.Table)
		settings.Table = base.Table
	}
	needsRecords := settings.Driver == cart.DatabaseDriver || settings.Driver == cart.BothDriver
	if needsRecords && api.Provider.Records() == nil {
		log.Warningf("runtime cart.driver %q ignored, no record storage was booted", settings.Driver)
		settings.Driver = base.Driver
	}
	return settings
}

func (api API) getCart(c *gin.Context) (*cart.Store, error) {
	id := chttp.IdentityFrom(c)
	opts := []cart.Option{}
	if records := api.Provider.Records(); records != nil {
		opts = append(opts, cart.WithRecords(records))
	}

	if api.Provider.Config().UString("session.store", "cookie") == "kv" && api.Provider.KV() != nil {
		ttl := time.Duration(api.Provider.Config().UInt("kv.ttl", 604800)) * time.Second
		opts = append(opts, cart.WithSession(kv.Session{Store: api.Provider.KV(), ID: id.SessionID, TTL: ttl}))
	} else {
		opts = append(opts, cart.WithSession(cart.GinGonicSession{Session: sessions.Default(c)}))
	}

	return cart.New(api.settings(), id, opts...)
}

// fail answers bad input with 400 and anything else with 500.
func (api API) fail(c *gin.Context, err error) {
	if cart.IsInvalidInput(err) {
		c.JSON(400, gin.H{"status": "error", "message": err.Error()})
		return
	}

	log.Errorf("[%s %s] %v", c.Request.Method, c.Request.URL.Path, err)
	api.Errors.Capture(err, map[string]string{"path": c.FullPath()})
	c.JSON(500, gin.H{"status": "error", "message": "Cart storage failed, will be notified"})
}

type CartAddForm struct {
	ID       string            `json:"id" binding:"required"`
	Name     string            `json:"name"`
	Price    float64           `json:"price"`
	Quantity int               `json:"quantity"`
	Options  map[string]string `json:"options"`
}

type QuantityForm struct {
	Quantity int `json:"quantity"`
}
