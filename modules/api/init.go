package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/facebookgo/inject"
	"github.com/gin-gonic/contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/olebedev/config"
	"github.com/op/go-logging"
	chttp "github.com/tryanzu/cart/core/http"
	"github.com/tryanzu/cart/modules/api/controller/cart"
	"github.com/tryanzu/cart/modules/exceptions"
)

var log = logging.MustGetLogger("api")

type Module struct {
	Dependencies ModuleDI
	Cart         cart.API
}

type ModuleDI struct {
	Config *config.Config                `inject:""`
	Errors *exceptions.ExceptionsModule `inject:""`
}

// sessionStore builds the gin session store named by session.store. The kv
// store still keeps the session id in a cookie; only cart blobs move.
func (module *Module) sessionStore(secret []byte) (sessions.Store, error) {
	conf := module.Dependencies.Config
	switch kind := conf.UString("session.store", "cookie"); kind {
	case "cookie", "kv":
		return sessions.NewCookieStore(secret), nil
	case "redis":
		address := conf.UString("session.redis", "localhost:6379")
		return sessions.NewRedisStore(10, "tcp", address, "", secret)
	default:
		return nil, fmt.Errorf("unknown session store %q", kind)
	}
}

// Router wires middlewares and routes.
func (module *Module) Router() (*gin.Engine, error) {
	conf := module.Dependencies.Config
	debug := conf.UString("application.environment", "development") == "development"
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	secret := conf.UString("application.secret", "")
	if secret == "" {
		return nil, fmt.Errorf("application.secret is required to sign sessions")
	}
	store, err := module.sessionStore([]byte(secret))
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Logger())

	// Middlewares setup
	router.Use(chttp.ErrorTracking(module.Dependencies.Errors, debug))
	router.Use(chttp.CORS())
	router.Use(sessions.Sessions(conf.UString("session.name", "session"), store))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "okay"})
	})

	v1 := router.Group("/v1")
	v1.Use(chttp.Identity(secret))

	// Cart routes
	v1.GET("/cart", module.Cart.Get)
	v1.GET("/cart/summary", module.Cart.Summary)
	v1.POST("/cart", module.Cart.Add)
	v1.PUT("/cart/:id/increase", module.Cart.Increase)
	v1.PUT("/cart/:id/decrease", module.Cart.Decrease)
	v1.DELETE("/cart/:id", module.Cart.Delete)
	v1.DELETE("/cart", module.Cart.Clear)

	return router, nil
}

func (module *Module) Run(bindTo string) {
	router, err := module.Router()
	if err != nil {
		log.Fatal(err)
	}

	// Start the http server as an isolated goroutine.
	srv := &http.Server{
		Addr:    bindTo,
		Handler: router,
	}
	go func() {
		log.Infof("listening on %s", bindTo)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Listen: %s\n", err)
		}
	}()
	// Wait for interrupt signal to gracefully shutdown the server with
	// a timeout of 5 seconds.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Info("Shutdown Server ...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}
	log.Info("Server exiting")
}

func (module *Module) Populate(g *inject.Graph) {
	err := g.Provide(
		&inject.Object{Value: &module.Dependencies},
		&inject.Object{Value: &module.Cart},
	)

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Populate the DI with the instances
	if err := g.Populate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
