package cart

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/olebedev/config"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/tryanzu/cart/board/cartitems"
	rconfig "github.com/tryanzu/cart/core/config"
	chttp "github.com/tryanzu/cart/core/http"
	"github.com/tryanzu/cart/modules/cart"
	"github.com/tryanzu/cart/modules/exceptions"
	"github.com/tryanzu/cart/modules/kv"
	_ "modernc.org/sqlite"
)

const secret = "controller-secret"

type provider struct {
	conf    *config.Config
	records cart.RecordStore
	kv      kv.Store
}

func (p provider) Config() *config.Config    { return p.conf }
func (p provider) Records() cart.RecordStore { return p.records }
func (p provider) KV() kv.Store              { return p.kv }

func sqliteRecords(t *testing.T) cart.RecordStore {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	store, err := cartitems.NewSQLStore(db, cartitems.SQLite, cart.DefaultTable)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Migrate(context.Background()); err != nil {
		t.Fatal(err)
	}
	return store
}

func newRouter(t *testing.T, p provider, runtime *rconfig.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	api := API{Provider: p, Runtime: runtime, Errors: &exceptions.ExceptionsModule{}}

	r := gin.New()
	r.Use(sessions.Sessions("session", sessions.NewCookieStore([]byte(secret))))
	r.Use(chttp.Identity(secret))
	r.GET("/cart", api.Get)
	r.GET("/cart/summary", api.Summary)
	r.POST("/cart", api.Add)
	r.PUT("/cart/:id/increase", api.Increase)
	r.PUT("/cart/:id/decrease", api.Decrease)
	r.DELETE("/cart/:id", api.Delete)
	r.DELETE("/cart", api.Clear)
	return r
}

// client replays the cookies it receives, like a browser.
type client struct {
	router  *gin.Engine
	cookies map[string]*http.Cookie
	token   string
}

func (c *client) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)
	if c.cookies == nil {
		c.cookies = map[string]*http.Cookie{}
	}
	for _, cookie := range w.Result().Cookies() {
		c.cookies[cookie.Name] = cookie
	}
	return w
}

func (c *client) summary() cart.Summary {
	var s cart.Summary
	w := c.do("GET", "/cart/summary", "")
	So(w.Code, ShouldEqual, 200)
	So(json.Unmarshal(w.Body.Bytes(), &s), ShouldBeNil)
	return s
}

func conf(t *testing.T, raw string) *config.Config {
	t.Helper()
	c, err := config.ParseJson(raw)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestCartOverCookieSession(t *testing.T) {
	Convey("Given a session only cart kept in the cookie", t, func() {
		p := provider{conf: conf(t, `{"cart": {"driver": "session"}}`)}
		c := &client{router: newRouter(t, p, nil)}

		Convey("an empty cart lists no items", func() {
			w := c.do("GET", "/cart", "")
			So(w.Code, ShouldEqual, 200)
			So(w.Body.String(), ShouldEqual, "[]")
		})

		Convey("adds, quantity changes and removals round trip", func() {
			So(c.do("POST", "/cart", `{"id":"1","name":"<b>Product 1</b>","price":10.99,"quantity":2}`).Code, ShouldEqual, 200)
			So(c.do("POST", "/cart", `{"id":"2","name":"Product 2","price":5.99}`).Code, ShouldEqual, 200)

			s := c.summary()
			So(s.Count, ShouldEqual, 3)
			So(len(s.Items), ShouldEqual, 2)
			So(s.Items[0].Name, ShouldEqual, "Product 1")

			So(c.do("PUT", "/cart/2/increase", `{"quantity":3}`).Code, ShouldEqual, 200)
			So(c.do("PUT", "/cart/1/decrease", "").Code, ShouldEqual, 200)
			So(c.summary().Count, ShouldEqual, 5)

			So(c.do("DELETE", "/cart/2", "").Code, ShouldEqual, 200)
			So(c.summary().Count, ShouldEqual, 1)

			So(c.do("DELETE", "/cart", "").Code, ShouldEqual, 200)
			So(c.summary().Count, ShouldEqual, 0)
		})

		Convey("another browser has its own cart", func() {
			So(c.do("POST", "/cart", `{"id":"1","price":1}`).Code, ShouldEqual, 200)
			other := &client{router: c.router}
			So(other.summary().Count, ShouldEqual, 0)
		})

		Convey("bad input is a 400", func() {
			So(c.do("POST", "/cart", `{"name":"no id"}`).Code, ShouldEqual, 400)
			So(c.do("POST", "/cart", `not json`).Code, ShouldEqual, 400)
			So(c.do("POST", "/cart", `{"id":"1","price":-1}`).Code, ShouldEqual, 400)
			So(c.do("PUT", "/cart/1/increase", `{"quantity":-2}`).Code, ShouldEqual, 400)
		})
	})
}

func TestCartOverRecordsAndKV(t *testing.T) {
	Convey("Given a cart on both backends with kv sessions", t, func() {
		store, err := kv.OpenBunt(":memory:")
		So(err, ShouldBeNil)
		defer store.Close()

		p := provider{
			conf:    conf(t, `{"cart": {"driver": "both"}, "session": {"store": "kv"}, "kv": {"ttl": 60}}`),
			records: sqliteRecords(t),
			kv:      store,
		}
		router := newRouter(t, p, nil)

		Convey("a signed user reads rows while a guest reads the session", func() {
			token, err := chttp.SignToken(secret, "42", time.Hour)
			So(err, ShouldBeNil)
			user := &client{router: router, token: token}
			guest := &client{router: router}

			So(user.do("POST", "/cart", `{"id":"a","name":"A","price":2.5,"quantity":4}`).Code, ShouldEqual, 200)
			So(guest.do("POST", "/cart", `{"id":"b","name":"B","price":1}`).Code, ShouldEqual, 200)

			s := user.summary()
			So(s.Count, ShouldEqual, 4)
			So(s.Total, ShouldEqual, 10.0)

			s = guest.summary()
			So(s.Count, ShouldEqual, 1)
			So(s.Items[0].ID, ShouldEqual, "b")

			sid := guest.cookies["session"]
			So(sid, ShouldNotBeNil)
		})

		Convey("a missing id is a no-op", func() {
			guest := &client{router: router}
			So(guest.do("PUT", "/cart/nope/decrease", "").Code, ShouldEqual, 200)
			So(guest.do("DELETE", "/cart/nope", "").Code, ShouldEqual, 200)
			So(guest.summary().Count, ShouldEqual, 0)
		})
	})
}

func TestRuntimeConfigPicksDriver(t *testing.T) {
	Convey("Given a runtime override to the database driver", t, func() {
		runtime := rconfig.New()
		So(runtime.Update(map[string]interface{}{"cart": map[string]interface{}{"driver": "database"}}), ShouldBeNil)

		Convey("a cart without record storage keeps the booted driver", func() {
			p := provider{conf: conf(t, `{"cart": {"driver": "session"}}`)}
			c := &client{router: newRouter(t, p, runtime)}
			So(c.do("POST", "/cart", `{"id":"1","name":"A","price":1}`).Code, ShouldEqual, 200)
			So(c.summary().Count, ShouldEqual, 1)
		})

		Convey("a cart with record storage switches to it", func() {
			p := provider{conf: conf(t, `{"cart": {"driver": "session"}}`), records: sqliteRecords(t)}
			c := &client{router: newRouter(t, p, runtime)}
			token, err := chttp.SignToken(secret, "9", time.Hour)
			So(err, ShouldBeNil)
			c.token = token

			So(c.do("POST", "/cart", `{"id":"1","name":"A","price":1,"quantity":2}`).Code, ShouldEqual, 200)
			rows, err := p.records.FindAll(context.Background(), cart.Scope{UserID: "9"})
			So(err, ShouldBeNil)
			So(len(rows), ShouldEqual, 1)
		})

		Convey("a table override is ignored", func() {
			So(runtime.Update(map[string]interface{}{"cart": map[string]interface{}{"table": "other_items"}}), ShouldBeNil)
			api := API{Provider: provider{conf: conf(t, `{"cart": {"driver": "session"}}`), records: sqliteRecords(t)}, Runtime: runtime}
			settings := api.settings()
			So(settings.Table, ShouldEqual, cart.DefaultTable)
			So(settings.Driver, ShouldEqual, cart.DatabaseDriver)
		})
	})
}

type failingRecords struct{ cart.RecordStore }

func (failingRecords) FindAll(context.Context, cart.Scope) ([]cart.Row, error) {
	return nil, errors.New("pq: password authentication failed for user \"cart\"")
}

func TestBackendErrorsStayPrivate(t *testing.T) {
	Convey("Given a record store that fails", t, func() {
		p := provider{conf: conf(t, `{"cart": {"driver": "database"}}`), records: failingRecords{}}
		c := &client{router: newRouter(t, p, nil)}
		token, err := chttp.SignToken(secret, "9", time.Hour)
		So(err, ShouldBeNil)
		c.token = token

		Convey("the response is a 500 without the backend detail", func() {
			w := c.do("GET", "/cart", "")
			So(w.Code, ShouldEqual, 500)
			So(w.Body.String(), ShouldNotContainSubstring, "password")
			So(w.Body.String(), ShouldContainSubstring, "will be notified")
		})
	})
}
