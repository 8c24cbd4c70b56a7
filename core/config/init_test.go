package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/tryanzu/cart/core/config"
	"github.com/tryanzu/cart/modules/cart"
)

func TestRuntimeConfig(t *testing.T) {
	Convey("Given an empty runtime config", t, func() {
		c := config.New()
		base := cart.DefaultSettings()

		Convey("cart settings fall back to base", func() {
			So(c.Cart(base), ShouldResemble, base)
		})

		Convey("an hjson file overrides the cart section and signals reload", func() {
			file := filepath.Join(t.TempDir(), "config.hjson")
			err := os.WriteFile(file, []byte(`{
				# switch carts to the session only
				cart: {
					driver: session
					session_key: basket
				}
			}`), 0644)
			So(err, ShouldBeNil)

			So(c.Merge(file), ShouldBeNil)
			So(<-c.Reload, ShouldBeTrue)

			settings := c.Cart(base)
			So(settings.Driver, ShouldEqual, cart.SessionDriver)
			So(settings.SessionKey, ShouldEqual, "basket")
			So(settings.Table, ShouldEqual, cart.DefaultTable)
		})

		Convey("updates win over earlier values", func() {
			So(c.Update(map[string]interface{}{"name": "a"}), ShouldBeNil)
			So(c.Update(map[string]interface{}{"name": "b"}), ShouldBeNil)
			So(c.Copy()["name"], ShouldEqual, "b")
		})

		Convey("copies taken earlier do not change on update", func() {
			So(c.Update(map[string]interface{}{"cart": map[string]interface{}{"driver": "session"}}), ShouldBeNil)
			snapshot := c.Copy()["cart"].(map[string]interface{})

			So(c.Update(map[string]interface{}{"cart": map[string]interface{}{"driver": "database"}}), ShouldBeNil)
			So(snapshot["driver"], ShouldEqual, "session")
			So(c.Cart(base).Driver, ShouldEqual, cart.DatabaseDriver)

			snapshot["driver"] = "both"
			So(c.Cart(base).Driver, ShouldEqual, cart.DatabaseDriver)
		})

		Convey("nested sections merge key by key", func() {
			So(c.Update(map[string]interface{}{"cart": map[string]interface{}{"driver": "session"}}), ShouldBeNil)
			So(c.Update(map[string]interface{}{"cart": map[string]interface{}{"table": "baskets"}}), ShouldBeNil)
			settings := c.Cart(base)
			So(settings.Driver, ShouldEqual, cart.SessionDriver)
			So(settings.Table, ShouldEqual, "baskets")
		})

		Convey("a missing file is reported", func() {
			err := c.Merge(filepath.Join(t.TempDir(), "none.hjson"))
			So(os.IsNotExist(err), ShouldBeTrue)
		})

		Convey("dump writes toml", func() {
			So(c.Update(map[string]interface{}{"cart": map[string]interface{}{"driver": "both"}}), ShouldBeNil)
			var buf bytes.Buffer
			So(c.Dump(&buf), ShouldBeNil)
			So(buf.String(), ShouldContainSubstring, "[cart]")
			So(buf.String(), ShouldContainSubstring, `driver = "both"`)
		})
	})
}

// Run with -race: readers and writers of the cart section must not share maps.
func TestConcurrentReadsAndUpdates(t *testing.T) {
	c := config.New()
	base := cart.DefaultSettings()
	drivers := []string{"session", "database", "both"}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			patch := map[string]interface{}{"cart": map[string]interface{}{"driver": drivers[i%len(drivers)]}}
			if err := c.Update(patch); err != nil {
				t.Error(err)
			}
		}(i)
		go func() {
			defer wg.Done()
			switch c.Cart(base).Driver {
			case cart.SessionDriver, cart.DatabaseDriver, cart.BothDriver, base.Driver:
			default:
				t.Error("unexpected driver")
			}
		}()
	}
	wg.Wait()
}

func TestWatchFileReloads(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.hjson")
	if err := os.WriteFile(file, []byte(`{cart: {driver: both}}`), 0644); err != nil {
		t.Fatal(err)
	}

	c := config.New()
	c.WatchFile(file)

	if err := os.WriteFile(file, []byte(`{cart: {driver: database}}`), 0644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case <-c.Reload:
			if c.Cart(cart.DefaultSettings()).Driver == cart.DatabaseDriver {
				return
			}
		case <-deadline:
			t.Fatal("no reload after the file changed")
		}
	}
}
