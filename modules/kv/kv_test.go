package kv

import (
	"context"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/tryanzu/cart/modules/cart"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()
	bunt, err := OpenBunt(":memory:")
	if err != nil {
		t.Fatalf("bunt: %v", err)
	}
	ledis, err := OpenLedis(t.TempDir())
	if err != nil {
		t.Fatalf("ledis: %v", err)
	}
	t.Cleanup(func() {
		bunt.Close()
		ledis.Close()
	})
	return map[string]Store{"bunt": bunt, "ledis": ledis}
}

func TestStores(t *testing.T) {
	ctx := context.Background()
	for name, store := range stores(t) {
		Convey("Given a "+name+" store", t, func() {
			Convey("missing keys are not found", func() {
				_, found, err := store.Get(ctx, name+":missing")
				So(err, ShouldBeNil)
				So(found, ShouldBeFalse)
			})

			Convey("set values come back until deleted", func() {
				So(store.Set(ctx, name+":a", "1", 0), ShouldBeNil)
				v, found, err := store.Get(ctx, name+":a")
				So(err, ShouldBeNil)
				So(found, ShouldBeTrue)
				So(v, ShouldEqual, "1")

				So(store.Del(ctx, name+":a"), ShouldBeNil)
				So(store.Del(ctx, name+":a"), ShouldBeNil)
				_, found, err = store.Get(ctx, name+":a")
				So(err, ShouldBeNil)
				So(found, ShouldBeFalse)
			})

			Convey("a cancelled context fails fast", func() {
				cancelled, cancel := context.WithCancel(ctx)
				cancel()
				So(store.Set(cancelled, name+":b", "1", 0), ShouldNotBeNil)
			})
		})
	}
}

func TestBuntExpires(t *testing.T) {
	ctx := context.Background()
	store, err := OpenBunt(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	if err := store.Set(ctx, "short", "lived", 20*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(60 * time.Millisecond)
	if _, found, _ := store.Get(ctx, "short"); found {
		t.Errorf("expired key still readable")
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	if _, err := Open(Options{Driver: "memcached"}); err == nil {
		t.Errorf("expected an error for an unknown driver")
	}
}

func TestSessionBacksACart(t *testing.T) {
	ctx := context.Background()

	Convey("Given two sessions sharing one kv store", t, func() {
		store, err := OpenBunt(":memory:")
		So(err, ShouldBeNil)
		defer store.Close()

		open := func(sid string) *cart.Store {
			s, err := cart.New(cart.Settings{Driver: cart.SessionDriver}, cart.Identity{SessionID: sid}, cart.WithSession(Session{Store: store, ID: sid, TTL: time.Hour}))
			So(err, ShouldBeNil)
			return s
		}

		a, b := open("a"), open("b")
		So(a.Add(ctx, cart.Item{ID: "1", Name: "Product 1", Price: 10.99, Quantity: 2}), ShouldBeNil)

		Convey("the cart survives a new request of the same session", func() {
			count, err := open("a").Count(ctx)
			So(err, ShouldBeNil)
			So(count, ShouldEqual, 2)

			items, err := open("a").All(ctx)
			So(err, ShouldBeNil)
			So(len(items), ShouldEqual, 1)
		})

		Convey("the other session does not see it", func() {
			count, err := b.Count(ctx)
			So(err, ShouldBeNil)
			So(count, ShouldEqual, 0)
		})

		Convey("clear drops the blob", func() {
			So(a.Clear(ctx), ShouldBeNil)
			_, found, err := store.Get(ctx, "session:a:"+cart.DefaultSessionKey)
			So(err, ShouldBeNil)
			So(found, ShouldBeFalse)
		})
	})
}
