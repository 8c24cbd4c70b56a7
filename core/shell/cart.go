package shell

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tryanzu/cart/modules/cart"
	"github.com/tryanzu/cart/modules/kv"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Deps is what the shell needs from the container.
type Deps interface {
	Records() cart.RecordStore
	KV() kv.Store
}

// Cart works on the cart of one identity at a time.
type Cart struct {
	Deps     Deps
	Settings cart.Settings
	Identity cart.Identity
	TTL      time.Duration

	unit    currency.Unit
	printer *message.Printer
}

// NewCart starts as a guest with a fresh session id. code is an ISO 4217
// currency used to print amounts.
func NewCart(d Deps, settings cart.Settings, sessionID, code string) (*Cart, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, err
	}
	return &Cart{
		Deps:     d,
		Settings: settings,
		Identity: cart.Identity{SessionID: sessionID},
		unit:     unit,
		printer:  message.NewPrinter(language.English),
	}, nil
}

func (sc *Cart) store() (*cart.Store, error) {
	opts := []cart.Option{}
	if sc.Deps.Records() != nil {
		opts = append(opts, cart.WithRecords(sc.Deps.Records()))
	}
	if sc.Deps.KV() != nil {
		opts = append(opts, cart.WithSession(kv.Session{Store: sc.Deps.KV(), ID: sc.Identity.SessionID, TTL: sc.TTL}))
	}
	return cart.New(sc.Settings, sc.Identity, opts...)
}

func (sc *Cart) money(amount float64) string {
	return sc.printer.Sprint(currency.Symbol(sc.unit.Amount(amount)))
}

// Login switches to the cart of a signed user.
func (sc *Cart) Login(args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("usage: login <user_id>")
	}
	sc.Identity.UserID = args[0]
	return "signed in as " + args[0], nil
}

// Logout goes back to the guest cart of the session.
func (sc *Cart) Logout() string {
	sc.Identity.UserID = ""
	return "guest session " + sc.Identity.SessionID
}

// Add takes: <id> <price> [quantity] [name...]
func (sc *Cart) Add(ctx context.Context, args []string) (string, error) {
	if len(args) < 2 {
		return "", fmt.Errorf("usage: add <id> <price> [quantity] [name...]")
	}
	price, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return "", fmt.Errorf("price: %w", err)
	}
	item := cart.Item{ID: args[0], Name: args[0], Price: price}
	if len(args) > 2 {
		if item.Quantity, err = strconv.Atoi(args[2]); err != nil {
			return "", fmt.Errorf("quantity: %w", err)
		}
	}
	if len(args) > 3 {
		item.Name = strings.Join(args[3:], " ")
	}

	store, err := sc.store()
	if err != nil {
		return "", err
	}
	if err := store.Add(ctx, item); err != nil {
		return "", err
	}
	return sc.List(ctx)
}

// Change runs increase or decrease with: <id> [quantity]
func (sc *Cart) Change(ctx context.Context, op string, args []string) (string, error) {
	if len(args) < 1 {
		return "", fmt.Errorf("usage: %s <id> [quantity]", op)
	}
	quantity := 0
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return "", fmt.Errorf("quantity: %w", err)
		}
		quantity = n
	}

	store, err := sc.store()
	if err != nil {
		return "", err
	}
	switch op {
	case "inc":
		err = store.Increase(ctx, args[0], quantity)
	case "dec":
		err = store.Decrease(ctx, args[0], quantity)
	default:
		err = fmt.Errorf("unknown quantity change %q", op)
	}
	if err != nil {
		return "", err
	}
	return sc.List(ctx)
}

func (sc *Cart) Remove(ctx context.Context, args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("usage: remove <id>")
	}
	store, err := sc.store()
	if err != nil {
		return "", err
	}
	if err := store.Remove(ctx, args[0]); err != nil {
		return "", err
	}
	return sc.List(ctx)
}

func (sc *Cart) Clear(ctx context.Context) (string, error) {
	store, err := sc.store()
	if err != nil {
		return "", err
	}
	if err := store.Clear(ctx); err != nil {
		return "", err
	}
	return "cart cleared", nil
}

// List prints one line per item and the aggregates.
func (sc *Cart) List(ctx context.Context) (string, error) {
	store, err := sc.store()
	if err != nil {
		return "", err
	}
	summary, err := store.Summary(ctx)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, item := range summary.Items {
		fmt.Fprintf(&b, "%-12s %-24s %3d x %s\n", item.ID, item.Name, item.Quantity, sc.money(item.Price))
	}
	fmt.Fprintf(&b, "%d items, total %s", summary.Count, sc.money(summary.Total))
	return b.String(), nil
}
