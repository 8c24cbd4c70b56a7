package cart

import (
	"context"
	"fmt"

	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("cart")

// Store is the cart of one identity. Build one per request with New.
type Store struct {
	settings Settings
	identity Identity
	log      *logging.Logger

	sessionStore SessionStore
	recordStore  RecordStore

	// active backends in write order; session first.
	backends []backend
	session  *sessionBackend
	records  *recordBackend
}

// Option configures a Store.
type Option func(*Store)

// WithSession provides the session blob storage.
func WithSession(s SessionStore) Option {
	return func(store *Store) {
		store.sessionStore = s
	}
}

// WithRecords provides the persistent row storage.
func WithRecords(r RecordStore) Option {
	return func(store *Store) {
		store.recordStore = r
	}
}

// WithLogger replaces the package logger.
func WithLogger(l *logging.Logger) Option {
	return func(store *Store) {
		if l != nil {
			store.log = l
		}
	}
}

// Summary is the cart content together with its aggregates.
type Summary struct {
	Items []Item  `json:"items"`
	Count int     `json:"count"`
	Total float64 `json:"total"`
}

// New boots a cart for id. The driver decides which of the given stores
// are used; a needed store that is missing fails with ErrMissingBackend.
func New(settings Settings, id Identity, opts ...Option) (*Store, error) {
	settings = settings.withDefaults()
	driver, err := ParseDriver(string(settings.Driver))
	if err != nil {
		return nil, err
	}
	settings.Driver = driver

	s := &Store{settings: settings, identity: id, log: log}
	for _, opt := range opts {
		opt(s)
	}

	if driver.usesSession() {
		if s.sessionStore == nil {
			return nil, fmt.Errorf("%w: %s driver needs a session store", ErrMissingBackend, driver)
		}
		s.session = &sessionBackend{store: s.sessionStore, key: settings.SessionKey}
		s.backends = append(s.backends, s.session)
	}

	if driver.usesRecords() {
		if s.recordStore == nil {
			return nil, fmt.Errorf("%w: %s driver needs a record store", ErrMissingBackend, driver)
		}
		scope := ScopeOf(id)
		if scope.Empty() {
			return nil, &InvalidInput{Field: "identity", Reason: "neither session nor user id present"}
		}
		s.records = &recordBackend{store: s.recordStore, scope: scope}
		s.backends = append(s.backends, s.records)
	}

	return s, nil
}

// Settings returns the resolved settings.
func (s *Store) Settings() Settings {
	return s.settings
}

// Identity returns who the cart belongs to.
func (s *Store) Identity() Identity {
	return s.identity
}

// effective is the backend reads come from: the only one, or with both
// drivers the records for signed users and the session for guests.
func (s *Store) effective() backend {
	if s.session != nil && s.records != nil {
		if s.identity.Authenticated() {
			return s.records
		}
		return s.session
	}
	return s.backends[0]
}

// each runs fn on every active backend and stops at the first failure.
// Nothing written before the failure is rolled back.
func (s *Store) each(op string, fn func(backend) error) error {
	for _, b := range s.backends {
		if err := fn(b); err != nil {
			s.log.Errorf("cart %s on %s backend (%s): %v", op, b.name(), ScopeOf(s.identity), err)
			return fmt.Errorf("cart %s on %s: %w", op, b.name(), err)
		}
	}
	return nil
}

// Add puts item in the cart. A zero quantity means one. When the id is
// already present quantities add up and the new name, price and options
// replace the stored ones.
func (s *Store) Add(ctx context.Context, item Item) error {
	if item.Quantity == 0 {
		item.Quantity = 1
	}
	if err := validateItem(item); err != nil {
		return err
	}
	item.Options = item.Options.clone()

	s.log.Debugf("cart add %s x%d for %s", item.ID, item.Quantity, ScopeOf(s.identity))
	return s.each("add", func(b backend) error {
		return b.add(ctx, item)
	})
}

// Remove deletes id from the cart. Missing ids are ignored.
func (s *Store) Remove(ctx context.Context, id string) error {
	if id == "" {
		return &InvalidInput{Field: "ID", Reason: "failed required check"}
	}
	return s.each("remove", func(b backend) error {
		return b.remove(ctx, id)
	})
}

// Increase adds quantity (zero means one) to an existing item.
func (s *Store) Increase(ctx context.Context, id string, quantity int) error {
	q, err := delta(id, quantity)
	if err != nil {
		return err
	}
	return s.each("increase", func(b backend) error {
		return b.increase(ctx, id, q)
	})
}

// Decrease takes quantity (zero means one) from an existing item, never
// going below one. It never removes the item.
func (s *Store) Decrease(ctx context.Context, id string, quantity int) error {
	q, err := delta(id, quantity)
	if err != nil {
		return err
	}
	return s.each("decrease", func(b backend) error {
		return b.decrease(ctx, id, q)
	})
}

// Clear empties the cart on every active backend.
func (s *Store) Clear(ctx context.Context) error {
	return s.each("clear", func(b backend) error {
		return b.clear(ctx)
	})
}

// Find looks id up in the effective backend.
func (s *Store) Find(ctx context.Context, id string) (Item, bool, error) {
	b := s.effective()
	item, found, err := b.find(ctx, id)
	if err != nil {
		return Item{}, false, fmt.Errorf("cart find on %s: %w", b.name(), err)
	}
	return item, found, nil
}

// All lists the items of the effective backend, ordered by id.
func (s *Store) All(ctx context.Context) ([]Item, error) {
	b := s.effective()
	list, err := b.all(ctx)
	if err != nil {
		return nil, fmt.Errorf("cart all on %s: %w", b.name(), err)
	}
	return list, nil
}

// Count is the sum of quantities.
func (s *Store) Count(ctx context.Context) (int, error) {
	list, err := s.All(ctx)
	if err != nil {
		return 0, err
	}
	return countOf(list), nil
}

// Total is the sum of price times quantity.
func (s *Store) Total(ctx context.Context) (float64, error) {
	list, err := s.All(ctx)
	if err != nil {
		return 0, err
	}
	return totalOf(list), nil
}

// Summary reads the cart once and aggregates it.
func (s *Store) Summary(ctx context.Context) (Summary, error) {
	list, err := s.All(ctx)
	if err != nil {
		return Summary{}, err
	}
	return Summary{Items: list, Count: countOf(list), Total: totalOf(list)}, nil
}

func countOf(list []Item) (n int) {
	for _, item := range list {
		n += item.Quantity
	}
	return
}

func totalOf(list []Item) (total float64) {
	for _, item := range list {
		total += item.Subtotal()
	}
	return
}

func delta(id string, quantity int) (int, error) {
	if id == "" {
		return 0, &InvalidInput{Field: "ID", Reason: "failed required check"}
	}
	if quantity < 0 {
		return 0, &InvalidInput{Field: "Quantity", Reason: "failed gte check"}
	}
	if quantity == 0 {
		return 1, nil
	}
	return quantity, nil
}
