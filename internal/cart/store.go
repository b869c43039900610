package cart

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/nikolayk812/marketcart/internal/domain"
	"github.com/nikolayk812/marketcart/internal/port"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/currency"
)

// Store keeps the cart in memory and mirrors every change to a key-value store.
//
// Mutations run one at a time and include the persistence write, so after a
// mutation returns the persisted blob matches Products. A failed write keeps
// the in-memory change and returns the error.
type Store struct {
	kv       port.KeyValueStore
	key      string
	currency currency.Unit
	log      logrus.FieldLogger

	// writeMu serializes Load and mutations; products is only replaced
	// while holding both writeMu and mu.
	writeMu  sync.Mutex
	mu       sync.RWMutex
	products []domain.CartProduct
	hydrated bool
}

var _ port.Cart = (*Store)(nil)

func New(kv port.KeyValueStore, opts ...Option) *Store {
	s := &Store{
		kv:       kv,
		key:      DefaultKey,
		currency: currency.USD,
		log:      discardLogger(),
		products: []domain.CartProduct{},
	}

	for _, opt := range opts {
		opt(s)
	}

	s.log = s.log.WithField("key", s.key)

	return s
}

// Load replaces the in-memory cart with the persisted one. A missing key
// leaves the cart as it is. A blob that cannot be decoded leaves the cart
// untouched and is reported as an error.
func (s *Store) Load(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	blob, found, err := s.kv.Get(ctx, s.key)
	if err != nil {
		s.log.WithError(err).Error("failed to read cart")
		return fmt.Errorf("kv.Get: %w", err)
	}

	if !found {
		s.setHydrated(nil)
		s.log.Debug("no persisted cart")
		return nil
	}

	products, err := decodeProducts(blob)
	if err != nil {
		s.log.WithError(err).Warn("persisted cart is malformed")
		return fmt.Errorf("decodeProducts: %w", err)
	}

	s.setHydrated(products)
	s.log.WithField("products", len(products)).Debug("cart hydrated")

	return nil
}

// AddToCart appends product with quantity 1, or, when the ID is already in
// the cart, replaces that entry with product and bumps the quantity.
func (s *Store) AddToCart(ctx context.Context, product domain.Product) error {
	if product.ID == "" {
		return fmt.Errorf("product ID is empty")
	}

	return s.mutate(ctx, product.ID, func(products []domain.CartProduct) []domain.CartProduct {
		return addProduct(products, product)
	})
}

func (s *Store) Increment(ctx context.Context, id string) error {
	return s.mutate(ctx, id, func(products []domain.CartProduct) []domain.CartProduct {
		return incrementProduct(products, id)
	})
}

// Decrement lowers the quantity of id and drops the entry once it reaches zero.
func (s *Store) Decrement(ctx context.Context, id string) error {
	return s.mutate(ctx, id, func(products []domain.CartProduct) []domain.CartProduct {
		return decrementProduct(products, id)
	})
}

// Products returns a copy of the cart in insertion order.
func (s *Store) Products() []domain.CartProduct {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.products)
}

func (s *Store) Hydrated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.hydrated
}

// Count is the number of units in the cart.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	for _, p := range s.products {
		n += p.Quantity
	}

	return n
}

func (s *Store) Total() domain.Money {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := decimal.Zero
	for _, p := range s.products {
		total = total.Add(p.Subtotal())
	}

	return domain.Money{Amount: total, Currency: s.currency}
}

func (s *Store) mutate(ctx context.Context, productID string, fn func([]domain.CartProduct) []domain.CartProduct) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	next := fn(s.products)

	s.mu.Lock()
	s.products = next
	s.mu.Unlock()

	if err := s.persist(ctx, next); err != nil {
		s.log.WithError(err).WithField("product_id", productID).Error("failed to persist cart")
		return err
	}

	return nil
}

func (s *Store) persist(ctx context.Context, products []domain.CartProduct) error {
	blob, err := encodeProducts(products)
	if err != nil {
		return fmt.Errorf("encodeProducts: %w", err)
	}

	if err := s.kv.Set(ctx, s.key, blob); err != nil {
		return fmt.Errorf("kv.Set: %w", err)
	}

	return nil
}

func (s *Store) setHydrated(products []domain.CartProduct) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if products != nil {
		s.products = products
	}
	s.hydrated = true
}

func addProduct(products []domain.CartProduct, product domain.Product) []domain.CartProduct {
	i := slices.IndexFunc(products, func(p domain.CartProduct) bool { return p.ID == product.ID })
	if i < 0 {
		return append(slices.Clone(products), domain.CartProduct{Product: product, Quantity: 1})
	}

	next := slices.Clone(products)
	next[i] = domain.CartProduct{Product: product, Quantity: products[i].Quantity + 1}

	return next
}

func incrementProduct(products []domain.CartProduct, id string) []domain.CartProduct {
	next := slices.Clone(products)
	for i := range next {
		if next[i].ID == id {
			next[i].Quantity++
		}
	}

	return next
}

func decrementProduct(products []domain.CartProduct, id string) []domain.CartProduct {
	next := make([]domain.CartProduct, 0, len(products))
	for _, p := range products {
		if p.ID == id {
			p.Quantity--
		}
		if p.Quantity > 0 {
			next = append(next, p)
		}
	}

	return next
}
