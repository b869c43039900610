package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikolayk812/marketcart/internal/port"
)

var ErrNoProvider = errors.New("cart must be used within a cart provider")

type providerKey struct{}

// Provide returns a copy of ctx that carries s. Code running under the
// returned context can reach the cart through FromContext.
func Provide(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, providerKey{}, s)
}

func FromContext(ctx context.Context) (*Store, error) {
	s, ok := ctx.Value(providerKey{}).(*Store)
	if !ok || s == nil {
		return nil, ErrNoProvider
	}

	return s, nil
}

// MustFromContext is FromContext for callers that treat a missing provider
// as a programming error.
func MustFromContext(ctx context.Context) *Store {
	s, err := FromContext(ctx)
	if err != nil {
		panic(err)
	}

	return s
}

// Mount creates a store over kv, loads the persisted cart and provides the
// store on the returned context. The store is provided even if loading
// fails; the load error is returned alongside.
func Mount(ctx context.Context, kv port.KeyValueStore, opts ...Option) (context.Context, *Store, error) {
	s := New(kv, opts...)
	ctx = Provide(ctx, s)

	if err := s.Load(ctx); err != nil {
		return ctx, s, fmt.Errorf("s.Load: %w", err)
	}

	return ctx, s, nil
}
