package cart_test

import (
	"context"
	"errors"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/nikolayk812/marketcart/internal/domain"
	"github.com/nikolayk812/marketcart/internal/port"
	"github.com/nikolayk812/marketcart/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var errStorageDown = errors.New("storage is down")

// flakyKV delegates to an in-memory store unless the matching error is set.
type flakyKV struct {
	port.KeyValueStore

	getErr error
	setErr error
	sets   int
}

func newFlakyKV() *flakyKV {
	return &flakyKV{KeyValueStore: repository.NewMemoryKV()}
}

func (f *flakyKV) Get(ctx context.Context, key string) (string, bool, error) {
	if f.getErr != nil {
		return "", false, f.getErr
	}
	return f.KeyValueStore.Get(ctx, key)
}

func (f *flakyKV) Set(ctx context.Context, key, value string) error {
	f.sets++
	if f.setErr != nil {
		return f.setErr
	}
	return f.KeyValueStore.Set(ctx, key, value)
}

func randomProduct() domain.Product {
	return domain.Product{
		ID:       uuid.NewString(),
		Title:    gofakeit.ProductName(),
		ImageURL: gofakeit.URL(),
		Price:    decimal.NewFromFloat(gofakeit.Price(1, 100)).Round(2),
	}
}

func assertProducts(t *testing.T, expected, actual []domain.CartProduct) {
	t.Helper()

	decimalComparer := cmp.Comparer(func(x, y decimal.Decimal) bool {
		return x.Equal(y)
	})

	diff := cmp.Diff(expected, actual, decimalComparer)
	assert.Empty(t, diff)
}
