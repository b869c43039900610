package port

import (
	"context"

	"github.com/nikolayk812/marketcart/internal/domain"
)

// Cart is what consumers mounted under a cart provider get to use.
type Cart interface {
	Products() []domain.CartProduct
	AddToCart(ctx context.Context, product domain.Product) error
	Increment(ctx context.Context, id string) error
	Decrement(ctx context.Context, id string) error
}
