package domain

import (
	"github.com/shopspring/decimal"
)

// Product is what the catalog hands to the cart: everything but the quantity.
type Product struct {
	ID       string
	Title    string
	ImageURL string
	Price    decimal.Decimal
}

type CartProduct struct {
	Product
	Quantity int
}

// Subtotal is price times quantity.
func (p CartProduct) Subtotal() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
}
