package cart

import (
	"encoding/json"
	"fmt"

	"github.com/nikolayk812/marketcart/internal/domain"
	"github.com/shopspring/decimal"
)

// productRecord is one element of the persisted JSON array.
type productRecord struct {
	ID       string      `json:"id"`
	Title    string      `json:"title"`
	ImageURL string      `json:"image_url"`
	Price    json.Number `json:"price"`
	Quantity int         `json:"quantity"`
}

func encodeProducts(products []domain.CartProduct) (string, error) {
	records := make([]productRecord, 0, len(products))
	for _, p := range products {
		records = append(records, mapDomainToRecord(p))
	}

	blob, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("json.Marshal: %w", err)
	}

	return string(blob), nil
}

func decodeProducts(blob string) ([]domain.CartProduct, error) {
	var records []productRecord
	if err := json.Unmarshal([]byte(blob), &records); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}

	products := make([]domain.CartProduct, 0, len(records))
	for _, r := range records {
		p, err := mapRecordToDomain(r)
		if err != nil {
			return nil, fmt.Errorf("mapRecordToDomain: %w", err)
		}

		products = append(products, p)
	}

	return products, nil
}

func mapDomainToRecord(p domain.CartProduct) productRecord {
	return productRecord{
		ID:       p.ID,
		Title:    p.Title,
		ImageURL: p.ImageURL,
		Price:    json.Number(p.Price.String()),
		Quantity: p.Quantity,
	}
}

func mapRecordToDomain(r productRecord) (domain.CartProduct, error) {
	price, err := decimal.NewFromString(r.Price.String())
	if err != nil {
		return domain.CartProduct{}, fmt.Errorf("price[%s] of product[%s] is not valid: %w", r.Price, r.ID, err)
	}

	return domain.CartProduct{
		Product: domain.Product{
			ID:       r.ID,
			Title:    r.Title,
			ImageURL: r.ImageURL,
			Price:    price,
		},
		Quantity: r.Quantity,
	}, nil
}
