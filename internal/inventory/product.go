package inventory

import "time"

type Product struct {
	ID         string    `json:"id"`
	SKU        string    `json:"sku"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	Stock      int       `json:"stock"`
	PriceCents int       `json:"price_cents"`
	Active     bool      `json:"active"`
	UpdatedAt  time.Time `json:"updated_at"`
}
