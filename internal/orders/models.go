package orders

import "time"

type Order struct {
	ID            string      `json:"id"`
	ExternalID    string      `json:"external_id"`
	CustomerName  string      `json:"customer_name"`
	CustomerEmail string      `json:"customer_email"`
	CustomerPhone string      `json:"customer_phone"`
	Address       string      `json:"address"`
	Status        Status      `json:"status"`
	TotalCents    int         `json:"total_cents"`
	Items         []OrderItem `json:"items,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

type OrderItem struct {
	ProductID  string `json:"product_id"`
	Name       string `json:"name"`
	Size       string `json:"size,omitempty"`
	Qty        int    `json:"qty"`
	PriceCents int    `json:"price_cents"`
}

type Customer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type ItemInput struct {
	ProductID string `json:"product_id"`
	Size      string `json:"size,omitempty"`
	Qty       int    `json:"qty"`
}
