package orders

// OrderCreatedPayload rides the order.created topic.
type OrderCreatedPayload struct {
	OrderID    string      `json:"order_id"`
	ExternalID string      `json:"external_id"`
	Customer   Customer    `json:"customer"`
	Items      []OrderItem `json:"items"`
	TotalCents int         `json:"total_cents"`
}

func PayloadFor(o Order) OrderCreatedPayload {
	return OrderCreatedPayload{
		OrderID:    o.ID,
		ExternalID: o.ExternalID,
		Customer: Customer{
			Name:    o.CustomerName,
			Email:   o.CustomerEmail,
			Phone:   o.CustomerPhone,
			Address: o.Address,
		},
		Items:      o.Items,
		TotalCents: o.TotalCents,
	}
}
