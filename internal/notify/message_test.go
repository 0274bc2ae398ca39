package notify

import (
	"net/url"
	"testing"

	"github.com/ariefcatur/zenzee-admin/internal/orders"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func payload() orders.OrderCreatedPayload {
	return orders.OrderCreatedPayload{
		OrderID:    "ord-1",
		Customer:   orders.Customer{Name: "Ayu", Phone: "0812", Address: "Jl. Melati 3", Email: "ayu@example.com"},
		TotalCents: 12345600,
		Items: []orders.OrderItem{
			{ProductID: "p1", Name: "Boxy Tee", Size: "M", Qty: 2},
			{ProductID: "p2", Qty: 1},
		},
	}
}

func TestFormat(t *testing.T) {
	got := Format("#{order_id} {customer} {total}\n{items}\n{unknown}", payload())
	assert.Equal(t, "#ord-1 Ayu 123,456.00\n- Boxy Tee (M) x2\n- p2 x1\n{unknown}", got)
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "0.05", FormatCents(5))
	assert.Equal(t, "999.99", FormatCents(99999))
	assert.Equal(t, "1,000.00", FormatCents(100000))
	assert.Equal(t, "-12,345.67", FormatCents(-1234567))
}

func TestWhatsAppLink(t *testing.T) {
	link, err := WhatsAppLink("+62 812-3456", "Hi & welcome\nTotal: 5+5")
	require.NoError(t, err)

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "wa.me", u.Host)
	assert.Equal(t, "/628123456", u.Path)
	assert.Equal(t, "Hi & welcome\nTotal: 5+5", u.Query().Get("text"))
	assert.NotContains(t, link, "+")

	_, err = WhatsAppLink("n/a", "x")
	assert.ErrorIs(t, err, ErrInvalidPhone)
}
