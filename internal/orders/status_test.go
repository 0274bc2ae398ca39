package orders

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StatusPending, StatusConfirmed))
	assert.True(t, CanTransition(StatusProcessing, StatusCancelled))
	assert.True(t, CanTransition(StatusShipped, StatusDelivered))
	assert.False(t, CanTransition(StatusShipped, StatusCancelled))
	assert.False(t, CanTransition(StatusDelivered, StatusPending))
	assert.False(t, CanTransition(Status("bogus"), StatusPending))
}

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusCancelled.Valid())
	assert.False(t, Status("PAID").Valid())
}

func TestValidateInput(t *testing.T) {
	c := Customer{Name: "Ayu", Phone: "+62 812"}
	items := []ItemInput{{ProductID: "p1", Qty: 2}}

	assert.NoError(t, ValidateInput("ext-1", c, items))

	cases := map[string]error{
		"no external":  ValidateInput(" ", c, items),
		"no phone":     ValidateInput("ext-1", Customer{Name: "Ayu"}, items),
		"no items":     ValidateInput("ext-1", c, nil),
		"zero qty":     ValidateInput("ext-1", c, []ItemInput{{ProductID: "p1"}}),
		"no productID": ValidateInput("ext-1", c, []ItemInput{{Qty: 1}}),
	}
	for name, err := range cases {
		assert.True(t, errors.Is(err, ErrInvalidOrder), name)
	}
}

func TestPayloadFor(t *testing.T) {
	o := Order{ID: "o1", ExternalID: "e1", CustomerName: "Ayu", CustomerPhone: "0812", TotalCents: 1500,
		Items: []OrderItem{{ProductID: "p1", Name: "Tee", Qty: 1, PriceCents: 1500}}}

	p := PayloadFor(o)

	assert.Equal(t, "o1", p.OrderID)
	assert.Equal(t, "Ayu", p.Customer.Name)
	assert.Equal(t, o.Items, p.Items)
}
