// Package notify turns new orders into WhatsApp-ready staff notifications.
package notify

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/ariefcatur/zenzee-admin/internal/orders"
)

var ErrInvalidPhone = errors.New("phone number has no digits")

// Format fills the placeholders {order_id}, {customer}, {phone}, {address},
// {total} and {items}. Unknown placeholders are left as written.
func Format(tmpl string, p orders.OrderCreatedPayload) string {
	lines := make([]string, 0, len(p.Items))
	for _, it := range p.Items {
		name := it.Name
		if name == "" {
			name = it.ProductID
		}
		if it.Size != "" {
			name += " (" + it.Size + ")"
		}
		lines = append(lines, fmt.Sprintf("- %s x%d", name, it.Qty))
	}
	r := strings.NewReplacer(
		"{order_id}", p.OrderID,
		"{customer}", p.Customer.Name,
		"{phone}", p.Customer.Phone,
		"{address}", p.Customer.Address,
		"{total}", FormatCents(p.TotalCents),
		"{items}", strings.Join(lines, "\n"),
	)
	return r.Replace(tmpl)
}

// FormatCents renders 150000 as "1,500.00".
func FormatCents(c int) string {
	sign := ""
	if c < 0 {
		sign, c = "-", -c
	}
	whole := fmt.Sprintf("%d", c/100)
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return fmt.Sprintf("%s%s.%02d", sign, b.String(), c%100)
}

// WhatsAppLink builds https://wa.me/<digits>?text=<message>.
func WhatsAppLink(phone, msg string) (string, error) {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return "", fmt.Errorf("%w: %q", ErrInvalidPhone, phone)
	}
	text := strings.ReplaceAll(url.QueryEscape(msg), "+", "%20")
	return "https://wa.me/" + digits.String() + "?text=" + text, nil
}
