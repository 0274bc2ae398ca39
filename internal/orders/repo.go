package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound          = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidOrder      = errors.New("invalid order")
)

type Repo struct{ DB *pgxpool.Pool }

// ValidateInput checks a checkout request before touching the database.
func ValidateInput(externalID string, c Customer, items []ItemInput) error {
	if strings.TrimSpace(externalID) == "" {
		return fmt.Errorf("%w: missing external_id", ErrInvalidOrder)
	}
	if strings.TrimSpace(c.Name) == "" || strings.TrimSpace(c.Phone) == "" {
		return fmt.Errorf("%w: missing customer name or phone", ErrInvalidOrder)
	}
	if len(items) == 0 {
		return fmt.Errorf("%w: no items", ErrInvalidOrder)
	}
	for _, it := range items {
		if it.ProductID == "" || it.Qty <= 0 {
			return fmt.Errorf("%w: bad item %q qty=%d", ErrInvalidOrder, it.ProductID, it.Qty)
		}
	}
	return nil
}

// CreateOrder is idempotent on externalID: a repeat returns the existing
// order with existed=true. Prices come from the products table.
func (r *Repo) CreateOrder(ctx context.Context, externalID string, c Customer, items []ItemInput) (o Order, existed bool, err error) {
	if err := ValidateInput(externalID, c, items); err != nil {
		return Order{}, false, err
	}

	err = r.DB.QueryRow(ctx, `SELECT id, total_cents FROM orders WHERE external_id=$1`, externalID).Scan(&o.ID, &o.TotalCents)
	if err == nil {
		o.ExternalID = externalID
		return o, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return Order{}, false, err
	}

	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Order{}, false, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	rows, err := tx.Query(ctx, `SELECT id, name, price_cents FROM products WHERE id = ANY($1) AND active`, ids)
	if err != nil {
		return Order{}, false, err
	}
	type priced struct {
		name  string
		price int
	}
	prices := map[string]priced{}
	for rows.Next() {
		var id string
		var p priced
		if err := rows.Scan(&id, &p.name, &p.price); err != nil {
			rows.Close()
			return Order{}, false, err
		}
		prices[id] = p
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return Order{}, false, err
	}

	o = Order{
		ID:            uuid.NewString(),
		ExternalID:    externalID,
		CustomerName:  c.Name,
		CustomerEmail: c.Email,
		CustomerPhone: c.Phone,
		Address:       c.Address,
		Status:        StatusPending,
	}
	for _, it := range items {
		p, ok := prices[it.ProductID]
		if !ok {
			return Order{}, false, fmt.Errorf("%w: product not found: %s", ErrInvalidOrder, it.ProductID)
		}
		o.TotalCents += p.price * it.Qty
		o.Items = append(o.Items, OrderItem{ProductID: it.ProductID, Name: p.name, Size: it.Size, Qty: it.Qty, PriceCents: p.price})
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO orders(id, external_id, customer_name, customer_email, customer_phone, address, status, total_cents)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`, o.ID, o.ExternalID, o.CustomerName, o.CustomerEmail, o.CustomerPhone, o.Address, string(o.Status), o.TotalCents).
		Scan(&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return Order{}, false, err
	}
	for _, it := range o.Items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items(order_id, product_id, name, size, qty, price_cents)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			o.ID, it.ProductID, it.Name, it.Size, it.Qty, it.PriceCents,
		); err != nil {
			return Order{}, false, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Order{}, false, err
	}
	return o, false, nil
}

func (r *Repo) GetOrderStatus(ctx context.Context, orderID string) (Status, error) {
	var s string
	err := r.DB.QueryRow(ctx, `SELECT status FROM orders WHERE id=$1`, orderID).Scan(&s)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return Status(s), nil
}

// ListOrders returns the newest orders first, optionally filtered by status.
func (r *Repo) ListOrders(ctx context.Context, status Status, limit int) ([]Order, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := r.DB.Query(ctx, `
		SELECT id, external_id, customer_name, customer_email, customer_phone, address, status, total_cents, created_at, updated_at
		FROM orders
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2`, string(status), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		var o Order
		var s string
		if err := rows.Scan(&o.ID, &o.ExternalID, &o.CustomerName, &o.CustomerEmail, &o.CustomerPhone,
			&o.Address, &s, &o.TotalCents, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		o.Status = Status(s)
		out = append(out, o)
	}
	return out, rows.Err()
}

// UpdateStatus moves an order along the status graph under a row lock.
func (r *Repo) UpdateStatus(ctx context.Context, orderID string, to Status) error {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var s string
	err = tx.QueryRow(ctx, `SELECT status FROM orders WHERE id=$1 FOR UPDATE`, orderID).Scan(&s)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if !CanTransition(Status(s), to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, to)
	}
	if _, err := tx.Exec(ctx, `UPDATE orders SET status=$2, updated_at=now() WHERE id=$1`, orderID, string(to)); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
