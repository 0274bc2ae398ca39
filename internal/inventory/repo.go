package inventory

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) ListProducts(ctx context.Context) ([]Product, error) {
	rows, err := r.DB.Query(ctx, `SELECT id, sku, name, category, stock, price_cents, active, updated_at
                                FROM products ORDER BY sku`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.SKU, &p.Name, &p.Category, &p.Stock, &p.PriceCents, &p.Active, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ApplyBulk locks the selected rows, plans the change and writes it in one
// transaction. A missing product aborts the whole batch.
func (r *Repo) ApplyBulk(ctx context.Context, ids []string, op Op, qty int) ([]StockChange, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	rows, err := tx.Query(ctx, `SELECT id, stock FROM products WHERE id = ANY($1) ORDER BY id FOR UPDATE`, ids)
	if err != nil {
		return nil, err
	}
	current := map[string]int{}
	for rows.Next() {
		var id string
		var stock int
		if err := rows.Scan(&id, &stock); err != nil {
			rows.Close()
			return nil, err
		}
		current[id] = stock
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	changes, err := Plan(current, ids, op, qty)
	if err != nil {
		return nil, err
	}
	for _, c := range changes {
		if _, err := tx.Exec(ctx, `UPDATE products SET stock=$2, updated_at=now() WHERE id=$1`, c.ProductID, c.To); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return changes, nil
}
