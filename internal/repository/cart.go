package repository

import (
	"context"
	"database/sql"
	"fmt"

	"market/internal/domain"
)

// AddItem accumulates qty onto the product's cart row, creating it if absent.
// A single upsert statement, so concurrent adds for the same product never
// lose an update.
func (r *Repository) AddItem(ctx context.Context, productID int64, qty int) error {
	query := `
		INSERT INTO cart_items(product_id, qty) VALUES(?, ?)
		ON CONFLICT(product_id) DO UPDATE SET qty = qty + excluded.qty
	`

	if _, err := r.db.ExecContext(ctx, query, productID, qty); err != nil {
		return fmt.Errorf("failed to upsert cart item: %w", err)
	}
	return nil
}

func (r *Repository) CartItems(ctx context.Context) ([]domain.LineItem, error) {
	rows, err := r.db.QueryContext(ctx, cartJoinQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}

	return scanLineItems(rows)
}

// Checkout reads the joined cart, sums it and deletes every entry as one
// transaction. An add landing after the read waits for the commit and
// survives into the next cart.
func (r *Repository) Checkout(ctx context.Context) (float64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin checkout transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, cartJoinQuery)
	if err != nil {
		return 0, fmt.Errorf("failed to query cart items: %w", err)
	}
	items, err := scanLineItems(rows)
	if err != nil {
		return 0, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items`); err != nil {
		return 0, fmt.Errorf("failed to clear cart: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit checkout transaction: %w", err)
	}

	return SumItems(items), nil
}

func (r *Repository) ClearCart(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cart_items`); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// cartJoinQuery orders by product id so view and checkout accumulate their
// totals in the same order.
const cartJoinQuery = `
	SELECT c.product_id, c.qty, p.name, p.price
	FROM cart_items c
	JOIN products p ON c.product_id = p.id
	ORDER BY c.product_id
`

func scanLineItems(rows *sql.Rows) ([]domain.LineItem, error) {
	defer rows.Close()

	items := make([]domain.LineItem, 0)
	for rows.Next() {
		var it domain.LineItem
		if err := rows.Scan(&it.ProductID, &it.Qty, &it.Name, &it.Price); err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		it.Subtotal = it.Price * float64(it.Qty)
		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return items, nil
}

// SumItems accumulates line subtotals in slice order. Both the cart view and
// checkout go through it, so their totals always agree.
func SumItems(items []domain.LineItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Subtotal
	}
	return total
}
