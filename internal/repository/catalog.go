package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"market/internal/domain"
)

var ErrProductNotFound = errors.New("product not found")

// defaultProducts is inserted on first startup against an empty store.
var defaultProducts = []domain.Product{
	{ID: 1, Name: "Apple", Price: 0.50, Image: "images/apple.svg"},
	{ID: 2, Name: "Bread", Price: 1.20, Image: "images/bread.svg"},
	{ID: 3, Name: "Milk", Price: 0.99, Image: "images/milk.svg"},
	{ID: 4, Name: "Cheese", Price: 2.50, Image: "images/cheese.svg"},
	{ID: 5, Name: "Chocolate", Price: 1.75, Image: "images/chocolate.svg"},
}

func (r *Repository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT id, name, price, image
		FROM products
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Image); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return products, nil
}

func (r *Repository) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	query := `
		SELECT id, name, price, image
		FROM products
		WHERE id = ?
	`

	var p domain.Product
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.Price, &p.Image)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// SeedProducts inserts the default catalog if the store holds no products.
// Keyed on the row count, so running it again is a no-op.
func (r *Repository) SeedProducts(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM products`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, p := range defaultProducts {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO products(id, name, price, image) VALUES(?, ?, ?, ?)`,
			p.ID, p.Name, p.Price, p.Image)
		if err != nil {
			return fmt.Errorf("failed to seed product %q: %w", p.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}
	return nil
}
