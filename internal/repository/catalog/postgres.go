package catalog

import (
	"context"
	"errors"
	"fmt"

	"pos-terminal/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

// ReplaceAll swaps the entire cached catalog in one transaction so a
// half-applied refresh can never be observed.
func (r *postgresRepo) ReplaceAll(ctx context.Context, products []domain.Product) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM products`); err != nil {
		return fmt.Errorf("clear products: %w", err)
	}

	const q = `
INSERT INTO products (id, name, unit, price, cost, barcode, updated_at)
VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), now())
`
	for _, p := range products {
		if _, err := tx.Exec(ctx, q, p.ID, p.Name, p.Unit, p.Price, p.Cost, p.Barcode); err != nil {
			return fmt.Errorf("insert product %s: %w", p.ID, err)
		}
	}

	return tx.Commit(ctx)
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	const q = `
SELECT id, name, unit, price, cost, COALESCE(barcode, ''), updated_at
FROM products
ORDER BY name
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Unit, &p.Price, &p.Cost, &p.Barcode, &p.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const q = `
SELECT id, name, unit, price, cost, COALESCE(barcode, ''), updated_at
FROM products
WHERE id = $1
`
	var p domain.Product
	if err := r.pool.QueryRow(ctx, q, id).Scan(&p.ID, &p.Name, &p.Unit, &p.Price, &p.Cost, &p.Barcode, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) GetByBarcode(ctx context.Context, code string) (*domain.Product, error) {
	const q = `
SELECT id, name, unit, price, cost, COALESCE(barcode, ''), updated_at
FROM products
WHERE barcode = $1
`
	var p domain.Product
	if err := r.pool.QueryRow(ctx, q, code).Scan(&p.ID, &p.Name, &p.Unit, &p.Price, &p.Cost, &p.Barcode, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}
