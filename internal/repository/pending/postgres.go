package pending

import (
	"context"
	"encoding/json"
	"fmt"

	"pos-terminal/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Enqueue(ctx context.Context, order domain.Order) error {
	payload, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("marshal order: %w", err)
	}
	const q = `
INSERT INTO pending_orders (order_id, payload)
VALUES ($1, $2)
ON CONFLICT (order_id) DO NOTHING
`
	if _, err := r.pool.Exec(ctx, q, order.ID, payload); err != nil {
		return fmt.Errorf("enqueue order: %w", err)
	}
	return nil
}

func (r *postgresRepo) ListOldest(ctx context.Context, limit int) ([]Order, error) {
	const q = `
SELECT id, payload, enqueued_at
FROM pending_orders
ORDER BY enqueued_at
LIMIT $1
`
	rows, err := r.pool.Query(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.Payload, &o.EnqueuedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *postgresRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM pending_orders WHERE id = $1`, id)
	return err
}
