package closing

import (
	"context"
	"encoding/json"
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

func (r *postgresRepo) Record(ctx context.Context, rec domain.ClosingRecord) error {
	summary, err := json.Marshal(rec.Summary)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	const q = `
INSERT INTO closings (seller_id, seller_name, branch_id, period, start_at, end_at, summary)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`
	if _, err := r.pool.Exec(ctx, q, rec.SellerID, rec.SellerName, rec.BranchID, string(rec.Period), rec.StartAt, rec.EndAt, summary); err != nil {
		return fmt.Errorf("insert closing: %w", err)
	}
	return nil
}

func (r *postgresRepo) LastBySeller(ctx context.Context, sellerID string) (*domain.ClosingRecord, error) {
	const q = `
SELECT seller_id, seller_name, branch_id, period, start_at, end_at, summary
FROM closings
WHERE seller_id = $1
ORDER BY end_at DESC
LIMIT 1
`
	var rec domain.ClosingRecord
	var period string
	var summary []byte
	err := r.pool.QueryRow(ctx, q, sellerID).Scan(
		&rec.SellerID,
		&rec.SellerName,
		&rec.BranchID,
		&period,
		&rec.StartAt,
		&rec.EndAt,
		&summary,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	rec.Period = domain.ClosingPeriod(period)
	if err := json.Unmarshal(summary, &rec.Summary); err != nil {
		return nil, fmt.Errorf("unmarshal summary: %w", err)
	}
	return &rec, nil
}
