package pending

import (
	"context"
	"time"

	"pos-terminal/internal/domain"
)

// Order is one queued submission: the serialized order plus queue
// bookkeeping. The payload carries its own idempotency key.
type Order struct {
	ID         int64
	Payload    []byte
	EnqueuedAt time.Time
}

// Repository is the durable queue of orders that could not reach the
// order service when they were taken.
type Repository interface {
	Enqueue(ctx context.Context, order domain.Order) error
	ListOldest(ctx context.Context, limit int) ([]Order, error)
	Delete(ctx context.Context, id int64) error
}
