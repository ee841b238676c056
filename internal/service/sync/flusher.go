package sync

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"pos-terminal/internal/domain"
	"pos-terminal/internal/metrics"
	"pos-terminal/internal/repository/pending"
)

type pendingRepo interface {
	ListOldest(ctx context.Context, limit int) ([]pending.Order, error)
	Delete(ctx context.Context, id int64) error
}

type ordersClient interface {
	CreateOrder(ctx context.Context, order domain.Order) error
}

// Flusher drains the local pending-order queue to the remote order
// service. Orders keep the idempotency key minted when they were first
// submitted, so a retry that races a late upstream success is harmless.
type Flusher struct {
	tick   time.Duration
	repo   pendingRepo
	orders ordersClient
	logger *log.Logger
}

func NewFlusher(repo pendingRepo, orders ordersClient, tick time.Duration, logger *log.Logger) *Flusher {
	return &Flusher{tick: tick, repo: repo, orders: orders, logger: logger}
}

// Run loops until the context is cancelled.
func (f *Flusher) Run(ctx context.Context) {
	ticker := time.NewTicker(f.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			f.FlushOnce(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// FlushOnce attempts one pass over the queue, oldest first. A failed
// submission leaves the row in place for the next tick.
func (f *Flusher) FlushOnce(ctx context.Context) {
	rows, err := f.repo.ListOldest(ctx, 20)
	if err != nil {
		f.logger.Printf("list pending orders: %v", err)
		return
	}

	for _, row := range rows {
		var ord domain.Order
		if err := json.Unmarshal(row.Payload, &ord); err != nil {
			f.logger.Printf("pending order %d has an unreadable payload, dropping: %v", row.ID, err)
			if err := f.repo.Delete(ctx, row.ID); err != nil {
				f.logger.Printf("delete pending order %d: %v", row.ID, err)
			}
			continue
		}

		if err := f.orders.CreateOrder(ctx, ord); err != nil {
			f.logger.Printf("flush order %s: %v", ord.ID, err)
			continue
		}

		if err := f.repo.Delete(ctx, row.ID); err != nil {
			f.logger.Printf("delete pending order %d: %v", row.ID, err)
			continue
		}
		metrics.OrdersFlushed.Inc()
		f.logger.Printf("order %s flushed to backend", ord.ID)
	}
}
