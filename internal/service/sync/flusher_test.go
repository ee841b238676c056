package sync

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"pos-terminal/internal/domain"
	"pos-terminal/internal/repository/pending"
)

type stubRepo struct {
	rows    []pending.Order
	deleted []int64
}

func (s *stubRepo) ListOldest(_ context.Context, limit int) ([]pending.Order, error) {
	if len(s.rows) > limit {
		return s.rows[:limit], nil
	}
	return s.rows, nil
}

func (s *stubRepo) Delete(_ context.Context, id int64) error {
	s.deleted = append(s.deleted, id)
	return nil
}

type stubOrders struct {
	created []domain.Order
	err     error
}

func (s *stubOrders) CreateOrder(_ context.Context, order domain.Order) error {
	if s.err != nil {
		return s.err
	}
	s.created = append(s.created, order)
	return nil
}

func pendingRow(t *testing.T, id int64, orderID string) pending.Order {
	t.Helper()
	payload, err := json.Marshal(domain.Order{ID: orderID})
	if err != nil {
		t.Fatalf("marshal order: %v", err)
	}
	return pending.Order{ID: id, Payload: payload, EnqueuedAt: time.Now()}
}

func newTestFlusher(repo *stubRepo, orders *stubOrders) *Flusher {
	return NewFlusher(repo, orders, time.Second, log.New(io.Discard, "", 0))
}

func TestFlushOnceSubmitsAndDeletes(t *testing.T) {
	repo := &stubRepo{rows: []pending.Order{pendingRow(t, 1, "o1"), pendingRow(t, 2, "o2")}}
	orders := &stubOrders{}

	newTestFlusher(repo, orders).FlushOnce(context.Background())

	if len(orders.created) != 2 {
		t.Fatalf("created %d orders, want 2", len(orders.created))
	}
	if orders.created[0].ID != "o1" || orders.created[1].ID != "o2" {
		t.Fatalf("flush order ids = %s, %s", orders.created[0].ID, orders.created[1].ID)
	}
	if len(repo.deleted) != 2 {
		t.Fatalf("deleted %d rows, want 2", len(repo.deleted))
	}
}

func TestFlushOnceLeavesFailedRows(t *testing.T) {
	repo := &stubRepo{rows: []pending.Order{pendingRow(t, 1, "o1")}}
	orders := &stubOrders{err: errors.New("backend down")}

	newTestFlusher(repo, orders).FlushOnce(context.Background())

	if len(repo.deleted) != 0 {
		t.Fatal("row deleted although submission failed")
	}
}

func TestFlushOnceDropsUnreadablePayload(t *testing.T) {
	repo := &stubRepo{rows: []pending.Order{{ID: 7, Payload: []byte("{"), EnqueuedAt: time.Now()}}}
	orders := &stubOrders{}

	newTestFlusher(repo, orders).FlushOnce(context.Background())

	if len(orders.created) != 0 {
		t.Fatal("unreadable payload was submitted")
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != 7 {
		t.Fatalf("deleted = %v, want the corrupt row", repo.deleted)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		newTestFlusher(&stubRepo{}, &stubOrders{}).Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("flusher did not stop on context cancel")
	}
}
