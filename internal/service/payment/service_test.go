package payment

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"testing"

	"pos-terminal/internal/domain"
	"pos-terminal/internal/session"

	"github.com/shopspring/decimal"
)

type stubCart struct {
	mu      sync.Mutex
	cart    domain.Cart
	cleared int
}

func (s *stubCart) Snapshot() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart
}

func (s *stubCart) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cleared++
	s.cart = domain.Cart{}
}

type stubOrders struct {
	mu      sync.Mutex
	created []domain.Order
	err     error
}

func (s *stubOrders) CreateOrder(_ context.Context, order domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.created = append(s.created, order)
	return nil
}

func (s *stubOrders) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.created)
}

type stubPrinter struct {
	res     domain.PrintResult
	printed []domain.Order
}

func (s *stubPrinter) PrintReceipt(_ context.Context, order domain.Order) domain.PrintResult {
	s.printed = append(s.printed, order)
	return s.res
}

type stubSessions struct {
	sess *session.Session
	err  error
}

func (s *stubSessions) Current() (*session.Session, error) {
	return s.sess, s.err
}

type stubQueue struct {
	enqueued []domain.Order
	err      error
}

func (s *stubQueue) Enqueue(_ context.Context, order domain.Order) error {
	if s.err != nil {
		return s.err
	}
	s.enqueued = append(s.enqueued, order)
	return nil
}

func testSession() *session.Session {
	return &session.Session{
		Seller:   domain.Seller{ID: "s1", Name: "Ana"},
		BranchID: "b1",
		Policy:   domain.PricingPolicy{PaymentSystem: domain.PaymentSystemRounding},
	}
}

func cartWithTotal(total string) *stubCart {
	return &stubCart{cart: domain.Cart{
		Lines: []domain.CartLine{{
			ID:        "l1",
			ProductID: "p1",
			Name:      "Tomate",
			Unit:      domain.UnitKilogram,
			Quantity:  decimal.NewFromInt(1),
			UnitPrice: dec(total),
			Subtotal:  dec(total),
		}},
		Total: dec(total),
	}}
}

func newTestService(cart *stubCart, orders *stubOrders, printer *stubPrinter, sessions *stubSessions, queue *stubQueue) *Service {
	return New(cart, orders, printer, sessions, queue, log.New(io.Discard, "", 0))
}

func TestSelectNonCashSubmitsDirectly(t *testing.T) {
	cart := cartWithTotal("2030")
	orders := &stubOrders{}
	printer := &stubPrinter{res: domain.PrintResult{Success: true}}
	svc := newTestService(cart, orders, printer, &stubSessions{sess: testSession()}, &stubQueue{})

	st, err := svc.Select(context.Background(), domain.MethodCard)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if st.State != StateIdle {
		t.Fatalf("state = %s, want idle", st.State)
	}
	if st.Result == nil {
		t.Fatal("expected a submit result")
	}
	if orders.count() != 1 {
		t.Fatalf("created %d orders, want 1", orders.count())
	}
	if !orders.created[0].Total.Equal(dec("2030")) {
		t.Fatalf("order total = %s, want 2030", orders.created[0].Total)
	}
	if cart.cleared != 1 {
		t.Fatalf("cart cleared %d times, want 1", cart.cleared)
	}
}

func TestSelectCashAwaitsConfirmation(t *testing.T) {
	cart := cartWithTotal("2030")
	orders := &stubOrders{}
	printer := &stubPrinter{res: domain.PrintResult{Success: true}}
	svc := newTestService(cart, orders, printer, &stubSessions{sess: testSession()}, &stubQueue{})

	st, err := svc.Select(context.Background(), domain.MethodCash)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if st.State != StateAwaitingConfirmation {
		t.Fatalf("state = %s, want awaitingConfirmation", st.State)
	}
	if st.Amount == nil || !st.Amount.Final.Equal(dec("2000")) {
		t.Fatalf("reconciled amount = %+v, want final 2000", st.Amount)
	}
	if orders.count() != 0 {
		t.Fatal("order submitted before confirmation")
	}

	st, err = svc.Confirm(context.Background())
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if orders.count() != 1 {
		t.Fatalf("created %d orders, want 1", orders.count())
	}
	ord := orders.created[0]
	if ord.ID == "" {
		t.Fatal("order has no idempotency key")
	}
	if !ord.Total.Equal(dec("2000")) {
		t.Fatalf("order total = %s, want 2000", ord.Total)
	}
	if ord.SellerID != "s1" || ord.BranchID != "b1" {
		t.Fatalf("order attribution = %s/%s", ord.SellerID, ord.BranchID)
	}
	if cart.cleared != 1 {
		t.Fatalf("cart cleared %d times, want 1", cart.cleared)
	}
}

func TestSelectWhileAttemptInFlight(t *testing.T) {
	svc := newTestService(cartWithTotal("2030"), &stubOrders{}, &stubPrinter{res: domain.PrintResult{Success: true}}, &stubSessions{sess: testSession()}, &stubQueue{})

	if _, err := svc.Select(context.Background(), domain.MethodCash); err != nil {
		t.Fatalf("select: %v", err)
	}
	if _, err := svc.Select(context.Background(), domain.MethodCard); !errors.Is(err, domain.ErrPaymentInFlight) {
		t.Fatalf("second select err = %v, want ErrPaymentInFlight", err)
	}
}

func TestConcurrentConfirmSubmitsOnce(t *testing.T) {
	cart := cartWithTotal("2030")
	orders := &stubOrders{}
	svc := newTestService(cart, orders, &stubPrinter{res: domain.PrintResult{Success: true}}, &stubSessions{sess: testSession()}, &stubQueue{})

	if _, err := svc.Select(context.Background(), domain.MethodCash); err != nil {
		t.Fatalf("select: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			svc.Confirm(context.Background())
		}()
	}
	wg.Wait()

	if orders.count() != 1 {
		t.Fatalf("created %d orders from repeated confirms, want 1", orders.count())
	}
}

func TestConfirmWithoutAttempt(t *testing.T) {
	svc := newTestService(cartWithTotal("2030"), &stubOrders{}, &stubPrinter{}, &stubSessions{sess: testSession()}, &stubQueue{})
	if _, err := svc.Confirm(context.Background()); !errors.Is(err, domain.ErrNoActivePayment) {
		t.Fatalf("err = %v, want ErrNoActivePayment", err)
	}
}

func TestCancelResetsBeforeSubmission(t *testing.T) {
	svc := newTestService(cartWithTotal("2030"), &stubOrders{}, &stubPrinter{}, &stubSessions{sess: testSession()}, &stubQueue{})
	if _, err := svc.Select(context.Background(), domain.MethodCash); err != nil {
		t.Fatalf("select: %v", err)
	}

	st, err := svc.Cancel()
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if st.State != StateIdle {
		t.Fatalf("state = %s, want idle", st.State)
	}
}

func TestCancelWhileSubmittingRejected(t *testing.T) {
	svc := newTestService(cartWithTotal("2030"), &stubOrders{}, &stubPrinter{}, &stubSessions{sess: testSession()}, &stubQueue{})
	svc.state = StateSubmitting

	if _, err := svc.Cancel(); !errors.Is(err, domain.ErrPaymentInFlight) {
		t.Fatalf("err = %v, want ErrPaymentInFlight", err)
	}
}

func TestSelectEmptyCart(t *testing.T) {
	svc := newTestService(&stubCart{}, &stubOrders{}, &stubPrinter{}, &stubSessions{sess: testSession()}, &stubQueue{})
	if _, err := svc.Select(context.Background(), domain.MethodCash); !errors.Is(err, domain.ErrEmptyCart) {
		t.Fatalf("err = %v, want ErrEmptyCart", err)
	}
}

func TestSelectWithoutSession(t *testing.T) {
	svc := newTestService(cartWithTotal("2030"), &stubOrders{}, &stubPrinter{}, &stubSessions{err: domain.ErrNoSession}, &stubQueue{})
	if _, err := svc.Select(context.Background(), domain.MethodCash); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("err = %v, want ErrNoSession", err)
	}
}

func TestPrintFailureKeepsOrder(t *testing.T) {
	cart := cartWithTotal("2030")
	orders := &stubOrders{}
	printer := &stubPrinter{res: domain.PrintResult{Success: false, Message: "out of paper"}}
	svc := newTestService(cart, orders, printer, &stubSessions{sess: testSession()}, &stubQueue{})

	st, err := svc.Select(context.Background(), domain.MethodCard)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if orders.count() != 1 {
		t.Fatalf("created %d orders, want 1", orders.count())
	}
	if st.Result == nil || st.Result.PrintWarning == "" {
		t.Fatalf("result = %+v, want a print warning", st.Result)
	}
	if cart.cleared != 1 {
		t.Fatal("cart must be cleared even when the receipt fails")
	}
}

func TestSubmitFailureKeepsCart(t *testing.T) {
	cart := cartWithTotal("2030")
	orders := &stubOrders{err: errors.New("backend down")}
	svc := newTestService(cart, orders, &stubPrinter{}, &stubSessions{sess: testSession()}, &stubQueue{})

	_, err := svc.Select(context.Background(), domain.MethodCard)
	if err == nil {
		t.Fatal("expected submit error")
	}
	if cart.cleared != 0 {
		t.Fatal("cart cleared after a failed submission")
	}
	if svc.Status().State != StateIdle {
		t.Fatalf("state = %s, want idle for retry", svc.Status().State)
	}
}

func TestQueueLastFailed(t *testing.T) {
	cart := cartWithTotal("2030")
	orders := &stubOrders{err: errors.New("backend down")}
	queue := &stubQueue{}
	svc := newTestService(cart, orders, &stubPrinter{}, &stubSessions{sess: testSession()}, queue)

	if _, err := svc.Select(context.Background(), domain.MethodCard); err == nil {
		t.Fatal("expected submit error")
	}

	if err := svc.QueueLastFailed(context.Background()); err != nil {
		t.Fatalf("queue: %v", err)
	}
	if len(queue.enqueued) != 1 {
		t.Fatalf("enqueued %d orders, want 1", len(queue.enqueued))
	}
	if queue.enqueued[0].ID == "" {
		t.Fatal("queued order lost its idempotency key")
	}
	if cart.cleared != 1 {
		t.Fatal("cart must be cleared after queueing")
	}

	if err := svc.QueueLastFailed(context.Background()); err == nil {
		t.Fatal("second queue of the same failure must error")
	}
}

func TestQueueWithoutFailure(t *testing.T) {
	svc := newTestService(cartWithTotal("2030"), &stubOrders{}, &stubPrinter{}, &stubSessions{sess: testSession()}, &stubQueue{})
	if err := svc.QueueLastFailed(context.Background()); err == nil {
		t.Fatal("expected an error with nothing to queue")
	}
}
