package payment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"pos-terminal/internal/domain"
	"pos-terminal/internal/metrics"
	"pos-terminal/internal/session"

	"github.com/google/uuid"
)

// State of the current payment attempt.
type State string

const (
	StateIdle                 State = "idle"
	StateMethodChosen         State = "methodChosen"
	StateAwaitingConfirmation State = "awaitingConfirmation"
	StateSubmitting           State = "submitting"
)

type cartAccumulator interface {
	Snapshot() domain.Cart
	Clear()
}

type ordersClient interface {
	CreateOrder(ctx context.Context, order domain.Order) error
}

type receiptPrinter interface {
	PrintReceipt(ctx context.Context, order domain.Order) domain.PrintResult
}

type sessions interface {
	Current() (*session.Session, error)
}

type pendingQueue interface {
	Enqueue(ctx context.Context, order domain.Order) error
}

type attempt struct {
	key    string
	amount domain.ReconciledAmount
}

// Service drives one payment attempt at a time from method selection
// through confirmation, order submission and receipt printing. All gating
// is a single mutex over the attempt state: a second selection or a
// repeated confirmation while one is pending is a no-op, which is what
// turns double clicks and held-down Enter keys into exactly one order.
type Service struct {
	cart     cartAccumulator
	orders   ordersClient
	printer  receiptPrinter
	sessions sessions
	queue    pendingQueue
	logger   *log.Logger
	now      func() time.Time

	mu         sync.Mutex
	state      State
	attempt    *attempt
	lastFailed *domain.Order
}

func New(cart cartAccumulator, orders ordersClient, printer receiptPrinter, sessions sessions, queue pendingQueue, logger *log.Logger) *Service {
	return &Service{
		cart:     cart,
		orders:   orders,
		printer:  printer,
		sessions: sessions,
		queue:    queue,
		logger:   logger,
		now:      time.Now,
		state:    StateIdle,
	}
}

// Status is what the terminal UI renders for the payment dialog.
type Status struct {
	State  State                    `json:"state"`
	Amount *domain.ReconciledAmount `json:"amount,omitempty"`
	Result *SubmitResult            `json:"result,omitempty"`
}

// SubmitResult reports a completed submission. PrintWarning is non-empty
// when the order stands but the receipt could not be printed.
type SubmitResult struct {
	Order        domain.Order `json:"order"`
	PrintWarning string       `json:"printWarning,omitempty"`
}

// Select starts a payment attempt for the given method. Cash-family
// methods stop at awaitingConfirmation so the operator sees the
// reconciled amount before committing; everything else submits the
// original total directly.
func (s *Service) Select(ctx context.Context, method domain.PaymentMethod) (Status, error) {
	sess, err := s.sessions.Current()
	if err != nil {
		return s.Status(), err
	}

	s.mu.Lock()
	if s.state != StateIdle {
		s.mu.Unlock()
		return s.Status(), domain.ErrPaymentInFlight
	}

	cart := s.cart.Snapshot()
	if len(cart.Lines) == 0 {
		s.mu.Unlock()
		return s.Status(), domain.ErrEmptyCart
	}

	s.state = StateMethodChosen
	s.lastFailed = nil
	amount := Reconcile(cart.Total, sess.Policy, method)
	s.attempt = &attempt{key: uuid.NewString(), amount: amount}

	if method.CashFamily() {
		s.state = StateAwaitingConfirmation
		s.mu.Unlock()
		return s.Status(), nil
	}

	s.state = StateSubmitting
	ord := s.buildOrder(cart, sess)
	s.mu.Unlock()

	return s.submit(ctx, ord)
}

// Confirm commits a cash-family payment the operator has reviewed. A
// repeated confirmation while the submission is in flight is a no-op.
func (s *Service) Confirm(ctx context.Context) (Status, error) {
	sess, err := s.sessions.Current()
	if err != nil {
		return s.Status(), err
	}

	s.mu.Lock()
	switch s.state {
	case StateSubmitting:
		s.mu.Unlock()
		return s.Status(), nil
	case StateAwaitingConfirmation:
	default:
		s.mu.Unlock()
		return s.Status(), domain.ErrNoActivePayment
	}

	s.state = StateSubmitting
	ord := s.buildOrder(s.cart.Snapshot(), sess)
	s.mu.Unlock()

	return s.submit(ctx, ord)
}

// Cancel abandons the current attempt before submission. Once the order
// request is in flight it cannot be aborted; the attempt resolves either
// way and the state machine resets then.
func (s *Service) Cancel() (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateSubmitting {
		return s.statusLocked(), domain.ErrPaymentInFlight
	}
	s.reset()
	return s.statusLocked(), nil
}

// QueueLastFailed stores the most recent failed order in the local
// pending queue for the sync loop to retry, clearing the cart. The order
// keeps its idempotency key, so a late success of the original request
// cannot double-charge.
func (s *Service) QueueLastFailed(ctx context.Context) error {
	s.mu.Lock()
	ord := s.lastFailed
	s.mu.Unlock()
	if ord == nil {
		return errors.New("no failed order to queue")
	}

	if err := s.queue.Enqueue(ctx, *ord); err != nil {
		return fmt.Errorf("queue order: %w", err)
	}
	metrics.OrdersQueued.Inc()
	s.logger.Printf("order %s queued for sync", ord.ID)

	s.cart.Clear()
	s.mu.Lock()
	s.lastFailed = nil
	s.mu.Unlock()
	return nil
}

// Status returns the current attempt state for rendering.
func (s *Service) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked()
}

func (s *Service) statusLocked() Status {
	st := Status{State: s.state}
	if s.attempt != nil {
		amount := s.attempt.amount
		st.Amount = &amount
	}
	return st
}

func (s *Service) buildOrder(cart domain.Cart, sess *session.Session) domain.Order {
	items := make([]domain.OrderItem, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		items = append(items, domain.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			UnitCost:  line.UnitCost,
			Subtotal:  line.Subtotal,
		})
	}
	return domain.Order{
		ID:         s.attempt.key,
		Items:      items,
		Method:     s.attempt.amount.Method,
		Total:      s.attempt.amount.Final,
		SellerID:   sess.Seller.ID,
		SellerName: sess.Seller.Name,
		BranchID:   sess.BranchID,
		CreatedAt:  s.now().UTC(),
	}
}

// submit runs with state already set to submitting and the lock
// released, so status queries stay responsive and repeated inputs hit
// the submitting gate instead of starting a second attempt.
func (s *Service) submit(ctx context.Context, ord domain.Order) (Status, error) {
	if err := s.orders.CreateOrder(ctx, ord); err != nil {
		metrics.OrdersFailed.Inc()
		s.logger.Printf("create order %s: %v", ord.ID, err)

		s.mu.Lock()
		s.reset()
		s.lastFailed = &ord
		st := s.statusLocked()
		s.mu.Unlock()
		return st, fmt.Errorf("create order: %w", err)
	}
	metrics.OrdersSubmitted.Inc()

	// Order creation always precedes printing. A print failure is a
	// warning: the order is already persisted and stands.
	warning := ""
	res := s.printer.PrintReceipt(ctx, ord)
	switch {
	case !res.Success:
		metrics.PrintFailures.Inc()
		warning = res.Message
		if warning == "" {
			warning = "receipt could not be printed"
		}
		s.logger.Printf("print receipt for order %s: %s", ord.ID, warning)
	case res.PrinterError:
		metrics.ReceiptsPrinted.Inc()
		warning = res.Message
		s.logger.Printf("printer reported a problem for order %s: %s", ord.ID, warning)
	default:
		metrics.ReceiptsPrinted.Inc()
	}

	s.cart.Clear()

	s.mu.Lock()
	s.reset()
	st := s.statusLocked()
	s.mu.Unlock()
	st.Result = &SubmitResult{Order: ord, PrintWarning: warning}
	return st, nil
}

// reset returns the machine to idle, clearing every transient field so
// the next attempt starts clean.
func (s *Service) reset() {
	s.state = StateIdle
	s.attempt = nil
}
