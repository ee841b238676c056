package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrEmptyCart indicates an operation that needs cart lines ran against an empty cart.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrPaymentInFlight indicates a payment attempt is already active.
	ErrPaymentInFlight = errors.New("payment already in flight")
	// ErrNoActivePayment indicates a confirmation arrived without a pending cash payment.
	ErrNoActivePayment = errors.New("no payment awaiting confirmation")
	// ErrClosingInFlight indicates a register closing is already running.
	ErrClosingInFlight = errors.New("closing already in flight")
	// ErrNoSession indicates no seller is logged in on this terminal.
	ErrNoSession = errors.New("no active session")
)
