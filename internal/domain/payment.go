package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PaymentMethod is the closed set of ways a sale can be settled.
type PaymentMethod string

const (
	MethodQR             PaymentMethod = "qr"
	MethodCard           PaymentMethod = "card"
	MethodCash           PaymentMethod = "cash"
	MethodCashDiscount   PaymentMethod = "cashDiscount"
	MethodTransfer       PaymentMethod = "transfer"
	MethodWalletTransfer PaymentMethod = "walletTransfer"
)

// PaymentMethods lists every configured method. Closing aggregates must
// cover all of them, even at zero.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{
		MethodQR,
		MethodCard,
		MethodCash,
		MethodCashDiscount,
		MethodTransfer,
		MethodWalletTransfer,
	}
}

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(s)
	for _, known := range PaymentMethods() {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown payment method %q", s)
}

// CashFamily reports whether the method settles in physical cash and is
// therefore subject to the rounding/discount policy and an operator
// confirmation step.
func (m PaymentMethod) CashFamily() bool {
	return m == MethodCash || m == MethodCashDiscount
}

// PaymentSystem selects how cash amounts are adjusted at the register.
type PaymentSystem string

const (
	PaymentSystemRounding PaymentSystem = "rounding"
	PaymentSystemNone     PaymentSystem = "none"
)

// PricingPolicy is business configuration fetched once per session.
type PricingPolicy struct {
	PaymentSystem       PaymentSystem    `json:"paymentSystem"`
	CashDiscountPercent *decimal.Decimal `json:"cashDiscountPercent,omitempty"`
}

// Normalized applies the fail-safe defaults: an absent or unrecognized
// payment system becomes "rounding" rather than blocking checkout, and a
// non-positive discount percentage is treated as not configured.
func (p PricingPolicy) Normalized() PricingPolicy {
	out := p
	if out.PaymentSystem != PaymentSystemRounding && out.PaymentSystem != PaymentSystemNone {
		out.PaymentSystem = PaymentSystemRounding
	}
	if out.CashDiscountPercent != nil && !out.CashDiscountPercent.IsPositive() {
		out.CashDiscountPercent = nil
	}
	return out
}

// ReconciledAmount is the outcome of one reconciliation pass: what the
// cart added up to and what the cashier actually collects.
type ReconciledAmount struct {
	Original decimal.Decimal `json:"original"`
	Final    decimal.Decimal `json:"final"`
	Method   PaymentMethod   `json:"method"`
}

// Delta is the amount forgiven by discount and rounding combined.
func (r ReconciledAmount) Delta() decimal.Decimal {
	return r.Original.Sub(r.Final)
}
