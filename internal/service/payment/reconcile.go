package payment

import (
	"pos-terminal/internal/domain"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// RoundDownTo50 floors a non-negative amount to the nearest multiple of
// 50 currency units. The value is normalized to two decimal places first
// so binary floating-point drift upstream cannot move it across a
// boundary; the fractional remainder is discarded along with the
// integer-part remainder. Exact multiples of 50 come back unchanged.
func RoundDownTo50(x decimal.Decimal) decimal.Decimal {
	x = x.Round(2)
	if x.IsNegative() {
		return decimal.Zero
	}
	n := x.IntPart()
	return decimal.NewFromInt(n - n%50)
}

// Reconcile computes what the cashier actually collects for a payment.
// Only cash-family methods are adjusted: an optional percentage discount
// for cashDiscount, then the round-down-to-50 step whenever the business
// runs the rounding payment system. The result never exceeds the
// original total.
//
// Requesting cashDiscount when no discount percentage is configured is
// operator error, not a failure: it silently falls back to the plain
// cash path.
func Reconcile(total decimal.Decimal, policy domain.PricingPolicy, method domain.PaymentMethod) domain.ReconciledAmount {
	policy = policy.Normalized()
	out := domain.ReconciledAmount{Original: total, Final: total, Method: method}
	if !method.CashFamily() {
		return out
	}

	amount := total
	if method == domain.MethodCashDiscount && policy.CashDiscountPercent != nil {
		amount = total.Sub(total.Mul(*policy.CashDiscountPercent).Div(hundred)).Round(2)
	}
	if policy.PaymentSystem == domain.PaymentSystemRounding {
		amount = RoundDownTo50(amount)
	}

	out.Final = amount
	return out
}
