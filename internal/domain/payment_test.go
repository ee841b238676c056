package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParsePaymentMethod(t *testing.T) {
	for _, m := range PaymentMethods() {
		got, err := ParsePaymentMethod(string(m))
		if err != nil || got != m {
			t.Fatalf("parse %q = %q, %v", m, got, err)
		}
	}
	if _, err := ParsePaymentMethod("cheque"); err == nil {
		t.Fatal("expected error for unknown method")
	}
}

func TestCashFamily(t *testing.T) {
	if !MethodCash.CashFamily() || !MethodCashDiscount.CashFamily() {
		t.Fatal("cash methods must be cash family")
	}
	for _, m := range []PaymentMethod{MethodQR, MethodCard, MethodTransfer, MethodWalletTransfer} {
		if m.CashFamily() {
			t.Fatalf("%s must not be cash family", m)
		}
	}
}

func TestPricingPolicyNormalized(t *testing.T) {
	if got := (PricingPolicy{}).Normalized(); got.PaymentSystem != PaymentSystemRounding {
		t.Fatalf("empty policy system = %s, want rounding", got.PaymentSystem)
	}
	if got := (PricingPolicy{PaymentSystem: "percentage"}).Normalized(); got.PaymentSystem != PaymentSystemRounding {
		t.Fatalf("unknown system = %s, want rounding", got.PaymentSystem)
	}
	if got := (PricingPolicy{PaymentSystem: PaymentSystemNone}).Normalized(); got.PaymentSystem != PaymentSystemNone {
		t.Fatalf("none system = %s, want none preserved", got.PaymentSystem)
	}

	zero := decimal.Zero
	if got := (PricingPolicy{CashDiscountPercent: &zero}).Normalized(); got.CashDiscountPercent != nil {
		t.Fatal("zero discount must normalize to nil")
	}
}

func TestSalesSummaryMissingMethods(t *testing.T) {
	totals := make(map[PaymentMethod]decimal.Decimal)
	for _, m := range PaymentMethods() {
		totals[m] = decimal.Zero
	}
	full := SalesSummary{TotalsByMethod: totals}
	if missing := full.MissingMethods(); len(missing) != 0 {
		t.Fatalf("missing = %v, want none", missing)
	}

	delete(totals, MethodQR)
	if missing := full.MissingMethods(); len(missing) != 1 || missing[0] != MethodQR {
		t.Fatalf("missing = %v, want [qr]", missing)
	}
}
