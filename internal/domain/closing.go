package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ClosingPeriod labels the reporting window of a register cut-off.
type ClosingPeriod string

const (
	PeriodMorning   ClosingPeriod = "morning"
	PeriodAfternoon ClosingPeriod = "afternoon"
	PeriodAllDay    ClosingPeriod = "allDay"
)

func ParseClosingPeriod(s string) (ClosingPeriod, error) {
	switch p := ClosingPeriod(s); p {
	case PeriodMorning, PeriodAfternoon, PeriodAllDay:
		return p, nil
	default:
		return "", fmt.Errorf("unknown closing period %q", s)
	}
}

// SalesSummary holds the aggregates the order service reports for a
// boundary pair. The contract requires a bucket for every configured
// payment method, even at zero.
type SalesSummary struct {
	TotalsByMethod map[PaymentMethod]decimal.Decimal `json:"totalsByMethod"`
	TotalsBySeller map[string]decimal.Decimal        `json:"totalsBySeller"`
	TotalAmount    decimal.Decimal                   `json:"totalAmount"`
	SaleCount      int                               `json:"saleCount"`
}

// MissingMethods returns the configured payment methods absent from the
// per-method buckets. A non-empty result is a service-side contract
// violation, reported rather than patched locally.
func (s SalesSummary) MissingMethods() []PaymentMethod {
	var missing []PaymentMethod
	for _, m := range PaymentMethods() {
		if _, ok := s.TotalsByMethod[m]; !ok {
			missing = append(missing, m)
		}
	}
	return missing
}

// ClosingRecord is a single-use value: built from a start boundary and
// server aggregates, submitted to the closing service, then forwarded
// verbatim to the printer.
type ClosingRecord struct {
	SellerID   string        `json:"sellerId"`
	SellerName string        `json:"sellerName"`
	BranchID   string        `json:"branchId"`
	Period     ClosingPeriod `json:"period"`
	StartAt    time.Time     `json:"startAt"`
	EndAt      time.Time     `json:"endAt"`
	Summary    SalesSummary  `json:"summary"`
}

// Seller identifies the operator logged in at the terminal.
type Seller struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
