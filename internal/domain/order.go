package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is the record submitted to the remote order service. ID doubles
// as the idempotency key for the submission attempt, so a queued retry of
// the same order cannot be double-counted upstream.
type Order struct {
	ID         string          `json:"id"`
	Items      []OrderItem     `json:"items"`
	Method     PaymentMethod   `json:"paymentMethod"`
	Total      decimal.Decimal `json:"total"`
	SellerID   string          `json:"sellerId"`
	SellerName string          `json:"sellerName"`
	BranchID   string          `json:"branchId"`
	CreatedAt  time.Time       `json:"createdAt"`
}

type OrderItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	UnitCost  decimal.Decimal `json:"unitCost"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}
