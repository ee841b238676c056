package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unit of sale for a product: by weight or by discrete count.
const (
	UnitKilogram = "Kg"
	UnitPiece    = "U"
)

type Cart struct {
	Lines []CartLine      `json:"lines"`
	Total decimal.Decimal `json:"total"`
}

// CartLine is immutable once added. UnitPrice and UnitCost are frozen
// snapshots of the product at insertion time, and Subtotal is always
// Quantity x UnitPrice as computed then.
type CartLine struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	UnitCost  decimal.Decimal `json:"unitCost"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	AddedAt   time.Time       `json:"addedAt"`
}
