package cart

import (
	"errors"
	"sync"
	"time"

	"pos-terminal/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var gramsPerKilogram = decimal.NewFromInt(1000)

// Service holds the single open cart of the terminal. Lines are frozen
// price snapshots: there is no in-place edit, only remove-and-re-add.
type Service struct {
	mu    sync.Mutex
	lines []domain.CartLine
	now   func() time.Time
}

func New() *Service {
	return &Service{now: time.Now}
}

// AddLine appends a line for a discrete-unit product.
func (s *Service) AddLine(product domain.Product, quantity decimal.Decimal) (domain.CartLine, error) {
	if !quantity.IsPositive() {
		return domain.CartLine{}, errors.New("quantity must be positive")
	}
	return s.append(product, quantity), nil
}

// AddWeighed appends a line for a weight-priced product from a scale
// sample in grams. A zero sample means the scale read failed or the plate
// is empty; either way there is nothing to sell.
func (s *Service) AddWeighed(product domain.Product, grams int64) (domain.CartLine, error) {
	if product.Unit != domain.UnitKilogram {
		return domain.CartLine{}, errors.New("product is not sold by weight")
	}
	if grams <= 0 {
		return domain.CartLine{}, errors.New("no weight registered")
	}
	kg := decimal.NewFromInt(grams).Div(gramsPerKilogram)
	return s.append(product, kg), nil
}

func (s *Service) append(product domain.Product, quantity decimal.Decimal) domain.CartLine {
	line := domain.CartLine{
		ID:        uuid.NewString(),
		ProductID: product.ID,
		Name:      product.Name,
		Unit:      product.Unit,
		Quantity:  quantity,
		UnitPrice: product.Price,
		UnitCost:  product.Cost,
		Subtotal:  product.Price.Mul(quantity).Round(2),
		AddedAt:   s.now(),
	}

	s.mu.Lock()
	s.lines = append(s.lines, line)
	s.mu.Unlock()
	return line
}

// Remove drops a single line by its ID.
func (s *Service) Remove(lineID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, line := range s.lines {
		if line.ID == lineID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// Clear empties the cart.
func (s *Service) Clear() {
	s.mu.Lock()
	s.lines = nil
	s.mu.Unlock()
}

// Snapshot returns a copy of the lines with the derived total. The total
// is recomputed on every call, never stored.
func (s *Service) Snapshot() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]domain.CartLine, len(s.lines))
	copy(lines, s.lines)

	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Subtotal)
	}
	return domain.Cart{Lines: lines, Total: total}
}
