package closing

import (
	"context"

	"pos-terminal/internal/domain"
)

// Repository is the local log of completed closings. It exists so the
// afternoon period can find its start boundary without a backend round
// trip; the backend remains the system of record.
type Repository interface {
	Record(ctx context.Context, rec domain.ClosingRecord) error
	// LastBySeller returns nil with no error when the seller has never
	// closed the register on this terminal.
	LastBySeller(ctx context.Context, sellerID string) (*domain.ClosingRecord, error)
}
