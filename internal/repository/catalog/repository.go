package catalog

import (
	"context"

	"pos-terminal/internal/domain"
)

// Repository is the local product cache.
type Repository interface {
	ReplaceAll(ctx context.Context, products []domain.Product) error
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetByBarcode(ctx context.Context, code string) (*domain.Product, error)
}
