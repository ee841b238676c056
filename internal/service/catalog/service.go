package catalog

import (
	"context"
	"log"
	"regexp"
	"strings"

	"pos-terminal/internal/domain"
)

// Barcode scanners type 8-13 digits in one burst; anything matching this
// is looked up by code before falling back to name search.
var barcodePattern = regexp.MustCompile(`^\d{8,13}$`)

type backendClient interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

type catalogRepo interface {
	ReplaceAll(ctx context.Context, products []domain.Product) error
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetByBarcode(ctx context.Context, code string) (*domain.Product, error)
}

// Service keeps a local copy of the product catalog so lookups keep
// working when the backend is unreachable.
type Service struct {
	backend backendClient
	repo    catalogRepo
	logger  *log.Logger
}

func New(backend backendClient, repo catalogRepo, logger *log.Logger) *Service {
	return &Service{backend: backend, repo: repo, logger: logger}
}

// Refresh pulls the catalog from the backend into the local cache. On a
// backend failure the stale cache keeps serving.
func (s *Service) Refresh(ctx context.Context) error {
	products, err := s.backend.ListProducts(ctx)
	if err != nil {
		s.logger.Printf("refresh catalog: %v, serving cached products", err)
		return err
	}
	if err := s.repo.ReplaceAll(ctx, products); err != nil {
		return err
	}
	s.logger.Printf("catalog refreshed, %d products", len(products))
	return nil
}

// Search filters the cached catalog by name substring, or by exact
// barcode when the query looks like a scanner burst.
func (s *Service) Search(ctx context.Context, query string) ([]domain.Product, error) {
	query = strings.TrimSpace(query)
	if barcodePattern.MatchString(query) {
		p, err := s.repo.GetByBarcode(ctx, query)
		if err == nil && p != nil {
			return []domain.Product{*p}, nil
		}
	}

	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return products, nil
	}

	needle := strings.ToLower(query)
	matched := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), needle) || p.Barcode == query {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// Get resolves a product by its catalog ID.
func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByBarcode resolves an exact scanner code.
func (s *Service) GetByBarcode(ctx context.Context, code string) (*domain.Product, error) {
	return s.repo.GetByBarcode(ctx, code)
}
