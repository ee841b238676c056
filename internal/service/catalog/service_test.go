package catalog

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"pos-terminal/internal/domain"

	"github.com/shopspring/decimal"
)

type stubBackend struct {
	products []domain.Product
	err      error
}

func (s *stubBackend) ListProducts(_ context.Context) ([]domain.Product, error) {
	return s.products, s.err
}

type stubRepo struct {
	products []domain.Product
	replaced int
	listErr  error
}

func (s *stubRepo) ReplaceAll(_ context.Context, products []domain.Product) error {
	s.replaced++
	s.products = products
	return nil
}

func (s *stubRepo) List(_ context.Context) ([]domain.Product, error) {
	return s.products, s.listErr
}

func (s *stubRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubRepo) GetByBarcode(_ context.Context, code string) (*domain.Product, error) {
	for _, p := range s.products {
		if p.Barcode == code {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func sampleProducts() []domain.Product {
	return []domain.Product{
		{ID: "p1", Name: "Tomate Perita", Unit: domain.UnitKilogram, Price: decimal.NewFromInt(1000)},
		{ID: "p2", Name: "Gaseosa Cola", Unit: domain.UnitPiece, Price: decimal.NewFromInt(1500), Barcode: "77001234"},
		{ID: "p3", Name: "Tomate Cherry", Unit: domain.UnitKilogram, Price: decimal.NewFromInt(2200)},
	}
}

func newTestService(backend *stubBackend, repo *stubRepo) *Service {
	return New(backend, repo, log.New(io.Discard, "", 0))
}

func TestRefreshReplacesCache(t *testing.T) {
	repo := &stubRepo{}
	svc := newTestService(&stubBackend{products: sampleProducts()}, repo)

	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if repo.replaced != 1 || len(repo.products) != 3 {
		t.Fatalf("replaced=%d cached=%d", repo.replaced, len(repo.products))
	}
}

func TestRefreshFailureKeepsCache(t *testing.T) {
	repo := &stubRepo{products: sampleProducts()}
	svc := newTestService(&stubBackend{err: errors.New("backend down")}, repo)

	if err := svc.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh error")
	}
	if repo.replaced != 0 {
		t.Fatal("cache replaced on a failed refresh")
	}

	got, err := svc.Search(context.Background(), "tomate")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("matched %d cached products, want 2", len(got))
	}
}

func TestSearchBarcodeBurst(t *testing.T) {
	svc := newTestService(&stubBackend{}, &stubRepo{products: sampleProducts()})

	got, err := svc.Search(context.Background(), "77001234")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 || got[0].ID != "p2" {
		t.Fatalf("barcode search = %+v, want p2 only", got)
	}
}

func TestSearchByNameIsCaseInsensitive(t *testing.T) {
	svc := newTestService(&stubBackend{}, &stubRepo{products: sampleProducts()})

	got, err := svc.Search(context.Background(), "TOMATE")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("matched %d, want 2", len(got))
	}
}

func TestSearchEmptyQueryListsAll(t *testing.T) {
	svc := newTestService(&stubBackend{}, &stubRepo{products: sampleProducts()})

	got, err := svc.Search(context.Background(), "  ")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("matched %d, want all 3", len(got))
	}
}

func TestGetByBarcodeUnknown(t *testing.T) {
	svc := newTestService(&stubBackend{}, &stubRepo{products: sampleProducts()})
	if _, err := svc.GetByBarcode(context.Background(), "99999999"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
