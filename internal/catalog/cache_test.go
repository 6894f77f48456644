package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/lumina-retail/storefront-backend/pkg/catalogapi"
	pkgerrors "github.com/lumina-retail/storefront-backend/pkg/errors"
	"github.com/lumina-retail/storefront-backend/pkg/logger"
)

type stubClient struct {
	healthErr error
	listErr   error
	products  []catalogapi.Product
}

func (s *stubClient) Health(context.Context) error {
	return s.healthErr
}

func (s *stubClient) ListProducts(_ context.Context, skip, limit int) ([]catalogapi.Product, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	if skip >= len(s.products) {
		return []catalogapi.Product{}, nil
	}
	end := skip + limit
	if end > len(s.products) {
		end = len(s.products)
	}
	return s.products[skip:end], nil
}

func testProducts() []catalogapi.Product {
	return []catalogapi.Product{
		{
			ID:               "p1",
			Name:             "Brass pendant lamp",
			SKU:              "LMP-001",
			ManufacturerName: "Lumina Works",
			CurrentPrice:     decimal.NewFromInt(500),
			Attributes:       map[string]any{"color_temperature": "2700K"},
		},
		{
			ID:           "p2",
			Name:         "Smoked glass sconce",
			SKU:          "SCN-014",
			CurrentPrice: decimal.NewFromInt(320),
			Attributes:   map[string]any{"alt": "wall sconce in smoked glass"},
		},
	}
}

func newTestCache(client listClient) *Cache {
	return NewCache(client, logger.New(logger.Options{ServiceName: "test"}), nil)
}

func TestLoadTransformsProducts(t *testing.T) {
	t.Parallel()

	cache := newTestCache(&stubClient{products: testProducts()})
	snap := cache.Load(context.Background())

	if snap.State != StateReady {
		t.Fatalf("expected ready state, got %s", snap.State)
	}
	if len(snap.Products) != 2 {
		t.Fatalf("expected two products, got %d", len(snap.Products))
	}
	if snap.Products[0].Alt != "Brass pendant lamp" {
		t.Fatalf("expected alt to default to name, got %q", snap.Products[0].Alt)
	}
	if snap.Products[1].Alt != "wall sconce in smoked glass" {
		t.Fatalf("expected explicit alt kept, got %q", snap.Products[1].Alt)
	}
}

func TestFirstLoadFailureIsSuppressed(t *testing.T) {
	t.Parallel()

	cache := newTestCache(&stubClient{
		healthErr: pkgerrors.New(pkgerrors.CodeDependency, "connection refused"),
	})
	snap := cache.Load(context.Background())

	if snap.State != StateDegraded {
		t.Fatalf("expected degraded state, got %s", snap.State)
	}
	if snap.Notice != "" {
		t.Fatalf("expected no notice on first-load failure, got %q", snap.Notice)
	}
	if len(snap.Products) != 0 {
		t.Fatalf("expected empty list, got %d products", len(snap.Products))
	}
}

func TestRefreshFailureAfterSuccessRetainsList(t *testing.T) {
	t.Parallel()

	client := &stubClient{products: testProducts()}
	cache := newTestCache(client)

	if snap := cache.Load(context.Background()); snap.State != StateReady {
		t.Fatalf("expected ready after first load, got %s", snap.State)
	}

	client.listErr = pkgerrors.New(pkgerrors.CodeDependency, "upstream 500")
	snap := cache.Load(context.Background())

	if snap.State != StateDegraded {
		t.Fatalf("expected degraded state, got %s", snap.State)
	}
	if snap.Notice == "" {
		t.Fatal("expected a notice after post-success failure")
	}
	if len(snap.Products) != 2 {
		t.Fatalf("expected previous list retained, got %d products", len(snap.Products))
	}
}

func TestRefreshRecoversFromDegraded(t *testing.T) {
	t.Parallel()

	client := &stubClient{
		healthErr: pkgerrors.New(pkgerrors.CodeDependency, "connection refused"),
	}
	cache := newTestCache(client)
	cache.Load(context.Background())

	client.healthErr = nil
	client.products = testProducts()
	snap := cache.Load(context.Background())

	if snap.State != StateReady {
		t.Fatalf("expected ready state after recovery, got %s", snap.State)
	}
	if len(snap.Products) != 2 {
		t.Fatalf("expected two products, got %d", len(snap.Products))
	}
}

func TestProductByID(t *testing.T) {
	t.Parallel()

	cache := newTestCache(&stubClient{products: testProducts()})
	cache.Load(context.Background())

	product, ok := cache.ProductByID("p2")
	if !ok {
		t.Fatal("expected product p2 to be found")
	}
	if product.Name != "Smoked glass sconce" {
		t.Fatalf("unexpected product: %+v", product)
	}
	if _, ok := cache.ProductByID("missing"); ok {
		t.Fatal("expected missing product to be absent")
	}
}
