package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/lumina-retail/storefront-backend/api/middleware"
	"github.com/lumina-retail/storefront-backend/internal/catalog"
	"github.com/lumina-retail/storefront-backend/internal/search"
	"github.com/lumina-retail/storefront-backend/pkg/catalogapi"
	pkgerrors "github.com/lumina-retail/storefront-backend/pkg/errors"
	"github.com/lumina-retail/storefront-backend/pkg/logger"
	"github.com/lumina-retail/storefront-backend/pkg/types"
)

type flakyCatalogClient struct {
	healthErr error
}

func (c *flakyCatalogClient) Health(context.Context) error {
	return c.healthErr
}

func (c *flakyCatalogClient) ListProducts(_ context.Context, skip, _ int) ([]catalogapi.Product, error) {
	if skip > 0 {
		return nil, nil
	}
	return []catalogapi.Product{
		{ID: "p1", Name: "Brass pendant lamp", CurrentPrice: decimal.NewFromInt(500)},
		{ID: "p2", Name: "Smoked glass sconce", CurrentPrice: decimal.NewFromInt(320)},
	}, nil
}

func productsHandler(t *testing.T, client *flakyCatalogClient) http.Handler {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test"})
	cache := catalog.NewCache(client, logg, nil)
	searchState := search.NewState(&memoryStore{data: map[string]string{}}, time.Hour)

	r := chi.NewRouter()
	r.Get("/products", ProductsList(cache, searchState, logg))
	r.Post("/products/refresh", ProductsRefresh(cache, logg))
	r.Get("/products/{productId}", ProductFetch(cache, logg))
	return r
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope types.SuccessEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding envelope: %v", err)
	}
	data, ok := envelope.Data.(map[string]any)
	if !ok {
		t.Fatalf("unexpected payload: %+v", envelope.Data)
	}
	return data
}

func sessionRequest(method, path string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	return req.WithContext(middleware.WithSessionID(req.Context(), "sid"))
}

func TestProductsListWithInlineQuery(t *testing.T) {
	t.Parallel()

	handler := productsHandler(t, &flakyCatalogClient{})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, sessionRequest(http.MethodGet, "/products?q=sconce"))

	data := decodeList(t, w)
	if data["total"] != float64(1) {
		t.Fatalf("expected one match, got %v", data["total"])
	}
	if data["state"] != string(catalog.StateReady) {
		t.Fatalf("expected ready state, got %v", data["state"])
	}
}

func TestProductsListFirstLoadFailureShowsNoNotice(t *testing.T) {
	t.Parallel()

	client := &flakyCatalogClient{healthErr: pkgerrors.New(pkgerrors.CodeDependency, "not ready")}
	handler := productsHandler(t, client)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, sessionRequest(http.MethodGet, "/products"))

	data := decodeList(t, w)
	if data["total"] != float64(0) {
		t.Fatalf("expected empty list, got %v", data["total"])
	}
	if _, hasNotice := data["notice"]; hasNotice {
		t.Fatalf("expected no notice on first-load failure, got %v", data["notice"])
	}
}

func TestProductsRefreshFailureAfterSuccessKeepsList(t *testing.T) {
	t.Parallel()

	client := &flakyCatalogClient{}
	handler := productsHandler(t, client)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, sessionRequest(http.MethodGet, "/products"))
	if data := decodeList(t, w); data["total"] != float64(2) {
		t.Fatalf("expected full list on first load, got %v", data["total"])
	}

	client.healthErr = pkgerrors.New(pkgerrors.CodeDependency, "upstream down")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, sessionRequest(http.MethodPost, "/products/refresh"))

	data := decodeList(t, w)
	if data["total"] != float64(2) {
		t.Fatalf("expected previous list retained, got %v", data["total"])
	}
	if data["notice"] == nil || data["notice"] == "" {
		t.Fatal("expected a notice after post-success failure")
	}
}

func TestProductFetchNotFound(t *testing.T) {
	t.Parallel()

	handler := productsHandler(t, &flakyCatalogClient{})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, sessionRequest(http.MethodGet, "/products/missing"))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
