package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lumina-retail/storefront-backend/api/middleware"
	"github.com/lumina-retail/storefront-backend/api/responses"
	"github.com/lumina-retail/storefront-backend/internal/catalog"
	"github.com/lumina-retail/storefront-backend/internal/search"
	pkgerrors "github.com/lumina-retail/storefront-backend/pkg/errors"
	"github.com/lumina-retail/storefront-backend/pkg/logger"
)

type productListResponse struct {
	Products []catalog.Product `json:"products"`
	Total    int               `json:"total"`
	State    catalog.State     `json:"state"`
	Notice   string            `json:"notice,omitempty"`
	Query    string            `json:"query,omitempty"`
}

// ProductsList serves the filtered catalog. An inline ?q= overrides the
// session's stored query for this response only.
func ProductsList(cache *catalog.Cache, searchState *search.State, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if !cache.Loaded() {
			cache.Load(ctx)
		}
		snap := cache.Snapshot()

		query := r.URL.Query().Get("q")
		if query == "" {
			sessionID := middleware.SessionIDFromContext(ctx)
			stored, err := searchState.Query(ctx, sessionID)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			query = stored
		}

		products := search.Filter(snap.Products, query)
		responses.WriteSuccess(w, productListResponse{
			Products: products,
			Total:    len(products),
			State:    snap.State,
			Notice:   snap.Notice,
			Query:    query,
		})
	}
}

func ProductFetch(cache *catalog.Cache, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !cache.Loaded() {
			cache.Load(r.Context())
		}
		product, ok := cache.ProductByID(chi.URLParam(r, "productId"))
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// ProductsRefresh re-runs the catalog load from either terminal state.
func ProductsRefresh(cache *catalog.Cache, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := cache.Load(r.Context())
		responses.WriteSuccess(w, productListResponse{
			Products: snap.Products,
			Total:    len(snap.Products),
			State:    snap.State,
			Notice:   snap.Notice,
		})
	}
}
