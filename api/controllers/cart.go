package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lumina-retail/storefront-backend/api/middleware"
	"github.com/lumina-retail/storefront-backend/api/responses"
	"github.com/lumina-retail/storefront-backend/api/validators"
	"github.com/lumina-retail/storefront-backend/internal/cart"
	"github.com/lumina-retail/storefront-backend/internal/catalog"
	pkgerrors "github.com/lumina-retail/storefront-backend/pkg/errors"
	"github.com/lumina-retail/storefront-backend/pkg/logger"
)

type cartResponse struct {
	Items []cart.Line `json:"items"`
	Count int         `json:"count"`
}

func newCartResponse(lines []cart.Line) cartResponse {
	if lines == nil {
		lines = []cart.Line{}
	}
	return cartResponse{Items: lines, Count: cart.Count(lines)}
}

func CartFetch(carts *cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		lines, err := carts.Items(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(lines))
	}
}

type cartAddBody struct {
	ProductID string `json:"product_id" validate:"required"`
}

// CartAddItem resolves the product from the catalog cache so the stored
// line snapshots the name and price as displayed.
func CartAddItem(carts *cart.Store, cache *catalog.Cache, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body cartAddBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if !cache.Loaded() {
			cache.Load(r.Context())
		}
		product, ok := cache.ProductByID(body.ProductID)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		lines, err := carts.AddItem(r.Context(), sessionID, cart.Item{
			ProductID: product.ID,
			Name:      product.Name,
			ImageURL:  product.ImageURL,
			UnitPrice: product.Price,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newCartResponse(lines))
	}
}

type cartQuantityBody struct {
	Delta int `json:"delta" validate:"required"`
}

func CartUpdateQuantity(carts *cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body cartQuantityBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		productID := chi.URLParam(r, "productId")
		lines, err := carts.UpdateQuantity(r.Context(), sessionID, productID, body.Delta)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(lines))
	}
}

func CartRemoveItem(carts *cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		productID := chi.URLParam(r, "productId")
		lines, err := carts.RemoveItem(r.Context(), sessionID, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(lines))
	}
}

func CartClear(carts *cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		if err := carts.Clear(r.Context(), sessionID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(nil))
	}
}
