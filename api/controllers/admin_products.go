package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lumina-retail/storefront-backend/api/middleware"
	"github.com/lumina-retail/storefront-backend/api/responses"
	"github.com/lumina-retail/storefront-backend/api/validators"
	"github.com/lumina-retail/storefront-backend/internal/admin"
	"github.com/lumina-retail/storefront-backend/pkg/adminapi"
	"github.com/lumina-retail/storefront-backend/pkg/logger"
	"github.com/lumina-retail/storefront-backend/pkg/pagination"
	"github.com/lumina-retail/storefront-backend/pkg/types"
)

func AdminProductsList(svc *admin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		page := pagination.FromQuery(r.URL.Query())

		products, err := svc.ListProducts(r.Context(), sessionID, page.Skip, page.Limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, types.ListEnvelope{
			Items: products.Items,
			Total: products.Total,
			Skip:  page.Skip,
			Limit: page.Limit,
		})
	}
}

func AdminProductFetch(svc *admin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		product, err := svc.GetProduct(r.Context(), sessionID, chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func AdminProductCreate(svc *admin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input adminapi.ProductInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		product, err := svc.CreateProduct(r.Context(), sessionID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

func AdminProductUpdate(svc *admin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input adminapi.ProductInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		product, err := svc.UpdateProduct(r.Context(), sessionID, chi.URLParam(r, "productId"), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func AdminProductDelete(svc *admin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		if err := svc.DeleteProduct(r.Context(), sessionID, chi.URLParam(r, "productId")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
