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

func AdminOrdersList(svc *admin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		page := pagination.FromQuery(r.URL.Query())

		orders, err := svc.ListOrders(r.Context(), sessionID, page.Skip, page.Limit, r.URL.Query().Get("status"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, types.ListEnvelope{
			Items: orders.Items,
			Total: orders.Total,
			Skip:  page.Skip,
			Limit: page.Limit,
		})
	}
}

func AdminOrderFetch(svc *admin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		order, err := svc.GetOrder(r.Context(), sessionID, chi.URLParam(r, "orderId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

func AdminOrderStatuses(svc *admin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		statuses, err := svc.ListOrderStatuses(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, statuses)
	}
}

func AdminOrderStatusHistory(svc *admin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		history, err := svc.OrderStatusHistory(r.Context(), sessionID, chi.URLParam(r, "orderId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, history)
	}
}

type orderStatusBody struct {
	StatusID     string `json:"status_id" validate:"required"`
	ActorDetails string `json:"actor_details,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

func AdminOrderStatusUpdate(svc *admin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body orderStatusBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		order, err := svc.UpdateOrderStatus(r.Context(), sessionID, chi.URLParam(r, "orderId"), adminapi.StatusUpdateRequest{
			StatusID:     body.StatusID,
			ActorDetails: body.ActorDetails,
			Notes:        body.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}
