package controllers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/lumina-retail/storefront-backend/api/middleware"
	"github.com/lumina-retail/storefront-backend/api/responses"
	"github.com/lumina-retail/storefront-backend/internal/checkout"
	"github.com/lumina-retail/storefront-backend/internal/orders"
	pkgerrors "github.com/lumina-retail/storefront-backend/pkg/errors"
	"github.com/lumina-retail/storefront-backend/pkg/logger"
)

// CheckoutSubmit decodes the form without field validation; the flow owns
// the validation order (cart precondition first, then field checks).
func CheckoutSubmit(flow *checkout.Flow, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer io.Copy(io.Discard, r.Body)

		var form checkout.Form
		decoder := json.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&form); err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request body"))
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		order, err := flow.Submit(r.Context(), sessionID, form)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

func OrdersLast(lastOrders *orders.LastOrderStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		order, err := lastOrders.Last(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}
