package controllers

import (
	"net/http"

	"github.com/lumina-retail/storefront-backend/api/middleware"
	"github.com/lumina-retail/storefront-backend/api/responses"
	"github.com/lumina-retail/storefront-backend/api/validators"
	"github.com/lumina-retail/storefront-backend/internal/search"
	"github.com/lumina-retail/storefront-backend/pkg/logger"
)

type searchBody struct {
	Query string `json:"query"`
}

type searchResponse struct {
	Query  string `json:"query"`
	Active bool   `json:"active"`
}

// SearchSet stores the session's query verbatim; whether it actually
// filters anything is derived, not stored.
func SearchSet(state *search.State, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body searchBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		if err := state.SetQuery(r.Context(), sessionID, body.Query); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, searchResponse{
			Query:  body.Query,
			Active: search.IsActive(body.Query),
		})
	}
}

func SearchClear(state *search.State, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		if err := state.Clear(r.Context(), sessionID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, searchResponse{})
	}
}
