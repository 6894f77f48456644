package controllers

import (
	"net/http"
	"net/url"

	"github.com/lumina-retail/storefront-backend/api/middleware"
	"github.com/lumina-retail/storefront-backend/api/responses"
	"github.com/lumina-retail/storefront-backend/internal/admin"
	"github.com/lumina-retail/storefront-backend/pkg/logger"
	"github.com/lumina-retail/storefront-backend/pkg/pagination"
	"github.com/lumina-retail/storefront-backend/pkg/types"
)

func AdminAuditLogsList(svc *admin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		page := pagination.FromQuery(r.URL.Query())

		filters := url.Values{}
		for _, key := range []string{"user_id", "action", "resource_type"} {
			if value := r.URL.Query().Get(key); value != "" {
				filters.Set(key, value)
			}
		}

		logs, err := svc.ListAuditLogs(r.Context(), sessionID, page.Skip, page.Limit, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, types.ListEnvelope{
			Items: logs.Items,
			Total: logs.Total,
			Skip:  page.Skip,
			Limit: page.Limit,
		})
	}
}
