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

func AdminUsersList(svc *admin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		page := pagination.FromQuery(r.URL.Query())

		users, err := svc.ListUsers(r.Context(), sessionID, page.Skip, page.Limit, r.URL.Query().Get("search"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, types.ListEnvelope{
			Items: users.Items,
			Total: users.Total,
			Skip:  page.Skip,
			Limit: page.Limit,
		})
	}
}

func AdminUserFetch(svc *admin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		user, err := svc.GetUser(r.Context(), sessionID, chi.URLParam(r, "userId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, user)
	}
}

type adminUserCreateBody struct {
	Username  string `json:"username" validate:"required,min=3,max=64"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

func AdminUserCreate(svc *admin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body adminUserCreateBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		user, err := svc.CreateUser(r.Context(), sessionID, adminapi.AdminUserInput{
			Username:  body.Username,
			Email:     body.Email,
			Password:  body.Password,
			FirstName: body.FirstName,
			LastName:  body.LastName,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, user)
	}
}

func AdminUserUpdate(svc *admin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input adminapi.AdminUserInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		user, err := svc.UpdateUser(r.Context(), sessionID, chi.URLParam(r, "userId"), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, user)
	}
}

func AdminUserDelete(svc *admin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		if err := svc.DeleteUser(r.Context(), sessionID, chi.URLParam(r, "userId")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
