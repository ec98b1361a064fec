package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olsam100/lendsqr-admin-api/api/responses"
	"github.com/olsam100/lendsqr-admin-api/api/validators"
	"github.com/olsam100/lendsqr-admin-api/internal/users"
	"github.com/olsam100/lendsqr-admin-api/pkg/enums"
	pkgerrors "github.com/olsam100/lendsqr-admin-api/pkg/errors"
	"github.com/olsam100/lendsqr-admin-api/pkg/logger"
)

// UsersList serves one page of the user table.
func UsersList(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := validators.ParseListInput(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListUsers(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// UsersSummary serves the dashboard's headline cards.
func UsersSummary(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := svc.Summary(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}

// UserDetail serves one record by its composite key.
func UserDetail(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "userKey")
		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithUserKey(ctx, key)
		}

		detail, err := svc.GetUser(ctx, key)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

type userActionRequest struct {
	Action string `json:"action" validate:"required,oneof=blacklist activate approve"`
}

// UserAction applies a status action (blacklist, activate, approve) to one
// record and returns the updated detail.
func UserAction(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "userKey")
		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithUserKey(ctx, key)
		}

		var body userActionRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		action, err := enums.ParseUserAction(body.Action)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid action"))
			return
		}

		detail, err := svc.ApplyAction(ctx, key, action)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}
