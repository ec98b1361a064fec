package controllers

import (
	"net/http"

	"github.com/olsam100/lendsqr-admin-api/api/responses"
	"github.com/olsam100/lendsqr-admin-api/api/validators"
	"github.com/olsam100/lendsqr-admin-api/internal/search"
	pkgerrors "github.com/olsam100/lendsqr-admin-api/pkg/errors"
	"github.com/olsam100/lendsqr-admin-api/pkg/logger"
)

type searchRequest struct {
	Query string `json:"query" validate:"max=200"`
}

// SearchPublish broadcasts the global search term. An empty query clears it.
func SearchPublish(bus *search.Bus, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if bus == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "search bus unavailable"))
			return
		}

		var body searchRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		bus.Publish(body.Query)
		responses.WriteSuccess(w, map[string]string{"query": body.Query})
	}
}
