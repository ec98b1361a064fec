package validators

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/olsam100/lendsqr-admin-api/internal/users"
	"github.com/olsam100/lendsqr-admin-api/pkg/enums"
	pkgerrors "github.com/olsam100/lendsqr-admin-api/pkg/errors"
)

func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return value, nil
}

// ParseListInput reads the user-listing query parameters: the free-text
// search, the per-column filters, and the sort and page selection.
func ParseListInput(r *http.Request) (users.ListInput, error) {
	q := r.URL.Query()
	input := users.ListInput{Query: strings.TrimSpace(q.Get("q"))}

	input.Filters = users.Filters{
		Organization: strings.TrimSpace(q.Get("organization")),
		Username:     strings.TrimSpace(q.Get("username")),
		Email:        strings.TrimSpace(q.Get("email")),
		Phone:        strings.TrimSpace(q.Get("phone")),
	}

	if raw := strings.TrimSpace(q.Get("status")); raw != "" {
		status, err := enums.ParseUserStatus(raw)
		if err != nil {
			return users.ListInput{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown status filter").
				WithDetails(map[string]any{"field": "status", "value": raw})
		}
		input.Filters.Status = &status
	}

	var err error
	if input.Filters.DateFrom, err = parseQueryDate(q.Get("date_from"), "date_from"); err != nil {
		return users.ListInput{}, err
	}
	if input.Filters.DateTo, err = parseQueryDate(q.Get("date_to"), "date_to"); err != nil {
		return users.ListInput{}, err
	}

	input.Sort, err = users.ParseSortSpec(q.Get("sort"), q.Get("dir"))
	if err != nil {
		return users.ListInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sort")
	}

	if input.Page.Page, err = ParseQueryInt(r, "page", 1, 1, 1<<30); err != nil {
		return users.ListInput{}, err
	}
	if input.Page.PerPage, err = ParseQueryInt(r, "per_page", users.DefaultPerPage, 1, 100); err != nil {
		return users.ListInput{}, err
	}
	return input, nil
}

func parseQueryDate(raw, field string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeValidation, "date must be YYYY-MM-DD").
		WithDetails(map[string]any{"field": field, "value": raw})
}
