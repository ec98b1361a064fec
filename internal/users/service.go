package users

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/olsam100/lendsqr-admin-api/internal/search"
	"github.com/olsam100/lendsqr-admin-api/pkg/enums"
	pkgerrors "github.com/olsam100/lendsqr-admin-api/pkg/errors"
	"github.com/olsam100/lendsqr-admin-api/pkg/format"
	"github.com/olsam100/lendsqr-admin-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// listingPath is the recovery link attached to not-found responses, pointing
// the dashboard back at the user table.
const listingPath = "/api/v1/users"

// Service exposes the user listing, detail and status operations.
type Service interface {
	ListUsers(ctx context.Context, input ListInput) (*ListResult, error)
	GetUser(ctx context.Context, key string) (*UserDetail, error)
	ApplyAction(ctx context.Context, key string, action enums.UserAction) (*UserDetail, error)
	Summary(ctx context.Context) (*SummaryStats, error)
}

// ListInput carries the listing query: free-text search, column filters,
// sort, and page selection.
type ListInput struct {
	Query   string
	Filters Filters
	Sort    SortSpec
	Page    PageSpec
}

// ListRow is one table row: the canonical record plus its action affordance.
type ListRow struct {
	User
	Affordance enums.ActionAffordance `json:"affordance"`
}

// ListResult is one page of the user table. FeedError carries the upstream
// failure that forced the placeholder set, so the dashboard can render the
// error banner and the demo rows together.
type ListResult struct {
	Rows           []ListRow `json:"rows"`
	Meta           PageMeta  `json:"meta"`
	Columns        []Column  `json:"columns"`
	PerPageOptions []int     `json:"per_page_options"`
	FromFallback   bool      `json:"from_fallback"`
	FeedError      string    `json:"feed_error,omitempty"`
}

// UserDetail is the full detail view for one record.
type UserDetail struct {
	User
	Affordance enums.ActionAffordance `json:"affordance"`
	Balance    string                 `json:"balance"`
	Picture    string                 `json:"picture,omitempty"`
	Gender     string                 `json:"gender,omitempty"`
	Address    string                 `json:"address,omitempty"`
	Guarantor  *RawGuarantor          `json:"guarantor,omitempty"`
}

// SummaryStats are the four headline cards above the table.
type SummaryStats struct {
	TotalUsers       int `json:"total_users"`
	ActiveUsers      int `json:"active_users"`
	UsersWithLoans   int `json:"users_with_loans"`
	UsersWithSavings int `json:"users_with_savings"`
}

type service struct {
	cache *Cache
	logg  *logger.Logger

	mu          sync.RWMutex
	overrides   map[string]enums.UserStatus
	globalQuery string
}

// NewService wires the service over the cache. When a search bus is given the
// service subscribes to it: a published term becomes the listing's fallback
// free-text query until a request supplies its own.
func NewService(cache *Cache, bus *search.Bus, logg *logger.Logger) Service {
	s := &service{
		cache:     cache,
		logg:      logg,
		overrides: map[string]enums.UserStatus{},
	}
	if bus != nil {
		bus.Subscribe(s.setGlobalQuery)
	}
	return s
}

func (s *service) setGlobalQuery(query string) {
	s.mu.Lock()
	s.globalQuery = strings.TrimSpace(query)
	s.mu.Unlock()
}

// loadUsers reads the cached collection and layers status overrides from
// previously applied actions on top, so a background refresh cannot silently
// undo an operator's status change. When the feed is down the placeholder set
// comes back together with the fetch error, mirroring the cache contract.
func (s *service) loadUsers(ctx context.Context) ([]User, bool, error) {
	list, fromFallback, err := s.cache.Users(ctx)
	if err != nil && len(list) == 0 {
		return nil, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.overrides) != 0 {
		for i := range list {
			if status, ok := s.overrides[list[i].Key]; ok {
				list[i].Status = status
			}
		}
	}
	return list, fromFallback, err
}

func (s *service) ListUsers(ctx context.Context, input ListInput) (*ListResult, error) {
	list, fromFallback, feedErr := s.loadUsers(ctx)
	if feedErr != nil && !fromFallback {
		return nil, feedErr
	}

	query := strings.TrimSpace(input.Query)
	if query == "" {
		s.mu.RLock()
		query = s.globalQuery
		s.mu.RUnlock()
	}

	filtered := ApplyFilters(list, query, input.Filters)
	sorted := SortUsers(filtered, input.Sort)
	page, meta := Paginate(sorted, input.Page)

	rows := make([]ListRow, 0, len(page))
	for _, u := range page {
		rows = append(rows, ListRow{User: u, Affordance: enums.AffordanceFor(u.Status)})
	}
	result := &ListResult{
		Rows:           rows,
		Meta:           meta,
		Columns:        TableColumns(),
		PerPageOptions: PerPageChoices(),
		FromFallback:   fromFallback,
	}
	if feedErr != nil {
		result.FeedError = feedErr.Error()
	}
	return result, nil
}

func (s *service) GetUser(ctx context.Context, key string) (*UserDetail, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user key is required")
	}
	list, fromFallback, err := s.loadUsers(ctx)
	if err != nil && !fromFallback {
		return nil, err
	}
	for _, u := range list {
		if u.Key == key {
			return buildDetail(u), nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("no user with key %q", key)).
		WithDetails(map[string]string{"back": listingPath})
}

func (s *service) ApplyAction(ctx context.Context, key string, action enums.UserAction) (*UserDetail, error) {
	detail, err := s.GetUser(ctx, key)
	if err != nil {
		return nil, err
	}
	if !enums.AllowedFor(detail.Status, action) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("action %q is not allowed for a %s user", action, detail.Status)).
			WithDetails(enums.AffordanceFor(detail.Status))
	}

	next := statusAfter(action)
	s.mu.Lock()
	s.overrides[detail.Key] = next
	s.mu.Unlock()

	if s.logg != nil {
		ctx = s.logg.WithUserKey(ctx, detail.Key)
		s.logg.Info(s.logg.WithField(ctx, "action", action.String()), "user status changed")
	}

	detail.Status = next
	detail.Affordance = enums.AffordanceFor(next)
	return detail, nil
}

func statusAfter(action enums.UserAction) enums.UserStatus {
	switch action {
	case enums.UserActionBlacklist:
		return enums.UserStatusBlacklisted
	case enums.UserActionActivate, enums.UserActionApprove:
		return enums.UserStatusActive
	}
	return enums.UserStatusUnknown
}

func (s *service) Summary(ctx context.Context) (*SummaryStats, error) {
	list, fromFallback, err := s.loadUsers(ctx)
	if err != nil && !fromFallback {
		return nil, err
	}
	if fromFallback {
		return &SummaryStats{}, nil
	}

	stats := &SummaryStats{TotalUsers: len(list)}
	for _, u := range list {
		if u.Status == enums.UserStatusActive {
			stats.ActiveUsers++
		}
		if amount, ok := parseBalance(u.Raw().Balance); ok {
			// Positive balances count as savings, negative ones as an
			// outstanding loan.
			if amount.IsPositive() {
				stats.UsersWithSavings++
			}
			if amount.IsNegative() {
				stats.UsersWithLoans++
			}
		}
	}
	return stats, nil
}

func buildDetail(u User) *UserDetail {
	raw := u.Raw()
	return &UserDetail{
		User:       u,
		Affordance: enums.AffordanceFor(u.Status),
		Balance:    nairaBalance(raw.Balance),
		Picture:    raw.Picture,
		Gender:     raw.Gender,
		Address:    raw.Address,
		Guarantor:  raw.Guarantor,
	}
}

// nairaBalance renders an upstream balance, which may arrive in dollar
// formatting, as a naira display string.
func nairaBalance(raw string) string {
	amount, ok := parseBalance(raw)
	if !ok {
		return format.Placeholder
	}
	return format.Naira(amount.String())
}

func parseBalance(raw string) (decimal.Decimal, bool) {
	raw = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "$"))
	raw = strings.ReplaceAll(raw, ",", "")
	if raw == "" || raw == format.Placeholder {
		return decimal.Decimal{}, false
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return amount, true
}
