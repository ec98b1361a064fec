package users

import (
	"strings"
	"time"

	"github.com/olsam100/lendsqr-admin-api/pkg/enums"
)

// Filters are the per-column narrowing knobs. Columns combine conjunctively:
// a record must satisfy every populated filter to survive.
type Filters struct {
	Organization string
	Username     string
	Email        string
	Phone        string
	Status       *enums.UserStatus
	DateFrom     *time.Time
	DateTo       *time.Time
}

// IsZero reports whether no filter is populated.
func (f Filters) IsZero() bool {
	return f.Organization == "" && f.Username == "" && f.Email == "" &&
		f.Phone == "" && f.Status == nil && f.DateFrom == nil && f.DateTo == nil
}

// ApplyFilters narrows the collection by a free-text query and column
// filters. The free-text query matches disjunctively across username, email,
// organization, phone and status; column filters then apply conjunctively on
// top. An empty query and zero filters return the input untouched.
func ApplyFilters(users []User, query string, f Filters) []User {
	query = strings.TrimSpace(query)
	if query == "" && f.IsZero() {
		return users
	}

	out := make([]User, 0, len(users))
	for _, u := range users {
		if query != "" && !matchesQuery(u, query) {
			continue
		}
		if !matchesFilters(u, f) {
			continue
		}
		out = append(out, u)
	}
	return out
}

func matchesQuery(u User, query string) bool {
	needle := strings.ToLower(query)
	for _, haystack := range []string{
		u.Username, u.Email, u.Organization, u.PhoneNumber, u.Status.String(),
	} {
		if strings.Contains(strings.ToLower(haystack), needle) {
			return true
		}
	}
	return false
}

func matchesFilters(u User, f Filters) bool {
	if f.Organization != "" && !containsFold(u.Organization, f.Organization) {
		return false
	}
	if f.Username != "" && !containsFold(u.Username, f.Username) {
		return false
	}
	if f.Email != "" && !containsFold(u.Email, f.Email) {
		return false
	}
	if f.Phone != "" && !containsFold(u.PhoneNumber, f.Phone) {
		return false
	}
	if f.Status != nil && u.Status != *f.Status {
		return false
	}
	if f.DateFrom != nil || f.DateTo != nil {
		joined, ok := u.JoinedAt()
		if !ok {
			return false
		}
		if f.DateFrom != nil && joined.Before(*f.DateFrom) {
			return false
		}
		if f.DateTo != nil && joined.After(*f.DateTo) {
			return false
		}
	}
	return true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
