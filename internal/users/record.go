package users

import (
	"strings"
	"time"

	"github.com/olsam100/lendsqr-admin-api/pkg/enums"
	"github.com/olsam100/lendsqr-admin-api/pkg/format"
)

// RawGuarantor mirrors the nested guarantor object some upstream payloads
// carry on a user record.
type RawGuarantor struct {
	FullName     string `json:"fullName,omitempty"`
	PhoneNumber  string `json:"phoneNumber,omitempty"`
	Email        string `json:"email,omitempty"`
	Relationship string `json:"relationship,omitempty"`
}

// RawUserRecord is the upstream record shape. The feed has shifted over time,
// so most fields are optional and several have two spellings; normalization
// reconciles them into the canonical User.
type RawUserRecord struct {
	ID           string        `json:"_id"`
	Index        *int          `json:"index,omitempty"`
	IsActive     *bool         `json:"isActive,omitempty"`
	Balance      string        `json:"balance,omitempty"`
	Picture      string        `json:"picture,omitempty"`
	Age          *int          `json:"age,omitempty"`
	Gender       string        `json:"gender,omitempty"`
	Name         string        `json:"name,omitempty"`
	Username     string        `json:"username,omitempty"`
	Company      string        `json:"company,omitempty"`
	Organization string        `json:"organization,omitempty"`
	Email        string        `json:"email,omitempty"`
	Phone        string        `json:"phone,omitempty"`
	PhoneNumber  string        `json:"phoneNumber,omitempty"`
	Address      string        `json:"address,omitempty"`
	About        string        `json:"about,omitempty"`
	Registered   string        `json:"registered,omitempty"`
	DateJoined   string        `json:"dateJoined,omitempty"`
	Status       string        `json:"status,omitempty"`
	Guarantor    *RawGuarantor `json:"guarantor,omitempty"`
}

// User is the canonical, display-ready record the dashboard works with.
type User struct {
	ID           string           `json:"id"`
	Key          string           `json:"key"`
	Organization string           `json:"organization"`
	Username     string           `json:"username"`
	Email        string           `json:"email"`
	PhoneNumber  string           `json:"phone_number"`
	DateJoined   string           `json:"date_joined"`
	Status       enums.UserStatus `json:"status"`

	joinedAt   time.Time
	joinedOK   bool
	raw        RawUserRecord
	isFallback bool
}

// Raw returns the upstream record the user was normalized from.
func (u User) Raw() RawUserRecord {
	return u.raw
}

// JoinedAt reports the parsed registration time, when the upstream value
// was parseable.
func (u User) JoinedAt() (time.Time, bool) {
	return u.joinedAt, u.joinedOK
}

// IsFallback reports whether the record is the placeholder served when the
// upstream feed is unreachable.
func (u User) IsFallback() bool {
	return u.isFallback
}

var keyWhitespace = strings.NewReplacer(" ", "-", "\t", "-", "\n", "-")

// CompositeKey derives the stable lookup key for a record from its username
// and id. Keys are lowercase with whitespace collapsed to hyphens so they
// survive a round trip through a URL path segment.
func CompositeKey(username, id string) string {
	return keyWhitespace.Replace(strings.ToLower(strings.TrimSpace(username) + "-" + strings.TrimSpace(id)))
}

// FallbackFeedID marks the single placeholder record served when no upstream
// data is available.
const FallbackFeedID = "fallback-1"

// FallbackUsers returns the placeholder record set: one row whose fields all
// render as the placeholder glyph.
func FallbackUsers() []User {
	u := User{
		ID:           FallbackFeedID,
		Organization: format.Placeholder,
		Username:     format.Placeholder,
		Email:        format.Placeholder,
		PhoneNumber:  format.Placeholder,
		DateJoined:   format.Placeholder,
		Status:       enums.UserStatusUnknown,
		isFallback:   true,
	}
	u.Key = CompositeKey(u.Username, u.ID)
	return []User{u}
}
