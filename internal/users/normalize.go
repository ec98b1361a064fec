package users

import (
	"context"

	"github.com/olsam100/lendsqr-admin-api/pkg/enums"
	"github.com/olsam100/lendsqr-admin-api/pkg/format"
	"github.com/olsam100/lendsqr-admin-api/pkg/logger"
)

// Normalize converts a raw upstream batch into canonical users. It is total:
// every input record yields exactly one output record in the same position,
// with missing fields rendered as the placeholder glyph. Shape complaints are
// logged for the first offending record only, so a uniformly-broken feed does
// not flood the log.
func Normalize(ctx context.Context, raws []RawUserRecord, logg *logger.Logger) []User {
	out := make([]User, 0, len(raws))
	warned := map[string]bool{}
	warn := func(field string) {
		if warned[field] || logg == nil {
			return
		}
		warned[field] = true
		logg.Warn(logg.WithField(ctx, "field", field), "upstream record missing field")
	}

	for _, raw := range raws {
		u := User{raw: raw}

		u.ID = raw.ID
		if u.ID == "" {
			warn("_id")
		}

		u.Organization = firstNonEmpty(raw.Organization, raw.Company)
		if u.Organization == "" {
			warn("organization")
		}
		u.Organization = format.OrPlaceholder(u.Organization)

		u.Username = firstNonEmpty(raw.Username, raw.Name)
		if u.Username == "" {
			warn("username")
		}
		u.Username = format.OrPlaceholder(u.Username)

		u.Email = format.OrPlaceholder(raw.Email)
		if raw.Email == "" {
			warn("email")
		}

		phone := firstNonEmpty(raw.PhoneNumber, raw.Phone)
		if phone == "" {
			warn("phone")
		}
		u.PhoneNumber = format.Phone(phone)

		joined := firstNonEmpty(raw.DateJoined, raw.Registered)
		if joined == "" {
			warn("registered")
		}
		u.DateJoined = format.JoinedDate(joined)
		u.joinedAt, u.joinedOK = format.JoinedTime(joined)

		u.Status = normalizeRecordStatus(raw)
		u.Key = CompositeKey(u.Username, u.ID)

		out = append(out, u)
	}
	return out
}

// normalizeRecordStatus prefers the free-text status field; when the feed
// omits it the boolean isActive flag decides between Active and Inactive.
func normalizeRecordStatus(raw RawUserRecord) enums.UserStatus {
	if raw.Status != "" {
		return enums.NormalizeUserStatus(raw.Status)
	}
	if raw.IsActive != nil {
		if *raw.IsActive {
			return enums.UserStatusActive
		}
		return enums.UserStatusInactive
	}
	return enums.UserStatusUnknown
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
