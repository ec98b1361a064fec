package enums

import (
	"fmt"
	"strings"
)

// UserStatus is the closed set a raw upstream status normalizes into.
type UserStatus string

const (
	UserStatusActive      UserStatus = "Active"
	UserStatusInactive    UserStatus = "Inactive"
	UserStatusPending     UserStatus = "Pending"
	UserStatusBlacklisted UserStatus = "Blacklisted"
	UserStatusUnknown     UserStatus = "Unknown"
)

var validUserStatuses = []UserStatus{
	UserStatusActive,
	UserStatusInactive,
	UserStatusPending,
	UserStatusBlacklisted,
	UserStatusUnknown,
}

// String implements fmt.Stringer.
func (s UserStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known UserStatus.
func (s UserStatus) IsValid() bool {
	for _, candidate := range validUserStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseUserStatus converts exact canonical input into a UserStatus.
func ParseUserStatus(value string) (UserStatus, error) {
	for _, candidate := range validUserStatuses {
		if strings.EqualFold(string(candidate), value) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid user status %q", value)
}

// NormalizeUserStatus maps free-text upstream status into the closed set.
// "inactive" is tested before the "active" containment check so that the
// substring overlap between the two words cannot misclassify a record, and
// "pending" outranks both per the display contract.
func NormalizeUserStatus(raw string) UserStatus {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return UserStatusUnknown
	}

	switch value {
	case "active", "true", "1":
		return UserStatusActive
	case "inactive":
		return UserStatusInactive
	case "pending":
		return UserStatusPending
	case "blacklist", "blacklisted":
		return UserStatusBlacklisted
	}

	switch {
	case strings.Contains(value, "inactive"):
		return UserStatusInactive
	case strings.Contains(value, "pending"):
		return UserStatusPending
	case strings.Contains(value, "blacklist"):
		return UserStatusBlacklisted
	case strings.Contains(value, "active"):
		return UserStatusActive
	}

	return UserStatusUnknown
}
