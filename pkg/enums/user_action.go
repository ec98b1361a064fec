package enums

import "fmt"

// UserAction is a status-change affordance offered on a user row.
type UserAction string

const (
	UserActionBlacklist UserAction = "blacklist"
	UserActionActivate  UserAction = "activate"
	UserActionApprove   UserAction = "approve"
)

var validUserActions = []UserAction{
	UserActionBlacklist,
	UserActionActivate,
	UserActionApprove,
}

// String implements fmt.Stringer.
func (a UserAction) String() string {
	return string(a)
}

// IsValid reports whether the value is a known UserAction.
func (a UserAction) IsValid() bool {
	for _, candidate := range validUserActions {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseUserAction converts raw input into a UserAction.
func ParseUserAction(value string) (UserAction, error) {
	for _, candidate := range validUserActions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid user action %q", value)
}

// ActionAffordance describes the status-action button for one status.
type ActionAffordance struct {
	Action   UserAction `json:"action,omitempty"`
	Label    string     `json:"label"`
	Style    string     `json:"style"`
	Disabled bool       `json:"disabled"`
}

// AffordanceFor maps a normalized status to its row action. Matching is on
// the exact enumeration value, never on substrings of the raw status text.
func AffordanceFor(status UserStatus) ActionAffordance {
	switch status {
	case UserStatusActive:
		return ActionAffordance{Action: UserActionBlacklist, Label: "Blacklist User", Style: "danger"}
	case UserStatusBlacklisted, UserStatusInactive:
		return ActionAffordance{Action: UserActionActivate, Label: "Activate User", Style: "success"}
	case UserStatusPending:
		return ActionAffordance{Action: UserActionApprove, Label: "Approve User", Style: "success", Disabled: true}
	default:
		return ActionAffordance{Label: "Manage Status", Style: "success", Disabled: true}
	}
}

// AllowedFor reports whether the action is valid for a user in the given
// status.
func AllowedFor(status UserStatus, action UserAction) bool {
	switch action {
	case UserActionBlacklist:
		return status == UserStatusActive
	case UserActionActivate:
		return status == UserStatusBlacklisted || status == UserStatusInactive
	case UserActionApprove:
		return status == UserStatusPending
	}
	return false
}
