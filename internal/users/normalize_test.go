package users

import (
	"context"
	"testing"

	"github.com/olsam100/lendsqr-admin-api/pkg/enums"
	"github.com/olsam100/lendsqr-admin-api/pkg/format"
)

func boolPtr(v bool) *bool { return &v }

func TestNormalizeIsTotalAndOrderPreserving(t *testing.T) {
	raws := []RawUserRecord{
		{ID: "a1", Username: "Adedeji", Organization: "Lendsqr", Email: "a@lendsqr.com", PhoneNumber: "+234 801 234 5678", DateJoined: "2020-05-15T10:00:00+01:00", Status: "Active"},
		{ID: "b2"}, // everything missing
		{ID: "c3", Name: "Grace Effiom", Company: "Irorun", Phone: "7060780922", Registered: "2019-02-01T08:30:00 +01:00", Status: "blacklist"},
	}

	got := Normalize(context.Background(), raws, nil)
	if len(got) != len(raws) {
		t.Fatalf("normalized %d records from %d inputs", len(got), len(raws))
	}

	first := got[0]
	if first.Username != "Adedeji" || first.Organization != "Lendsqr" {
		t.Fatalf("unexpected first record %+v", first)
	}
	if first.PhoneNumber != "08012345678" {
		t.Fatalf("phone = %q, want local form", first.PhoneNumber)
	}
	if first.Status != enums.UserStatusActive {
		t.Fatalf("status = %q", first.Status)
	}
	if first.DateJoined != "May 15, 2020 10:00 AM" {
		t.Fatalf("date joined = %q", first.DateJoined)
	}
	if first.Key != "adedeji-a1" {
		t.Fatalf("key = %q", first.Key)
	}

	empty := got[1]
	for name, value := range map[string]string{
		"organization": empty.Organization,
		"username":     empty.Username,
		"email":        empty.Email,
		"phone":        empty.PhoneNumber,
		"date joined":  empty.DateJoined,
	} {
		if value != format.Placeholder {
			t.Fatalf("%s = %q, want placeholder", name, value)
		}
	}
	if empty.Status != enums.UserStatusUnknown {
		t.Fatalf("empty record status = %q", empty.Status)
	}

	third := got[2]
	if third.Username != "Grace Effiom" || third.Organization != "Irorun" {
		t.Fatalf("alternate field spellings not reconciled: %+v", third)
	}
	if third.Status != enums.UserStatusBlacklisted {
		t.Fatalf("status = %q", third.Status)
	}
	if third.PhoneNumber != "07060780922" {
		t.Fatalf("phone = %q", third.PhoneNumber)
	}
}

func TestNormalizeFallsBackToIsActiveFlag(t *testing.T) {
	got := Normalize(context.Background(), []RawUserRecord{
		{ID: "x", IsActive: boolPtr(true)},
		{ID: "y", IsActive: boolPtr(false)},
		{ID: "z", IsActive: boolPtr(false), Status: "Pending"},
	}, nil)

	if got[0].Status != enums.UserStatusActive {
		t.Fatalf("isActive=true mapped to %q", got[0].Status)
	}
	if got[1].Status != enums.UserStatusInactive {
		t.Fatalf("isActive=false mapped to %q", got[1].Status)
	}
	if got[2].Status != enums.UserStatusPending {
		t.Fatalf("status field should win over isActive, got %q", got[2].Status)
	}
}

func TestCompositeKey(t *testing.T) {
	tests := []struct {
		username, id, want string
	}{
		{"Adedeji", "a1", "adedeji-a1"},
		{"Grace Effiom", "b2", "grace-effiom-b2"},
		{"  Debby Ogana  ", "c3", "debby-ogana-c3"},
	}
	for _, tc := range tests {
		if got := CompositeKey(tc.username, tc.id); got != tc.want {
			t.Fatalf("CompositeKey(%q, %q) = %q, want %q", tc.username, tc.id, got, tc.want)
		}
	}
}

func TestFallbackUsers(t *testing.T) {
	list := FallbackUsers()
	if len(list) != 1 {
		t.Fatalf("expected a single placeholder record, got %d", len(list))
	}
	u := list[0]
	if u.ID != FallbackFeedID || !u.IsFallback() {
		t.Fatalf("unexpected placeholder record %+v", u)
	}
	if u.Username != format.Placeholder || u.Email != format.Placeholder {
		t.Fatalf("placeholder fields not blanked: %+v", u)
	}
}
