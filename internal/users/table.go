package users

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// SortField names a sortable table column.
type SortField string

const (
	SortByOrganization SortField = "organization"
	SortByUsername     SortField = "username"
	SortByEmail        SortField = "email"
	SortByPhone        SortField = "phone_number"
	SortByDateJoined   SortField = "date_joined"
	SortByStatus       SortField = "status"
)

// SortDir is the sort direction.
type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// SortSpec pairs a column with a direction. A zero SortSpec means feed order.
type SortSpec struct {
	Field SortField
	Dir   SortDir
}

// ParseSortSpec validates raw sort parameters.
func ParseSortSpec(field, dir string) (SortSpec, error) {
	if field == "" {
		return SortSpec{}, nil
	}
	f := SortField(strings.ToLower(field))
	switch f {
	case SortByOrganization, SortByUsername, SortByEmail, SortByPhone, SortByDateJoined, SortByStatus:
	default:
		return SortSpec{}, fmt.Errorf("unknown sort field %q", field)
	}
	d := SortDir(strings.ToLower(dir))
	if d == "" {
		d = SortAsc
	}
	if d != SortAsc && d != SortDesc {
		return SortSpec{}, fmt.Errorf("unknown sort direction %q", dir)
	}
	return SortSpec{Field: f, Dir: d}, nil
}

// SortUsers orders a copy of the collection by the given spec. Equal records
// keep their feed order.
func SortUsers(users []User, spec SortSpec) []User {
	out := cloneUsers(users)
	if spec.Field == "" {
		return out
	}
	less := lessFunc(spec.Field)
	sort.SliceStable(out, func(i, j int) bool {
		if spec.Dir == SortDesc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

func lessFunc(field SortField) func(a, b User) bool {
	switch field {
	case SortByOrganization:
		return func(a, b User) bool { return foldLess(a.Organization, b.Organization) }
	case SortByUsername:
		return func(a, b User) bool { return foldLess(a.Username, b.Username) }
	case SortByEmail:
		return func(a, b User) bool { return foldLess(a.Email, b.Email) }
	case SortByPhone:
		return func(a, b User) bool { return a.PhoneNumber < b.PhoneNumber }
	case SortByStatus:
		return func(a, b User) bool { return foldLess(a.Status.String(), b.Status.String()) }
	case SortByDateJoined:
		return func(a, b User) bool {
			at, aok := a.JoinedAt()
			bt, bok := b.JoinedAt()
			if aok != bok {
				return bok // unparseable dates sort last
			}
			if !aok {
				return false
			}
			return at.Before(bt)
		}
	default:
		return func(a, b User) bool { return false }
	}
}

func foldLess(a, b string) bool {
	return strings.ToLower(a) < strings.ToLower(b)
}

// PageSpec selects a page of the (already filtered and sorted) collection.
type PageSpec struct {
	Page    int
	PerPage int
}

// DefaultPerPage matches the dashboard's initial rows-per-page choice.
const DefaultPerPage = 10

// PerPageChoices returns the rows-per-page options the table offers.
func PerPageChoices() []int {
	return []int{10, 20, 50, 100}
}

// PageMeta describes the slice a Paginate call produced.
type PageMeta struct {
	Page         int      `json:"page"`
	PerPage      int      `json:"per_page"`
	TotalRecords int      `json:"total_records"`
	PageCount    int      `json:"page_count"`
	From         int      `json:"from"`
	To           int      `json:"to"`
	Pages        []string `json:"pages"`
}

// Paginate slices out one page. A page outside [1, PageCount] resets to the
// first page rather than erroring, which is what happens when a filter change
// shrinks the collection under the viewer.
func Paginate(users []User, spec PageSpec) ([]User, PageMeta) {
	perPage := spec.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	total := len(users)
	pageCount := (total + perPage - 1) / perPage
	if pageCount == 0 {
		pageCount = 1
	}

	page := spec.Page
	if page < 1 || page > pageCount {
		page = 1
	}

	start := (page - 1) * perPage
	end := start + perPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	meta := PageMeta{
		Page:         page,
		PerPage:      perPage,
		TotalRecords: total,
		PageCount:    pageCount,
		From:         start + 1,
		To:           end,
		Pages:        PageNumbers(page, pageCount),
	}
	if total == 0 {
		meta.From = 0
	}
	return users[start:end], meta
}

// PageGap is the ellipsis entry in a page-number strip.
const PageGap = "..."

// PageNumbers renders the pagination strip: a three-page window centered on
// the current page plus the last two pages, with an ellipsis marking any gap.
func PageNumbers(current, total int) []string {
	if total <= 5 {
		out := make([]string, 0, total)
		for p := 1; p <= total; p++ {
			out = append(out, strconv.Itoa(p))
		}
		return out
	}

	start := current - 1
	if start < 1 {
		start = 1
	}
	end := start + 2
	if end > total-2 {
		end = total - 2
		start = end - 2
		if start < 1 {
			start = 1
		}
	}

	out := make([]string, 0, 6)
	for p := start; p <= end; p++ {
		out = append(out, strconv.Itoa(p))
	}
	if end < total-2 {
		out = append(out, PageGap)
	}
	out = append(out, strconv.Itoa(total-1), strconv.Itoa(total))
	return out
}

// Column describes one table column for the dashboard header row.
type Column struct {
	Field      string `json:"field"`
	Label      string `json:"label"`
	Sortable   bool   `json:"sortable"`
	Filterable bool   `json:"filterable"`
}

// TableColumns is the fixed column set of the user listing. A header either
// opens the filter panel or toggles sort, never both: organization and
// username carry the filter panel, the remaining columns sort.
func TableColumns() []Column {
	return []Column{
		{Field: string(SortByOrganization), Label: "Organization", Sortable: false, Filterable: true},
		{Field: string(SortByUsername), Label: "Username", Sortable: false, Filterable: true},
		{Field: string(SortByEmail), Label: "Email", Sortable: true, Filterable: false},
		{Field: string(SortByPhone), Label: "Phone Number", Sortable: true, Filterable: false},
		{Field: string(SortByDateJoined), Label: "Date Joined", Sortable: true, Filterable: false},
		{Field: string(SortByStatus), Label: "Status", Sortable: true, Filterable: false},
	}
}
