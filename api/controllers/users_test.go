package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/olsam100/lendsqr-admin-api/internal/users"
	"github.com/olsam100/lendsqr-admin-api/pkg/enums"
	pkgerrors "github.com/olsam100/lendsqr-admin-api/pkg/errors"
)

type mockUsersService struct {
	listResult   *users.ListResult
	listErr      error
	lastInput    users.ListInput
	detail       *users.UserDetail
	detailErr    error
	lastKey      string
	lastAction   enums.UserAction
	actionErr    error
	summary      *users.SummaryStats
	summaryErr   error
	actionCalled bool
}

func (m *mockUsersService) ListUsers(_ context.Context, input users.ListInput) (*users.ListResult, error) {
	m.lastInput = input
	return m.listResult, m.listErr
}

func (m *mockUsersService) GetUser(_ context.Context, key string) (*users.UserDetail, error) {
	m.lastKey = key
	return m.detail, m.detailErr
}

func (m *mockUsersService) ApplyAction(_ context.Context, key string, action enums.UserAction) (*users.UserDetail, error) {
	m.actionCalled = true
	m.lastKey = key
	m.lastAction = action
	if m.actionErr != nil {
		return nil, m.actionErr
	}
	return m.detail, nil
}

func (m *mockUsersService) Summary(_ context.Context) (*users.SummaryStats, error) {
	return m.summary, m.summaryErr
}

func routerWith(svc users.Service) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/v1/users", UsersList(svc, nil))
	r.Get("/api/v1/users/summary", UsersSummary(svc, nil))
	r.Get("/api/v1/users/{userKey}", UserDetail(svc, nil))
	r.Post("/api/v1/users/{userKey}/actions", UserAction(svc, nil))
	return r
}

func TestUsersListPassesParsedInput(t *testing.T) {
	svc := &mockUsersService{listResult: &users.ListResult{}}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/users?q=ade&page=2&per_page=20&sort=email", nil)
	routerWith(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body %s", rec.Code, rec.Body.String())
	}
	if svc.lastInput.Query != "ade" || svc.lastInput.Page.Page != 2 || svc.lastInput.Page.PerPage != 20 {
		t.Fatalf("input not passed through: %+v", svc.lastInput)
	}
	if svc.lastInput.Sort.Field != users.SortByEmail {
		t.Fatalf("sort = %+v", svc.lastInput.Sort)
	}
}

func TestUsersListRejectsBadQuery(t *testing.T) {
	svc := &mockUsersService{}
	rec := httptest.NewRecorder()
	routerWith(svc).ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/users?sort=password", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestUserDetailUsesPathKey(t *testing.T) {
	svc := &mockUsersService{detail: &users.UserDetail{}}
	rec := httptest.NewRecorder()
	routerWith(svc).ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/users/grace-effiom-c3", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if svc.lastKey != "grace-effiom-c3" {
		t.Fatalf("key = %q", svc.lastKey)
	}
}

func TestUserDetailNotFound(t *testing.T) {
	svc := &mockUsersService{detailErr: pkgerrors.New(pkgerrors.CodeNotFound, "no user").
		WithDetails(map[string]string{"back": "/api/v1/users"})}
	rec := httptest.NewRecorder()
	routerWith(svc).ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/users/nobody", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Error struct {
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// The payload points the dashboard back at the listing.
	if body.Error.Details["back"] != "/api/v1/users" {
		t.Fatalf("back link missing: %+v", body.Error)
	}
}

func TestUserActionParsesAndApplies(t *testing.T) {
	svc := &mockUsersService{detail: &users.UserDetail{}}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/users/adedeji-a1/actions", strings.NewReader(`{"action":"blacklist"}`))
	routerWith(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body %s", rec.Code, rec.Body.String())
	}
	if !svc.actionCalled || svc.lastAction != enums.UserActionBlacklist {
		t.Fatalf("action = %q called=%v", svc.lastAction, svc.actionCalled)
	}
}

func TestUserActionRejectsUnknownVerb(t *testing.T) {
	svc := &mockUsersService{}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/users/adedeji-a1/actions", strings.NewReader(`{"action":"vaporize"}`))
	routerWith(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if svc.actionCalled {
		t.Fatal("service reached with invalid action")
	}
}

func TestUserActionConflictSurfacesAffordance(t *testing.T) {
	conflict := pkgerrors.New(pkgerrors.CodeStateConflict, "not allowed").
		WithDetails(enums.AffordanceFor(enums.UserStatusBlacklisted))
	svc := &mockUsersService{actionErr: conflict}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/users/grace-effiom-c3/actions", strings.NewReader(`{"action":"blacklist"}`))
	routerWith(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Error struct {
			Details struct {
				Label string `json:"label"`
			} `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error.Details.Label != "Activate User" {
		t.Fatalf("details = %+v", body.Error)
	}
}

func TestUsersSummary(t *testing.T) {
	svc := &mockUsersService{summary: &users.SummaryStats{TotalUsers: 500, ActiveUsers: 450}}
	rec := httptest.NewRecorder()
	routerWith(svc).ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/users/summary", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Data users.SummaryStats `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.TotalUsers != 500 {
		t.Fatalf("summary = %+v", body.Data)
	}
}
