package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/olsam100/lendsqr-admin-api/internal/search"
)

func TestSearchPublishBroadcasts(t *testing.T) {
	bus := search.NewBus()
	var received []string
	bus.Subscribe(func(q string) { received = append(received, q) })

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/api/v1/search", strings.NewReader(`{"query":"adedeji"}`))
	SearchPublish(bus, nil)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body %s", rec.Code, rec.Body.String())
	}
	if len(received) != 1 || received[0] != "adedeji" {
		t.Fatalf("received = %v", received)
	}
}

func TestSearchPublishEmptyQueryClears(t *testing.T) {
	bus := search.NewBus()
	bus.Publish("previous")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/api/v1/search", strings.NewReader(`{"query":""}`))
	SearchPublish(bus, nil)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if current, _ := bus.Current(); current != "" {
		t.Fatalf("current = %q, want cleared", current)
	}
}

func TestSearchPublishRejectsOversizedQuery(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/api/v1/search", strings.NewReader(`{"query":"`+strings.Repeat("a", 300)+`"}`))
	SearchPublish(search.NewBus(), nil)(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}
