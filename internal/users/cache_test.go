package users

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/olsam100/lendsqr-admin-api/pkg/config"
	pkgerrors "github.com/olsam100/lendsqr-admin-api/pkg/errors"
)

type fakeGateway struct {
	mu      sync.Mutex
	calls   int
	records []RawUserRecord
	errs    []error // consumed per call before records are served
	fetched chan struct{}
}

func (f *fakeGateway) FetchUsers(ctx context.Context) ([]RawUserRecord, error) {
	f.mu.Lock()
	f.calls++
	var err error
	if len(f.errs) > 0 {
		err = f.errs[0]
		f.errs = f.errs[1:]
	}
	records := f.records
	ch := f.fetched
	f.mu.Unlock()

	if ch != nil {
		ch <- struct{}{}
	}
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (f *fakeGateway) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func testCacheConfig() config.CacheConfig {
	return config.CacheConfig{
		StaleAfter:    5 * time.Minute,
		EvictAfter:    30 * time.Minute,
		MaxRetries:    2,
		RetryBaseWait: time.Millisecond,
		RetryMaxWait:  5 * time.Millisecond,
	}
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.t = f.t.Add(d)
	f.mu.Unlock()
}

func newTestCache(gw Gateway, clock *fakeClock) *Cache {
	c := NewCache(testCacheConfig(), gw, nil, nil)
	c.clock = clock.Now
	return c
}

func TestCacheServesFreshWithoutRefetch(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	gw := &fakeGateway{records: []RawUserRecord{{ID: "a1", Username: "Adedeji"}}}
	c := newTestCache(gw, clock)

	first, fromFallback, err := c.Users(context.Background())
	if err != nil || fromFallback {
		t.Fatalf("first read: %v fallback=%v", err, fromFallback)
	}
	if len(first) != 1 || first[0].Username != "Adedeji" {
		t.Fatalf("unexpected records %+v", first)
	}

	clock.Advance(time.Minute)
	if _, _, err := c.Users(context.Background()); err != nil {
		t.Fatalf("second read: %v", err)
	}
	if gw.callCount() != 1 {
		t.Fatalf("fresh read refetched: %d calls", gw.callCount())
	}
}

func TestCacheServesStaleAndRefreshesInBackground(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	gw := &fakeGateway{records: []RawUserRecord{{ID: "a1", Username: "Adedeji"}}}
	c := newTestCache(gw, clock)

	if _, _, err := c.Users(context.Background()); err != nil {
		t.Fatalf("warm read: %v", err)
	}

	gw.mu.Lock()
	gw.records = []RawUserRecord{{ID: "a1", Username: "Renamed"}}
	gw.fetched = make(chan struct{}, 1)
	gw.mu.Unlock()

	clock.Advance(6 * time.Minute)
	stale, fromFallback, err := c.Users(context.Background())
	if err != nil || fromFallback {
		t.Fatalf("stale read: %v fallback=%v", err, fromFallback)
	}
	// Stale read still serves the previous snapshot.
	if stale[0].Username != "Adedeji" {
		t.Fatalf("stale read served %q", stale[0].Username)
	}

	select {
	case <-gw.fetched:
	case <-time.After(2 * time.Second):
		t.Fatal("background refresh never ran")
	}

	// Wait for the refreshed entry to land.
	deadline := time.Now().Add(2 * time.Second)
	for {
		refreshed, _, err := c.Users(context.Background())
		if err != nil {
			t.Fatalf("post-refresh read: %v", err)
		}
		if refreshed[0].Username == "Renamed" {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("refreshed data never served")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestCacheEvictsUnusedEntry(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	gw := &fakeGateway{records: []RawUserRecord{{ID: "a1"}}}
	c := newTestCache(gw, clock)

	if _, _, err := c.Users(context.Background()); err != nil {
		t.Fatalf("warm read: %v", err)
	}

	clock.Advance(31 * time.Minute)
	if _, _, err := c.Users(context.Background()); err != nil {
		t.Fatalf("post-eviction read: %v", err)
	}
	if gw.callCount() != 2 {
		t.Fatalf("evicted entry should force a refetch, calls = %d", gw.callCount())
	}
}

func TestCacheRetriesTransientFailures(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	dep := pkgerrors.New(pkgerrors.CodeDependency, "feed down")
	gw := &fakeGateway{
		records: []RawUserRecord{{ID: "a1"}},
		errs:    []error{dep, dep},
	}
	c := newTestCache(gw, clock)

	got, fromFallback, err := c.Users(context.Background())
	if err != nil || fromFallback {
		t.Fatalf("read after retries: %v fallback=%v", err, fromFallback)
	}
	if len(got) != 1 {
		t.Fatalf("unexpected records %+v", got)
	}
	if gw.callCount() != 3 {
		t.Fatalf("expected 2 retries after the first failure, calls = %d", gw.callCount())
	}
}

func TestCacheDoesNotRetryTerminalRejection(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	gw := &fakeGateway{
		errs: []error{pkgerrors.New(pkgerrors.CodeUpstreamRejected, "denied")},
	}
	c := newTestCache(gw, clock)

	got, fromFallback, err := c.Users(context.Background())
	if err == nil {
		t.Fatal("fetch failure must be returned alongside the placeholder set")
	}
	if !fromFallback {
		t.Fatal("expected placeholder record set")
	}
	if len(got) != 1 || got[0].ID != FallbackFeedID {
		t.Fatalf("unexpected fallback %+v", got)
	}
	if gw.callCount() != 1 {
		t.Fatalf("terminal rejection retried: %d calls", gw.callCount())
	}
}

func TestCacheExposesErrorWithFallbackAfterRetriesExhaust(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	dep := pkgerrors.New(pkgerrors.CodeDependency, "feed down")
	gw := &fakeGateway{errs: []error{dep, dep, dep}}
	c := newTestCache(gw, clock)

	got, fromFallback, err := c.Users(context.Background())
	if err == nil {
		t.Fatal("exhausted retries must surface the last error to the caller")
	}
	if te := pkgerrors.As(err); te == nil || te.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected the dependency failure, got %v", err)
	}
	if !fromFallback || len(got) != 1 || got[0].ID != FallbackFeedID {
		t.Fatalf("placeholder set must accompany the error, got fallback=%v %+v", fromFallback, got)
	}
	if gw.callCount() != 3 {
		t.Fatalf("expected the full retry budget, calls = %d", gw.callCount())
	}
}

func TestCacheFallbackIsNotCached(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	gw := &fakeGateway{
		records: []RawUserRecord{{ID: "a1"}},
		errs:    []error{pkgerrors.New(pkgerrors.CodeUpstreamRejected, "denied")},
	}
	c := newTestCache(gw, clock)

	if _, fromFallback, _ := c.Users(context.Background()); !fromFallback {
		t.Fatal("first read should serve the placeholder")
	}
	got, fromFallback, err := c.Users(context.Background())
	if err != nil || fromFallback {
		t.Fatalf("recovery read: %v fallback=%v", err, fromFallback)
	}
	if got[0].ID != "a1" {
		t.Fatalf("recovery read served %+v", got)
	}
}
