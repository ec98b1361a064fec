package users

import (
	"context"
	"sync"
	"time"

	"github.com/olsam100/lendsqr-admin-api/pkg/config"
	pkgerrors "github.com/olsam100/lendsqr-admin-api/pkg/errors"
	"github.com/olsam100/lendsqr-admin-api/pkg/logger"
	"github.com/olsam100/lendsqr-admin-api/pkg/metrics"
	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/singleflight"
)

const fetchGroupKey = "users"

type cacheEntry struct {
	users     []User
	fetchedAt time.Time
	lastUsed  time.Time
}

// Cache holds the normalized user collection between upstream fetches.
//
// A fresh entry is served directly. A stale entry (older than StaleAfter) is
// still served, with a single background refresh kicked off so readers never
// block on the feed. An entry untouched for EvictAfter is dropped entirely.
// When no entry exists and the feed cannot be reached, the placeholder record
// set is served together with the final fetch error; callers decide how to
// surface it.
type Cache struct {
	cfg     config.CacheConfig
	gateway Gateway
	logg    *logger.Logger
	metrics *metrics.CacheMetrics
	clock   func() time.Time

	mu         sync.Mutex
	entry      *cacheEntry
	refreshing bool
	group      singleflight.Group
}

// NewCache builds a cache over the given gateway.
func NewCache(cfg config.CacheConfig, gateway Gateway, logg *logger.Logger, m *metrics.CacheMetrics) *Cache {
	return &Cache{
		cfg:     cfg,
		gateway: gateway,
		logg:    logg,
		metrics: m,
		clock:   time.Now,
	}
}

// Users returns the current user collection. The second return value reports
// whether the placeholder record set was served; when it is true the error
// holds the fetch failure that forced the fallback.
func (c *Cache) Users(ctx context.Context) ([]User, bool, error) {
	now := c.clock()

	c.mu.Lock()
	if c.entry != nil && now.Sub(c.entry.lastUsed) >= c.cfg.EvictAfter {
		c.entry = nil
	}
	if c.entry != nil {
		entry := c.entry
		entry.lastUsed = now
		age := now.Sub(entry.fetchedAt)
		snapshot := cloneUsers(entry.users)
		if age < c.cfg.StaleAfter {
			c.mu.Unlock()
			c.metrics.IncHit()
			return snapshot, false, nil
		}
		if !c.refreshing {
			c.refreshing = true
			go c.refresh()
		}
		c.mu.Unlock()
		c.metrics.IncStale()
		return snapshot, false, nil
	}
	c.mu.Unlock()

	c.metrics.IncMiss()
	fetched, err, _ := c.group.Do(fetchGroupKey, func() (any, error) {
		return c.fetchWithRetry(ctx)
	})
	if err != nil {
		if c.logg != nil {
			c.logg.Error(ctx, "user feed unavailable, serving placeholder", err)
		}
		c.metrics.IncFallback()
		return FallbackUsers(), true, err
	}

	users := fetched.([]User)
	c.store(users)
	return cloneUsers(users), false, nil
}

// Invalidate drops the cached entry so the next read refetches.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.entry = nil
	c.mu.Unlock()
}

func (c *Cache) store(users []User) {
	now := c.clock()
	c.mu.Lock()
	c.entry = &cacheEntry{users: users, fetchedAt: now, lastUsed: now}
	c.mu.Unlock()
}

// refresh refetches in the background after a stale read. A failed refresh
// keeps the stale entry in place; readers keep getting last-known-good data.
func (c *Cache) refresh() {
	defer func() {
		c.mu.Lock()
		c.refreshing = false
		c.mu.Unlock()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.RetryMaxWait+30*time.Second)
	defer cancel()

	users, err := c.fetchWithRetry(ctx)
	if err != nil {
		c.metrics.IncRefresh("failure")
		if c.logg != nil {
			c.logg.Error(ctx, "background user feed refresh failed", err)
		}
		return
	}
	c.metrics.IncRefresh("success")
	c.store(users)
}

// fetchWithRetry calls the gateway with capped exponential backoff. Terminal
// classifications (a 4xx-class rejection) fail immediately; transient ones
// retry up to the configured budget.
func (c *Cache) fetchWithRetry(ctx context.Context) ([]User, error) {
	backoff := retry.NewExponential(c.cfg.RetryBaseWait)
	backoff = retry.WithCappedDuration(c.cfg.RetryMaxWait, backoff)
	backoff = retry.WithMaxRetries(c.cfg.MaxRetries, backoff)

	var raws []RawUserRecord
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		fetched, err := c.gateway.FetchUsers(ctx)
		if err != nil {
			if pkgerrors.IsRetryable(err) {
				return retry.RetryableError(err)
			}
			return err
		}
		raws = fetched
		return nil
	})
	if err != nil {
		return nil, err
	}
	return Normalize(ctx, raws, c.logg), nil
}

func cloneUsers(users []User) []User {
	out := make([]User, len(users))
	copy(out, users)
	return out
}
