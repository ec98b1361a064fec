package metrics

import "github.com/prometheus/client_golang/prometheus"

// CacheMetrics records the user-collection cache behavior.
type CacheMetrics struct {
	hits      prometheus.Counter
	stale     prometheus.Counter
	misses    prometheus.Counter
	fallbacks prometheus.Counter
	refreshes *prometheus.CounterVec
}

// NewCacheMetrics registers the cache metrics on the provided registerer.
func NewCacheMetrics(reg prometheus.Registerer) *CacheMetrics {
	if reg == nil {
		return &CacheMetrics{}
	}
	hits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "user_cache_hits_total",
		Help: "Lookups served from fresh cached data.",
	})
	stale := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "user_cache_stale_total",
		Help: "Lookups served stale while a background refresh ran.",
	})
	misses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "user_cache_misses_total",
		Help: "Lookups that required a synchronous upstream fetch.",
	})
	fallbacks := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "user_cache_fallback_total",
		Help: "Lookups served the placeholder record set.",
	})
	refreshes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "user_cache_refresh_total",
		Help: "Upstream refresh attempts by outcome.",
	}, []string{"outcome"})
	reg.MustRegister(hits, stale, misses, fallbacks, refreshes)
	return &CacheMetrics{
		hits:      hits,
		stale:     stale,
		misses:    misses,
		fallbacks: fallbacks,
		refreshes: refreshes,
	}
}

func (c *CacheMetrics) IncHit() {
	if c == nil || c.hits == nil {
		return
	}
	c.hits.Inc()
}

func (c *CacheMetrics) IncStale() {
	if c == nil || c.stale == nil {
		return
	}
	c.stale.Inc()
}

func (c *CacheMetrics) IncMiss() {
	if c == nil || c.misses == nil {
		return
	}
	c.misses.Inc()
}

func (c *CacheMetrics) IncFallback() {
	if c == nil || c.fallbacks == nil {
		return
	}
	c.fallbacks.Inc()
}

// IncRefresh records a refresh attempt outcome ("success" or "failure").
func (c *CacheMetrics) IncRefresh(outcome string) {
	if c == nil || c.refreshes == nil {
		return
	}
	c.refreshes.WithLabelValues(normalizeLabel(outcome)).Inc()
}
