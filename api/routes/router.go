package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/olsam100/lendsqr-admin-api/api/controllers"
	"github.com/olsam100/lendsqr-admin-api/api/middleware"
	"github.com/olsam100/lendsqr-admin-api/internal/auth"
	"github.com/olsam100/lendsqr-admin-api/internal/search"
	"github.com/olsam100/lendsqr-admin-api/internal/users"
	"github.com/olsam100/lendsqr-admin-api/pkg/auth/session"
	"github.com/olsam100/lendsqr-admin-api/pkg/config"
	"github.com/olsam100/lendsqr-admin-api/pkg/logger"
	"github.com/olsam100/lendsqr-admin-api/pkg/metrics"
	"github.com/olsam100/lendsqr-admin-api/pkg/redis"
)

// RouterParams bundles everything the HTTP surface depends on. Optional
// fields (redis, metrics, upstream pinger) may be nil; the affected
// middleware and probes degrade instead of failing.
type RouterParams struct {
	Config         *config.Config
	Logger         *logger.Logger
	Redis          *redis.Client
	SessionChecker session.AccessSessionChecker
	AuthService    auth.Service
	UsersService   users.Service
	SearchBus      *search.Bus
	Upstream       controllers.Pinger
	HTTPMetrics    *metrics.HTTPMetrics
	Gatherer       prometheus.Gatherer
}

func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(p.HTTPMetrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)

	var redisPinger controllers.Pinger
	if p.Redis != nil {
		redisPinger = p.Redis
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, redisPinger, p.Upstream))
	})

	if p.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		if p.Redis != nil {
			r.With(middleware.AuthRateLimit(loginPolicy, p.Redis, logg)).
				Post("/login", controllers.AuthLogin(p.AuthService, logg))
		} else {
			r.Post("/login", controllers.AuthLogin(p.AuthService, logg))
		}
		r.With(middleware.Auth(cfg.JWT, p.SessionChecker, logg)).
			Post("/logout", controllers.AuthLogout(p.AuthService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, p.SessionChecker, logg))

		r.Route("/users", func(r chi.Router) {
			r.Get("/", controllers.UsersList(p.UsersService, logg))
			r.Get("/summary", controllers.UsersSummary(p.UsersService, logg))
			r.Get("/{userKey}", controllers.UserDetail(p.UsersService, logg))
			r.Post("/{userKey}/actions", controllers.UserAction(p.UsersService, logg))
		})

		r.Put("/search", controllers.SearchPublish(p.SearchBus, logg))
	})

	return r
}
