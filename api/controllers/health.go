package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/olsam100/lendsqr-admin-api/api/responses"
	"github.com/olsam100/lendsqr-admin-api/pkg/config"
	pkgerrors "github.com/olsam100/lendsqr-admin-api/pkg/errors"
	"github.com/olsam100/lendsqr-admin-api/pkg/logger"
)

const envHeader = "X-Lendsqr-Env"

// Pinger is any dependency the readiness probe can check.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness after checking the session store and the
// upstream user feed. Either dependency being down fails the probe.
func HealthReady(cfg *config.Config, logg *logger.Logger, sessionStore, upstream Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		checks := map[string]string{}
		failed := false
		for name, dep := range map[string]Pinger{
			"redis":     sessionStore,
			"user_feed": upstream,
		} {
			if dep == nil {
				checks[name] = "skipped"
				continue
			}
			if err := dep.Ping(ctx); err != nil {
				checks[name] = "down"
				failed = true
				if logg != nil {
					logg.Error(logg.WithField(ctx, "dependency", name), "readiness check failed", err)
				}
				continue
			}
			checks[name] = "up"
		}

		if failed {
			responses.WriteError(ctx, nil, w,
				pkgerrors.New(pkgerrors.CodeDependency, "dependency unavailable").WithDetails(checks))
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
