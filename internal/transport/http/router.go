// Package httptransport assembles the public HTTP surface: the prefill and
// timeline APIs behind bearer auth, plus unauthenticated health and metrics.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	prefillhandler "sedprefill/internal/prefill/handler"
	trygdetidhandler "sedprefill/internal/trygdetid/handler"
	"sedprefill/pkg/platform/httputil"
	authmw "sedprefill/pkg/platform/middleware/auth"
	"sedprefill/pkg/platform/middleware/requestmeta"
)

// HealthChecker reports readiness of one backing dependency.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Deps carries everything the router mounts. TokenValidator may be nil in
// local runs, which disables auth entirely.
type Deps struct {
	Prefill        prefillhandler.Service
	Trygdetid      trygdetidhandler.Service
	TokenValidator authmw.TokenValidator
	Health         []HealthChecker
	Logger         *slog.Logger
}

// NewRouter wires all public endpoints.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(requestmeta.RequestID)
	r.Use(requestmeta.RequestTime)

	r.Get("/health", handleHealth(deps.Health))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(api chi.Router) {
		if deps.TokenValidator != nil {
			api.Use(authmw.RequireAuth(deps.TokenValidator, deps.Logger))
		}
		prefillhandler.New(deps.Prefill, deps.Logger).Register(api)
		trygdetidhandler.New(deps.Trygdetid, deps.Logger).Register(api)
	})

	return r
}

func handleHealth(checkers []HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, c := range checkers {
			if c == nil {
				continue
			}
			if err := c.Health(r.Context()); err != nil {
				httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
					"status": "unhealthy",
				})
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
