package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"courier-delivery-service/internal/http/handlers"
	"courier-delivery-service/internal/http/middleware"
	"courier-delivery-service/internal/http/middleware/ratelimit"
	"courier-delivery-service/internal/logx"
)

// New constructs the chi-based http.Handler with all middleware and routes.
// The public tracking endpoint is rate limited per client IP; everything
// under /api/auth/me, /api/packages (except track) and /api/admin requires a
// bearer token.
func New(
	h *handlers.Handlers,
	auth *handlers.AuthHandler,
	packages *handlers.PackageHandler,
	admin *handlers.AdminHandler,
	authenticator *middleware.Authenticator,
	limiter *ratelimit.Middleware,
	logger logx.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(15 * time.Second))
	r.Use(middleware.Observability(logger))

	r.Get("/api/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/api/auth/register", auth.Register)
	r.Post("/api/auth/login", auth.Login)

	r.Group(func(r chi.Router) {
		r.Use(limiter.Handler())
		r.Get("/api/packages/track/{trackingID}", packages.Track)
	})

	r.Group(func(r chi.Router) {
		r.Use(authenticator.Handler())

		r.Get("/api/auth/me", auth.Me)
		r.Post("/api/packages/calculate-price", packages.CalculatePrice)
		r.Post("/api/packages/create", packages.Create)
		r.Get("/api/packages/my-packages", packages.MyPackages)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireManager)
			r.Get("/api/admin/packages", admin.AllPackages)
			r.Post("/api/admin/update-status", admin.UpdateStatus)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Get("/api/admin/stats", admin.Stats)
		})
	})

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}
