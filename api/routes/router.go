package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/api/controllers"
	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/api/middleware"
	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/internal/auth"
	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/internal/settings"
	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/internal/users"
	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/config"
	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/logger"
	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/metrics"
)

// Deps collects everything the HTTP surface needs. Optional members may be nil:
// RateLimiter disables login throttling, Gatherer disables /metrics.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	Tokens      middleware.TokenDecoder
	Cookies     controllers.RefreshCookie
	Auth        auth.Service
	Users       users.Service
	Settings    settings.Service
	Readiness   map[string]controllers.Pinger
	RateLimiter middleware.RateLimitStore
	AuthMetrics *metrics.AuthMetrics
	HTTPMetrics *metrics.HTTPMetrics
	Gatherer    prometheus.Gatherer
}

func NewRouter(d Deps) http.Handler {
	cfg, logg := d.Config, d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.RequestID(logg),
		middleware.Recoverer(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)
	if d.HTTPMetrics != nil {
		r.Use(middleware.Metrics(d.HTTPMetrics))
	}

	loginPolicy := middleware.NewLoginRateLimitPolicy(
		"login",
		cfg.LoginRateLimit.Window,
		cfg.LoginRateLimit.IPLimit,
		cfg.LoginRateLimit.PhoneLimit,
	)
	if trusted, err := cfg.LoginRateLimit.TrustedPrefixes(); err == nil {
		loginPolicy = loginPolicy.WithTrustedProxies(trusted)
	} else if logg != nil {
		logg.Warn(logg.WithField(context.Background(), "error", err.Error()), "router.trusted_proxies.ignored")
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, d.Readiness, logg))
	})

	if cfg.Metrics.Enabled && d.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/auth", func(r chi.Router) {
		r.With(middleware.LoginRateLimit(loginPolicy, d.RateLimiter, d.AuthMetrics, logg)).
			Post("/login", controllers.AuthLogin(d.Auth, d.Cookies, logg))
		r.Post("/logout", controllers.AuthLogout(d.Cookies, logg))
		r.Post("/refresh", controllers.AuthRefresh(d.Auth, d.Cookies, logg))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(d.Tokens, logg))

		r.Route("/users", func(r chi.Router) {
			r.Get("/me", controllers.UsersMe(d.Users, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin(logg))
				r.Get("/", controllers.UsersList(d.Users, logg))
				r.Post("/", controllers.UsersCreate(d.Users, logg))
				r.Patch("/{id}", controllers.UsersUpdateRole(d.Users, logg))
				r.Patch("/{id}/change-password", controllers.UsersChangePassword(d.Users, logg))
				r.Delete("/{id}", controllers.UsersDelete(d.Users, logg))
			})
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/business", controllers.BusinessSettingsGet(d.Settings, logg))
			r.With(middleware.RequireAdmin(logg)).Put("/business", controllers.BusinessSettingsPut(d.Settings, logg))
		})
	})

	return r
}
