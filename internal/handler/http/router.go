package http

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/httprate"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/profitpulse/profitpulse-api/internal/config"
	"github.com/profitpulse/profitpulse-api/internal/domain/rbac"
	"github.com/profitpulse/profitpulse-api/internal/handler/http/middleware"
	"github.com/profitpulse/profitpulse-api/internal/handler/http/response"
	"github.com/profitpulse/profitpulse-api/internal/pkg/jwt"
)

type Handlers struct {
	Auth      AuthHandler
	Dashboard DashboardHandler
	Settings  SettingsHandler
}

func NewRouter(cfg *config.Config, JWTService jwt.Service, evaluator rbac.Evaluator, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "profitpulse"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.CORSAllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.SlogLevel(),
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(httprate.Limit(
			cfg.App.RateLimitPerMinute,
			time.Minute,
			httprate.WithKeyFuncs(httprate.KeyByIP),
			httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
				response.TooManyRequests(w, "Rate limit exceeded")
			}),
		))

		r.Post("/auth/login", h.Auth.Login)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Route("/auth", func(r chi.Router) {
				r.Get("/me", h.Auth.Me)
				r.Post("/logout", h.Auth.Logout)
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.With(middleware.RequireScope(evaluator, rbac.ScopeDashboardExecutive)).Get("/executive", h.Dashboard.GetExecutive)
				r.With(middleware.RequireScope(evaluator, rbac.ScopeDashboardProject)).Get("/project", h.Dashboard.GetProjects)
				r.With(middleware.RequireScope(evaluator, rbac.ScopeDashboardEmployee)).Get("/employee", h.Dashboard.GetEmployees)
				r.With(middleware.RequireScope(evaluator, rbac.ScopeDashboardDepartment)).Get("/department", h.Dashboard.GetDepartments)
				r.With(middleware.RequireScope(evaluator, rbac.ScopeDashboardClient)).Get("/client", h.Dashboard.GetClients)
			})

			r.Route("/config", func(r chi.Router) {
				// every authenticated role may read its effective permissions
				r.Get("/rbac", h.Settings.GetRBACConfig)
				r.With(middleware.RequireScope(evaluator, rbac.ScopeConfig)).Get("/", h.Settings.GetConfig)
				r.With(middleware.AdminOnly).Put("/", h.Settings.UpdateConfig)
			})
		})
	})

	return r
}
