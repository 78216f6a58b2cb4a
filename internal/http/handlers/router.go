package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/diagnosis/patrol-checkpoints/internal/http/middleware"
	"github.com/diagnosis/patrol-checkpoints/internal/http/response"
	"github.com/diagnosis/patrol-checkpoints/internal/repository"
	"github.com/diagnosis/patrol-checkpoints/pkg/auth"
	mw "github.com/diagnosis/patrol-checkpoints/pkg/middleware"
)

type RouterConfig struct {
	Tokens         middleware.TokenParser
	DB             mw.Pinger
	AllowedOrigins []string
	// TrustProxy rewrites RemoteAddr from X-Forwarded-For / X-Real-IP.
	TrustProxy bool
	// PublicDir is served at / when set.
	PublicDir string
	// LoginLimiter throttles /api/login per client IP.
	LoginLimiter repository.RateLimitRepository
	LoginLimit   int
	LoginWindow  time.Duration
}

func NewRouter(h *Handlers, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	if cfg.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(mw.RequestID)
	r.Use(mw.ServiceName("patrol-api"))
	r.Use(mw.Logging)
	r.Use(mw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(mw.Health(cfg.DB))

	requireJWT := middleware.RequireJWT(cfg.Tokens)
	can := middleware.RequirePermission

	r.Route("/api", func(r chi.Router) {
		limiter := cfg.LoginLimiter
		if limiter == nil {
			limiter = repository.NewRateLimitRepository(nil)
		}
		// coarse per-IP guard; the auth service also throttles per username
		loginLimit := middleware.NewRateLimiter(limiter, middleware.RateLimitConfig{
			Requests: cfg.LoginLimit * 5,
			Window:   cfg.LoginWindow,
		})
		r.With(loginLimit.Middleware()).Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(requireJWT)

			r.Get("/me", h.Me)
			r.With(can(auth.PermScanCreate)).Post("/scan", h.Scan)

			r.Route("/checkpoints", func(r chi.Router) {
				r.With(can(auth.PermCheckpointRead)).Get("/", h.ListCheckpoints)
				r.With(can(auth.PermCheckpointRead)).Get("/{id}", h.GetCheckpoint)
				r.With(can(auth.PermCheckpointWrite)).Post("/", h.CreateCheckpoint)
				r.With(can(auth.PermCheckpointWrite)).Put("/{id}", h.UpdateCheckpoint)
				r.With(can(auth.PermCheckpointWrite)).Delete("/{id}", h.DeleteCheckpoint)
			})

			r.Route("/users", func(r chi.Router) {
				r.With(can(auth.PermUserRead)).Get("/", h.ListUsers)
				r.With(can(auth.PermUserWrite)).Post("/", h.CreateUser)
				r.With(can(auth.PermUserWrite)).Put("/{id}", h.UpdateUser)
				r.With(can(auth.PermUserWrite)).Delete("/{id}", h.DeleteUser)
			})

			r.With(can(auth.PermUserRead)).Get("/roles", h.ListRoles)
			r.With(can(auth.PermRoleWrite)).Put("/roles/{name}", h.UpsertRole)

			r.With(can(auth.PermReportRead)).Get("/settings/schedule", h.GetSchedule)
			r.With(can(auth.PermSettingsWrite)).Put("/settings/schedule", h.UpdateSchedule)

			r.With(can(auth.PermAttendanceRead)).Get("/attendance", h.ListAttendance)
			r.With(can(auth.PermAttendanceDelete)).Delete("/attendance/{id}", h.DeleteAttendance)

			r.With(can(auth.PermReportRead)).Get("/reports/monthly", h.MonthlyReport)
			r.With(can(auth.PermReportRead)).Get("/reports/matrix", h.MatrixReport)
		})

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			response.NotFound(w, "route not found")
		})
	})

	if cfg.PublicDir != "" {
		r.Handle("/*", SPA(cfg.PublicDir))
	}
	return r
}
