package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/clarityworks/clarity/internal/config"
	"github.com/clarityworks/clarity/internal/events"
	"github.com/clarityworks/clarity/internal/report"
	"github.com/clarityworks/clarity/internal/store"
	"github.com/clarityworks/clarity/internal/waitlist"
)

func NewRouter(s store.Store, e events.Client, wl waitlist.Client, exp *report.Exporter, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(120))

	score := NewScoreHandler(cfg.Scoring.DefaultRiskFactor)
	decisions := NewDecisionsHandler(s, e, exp, cfg.Scoring.DefaultRiskFactor)
	signup := NewWaitlistHandler(wl, logger)
	admin := NewAdminHandler(s)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/score", score.Score)

		r.Post("/decisions", decisions.Create)
		r.Get("/decisions", decisions.List)
		r.Get("/decisions/{id}", decisions.Get)
		r.Put("/decisions/{id}", decisions.Update)
		r.Delete("/decisions/{id}", decisions.Delete)
		r.Post("/decisions/{id}/score", decisions.Score)
		r.Get("/decisions/{id}/explain", decisions.Explain)
		r.Post("/decisions/{id}/export", decisions.Export)

		r.Post("/waitlist", signup.Signup)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(cfg.Server.AdminToken))
			r.Get("/stats", admin.Stats)
		})
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
