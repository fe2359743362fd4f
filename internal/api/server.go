// Package api exposes the latest scored run over HTTP: residual rankings as
// JSON or CSV, summary statistics, and the rendered charts. It is a read-only
// consumer of the pipeline's outputs.
package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"

	"github.com/evangorrell/NBA-Rookie-Value-Analysis/internal/api/handler"
	"github.com/evangorrell/NBA-Rookie-Value-Analysis/internal/config"
	"github.com/evangorrell/NBA-Rookie-Value-Analysis/internal/db"
)

// NewRouter creates and configures the Chi router with all middleware and
// routes. pool may be nil, in which case residuals are served from the CSV
// exports under the output directory.
func NewRouter(cfg *config.Config, pool *db.Pool, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// --- Handler dependencies ---
	h := handler.New(cfg, pool, logger)

	// --- Routes ---
	r.Get("/", h.Root)

	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/db", h.HealthCheckDB)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/residuals", h.GetResiduals)
		r.Get("/residuals.csv", h.GetResidualsCSV)
		r.Get("/summary", h.GetSummary)
		r.Get("/charts/{name}", h.GetChart)
	})

	return r
}
