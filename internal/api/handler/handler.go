// Package handler provides HTTP handlers for all API endpoints. Handlers
// read the latest scored run from the store when a pool is configured, or
// from the CSV exports otherwise.
package handler

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/evangorrell/NBA-Rookie-Value-Analysis/internal/api/respond"
	"github.com/evangorrell/NBA-Rookie-Value-Analysis/internal/chart"
	"github.com/evangorrell/NBA-Rookie-Value-Analysis/internal/config"
	"github.com/evangorrell/NBA-Rookie-Value-Analysis/internal/db"
	"github.com/evangorrell/NBA-Rookie-Value-Analysis/internal/score"
	"github.com/evangorrell/NBA-Rookie-Value-Analysis/internal/season"
	"github.com/evangorrell/NBA-Rookie-Value-Analysis/internal/store"
)

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	cfg    *config.Config
	pool   *db.Pool
	logger *slog.Logger
}

// New creates a Handler with shared dependencies. pool may be nil.
func New(cfg *config.Config, pool *db.Pool, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{cfg: cfg, pool: pool, logger: logger}
}

// Root serves API info at /.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"name":    "rookie-contract-value",
		"season":  h.cfg.CurrentSeason,
		"status":  "ok",
		"backend": h.backendName(),
	})
}

// HealthCheck reports liveness.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// HealthCheckDB verifies database connectivity, when configured.
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	if h.pool == nil {
		respond.WriteError(w, http.StatusNotFound, "no_database", "no database configured")
		return
	}
	if err := h.pool.HealthCheck(r.Context()); err != nil {
		respond.WriteError(w, http.StatusServiceUnavailable, "db_unreachable", err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (h *Handler) backendName() string {
	if h.pool != nil {
		return "postgres"
	}
	return "csv"
}

// requestedSeason resolves the ?season= query, defaulting to the configured
// current season.
func (h *Handler) requestedSeason(r *http.Request) (season.Season, error) {
	if q := r.URL.Query().Get("season"); q != "" {
		return season.Parse(q)
	}
	return h.cfg.CurrentSeason, nil
}

// loadCohort fetches the latest scored run for a season from whichever
// backend is configured.
func (h *Handler) loadCohort(r *http.Request, s season.Season) (score.Cohort, error) {
	if h.pool != nil {
		return store.LatestRun(r.Context(), h.pool.Pool, s)
	}
	return score.ReadExport(score.ExportPath(h.cfg.OutputDir, s), s)
}

// GetResiduals serves the surplus-first ranking as JSON.
func (h *Handler) GetResiduals(w http.ResponseWriter, r *http.Request) {
	s, err := h.requestedSeason(r)
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "bad_season", err.Error())
		return
	}

	cohort, err := h.loadCohort(r, s)
	if err != nil {
		h.logger.Warn("Residuals unavailable", "season", s, "error", err)
		respond.WriteError(w, http.StatusNotFound, "no_run", "no scored run found for "+s.String())
		return
	}

	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"season":    s,
		"count":     len(cohort),
		"residuals": residualsJSON(cohort),
	})
}

// GetResidualsCSV serves the raw export file.
func (h *Handler) GetResidualsCSV(w http.ResponseWriter, r *http.Request) {
	s, err := h.requestedSeason(r)
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "bad_season", err.Error())
		return
	}

	path := score.ExportPath(h.cfg.OutputDir, s)
	if _, err := os.Stat(path); err != nil {
		respond.WriteError(w, http.StatusNotFound, "no_export", "no residuals export for "+s.String())
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename="+filepath.Base(path))
	http.ServeFile(w, r, path)
}

// GetSummary serves the cohort's residual distribution.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	s, err := h.requestedSeason(r)
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "bad_season", err.Error())
		return
	}

	cohort, err := h.loadCohort(r, s)
	if err != nil {
		respond.WriteError(w, http.StatusNotFound, "no_run", "no scored run found for "+s.String())
		return
	}

	sum := cohort.Summarize()
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"season":          s,
		"total":           sum.Total,
		"surplus":         sum.Surplus,
		"deficit":         sum.Deficit,
		"max_surplus":     sum.MaxSurplus,
		"max_deficit":     sum.MaxDeficit,
		"mean_residual":   sum.MeanResidual,
		"median_residual": sum.MedianResidual,
	})
}

// GetChart serves a rendered chart PNG by name.
func (h *Handler) GetChart(w http.ResponseWriter, r *http.Request) {
	s, err := h.requestedSeason(r)
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "bad_season", err.Error())
		return
	}

	var path string
	switch chi.URLParam(r, "name") {
	case "residual_bar":
		path = chart.ResidualBarPath(h.cfg.OutputDir, s)
	case "accuracy":
		path = chart.AccuracyPath(h.cfg.OutputDir, s)
	default:
		respond.WriteError(w, http.StatusNotFound, "unknown_chart", "chart must be residual_bar or accuracy")
		return
	}

	if _, err := os.Stat(path); err != nil {
		respond.WriteError(w, http.StatusNotFound, "no_chart", "chart not rendered for "+s.String())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	http.ServeFile(w, r, path)
}

type residualJSON struct {
	Player     string  `json:"player"`
	Team       string  `json:"team"`
	Pick       int     `json:"pick"`
	Salary     float64 `json:"salary"`
	Games      int     `json:"games"`
	Minutes    float64 `json:"minutes"`
	ImpactRate float64 `json:"impact_rate"`
	Production float64 `json:"production"`
	Expected   float64 `json:"expected"`
	Residual   float64 `json:"residual"`
}

func residualsJSON(c score.Cohort) []residualJSON {
	out := make([]residualJSON, len(c))
	for i, r := range c {
		out[i] = residualJSON{
			Player:     r.PlayerName,
			Team:       r.TeamAbbrev,
			Pick:       r.Pick,
			Salary:     r.Salary,
			Games:      r.Games,
			Minutes:    r.Minutes,
			ImpactRate: r.ImpactRate,
			Production: r.Production,
			Expected:   r.Expected,
			Residual:   r.Residual,
		}
	}
	return out
}
