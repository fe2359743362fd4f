package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evangorrell/NBA-Rookie-Value-Analysis/internal/config"
	"github.com/evangorrell/NBA-Rookie-Value-Analysis/internal/dataset"
	"github.com/evangorrell/NBA-Rookie-Value-Analysis/internal/score"
	"github.com/evangorrell/NBA-Rookie-Value-Analysis/internal/season"
)

func testHandler(t *testing.T) (*Handler, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		CurrentSeason: season.Season("2025-26"),
		OutputDir:     dir,
	}
	return New(cfg, nil, slog.Default()), dir
}

func exportCohort(t *testing.T, dir string) score.Cohort {
	t.Helper()
	c := score.Cohort{
		{RookieRecord: dataset.RookieRecord{PlayerName: "Ace", TeamAbbrev: "SAS", Pick: 1, Games: 60, Minutes: 1800, ImpactRate: 0.1, Production: 180, Salary: 9e6}, Expected: 150, Residual: 30},
		{RookieRecord: dataset.RookieRecord{PlayerName: "Bench", TeamAbbrev: "BOS", Pick: 30, Games: 20, Minutes: 300, ImpactRate: 0.05, Production: 15, Salary: 2e6}, Expected: 40, Residual: -25},
	}
	_, err := score.Export(c, dir, season.Season("2025-26"))
	require.NoError(t, err)
	return c
}

func TestGetResidualsFromCSVBackend(t *testing.T) {
	h, dir := testHandler(t)
	exportCohort(t, dir)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/residuals", nil)
	rec := httptest.NewRecorder()
	h.GetResiduals(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Season    string `json:"season"`
		Count     int    `json:"count"`
		Residuals []struct {
			Player   string  `json:"player"`
			Residual float64 `json:"residual"`
		} `json:"residuals"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2025-26", body.Season)
	assert.Equal(t, 2, body.Count)
	assert.Equal(t, "Ace", body.Residuals[0].Player)
	assert.Equal(t, 30.0, body.Residuals[0].Residual)
}

func TestGetResidualsMissingRun(t *testing.T) {
	h, _ := testHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/residuals", nil)
	rec := httptest.NewRecorder()
	h.GetResiduals(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetResidualsBadSeason(t *testing.T) {
	h, _ := testHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/residuals?season=banana", nil)
	rec := httptest.NewRecorder()
	h.GetResiduals(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetSummary(t *testing.T) {
	h, dir := testHandler(t)
	exportCohort(t, dir)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/summary", nil)
	rec := httptest.NewRecorder()
	h.GetSummary(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.EqualValues(t, 2, body["total"])
	assert.EqualValues(t, 1, body["surplus"])
	assert.EqualValues(t, 1, body["deficit"])
}

func TestHealthCheckDBWithoutPool(t *testing.T) {
	h, _ := testHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/health/db", nil)
	rec := httptest.NewRecorder()
	h.HealthCheckDB(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
