package score

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evangorrell/NBA-Rookie-Value-Analysis/internal/dataset"
	"github.com/evangorrell/NBA-Rookie-Value-Analysis/internal/model"
	"github.com/evangorrell/NBA-Rookie-Value-Analysis/internal/season"
)

func trainedPipeline(t *testing.T) *model.Pipeline {
	t.Helper()
	ds := make(dataset.Dataset, 0, 40)
	for i := 0; i < 40; i++ {
		ds = append(ds, dataset.RookieRecord{
			Salary:     1_000_000 + float64(i)*250_000,
			Production: 280 - float64(i)*4,
		})
	}
	p, _, err := model.Train(ds, model.DefaultOptions(5), slog.Default())
	require.NoError(t, err)
	return p
}

func currentCohort() dataset.Dataset {
	return dataset.Dataset{
		{PlayerID: 1, PlayerName: "Ace Guard", TeamAbbrev: "SAS", Season: "2025-26", Pick: 1, Games: 60, Minutes: 1800, ImpactRate: 0.10, Production: 180, Salary: 9_750_000},
		{PlayerID: 2, PlayerName: "Steady Wing", TeamAbbrev: "BOS", Season: "2025-26", Pick: 15, Games: 55, Minutes: 1200, ImpactRate: 0.08, Production: 96, Salary: 4_500_000},
		{PlayerID: 3, PlayerName: "Second Rounder", TeamAbbrev: "MIA", Season: "2025-26", Pick: 45, Games: 30, Minutes: 400, ImpactRate: 0.09, Production: 36, Salary: 1_200_000},
	}
}

func TestScoreResidualDefinitionAndOrdering(t *testing.T) {
	p := trainedPipeline(t)
	cohort := Score(currentCohort(), p, slog.Default())
	require.Len(t, cohort, 3)

	for _, r := range cohort {
		assert.InDelta(t, r.Production-r.Expected, r.Residual, 1e-9)
	}

	// Surplus-first: monotonically non-increasing residuals.
	for i := 1; i < len(cohort); i++ {
		assert.GreaterOrEqual(t, cohort[i-1].Residual, cohort[i].Residual)
	}
}

func TestSummarize(t *testing.T) {
	c := Cohort{
		{Residual: 30},
		{Residual: 10},
		{Residual: -5},
	}
	s := c.Summarize()
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.Surplus)
	assert.Equal(t, 1, s.Deficit)
	assert.Equal(t, 30.0, s.MaxSurplus)
	assert.Equal(t, -5.0, s.MaxDeficit)
	assert.InDelta(t, 35.0/3, s.MeanResidual, 1e-9)
	assert.Equal(t, 10.0, s.MedianResidual)
}

func TestExportRoundTrip(t *testing.T) {
	p := trainedPipeline(t)
	cohort := Score(currentCohort(), p, slog.Default())

	dir := t.TempDir()
	path, err := Export(cohort, dir, season.Season("2025-26"))
	require.NoError(t, err)
	assert.Equal(t, ExportPath(dir, "2025-26"), path)

	loaded, err := ReadExport(path, season.Season("2025-26"))
	require.NoError(t, err)
	require.Len(t, loaded, len(cohort))

	for i := range cohort {
		assert.Equal(t, cohort[i].PlayerName, loaded[i].PlayerName)
		assert.Equal(t, cohort[i].TeamAbbrev, loaded[i].TeamAbbrev)
		assert.Equal(t, cohort[i].Pick, loaded[i].Pick)
		assert.Equal(t, cohort[i].Games, loaded[i].Games)
		assert.Equal(t, cohort[i].Salary, loaded[i].Salary)
		assert.Equal(t, cohort[i].Minutes, loaded[i].Minutes)
		assert.Equal(t, cohort[i].ImpactRate, loaded[i].ImpactRate)
		assert.Equal(t, cohort[i].Production, loaded[i].Production)
		assert.Equal(t, cohort[i].Expected, loaded[i].Expected)
		assert.Equal(t, cohort[i].Residual, loaded[i].Residual)
	}
}

func TestReadExportRejectsBadHeader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("Player,Team\nX,Y\n"), 0o644))

	_, err := ReadExport(path, season.Season("2025-26"))
	assert.Error(t, err)
}
