// Package score applies a trained pipeline to the current cohort, producing
// the canonical surplus-first residual ranking, its CSV export, and the
// per-player validation breakdowns.
package score

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/evangorrell/NBA-Rookie-Value-Analysis/internal/dataset"
	"github.com/evangorrell/NBA-Rookie-Value-Analysis/internal/model"
)

// ResidualRecord is a rookie plus the model's view of them. Positive residual
// means contract surplus.
type ResidualRecord struct {
	dataset.RookieRecord
	Expected float64
	Residual float64
}

// Cohort is a scored season, ordered surplus-first. Derived read-only from
// the dataset and the pipeline; recomputed each run, never cached.
type Cohort []ResidualRecord

// Score predicts expected production from raw salary, computes residuals,
// and sorts the cohort by residual descending.
func Score(ds dataset.Dataset, p *model.Pipeline, logger *slog.Logger) Cohort {
	if logger == nil {
		logger = slog.Default()
	}

	expected := p.Predict(ds.Salaries())

	cohort := make(Cohort, len(ds))
	for i, r := range ds {
		cohort[i] = ResidualRecord{
			RookieRecord: r,
			Expected:     expected[i],
			Residual:     r.Production - expected[i],
		}
	}

	sort.SliceStable(cohort, func(i, j int) bool { return cohort[i].Residual > cohort[j].Residual })

	if len(cohort) > 0 {
		top, bottom := cohort[0], cohort[len(cohort)-1]
		logger.Info("Residuals calculated", "rookies", len(cohort))
		logger.Info("Top surplus", "player", top.PlayerName, "residual", fmt.Sprintf("%+.2f", top.Residual))
		logger.Info("Biggest deficit", "player", bottom.PlayerName, "residual", fmt.Sprintf("%.2f", bottom.Residual))
	}

	return cohort
}

// Actuals returns the production column in cohort order.
func (c Cohort) Actuals() []float64 {
	out := make([]float64, len(c))
	for i, r := range c {
		out[i] = r.Production
	}
	return out
}

// Expecteds returns the model predictions in cohort order.
func (c Cohort) Expecteds() []float64 {
	out := make([]float64, len(c))
	for i, r := range c {
		out[i] = r.Expected
	}
	return out
}

// Summary aggregates the cohort's residual distribution.
type Summary struct {
	Total          int
	Surplus        int
	Deficit        int
	MaxSurplus     float64
	MaxDeficit     float64
	MeanResidual   float64
	MedianResidual float64
}

// Summarize computes the distribution counts and central tendencies.
func (c Cohort) Summarize() Summary {
	s := Summary{Total: len(c)}
	if len(c) == 0 {
		return s
	}

	residuals := make([]float64, len(c))
	sum := 0.0
	for i, r := range c {
		residuals[i] = r.Residual
		sum += r.Residual
		if r.Residual > 0 {
			s.Surplus++
		} else if r.Residual < 0 {
			s.Deficit++
		}
	}

	// Cohort is sorted descending, so the extremes are the ends.
	s.MaxSurplus = c[0].Residual
	s.MaxDeficit = c[len(c)-1].Residual
	s.MeanResidual = sum / float64(len(c))

	sort.Float64s(residuals)
	mid := len(residuals) / 2
	if len(residuals)%2 == 1 {
		s.MedianResidual = residuals[mid]
	} else {
		s.MedianResidual = (residuals[mid-1] + residuals[mid]) / 2
	}
	return s
}
