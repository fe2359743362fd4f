// Package report renders the human-readable console output: cohort
// summaries, accuracy metrics with interpretation, and per-player validation
// breakdowns. It is a consumer of the scorer's output and owns no pipeline
// logic.
package report

import (
	"fmt"
	"io"

	"github.com/evangorrell/NBA-Rookie-Value-Analysis/internal/model"
	"github.com/evangorrell/NBA-Rookie-Value-Analysis/internal/score"
)

// Reporter writes formatted analysis output.
type Reporter struct {
	w io.Writer
}

// New creates a reporter writing to w.
func New(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

func (r *Reporter) printf(format string, args ...any) {
	fmt.Fprintf(r.w, format, args...)
}

// Banner prints the run header.
func (r *Reporter) Banner(title string) {
	line := "============================================================"
	r.printf("%s\n%s\n%s\n", line, title, line)
}

// TrainingSummary reports the cross-validation diagnostics.
func (r *Reporter) TrainingSummary(rows int, report *model.CVReport) {
	r.printf("\n=== Training Model ===\n")
	r.printf("Training data: %d rookies\n", rows)
	r.printf("CV R^2 per fold:")
	for _, v := range report.FoldR2 {
		r.printf(" %.3f", v)
	}
	r.printf("\nMean CV R^2: %.3f (+/- %.3f)\n", report.MeanR2, 2*report.StdR2)
	if report.LinearBaselineR2 != 0 {
		r.printf("Linear baseline R^2: %.3f\n", report.LinearBaselineR2)
	}
}

// CohortSummary prints the residual distribution.
func (r *Reporter) CohortSummary(s score.Summary) {
	r.printf("\n=== Current Season Summary Statistics ===\n")
	r.printf("  Rookies analyzed: %d\n", s.Total)
	r.printf("  Providing surplus value: %d\n", s.Surplus)
	r.printf("  Providing deficit value: %d\n", s.Deficit)
	r.printf("  Maximum surplus: %+.2f\n", s.MaxSurplus)
	r.printf("  Maximum deficit: %.2f\n", s.MaxDeficit)
	r.printf("  Mean residual: %.2f\n", s.MeanResidual)
	r.printf("  Median residual: %.2f\n", s.MedianResidual)
}

// TopAndBottom prints the best surpluses and worst deficits.
func (r *Reporter) TopAndBottom(c score.Cohort, n int) {
	if len(c) == 0 {
		return
	}
	if n > len(c) {
		n = len(c)
	}

	r.printf("\n  Top %d Surplus Value Rookies\n", n)
	for _, rec := range c[:n] {
		r.printf("  %-20s (%-3s) | Pick %2d | Residual: %+.2f\n",
			rec.PlayerName, rec.TeamAbbrev, rec.Pick, rec.Residual)
	}

	r.printf("\n  Bottom %d (Biggest Deficits) Rookies\n", n)
	for i := 0; i < n; i++ {
		rec := c[len(c)-1-i]
		r.printf("  %-20s (%-3s) | Pick %2d | Residual: %.2f\n",
			rec.PlayerName, rec.TeamAbbrev, rec.Pick, rec.Residual)
	}
}

// Accuracy prints the accuracy metrics with a plain-language reading.
func (r *Reporter) Accuracy(m model.Metrics, avgProduction float64) {
	r.printf("\n  Accuracy metrics:\n")
	r.printf("    Mean Absolute Error (MAE): %.2f\n", m.MAE)
	r.printf("    Root Mean Squared Error (RMSE): %.2f\n", m.RMSE)
	r.printf("    R^2 Score: %.3f\n", m.R2)

	if avgProduction != 0 {
		r.printf("\n  On average, predictions are off by %.1f production units (%.1f%% of average production %.1f)\n",
			m.MAE, 100*m.MAE/avgProduction, avgProduction)
	}

	switch {
	case m.R2 < 0.3:
		r.printf("  Salary alone is a weak predictor of rookie production (explains %.1f%% of variance).\n", max0(m.R2)*100)
		r.printf("  Residuals benchmark rookies against historical peers at the same salary, not precise forecasts.\n")
	case m.R2 > 0.6:
		r.printf("  Salary is a good predictor: the model explains %.1f%% of variance.\n", m.R2*100)
	default:
		r.printf("  Salary is a moderate predictor: the model explains %.1f%% of variance.\n", m.R2*100)
	}
}

func max0(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
