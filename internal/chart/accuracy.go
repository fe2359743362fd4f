package chart

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"

	"github.com/evangorrell/NBA-Rookie-Value-Analysis/internal/model"
	"github.com/evangorrell/NBA-Rookie-Value-Analysis/internal/score"
	"github.com/evangorrell/NBA-Rookie-Value-Analysis/internal/season"
)

const (
	scatterSize   = 900
	scatterMargin = 90
)

// AccuracyPath returns the diagnostic scatter file for a season.
func AccuracyPath(outputDir string, s season.Season) string {
	return filepath.Join(outputDir, fmt.Sprintf("%s_accuracy_diagnostic.png", s))
}

// RenderAccuracy draws expected vs actual production with the y=x reference
// line and an MAE/RMSE/R² annotation box.
func RenderAccuracy(c score.Cohort, m model.Metrics, outputDir string, s season.Season) (string, error) {
	if len(c) == 0 {
		return "", fmt.Errorf("render accuracy scatter: empty cohort")
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	actual := c.Actuals()
	expected := c.Expecteds()

	lo, hi := math.Inf(1), math.Inf(-1)
	for i := range actual {
		lo = math.Min(lo, math.Min(actual[i], expected[i]))
		hi = math.Max(hi, math.Max(actual[i], expected[i]))
	}
	if hi == lo {
		hi = lo + 1
	}
	// Pad the range so edge points are not clipped.
	pad := (hi - lo) * 0.05
	lo, hi = lo-pad, hi+pad

	dc := gg.NewContext(scatterSize, scatterSize)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	plot := float64(scatterSize - 2*scatterMargin)
	toX := func(v float64) float64 { return scatterMargin + (v-lo)/(hi-lo)*plot }
	toY := func(v float64) float64 { return float64(scatterSize) - scatterMargin - (v-lo)/(hi-lo)*plot }

	// Frame and grid.
	dc.SetRGBA(0, 0, 0, 0.25)
	dc.SetLineWidth(1)
	step := niceStep(hi - lo)
	for v := math.Ceil(lo/step) * step; v <= hi; v += step {
		dc.DrawLine(toX(v), scatterMargin, toX(v), float64(scatterSize-scatterMargin))
		dc.DrawLine(scatterMargin, toY(v), float64(scatterSize-scatterMargin), toY(v))
		dc.Stroke()
		dc.SetRGB(0, 0, 0)
		dc.DrawStringAnchored(fmt.Sprintf("%.0f", v), toX(v), float64(scatterSize-scatterMargin)+16, 0.5, 0.5)
		dc.DrawStringAnchored(fmt.Sprintf("%.0f", v), scatterMargin-10, toY(v), 1, 0.5)
		dc.SetRGBA(0, 0, 0, 0.25)
	}

	// Perfect prediction reference.
	dc.SetRGB(0.85, 0.2, 0.2)
	dc.SetLineWidth(2)
	dc.SetDash(8, 6)
	dc.DrawLine(toX(lo), toY(lo), toX(hi), toY(hi))
	dc.Stroke()
	dc.SetDash()

	// Points.
	dc.SetRGBA(0.2, 0.4, 0.8, 0.7)
	for i := range actual {
		dc.DrawCircle(toX(expected[i]), toY(actual[i]), 6)
		dc.Fill()
	}

	// Labels and title.
	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored(fmt.Sprintf("Model Accuracy: Predicted vs Actual Production - %s Rookies", s),
		float64(scatterSize)/2, scatterMargin/2, 0.5, 0.5)
	dc.DrawStringAnchored("Expected Production (Model Prediction)",
		float64(scatterSize)/2, float64(scatterSize)-scatterMargin/3, 0.5, 0.5)

	// Metrics annotation box.
	lines := []string{
		fmt.Sprintf("R^2  = %.3f", m.R2),
		fmt.Sprintf("MAE  = %.1f", m.MAE),
		fmt.Sprintf("RMSE = %.1f", m.RMSE),
	}
	boxX, boxY := float64(scatterMargin+14), float64(scatterMargin+14)
	dc.SetRGBA(0.96, 0.9, 0.7, 0.9)
	dc.DrawRectangle(boxX, boxY, 140, 58)
	dc.FillPreserve()
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(1)
	dc.Stroke()
	for i, line := range lines {
		dc.DrawStringAnchored(line, boxX+10, boxY+14+float64(i)*16, 0, 0.5)
	}

	path := AccuracyPath(outputDir, s)
	if err := dc.SavePNG(path); err != nil {
		return "", fmt.Errorf("save accuracy scatter: %w", err)
	}
	return path, nil
}
