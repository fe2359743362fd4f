// Package chart renders the PNG visualizations: the residual bar chart and
// the prediction accuracy scatter.
package chart

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/fogleman/gg"

	"github.com/evangorrell/NBA-Rookie-Value-Analysis/internal/score"
	"github.com/evangorrell/NBA-Rookie-Value-Analysis/internal/season"
)

const (
	surplusColor = "#2ecc71"
	deficitColor = "#e74c3c"

	barChartWidth = 1200
	rowHeight     = 28
	marginTop     = 70
	marginBottom  = 60
	marginLeft    = 260
	marginRight   = 120
)

// ResidualBarPath returns the bar chart file for a season.
func ResidualBarPath(outputDir string, s season.Season) string {
	return filepath.Join(outputDir, fmt.Sprintf("%s_residual_bar_chart.png", s))
}

// RenderResidualBar draws one horizontal bar per player, green for surplus
// and red for deficit, ordered by residual ascending top to bottom.
func RenderResidualBar(c score.Cohort, outputDir string, s season.Season) (string, error) {
	if len(c) == 0 {
		return "", fmt.Errorf("render residual bar: empty cohort")
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	rows := make([]score.ResidualRecord, len(c))
	copy(rows, c)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Residual < rows[j].Residual })

	height := marginTop + marginBottom + rowHeight*len(rows)
	dc := gg.NewContext(barChartWidth, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	// Residual scale across the plot area, always spanning zero.
	minR, maxR := rows[0].Residual, rows[len(rows)-1].Residual
	if minR > 0 {
		minR = 0
	}
	if maxR < 0 {
		maxR = 0
	}
	span := maxR - minR
	if span == 0 {
		span = 1
	}
	plotWidth := float64(barChartWidth - marginLeft - marginRight)
	xFor := func(v float64) float64 {
		return marginLeft + (v-minR)/span*plotWidth
	}

	// Title
	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored(fmt.Sprintf("NBA Rookie Contract Value Analysis %s", s),
		float64(barChartWidth)/2, marginTop/2, 0.5, 0.5)

	zeroX := xFor(0)

	for i, r := range rows {
		y := float64(marginTop + i*rowHeight)
		barTop := y + 5
		barH := float64(rowHeight - 10)

		x := xFor(r.Residual)
		left, width := zeroX, x-zeroX
		if width < 0 {
			left, width = x, -width
		}

		if r.Residual > 0 {
			dc.SetHexColor(surplusColor)
		} else {
			dc.SetHexColor(deficitColor)
		}
		dc.DrawRectangle(left, barTop, width, barH)
		dc.FillPreserve()
		dc.SetRGBA(0, 0, 0, 0.6)
		dc.SetLineWidth(0.5)
		dc.Stroke()

		// Player label on the left margin, value at the bar end.
		dc.SetRGB(0, 0, 0)
		label := fmt.Sprintf("%s (%s)", r.PlayerName, r.TeamAbbrev)
		dc.DrawStringAnchored(label, marginLeft-8, y+float64(rowHeight)/2, 1, 0.5)

		value := fmt.Sprintf("%+.1f", r.Residual)
		if r.Residual >= 0 {
			dc.DrawStringAnchored(value, x+4, y+float64(rowHeight)/2, 0, 0.5)
		} else {
			dc.DrawStringAnchored(value, x-4, y+float64(rowHeight)/2, 1, 0.5)
		}
	}

	// Zero line over the full plot height.
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(2)
	dc.DrawLine(zeroX, marginTop-10, zeroX, float64(height-marginBottom+10))
	dc.Stroke()

	drawBarLegend(dc, float64(barChartWidth-marginRight-220), float64(height-marginBottom+20))

	path := ResidualBarPath(outputDir, s)
	if err := dc.SavePNG(path); err != nil {
		return "", fmt.Errorf("save residual bar chart: %w", err)
	}
	return path, nil
}

func drawBarLegend(dc *gg.Context, x, y float64) {
	dc.SetHexColor(surplusColor)
	dc.DrawRectangle(x, y, 14, 14)
	dc.Fill()
	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored("Surplus (outperforming)", x+20, y+7, 0, 0.5)

	dc.SetHexColor(deficitColor)
	dc.DrawRectangle(x, y+20, 14, 14)
	dc.Fill()
	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored("Deficit (underperforming)", x+20, y+27, 0, 0.5)
}

// niceStep picks a readable tick interval for a value span.
func niceStep(span float64) float64 {
	raw := span / 8
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 5, 10} {
		if raw <= m*mag {
			return m * mag
		}
	}
	return 10 * mag
}
