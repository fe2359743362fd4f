// Package dataset assembles the per-rookie feature table the model trains
// and scores on: box-score totals merged with advanced impact totals, inner
// joined against the draft class, filtered by games played, with production
// and rookie-scale salary attached.
package dataset

import "github.com/evangorrell/NBA-Rookie-Value-Analysis/internal/season"

// Metric names baked into the production definition. They participate in the
// snapshot cache key so a metric change invalidates cached history.
const (
	RateMetric   = "PIE"
	VolumeMetric = "MIN"
)

// RookieRecord is one drafted rookie's season. A record exists only for
// players who appear in the season's draft class, meet the games-played
// threshold, and map to a known rookie-scale entry.
type RookieRecord struct {
	PlayerID   int
	PlayerName string
	Season     season.Season
	Pick       int
	Team       string
	TeamAbbrev string
	Games      int
	Minutes    float64
	ImpactRate float64
	Production float64
	Salary     float64
}

// Dataset is a collection of rookie records, possibly spanning seasons.
type Dataset []RookieRecord

// Salaries returns the salary column.
func (d Dataset) Salaries() []float64 {
	out := make([]float64, len(d))
	for i, r := range d {
		out[i] = r.Salary
	}
	return out
}

// Productions returns the production column.
func (d Dataset) Productions() []float64 {
	out := make([]float64, len(d))
	for i, r := range d {
		out[i] = r.Production
	}
	return out
}
