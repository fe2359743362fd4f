package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/evangorrell/NBA-Rookie-Value-Analysis/internal/dataset"
	"github.com/evangorrell/NBA-Rookie-Value-Analysis/internal/model"
	"github.com/evangorrell/NBA-Rookie-Value-Analysis/internal/score"
)

func TestDollars(t *testing.T) {
	assert.Equal(t, "$1,061,208", dollars(1_061_208))
	assert.Equal(t, "$750,000", dollars(750_000))
	assert.Equal(t, "$999", dollars(999))
	assert.Equal(t, "-$1,500", dollars(-1_500))
}

func TestTopAndBottom(t *testing.T) {
	var sb strings.Builder
	r := New(&sb)

	c := score.Cohort{
		{RookieRecord: dataset.RookieRecord{PlayerName: "Best", TeamAbbrev: "SAS", Pick: 45}, Residual: 50},
		{RookieRecord: dataset.RookieRecord{PlayerName: "Middle", TeamAbbrev: "BOS", Pick: 20}, Residual: 0},
		{RookieRecord: dataset.RookieRecord{PlayerName: "Worst", TeamAbbrev: "LAL", Pick: 1}, Residual: -80},
	}
	r.TopAndBottom(c, 1)

	out := sb.String()
	assert.Contains(t, out, "Best")
	assert.Contains(t, out, "Worst")
	assert.Contains(t, out, "+50.00")
	assert.Contains(t, out, "-80.00")
}

func TestAccuracyWeakPredictorWording(t *testing.T) {
	var sb strings.Builder
	r := New(&sb)

	r.Accuracy(model.Metrics{MAE: 25, RMSE: 30, R2: 0.12}, 100)
	assert.Contains(t, sb.String(), "weak predictor")
}

func TestValidationsNotFound(t *testing.T) {
	var sb strings.Builder
	r := New(&sb)

	r.Validations([]score.Validation{{Query: "ghost", Found: false}}, 2019)
	assert.Contains(t, sb.String(), "Player not found: ghost")
}

func TestValidationsBandPercentile(t *testing.T) {
	var sb strings.Builder
	r := New(&sb)

	v := score.Validation{
		Query: "ace",
		Found: true,
		Player: score.ResidualRecord{
			RookieRecord: dataset.RookieRecord{PlayerName: "Ace Guard", TeamAbbrev: "SAS", Pick: 1, Games: 60, Minutes: 1800, ImpactRate: 0.1, Production: 180, Salary: 9_000_000},
			Expected:     150,
			Residual:     30,
		},
		Band: &score.ComparisonBand{
			Tolerance:  0.05,
			Records:    []dataset.RookieRecord{{PlayerName: "H1", Season: "2021-22", Production: 150}},
			Mean:       150,
			Median:     150,
			Min:        150,
			Max:        150,
			Percentile: 100,
		},
	}
	r.Validations([]score.Validation{v}, 2019)

	out := sb.String()
	assert.Contains(t, out, "Ace Guard")
	assert.Contains(t, out, "SURPLUS")
	assert.Contains(t, out, "100th percentile")
	assert.Contains(t, out, "$9,000,000")
	assert.Contains(t, out, "Top-3 picks")
}
