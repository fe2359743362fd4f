package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evangorrell/NBA-Rookie-Value-Analysis/internal/dataset"
)

func scoredCohort() Cohort {
	return Cohort{
		{RookieRecord: dataset.RookieRecord{PlayerName: "Jaylen Green", Salary: 5_000_000, Production: 120}, Expected: 100, Residual: 20},
		{RookieRecord: dataset.RookieRecord{PlayerName: "Jaylen Brown Jr", Salary: 3_000_000, Production: 80}, Expected: 90, Residual: -10},
		{RookieRecord: dataset.RookieRecord{PlayerName: "Marcus Small", Salary: 1_000_000, Production: 40}, Expected: 55, Residual: -15},
	}
}

func TestFindPlayerSubstringCaseInsensitive(t *testing.T) {
	c := scoredCohort()

	r, ok := c.FindPlayer("marcus")
	require.True(t, ok)
	assert.Equal(t, "Marcus Small", r.PlayerName)

	_, ok = c.FindPlayer("nobody")
	assert.False(t, ok)

	_, ok = c.FindPlayer("   ")
	assert.False(t, ok)
}

func TestFindPlayerAmbiguousTakesFirstMatch(t *testing.T) {
	c := scoredCohort()

	// "jaylen" matches two players; the first in ranking order wins.
	r, ok := c.FindPlayer("jaylen")
	require.True(t, ok)
	assert.Equal(t, "Jaylen Green", r.PlayerName)
}

func TestValidateSkipsUnmatched(t *testing.T) {
	c := scoredCohort()
	got := Validate(c, []string{"marcus", "ghost"}, nil, 0.05)
	require.Len(t, got, 2)
	assert.True(t, got[0].Found)
	assert.False(t, got[1].Found)
	assert.Nil(t, got[0].Band)
}

func historicalBand() dataset.Dataset {
	return dataset.Dataset{
		{PlayerName: "H1", Salary: 5_000_000, Production: 90},
		{PlayerName: "H2", Salary: 5_100_000, Production: 110},
		{PlayerName: "H3", Salary: 4_900_000, Production: 130},
		{PlayerName: "H4", Salary: 5_200_000, Production: 150},
		{PlayerName: "FarAway", Salary: 9_000_000, Production: 500},
	}
}

func TestCompareToHistoryBandAndPercentile(t *testing.T) {
	player := ResidualRecord{
		RookieRecord: dataset.RookieRecord{PlayerName: "Me", Salary: 5_000_000, Production: 120},
	}

	band := CompareToHistory(player, historicalBand(), 0.05)
	require.NotNil(t, band)
	require.Len(t, band.Records, 4)

	assert.InDelta(t, 120, band.Mean, 1e-9)
	assert.InDelta(t, 120, band.Median, 1e-9)
	assert.Equal(t, 90.0, band.Min)
	assert.Equal(t, 150.0, band.Max)

	// Two of four strictly below 120.
	assert.Equal(t, 50.0, band.Percentile)
}

func TestCompareToHistoryTiesScoreZero(t *testing.T) {
	player := ResidualRecord{
		RookieRecord: dataset.RookieRecord{Salary: 5_000_000, Production: 100},
	}
	hist := dataset.Dataset{
		{Salary: 5_000_000, Production: 100},
		{Salary: 5_000_000, Production: 100},
	}

	band := CompareToHistory(player, hist, 0.05)
	assert.Equal(t, 0.0, band.Percentile)
}

func TestCompareToHistoryEmptyBand(t *testing.T) {
	player := ResidualRecord{
		RookieRecord: dataset.RookieRecord{Salary: 50_000_000, Production: 100},
	}
	band := CompareToHistory(player, historicalBand(), 0.05)
	require.NotNil(t, band)
	assert.Empty(t, band.Records)
}

func TestValidateWiderToleranceGrowsBand(t *testing.T) {
	player := ResidualRecord{
		RookieRecord: dataset.RookieRecord{Salary: 5_000_000, Production: 120},
	}

	narrow := CompareToHistory(player, historicalBand(), 0.01)
	wide := CompareToHistory(player, historicalBand(), 0.10)
	assert.Less(t, len(narrow.Records), len(wide.Records))
}
