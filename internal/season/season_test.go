package season

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	s, err := Parse("2025-26")
	require.NoError(t, err)
	assert.Equal(t, 2025, s.StartYear())
	assert.Equal(t, 2025, s.DraftYear())

	_, err = Parse("2025")
	assert.Error(t, err)

	_, err = Parse("2025-27")
	assert.Error(t, err)
}

func TestFromStartYearCenturyWrap(t *testing.T) {
	assert.Equal(t, Season("1999-00"), FromStartYear(1999))
	assert.Equal(t, Season("2019-20"), FromStartYear(2019))
}

func TestDetect(t *testing.T) {
	// November belongs to the season that just tipped off.
	nov := time.Date(2025, time.November, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, Season("2025-26"), Detect(nov))

	// March belongs to the season that started the previous fall.
	mar := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, Season("2025-26"), Detect(mar))
}

func TestRange(t *testing.T) {
	got := Range(2019, Season("2025-26"))
	want := []Season{"2019-20", "2020-21", "2021-22", "2022-23", "2023-24", "2024-25"}
	assert.Equal(t, want, got)

	assert.Empty(t, Range(2025, Season("2025-26")))
}
