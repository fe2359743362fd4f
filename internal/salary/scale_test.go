package salary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evangorrell/NBA-Rookie-Value-Analysis/internal/season"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFileYearColumns(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "rookie_scale.csv",
		"pick,salary_year1,salary_year2,salary_year3,salary_year4\n"+
			"1,10000000,10500000,11000000,13800000\n"+
			"45,1000000,1000000,1000000,0\n")

	scale, err := LoadFile(path)
	require.NoError(t, err)

	v, ok := scale.Lookup(1)
	require.True(t, ok)
	assert.InDelta(t, 11325000, v, 1e-6)

	// Second-round pick: zero fourth year counts toward the average.
	v, ok = scale.Lookup(45)
	require.True(t, ok)
	assert.InDelta(t, 750000, v, 1e-6)
}

func TestLoadFileDirectSalaryColumn(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "rookie_scale.csv", "pick,salary\n1,9000000\n2,8100000\n")

	scale, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, scale, 2)

	v, _ := scale.Lookup(2)
	assert.Equal(t, 8100000.0, v)
}

func TestLoadFileMissingColumns(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "rookie_scale.csv", "pick,something\n1,2\n")

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadPrefersSeasonFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "rookie_scale_2025-26.csv", "pick,salary\n1,500\n")
	writeFile(t, dir, "rookie_scale.csv", "pick,salary\n1,999\n")

	scale, err := Load(season.Season("2025-26"), dir)
	require.NoError(t, err)

	v, _ := scale.Lookup(1)
	assert.Equal(t, 500.0, v)
}

func TestLoadFallsBackToGeneric(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "rookie_scale.csv", "pick,salary\n1,999\n")

	scale, err := Load(season.Season("2025-26"), dir)
	require.NoError(t, err)

	v, _ := scale.Lookup(1)
	assert.Equal(t, 999.0, v)
}

func TestLoadMissingIsFatal(t *testing.T) {
	_, err := Load(season.Season("2025-26"), t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrScaleNotFound)
}

func TestAdjustForInflationCompounds(t *testing.T) {
	got := AdjustForInflation(1_000_000, season.Season("2019-20"), season.Season("2022-23"), 0.02)
	assert.InDelta(t, 1_061_208.00, got, 0.005)
}

func TestAdjustForInflationSameSeasonIsIdentity(t *testing.T) {
	got := AdjustForInflation(123456.78, season.Season("2025-26"), season.Season("2025-26"), 0.02)
	assert.Equal(t, 123456.78, got)
}
