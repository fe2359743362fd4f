// Package salary loads the rookie-scale contract table and handles inflation
// normalization across seasons.
//
// The scale CSV carries one row per draft pick with either a precomputed
// `salary` column or the four year-by-year salary columns. Second-round picks
// legitimately have a zero fourth year; the 4-year average keeps that zero
// instead of treating it as missing.
package salary

import (
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/evangorrell/NBA-Rookie-Value-Analysis/internal/season"
)

// ErrScaleNotFound is returned when neither the season-specific nor the
// generic scale file exists. Callers treat this as fatal configuration.
var ErrScaleNotFound = errors.New("rookie scale salary file not found")

// Scale maps draft pick to 4-year-average rookie-scale salary.
type Scale map[int]float64

// Load locates the scale file for a season, preferring
// data/rookie_scale_<season>.csv and falling back to data/rookie_scale.csv.
func Load(seasonLabel season.Season, dataDir string) (Scale, error) {
	candidates := []string{
		filepath.Join(dataDir, fmt.Sprintf("rookie_scale_%s.csv", seasonLabel)),
		filepath.Join(dataDir, "rookie_scale.csv"),
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, fmt.Errorf("%w: tried %s and %s", ErrScaleNotFound, candidates[0], candidates[1])
}

// LoadFile reads a scale CSV directly.
func LoadFile(path string) (Scale, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rookie scale: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read rookie scale %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("rookie scale %s: no data rows", path)
	}

	header := records[0]
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[h] = i
	}

	pickCol, ok := col["pick"]
	if !ok {
		return nil, fmt.Errorf("rookie scale %s: missing 'pick' column", path)
	}

	yearCols := make([]int, 0, 4)
	for _, name := range []string{"salary_year1", "salary_year2", "salary_year3", "salary_year4"} {
		if i, ok := col[name]; ok {
			yearCols = append(yearCols, i)
		}
	}
	salaryCol, hasSalary := col["salary"]

	scale := make(Scale, len(records)-1)
	for n, rec := range records[1:] {
		pick, err := strconv.Atoi(rec[pickCol])
		if err != nil {
			return nil, fmt.Errorf("rookie scale %s row %d: bad pick %q", path, n+2, rec[pickCol])
		}

		var value float64
		switch {
		case len(yearCols) == 4:
			sum := 0.0
			for _, c := range yearCols {
				v, err := strconv.ParseFloat(rec[c], 64)
				if err != nil {
					return nil, fmt.Errorf("rookie scale %s row %d: bad salary %q", path, n+2, rec[c])
				}
				sum += v
			}
			value = sum / 4
		case hasSalary:
			value, err = strconv.ParseFloat(rec[salaryCol], 64)
			if err != nil {
				return nil, fmt.Errorf("rookie scale %s row %d: bad salary %q", path, n+2, rec[salaryCol])
			}
		default:
			return nil, fmt.Errorf("rookie scale %s: need 'salary' or 'salary_year1'..'salary_year4' columns", path)
		}

		scale[pick] = value
	}

	return scale, nil
}

// Lookup returns the salary for a pick.
func (s Scale) Lookup(pick int) (float64, bool) {
	v, ok := s[pick]
	return v, ok
}

// AdjustForInflation compounds an annual rate over the start-year gap between
// two seasons, so historical dollars become comparable with the target
// season's.
func AdjustForInflation(amount float64, from, to season.Season, annualRate float64) float64 {
	years := to.StartYear() - from.StartYear()
	return amount * math.Pow(1+annualRate, float64(years))
}
