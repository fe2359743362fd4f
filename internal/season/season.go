// Package season provides the NBA season label type shared by every stage of
// the pipeline. Seasons are written "2025-26": the calendar year the season
// tips off in, a dash, and the last two digits of the year it ends in.
package season

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Season is a label like "2025-26".
type Season string

var labelPattern = regexp.MustCompile(`^(\d{4})-(\d{2})$`)

// Parse validates a season label.
func Parse(s string) (Season, error) {
	m := labelPattern.FindStringSubmatch(s)
	if m == nil {
		return "", fmt.Errorf("invalid season label %q (want e.g. \"2025-26\")", s)
	}
	start, _ := strconv.Atoi(m[1])
	end, _ := strconv.Atoi(m[2])
	if (start+1)%100 != end {
		return "", fmt.Errorf("season label %q: end year does not follow start year", s)
	}
	return Season(s), nil
}

// FromStartYear builds the label for the season tipping off in year.
func FromStartYear(year int) Season {
	return Season(fmt.Sprintf("%d-%02d", year, (year+1)%100))
}

// StartYear returns the calendar year the season tips off in. Draft year for
// a season's rookie class is the same year.
func (s Season) StartYear() int {
	y, _ := strconv.Atoi(string(s)[:4])
	return y
}

// DraftYear is the year this season's rookie class was drafted.
func (s Season) DraftYear() int { return s.StartYear() }

func (s Season) String() string { return string(s) }

// Detect determines the current NBA season from the wall clock. Seasons run
// October through June, so Jan-Sep belongs to the season that started the
// previous calendar year.
func Detect(now time.Time) Season {
	year := now.Year()
	if now.Month() < time.October {
		year--
	}
	return FromStartYear(year)
}

// Range generates the historical seasons from startYear up to, but not
// including, current.
func Range(startYear int, current Season) []Season {
	var seasons []Season
	for y := startYear; y < current.StartYear(); y++ {
		seasons = append(seasons, FromStartYear(y))
	}
	return seasons
}
