package score

import (
	"sort"
	"strings"

	"github.com/evangorrell/NBA-Rookie-Value-Analysis/internal/dataset"
)

// Validation is one player's detailed breakdown, optionally with the
// historical comparison band at a similar salary.
type Validation struct {
	Query  string
	Found  bool
	Player ResidualRecord
	Band   *ComparisonBand
}

// ComparisonBand is the historical cohort within a salary tolerance of the
// player, with the player's standing inside it.
type ComparisonBand struct {
	Tolerance  float64
	Records    []dataset.RookieRecord // sorted by production descending
	Mean       float64
	Median     float64
	Min        float64
	Max        float64
	Percentile float64
}

// FindPlayer resolves a case-insensitive substring query against the cohort.
// The first match in ranking order wins; ambiguity is documented behavior,
// not an error.
func (c Cohort) FindPlayer(query string) (ResidualRecord, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return ResidualRecord{}, false
	}
	for _, r := range c {
		if strings.Contains(strings.ToLower(r.PlayerName), q) {
			return r, true
		}
	}
	return ResidualRecord{}, false
}

// Validate builds breakdowns for a list of player name queries. Unmatched
// names are reported as not found and skipped. The historical dataset may be
// nil, in which case no comparison band is attached.
func Validate(c Cohort, queries []string, historical dataset.Dataset, tolerance float64) []Validation {
	out := make([]Validation, 0, len(queries))
	for _, q := range queries {
		player, ok := c.FindPlayer(q)
		v := Validation{Query: q, Found: ok, Player: player}
		if ok && historical != nil {
			v.Band = CompareToHistory(player, historical, tolerance)
		}
		out = append(out, v)
	}
	return out
}

// CompareToHistory filters historical rookies to those with salary within
// ±tolerance of the player's and ranks the player's production inside that
// band. Percentile uses strict inequality: a player tied with every band
// member sits at the 0th percentile.
func CompareToHistory(player ResidualRecord, historical dataset.Dataset, tolerance float64) *ComparisonBand {
	lo := player.Salary * (1 - tolerance)
	hi := player.Salary * (1 + tolerance)

	var records []dataset.RookieRecord
	for _, r := range historical {
		if r.Salary >= lo && r.Salary <= hi {
			records = append(records, r)
		}
	}
	if len(records) == 0 {
		return &ComparisonBand{Tolerance: tolerance}
	}

	sort.SliceStable(records, func(i, j int) bool { return records[i].Production > records[j].Production })

	band := &ComparisonBand{Tolerance: tolerance, Records: records}

	below := 0
	sum := 0.0
	band.Min = records[0].Production
	band.Max = records[0].Production
	for _, r := range records {
		sum += r.Production
		if r.Production < player.Production {
			below++
		}
		if r.Production < band.Min {
			band.Min = r.Production
		}
		if r.Production > band.Max {
			band.Max = r.Production
		}
	}
	band.Mean = sum / float64(len(records))
	band.Percentile = 100 * float64(below) / float64(len(records))

	// Records are sorted descending; take the middle.
	mid := len(records) / 2
	if len(records)%2 == 1 {
		band.Median = records[mid].Production
	} else {
		band.Median = (records[mid-1].Production + records[mid].Production) / 2
	}

	return band
}
