package report

import (
	"fmt"
	"strings"

	"github.com/evangorrell/NBA-Rookie-Value-Analysis/internal/score"
)

// dollars formats a salary with thousands separators.
func dollars(v float64) string {
	s := fmt.Sprintf("%.0f", v)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	out := "$" + b.String()
	if neg {
		out = "-" + out
	}
	return out
}

// Validations prints the detailed per-player breakdowns produced by
// score.Validate.
func (r *Reporter) Validations(results []score.Validation, startYear int) {
	for _, v := range results {
		r.printf("\n============================================================\n")
		if !v.Found {
			r.printf("  Player not found: %s\n", v.Query)
			continue
		}

		p := v.Player
		r.printf("%s\n", p.PlayerName)
		r.printf("Team: %s\n", p.TeamAbbrev)
		r.printf("Draft Pick: #%d\n", p.Pick)

		r.printf("\n  Stats:\n")
		r.printf("  Games Played: %d\n", p.Games)
		r.printf("  Total Minutes: %.0f\n", p.Minutes)
		r.printf("  Player Impact Estimate (PIE): %.3f\n", p.ImpactRate)

		r.printf("\n  Contract:\n")
		r.printf("  4-Year Avg. Salary: %s\n", dollars(p.Salary))

		r.printf("\n  Production Analysis:\n")
		r.printf("  Actual Production: %.1f (PIE %.3f x Minutes %.0f)\n", p.Production, p.ImpactRate, p.Minutes)
		r.printf("  Expected Production: %.1f (historical rookies at this salary)\n", p.Expected)

		if p.Residual > 0 {
			r.printf("\n  Residual Value: %+.1f\n", p.Residual)
			r.printf("  SURPLUS: producing %.1f units more than expected for the contract\n", p.Residual)
		} else {
			r.printf("\n  Residual Value: %.1f\n", p.Residual)
			r.printf("  DEFICIT: producing %.1f units less than expected for the contract\n", -p.Residual)
		}

		r.pickContext(p.Pick)

		if v.Band != nil {
			r.band(v, startYear)
		}

		r.printf("\n  Interpreting Residuals\n")
		r.printf("    The residual reflects contract value, not absolute skill:\n")
		r.printf("    negative means the contract is expensive relative to production,\n")
		r.printf("    positive means production exceeds the contract's expectation.\n")
	}
}

func (r *Reporter) pickContext(pick int) {
	switch {
	case pick <= 3:
		r.printf("\n  Top-3 picks face extremely high expectations; even strong rookie seasons can show deficits.\n")
	case pick <= 10:
		r.printf("\n  Lottery picks are expected to be immediate contributors.\n")
	case pick <= 30:
		r.printf("\n  First-round pick expectations are moderate.\n")
	default:
		r.printf("\n  Second-round picks have low expectations; surplus value comes easy at this price point.\n")
	}
}

func (r *Reporter) band(v score.Validation, startYear int) {
	b := v.Band
	p := v.Player

	r.printf("\n  Historical Rookies at Similar Salary (+/-%.0f%%):\n", b.Tolerance*100)
	if len(b.Records) == 0 {
		r.printf("    No historical rookies found in this salary band.\n")
		return
	}

	r.printf("    Found %d historical rookies around %s\n", len(b.Records), dollars(p.Salary))
	r.printf("    Their production, average: %.1f, median: %.1f, range: %.1f - %.1f\n",
		b.Mean, b.Median, b.Min, b.Max)

	top := b.Records
	if len(top) > 5 {
		top = top[:5]
	}
	r.printf("\n    Top performers at this salary:\n")
	for _, h := range top {
		r.printf("      %-20s (%s) - %.1f\n", h.PlayerName, h.Season, h.Production)
	}

	r.printf("\n    %s's production (%.1f) ranks in the %.0fth percentile of historical rookies at this salary since %d\n",
		p.PlayerName, p.Production, b.Percentile, startYear)
}
