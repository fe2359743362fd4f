package nbastats

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/evangorrell/NBA-Rookie-Value-Analysis/internal/provider"
)

const (
	endpointDraftHistory = "drafthistory"
	setDraftHistory      = "DraftHistory"
)

// DraftClass fetches every selection from one year's draft.
func (c *Client) DraftClass(ctx context.Context, year int) ([]provider.DraftPick, error) {
	c.logger.Info("Fetching draft class", "year", year)

	params := url.Values{
		"LeagueID": {"00"},
		"Season":   {strconv.Itoa(year)},
	}

	tbl, err := c.get(ctx, endpointDraftHistory, setDraftHistory, params)
	if err != nil {
		return nil, fmt.Errorf("fetch draft class %d: %w", year, err)
	}

	cols, err := tbl.columns("PERSON_ID", "PLAYER_NAME", "OVERALL_PICK", "TEAM_NAME", "TEAM_ABBREVIATION")
	if err != nil {
		return nil, fmt.Errorf("draft class %d: %w", year, err)
	}

	picks := make([]provider.DraftPick, 0, tbl.len())
	for i := 0; i < tbl.len(); i++ {
		id, ok := tbl.intAt(i, cols["PERSON_ID"])
		if !ok {
			continue
		}
		pick, ok := tbl.intAt(i, cols["OVERALL_PICK"])
		if !ok {
			continue
		}
		picks = append(picks, provider.DraftPick{
			PlayerID:   id,
			PlayerName: tbl.stringAt(i, cols["PLAYER_NAME"]),
			Pick:       pick,
			Team:       tbl.stringAt(i, cols["TEAM_NAME"]),
			TeamAbbrev: tbl.stringAt(i, cols["TEAM_ABBREVIATION"]),
			DraftYear:  year,
		})
	}

	c.logger.Info("Draft class fetched", "year", year, "picks", len(picks))
	return picks, nil
}
