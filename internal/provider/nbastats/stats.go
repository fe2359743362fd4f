package nbastats

import (
	"context"
	"fmt"
	"net/url"

	"github.com/evangorrell/NBA-Rookie-Value-Analysis/internal/provider"
)

const (
	endpointLeagueDash = "leaguedashplayerstats"
	setLeagueDash      = "LeagueDashPlayerStats"
)

// leagueDashParams builds the full required parameter set for the league dash
// endpoint. The endpoint 400s when any of these keys is absent, even blank
// ones. Only regular-season totals are requested: playoffs are excluded
// because not every rookie reaches them.
func leagueDashParams(seasonLabel, measureType string) url.Values {
	return url.Values{
		"College":          {""},
		"Conference":       {""},
		"Country":          {""},
		"DateFrom":         {""},
		"DateTo":           {""},
		"Division":         {""},
		"DraftPick":        {""},
		"DraftYear":        {""},
		"GameScope":        {""},
		"GameSegment":      {""},
		"Height":           {""},
		"LastNGames":       {"0"},
		"LeagueID":         {"00"},
		"Location":         {""},
		"MeasureType":      {measureType},
		"Month":            {"0"},
		"OpponentTeamID":   {"0"},
		"Outcome":          {""},
		"PORound":          {"0"},
		"PaceAdjust":       {"N"},
		"PerMode":          {"Totals"},
		"Period":           {"0"},
		"PlayerExperience": {""},
		"PlayerPosition":   {""},
		"PlusMinus":        {"N"},
		"Rank":             {"N"},
		"Season":           {seasonLabel},
		"SeasonSegment":    {""},
		"SeasonType":       {"Regular Season"},
		"ShotClockRange":   {""},
		"StarterBench":     {""},
		"TeamID":           {"0"},
		"TwoWay":           {"0"},
		"VsConference":     {""},
		"VsDivision":       {""},
		"Weight":           {""},
	}
}

// PlayerTotals fetches every player's base box-score totals for a season.
func (c *Client) PlayerTotals(ctx context.Context, seasonLabel string) ([]provider.BoxScoreLine, error) {
	c.logger.Info("Fetching player totals", "season", seasonLabel)

	tbl, err := c.get(ctx, endpointLeagueDash, setLeagueDash, leagueDashParams(seasonLabel, "Base"))
	if err != nil {
		return nil, fmt.Errorf("fetch player totals %s: %w", seasonLabel, err)
	}

	cols, err := tbl.columns("PLAYER_ID", "PLAYER_NAME", "TEAM_ABBREVIATION", "GP", "MIN")
	if err != nil {
		return nil, fmt.Errorf("player totals %s: %w", seasonLabel, err)
	}

	lines := make([]provider.BoxScoreLine, 0, tbl.len())
	for i := 0; i < tbl.len(); i++ {
		id, ok := tbl.intAt(i, cols["PLAYER_ID"])
		if !ok {
			continue
		}
		games, _ := tbl.intAt(i, cols["GP"])
		minutes, _ := tbl.floatAt(i, cols["MIN"])
		lines = append(lines, provider.BoxScoreLine{
			PlayerID:   id,
			PlayerName: tbl.stringAt(i, cols["PLAYER_NAME"]),
			TeamAbbrev: tbl.stringAt(i, cols["TEAM_ABBREVIATION"]),
			Games:      games,
			Minutes:    minutes,
		})
	}

	c.logger.Info("Player totals fetched", "season", seasonLabel, "players", len(lines))
	return lines, nil
}

// AdvancedTotals fetches every player's advanced totals, keeping only the
// impact rate (PIE) column the pipeline consumes.
func (c *Client) AdvancedTotals(ctx context.Context, seasonLabel string) ([]provider.AdvancedLine, error) {
	c.logger.Info("Fetching advanced totals", "season", seasonLabel)

	tbl, err := c.get(ctx, endpointLeagueDash, setLeagueDash, leagueDashParams(seasonLabel, "Advanced"))
	if err != nil {
		return nil, fmt.Errorf("fetch advanced totals %s: %w", seasonLabel, err)
	}

	cols, err := tbl.columns("PLAYER_ID", "PIE")
	if err != nil {
		return nil, fmt.Errorf("advanced totals %s: %w", seasonLabel, err)
	}

	lines := make([]provider.AdvancedLine, 0, tbl.len())
	for i := 0; i < tbl.len(); i++ {
		id, ok := tbl.intAt(i, cols["PLAYER_ID"])
		if !ok {
			continue
		}
		pie, _ := tbl.floatAt(i, cols["PIE"])
		lines = append(lines, provider.AdvancedLine{PlayerID: id, ImpactRate: pie})
	}

	c.logger.Info("Advanced totals fetched", "season", seasonLabel, "players", len(lines))
	return lines, nil
}
