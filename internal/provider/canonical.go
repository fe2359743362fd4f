// Package provider defines the canonical record shapes returned by external
// stat sources, plus the source interfaces the dataset builder consumes.
// Concrete implementations live in subpackages (nbastats).
package provider

import "context"

// BoxScoreLine is one player's regular-season box score totals.
type BoxScoreLine struct {
	PlayerID   int
	PlayerName string
	TeamAbbrev string
	Games      int
	Minutes    float64
}

// AdvancedLine carries a player's advanced impact totals. ImpactRate is the
// Player Impact Estimate, a bounded fraction of game events credited to the
// player.
type AdvancedLine struct {
	PlayerID   int
	ImpactRate float64
}

// DraftPick is one selection from a draft class.
type DraftPick struct {
	PlayerID   int
	PlayerName string
	Pick       int
	Team       string
	TeamAbbrev string
	DraftYear  int
}

// StatsSource fetches league-wide per-player totals for one season. An empty
// slice with a nil error means the season genuinely has no data; errors are
// transport or schema failures the caller may degrade to a skipped season.
type StatsSource interface {
	PlayerTotals(ctx context.Context, seasonLabel string) ([]BoxScoreLine, error)
	AdvancedTotals(ctx context.Context, seasonLabel string) ([]AdvancedLine, error)
}

// DraftSource fetches the draft class for a draft year.
type DraftSource interface {
	DraftClass(ctx context.Context, year int) ([]DraftPick, error)
}
