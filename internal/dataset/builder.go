package dataset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/evangorrell/NBA-Rookie-Value-Analysis/internal/config"
	"github.com/evangorrell/NBA-Rookie-Value-Analysis/internal/provider"
	"github.com/evangorrell/NBA-Rookie-Value-Analysis/internal/salary"
	"github.com/evangorrell/NBA-Rookie-Value-Analysis/internal/season"
)

// ErrEmptyDataset is returned when a build yields no rookie rows at all.
// Fatal for the current season, diagnostic for historical builds.
var ErrEmptyDataset = errors.New("no rookie rows collected")

// Builder runs the fetch → merge → filter → enrich flow per season.
type Builder struct {
	stats  provider.StatsSource
	draft  provider.DraftSource
	logger *slog.Logger

	// Join semantics. The draft join is strict (inner): undrafted players
	// never produce a record. The stats join is tolerant (left): a missing
	// advanced row yields a zero impact rate, not a dropped player.
	DraftJoin config.JoinPolicy
	StatsJoin config.JoinPolicy

	MinGames      int
	InflationRate float64
	DataDir       string

	cache *Snapshots
}

// NewBuilder wires a builder from configuration and data sources.
func NewBuilder(cfg *config.Config, stats provider.StatsSource, draft provider.DraftSource, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		stats:     stats,
		draft:     draft,
		logger:    logger,
		DraftJoin: config.DraftJoinStrict,
		StatsJoin: config.StatsJoinTolerant,

		MinGames:      cfg.MinGames,
		InflationRate: cfg.InflationRate,
		DataDir:       cfg.DataDir,

		cache: NewSnapshots(cfg.OutputDir, logger),
	}
}

// BuildHistorical assembles the multi-season training table with salaries
// inflation-adjusted to reference-season dollars. The result is cached on
// disk keyed by a hash of every parameter that affects the output; a cache
// hit performs zero fetches.
func (b *Builder) BuildHistorical(ctx context.Context, seasons []season.Season, reference season.Season) (Dataset, error) {
	key := SnapshotKey{
		Seasons:       seasons,
		Reference:     reference,
		MinGames:      b.MinGames,
		InflationRate: b.InflationRate,
		RateMetric:    RateMetric,
		VolumeMetric:  VolumeMetric,
	}

	if cached, ok := b.cache.Load(key); ok {
		b.logger.Info("Historical dataset loaded from cache", "rows", len(cached), "file", b.cache.Path(key))
		return cached, nil
	}

	// Missing scale file is fatal, there is no partial fallback.
	scale, err := salary.Load(reference, b.DataDir)
	if err != nil {
		return nil, err
	}

	var all Dataset
	for _, s := range seasons {
		rows, err := b.buildSeason(ctx, s, scale)
		if err != nil {
			b.logger.Warn("Season skipped", "season", s, "error", err)
			continue
		}
		if len(rows) == 0 {
			b.logger.Warn("Season yielded no rookies, skipping", "season", s)
			continue
		}
		for i := range rows {
			rows[i].Salary = salary.AdjustForInflation(rows[i].Salary, s, reference, b.InflationRate)
		}
		all = append(all, rows...)
		b.logger.Info("Season assembled", "season", s, "rookies", len(rows))
	}

	if len(all) == 0 {
		return nil, fmt.Errorf("historical build %s..%s: %w", seasons[0], seasons[len(seasons)-1], ErrEmptyDataset)
	}

	if err := b.cache.Save(key, all); err != nil {
		b.logger.Warn("Could not write historical snapshot", "error", err)
	}
	return all, nil
}

// BuildCurrent assembles the season under analysis. Salaries stay in
// current-season dollars and nothing is cached: this is the live cohort.
func (b *Builder) BuildCurrent(ctx context.Context, s season.Season) (Dataset, error) {
	scale, err := salary.Load(s, b.DataDir)
	if err != nil {
		return nil, err
	}

	rows, err := b.buildSeason(ctx, s, scale)
	if err != nil {
		return nil, fmt.Errorf("current season %s: %w", s, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("current season %s: %w", s, ErrEmptyDataset)
	}
	return rows, nil
}

// buildSeason runs one season's fetch → merge → filter → enrich pass.
func (b *Builder) buildSeason(ctx context.Context, s season.Season, scale salary.Scale) (Dataset, error) {
	base, err := b.stats.PlayerTotals(ctx, s.String())
	if err != nil {
		return nil, fmt.Errorf("player totals: %w", err)
	}
	if len(base) == 0 {
		return nil, nil
	}

	advanced, err := b.stats.AdvancedTotals(ctx, s.String())
	if err != nil {
		return nil, fmt.Errorf("advanced totals: %w", err)
	}
	if len(advanced) == 0 {
		return nil, nil
	}

	picks, err := b.draft.DraftClass(ctx, s.DraftYear())
	if err != nil {
		return nil, fmt.Errorf("draft class: %w", err)
	}
	if len(picks) == 0 {
		b.logger.Warn("No draft data found", "season", s)
		return nil, nil
	}

	impactByPlayer := make(map[int]float64, len(advanced))
	for _, a := range advanced {
		impactByPlayer[a.PlayerID] = a.ImpactRate
	}
	pickByPlayer := make(map[int]provider.DraftPick, len(picks))
	for _, p := range picks {
		pickByPlayer[p.PlayerID] = p
	}

	var rows Dataset
	for _, line := range base {
		pick, drafted := pickByPlayer[line.PlayerID]
		if !drafted {
			// DraftJoinStrict: stats without a draft row never survive.
			continue
		}
		if line.Games < b.MinGames {
			continue
		}

		sal, ok := scale.Lookup(pick.Pick)
		if !ok {
			b.logger.Warn("Pick missing from rookie scale, dropping",
				"player", line.PlayerName, "pick", pick.Pick)
			continue
		}

		// StatsJoinTolerant: a player absent from the advanced table keeps
		// a zero impact rate, which zeroes production.
		impact := impactByPlayer[line.PlayerID]

		rows = append(rows, RookieRecord{
			PlayerID:   line.PlayerID,
			PlayerName: line.PlayerName,
			Season:     s,
			Pick:       pick.Pick,
			Team:       pick.Team,
			TeamAbbrev: line.TeamAbbrev,
			Games:      line.Games,
			Minutes:    line.Minutes,
			ImpactRate: impact,
			Production: impact * line.Minutes,
			Salary:     sal,
		})
	}

	// Provider map iteration must not leak into row order.
	sort.Slice(rows, func(i, j int) bool { return rows[i].Pick < rows[j].Pick })

	b.logger.Info("Rookies matched", "season", s, "count", len(rows), "min_games", b.MinGames)
	return rows, nil
}
