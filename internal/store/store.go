// Package store persists scored runs to Postgres. Optional: the pipeline is
// fully functional without a database, this exists so runs can be queried and
// compared after the fact.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/evangorrell/NBA-Rookie-Value-Analysis/internal/score"
	"github.com/evangorrell/NBA-Rookie-Value-Analysis/internal/season"
)

const schema = `
CREATE TABLE IF NOT EXISTS residual_runs (
	run_id     UUID PRIMARY KEY,
	season     TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS residuals (
	run_id      UUID NOT NULL REFERENCES residual_runs(run_id) ON DELETE CASCADE,
	player_id   BIGINT NOT NULL,
	player_name TEXT NOT NULL,
	team        TEXT NOT NULL,
	pick        INT NOT NULL,
	salary      DOUBLE PRECISION NOT NULL,
	games       INT NOT NULL,
	minutes     DOUBLE PRECISION NOT NULL,
	impact_rate DOUBLE PRECISION NOT NULL,
	production  DOUBLE PRECISION NOT NULL,
	expected    DOUBLE PRECISION NOT NULL,
	residual    DOUBLE PRECISION NOT NULL,
	PRIMARY KEY (run_id, player_id)
);
`

// EnsureSchema creates the run tables if absent.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure residuals schema: %w", err)
	}
	return nil
}

// SaveRun writes one scored cohort under a fresh run id and returns it.
func SaveRun(ctx context.Context, pool *pgxpool.Pool, s season.Season, cohort score.Cohort, logger *slog.Logger) (uuid.UUID, error) {
	if logger == nil {
		logger = slog.Default()
	}
	runID := uuid.New()

	if _, err := pool.Exec(ctx,
		`INSERT INTO residual_runs (run_id, season, created_at) VALUES ($1, $2, $3)`,
		runID, s.String(), time.Now().UTC(),
	); err != nil {
		return uuid.Nil, fmt.Errorf("insert run: %w", err)
	}

	for _, r := range cohort {
		if _, err := pool.Exec(ctx, `
			INSERT INTO residuals (
				run_id, player_id, player_name, team, pick, salary,
				games, minutes, impact_rate, production, expected, residual
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
			ON CONFLICT (run_id, player_id) DO UPDATE SET
				production = EXCLUDED.production,
				expected = EXCLUDED.expected,
				residual = EXCLUDED.residual`,
			runID, r.PlayerID, r.PlayerName, r.TeamAbbrev, r.Pick, r.Salary,
			r.Games, r.Minutes, r.ImpactRate, r.Production, r.Expected, r.Residual,
		); err != nil {
			return uuid.Nil, fmt.Errorf("insert residual for %s: %w", r.PlayerName, err)
		}
	}

	logger.Info("Run persisted", "run_id", runID, "season", s, "rows", len(cohort))
	return runID, nil
}

// LatestRun loads the most recent stored cohort for a season, surplus-first.
func LatestRun(ctx context.Context, pool *pgxpool.Pool, s season.Season) (score.Cohort, error) {
	rows, err := pool.Query(ctx, `
		SELECT r.player_id, r.player_name, r.team, r.pick, r.salary,
		       r.games, r.minutes, r.impact_rate, r.production, r.expected, r.residual
		FROM residuals r
		JOIN residual_runs rr ON rr.run_id = r.run_id
		WHERE rr.season = $1
		  AND rr.created_at = (SELECT MAX(created_at) FROM residual_runs WHERE season = $1)
		ORDER BY r.residual DESC`,
		s.String())
	if err != nil {
		return nil, fmt.Errorf("query latest run: %w", err)
	}
	defer rows.Close()

	var cohort score.Cohort
	for rows.Next() {
		var r score.ResidualRecord
		r.Season = s
		if err := rows.Scan(
			&r.PlayerID, &r.PlayerName, &r.TeamAbbrev, &r.Pick, &r.Salary,
			&r.Games, &r.Minutes, &r.ImpactRate, &r.Production, &r.Expected, &r.Residual,
		); err != nil {
			return nil, fmt.Errorf("scan residual row: %w", err)
		}
		cohort = append(cohort, r)
	}
	return cohort, rows.Err()
}
