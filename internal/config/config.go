// Package config provides centralized configuration loaded from environment
// variables. Shared by every rookievalue subcommand.
package config

import (
	"fmt"
	"time"

	"github.com/evangorrell/NBA-Rookie-Value-Analysis/internal/season"
)

// --------------------------------------------------------------------------
// Join policies name the merge semantics of the dataset builder so the
// contract is visible instead of implied by a join call.
// --------------------------------------------------------------------------

type JoinPolicy string

const (
	// DraftJoinStrict keeps only players present in the season's draft
	// class. Undrafted and two-way players are structurally excluded.
	DraftJoinStrict JoinPolicy = "strict"

	// StatsJoinTolerant keeps players missing an advanced stats row and
	// records their impact rate as absent instead of dropping them.
	StatsJoinTolerant JoinPolicy = "tolerant"
)

// --------------------------------------------------------------------------
// Defaults
// --------------------------------------------------------------------------

const (
	DefaultMinGames        = 10
	DefaultStartYear       = 2019
	DefaultInflationRate   = 0.02
	DefaultSalaryTolerance = 0.05 // ±5% comparison band
	DefaultCVFolds         = 5
)

// Config is populated from environment variables.
type Config struct {
	// Seasons
	CurrentSeason     season.Season
	HistoricalSeasons []season.Season

	// Dataset
	MinGames        int
	InflationRate   float64
	SalaryTolerance float64
	DataDir         string
	OutputDir       string

	// Model
	CVFolds int

	// Provider
	FetchTimeout time.Duration
	FetchSpacing time.Duration

	// Optional run store
	DatabaseURL string

	// serve command
	APIHost          string
	APIPort          int
	CORSAllowOrigins []string

	Debug bool
}

// Load reads configuration from environment variables with sensible defaults.
// The current season is auto-detected from the clock unless ROOKIE_SEASON is
// set; historical seasons run from ROOKIE_START_YEAR up to the current one.
func Load() (*Config, error) {
	current := season.Detect(time.Now())
	if v := envOr("ROOKIE_SEASON", ""); v != "" {
		parsed, err := season.Parse(v)
		if err != nil {
			return nil, fmt.Errorf("ROOKIE_SEASON: %w", err)
		}
		current = parsed
	}

	startYear := envInt("ROOKIE_START_YEAR", DefaultStartYear)
	if startYear >= current.StartYear() {
		return nil, fmt.Errorf("ROOKIE_START_YEAR %d must precede current season %s", startYear, current)
	}

	tolerance := envFloat("ROOKIE_SALARY_TOLERANCE", DefaultSalaryTolerance)
	if tolerance <= 0 || tolerance >= 1 {
		return nil, fmt.Errorf("ROOKIE_SALARY_TOLERANCE %v must be in (0, 1)", tolerance)
	}

	return &Config{
		CurrentSeason:     current,
		HistoricalSeasons: season.Range(startYear, current),

		MinGames:        envInt("ROOKIE_MIN_GAMES", DefaultMinGames),
		InflationRate:   envFloat("ROOKIE_INFLATION_RATE", DefaultInflationRate),
		SalaryTolerance: tolerance,
		DataDir:         envOr("ROOKIE_DATA_DIR", "data"),
		OutputDir:       envOr("ROOKIE_OUTPUT_DIR", "outputs"),

		CVFolds: envInt("ROOKIE_CV_FOLDS", DefaultCVFolds),

		FetchTimeout: time.Duration(envInt("ROOKIE_FETCH_TIMEOUT_SECONDS", 60)) * time.Second,
		FetchSpacing: time.Duration(envInt("ROOKIE_FETCH_SPACING_MS", 600)) * time.Millisecond,

		DatabaseURL: envOr("DATABASE_URL", ""),

		APIHost: envOr("API_HOST", "0.0.0.0"),
		APIPort: envInt("API_PORT", envInt("PORT", 8000)),
		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}),

		Debug: envBool("DEBUG", false),
	}, nil
}
