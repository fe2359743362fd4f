// Command rookievalue analyzes which NBA rookies are providing the most (or
// least) value relative to their rookie-scale contracts.
//
// Usage:
//
//	rookievalue analyze
//	rookievalue analyze --season 2025-26 --min-games 10 --store
//	rookievalue validate "wembanyama, miller"
//	rookievalue serve
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/evangorrell/NBA-Rookie-Value-Analysis/internal/api"
	"github.com/evangorrell/NBA-Rookie-Value-Analysis/internal/chart"
	"github.com/evangorrell/NBA-Rookie-Value-Analysis/internal/config"
	"github.com/evangorrell/NBA-Rookie-Value-Analysis/internal/dataset"
	"github.com/evangorrell/NBA-Rookie-Value-Analysis/internal/db"
	"github.com/evangorrell/NBA-Rookie-Value-Analysis/internal/model"
	"github.com/evangorrell/NBA-Rookie-Value-Analysis/internal/provider/nbastats"
	"github.com/evangorrell/NBA-Rookie-Value-Analysis/internal/report"
	"github.com/evangorrell/NBA-Rookie-Value-Analysis/internal/score"
	"github.com/evangorrell/NBA-Rookie-Value-Analysis/internal/store"
)

var logLevel = new(slog.LevelVar)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "rookievalue",
		Short: "NBA rookie contract value analysis",
	}

	root.AddCommand(analyzeCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(serveCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\nERROR: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig applies CLI overrides on top of the environment.
func loadConfig(seasonFlag string, minGames int) (*config.Config, error) {
	if seasonFlag != "" {
		os.Setenv("ROOKIE_SEASON", seasonFlag)
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if minGames > 0 {
		cfg.MinGames = minGames
	}
	if cfg.Debug {
		logLevel.Set(slog.LevelDebug)
	}
	return cfg, nil
}

func newBuilder(cfg *config.Config) *dataset.Builder {
	client := nbastats.NewClient(logger,
		nbastats.WithTimeout(cfg.FetchTimeout),
		nbastats.WithSpacing(cfg.FetchSpacing))
	return dataset.NewBuilder(cfg, client, client, logger)
}

// --------------------------------------------------------------------------
// analyze command
// --------------------------------------------------------------------------

func analyzeCmd() *cobra.Command {
	var seasonFlag string
	var minGames int
	var storeRun bool
	var noPrompt bool

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the complete analysis pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(seasonFlag, minGames)
			if err != nil {
				return err
			}
			return runAnalyze(cmd.Context(), cfg, storeRun, noPrompt)
		},
	}
	cmd.Flags().StringVar(&seasonFlag, "season", "", "Season to analyze (default: auto-detected)")
	cmd.Flags().IntVar(&minGames, "min-games", 0, "Minimum games played (default: 10)")
	cmd.Flags().BoolVar(&storeRun, "store", false, "Persist the scored run to Postgres (DATABASE_URL)")
	cmd.Flags().BoolVar(&noPrompt, "no-prompt", false, "Skip the interactive player breakdown prompt")
	return cmd
}

func runAnalyze(ctx context.Context, cfg *config.Config, storeRun, noPrompt bool) error {
	r := report.New(os.Stdout)
	r.Banner("NBA ROOKIE CONTRACT VALUE ANALYSIS")

	builder := newBuilder(cfg)

	// Step 1: historical training dataset
	logger.Info("Building historical training dataset...",
		"seasons", fmt.Sprintf("%s..%s", cfg.HistoricalSeasons[0], cfg.HistoricalSeasons[len(cfg.HistoricalSeasons)-1]))
	historical, err := builder.BuildHistorical(ctx, cfg.HistoricalSeasons, cfg.CurrentSeason)
	if err != nil {
		return fmt.Errorf("no historical data collected (check API access and season values): %w", err)
	}
	logger.Info("Historical dataset ready", "rookies", len(historical))

	// Step 2: train and persist the model
	pipeline, cvReport, err := model.Train(historical, model.DefaultOptions(cfg.CVFolds), logger)
	if err != nil {
		return err
	}
	r.TrainingSummary(len(historical), cvReport)

	if path, err := model.Save(pipeline, cfg.OutputDir); err != nil {
		logger.Warn("Could not persist model artifact", "error", err)
	} else {
		logger.Info("Model saved", "path", path)
	}

	// Step 3: current season cohort
	current, err := builder.BuildCurrent(ctx, cfg.CurrentSeason)
	if err != nil {
		return fmt.Errorf("no current season data collected: %w", err)
	}

	// Step 4: residuals and export
	cohort := score.Score(current, pipeline, logger)
	exportPath, err := score.Export(cohort, cfg.OutputDir, cfg.CurrentSeason)
	if err != nil {
		return err
	}
	logger.Info("Residuals exported", "path", exportPath)

	// Step 5: charts
	if path, err := chart.RenderResidualBar(cohort, cfg.OutputDir, cfg.CurrentSeason); err != nil {
		logger.Warn("Residual chart failed", "error", err)
	} else {
		logger.Info("Residual chart written", "path", path)
	}

	metrics := model.Evaluate(cohort.Actuals(), cohort.Expecteds())
	if path, err := chart.RenderAccuracy(cohort, metrics, cfg.OutputDir, cfg.CurrentSeason); err != nil {
		logger.Warn("Accuracy chart failed", "error", err)
	} else {
		logger.Info("Accuracy chart written", "path", path)
	}

	// Step 6: console report
	avg := 0.0
	for _, v := range cohort.Actuals() {
		avg += v
	}
	avg /= float64(len(cohort))
	r.Accuracy(metrics, avg)
	r.CohortSummary(cohort.Summarize())
	r.TopAndBottom(cohort, 5)

	// Optional persistence
	if storeRun {
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("--store requires DATABASE_URL")
		}
		pool, err := db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()
		if err := store.EnsureSchema(ctx, pool.Pool); err != nil {
			return err
		}
		if _, err := store.SaveRun(ctx, pool.Pool, cfg.CurrentSeason, cohort, logger); err != nil {
			return err
		}
	}

	// Step 7: interactive player breakdowns
	if !noPrompt {
		promptForBreakdowns(r, cohort, historical, cfg)
	}

	fmt.Println("\nANALYSIS COMPLETE")
	fmt.Println("\nOutputs:")
	fmt.Printf("  - %s\n", exportPath)
	fmt.Printf("  - %s\n", chart.ResidualBarPath(cfg.OutputDir, cfg.CurrentSeason))
	fmt.Printf("  - %s\n", chart.AccuracyPath(cfg.OutputDir, cfg.CurrentSeason))
	return nil
}

// promptForBreakdowns asks for comma-separated player names and prints their
// detailed validations. Empty input skips; unmatched input re-prompts.
func promptForBreakdowns(r *report.Reporter, cohort score.Cohort, historical dataset.Dataset, cfg *config.Config) {
	fmt.Println("\n=== Player Breakdown ===")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("\nEnter player name(s) separated by commas, or press Enter to skip: ")
		if !scanner.Scan() {
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			return
		}
		names := parseNames(line)
		if len(names) == 0 {
			fmt.Println("\n  No valid player names provided. Try again or press Enter to skip.")
			continue
		}

		anyFound := false
		for _, name := range names {
			if _, ok := cohort.FindPlayer(name); ok {
				anyFound = true
				break
			}
		}
		if !anyFound {
			fmt.Printf("\n  No players found matching: %s. Try different name(s) or press Enter to skip.\n", strings.Join(names, ", "))
			continue
		}

		results := score.Validate(cohort, names, historical, cfg.SalaryTolerance)
		r.Validations(results, cfg.HistoricalSeasons[0].StartYear())
		return
	}
}

func parseNames(input string) []string {
	var names []string
	for _, part := range strings.Split(input, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// --------------------------------------------------------------------------
// validate command
// --------------------------------------------------------------------------

func validateCmd() *cobra.Command {
	var seasonFlag string

	cmd := &cobra.Command{
		Use:   "validate <names>",
		Short: "Detailed breakdowns for players from the last analyze run",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(seasonFlag, 0)
			if err != nil {
				return err
			}

			names := parseNames(strings.Join(args, ","))
			if len(names) == 0 {
				return fmt.Errorf("no valid player names provided")
			}

			cohort, err := score.ReadExport(score.ExportPath(cfg.OutputDir, cfg.CurrentSeason), cfg.CurrentSeason)
			if err != nil {
				return fmt.Errorf("no residuals export for %s, run analyze first: %w", cfg.CurrentSeason, err)
			}

			// The historical cohort comes from the snapshot cache when
			// available; otherwise it is fetched fresh.
			builder := newBuilder(cfg)
			historical, err := builder.BuildHistorical(cmd.Context(), cfg.HistoricalSeasons, cfg.CurrentSeason)
			if err != nil {
				logger.Warn("Historical comparison unavailable", "error", err)
				historical = nil
			}

			results := score.Validate(cohort, names, historical, cfg.SalaryTolerance)
			report.New(os.Stdout).Validations(results, cfg.HistoricalSeasons[0].StartYear())
			return nil
		},
	}
	cmd.Flags().StringVar(&seasonFlag, "season", "", "Season to inspect (default: auto-detected)")
	return cmd
}

// --------------------------------------------------------------------------
// serve command
// --------------------------------------------------------------------------

func serveCmd() *cobra.Command {
	var seasonFlag string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the latest scored run over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(seasonFlag, 0)
			if err != nil {
				return err
			}

			var pool *db.Pool
			if cfg.DatabaseURL != "" {
				pool, err = db.New(cmd.Context(), cfg.DatabaseURL)
				if err != nil {
					return err
				}
				defer pool.Close()
			}

			router := api.NewRouter(cfg, pool, logger)
			addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)

			srv := &http.Server{
				Addr:              addr,
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}
			logger.Info("Serving residuals API", "addr", addr, "season", cfg.CurrentSeason)
			return srv.ListenAndServe()
		},
	}
	cmd.Flags().StringVar(&seasonFlag, "season", "", "Season to serve (default: auto-detected)")
	return cmd
}
