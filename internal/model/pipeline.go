// Package model fits and applies the salary → production regression: a
// standardizer in front of a gradient-boosted ensemble of shallow trees.
// The fitted pipeline owns its scaling parameters, so prediction always takes
// raw salaries.
package model

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/evangorrell/NBA-Rookie-Value-Analysis/internal/dataset"
)

// Hyperparameters for the boosted ensemble.
const (
	DefaultEstimators   = 100
	DefaultMaxDepth     = 4
	DefaultLearningRate = 0.1
)

// ErrNotEnoughData is returned when the historical table is empty or smaller
// than the number of cross-validation folds.
var ErrNotEnoughData = errors.New("not enough training rows")

// Pipeline is the persisted scaler + regressor pair. Immutable once fitted.
type Pipeline struct {
	Mean         float64
	Std          float64
	Base         float64
	LearningRate float64
	Trees        []regressionTree
}

// Predict maps raw salaries to expected production, applying the stored
// standardization before the ensemble.
func (p *Pipeline) Predict(salaries []float64) []float64 {
	out := make([]float64, len(salaries))
	for i, s := range salaries {
		out[i] = p.predictOne((s - p.Mean) / p.Std)
	}
	return out
}

func (p *Pipeline) predictOne(z float64) float64 {
	pred := p.Base
	for _, t := range p.Trees {
		pred += p.LearningRate * t.predict(z)
	}
	return pred
}

// TrainerOptions configures Train.
type TrainerOptions struct {
	Estimators   int
	MaxDepth     int
	LearningRate float64
	CVFolds      int
}

// DefaultOptions returns the stock hyperparameters with k-fold CV.
func DefaultOptions(folds int) TrainerOptions {
	return TrainerOptions{
		Estimators:   DefaultEstimators,
		MaxDepth:     DefaultMaxDepth,
		LearningRate: DefaultLearningRate,
		CVFolds:      folds,
	}
}

// Train cross-validates and then fits the final pipeline on the full
// historical table. CV scores are diagnostic only: training always proceeds
// to the final fit.
func Train(ds dataset.Dataset, opts TrainerOptions, logger *slog.Logger) (*Pipeline, *CVReport, error) {
	if logger == nil {
		logger = slog.Default()
	}
	n := len(ds)
	if n == 0 || n < opts.CVFolds {
		return nil, nil, fmt.Errorf("%w: have %d rows, need at least %d", ErrNotEnoughData, n, opts.CVFolds)
	}

	salaries := ds.Salaries()
	productions := ds.Productions()

	logger.Info("Training model",
		"rows", n,
		"estimators", opts.Estimators,
		"max_depth", opts.MaxDepth,
		"learning_rate", opts.LearningRate,
		"cv_folds", opts.CVFolds)

	report := crossValidate(salaries, productions, opts)
	logger.Info("Cross-validation complete",
		"mean_r2", fmt.Sprintf("%.3f", report.MeanR2),
		"std_r2", fmt.Sprintf("%.3f", report.StdR2))

	if baseline, err := linearBaselineR2(salaries, productions); err == nil {
		report.LinearBaselineR2 = baseline
		logger.Info("Linear baseline", "r2", fmt.Sprintf("%.3f", baseline))
	} else {
		logger.Warn("Linear baseline unavailable", "error", err)
	}

	p := fit(salaries, productions, opts)
	logger.Info("Final model fitted on full historical table")
	return p, report, nil
}

// fit trains the pipeline on one (salary, production) table.
func fit(salaries, productions []float64, opts TrainerOptions) *Pipeline {
	mean := stat.Mean(salaries, nil)
	std := math.Sqrt(stat.PopVariance(salaries, nil))
	if std == 0 {
		std = 1
	}

	z := make([]float64, len(salaries))
	for i, s := range salaries {
		z[i] = (s - mean) / std
	}

	p := &Pipeline{
		Mean:         mean,
		Std:          std,
		Base:         stat.Mean(productions, nil),
		LearningRate: opts.LearningRate,
		Trees:        make([]regressionTree, 0, opts.Estimators),
	}

	// Gradient boosting on squared loss: each tree fits the running
	// residuals of the ensemble so far.
	current := make([]float64, len(productions))
	for i := range current {
		current[i] = p.Base
	}
	residuals := make([]float64, len(productions))

	for m := 0; m < opts.Estimators; m++ {
		for i := range residuals {
			residuals[i] = productions[i] - current[i]
		}
		t := fitTree(z, residuals, opts.MaxDepth)
		p.Trees = append(p.Trees, t)
		for i := range current {
			current[i] += opts.LearningRate * t.predict(z[i])
		}
	}

	return p
}
