package model

import (
	"fmt"

	"github.com/ezoic/scigo/linear"
	"github.com/ezoic/scigo/preprocessing"
	"gonum.org/v1/gonum/mat"
)

// linearBaselineR2 fits a plain linear regression on standardized salary and
// scores it in-sample. Reported alongside the boosted model's CV scores so a
// weak nonlinear lift is visible at a glance.
func linearBaselineR2(salaries, productions []float64) (float64, error) {
	n := len(salaries)
	X := mat.NewDense(n, 1, append([]float64{}, salaries...))
	y := mat.NewDense(n, 1, append([]float64{}, productions...))

	scaler := preprocessing.NewStandardScaler(true, true)
	if err := scaler.Fit(X); err != nil {
		return 0, fmt.Errorf("fit scaler: %w", err)
	}
	XScaled, err := scaler.Transform(X)
	if err != nil {
		return 0, fmt.Errorf("transform: %w", err)
	}

	lr := linear.NewLinearRegression()
	if err := lr.Fit(XScaled, y); err != nil {
		return 0, fmt.Errorf("fit baseline: %w", err)
	}

	score, err := lr.Score(XScaled, y)
	if err != nil {
		return 0, fmt.Errorf("score baseline: %w", err)
	}
	return score, nil
}
