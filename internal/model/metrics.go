package model

import "math"

// Metrics are the accuracy numbers reported for a scored cohort.
type Metrics struct {
	MAE  float64
	RMSE float64
	R2   float64
}

// Evaluate computes MAE, RMSE and R² for predictions against actuals.
func Evaluate(actual, predicted []float64) Metrics {
	n := len(actual)
	if n == 0 {
		return Metrics{}
	}

	var absSum, sqSum float64
	for i := range actual {
		d := actual[i] - predicted[i]
		absSum += math.Abs(d)
		sqSum += d * d
	}

	return Metrics{
		MAE:  absSum / float64(n),
		RMSE: math.Sqrt(sqSum / float64(n)),
		R2:   rSquared(actual, predicted),
	}
}
