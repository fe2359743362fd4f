package model

import "math"

// CVReport carries the k-fold cross-validation diagnostics plus the linear
// baseline comparison. None of it gates training.
type CVReport struct {
	FoldR2           []float64
	MeanR2           float64
	StdR2            float64
	LinearBaselineR2 float64
}

// crossValidate scores the pipeline with contiguous k folds (no shuffling,
// matching deterministic fold assignment) and R² per held-out fold.
func crossValidate(salaries, productions []float64, opts TrainerOptions) *CVReport {
	n := len(salaries)
	k := opts.CVFolds

	report := &CVReport{FoldR2: make([]float64, 0, k)}

	// First n%k folds get one extra row.
	foldSize := n / k
	extra := n % k

	start := 0
	for f := 0; f < k; f++ {
		size := foldSize
		if f < extra {
			size++
		}
		end := start + size

		trainSal := append(append([]float64{}, salaries[:start]...), salaries[end:]...)
		trainProd := append(append([]float64{}, productions[:start]...), productions[end:]...)

		p := fit(trainSal, trainProd, opts)
		predicted := p.Predict(salaries[start:end])
		report.FoldR2 = append(report.FoldR2, rSquared(productions[start:end], predicted))

		start = end
	}

	report.MeanR2 = meanOf(report.FoldR2)
	var sq float64
	for _, r := range report.FoldR2 {
		d := r - report.MeanR2
		sq += d * d
	}
	report.StdR2 = math.Sqrt(sq / float64(len(report.FoldR2)))

	return report
}

// rSquared is the coefficient of determination. Degenerate targets (zero
// variance) score 0 when predictions miss and 1 when they are exact.
func rSquared(actual, predicted []float64) float64 {
	mean := meanOf(actual)
	var ssRes, ssTot float64
	for i := range actual {
		ssRes += (actual[i] - predicted[i]) * (actual[i] - predicted[i])
		ssTot += (actual[i] - mean) * (actual[i] - mean)
	}
	if ssTot == 0 {
		if ssRes == 0 {
			return 1
		}
		return 0
	}
	return 1 - ssRes/ssTot
}
