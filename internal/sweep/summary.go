package sweep

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Summary describes how the ranked pairs generalize to the held out half.
type Summary struct {
	Combinations        int
	MeanTrainReturnPct  float64
	MeanTestReturnPct   float64
	StdDevTestReturnPct float64
	// TrainTestCorrelation is the Pearson correlation of train and test returns.
	// It is 0 when either side has no variance.
	TrainTestCorrelation float64
}

func Summarize(rows []Row) Summary {
	train := make([]float64, len(rows))
	test := make([]float64, len(rows))

	for i, row := range rows {
		train[i] = row.Train.TotalReturnPct
		test[i] = row.Test.TotalReturnPct
	}

	summary := Summary{Combinations: len(rows)}
	if len(rows) == 0 {
		return summary
	}

	summary.MeanTrainReturnPct = stat.Mean(train, nil)
	summary.MeanTestReturnPct = stat.Mean(test, nil)

	if len(rows) < 2 {
		return summary
	}

	summary.StdDevTestReturnPct = stat.StdDev(test, nil)
	summary.TrainTestCorrelation = finiteOrZero(stat.Correlation(train, test, nil))

	return summary
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}

	return v
}
