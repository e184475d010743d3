// Package split partitions a predictor table and its paired target into
// training and validation subsets.
package split

import (
	"fmt"
	"math/rand"
	"time"

	"housecli/internal/dataset"
)

// Result holds the four paired partitions produced by a split. Row i of
// XTrain pairs with YTrain[i], and likewise for the validation side.
type Result struct {
	XTrain *dataset.Table
	XValid *dataset.Table
	YTrain []float64
	YValid []float64
}

// TrainValid shuffles the rows and assigns the first trainFraction of them
// to the training partition and the remainder to validation. A negative
// seed draws one from the clock, matching an unseeded run; any other seed
// makes the split reproducible.
func TrainValid(X *dataset.Table, y []float64, trainFraction float64, seed int64) (*Result, error) {
	n := X.NumRows()
	if n != len(y) {
		return nil, fmt.Errorf("split: predictors have %d rows, target has %d", n, len(y))
	}
	if n < 2 {
		return nil, fmt.Errorf("split: need at least 2 rows, got %d", n)
	}
	if trainFraction <= 0 || trainFraction >= 1 {
		return nil, fmt.Errorf("split: train fraction %v outside (0, 1)", trainFraction)
	}

	if seed < 0 {
		seed = time.Now().UnixNano()
	}
	rnd := rand.New(rand.NewSource(seed))

	perm := rnd.Perm(n)
	nTrain := int(float64(n) * trainFraction)
	if nTrain == 0 {
		nTrain = 1
	}
	if nTrain == n {
		nTrain = n - 1
	}

	trainIdx := perm[:nTrain]
	validIdx := perm[nTrain:]

	xTrain, err := X.TakeRows(trainIdx)
	if err != nil {
		return nil, fmt.Errorf("split: take training rows: %w", err)
	}
	xValid, err := X.TakeRows(validIdx)
	if err != nil {
		return nil, fmt.Errorf("split: take validation rows: %w", err)
	}

	yTrain := make([]float64, len(trainIdx))
	for i, idx := range trainIdx {
		yTrain[i] = y[idx]
	}
	yValid := make([]float64, len(validIdx))
	for i, idx := range validIdx {
		yValid[i] = y[idx]
	}

	return &Result{XTrain: xTrain, XValid: xValid, YTrain: yTrain, YValid: yValid}, nil
}
