// Package metrics provides the regression error measures reported by the
// evaluation commands.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// MAE returns the mean absolute error between paired prediction and truth
// slices. Inputs are assumed equal length and free of missing values.
func MAE(yTrue, yPred []float64) float64 {
	n := float64(len(yTrue))
	s := 0.0
	for i := range yTrue {
		s += math.Abs(yPred[i] - yTrue[i])
	}
	return s / n
}

// MSE returns the mean squared error.
func MSE(yTrue, yPred []float64) float64 {
	n := float64(len(yTrue))
	s := 0.0
	for i := range yTrue {
		d := yPred[i] - yTrue[i]
		s += d * d
	}
	return s / n
}

// RMSE returns the root mean squared error.
func RMSE(yTrue, yPred []float64) float64 { return math.Sqrt(MSE(yTrue, yPred)) }

// R2 returns the coefficient of determination. A constant truth slice has
// no variance to explain and reports 0.
func R2(yTrue, yPred []float64) float64 {
	mean := stat.Mean(yTrue, nil)
	ssTot, ssRes := 0.0, 0.0
	for i := range yTrue {
		d := yTrue[i] - mean
		ssTot += d * d
		r := yTrue[i] - yPred[i]
		ssRes += r * r
	}
	if ssTot == 0 {
		return 0
	}
	return 1 - ssRes/ssTot
}
