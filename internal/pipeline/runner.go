package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"housecli/internal/dataset"
	"housecli/internal/split"
)

// RunRequest describes one complete evaluation from a dataset file to a
// scored result.
type RunRequest struct {
	DatasetPath    string
	Approach       Approach
	TargetColumn   string
	TrainFraction  float64
	MaxCardinality int
	SplitSeed      int64
	Trees          int
	ForestSeed     int64
	FillValue      float64
}

// Run loads the dataset, selects predictors, splits, and scores the
// requested approach. The impute approaches run on the numeric predictor
// columns; the composite approach also takes the low-cardinality
// categorical columns.
func Run(ctx context.Context, req RunRequest, logger *slog.Logger) (*Evaluation, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if !req.Approach.Valid() {
		return nil, fmt.Errorf("pipeline: unknown approach %q", req.Approach)
	}

	tbl, err := dataset.Load(req.DatasetPath)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}

	X, y, err := tbl.SplitTarget(req.TargetColumn)
	if err != nil {
		return nil, fmt.Errorf("separate target: %w", err)
	}

	var features []string
	if req.Approach == ApproachComposite {
		features = dataset.SelectFeatures(X, req.MaxCardinality)
	} else {
		features = dataset.NumericColumns(X)
	}
	if len(features) == 0 {
		return nil, fmt.Errorf("pipeline: no usable predictor columns in %s", req.DatasetPath)
	}
	X, err = X.Select(features)
	if err != nil {
		return nil, fmt.Errorf("select predictors: %w", err)
	}

	sp, err := split.TrainValid(X, y, req.TrainFraction, req.SplitSeed)
	if err != nil {
		return nil, fmt.Errorf("split dataset: %w", err)
	}

	ev := NewEvaluator(Options{Trees: req.Trees, Seed: req.ForestSeed, FillValue: req.FillValue}, logger)
	return ev.Evaluate(ctx, req.Approach, sp)
}
