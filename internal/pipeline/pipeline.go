// Package pipeline wires the preprocessing strategies, the forest model and
// the error metrics into complete evaluation runs.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"housecli/internal/dataset"
	"housecli/internal/forest"
	"housecli/internal/impute"
	"housecli/internal/metrics"
	"housecli/internal/split"
)

// Approach names one of the preprocessing variants an evaluation can run.
type Approach string

const (
	// ApproachDrop removes predictor columns with training missing values.
	ApproachDrop Approach = "drop"
	// ApproachMean fills missing numeric cells with training column means.
	ApproachMean Approach = "mean"
	// ApproachMeanIndicator is ApproachMean plus missingness flag columns.
	ApproachMeanIndicator Approach = "mean_indicator"
	// ApproachComposite is the per-column-type composite preprocessor.
	ApproachComposite Approach = "composite"
)

// Label returns the console label printed next to the approach's MAE.
func (a Approach) Label() string {
	switch a {
	case ApproachDrop:
		return "Drop Columns with Missing Values"
	case ApproachMean:
		return "Mean Imputation"
	case ApproachMeanIndicator:
		return "Mean Imputation with Missingness Indicators"
	case ApproachComposite:
		return "Composite Preprocessing"
	}
	return string(a)
}

// Valid reports whether a is a known approach.
func (a Approach) Valid() bool {
	switch a {
	case ApproachDrop, ApproachMean, ApproachMeanIndicator, ApproachComposite:
		return true
	}
	return false
}

// ImputeApproaches lists the three mutually exclusive missing-value
// strategies compared by the evaluate command, in report order.
var ImputeApproaches = []Approach{ApproachDrop, ApproachMean, ApproachMeanIndicator}

// Options configures one evaluation run.
type Options struct {
	Trees     int
	Seed      int64
	FillValue float64 // numeric fill for the composite preprocessor
}

// Evaluation is the result of scoring one approach on one split.
type Evaluation struct {
	RunID    string        `json:"run_id"`
	Approach Approach      `json:"approach"`
	Label    string        `json:"label"`
	MAE      float64       `json:"mae"`
	RMSE     float64       `json:"rmse"`
	R2       float64       `json:"r2"`
	Rows     int           `json:"rows"`
	Columns  int           `json:"columns"`
	Duration time.Duration `json:"duration"`
}

// Evaluator scores preprocessing approaches against a fixed train/valid
// split. It holds no per-run state; every call builds a fresh strategy and
// model.
type Evaluator struct {
	opts   Options
	logger *slog.Logger
}

// NewEvaluator returns an evaluator for the given options.
func NewEvaluator(opts Options, logger *slog.Logger) *Evaluator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Evaluator{opts: opts, logger: logger}
}

// strategyFor maps an impute approach to a fresh strategy instance.
func strategyFor(a Approach) (impute.Strategy, error) {
	switch a {
	case ApproachDrop:
		return impute.NewDrop(), nil
	case ApproachMean:
		return impute.NewMean(), nil
	case ApproachMeanIndicator:
		return impute.NewMeanWithIndicator(), nil
	}
	return nil, fmt.Errorf("pipeline: no impute strategy for approach %q", a)
}

// transformer is the common surface of the impute strategies and the
// composite preprocessor.
type transformer interface {
	Fit(train *dataset.Table) error
	Transform(t *dataset.Table) (*dataset.Table, error)
}

// Evaluate runs one approach end to end: fit the preprocessing on the
// training partition, replay it on validation, fit the forest, predict, and
// score. It returns the scored evaluation.
func (e *Evaluator) Evaluate(ctx context.Context, approach Approach, sp *split.Result) (*Evaluation, error) {
	start := time.Now()
	runID := uuid.New().String()

	var tr transformer
	if approach == ApproachComposite {
		tr = NewPreprocessor(e.opts.FillValue)
	} else {
		strategy, err := strategyFor(approach)
		if err != nil {
			return nil, err
		}
		tr = strategy
	}

	e.logger.InfoContext(ctx, "evaluating approach",
		slog.String("run_id", runID),
		slog.String("approach", string(approach)),
		slog.Int("trees", e.opts.Trees))

	if err := tr.Fit(sp.XTrain); err != nil {
		return nil, fmt.Errorf("fit preprocessing: %w", err)
	}
	trainTable, err := tr.Transform(sp.XTrain)
	if err != nil {
		return nil, fmt.Errorf("transform training partition: %w", err)
	}
	validTable, err := tr.Transform(sp.XValid)
	if err != nil {
		return nil, fmt.Errorf("transform validation partition: %w", err)
	}

	XTrain, err := trainTable.Matrix()
	if err != nil {
		return nil, fmt.Errorf("training matrix: %w", err)
	}
	XValid, err := validTable.Matrix()
	if err != nil {
		return nil, fmt.Errorf("validation matrix: %w", err)
	}

	model := forest.NewRandomForestRegressor(
		forest.WithNEstimators(e.opts.Trees),
		forest.WithSeed(e.opts.Seed),
	)
	if err := model.Fit(ctx, XTrain, sp.YTrain); err != nil {
		return nil, fmt.Errorf("fit model: %w", err)
	}
	preds, err := model.Predict(XValid)
	if err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}

	ev := &Evaluation{
		RunID:    runID,
		Approach: approach,
		Label:    approach.Label(),
		MAE:      metrics.MAE(sp.YValid, preds),
		RMSE:     metrics.RMSE(sp.YValid, preds),
		R2:       metrics.R2(sp.YValid, preds),
		Rows:     trainTable.NumRows(),
		Columns:  trainTable.NumCols(),
		Duration: time.Since(start),
	}

	e.logger.InfoContext(ctx, "approach evaluated",
		slog.String("run_id", runID),
		slog.String("approach", string(approach)),
		slog.Float64("mae", ev.MAE),
		slog.Duration("duration", ev.Duration))
	return ev, nil
}

// Compare scores the three impute approaches on the same split and returns
// them in report order. Approaches run concurrently; the strategies clone
// every table they touch, so the shared split is never mutated.
func (e *Evaluator) Compare(ctx context.Context, sp *split.Result) ([]*Evaluation, error) {
	results := make([]*Evaluation, len(ImputeApproaches))

	g, ctx := errgroup.WithContext(ctx)
	for i, approach := range ImputeApproaches {
		g.Go(func() error {
			ev, err := e.Evaluate(ctx, approach, sp)
			if err != nil {
				return fmt.Errorf("approach %s: %w", approach, err)
			}
			results[i] = ev
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
