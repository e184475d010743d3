package forest

import (
	"context"
	"errors"
	"math/rand"

	"golang.org/x/sync/errgroup"
)

// RandomForestRegressor averages the predictions of NEstimators regression
// trees, each fitted on a bootstrap sample of the training rows. Tree i is
// seeded with Seed+i, so a fixed seed gives a reproducible forest for a
// fixed training set.
type RandomForestRegressor struct {
	NEstimators     int
	MaxDepth        int
	MinSamplesSplit int
	MinSamplesLeaf  int
	MaxFeatures     int
	Bootstrap       bool
	Seed            int64

	trees []*TreeRegressor
}

// Option configures a RandomForestRegressor.
type Option func(*RandomForestRegressor)

// WithNEstimators sets the number of trees.
func WithNEstimators(n int) Option { return func(rf *RandomForestRegressor) { rf.NEstimators = n } }

// WithMaxDepth caps tree depth; 0 means unlimited.
func WithMaxDepth(d int) Option { return func(rf *RandomForestRegressor) { rf.MaxDepth = d } }

// WithMinSamplesSplit sets the minimum rows needed to split a node.
func WithMinSamplesSplit(n int) Option {
	return func(rf *RandomForestRegressor) { rf.MinSamplesSplit = n }
}

// WithMinSamplesLeaf sets the minimum rows per leaf.
func WithMinSamplesLeaf(n int) Option {
	return func(rf *RandomForestRegressor) { rf.MinSamplesLeaf = n }
}

// WithMaxFeatures sets how many features each split considers; 0 means all.
func WithMaxFeatures(k int) Option { return func(rf *RandomForestRegressor) { rf.MaxFeatures = k } }

// WithBootstrap toggles bootstrap sampling.
func WithBootstrap(b bool) Option { return func(rf *RandomForestRegressor) { rf.Bootstrap = b } }

// WithSeed fixes the forest seed.
func WithSeed(seed int64) Option { return func(rf *RandomForestRegressor) { rf.Seed = seed } }

// NewRandomForestRegressor returns a forest with defaults matching the
// evaluation commands: 100 trees, bootstrap on, seed 0.
func NewRandomForestRegressor(opts ...Option) *RandomForestRegressor {
	rf := &RandomForestRegressor{
		NEstimators:     100,
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
		Bootstrap:       true,
		Seed:            0,
	}
	for _, o := range opts {
		o(rf)
	}
	return rf
}

// Fit trains the forest. Trees fit concurrently; the context cancels the
// remaining work if any tree fails or the caller gives up.
func (rf *RandomForestRegressor) Fit(ctx context.Context, X [][]float64, y []float64) error {
	if len(X) == 0 {
		return errors.New("forest: empty feature matrix")
	}
	if len(y) != len(X) {
		return errors.New("forest: feature and target lengths differ")
	}
	if rf.NEstimators <= 0 {
		return errors.New("forest: NEstimators must be positive")
	}

	n := len(X)
	rf.trees = make([]*TreeRegressor, rf.NEstimators)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < rf.NEstimators; i++ {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			treeRand := rand.New(rand.NewSource(rf.Seed + int64(i)))
			sample := make([]int, n)
			for j := 0; j < n; j++ {
				if rf.Bootstrap {
					sample[j] = treeRand.Intn(n)
				} else {
					sample[j] = j
				}
			}

			tree := &TreeRegressor{
				MaxDepth:        rf.MaxDepth,
				MinSamplesSplit: rf.MinSamplesSplit,
				MinSamplesLeaf:  rf.MinSamplesLeaf,
				MaxFeatures:     rf.MaxFeatures,
				Seed:            rf.Seed + int64(i),
			}
			if err := tree.fitIndices(X, y, sample); err != nil {
				return err
			}
			rf.trees[i] = tree
			return nil
		})
	}
	return g.Wait()
}

// Predict averages the per-tree predictions. The feature columns must match
// the set and order used at fit time.
func (rf *RandomForestRegressor) Predict(X [][]float64) ([]float64, error) {
	if len(rf.trees) == 0 {
		return nil, errors.New("forest: not fitted")
	}
	out := make([]float64, len(X))
	for _, tree := range rf.trees {
		preds, err := tree.Predict(X)
		if err != nil {
			return nil, err
		}
		for i, p := range preds {
			out[i] += p
		}
	}
	for i := range out {
		out[i] /= float64(len(rf.trees))
	}
	return out, nil
}
