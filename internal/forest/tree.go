// Package forest implements a bagged ensemble of CART regression trees, the
// model behind every evaluation run.
package forest

import (
	"errors"
	"math"
	"math/rand"
	"sort"
)

// TreeRegressor is a single CART-style regression tree. Splits minimize the
// weighted sum of squared errors of the children; leaves predict the mean
// target of their training rows. Missing feature values (NaN) are routed to
// whichever side of a candidate split scores better during training and to
// the larger child during prediction.
type TreeRegressor struct {
	MaxDepth        int   // 0 means no depth limit
	MinSamplesSplit int   // minimum rows to attempt a split
	MinSamplesLeaf  int   // minimum rows in each child
	MaxFeatures     int   // 0 means consider all features at each split
	Seed            int64 // seed for feature subsampling

	root *treeNode
}

type treeNode struct {
	isLeaf    bool
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
	n         int
	value     float64
}

// NewTreeRegressor returns a tree with the usual defaults.
func NewTreeRegressor() *TreeRegressor {
	return &TreeRegressor{
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
	}
}

// Fit trains the tree on all rows of X.
func (t *TreeRegressor) Fit(X [][]float64, y []float64) error {
	if len(X) == 0 {
		return errors.New("forest: empty feature matrix")
	}
	if len(y) != len(X) {
		return errors.New("forest: feature and target lengths differ")
	}
	idx := make([]int, len(X))
	for i := range idx {
		idx[i] = i
	}
	return t.fitIndices(X, y, idx)
}

// fitIndices trains on the rows named by idx. The forest passes bootstrap
// samples this way instead of copying the matrix.
func (t *TreeRegressor) fitIndices(X [][]float64, y []float64, idx []int) error {
	if len(idx) == 0 {
		return errors.New("forest: empty sample")
	}
	p := len(X[0])
	for i := range X {
		if len(X[i]) != p {
			return errors.New("forest: ragged feature matrix")
		}
	}
	rnd := rand.New(rand.NewSource(t.Seed))
	t.root = t.buildNode(X, y, idx, 0, p, rnd)
	return nil
}

func leafNode(y []float64, idx []int) *treeNode {
	sum := 0.0
	for _, i := range idx {
		sum += y[i]
	}
	return &treeNode{isLeaf: true, n: len(idx), value: sum / float64(len(idx))}
}

// sse returns sum of squared deviations from the mean for the given rows.
func sse(y []float64, idx []int) float64 {
	if len(idx) == 0 {
		return 0
	}
	sum, sumsq := 0.0, 0.0
	for _, i := range idx {
		sum += y[i]
		sumsq += y[i] * y[i]
	}
	n := float64(len(idx))
	return sumsq - sum*sum/n
}

func (t *TreeRegressor) buildNode(X [][]float64, y []float64, idx []int, depth, p int, rnd *rand.Rand) *treeNode {
	if len(idx) < t.MinSamplesSplit || (t.MaxDepth > 0 && depth >= t.MaxDepth) {
		return leafNode(y, idx)
	}
	parentSSE := sse(y, idx)
	if parentSSE == 0 {
		return leafNode(y, idx)
	}

	features := make([]int, p)
	for j := 0; j < p; j++ {
		features[j] = j
	}
	if t.MaxFeatures > 0 && t.MaxFeatures < p {
		rnd.Shuffle(p, func(a, b int) { features[a], features[b] = features[b], features[a] })
		features = features[:t.MaxFeatures]
	}

	best := splitCandidate{score: parentSSE}
	found := false
	for _, f := range features {
		if cand, ok := t.bestSplitForFeature(X, y, idx, f); ok && cand.score < best.score {
			best = cand
			found = true
		}
	}
	if !found {
		return leafNode(y, idx)
	}

	node := &treeNode{
		feature:   best.feature,
		threshold: best.threshold,
		n:         len(idx),
	}
	node.left = t.buildNode(X, y, best.left, depth+1, p, rnd)
	node.right = t.buildNode(X, y, best.right, depth+1, p, rnd)
	return node
}

type splitCandidate struct {
	score     float64 // combined child SSE, lower is better
	feature   int
	threshold float64
	left      []int
	right     []int
}

type valueIndex struct {
	v float64
	i int
}

// bestSplitForFeature scans the midpoints between consecutive distinct
// values of one feature. Prefix sums make each threshold O(1); missing rows
// are tried on both sides.
func (t *TreeRegressor) bestSplitForFeature(X [][]float64, y []float64, idx []int, f int) (splitCandidate, bool) {
	valid := make([]valueIndex, 0, len(idx))
	var nan []int
	for _, i := range idx {
		v := X[i][f]
		if math.IsNaN(v) {
			nan = append(nan, i)
		} else {
			valid = append(valid, valueIndex{v, i})
		}
	}
	if len(valid) < 2 {
		return splitCandidate{}, false
	}
	sort.Slice(valid, func(a, b int) bool { return valid[a].v < valid[b].v })

	m := len(valid)
	prefixSum := make([]float64, m+1)
	prefixSq := make([]float64, m+1)
	for k, vi := range valid {
		prefixSum[k+1] = prefixSum[k] + y[vi.i]
		prefixSq[k+1] = prefixSq[k] + y[vi.i]*y[vi.i]
	}
	nanSum, nanSq := 0.0, 0.0
	for _, i := range nan {
		nanSum += y[i]
		nanSq += y[i] * y[i]
	}
	nanN := float64(len(nan))

	groupSSE := func(n, sum, sumsq float64) float64 {
		if n == 0 {
			return 0
		}
		return sumsq - sum*sum/n
	}

	best := splitCandidate{score: math.Inf(1)}
	found := false
	for s := 1; s < m; s++ {
		if valid[s].v == valid[s-1].v {
			continue
		}
		thr := (valid[s-1].v + valid[s].v) / 2

		lN, lSum, lSq := float64(s), prefixSum[s], prefixSq[s]
		rN, rSum, rSq := float64(m-s), prefixSum[m]-prefixSum[s], prefixSq[m]-prefixSq[s]

		// missing rows on the left, then on the right
		for side := 0; side < 2; side++ {
			ln, lsum, lsq := lN, lSum, lSq
			rn, rsum, rsq := rN, rSum, rSq
			if side == 0 {
				ln += nanN
				lsum += nanSum
				lsq += nanSq
			} else {
				rn += nanN
				rsum += nanSum
				rsq += nanSq
			}
			if int(ln) < t.MinSamplesLeaf || int(rn) < t.MinSamplesLeaf {
				continue
			}
			score := groupSSE(ln, lsum, lsq) + groupSSE(rn, rsum, rsq)
			if score < best.score {
				left := make([]int, 0, int(ln))
				right := make([]int, 0, int(rn))
				for k := 0; k < s; k++ {
					left = append(left, valid[k].i)
				}
				for k := s; k < m; k++ {
					right = append(right, valid[k].i)
				}
				if side == 0 {
					left = append(left, nan...)
				} else {
					right = append(right, nan...)
				}
				best = splitCandidate{score: score, feature: f, threshold: thr, left: left, right: right}
				found = true
			}
			if nanN == 0 {
				break
			}
		}
	}
	return best, found
}

// Predict returns one prediction per row of X.
func (t *TreeRegressor) Predict(X [][]float64) ([]float64, error) {
	if t.root == nil {
		return nil, errors.New("forest: tree not fitted")
	}
	out := make([]float64, len(X))
	for i, row := range X {
		out[i] = t.predictRow(row)
	}
	return out, nil
}

func (t *TreeRegressor) predictRow(x []float64) float64 {
	node := t.root
	for !node.isLeaf {
		v := x[node.feature]
		if math.IsNaN(v) {
			// missing at predict time: follow the larger child
			if node.left.n >= node.right.n {
				node = node.left
			} else {
				node = node.right
			}
			continue
		}
		if v <= node.threshold {
			node = node.left
		} else {
			node = node.right
		}
	}
	return node.value
}
