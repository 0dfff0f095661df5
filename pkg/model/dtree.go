package model

import (
	"errors"
	"math"
	"math/rand"
	"sort"
	"time"
)

// ---------------------------
// Types & options
// ---------------------------

// DecisionTreeClassifier is a CART-style classifier over numeric features.
// Label-encoded categorical features are split on thresholds like any other number.
type DecisionTreeClassifier struct {
	// Hyperparameters / options
	MaxDepth            int     // maximum depth (root depth = 0). 0 => no limit
	MinSamplesSplit     int     // minimum samples to attempt a split
	MinSamplesLeaf      int     // minimum samples required in each leaf
	Criterion           string  // "gini" (default) or "entropy"
	MaxFeatures         int     // 0 => use all features, >0 => number of features to sample when looking for split
	MinImpurityDecrease float64 // minimal impurity decrease to accept a split
	RandomState         int64   // seed for randomness (feature subsampling)

	// internals
	root        *dtNode
	classes     []int       // sorted unique class labels (order used by probas)
	classPos    map[int]int // label -> index into classes
	nFeatures   int
	importances []float64 // raw weighted impurity decrease per feature
}

// dtNode holds a node in the tree.
type dtNode struct {
	// internal node fields
	isLeaf      bool
	feature     int
	threshold   float64 // x <= threshold => left
	missingLeft bool    // route NaN values to the left child
	left        *dtNode
	right       *dtNode

	// leaf data
	n         int
	probas    []float64 // probability distribution across classes (aligned with tree.classes)
	predIndex int       // index into classes for predicted class (majority)
}

// Option functional config
type Option func(*DecisionTreeClassifier)

func WithMaxDepth(d int) Option { return func(t *DecisionTreeClassifier) { t.MaxDepth = d } }
func WithMinSamplesSplit(n int) Option {
	return func(t *DecisionTreeClassifier) { t.MinSamplesSplit = n }
}
func WithMinSamplesLeaf(n int) Option {
	return func(t *DecisionTreeClassifier) { t.MinSamplesLeaf = n }
}
func WithCriterion(c string) Option { return func(t *DecisionTreeClassifier) { t.Criterion = c } }
func WithMaxFeatures(k int) Option  { return func(t *DecisionTreeClassifier) { t.MaxFeatures = k } }
func WithMinImpurityDecrease(v float64) Option {
	return func(t *DecisionTreeClassifier) { t.MinImpurityDecrease = v }
}
func WithRandomState(seed int64) Option {
	return func(t *DecisionTreeClassifier) { t.RandomState = seed }
}

// NewDecisionTreeClassifier returns a classifier with sensible defaults.
func NewDecisionTreeClassifier(opts ...Option) *DecisionTreeClassifier {
	d := &DecisionTreeClassifier{
		MaxDepth:            0, // 0 => no explicit max (stopping by other criteria)
		MinSamplesSplit:     2,
		MinSamplesLeaf:      1,
		Criterion:           "gini",
		MaxFeatures:         0,
		MinImpurityDecrease: 0.0,
		RandomState:         time.Now().UnixNano(),
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// ---------------------------
// Public API
// ---------------------------

// Fit trains the decision tree on X (n x p) and y (n labels as ints).
// Missing values must be math.NaN().
func (t *DecisionTreeClassifier) Fit(X [][]float64, y []int) error {
	idx := make([]int, len(X))
	for i := range idx {
		idx[i] = i
	}
	return t.FitIndices(X, y, idx)
}

// FitIndices trains on the rows of X named by idx. Indices may repeat, which is
// how bootstrap samples are passed without copying rows.
func (t *DecisionTreeClassifier) FitIndices(X [][]float64, y []int, idx []int) error {
	if len(X) == 0 {
		return errors.New("dtree: empty X")
	}
	n := len(X)
	if len(y) != n {
		return errors.New("dtree: X and y length mismatch")
	}
	p := len(X[0])
	if p == 0 {
		return errors.New("dtree: no features")
	}
	for i := range X {
		if len(X[i]) != p {
			return errors.New("dtree: inconsistent number of features in X rows")
		}
	}
	if len(idx) == 0 {
		return errors.New("dtree: empty sample")
	}
	for _, ii := range idx {
		if ii < 0 || ii >= n {
			return errors.New("dtree: sample index out of range")
		}
	}
	switch t.Criterion {
	case "", "gini", "entropy":
	default:
		return errors.New("dtree: unknown criterion " + t.Criterion)
	}

	// collect classes and build class list
	seen := map[int]struct{}{}
	t.classes = nil
	for _, ii := range idx {
		if _, ok := seen[y[ii]]; !ok {
			seen[y[ii]] = struct{}{}
			t.classes = append(t.classes, y[ii])
		}
	}
	sort.Ints(t.classes)
	t.classPos = make(map[int]int, len(t.classes))
	for i, c := range t.classes {
		t.classPos[c] = i
	}

	t.nFeatures = p
	t.importances = make([]float64, p)
	rnd := rand.New(rand.NewSource(t.RandomState))

	// copy so the caller's slice is not reordered
	work := append([]int(nil), idx...)
	t.root = t.buildNode(X, y, work, 0, rnd)
	return nil
}

// Predict returns predicted class labels aligned with the labels the tree was trained on.
func (t *DecisionTreeClassifier) Predict(X [][]float64) []int {
	out := make([]int, len(X))
	for i := range X {
		out[i] = t.predictSingle(X[i])
	}
	return out
}

// PredictProba returns the per-class probability vectors for rows in X, aligned with Classes.
func (t *DecisionTreeClassifier) PredictProba(X [][]float64) [][]float64 {
	out := make([][]float64, len(X))
	for i := range X {
		out[i] = t.predictProbaSingle(X[i])
	}
	return out
}

// Classes returns the sorted class labels seen during Fit.
func (t *DecisionTreeClassifier) Classes() []int {
	return append([]int(nil), t.classes...)
}

// FeatureImportances returns the impurity decrease contributed by each feature,
// normalized to sum to 1. A tree without splits returns all zeros.
func (t *DecisionTreeClassifier) FeatureImportances() []float64 {
	out := make([]float64, len(t.importances))
	total := 0.0
	for _, v := range t.importances {
		total += v
	}
	if total == 0 {
		return out
	}
	for i, v := range t.importances {
		out[i] = v / total
	}
	return out
}

// Depth returns the depth of the fitted tree (a single leaf has depth 0).
func (t *DecisionTreeClassifier) Depth() int {
	return nodeDepth(t.root)
}

func nodeDepth(n *dtNode) int {
	if n == nil || n.isLeaf {
		return 0
	}
	return 1 + max(nodeDepth(n.left), nodeDepth(n.right))
}

// ---------------------------
// Internal builders & helpers
// ---------------------------

// splitResult holds the best split found for a single feature.
type splitResult struct {
	gain        float64
	feature     int
	threshold   float64
	missingLeft bool
}

// pair is a feature value and its row index.
type pair struct {
	v float64
	i int
}

func (t *DecisionTreeClassifier) impurity(counts []int) float64 {
	if t.Criterion == "entropy" {
		return entropyFromCounts(counts)
	}
	return giniFromCounts(counts)
}

func (t *DecisionTreeClassifier) leaf(node *dtNode, counts []int) *dtNode {
	node.isLeaf = true
	node.probas = countsToProbas(counts)
	node.predIndex = argmax(counts)
	return node
}

func (t *DecisionTreeClassifier) buildNode(X [][]float64, y []int, idx []int, depth int, rnd *rand.Rand) *dtNode {
	node := &dtNode{n: len(idx)}

	counts := t.countsFromIndices(y, idx)
	// make leaf if pure or too few samples or depth reached
	if isPure(counts) || (t.MinSamplesSplit > 0 && len(idx) < t.MinSamplesSplit) || len(idx) < 2*max(t.MinSamplesLeaf, 1) {
		return t.leaf(node, counts)
	}
	if t.MaxDepth > 0 && depth >= t.MaxDepth {
		return t.leaf(node, counts)
	}

	// determine features to try
	p := t.nFeatures
	featIndices := make([]int, p)
	for j := 0; j < p; j++ {
		featIndices[j] = j
	}
	if t.MaxFeatures > 0 && t.MaxFeatures < p {
		for i := 0; i < t.MaxFeatures; i++ {
			j := i + rnd.Intn(p-i)
			featIndices[i], featIndices[j] = featIndices[j], featIndices[i]
		}
		featIndices = featIndices[:t.MaxFeatures]
	}

	parentImpurity := t.impurity(counts)
	best := splitResult{feature: -1}
	for _, f := range featIndices {
		result := t.findBestSplitForFeature(X, y, idx, f, parentImpurity)
		if result.feature >= 0 && result.gain > best.gain {
			best = result
		}
	}

	// Decide whether to split
	if best.feature == -1 || best.gain <= t.MinImpurityDecrease {
		return t.leaf(node, counts)
	}

	leftIdx, rightIdx := partition(X, idx, best)
	t.importances[best.feature] += float64(len(idx)) * best.gain

	node.feature = best.feature
	node.threshold = best.threshold
	node.missingLeft = best.missingLeft
	node.left = t.buildNode(X, y, leftIdx, depth+1, rnd)
	node.right = t.buildNode(X, y, rightIdx, depth+1, rnd)
	return node
}

// findBestSplitForFeature scans the sorted values of feature f once, moving samples
// from the right child to the left and scoring every threshold between distinct values.
// NaN samples are tried on both sides.
func (t *DecisionTreeClassifier) findBestSplitForFeature(X [][]float64, y []int, idx []int, f int, parentImpurity float64) splitResult {
	result := splitResult{gain: 0.0, feature: -1}
	nClasses := len(t.classes)

	valid := make([]pair, 0, len(idx))
	nanCounts := make([]int, nClasses)
	nNaN := 0
	for _, ii := range idx {
		v := X[ii][f]
		if math.IsNaN(v) {
			nanCounts[t.classPos[y[ii]]]++
			nNaN++
			continue
		}
		valid = append(valid, pair{v, ii})
	}
	if len(valid) < 2 {
		return result
	}
	sort.Slice(valid, func(a, b int) bool { return valid[a].v < valid[b].v })

	leftCounts := make([]int, nClasses)
	rightCounts := make([]int, nClasses)
	for _, pv := range valid {
		rightCounts[t.classPos[y[pv.i]]]++
	}
	scratchL := make([]int, nClasses)
	scratchR := make([]int, nClasses)
	total := float64(len(idx))
	minLeaf := max(t.MinSamplesLeaf, 1)

	score := func(l, r []int, nl, nr int) (float64, bool) {
		if nl < minLeaf || nr < minLeaf {
			return 0, false
		}
		weighted := (float64(nl)/total)*t.impurity(l) + (float64(nr)/total)*t.impurity(r)
		return parentImpurity - weighted, true
	}

	for s := 1; s < len(valid); s++ {
		leftCounts[t.classPos[y[valid[s-1].i]]]++
		rightCounts[t.classPos[y[valid[s-1].i]]]--
		// skip if same value
		if valid[s].v == valid[s-1].v {
			continue
		}
		thr := (valid[s-1].v + valid[s].v) / 2.0
		if thr == valid[s].v {
			// adjacent floats: keep the upper value on the right
			thr = valid[s-1].v
		}
		nl, nr := s, len(valid)-s

		// NaNs on the right (or no NaNs at all)
		addCounts(scratchR, rightCounts, nanCounts)
		if gain, ok := score(leftCounts, scratchR, nl, nr+nNaN); ok && gain > result.gain {
			result = splitResult{gain: gain, feature: f, threshold: thr, missingLeft: false}
		}
		if nNaN == 0 {
			continue
		}
		// NaNs on the left
		addCounts(scratchL, leftCounts, nanCounts)
		if gain, ok := score(scratchL, rightCounts, nl+nNaN, nr); ok && gain > result.gain {
			result = splitResult{gain: gain, feature: f, threshold: thr, missingLeft: true}
		}
	}
	return result
}

func partition(X [][]float64, idx []int, s splitResult) (left, right []int) {
	left = make([]int, 0, len(idx))
	right = make([]int, 0, len(idx))
	for _, ii := range idx {
		v := X[ii][s.feature]
		goLeft := v <= s.threshold
		if math.IsNaN(v) {
			goLeft = s.missingLeft
		}
		if goLeft {
			left = append(left, ii)
		} else {
			right = append(right, ii)
		}
	}
	return left, right
}

func addCounts(dst, a, b []int) {
	for i := range dst {
		dst[i] = a[i] + b[i]
	}
}

func (t *DecisionTreeClassifier) countsFromIndices(y []int, idx []int) []int {
	counts := make([]int, len(t.classes))
	for _, ii := range idx {
		counts[t.classPos[y[ii]]]++
	}
	return counts
}

// ---------------------------
// Prediction helper
// ---------------------------

func (t *DecisionTreeClassifier) predictSingle(x []float64) int {
	node := t.findLeaf(x)
	if node == nil {
		return 0
	}
	return t.classes[node.predIndex]
}

func (t *DecisionTreeClassifier) predictProbaSingle(x []float64) []float64 {
	node := t.findLeaf(x)
	if node == nil {
		p := make([]float64, len(t.classes))
		for i := range p {
			p[i] = 1.0 / float64(len(p))
		}
		return p
	}
	return node.probas
}

func (t *DecisionTreeClassifier) findLeaf(x []float64) *dtNode {
	node := t.root
	for node != nil && !node.isLeaf {
		val := x[node.feature]
		switch {
		case math.IsNaN(val):
			if node.missingLeft {
				node = node.left
			} else {
				node = node.right
			}
		case val <= node.threshold:
			node = node.left
		default:
			node = node.right
		}
	}
	return node
}

// ---------------------------
// Utilities: impurity & misc
// ---------------------------

func giniFromCounts(counts []int) float64 {
	n := 0.0
	for _, c := range counts {
		n += float64(c)
	}
	if n == 0 {
		return 0
	}
	res := 0.0
	for _, c := range counts {
		p := float64(c) / n
		res += p * (1 - p)
	}
	return res
}

func entropyFromCounts(counts []int) float64 {
	n := 0.0
	for _, c := range counts {
		n += float64(c)
	}
	if n == 0 {
		return 0
	}
	res := 0.0
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) / n
		res -= p * math.Log2(p)
	}
	return res
}

func isPure(counts []int) bool {
	nonZero := 0
	for _, c := range counts {
		if c > 0 {
			nonZero++
		}
	}
	return nonZero <= 1
}

func countsToProbas(counts []int) []float64 {
	n := 0
	for _, c := range counts {
		n += c
	}
	p := make([]float64, len(counts))
	if n == 0 {
		return p
	}
	for i := range counts {
		p[i] = float64(counts[i]) / float64(n)
	}
	return p
}

func argmax(counts []int) int {
	best := 0
	for i := 1; i < len(counts); i++ {
		if counts[i] > counts[best] {
			best = i
		}
	}
	return best
}
