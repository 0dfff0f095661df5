package model

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
)

// RandomForest for classification
type RandomForest struct {
	// Hyperparameters / options
	NEstimators     int
	MaxDepth        int
	MinSamplesSplit int
	MinSamplesLeaf  int
	MaxFeatures     int // 0 => floor(sqrt(p)), at least 1
	Criterion       string
	Bootstrap       bool
	RandomState     int64
	Workers         int // 0 => runtime.NumCPU()

	// Internal state
	Trees     []*DecisionTreeClassifier
	nFeatures int
}

// RandomForestOption functional config for RandomForest
type RandomForestOption func(*RandomForest)

func WithNEstimators(n int) RandomForestOption { return func(rf *RandomForest) { rf.NEstimators = n } }
func WithBootstrap(b bool) RandomForestOption  { return func(rf *RandomForest) { rf.Bootstrap = b } }
func WithSeed(seed int64) RandomForestOption   { return func(rf *RandomForest) { rf.RandomState = seed } }
func WithWorkers(n int) RandomForestOption     { return func(rf *RandomForest) { rf.Workers = n } }
func WithForestMaxDepth(d int) RandomForestOption {
	return func(rf *RandomForest) { rf.MaxDepth = d }
}
func WithForestMinSamplesSplit(n int) RandomForestOption {
	return func(rf *RandomForest) { rf.MinSamplesSplit = n }
}
func WithForestMinSamplesLeaf(n int) RandomForestOption {
	return func(rf *RandomForest) { rf.MinSamplesLeaf = n }
}
func WithForestMaxFeatures(k int) RandomForestOption {
	return func(rf *RandomForest) { rf.MaxFeatures = k }
}
func WithForestCriterion(c string) RandomForestOption {
	return func(rf *RandomForest) { rf.Criterion = c }
}

// NewRandomForest initializes the forest with sensible defaults.
func NewRandomForest(opts ...RandomForestOption) *RandomForest {
	rf := &RandomForest{
		NEstimators:     100,
		MaxDepth:        0,
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
		MaxFeatures:     0,
		Criterion:       "gini",
		Bootstrap:       true,
		RandomState:     time.Now().UnixNano(),
	}
	for _, o := range opts {
		o(rf)
	}
	return rf
}

// Fit trains the random forest.
// Each tree draws its bootstrap sample and feature subsets from its own source
// seeded with RandomState+i, so the fitted forest does not depend on scheduling.
func (rf *RandomForest) Fit(ctx context.Context, X [][]float64, y []int) error {
	if len(X) == 0 {
		return errors.New("randomforest: empty X")
	}
	n := len(X)
	if len(y) != n {
		return errors.New("randomforest: X and y length mismatch")
	}
	if rf.NEstimators <= 0 {
		return errors.New("randomforest: NEstimators must be positive")
	}
	p := len(X[0])
	maxFeatures := rf.MaxFeatures
	if maxFeatures <= 0 {
		maxFeatures = max(1, int(math.Sqrt(float64(p))))
	}
	workers := rf.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	trees := make([]*DecisionTreeClassifier, rf.NEstimators)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < rf.NEstimators; i++ {
		idx := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			seed := rf.RandomState + int64(idx)
			treeRand := rand.New(rand.NewSource(seed))

			// Bootstrap sampling: an index slice, not a copy of the data.
			sampleIndices := make([]int, n)
			for j := 0; j < n; j++ {
				if rf.Bootstrap {
					sampleIndices[j] = treeRand.Intn(n)
				} else {
					sampleIndices[j] = j
				}
			}

			tree := NewDecisionTreeClassifier(
				WithMaxDepth(rf.MaxDepth),
				WithMinSamplesSplit(rf.MinSamplesSplit),
				WithMinSamplesLeaf(rf.MinSamplesLeaf),
				WithCriterion(rf.Criterion),
				WithMaxFeatures(maxFeatures),
				WithRandomState(treeRand.Int63()),
			)
			if err := tree.FitIndices(X, y, sampleIndices); err != nil {
				return err
			}
			trees[idx] = tree
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	rf.Trees = trees
	rf.nFeatures = p
	return nil
}

// Predict returns the majority vote of all trees. Ties go to the smallest class label.
func (rf *RandomForest) Predict(X [][]float64) []int {
	allPreds := make([][]int, len(rf.Trees))
	for j, tree := range rf.Trees {
		allPreds[j] = tree.Predict(X)
	}

	finalPred := make([]int, len(X))
	for i := range X {
		counts := make(map[int]int)
		for j := range allPreds {
			counts[allPreds[j][i]]++
		}
		bestClass, maxCount := 0, -1
		for cls, cnt := range counts {
			if cnt > maxCount || (cnt == maxCount && cls < bestClass) {
				bestClass, maxCount = cls, cnt
			}
		}
		finalPred[i] = bestClass
	}
	return finalPred
}

// FeatureImportances averages the normalized impurity-decrease importances of the
// trees and renormalizes the result to sum to 1. Trees without any split are skipped;
// if no tree split, all importances are zero.
func (rf *RandomForest) FeatureImportances() []float64 {
	out := make([]float64, rf.nFeatures)
	used := 0
	for _, tree := range rf.Trees {
		imp := tree.FeatureImportances()
		if floats.Sum(imp) == 0 {
			continue
		}
		floats.Add(out, imp)
		used++
	}
	if used == 0 {
		return out
	}
	floats.Scale(1/floats.Sum(out), out)
	return out
}
