package loader

import (
	"errors"
	"math"
	"math/rand"
)

// Split holds the row indices of a train/test partition.
type Split struct {
	TrainIdx []int
	TestIdx  []int
}

// TrainTestSplit shuffles n row indices with the given seed and holds out
// ceil(n*testSize) of them for testing. The same n, testSize and seed always
// produce the same partition.
func TrainTestSplit(n int, testSize float64, seed int64) (Split, error) {
	if testSize <= 0 || testSize >= 1 {
		return Split{}, errors.New("loader: test size must be in (0, 1)")
	}
	nTest := int(math.Ceil(float64(n) * testSize))
	if nTest < 1 || nTest >= n {
		return Split{}, errors.New("loader: not enough rows for a train/test split")
	}

	indices := rand.New(rand.NewSource(seed)).Perm(n)
	return Split{
		TestIdx:  indices[:nTest],
		TrainIdx: indices[nTest:],
	}, nil
}

// Apply materializes the partition over X and y. Rows are shared, not copied.
func (s Split) Apply(X [][]float64, y []int) (XTrain [][]float64, yTrain []int, XTest [][]float64, yTest []int) {
	XTrain, yTrain = take(X, y, s.TrainIdx)
	XTest, yTest = take(X, y, s.TestIdx)
	return
}

func take(X [][]float64, y []int, idx []int) ([][]float64, []int) {
	xs := make([][]float64, len(idx))
	ys := make([]int, len(idx))
	for i, j := range idx {
		xs[i] = X[j]
		ys[i] = y[j]
	}
	return xs, ys
}

