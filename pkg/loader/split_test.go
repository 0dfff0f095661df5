package loader

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrainTestSplitSizes(t *testing.T) {
	tests := []struct {
		n, train, test int
	}{
		{n: 10, train: 8, test: 2},
		{n: 11, train: 8, test: 3},
		{n: 3900, train: 3120, test: 780},
	}
	for _, tt := range tests {
		s, err := TrainTestSplit(tt.n, 0.2, 42)
		require.NoError(t, err)
		assert.Len(t, s.TrainIdx, tt.train, "n=%d", tt.n)
		assert.Len(t, s.TestIdx, tt.test, "n=%d", tt.n)
	}
}

func TestTrainTestSplitDeterministic(t *testing.T) {
	a, err := TrainTestSplit(500, 0.2, 42)
	require.NoError(t, err)
	b, err := TrainTestSplit(500, 0.2, 42)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := TrainTestSplit(500, 0.2, 7)
	require.NoError(t, err)
	assert.NotEqual(t, a.TestIdx, c.TestIdx)
}

func TestTrainTestSplitDisjointAndExhaustive(t *testing.T) {
	const n = 137
	s, err := TrainTestSplit(n, 0.2, 42)
	require.NoError(t, err)
	require.Equal(t, n, len(s.TrainIdx)+len(s.TestIdx))

	seen := map[int]bool{}
	for _, i := range append(append([]int(nil), s.TrainIdx...), s.TestIdx...) {
		require.False(t, seen[i], "row %d in both partitions", i)
		seen[i] = true
	}
	all := make([]int, 0, n)
	for i := range seen {
		all = append(all, i)
	}
	sort.Ints(all)
	for i := range n {
		assert.Equal(t, i, all[i])
	}
}

func TestTrainTestSplitErrors(t *testing.T) {
	_, err := TrainTestSplit(10, 0, 42)
	require.Error(t, err)
	_, err = TrainTestSplit(10, 1, 42)
	require.Error(t, err)
	_, err = TrainTestSplit(1, 0.2, 42)
	require.Error(t, err)
}

func TestApply(t *testing.T) {
	X := [][]float64{{0}, {1}, {2}, {3}, {4}}
	y := []int{0, 1, 2, 3, 4}
	s := Split{TrainIdx: []int{4, 0, 2}, TestIdx: []int{3, 1}}

	XTrain, yTrain, XTest, yTest := s.Apply(X, y)
	assert.Equal(t, [][]float64{{4}, {0}, {2}}, XTrain)
	assert.Equal(t, []int{4, 0, 2}, yTrain)
	assert.Equal(t, [][]float64{{3}, {1}}, XTest)
	assert.Equal(t, []int{3, 1}, yTest)
}
