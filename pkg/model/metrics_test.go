package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccuracy(t *testing.T) {
	assert.Equal(t, 0.0, Accuracy(nil, nil))
	assert.Equal(t, 1.0, Accuracy([]int{1, 2}, []int{1, 2}))
	assert.Equal(t, 0.5, Accuracy([]int{1, 2}, []int{1, 1}))
}

func TestClassificationReport(t *testing.T) {
	yTrue := []int{0, 0, 1, 1, 2}
	yPred := []int{0, 1, 1, 1, 0}
	names := []string{"Accessories", "Clothing", "Footwear"}

	r := NewClassificationReport(yTrue, yPred, func(c int) string { return names[c] })
	require.Len(t, r.Classes, 3)
	assert.Equal(t, 0.6, r.Accuracy)
	assert.Equal(t, 5, r.Total)

	acc := r.Classes[0]
	assert.Equal(t, "Accessories", acc.Label)
	assert.InDelta(t, 0.5, acc.Precision, 1e-12)
	assert.InDelta(t, 0.5, acc.Recall, 1e-12)
	assert.InDelta(t, 0.5, acc.F1, 1e-12)
	assert.Equal(t, 2, acc.Support)

	cl := r.Classes[1]
	assert.InDelta(t, 2.0/3.0, cl.Precision, 1e-12)
	assert.InDelta(t, 1.0, cl.Recall, 1e-12)
	assert.InDelta(t, 0.8, cl.F1, 1e-12)

	fw := r.Classes[2]
	assert.Equal(t, 0.0, fw.Precision, "no predictions for the class")
	assert.Equal(t, 0.0, fw.Recall)
	assert.Equal(t, 1, fw.Support)

	assert.InDelta(t, (0.5+2.0/3.0)/3, r.MacroAvg.Precision, 1e-12)
	assert.InDelta(t, (2*0.5+2*2.0/3.0)/5, r.WeightedAvg.Precision, 1e-12)
	assert.InDelta(t, (2*0.5+2*1.0)/5, r.WeightedAvg.Recall, 1e-12)
	assert.Equal(t, 5, r.WeightedAvg.Support)
}

func TestClassificationReportLabelFallback(t *testing.T) {
	r := NewClassificationReport([]int{3, 7}, []int{3, 3}, nil)
	require.Len(t, r.Classes, 2)
	assert.Equal(t, "3", r.Classes[0].Label)
	assert.Equal(t, "7", r.Classes[1].Label)
}

func TestRankImportances(t *testing.T) {
	ranking, err := RankImportances([]string{"Age", "Color", "Size", "Season"}, []float64{0.2, 0.4, 0.2, 0.2})
	require.NoError(t, err)

	got := make([]string, len(ranking))
	for i, fi := range ranking {
		got[i] = fi.Feature
	}
	assert.Equal(t, []string{"Color", "Age", "Size", "Season"}, got)
	assert.Equal(t, 1, ranking[0].Index)

	for i := 1; i < len(ranking); i++ {
		assert.GreaterOrEqual(t, ranking[i-1].Importance, ranking[i].Importance)
	}

	assert.Len(t, TopImportances(ranking, 2), 2)
	assert.Len(t, TopImportances(ranking, 10), 4)

	_, err = RankImportances([]string{"a"}, nil)
	require.Error(t, err)
}
