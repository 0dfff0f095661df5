package model

import (
	"errors"
	"sort"
)

// FeatureImportance is one row of an importance ranking.
type FeatureImportance struct {
	Index      int // column position in the feature matrix
	Feature    string
	Importance float64
}

// RankImportances pairs names with scores and sorts them by descending importance.
// Equal scores keep the column order.
func RankImportances(names []string, scores []float64) ([]FeatureImportance, error) {
	if len(names) != len(scores) {
		return nil, errors.New("model: feature names and importances length mismatch")
	}
	out := make([]FeatureImportance, len(names))
	for i := range names {
		out[i] = FeatureImportance{Index: i, Feature: names[i], Importance: scores[i]}
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Importance > out[b].Importance })
	return out, nil
}

// TopImportances returns at most n leading entries of a ranking.
func TopImportances(ranking []FeatureImportance, n int) []FeatureImportance {
	if n < 0 || n > len(ranking) {
		n = len(ranking)
	}
	return ranking[:n]
}
