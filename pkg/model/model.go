package model

import "context"

// Classifier is a supervised multi-class model over encoded features.
type Classifier interface {
	Fit(ctx context.Context, X [][]float64, y []int) error
	Predict(X [][]float64) []int
}

// ImportanceReporter exposes per-feature importance scores aligned with the training columns.
type ImportanceReporter interface {
	FeatureImportances() []float64
}

var (
	_ Classifier         = (*RandomForest)(nil)
	_ ImportanceReporter = (*RandomForest)(nil)
	_ ImportanceReporter = (*DecisionTreeClassifier)(nil)
)
