package dataprep

import (
	"errors"
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// ErrNonNumericFeature is returned when a feature column still holds text after encoding.
var ErrNonNumericFeature = errors.New("dataprep: non-numeric feature column")

// Features is the model input derived from a cleaned, encoded frame.
type Features struct {
	Names []string    // feature column names, in frame order
	X     [][]float64 // rows x features
	Y     []int       // encoded target
}

// FeatureMatrix splits df into the feature matrix (every column but target) and the
// label-encoded target vector. The returned encoder names the target classes.
func FeatureMatrix(df dataframe.DataFrame, target string) (*Features, *LabelEncoder, error) {
	if !HasColumn(df, target) {
		return nil, nil, fmt.Errorf("%w: %q", ErrMissingColumn, target)
	}

	targetEnc := NewLabelEncoder(target)
	y, err := targetEnc.FitTransform(df.Col(target).Records())
	if err != nil {
		return nil, nil, err
	}

	nRows := df.Nrow()
	feats := &Features{Y: y, X: make([][]float64, nRows)}
	for i := range nRows {
		feats.X[i] = make([]float64, 0, df.Ncol()-1)
	}

	for _, name := range df.Names() {
		if name == target {
			continue
		}
		col := df.Col(name)
		if col.Type() == series.String {
			return nil, nil, fmt.Errorf("%w: %q", ErrNonNumericFeature, name)
		}
		vals := col.Float()
		for i := range nRows {
			feats.X[i] = append(feats.X[i], vals[i])
		}
		feats.Names = append(feats.Names, name)
	}
	if len(feats.Names) == 0 {
		return nil, nil, errors.New("dataprep: no feature columns")
	}
	return feats, targetEnc, nil
}
