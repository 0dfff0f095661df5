package pipeline

import "shopcat/pkg/dataprep"

// Schema describes the feature columns the model was trained on.
type Schema struct {
	FeatureNames []string
	Types        []string // "category" or "numeric"
	Target       string
	Classes      []string // target values in code order
}

// NewSchema derives the schema from the feature matrix and the fitted encoders.
func NewSchema(feats *dataprep.Features, encoders *dataprep.EncoderTable, target *dataprep.LabelEncoder) Schema {
	s := Schema{
		FeatureNames: append([]string(nil), feats.Names...),
		Types:        make([]string, len(feats.Names)),
		Target:       target.Column,
		Classes:      target.Classes(),
	}
	for i, name := range feats.Names {
		s.Types[i] = "numeric"
		if _, ok := encoders.Get(name); ok {
			s.Types[i] = "category"
		}
	}
	return s
}
