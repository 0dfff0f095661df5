package report

import (
	"fmt"
	"io"
	"strconv"

	"shopcat/pkg/model"
)

const digits = 2

// WriteClassificationReport renders r as a fixed-width table: one row per class,
// then accuracy, macro and weighted averages.
func WriteClassificationReport(w io.Writer, r *model.ClassificationReport) error {
	width := len(r.WeightedAvg.Label)
	for _, c := range r.Classes {
		width = max(width, len(c.Label))
	}

	if _, err := fmt.Fprintf(w, "%*s  %9s %9s %9s %9s\n\n", width, "", "precision", "recall", "f1-score", "support"); err != nil {
		return err
	}
	for _, c := range r.Classes {
		if err := writeRow(w, width, c); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "\n%*s  %9s %9s %9.*f %9d\n", width, "accuracy", "", "", digits, r.Accuracy, r.Total); err != nil {
		return err
	}
	if err := writeRow(w, width, r.MacroAvg); err != nil {
		return err
	}
	return writeRow(w, width, r.WeightedAvg)
}

func writeRow(w io.Writer, width int, c model.ClassMetrics) error {
	_, err := fmt.Fprintf(w, "%*s  %9.*f %9.*f %9.*f %9d\n",
		width, c.Label, digits, c.Precision, digits, c.Recall, digits, c.F1, c.Support)
	return err
}

// WriteImportances renders a ranking as an indexed two-column table.
// The index is the feature's column position.
func WriteImportances(w io.Writer, ranking []model.FeatureImportance) error {
	idxWidth, nameWidth := 1, len("Feature")
	for _, fi := range ranking {
		idxWidth = max(idxWidth, len(strconv.Itoa(fi.Index)))
		nameWidth = max(nameWidth, len(fi.Feature))
	}

	if _, err := fmt.Fprintf(w, "%-*s  %*s  %10s\n", idxWidth, "", nameWidth, "Feature", "Importance"); err != nil {
		return err
	}
	for _, fi := range ranking {
		if _, err := fmt.Fprintf(w, "%-*d  %*s  %10.6f\n", idxWidth, fi.Index, nameWidth, fi.Feature, fi.Importance); err != nil {
			return err
		}
	}
	return nil
}
