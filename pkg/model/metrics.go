package model

import (
	"sort"
	"strconv"
)

// Accuracy returns the fraction of predictions that match yTrue. Empty input yields 0.
func Accuracy(yTrue, yPred []int) float64 {
	if len(yTrue) == 0 {
		return 0
	}
	c := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			c++
		}
	}
	return float64(c) / float64(len(yTrue))
}

// ClassMetrics are the per-class scores of a classification report.
type ClassMetrics struct {
	Label     string
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// ClassificationReport summarizes predictions per class, in the style of
// scikit-learn's classification_report.
type ClassificationReport struct {
	Classes     []ClassMetrics
	Accuracy    float64
	MacroAvg    ClassMetrics
	WeightedAvg ClassMetrics
	Total       int
}

// NewClassificationReport scores yPred against yTrue. Classes are every label that
// appears in either slice, in ascending order; labels maps a class code to its name
// and falls back to the code when nil or empty. Undefined ratios are reported as 0.
func NewClassificationReport(yTrue, yPred []int, labels func(int) string) *ClassificationReport {
	present := map[int]struct{}{}
	for _, v := range yTrue {
		present[v] = struct{}{}
	}
	for _, v := range yPred {
		present[v] = struct{}{}
	}
	codes := make([]int, 0, len(present))
	for c := range present {
		codes = append(codes, c)
	}
	sort.Ints(codes)

	tp := map[int]int{}
	fp := map[int]int{}
	fn := map[int]int{}
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			tp[yTrue[i]]++
		} else {
			fp[yPred[i]]++
			fn[yTrue[i]]++
		}
	}

	r := &ClassificationReport{
		Accuracy: Accuracy(yTrue, yPred),
		Total:    len(yTrue),
		MacroAvg: ClassMetrics{Label: "macro avg"},
		WeightedAvg: ClassMetrics{
			Label: "weighted avg",
		},
	}
	for _, c := range codes {
		m := ClassMetrics{Label: classLabel(c, labels), Support: tp[c] + fn[c]}
		m.Precision = ratio(tp[c], tp[c]+fp[c])
		m.Recall = ratio(tp[c], tp[c]+fn[c])
		if m.Precision+m.Recall > 0 {
			m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
		}
		r.Classes = append(r.Classes, m)

		r.MacroAvg.Precision += m.Precision
		r.MacroAvg.Recall += m.Recall
		r.MacroAvg.F1 += m.F1
		w := float64(m.Support)
		r.WeightedAvg.Precision += w * m.Precision
		r.WeightedAvg.Recall += w * m.Recall
		r.WeightedAvg.F1 += w * m.F1
	}
	if k := float64(len(codes)); k > 0 {
		r.MacroAvg.Precision /= k
		r.MacroAvg.Recall /= k
		r.MacroAvg.F1 /= k
	}
	if r.Total > 0 {
		t := float64(r.Total)
		r.WeightedAvg.Precision /= t
		r.WeightedAvg.Recall /= t
		r.WeightedAvg.F1 /= t
	}
	r.MacroAvg.Support = r.Total
	r.WeightedAvg.Support = r.Total
	return r
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

func classLabel(code int, labels func(int) string) string {
	if labels != nil {
		if s := labels(code); s != "" {
			return s
		}
	}
	return strconv.Itoa(code)
}
