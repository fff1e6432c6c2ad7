package ml

import (
	"sort"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"

	"github.com/souqrisk/souqrisk/internal/model"
)

// PrecisionRecallF1 computes the three standard metrics treating `positive`
// as the positive class. Undefined ratios (empty denominators) report 0.
func PrecisionRecallF1(yTrue, yPred []int, positive int) model.ClassMetrics {
	var tp, fp, fn, support int
	for i, truth := range yTrue {
		predPositive := yPred[i] == positive
		truthPositive := truth == positive
		if truthPositive {
			support++
		}
		switch {
		case predPositive && truthPositive:
			tp++
		case predPositive && !truthPositive:
			fp++
		case !predPositive && truthPositive:
			fn++
		}
	}

	m := model.ClassMetrics{Support: support}
	if tp+fp > 0 {
		m.Precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		m.Recall = float64(tp) / float64(tp+fn)
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}
	return m
}

// ROCAUC computes the area under the ROC curve for predicted positive-class
// probabilities against binary labels.
func ROCAUC(yTrue []int, probs []float64) float64 {
	n := len(yTrue)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return probs[order[i]] < probs[order[j]]
	})

	y := make([]float64, n)
	classes := make([]bool, n)
	for rank, i := range order {
		y[rank] = probs[i]
		classes[rank] = yTrue[i] == 1
	}

	tpr, fpr, _ := stat.ROC(nil, y, classes, nil)
	return integrate.Trapezoidal(fpr, tpr)
}
