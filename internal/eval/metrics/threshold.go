package metrics

import (
	"errors"
	"fmt"
	"sort"

	"github.com/DjordjeVuckovic/linkeval/internal/eval/prediction"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
)

var ErrNotMonotonic = errors.New("x values are neither increasing nor decreasing")

// Flatten concatenates labels and confidences of every record, head side
// before tail side, into two index-aligned sequences.
func Flatten(records []prediction.Record) (labels []int, scores []float64) {
	for _, rec := range records {
		labels = append(labels, rec.Head.Labels...)
		scores = append(scores, rec.Head.Confidences...)
		labels = append(labels, rec.Tail.Labels...)
		scores = append(scores, rec.Tail.Confidences...)
	}
	return labels, scores
}

// cumulativeCounts sweeps a decision threshold over the distinct scores in
// descending order and returns the cumulative false and true positive
// counts at each threshold.
func cumulativeCounts(labels []int, scores []float64) (fps, tps, thresholds []float64) {
	if len(scores) == 0 {
		return nil, nil, nil
	}

	sorted := make([]float64, len(scores))
	copy(sorted, scores)
	inds := make([]int, len(scores))
	floats.Argsort(sorted, inds)

	var tp, fp float64
	for i := len(sorted) - 1; i >= 0; i-- {
		if labels[inds[i]] > 0 {
			tp++
		} else {
			fp++
		}
		if i == 0 || sorted[i-1] != sorted[i] {
			tps = append(tps, tp)
			fps = append(fps, fp)
			thresholds = append(thresholds, sorted[i])
		}
	}
	return fps, tps, thresholds
}

// CalcROCCurve returns the false positive rate and true positive rate at each
// distinct score threshold, starting from the (0, 0) point.
func CalcROCCurve(labels []int, scores []float64) (fpr, tpr []float64) {
	fps, tps, _ := cumulativeCounts(labels, scores)

	fpr = make([]float64, 0, len(fps)+1)
	tpr = make([]float64, 0, len(tps)+1)
	fpr = append(fpr, 0)
	tpr = append(tpr, 0)
	if len(fps) == 0 {
		return fpr, tpr
	}

	negatives := fps[len(fps)-1]
	positives := tps[len(tps)-1]
	for i := range fps {
		fpr = append(fpr, safeDiv(fps[i], negatives))
		tpr = append(tpr, safeDiv(tps[i], positives))
	}
	return fpr, tpr
}

// CalcPRCurve returns precision and recall at each distinct score threshold.
// Points are ordered by decreasing recall, stop at the first threshold that
// reaches full recall, and end with precision 1 at recall 0.
func CalcPRCurve(labels []int, scores []float64) (precision, recall []float64) {
	fps, tps, _ := cumulativeCounts(labels, scores)
	if len(tps) == 0 {
		return []float64{1}, []float64{0}
	}

	positives := tps[len(tps)-1]
	last := sort.SearchFloat64s(tps, positives)

	precision = make([]float64, 0, last+2)
	recall = make([]float64, 0, last+2)
	for i := last; i >= 0; i-- {
		precision = append(precision, tps[i]/(tps[i]+fps[i]))
		if positives == 0 {
			recall = append(recall, 1)
		} else {
			recall = append(recall, tps[i]/positives)
		}
	}
	precision = append(precision, 1)
	recall = append(recall, 0)
	return precision, recall
}

// AUC integrates y over x with the trapezoidal rule. x must be monotonic.
func AUC(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, fmt.Errorf("auc: length mismatch %d != %d", len(x), len(y))
	}
	if len(x) < 2 {
		return 0, nil
	}

	if sort.Float64sAreSorted(x) {
		return integrate.Trapezoidal(x, y), nil
	}

	rx, ry := reversed(x), reversed(y)
	if !sort.Float64sAreSorted(rx) {
		return 0, ErrNotMonotonic
	}
	return integrate.Trapezoidal(rx, ry), nil
}

// UniqueByPrecision keeps the first (precision, recall) pair for every
// distinct precision value and returns the pairs ordered by precision.
func UniqueByPrecision(precision, recall []float64) ([]float64, []float64) {
	firstIdx := make(map[float64]int, len(precision))
	for i, p := range precision {
		if _, ok := firstIdx[p]; !ok {
			firstIdx[p] = i
		}
	}

	ps := make([]float64, 0, len(firstIdx))
	for p := range firstIdx {
		ps = append(ps, p)
	}
	sort.Float64s(ps)

	rs := make([]float64, len(ps))
	for i, p := range ps {
		rs[i] = recall[firstIdx[p]]
	}
	return ps, rs
}

// CalcPRAUC integrates the precision-recall curve after collapsing runs of
// identical precision with UniqueByPrecision.
func CalcPRAUC(precision, recall []float64) (float64, error) {
	ps, rs := UniqueByPrecision(precision, recall)
	return AUC(ps, rs)
}

// EvaluateThreshold computes the requested curve and area metrics over the
// flattened labels and confidences of all records.
func EvaluateThreshold(set Set, records []prediction.Record) (Results, error) {
	labels, scores := Flatten(records)
	results := make(Results)

	if set.Has(ROC) {
		fpr, tpr := CalcROCCurve(labels, scores)
		results[ROC] = CurveValue(fpr, tpr)
	}
	if set.Has(PRCurve) {
		p, r := CalcPRCurve(labels, scores)
		results[PRCurve] = CurveValue(p, r)
	}

	if set.Has(ROCAUC) {
		var fpr, tpr []float64
		if v, ok := results[ROC]; ok && v.Curve != nil {
			fpr, tpr = v.Curve.X, v.Curve.Y
		} else {
			fpr, tpr = CalcROCCurve(labels, scores)
		}
		auc, err := AUC(fpr, tpr)
		if err != nil {
			return nil, fmt.Errorf("roc auc: %w", err)
		}
		results[ROCAUC] = ScalarValue(auc)
	}

	if set.Has(PRAUC) {
		var p, r []float64
		if v, ok := results[PRCurve]; ok && v.Curve != nil {
			p, r = v.Curve.X, v.Curve.Y
		} else {
			p, r = CalcPRCurve(labels, scores)
		}
		auc, err := CalcPRAUC(p, r)
		if err != nil {
			return nil, fmt.Errorf("pr auc: %w", err)
		}
		results[PRAUC] = ScalarValue(auc)
	}

	return results, nil
}

func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

func reversed(s []float64) []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}
