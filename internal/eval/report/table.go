package report

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/DjordjeVuckovic/linkeval/internal/eval/metrics"
)

// TableWriter renders results as aligned text tables.
type TableWriter struct {
	W io.Writer
}

func NewTableWriter(w io.Writer) *TableWriter {
	return &TableWriter{W: w}
}

func (t *TableWriter) Write(_ context.Context, results metrics.Results) error {
	WriteTable(results, t.W)
	return nil
}

func WriteTable(results metrics.Results, w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "\n=== Link Prediction Evaluation ===\n\n")

	writeSummaryTable(tw, results)
	writeRelationTable(tw, results)
	writeCurveTable(tw, results)

	tw.Flush()
}

func writeSummaryTable(tw *tabwriter.Writer, results metrics.Results) {
	fmt.Fprintln(tw, "Metric\tValue")
	fmt.Fprintln(tw, "---\t---")

	for _, t := range sortedTypes(results) {
		v := results[t]
		switch {
		case v.Scalar != nil:
			fmt.Fprintf(tw, "%s\t%.4f\n", t, *v.Scalar)
		case v.AtK != nil:
			for _, k := range sortedKs(v.AtK) {
				fmt.Fprintf(tw, "%s\t%.4f\n", strings.Replace(string(t), "@k", fmt.Sprintf("@%d", k), 1), v.AtK[k])
			}
		}
	}

	fmt.Fprintln(tw)
}

func writeRelationTable(tw *tabwriter.Writer, results metrics.Results) {
	hits := results[metrics.HitsAtKRel].PerRelation
	mrr := results[metrics.MeanReciprocalRankRel].PerRelation
	if len(hits) == 0 && len(mrr) == 0 {
		return
	}

	relations := make(map[string]struct{})
	var ks []int
	for rel, v := range hits {
		relations[rel] = struct{}{}
		if ks == nil {
			ks = sortedKs(v.AtK)
		}
	}
	for rel := range mrr {
		relations[rel] = struct{}{}
	}

	fmt.Fprintf(tw, "Per-Relation Results\n\n")

	header := []string{"Relation"}
	for _, k := range ks {
		header = append(header, fmt.Sprintf("Hits@%d", k))
	}
	if len(mrr) > 0 {
		header = append(header, "MRR")
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	fmt.Fprintln(tw, strings.Join(sep, "\t"))

	for _, rel := range sortedKeys(relations) {
		row := []string{rel}
		for _, k := range ks {
			row = append(row, fmt.Sprintf("%.4f", hits[rel].AtK[k]))
		}
		if len(mrr) > 0 {
			row = append(row, fmtScalar(mrr[rel]))
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	fmt.Fprintln(tw)
}

func writeCurveTable(tw *tabwriter.Writer, results metrics.Results) {
	var curves []metrics.Type
	for _, t := range sortedTypes(results) {
		if results[t].Curve != nil {
			curves = append(curves, t)
		}
	}
	if len(curves) == 0 {
		return
	}

	fmt.Fprintln(tw, "Curve\tPoints")
	fmt.Fprintln(tw, "---\t---")
	for _, t := range curves {
		fmt.Fprintf(tw, "%s\t%d\n", t, len(results[t].Curve.X))
	}
	fmt.Fprintln(tw)
}

func fmtScalar(v metrics.Value) string {
	if v.Scalar == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.4f", *v.Scalar)
}

func sortedTypes(results metrics.Results) []metrics.Type {
	out := make([]metrics.Type, 0, len(results))
	for t := range results {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func sortedKs(m map[int]float64) []int {
	ks := make([]int, 0, len(m))
	for k := range m {
		ks = append(ks, k)
	}
	sort.Ints(ks)
	return ks
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
