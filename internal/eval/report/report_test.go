package report

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DjordjeVuckovic/linkeval/internal/eval/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResults() metrics.Results {
	return metrics.Results{
		metrics.MeanReciprocalRank: metrics.ScalarValue(0.4321),
		metrics.HitsAtK:            metrics.AtKValue(map[int]float64{1: 0.25, 10: 0.75}),
		metrics.HitsAtKRel: {PerRelation: map[string]metrics.Value{
			"GENE_DIS": metrics.AtKValue(map[int]float64{1: 0.5, 10: 1}),
		}},
		metrics.MeanReciprocalRankRel: {PerRelation: map[string]metrics.Value{
			"GENE_DIS": metrics.ScalarValue(0.6),
		}},
		metrics.ROC: metrics.CurveValue([]float64{0, 0.5, 1}, []float64{0, 1, 1}),
	}
}

func TestFileWriter_RoundTrip(t *testing.T) {
	for _, name := range []string{DefaultJSONName, DefaultYAMLName} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			w := NewFileWriter(path)

			require.NoError(t, w.Write(context.Background(), sampleResults()))

			got, err := ReadFile(path)
			require.NoError(t, err)

			mrr, ok := got.Scalar(metrics.MeanReciprocalRank)
			require.True(t, ok)
			assert.InDelta(t, 0.4321, mrr, 1e-12)
			assert.InDelta(t, 0.75, got[metrics.HitsAtK].AtK[10], 1e-12)
			assert.InDelta(t, 0.5, got[metrics.HitsAtKRel].PerRelation["GENE_DIS"].AtK[1], 1e-12)
			assert.Equal(t, []float64{0, 0.5, 1}, got[metrics.ROC].Curve.X)
		})
	}
}

func TestNewFileWriter_Format(t *testing.T) {
	assert.Equal(t, FormatYAML, NewFileWriter("out/metrics.yml").Format)
	assert.Equal(t, FormatJSON, NewFileWriter("out/metrics.json").Format)
	assert.Equal(t, FormatJSON, NewFileWriter("out/metrics").Format)
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	WriteTable(sampleResults(), &buf)
	out := buf.String()

	assert.Contains(t, out, "hits@1")
	assert.Contains(t, out, "hits@10")
	assert.Contains(t, out, "0.4321")
	assert.Contains(t, out, "Per-Relation Results")
	assert.Contains(t, out, "GENE_DIS")
	assert.Contains(t, out, "Hits@10")
	assert.Contains(t, out, "0.6000")
	assert.Contains(t, out, "roc")
}

type failingWriter struct{}

func (failingWriter) Write(context.Context, metrics.Results) error {
	return errors.New("disk full")
}

func TestMultiWriter(t *testing.T) {
	var buf bytes.Buffer
	mw := NewMultiWriter(NewTableWriter(&buf), failingWriter{})

	err := mw.Write(context.Background(), sampleResults())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.NotEmpty(t, buf.String())
}
