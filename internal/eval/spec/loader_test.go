package spec

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/linkeval/internal/eval/metrics"
	"github.com/DjordjeVuckovic/linkeval/internal/eval/report"
	"github.com/DjordjeVuckovic/linkeval/internal/eval/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("full job", func(t *testing.T) {
		yaml := `
name: hetionet-anyburl
working_dir: /data/run
output: eval-out
splits:
  train: splits/train.tsv
  test: splits/test.tsv
tool:
  dir: tools/anyburl
  learn_config: config-learn.properties
  apply_config: config-apply.properties
  max_heap: 8G
  timeout: 2h
evaluate:
  config: config-eval.properties
  metrics: [hits@k, mrr, roc_auc]
  k_values: [1, 5]
results:
  files: [metrics.json, metrics.yaml]
  table: true
`
		s, err := Parse([]byte(yaml))
		require.NoError(t, err)
		assert.Equal(t, "hetionet-anyburl", s.Name)
		assert.Equal(t, "splits/train.tsv", s.Splits.Train)
		assert.Empty(t, s.Splits.Valid)
		assert.Equal(t, 2*time.Hour, s.ToolTimeout())
		assert.Equal(t, []int{1, 5}, s.Evaluate.KValues)

		set := s.MetricSet()
		assert.True(t, set.Has(metrics.HitsAtK))
		assert.True(t, set.Has(metrics.ROCAUC))
		assert.False(t, set.Has(metrics.PRCurve))

		cfg := s.RunnerConfig()
		assert.Equal(t, filepath.Join("/data/run", "eval-out"), cfg.OutputDir())
	})

	t.Run("defaults", func(t *testing.T) {
		s, err := Parse([]byte("evaluate:\n  config: cfg.properties\n"))
		require.NoError(t, err)
		assert.Equal(t, runner.DefaultOutputFolder, s.Output)
		assert.Equal(t, metrics.DefaultKValues, s.Evaluate.KValues)
		assert.Equal(t, []string{report.DefaultJSONName}, s.Results.Files)
		assert.Len(t, s.MetricSet(), len(metrics.AllTypes))
		assert.True(t, s.Splits.Empty())
		assert.Zero(t, s.ToolTimeout())
	})

	tests := []struct {
		name string
		yaml string
		msg  string
	}{
		{"no config", "evaluate:\n  metrics: [mrr]\n", "no evaluate.config"},
		{"unknown metric", "evaluate:\n  config: c\n  metrics: [ndcg]\n", "unknown metric"},
		{"bad k", "evaluate:\n  config: c\n  k_values: [0]\n", "must be positive"},
		{"tool without dir", "tool:\n  apply_config: a\nevaluate:\n  config: c\n", "no tool.dir"},
		{"bad timeout", "tool:\n  dir: d\n  timeout: soon\nevaluate:\n  config: c\n", "tool.timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.yaml")
	require.NoError(t, os.WriteFile(path, []byte("evaluate:\n  config: cfg.properties\n"), 0644))

	s, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "cfg.properties", s.Evaluate.Config)

	_, err = LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
