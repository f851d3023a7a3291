package spec

import (
	"fmt"
	"os"
	"time"

	"github.com/DjordjeVuckovic/linkeval/internal/eval/metrics"
	"github.com/DjordjeVuckovic/linkeval/internal/eval/report"
	"github.com/DjordjeVuckovic/linkeval/internal/eval/runner"
	"gopkg.in/yaml.v3"
)

func LoadFromFile(path string) (*JobSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read job file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*JobSpec, error) {
	var s JobSpec
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse job YAML: %w", err)
	}
	if err := validate(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

func validate(s *JobSpec) error {
	if s.Evaluate.Config == "" {
		return fmt.Errorf("job has no evaluate.config")
	}
	if _, err := metrics.ParseSet(s.Evaluate.Metrics); err != nil {
		return fmt.Errorf("job metrics: %w", err)
	}
	for _, k := range s.Evaluate.KValues {
		if k <= 0 {
			return fmt.Errorf("job k_values: k must be positive, got %d", k)
		}
	}
	if (s.Tool.LearnConfig != "" || s.Tool.ApplyConfig != "") && s.Tool.Dir == "" {
		return fmt.Errorf("job runs the tool but has no tool.dir")
	}
	if s.Tool.Timeout != "" {
		if _, err := time.ParseDuration(s.Tool.Timeout); err != nil {
			return fmt.Errorf("job tool.timeout: %w", err)
		}
	}

	if s.Name == "" {
		s.Name = "evaluation"
	}
	if s.Output == "" {
		s.Output = runner.DefaultOutputFolder
	}
	if len(s.Evaluate.KValues) == 0 {
		s.Evaluate.KValues = metrics.DefaultKValues
	}
	if len(s.Results.Files) == 0 && !s.Results.Table && !s.Results.Store {
		s.Results.Files = []string{report.DefaultJSONName}
	}
	return nil
}

// MetricSet returns the parsed metric selection. Parse has already
// validated the names.
func (s *JobSpec) MetricSet() metrics.Set {
	set, _ := metrics.ParseSet(s.Evaluate.Metrics)
	return set
}

// ToolTimeout returns zero when no timeout is configured.
func (s *JobSpec) ToolTimeout() time.Duration {
	d, _ := time.ParseDuration(s.Tool.Timeout)
	return d
}

func (s *JobSpec) RunnerConfig() runner.Config {
	return runner.Config{
		WorkingDir:   s.WorkingDir,
		OutputFolder: s.Output,
		KValues:      s.Evaluate.KValues,
	}
}
