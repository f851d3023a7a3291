package domain

import (
	"time"

	"github.com/DjordjeVuckovic/linkeval/internal/eval/metrics"
	"github.com/google/uuid"
)

type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// Run is one evaluation of a tool config against its prediction files.
type Run struct {
	ID              uuid.UUID       `json:"id" yaml:"id"`
	ConfigPath      string          `json:"config_path" yaml:"config_path"`
	PredictionPaths []string        `json:"prediction_paths" yaml:"prediction_paths"`
	Metrics         []metrics.Type  `json:"metrics" yaml:"metrics"`
	KValues         []int           `json:"k_values" yaml:"k_values"`
	Results         metrics.Results `json:"results" yaml:"results"`
	Status          RunStatus       `json:"status" yaml:"status"`
	Error           string          `json:"error,omitempty" yaml:"error,omitempty"`
	CreatedAt       time.Time       `json:"created_at" yaml:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" yaml:"updated_at"`
}

func NewRun(configPath string, set metrics.Set, ks []int) *Run {
	now := time.Now().UTC()
	return &Run{
		ID:         uuid.New(),
		ConfigPath: configPath,
		Metrics:    set.Types(),
		KValues:    ks,
		Results:    make(metrics.Results),
		Status:     RunStatusRunning,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
