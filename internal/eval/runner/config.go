package runner

import (
	"path/filepath"

	"github.com/DjordjeVuckovic/linkeval/internal/eval/metrics"
)

const DefaultOutputFolder = "evaluation"

type Config struct {
	// WorkingDir anchors relative config and prediction paths. Empty means
	// the process working directory.
	WorkingDir   string
	OutputFolder string
	KValues      []int
}

func DefaultConfig() Config {
	return Config{
		OutputFolder: DefaultOutputFolder,
		KValues:      metrics.DefaultKValues,
	}
}

// OutputDir is the directory results and exported splits are written to.
func (c Config) OutputDir() string {
	return c.resolve(c.OutputFolder)
}

func (c Config) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || c.WorkingDir == "" {
		return path
	}
	return filepath.Join(c.WorkingDir, path)
}
