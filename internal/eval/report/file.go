package report

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/DjordjeVuckovic/linkeval/internal/eval/metrics"
	"gopkg.in/yaml.v3"
)

const (
	DefaultJSONName = "metrics.json"
	DefaultYAMLName = "metrics.yaml"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FileWriter persists the accumulated results to a single file, replacing
// its content on every write.
type FileWriter struct {
	Path   string
	Format Format
}

// NewFileWriter picks the format from the file extension. Unknown
// extensions fall back to JSON.
func NewFileWriter(path string) *FileWriter {
	format := FormatJSON
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = FormatYAML
	}
	return &FileWriter{Path: path, Format: format}
}

func (w *FileWriter) Write(_ context.Context, results metrics.Results) error {
	var (
		data []byte
		err  error
	)
	switch w.Format {
	case FormatYAML:
		data, err = yaml.Marshal(results)
	default:
		data, err = json.MarshalIndent(results, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}

	if err := os.WriteFile(w.Path, data, 0644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}

// ReadFile loads results previously written by a FileWriter.
func ReadFile(path string) (metrics.Results, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results: %w", err)
	}

	var results metrics.Results
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &results)
	default:
		err = json.Unmarshal(data, &results)
	}
	if err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}
	return results, nil
}
