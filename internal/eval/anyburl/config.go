package anyburl

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/ini.v1"
)

const (
	rootSection        = "root"
	KeyPathPredictions = "PATH_PREDICTIONS"
)

type ConfigError struct {
	Path string
	Key  string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("config %s: %s: %v", e.Path, e.Key, e.Err)
	}
	return fmt.Sprintf("config %s: missing key %s", e.Path, e.Key)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// PredictionPaths reads an AnyBURL config file and returns the prediction
// files named by PATH_PREDICTIONS.
func PredictionPaths(configPath string) ([]string, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, &ConfigError{Path: configPath, Key: KeyPathPredictions, Err: err}
	}
	return ParsePredictionPaths(data, configPath)
}

// ParsePredictionPaths parses sectionless INI content. A synthetic [root]
// section is injected before parsing since the tool's files have none.
func ParsePredictionPaths(data []byte, name string) ([]string, error) {
	content := append([]byte("["+rootSection+"]\n"), data...)
	cfg, err := ini.LoadSources(ini.LoadOptions{
		Insensitive:         true,
		IgnoreInlineComment: true,
		IgnoreContinuation:  true,
	}, content)
	if err != nil {
		return nil, &ConfigError{Path: name, Key: KeyPathPredictions, Err: err}
	}

	section := cfg.Section(rootSection)
	key := strings.ToLower(KeyPathPredictions)
	if !section.HasKey(key) {
		return nil, &ConfigError{Path: name, Key: KeyPathPredictions}
	}

	return ExpandPaths(section.Key(key).String()), nil
}

// ExpandPaths expands "prefix|s1,s2,..." into prefix+s1, prefix+s2, ...
// A value without "|" is returned as a single path. Anything after a second
// "|" is ignored.
func ExpandPaths(value string) []string {
	if !strings.Contains(value, "|") {
		return []string{value}
	}

	parts := strings.Split(value, "|")
	prefix := parts[0]
	suffixes := strings.Split(parts[1], ",")

	paths := make([]string, 0, len(suffixes))
	for _, s := range suffixes {
		paths = append(paths, prefix+s)
	}
	return paths
}
