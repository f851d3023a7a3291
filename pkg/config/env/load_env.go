package env

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads the .env file named by ENV_PATH, falling back to
// defaultPath. Variables already present in the process are kept.
// A missing file is only an error for local runs.
func LoadDotEnv(env string, defaultPath string) error {
	path := os.Getenv("ENV_PATH")
	if path == "" {
		slog.Info("ENV_PATH is not set, using default path", "defaultPath", defaultPath)
		path = defaultPath
	}

	if err := godotenv.Load(path); err != nil {
		if isLocal(env) {
			slog.Error("Failed to load environment variables in local mode", "path", path, "error", err)
			return fmt.Errorf("load %s: %w", path, err)
		}
		slog.Debug("Skipping .env", "path", path, "env", env)
		return nil
	}

	slog.Debug("Loaded .env", "path", path)
	return nil
}

func isLocal(env string) bool {
	return env == "" || strings.EqualFold(env, "local")
}
