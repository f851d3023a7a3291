package anyburl

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const JarName = "AnyBURL-RE.jar"

var (
	ErrUnsupportedOS = errors.New("operating system not supported by IRIFAB")
	ErrToolMissing   = errors.New("tool binary not installed")
)

// Paths locates the learner jar and the rule applier binary.
type Paths struct {
	Jar    string
	Irifab string
}

// IrifabBinaryName returns the applier file name published for goos.
func IrifabBinaryName(goos string) (string, error) {
	switch goos {
	case "linux":
		return "IRIFAB", nil
	case "windows":
		return "IRIFAB.exe", nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedOS, goos)
	}
}

// ResolvePaths returns the expected tool locations inside dir for the
// running platform.
func ResolvePaths(dir string) (Paths, error) {
	return resolvePaths(dir, runtime.GOOS)
}

func resolvePaths(dir, goos string) (Paths, error) {
	name, err := IrifabBinaryName(goos)
	if err != nil {
		return Paths{}, err
	}
	return Paths{
		Jar:    filepath.Join(dir, JarName),
		Irifab: filepath.Join(dir, name),
	}, nil
}

// Verify checks that both tools are present on disk.
func (p Paths) Verify() error {
	for _, path := range []string{p.Jar, p.Irifab} {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("%w: %s", ErrToolMissing, path)
			}
			return fmt.Errorf("stat %s: %w", path, err)
		}
	}
	return nil
}
