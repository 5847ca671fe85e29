package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/notehub/pkg/config"
)

// ErrNotFound is returned by FindFile when no directory holds the file.
var ErrNotFound = errors.New("file not found")

// FindFile looks upwards from startDir for a file called name and returns
// its absolute path.
func FindFile(startDir, name string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("%s: %w", name, ErrNotFound)
}

// LoadConfig loads settings from path, or when path is empty from the
// nearest config.FileName above the working directory, if any.
func LoadConfig(path string) (config.Config, error) {
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to get working directory: %w", err)
		}
		if found, err := FindFile(wd, config.FileName); err == nil {
			path = found
		}
	}
	return config.Load(path)
}
