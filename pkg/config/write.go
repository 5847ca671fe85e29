package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// TempFilePrefix is the prefix of the temporary file used by WriteTemplate.
const TempFilePrefix = ".notehub-tmp-"

// ErrExists is returned by WriteTemplate when the file is already there.
var ErrExists = errors.New("config file already exists")

// WriteTemplate writes Template() to path. An existing file is only
// replaced when force is set.
func WriteTemplate(path string, force bool) error {
	return publishPrivate(path, []byte(Template()), force)
}

// publishPrivate stages data in a 0600 temp file next to path, then
// publishes it in one step: a rename when replacing is allowed, a hard link
// otherwise, so the existence check and the write cannot race. A watcher on
// the directory never sees a partial file.
func publishPrivate(path string, data []byte, replace bool) error {
	// CreateTemp opens with mode 0600; the token ends up in here.
	tmp, err := os.CreateTemp(filepath.Dir(path), TempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to stage %s: %w", path, err)
	}
	staged := tmp.Name()
	defer os.Remove(staged)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to stage %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to stage %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to stage %s: %w", path, err)
	}

	if replace {
		if err := os.Rename(staged, path); err != nil {
			return fmt.Errorf("failed to replace %s: %w", path, err)
		}
		return nil
	}
	if err := os.Link(staged, path); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%s: %w", path, ErrExists)
		}
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	return nil
}
