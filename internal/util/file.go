package util

import (
	"os"
	"path/filepath"
)

// EnsureDir creates path and its parents if needed.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}

// WriteFile writes data to path, creating the parent directory first.
func WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := EnsureDir(dir); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
