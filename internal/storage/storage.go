package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/streakstep/internal/constants"
	"github.com/julianstephens/streakstep/internal/utils"
)

// New returns the Provider for backend rooted at dataDir
func New(backend, dataDir string, clock utils.Clock) (Provider, error) {
	switch strings.ToLower(backend) {
	case "", constants.BackendJSON:
		return NewJSONStore(dataDir, clock), nil
	case constants.BackendSQLite:
		return NewSQLiteStore(filepath.Join(dataDir, constants.SQLiteFileName), clock), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q (expected %s or %s)", backend, constants.BackendJSON, constants.BackendSQLite)
}

// ExpandPath resolves a leading ~ to the user's home directory
func ExpandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}

// writeFileAtomic writes data to a temp file in the target directory and
// renames it over path, so readers never observe a partial file.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if tmpPath != "" {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", filepath.Base(path), err)
	}
	tmpPath = ""
	return nil
}
