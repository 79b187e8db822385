package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ManifestName is the manifest file looked up inside directories.
const ManifestName = "Cargo.toml"

var ErrNoManifest = errors.New("no Cargo.toml found")

// FindManifest accepts a manifest file or a directory holding Cargo.toml and
// returns the absolute manifest path.
func FindManifest(path string) (string, error) {
	if path == "" {
		path = "."
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %q: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", path, ErrNoManifest)
		}
		return "", fmt.Errorf("failed to stat %q: %w", path, err)
	}
	if !info.IsDir() {
		return abs, nil
	}
	candidate := filepath.Join(abs, ManifestName)
	if !isFile(candidate) {
		return "", fmt.Errorf("%s: %w", path, ErrNoManifest)
	}
	return candidate, nil
}

// FindWorkspaceRoot walks up from startDir to the first Cargo.toml declaring
// [workspace].
func FindWorkspaceRoot(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if isFile(candidate) {
			ws, err := LoadWorkspace(candidate)
			if err != nil {
				return "", false, err
			}
			if ws.Declared {
				return candidate, true, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
