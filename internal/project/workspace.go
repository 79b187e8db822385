package project

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// Workspace is the [workspace] section of a root manifest.
type Workspace struct {
	Path     string
	Declared bool
	Members  []string
	Exclude  []string
}

type workspaceManifest struct {
	Workspace struct {
		Members []string `toml:"members"`
		Exclude []string `toml:"exclude"`
	} `toml:"workspace"`
}

// LoadWorkspace decodes the [workspace] section; other sections are ignored.
func LoadWorkspace(path string) (Workspace, error) {
	var m workspaceManifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return Workspace{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return Workspace{
		Path:     path,
		Declared: meta.IsDefined("workspace"),
		Members:  m.Workspace.Members,
		Exclude:  m.Workspace.Exclude,
	}, nil
}

// WorkspaceMembers expands the member globs of the manifest at rootManifest
// and returns the sorted manifest paths of the members. Excluded directories,
// members without a Cargo.toml and the root itself are skipped.
func WorkspaceMembers(rootManifest string) ([]string, error) {
	ws, err := LoadWorkspace(rootManifest)
	if err != nil {
		return nil, err
	}
	root := filepath.Dir(rootManifest)

	excluded := make(map[string]struct{}, len(ws.Exclude))
	for _, pattern := range ws.Exclude {
		dirs, err := expand(root, pattern)
		if err != nil {
			return nil, fmt.Errorf("%s: workspace.exclude: %w", rootManifest, err)
		}
		for _, d := range dirs {
			excluded[d] = struct{}{}
		}
	}

	seen := make(map[string]struct{})
	var out []string
	for _, pattern := range ws.Members {
		dirs, err := expand(root, pattern)
		if err != nil {
			return nil, fmt.Errorf("%s: workspace.members: %w", rootManifest, err)
		}
		for _, d := range dirs {
			if _, skip := excluded[d]; skip || d == root {
				continue
			}
			manifest := filepath.Join(d, ManifestName)
			if _, dup := seen[manifest]; dup || !isFile(manifest) {
				continue
			}
			seen[manifest] = struct{}{}
			out = append(out, manifest)
		}
	}
	slices.Sort(out)
	return out, nil
}

func expand(root, pattern string) ([]string, error) {
	pattern = strings.TrimSuffix(filepath.FromSlash(pattern), string(filepath.Separator))
	full := filepath.Clean(filepath.Join(root, pattern))
	if !strings.ContainsAny(pattern, "*?[") {
		return []string{full}, nil
	}
	matches, err := filepath.Glob(full)
	if err != nil {
		return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
	}
	return matches, nil
}
