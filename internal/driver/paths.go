package driver

import (
	"context"
	"fmt"

	"cargosort/internal/project"
)

// collectManifests resolves each path to a manifest and, in workspace mode,
// appends the members of every root. Unresolvable paths become error results.
func collectManifests(ctx context.Context, paths []string, workspace bool) ([]string, []Result, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}
	var (
		files  []string
		failed []Result
		seen   = make(map[string]struct{})
	)
	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		manifest, err := project.FindManifest(p)
		if err != nil {
			failed = append(failed, Result{Path: p, Err: err})
			continue
		}
		add(manifest)
		if !workspace {
			continue
		}
		members, err := project.WorkspaceMembers(manifest)
		if err != nil {
			failed = append(failed, Result{Path: manifest, Err: fmt.Errorf("workspace: %w", err)})
			continue
		}
		for _, m := range members {
			add(m)
		}
	}
	return files, failed, nil
}

// ResolveManifests returns the manifests SortPaths would process for paths.
func ResolveManifests(ctx context.Context, paths []string, workspace bool) ([]string, error) {
	files, _, err := collectManifests(ctx, paths, workspace)
	return files, err
}
