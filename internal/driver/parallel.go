package driver

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"cargosort/internal/trace"
)

// ErrNoManifests is returned when no path resolved to a manifest.
var ErrNoManifests = errors.New("no manifests to sort")

// SortPaths sorts the manifests named by paths concurrently. Results follow
// the resolved manifest order; per-manifest failures are reported in
// Result.Err, the returned error is reserved for cancellation and setup.
func SortPaths(ctx context.Context, paths []string, opts Options) ([]Result, error) {
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "sort-paths")
	defer span.End(opts.Mode.String())

	files, failed, err := collectManifests(ctx, paths, opts.Workspace)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		if len(failed) > 0 {
			return failed, nil
		}
		return nil, ErrNoManifests
	}

	for _, f := range files {
		emit(opts.Progress, Event{File: f, Stage: StageParse, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индекс i уникален для каждой горутины, мьютекс не нужен
	results := make([]Result, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = sortManifest(gctx, path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, fmt.Errorf("sort: %w", err)
	}
	span.WithExtra("manifests", fmt.Sprint(len(files)))
	return append(results, failed...), nil
}
