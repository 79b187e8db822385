package driver

import (
	"context"
	"time"

	"cargosort/internal/project"
	"cargosort/internal/trace"
)

// cacheLookup marks res as Cached when a sorted verdict for this content and
// these options is on disk. Only check mode consults the cache.
func cacheLookup(ctx context.Context, path string, data []byte, opts Options, res *Result) (project.Digest, bool) {
	if opts.Cache == nil || opts.Mode != ModeCheck {
		return project.Digest{}, false
	}
	key, err := cacheKey(data, opts)
	if err != nil {
		return project.Digest{}, false
	}
	var payload DiskPayload
	hit, err := opts.Cache.Get(key, &payload)
	if err != nil || !hit {
		trace.Point(ctx, trace.ScopeManifest, "cache-miss", path)
		return key, true
	}
	if !payload.Sorted || (opts.CheckFormat && !(payload.CheckedFormat && payload.Stable)) {
		return key, true
	}
	trace.Point(ctx, trace.ScopeManifest, "cache-hit", path)
	res.Sorted = true
	res.Cached = true
	return key, true
}

func storeVerdict(ctx context.Context, key project.Digest, path string, opts Options, res *Result) {
	payload := &DiskPayload{
		Path:          path,
		Key:           key,
		Sorted:        res.Sorted,
		CheckedFormat: opts.CheckFormat,
		Stable:        res.Stability != nil && res.Stability.OK(),
		CheckedAt:     time.Now().Unix(),
	}
	if err := opts.Cache.Put(key, payload); err != nil {
		trace.Point(ctx, trace.ScopeManifest, "cache-put-failed", err.Error())
	}
}
