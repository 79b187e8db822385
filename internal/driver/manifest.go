package driver

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"fortio.org/safecast"

	"cargosort/internal/ast"
	"cargosort/internal/diag"
	"cargosort/internal/engine"
	"cargosort/internal/observ"
	"cargosort/internal/parser"
	"cargosort/internal/source"
	"cargosort/internal/trace"
)

func sortManifest(ctx context.Context, path string, opts Options) (res Result) {
	ctx, span := trace.Start(trace.WithManifest(ctx, path), trace.ScopeManifest, "manifest")
	started := time.Now()
	res = Result{Path: path, Timer: observ.NewTimer()}
	defer func() {
		status := finalStatus(res, opts.Mode)
		emit(opts.Progress, Event{File: path, Stage: StageWrite, Status: status, Err: res.Err, Elapsed: time.Since(started)})
		span.WithExtra("status", string(status)).End("")
	}()

	idx := res.Timer.Begin("read")
	data, err := os.ReadFile(path) // #nosec G304 -- path is provided by the caller
	res.Timer.End(idx, "")
	if err != nil {
		res.Err = err
		return res
	}

	key, cacheable := cacheLookup(ctx, path, data, opts, &res)
	if res.Cached {
		return res
	}

	emit(opts.Progress, Event{File: path, Stage: StageParse, Status: StatusWorking})
	idx = res.Timer.Begin("parse")
	doc, err := parseManifest(path, data, opts, &res)
	res.Timer.End(idx, "")
	if err != nil {
		res.Err = err
		return res
	}

	emit(opts.Progress, Event{File: path, Stage: StageSort, Status: StatusWorking})
	idx = res.Timer.Begin("sort")
	out, err := engine.Process(ctx, doc, opts.Config, engine.Options{
		Grouped:    opts.Grouped,
		Format:     opts.Format,
		TableOrder: opts.TableOrder,
	})
	res.Timer.End(idx, "")
	if err != nil {
		res.Err = fmt.Errorf("%s: %w", path, err)
		return res
	}
	res.Sorted = out.Sorted
	res.GroupingIgnored = out.GroupingIgnored
	res.Output = out.Text
	res.Differs = !bytes.Equal(data, out.Text)
	for _, w := range out.Warnings {
		res.Diagnostics.Add(w)
	}

	if opts.CheckFormat {
		emit(opts.Progress, Event{File: path, Stage: StageCheckFormat, Status: StatusWorking})
		idx = res.Timer.Begin("check-format")
		err := checkFormat(ctx, doc, opts, &res)
		res.Timer.End(idx, "")
		if err != nil {
			res.Err = fmt.Errorf("%s: %w", path, err)
			return res
		}
	}

	switch opts.Mode {
	case ModeCheck:
		if cacheable && res.Sorted {
			storeVerdict(ctx, key, path, opts, &res)
		}
		res.Output = nil
	case ModeWrite:
		if res.Differs {
			emit(opts.Progress, Event{File: path, Stage: StageWrite, Status: StatusWorking})
			idx = res.Timer.Begin("write")
			res.Err = writeManifest(path, res.Output)
			res.Timer.End(idx, "")
			res.Written = res.Err == nil
		}
	}
	return res
}

func parseManifest(path string, data []byte, opts Options, res *Result) (*ast.Document, error) {
	maxDiag := opts.MaxDiagnostics
	if maxDiag <= 0 {
		maxDiag = 256
	}
	res.Diagnostics = diag.NewBag(maxDiag)
	res.FileSet = source.NewFileSet()
	file := res.FileSet.Get(res.FileSet.AddContent(path, data))

	maxErrors, convErr := safecast.Conv[uint](res.Diagnostics.Cap())
	if convErr != nil {
		maxErrors = 0
	}
	parsed := parser.ParseFile(file, ast.NewBuilder(ast.Hints{}), parser.Options{
		Reporter:  diag.BagReporter{Bag: res.Diagnostics},
		MaxErrors: maxErrors,
	})
	if parsed.Errors > 0 {
		return nil, fmt.Errorf("%s: %w (%d errors)", path, parser.ErrMalformedDocument, parsed.Errors)
	}
	return parsed.Doc, nil
}

func writeManifest(path string, content []byte) error {
	mode := os.FileMode(0o644)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode()
	}
	if err := os.WriteFile(path, content, mode.Perm()); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func finalStatus(res Result, mode Mode) Status {
	switch {
	case res.Err != nil:
		return StatusError
	case res.Written:
		return StatusWritten
	case res.Sorted:
		return StatusSorted
	case mode == ModeCheck:
		return StatusUnsorted
	}
	return StatusSorted
}
