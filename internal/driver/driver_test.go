package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"cargosort/internal/format"
	"cargosort/internal/parser"
)

const unsorted = "[dependencies]\nserde = \"1\"\nanyhow = \"1\"\n"

func writeManifestFile(t *testing.T, dir, content string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "Cargo.toml")
	if err := os.WriteFile(path, []byte(content), 0o640); err != nil {
		t.Fatal(err)
	}
	return path
}

func baseOptions(mode Mode) Options {
	return Options{Mode: mode, Config: format.DefaultConfig(), Format: true, Jobs: 2}
}

func TestSortPathsWrite(t *testing.T) {
	dir := t.TempDir()
	path := writeManifestFile(t, dir, unsorted)

	results, err := SortPaths(context.Background(), []string{dir}, baseOptions(ModeWrite))
	if err != nil {
		t.Fatalf("SortPaths: %v", err)
	}
	if len(results) != 1 || results[0].Err != nil {
		t.Fatalf("results = %+v", results)
	}
	r := results[0]
	if r.Sorted || !r.Written {
		t.Fatalf("expected a rewrite, got %+v", r)
	}
	data, _ := os.ReadFile(path)
	if got, want := string(data), "[dependencies]\nanyhow = \"1\"\nserde = \"1\"\n"; got != want {
		t.Fatalf("file = %q, want %q", got, want)
	}
	info, _ := os.Stat(path)
	if info.Mode().Perm() != 0o640 {
		t.Fatalf("mode = %v", info.Mode())
	}
}

func TestSortPathsCheckDoesNotWrite(t *testing.T) {
	dir := t.TempDir()
	path := writeManifestFile(t, dir, unsorted)

	results, err := SortPaths(context.Background(), []string{path}, baseOptions(ModeCheck))
	if err != nil {
		t.Fatalf("SortPaths: %v", err)
	}
	if results[0].Sorted || !results[0].Failed(ModeCheck) {
		t.Fatalf("expected unsorted, got %+v", results[0])
	}
	data, _ := os.ReadFile(path)
	if string(data) != unsorted {
		t.Fatal("check mode must not write")
	}
}

func TestSortPathsPrint(t *testing.T) {
	dir := t.TempDir()
	writeManifestFile(t, dir, unsorted)
	results, err := SortPaths(context.Background(), []string{dir}, baseOptions(ModePrint))
	if err != nil {
		t.Fatalf("SortPaths: %v", err)
	}
	if got := string(results[0].Output); got != "[dependencies]\nanyhow = \"1\"\nserde = \"1\"\n" {
		t.Fatalf("output = %q", got)
	}
}

func TestSortPathsWorkspace(t *testing.T) {
	root := t.TempDir()
	writeManifestFile(t, root, "[workspace]\nmembers = [\"crates/*\"]\n")
	writeManifestFile(t, filepath.Join(root, "crates", "b"), unsorted)
	writeManifestFile(t, filepath.Join(root, "crates", "a"), "[dependencies]\nanyhow = \"1\"\n")

	var (
		mu     sync.Mutex
		events []Event
	)
	opts := baseOptions(ModeCheck)
	opts.Workspace = true
	opts.Progress = sinkFunc(func(ev Event) {
		mu.Lock()
		events = append(events, ev)
		mu.Unlock()
	})

	results, err := SortPaths(context.Background(), []string{root}, opts)
	if err != nil {
		t.Fatalf("SortPaths: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	wantSorted := []bool{true, true, false}
	for i, r := range results {
		if r.Err != nil || r.Sorted != wantSorted[i] {
			t.Fatalf("result %d (%s): sorted=%v err=%v", i, r.Path, r.Sorted, r.Err)
		}
	}
	finals := 0
	for _, ev := range events {
		if ev.Status.Final() {
			finals++
		}
	}
	if finals != 3 {
		t.Fatalf("expected 3 final events, got %d", finals)
	}
}

func TestSortPathsReportsParseErrors(t *testing.T) {
	dir := t.TempDir()
	writeManifestFile(t, dir, "[dependencies\nserde = \"1\"\n")
	results, err := SortPaths(context.Background(), []string{dir}, baseOptions(ModeCheck))
	if err != nil {
		t.Fatalf("SortPaths: %v", err)
	}
	r := results[0]
	if !errors.Is(r.Err, parser.ErrMalformedDocument) {
		t.Fatalf("expected ErrMalformedDocument, got %v", r.Err)
	}
	if r.Diagnostics == nil || !r.Diagnostics.HasErrors() {
		t.Fatal("expected diagnostics")
	}
}

func TestSortPathsMissingManifest(t *testing.T) {
	results, err := SortPaths(context.Background(), []string{t.TempDir()}, baseOptions(ModeCheck))
	if err != nil {
		t.Fatalf("SortPaths: %v", err)
	}
	if len(results) != 1 || results[0].Err == nil {
		t.Fatalf("results = %+v", results)
	}
}

func TestCheckModeUsesCache(t *testing.T) {
	dir := t.TempDir()
	writeManifestFile(t, dir, "[dependencies]\nanyhow = \"1\"\n")
	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	opts := baseOptions(ModeCheck)
	opts.Cache = cache
	opts.CheckFormat = true

	first, err := SortPaths(context.Background(), []string{dir}, opts)
	if err != nil || first[0].Cached || !first[0].Sorted {
		t.Fatalf("first run: %+v, %v", first, err)
	}
	second, err := SortPaths(context.Background(), []string{dir}, opts)
	if err != nil || !second[0].Cached || !second[0].Sorted {
		t.Fatalf("second run: %+v, %v", second, err)
	}

	opts.Grouped = true
	third, err := SortPaths(context.Background(), []string{dir}, opts)
	if err != nil || third[0].Cached {
		t.Fatalf("changed options must miss the cache: %+v, %v", third, err)
	}

	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	opts.Grouped = false
	fourth, err := SortPaths(context.Background(), []string{dir}, opts)
	if err != nil || fourth[0].Cached {
		t.Fatalf("dropped cache must miss: %+v, %v", fourth, err)
	}
}

func TestSortPathsCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := SortPaths(ctx, []string{t.TempDir()}, baseOptions(ModeCheck)); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

type sinkFunc func(Event)

func (f sinkFunc) OnEvent(ev Event) { f(ev) }
