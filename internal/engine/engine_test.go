package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"cargosort/internal/ast"
	"cargosort/internal/diag"
	"cargosort/internal/format"
	"cargosort/internal/parser"
	"cargosort/internal/sorter"
	"cargosort/internal/source"
	"cargosort/internal/testkit"
)

func parseSource(t *testing.T, src string) *ast.Document {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("Cargo.toml", []byte(src))
	doc, err := parser.Parse(fs.Get(id), parser.Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func process(t *testing.T, src string, cfg format.Config, opts Options) Result {
	t.Helper()
	res, err := Process(context.Background(), parseSource(t, src), cfg, opts)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	return res
}

const manifest = `[package]
name = "demo"

[dev-dependencies]
pretty = "1"

[dependencies]
# json
serde_json = "1"
anyhow = "1"

[dependencies.zed]
version = "2"

[dependencies.alpha]
version = "1"
`

func TestProcessFormats(t *testing.T) {
	res := process(t, manifest, format.DefaultConfig(), Options{Format: true})
	if res.Sorted || !res.Changed {
		t.Fatalf("expected a change: %+v", res.Outcome)
	}
	want := `[package]
name = "demo"

[dev-dependencies]
pretty = "1"

[dependencies]
anyhow = "1"
# json
serde_json = "1"

[dependencies.alpha]
version = "1"

[dependencies.zed]
version = "2"
`
	if diff := cmp.Diff(want, string(res.Text)); diff != "" {
		t.Fatalf("Process mismatch (-want +got):\n%s", diff)
	}
}

func TestProcessTableOrder(t *testing.T) {
	cfg := format.DefaultConfig()
	cfg.TableOrder = []string{"package", "dependencies", "dev-dependencies"}
	res := process(t, manifest, cfg, Options{Format: true})
	doc := res.Doc
	var got []string
	for _, h := range doc.Headers() {
		got = append(got, h.Key.String())
	}
	want := []string{"package", "dependencies", "dependencies.alpha", "dependencies.zed", "dev-dependencies"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("table order (-want +got):\n%s", diff)
	}

	res = process(t, manifest, cfg, Options{Format: true, TableOrder: []string{"dev-dependencies"}})
	if first := res.Doc.Headers()[0].Key.String(); first != "dev-dependencies" {
		t.Fatalf("--order must override config, first table = %q", first)
	}
}

func TestProcessIdempotent(t *testing.T) {
	first := process(t, manifest, format.DefaultConfig(), Options{Format: true})
	second := process(t, string(first.Text), format.DefaultConfig(), Options{Format: true})
	if !second.Sorted || second.Changed {
		t.Fatalf("second pass changed: %+v", second.Outcome)
	}
	if diff := cmp.Diff(string(first.Text), string(second.Text)); diff != "" {
		t.Fatalf("not idempotent (-first +second):\n%s", diff)
	}
}

func TestProcessPreserveKeepsSortedFileByteExact(t *testing.T) {
	src := "[dependencies]\na   =   \"1\"   # odd spacing\nb = { version=\"1\" }\n"
	res := process(t, src, format.DefaultConfig(), Options{})
	if !res.Sorted {
		t.Fatal("expected sorted")
	}
	if string(res.Text) != src {
		t.Fatalf("preserve changed bytes: %q", res.Text)
	}
}

func TestProcessGroupingConflict(t *testing.T) {
	cfg := format.DefaultConfig()
	cfg.AllowBlankLines = false
	src := "[dependencies]\nc = \"1\"\n\nb = \"1\"\na = \"1\"\n"

	res := process(t, src, cfg, Options{Grouped: true, Format: true})
	if !res.GroupingIgnored {
		t.Fatal("expected GroupingIgnored")
	}
	if len(res.Warnings) != 1 || res.Warnings[0].Code != diag.SortGroupingIgnored {
		t.Fatalf("warnings = %+v", res.Warnings)
	}
	if got, want := string(res.Text), "[dependencies]\na = \"1\"\nb = \"1\"\nc = \"1\"\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	res = process(t, src, cfg, Options{Grouped: true})
	if res.GroupingIgnored {
		t.Fatal("no conflict without formatting")
	}
	if got, want := string(res.Text), "[dependencies]\nc = \"1\"\n\na = \"1\"\nb = \"1\"\n"; got != want {
		t.Fatalf("grouped preserve: got %q, want %q", got, want)
	}
}

func TestProcessGroupingConflictZeroBlankLines(t *testing.T) {
	cfg := format.DefaultConfig()
	cfg.MaxBlankLines = 0
	src := "[dependencies]\nc = 1\n\nb = 1\na = 1\n"

	res := process(t, src, cfg, Options{Grouped: true, Format: true})
	if !res.GroupingIgnored {
		t.Fatal("expected GroupingIgnored")
	}
	if len(res.Warnings) != 1 || res.Warnings[0].Code != diag.SortGroupingIgnored {
		t.Fatalf("warnings = %+v", res.Warnings)
	}
	want := "[dependencies]\na = 1\nb = 1\nc = 1\n"
	if diff := cmp.Diff(want, string(res.Text)); diff != "" {
		t.Fatalf("Process mismatch (-want +got):\n%s", diff)
	}

	second := process(t, string(res.Text), cfg, Options{Grouped: true, Format: true})
	if !second.Sorted || second.Changed {
		t.Fatalf("second pass changed: %+v", second.Outcome)
	}
	if diff := cmp.Diff(want, string(second.Text)); diff != "" {
		t.Fatalf("not idempotent (-first +second):\n%s", diff)
	}
}

func TestProcessFormatCollapsesBlankLinesInSortedTable(t *testing.T) {
	src := "[dependencies]\na = 1\n\nb = 2\n\n[package]\nname = \"x\"\n\nversion = \"1\"\n"

	res := process(t, src, format.DefaultConfig(), Options{Format: true})
	if !res.Sorted || res.Changed {
		t.Fatalf("expected already sorted: %+v", res.Outcome)
	}
	want := "[dependencies]\na = 1\nb = 2\n\n[package]\nname = \"x\"\n\nversion = \"1\"\n"
	if diff := cmp.Diff(want, string(res.Text)); diff != "" {
		t.Fatalf("Process mismatch (-want +got):\n%s", diff)
	}

	res = process(t, src, format.DefaultConfig(), Options{})
	if string(res.Text) != src {
		t.Fatalf("preserve mode changed bytes: %q", res.Text)
	}

	res = process(t, src, format.DefaultConfig(), Options{Format: true, Grouped: true})
	if string(res.Text) != src {
		t.Fatalf("grouped formatting must keep the boundary: %q", res.Text)
	}
}

func TestProcessAmbiguous(t *testing.T) {
	doc := parseSource(t, "[dependencies]\na = \"1\"\n")
	doc.Order = append(doc.Order, doc.Order[0])
	_, err := Process(context.Background(), doc, format.DefaultConfig(), Options{Format: true})
	if !errors.Is(err, sorter.ErrAmbiguousOrdering) {
		t.Fatalf("expected ErrAmbiguousOrdering, got %v", err)
	}
}

func TestCheckFormat(t *testing.T) {
	st, err := CheckFormat(context.Background(), parseSource(t, manifest), format.DefaultConfig())
	if err != nil {
		t.Fatalf("CheckFormat: %v", err)
	}
	if !st.Stable || !st.SemanticsPreserved {
		t.Fatalf("stability = %+v", st)
	}
}

func TestCheckFormatUnstable(t *testing.T) {
	doc := parseSource(t, "[dependencies]\na = 1\n")
	doc.EntriesOf(doc.Order[0])[0].Value.Raw = "1    # x"

	st, err := CheckFormat(context.Background(), doc, format.DefaultConfig())
	if !errors.Is(err, format.ErrUnstableFormatting) {
		t.Fatalf("expected ErrUnstableFormatting, got %v", err)
	}
	if st.Stable {
		t.Fatalf("stability = %+v", st)
	}
}

func TestProcessTestdataManifests(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "testdata", "manifests", "*.toml"))
	if err != nil || len(paths) == 0 {
		t.Fatalf("no testdata manifests: %v", err)
	}
	cfg := format.DefaultConfig()
	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			src, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			fs := source.NewFileSet()
			file := fs.Get(fs.AddVirtual(path, src))
			doc, err := parser.Parse(file, parser.Options{})
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if err := testkit.CheckSpanInvariants(doc, file); err != nil {
				t.Fatalf("spans: %v", err)
			}
			if _, err := CheckFormat(context.Background(), doc, cfg); err != nil {
				t.Fatalf("CheckFormat: %v", err)
			}

			first := process(t, string(src), cfg, Options{Format: true})
			second := process(t, string(first.Text), cfg, Options{Format: true})
			if !second.Sorted {
				t.Fatalf("formatted output is not sorted:\n%s", first.Text)
			}
			if diff := cmp.Diff(string(first.Text), string(second.Text)); diff != "" {
				t.Fatalf("second pass changed output (-first +second):\n%s", diff)
			}
		})
	}
}
