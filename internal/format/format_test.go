package format

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"cargosort/internal/ast"
	"cargosort/internal/parser"
	"cargosort/internal/source"
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

func render(t *testing.T, src string, cfg Config) string {
	t.Helper()
	return string(Render(parseSource(t, src), cfg))
}

func TestRenderNormalizesSpacing(t *testing.T) {
	src := "name=\"demo\"\n[dependencies]\n\n\nserde   =   { version=\"1\",features=[\"derive\"] }\n\n\n\nlog=\"0.4\"  # logging\n\n"
	want := "name = \"demo\"\n\n[dependencies]\nserde = { version = \"1\", features = [ \"derive\" ] }\n\nlog = \"0.4\" # logging\n"
	if diff := cmp.Diff(want, render(t, src, DefaultConfig())); diff != "" {
		t.Fatalf("Render mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderBlankLinePolicy(t *testing.T) {
	src := "\n\n# top\n[a]\nx = 1\n\n\n\ny = 2\n[b]\nz = 3\n"

	cfg := DefaultConfig()
	cfg.MaxBlankLines = 2
	want := "# top\n[a]\nx = 1\n\n\ny = 2\n\n[b]\nz = 3\n"
	if diff := cmp.Diff(want, render(t, src, cfg)); diff != "" {
		t.Fatalf("max 2 (-want +got):\n%s", diff)
	}

	cfg.AllowBlankLines = false
	want = "# top\n[a]\nx = 1\ny = 2\n\n[b]\nz = 3\n"
	if diff := cmp.Diff(want, render(t, src, cfg)); diff != "" {
		t.Fatalf("no blanks in tables (-want +got):\n%s", diff)
	}

	cfg.MaxBlankLines = 0
	want = "# top\n[a]\nx = 1\ny = 2\n[b]\nz = 3\n"
	if diff := cmp.Diff(want, render(t, src, cfg)); diff != "" {
		t.Fatalf("zero blank lines (-want +got):\n%s", diff)
	}
}

func TestRenderNoBlankAfterHeader(t *testing.T) {
	got := render(t, "[a]\n\n\n# c\nx = 1\n", DefaultConfig())
	if want := "[a]\n# c\nx = 1\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRenderArrayWrapping(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxArrayLineLen = 20
	src := "members = [\"crates/alpha\", \"crates/beta\"]\nshort = [1,2]\n"
	want := "members = [\n    \"crates/alpha\",\n    \"crates/beta\",\n]\nshort = [ 1, 2 ]\n"
	if diff := cmp.Diff(want, render(t, src, cfg)); diff != "" {
		t.Fatalf("wrap (-want +got):\n%s", diff)
	}

	cfg.TrailingCommaMultiline = false
	cfg.IndentWidth = 2
	want = "members = [\n  \"crates/alpha\",\n  \"crates/beta\"\n]\nshort = [ 1, 2 ]\n"
	if diff := cmp.Diff(want, render(t, src, cfg)); diff != "" {
		t.Fatalf("no trailing comma (-want +got):\n%s", diff)
	}
}

func TestRenderCompactAndAlwaysComma(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CompactArrays = true
	cfg.CompactInlineTables = true
	cfg.TrailingCommaAlways = true
	cfg.SpaceAroundEq = false
	got := render(t, "a = [ 1, 2 ]\nb = { x = 1 }\nc = []\n", cfg)
	if want := "a=[1, 2,]\nb={x=1}\nc=[]\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRenderArrayComments(t *testing.T) {
	src := "a = [ # head\n  1, # one\n\n  # about two\n  2\n  # tail\n]\n"
	want := "a = [\n    # head\n    1, # one\n    # about two\n    2,\n    # tail\n]\n"
	if diff := cmp.Diff(want, render(t, src, DefaultConfig())); diff != "" {
		t.Fatalf("comments (-want +got):\n%s", diff)
	}
}

func TestRenderNestedArrays(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxArrayLineLen = 12
	got := render(t, "a = [[1, 2], [3333, 4444, 5555]]\n", cfg)
	want := "a = [\n    [ 1, 2 ],\n    [\n        3333,\n        4444,\n        5555,\n    ],\n]\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("nested (-want +got):\n%s", diff)
	}
}

func TestRenderLineEndings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CRLF = true
	if got := render(t, "a = 1\nb = 2", cfg); got != "a = 1\r\nb = 2\r\n" {
		t.Fatalf("crlf: %q", got)
	}
	cfg = DefaultConfig()
	cfg.TrailingNewline = false
	if got := render(t, "a = 1\n\n\n", cfg); got != "a = 1" {
		t.Fatalf("no trailing newline: %q", got)
	}
	if got := render(t, "", DefaultConfig()); got != "" {
		t.Fatalf("empty: %q", got)
	}
}

func TestRenderTrailingComments(t *testing.T) {
	got := render(t, "[a]\nx = 1\n\n\n# end\n\n\n", DefaultConfig())
	if want := "[a]\nx = 1\n\n# end\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRenderPreserveIsIdentity(t *testing.T) {
	cases := []string{
		"",
		"\n",
		"a = 1",
		"a=1   # c\n\n\n[b]   # hdr\n  x = [\n 1,\n   2 ]\n\n# end",
		"\uFEFF[package]\r\nname = \"x\"\r\n",
		"s = '''\nraw\n'''\n   \n",
	}
	for _, src := range cases {
		got := string(RenderPreserve(parseSource(t, src), DefaultConfig()))
		if got != src {
			t.Fatalf("RenderPreserve(%q) = %q", src, got)
		}
	}
}

func TestRenderPreserveMovedHeaders(t *testing.T) {
	doc := parseSource(t, "[b]\nx = 1\n[a]\ny = 2\n")
	doc.Order[0], doc.Order[1] = doc.Order[1], doc.Order[0]
	got := string(RenderPreserve(doc, DefaultConfig()))
	if want := "[a]\ny = 2\n\n[b]\nx = 1\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRenderPreserveDirtyEntry(t *testing.T) {
	doc := parseSource(t, "[workspace]\nmembers   = [\"b\",\"a\"]   # all\nresolver = \"2\"\n")
	e := doc.EntriesOf(doc.Order[0])[0]
	e.Value.Elems[0], e.Value.Elems[1] = e.Value.Elems[1], e.Value.Elems[0]
	e.Dirty = true
	got := string(RenderPreserve(doc, DefaultConfig()))
	if want := "[workspace]\nmembers = [ \"a\", \"b\" ] # all\nresolver = \"2\"\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestCheckStability(t *testing.T) {
	srcs := []string{
		"[package]\nname = \"x\"\n\n[dependencies]\nserde = { version = \"1\", features = [\"derive\"] }\n",
		"a = [ # c\n  1,\n]\nf = nan\n[[bin]]\nname = \"a\"\n[[bin]]\nname = \"b\"\n",
		"s = \"\"\"\nline\n\"\"\"\nm = [\"\"\"\nx\"\"\", 'y']\n",
	}
	for _, src := range srcs {
		st := CheckStability(parseSource(t, src), DefaultConfig())
		if !st.OK() {
			t.Fatalf("CheckStability(%q) = %+v", src, st)
		}
		if err := st.Err(); err != nil {
			t.Fatalf("Err() = %v", err)
		}
	}
}

func TestStabilityErr(t *testing.T) {
	st := Stability{Stable: false, SemanticsPreserved: true, Reason: "second formatting pass differs at line 3"}
	err := st.Err()
	if !errors.Is(err, ErrUnstableFormatting) {
		t.Fatalf("expected ErrUnstableFormatting, got %v", err)
	}
	if !strings.Contains(err.Error(), "line 3") {
		t.Fatalf("reason missing: %v", err)
	}
}

func TestCheckStabilityDetectsSecondPassDrift(t *testing.T) {
	doc := parseSource(t, "[dependencies]\na = 1\n")
	doc.EntriesOf(doc.Order[0])[0].Value.Raw = "1    # x"

	st := CheckStability(doc, DefaultConfig())
	if st.Stable {
		t.Fatalf("expected unstable output, got %+v", st)
	}
	if !st.SemanticsPreserved {
		t.Fatalf("values did not change: %s", st.Reason)
	}
	err := st.Err()
	if !errors.Is(err, ErrUnstableFormatting) {
		t.Fatalf("expected ErrUnstableFormatting, got %v", err)
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("reason missing the line: %v", err)
	}
}

func TestSameValuesDetectsChange(t *testing.T) {
	same, reason := sameValues([]byte("a = 1\n"), []byte("a = 2\n"))
	if same || reason == "" {
		t.Fatalf("expected a difference, got same=%v reason=%q", same, reason)
	}
	if same, _ := sameValues([]byte("a = 1\nb = 2\n"), []byte("b = 2\na = 1\n")); !same {
		t.Fatal("order must not matter")
	}
}
