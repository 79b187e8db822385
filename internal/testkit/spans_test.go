package testkit

import (
	"strings"
	"testing"

	"cargosort/internal/ast"
	"cargosort/internal/parser"
	"cargosort/internal/source"
)

func parse(t *testing.T, src string) (*ast.Document, *source.File) {
	t.Helper()
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("Cargo.toml", []byte(src)))
	doc, err := parser.Parse(f, parser.Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc, f
}

func TestSpanInvariantsHold(t *testing.T) {
	src := strings.Join([]string{
		"# manifest",
		"cargo-features = [\"edition2024\"]",
		"",
		"[package]  # pkg",
		"name = \"demo\"",
		"",
		"[dependencies]",
		"  serde = { version = \"1\", features = [\"derive\"] }",
		"tokio = [",
		"  \"rt\", # runtime",
		"]",
		"",
		"[[bin]]",
		"name = \"demo\"",
		"",
	}, "\n")
	doc, f := parse(t, src)
	if err := CheckSpanInvariants(doc, f); err != nil {
		t.Fatalf("invariants: %v", err)
	}
}

func TestSpanInvariantsDetectReorder(t *testing.T) {
	doc, f := parse(t, "[b]\nx = 1\n[a]\ny = 2\n")
	doc.Order[0], doc.Order[1] = doc.Order[1], doc.Order[0]
	if err := CheckSpanInvariants(doc, f); err == nil {
		t.Fatalf("expected reordered headers to be reported")
	}
}

func TestSpanInvariantsDetectStaleRaw(t *testing.T) {
	doc, f := parse(t, "[a]\nx = 1\n")
	doc.EntriesOf(doc.Order[0])[0].Raw = "x = 2"
	if err := CheckSpanInvariants(doc, f); err == nil {
		t.Fatalf("expected stale raw text to be reported")
	}
}
