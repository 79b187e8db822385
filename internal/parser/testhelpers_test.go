package parser

import (
	"fmt"
	"strings"
	"testing"

	"cargosort/internal/ast"
	"cargosort/internal/diag"
	"cargosort/internal/source"
)

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func parseSource(t *testing.T, src string) (*ast.Document, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("Cargo.toml", []byte(src))
	bag := diag.NewBag(100)
	res := ParseFile(fs.Get(id), ast.NewBuilder(ast.Hints{}), Options{Reporter: diag.BagReporter{Bag: bag}})
	return res.Doc, bag
}

func mustParse(t *testing.T, src string) *ast.Document {
	t.Helper()
	doc, bag := parseSource(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	return doc
}

func keysOf(doc *ast.Document, id ast.TableID) []string {
	var out []string
	for _, e := range doc.EntriesOf(id) {
		out = append(out, e.Key.String())
	}
	return out
}
