// Package testkit holds structural checks shared by parser and engine tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"cargosort/internal/ast"
	"cargosort/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a freshly
// parsed document:
// 1) every record span is non-empty, points at sf and stays within its content
// 2) every value span is contained in its entry span
// 3) records appear in source order: root entries, then each header followed by its entries
// 4) Raw of a clean record is the source text starting at the record's line
func CheckSpanInvariants(doc *ast.Document, sf *source.File) error {
	if doc == nil || sf == nil {
		return fmt.Errorf("nil document or file")
	}
	if doc.File != sf.ID {
		return fmt.Errorf("document points to different file id: got=%d want=%d", doc.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var prev uint32
	check := func(what string, sp source.Span, raw string) error {
		if sp.End <= sp.Start {
			return fmt.Errorf("%s: empty span %v", what, sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("%s: span file mismatch: got=%d want=%d", what, sp.File, sf.ID)
		}
		if sp.End > lenContent {
			return fmt.Errorf("%s: span end beyond content: %d > %d", what, sp.End, lenContent)
		}
		if sp.Start < prev {
			return fmt.Errorf("%s: span %v starts before the previous record ended at %d", what, sp, prev)
		}
		prev = sp.End

		from := sf.LineStart(sp.Start)
		if int(from)+len(raw) > len(sf.Content) || string(sf.Content[from:int(from)+len(raw)]) != raw {
			return fmt.Errorf("%s: raw text %q does not match source at offset %d", what, raw, from)
		}
		return nil
	}
	entries := func(id ast.TableID) error {
		for _, e := range doc.EntriesOf(id) {
			what := "entry " + e.Key.Dotted()
			raw := e.Raw
			if e.Dirty {
				raw = ""
			}
			if err := check(what, e.Span, raw); err != nil {
				return err
			}
			if e.Value == nil {
				return fmt.Errorf("%s: missing value", what)
			}
			if v := e.Value.Span; v.Start < e.Span.Start || v.End > e.Span.End {
				return fmt.Errorf("%s: value span %v is outside entry span %v", what, v, e.Span)
			}
		}
		return nil
	}

	if err := entries(doc.Root); err != nil {
		return err
	}
	for i, id := range doc.Order {
		t := doc.Table(id)
		if t.Index != i {
			return fmt.Errorf("header %s: index %d at position %d", t.Header(), t.Index, i)
		}
		if err := check("header "+t.Header(), t.Span, t.Raw); err != nil {
			return err
		}
		if err := entries(id); err != nil {
			return err
		}
	}
	return nil
}
