package ast

import "testing"

func TestKeyCompareSegmentWise(t *testing.T) {
	ordered := []Key{
		NewKey("dependencies"),
		NewKey("dependencies", "alpha"),
		NewKey("dependencies", "beta"),
		NewKey("dependencies", "zed"),
		NewKey("dependencies-extra"),
	}
	for i := 0; i+1 < len(ordered); i++ {
		if c := ordered[i].Compare(ordered[i+1]); c >= 0 {
			t.Fatalf("%q should sort before %q (cmp=%d)", ordered[i], ordered[i+1], c)
		}
	}
	if NewKey("B").Compare(NewKey("a")) >= 0 {
		t.Fatal("ordering must be case-sensitive byte order")
	}
}

func TestKeyStringQuotesWhenNeeded(t *testing.T) {
	k := NewKey("target", "cfg(unix)", "dependencies")
	if got := k.String(); got != "target.'cfg(unix)'.dependencies" {
		t.Fatalf("unexpected key %q", got)
	}
	if !k.HasPrefix([]string{"target", "cfg(unix)"}) || k.HasPrefix([]string{"dependencies"}) {
		t.Fatal("HasPrefix mismatch")
	}
}

func TestDocumentLookup(t *testing.T) {
	b := NewBuilder(Hints{})
	doc := b.NewDocument(0)
	deps := b.NewTable(doc, Table{Key: NewKey("dependencies")})
	b.NewTable(doc, Table{Key: NewKey("dependencies", "serde")})
	b.PushEntry(deps, Entry{Key: NewKey("anyhow")})

	if id, ok := doc.Lookup("dependencies"); !ok || id != deps {
		t.Fatalf("lookup failed: %d %v", id, ok)
	}
	if n := doc.Nested("dependencies"); len(n) != 1 {
		t.Fatalf("expected one nested table, got %d", len(n))
	}
	if _, ok := doc.Find(deps, "anyhow"); !ok {
		t.Fatal("entry not found")
	}
	if doc.Table(doc.Order[1]).Index != 1 {
		t.Fatal("tables must record their parse position")
	}
}
