package sorter

import (
	"cargosort/internal/ast"
)

// Binding is the trivia of one entry, split before any reordering.
// Boundary is the prefix up to and including the last blank line; it marks
// the start of a group and stays at the group's position. Own is the comment
// block directly above the entry and always moves with it.
type Binding struct {
	Entry    ast.EntryID
	Key      ast.Key
	Boundary ast.Trivia
	Own      ast.Trivia
}

// Bind computes bindings for entries in their current order.
func Bind(doc *ast.Document, ids []ast.EntryID) []Binding {
	out := make([]Binding, len(ids))
	for i, id := range ids {
		e := doc.Entry(id)
		boundary, own := e.Leading.Split()
		out[i] = Binding{Entry: id, Key: e.Key, Boundary: boundary, Own: own}
	}
	return out
}

// Runs splits bindings into contiguous groups; an entry with a non-empty
// boundary starts a new group.
func Runs(bindings []Binding) [][]Binding {
	var out [][]Binding
	start := 0
	for i := 1; i < len(bindings); i++ {
		if !bindings[i].Boundary.Empty() {
			out = append(out, bindings[start:i])
			start = i
		}
	}
	if len(bindings) > 0 {
		out = append(out, bindings[start:])
	}
	return out
}
