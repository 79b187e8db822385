package sorter

import (
	"slices"
	"strings"

	"cargosort/internal/ast"
	"cargosort/internal/order"
)

// sortArrays sorts string arrays such as workspace.members. Arrays holding any
// non-string element are left alone. Element comments move with the element.
func sortArrays(doc *ast.Document, m order.Matcher) int {
	n := 0
	visit := func(id ast.TableID) {
		t := doc.Table(id)
		for _, eid := range t.Entries {
			e := doc.Entry(eid)
			path := append(slices.Clone(t.Key.Names()), e.Key.Names()...)
			if !m.IsSortedArray(path) || !e.Value.AllStrings() {
				continue
			}
			if sortStrings(e.Value) {
				e.Dirty = true
				n++
			}
		}
	}
	visit(doc.Root)
	for _, id := range doc.Order {
		if !doc.Table(id).Array {
			visit(id)
		}
	}
	return n
}

func sortStrings(v *ast.Value) bool {
	before := make([]*ast.Value, len(v.Elems))
	for i, e := range v.Elems {
		before[i] = e.Value
	}
	slices.SortStableFunc(v.Elems, func(a, b ast.Elem) int {
		return strings.Compare(a.Value.Text, b.Value.Text)
	})
	for i, e := range v.Elems {
		if e.Value != before[i] {
			return true
		}
	}
	return false
}
