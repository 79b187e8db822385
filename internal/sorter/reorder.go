package sorter

import (
	"cmp"
	"fmt"
	"slices"

	"cargosort/internal/ast"
	"cargosort/internal/order"
)

type Options struct {
	Policy  order.Policy
	Grouped bool
	// CollapseBlanks drops blank lines inside sortable tables even when the
	// entry order is already right. Ignored when Grouped is set.
	CollapseBlanks bool
}

// Outcome describes what Reorder did. Changed covers table order, entry
// order and sorted arrays; trivia-only differences never count.
type Outcome struct {
	Changed      bool
	TablesMoved  bool
	TablesSorted int // tables whose entry order changed
	ArraysSorted int
}

// Reorder sorts doc in place.
func Reorder(doc *ast.Document, opts Options) (Outcome, error) {
	var out Outcome

	classes, err := classify(doc, opts.Policy)
	if err != nil {
		return out, err
	}

	newOrder := sortTables(doc, classes)
	if !slices.Equal(newOrder, doc.Order) {
		doc.Order = newOrder
		out.TablesMoved = true
	}

	for _, id := range doc.Order {
		if classes[id].Class != order.Sortable {
			continue
		}
		changed, err := sortEntries(doc, id, opts)
		if err != nil {
			return out, err
		}
		if changed {
			out.TablesSorted++
		}
	}

	out.ArraysSorted = sortArrays(doc, opts.Policy.Matcher)
	out.Changed = out.TablesMoved || out.TablesSorted > 0 || out.ArraysSorted > 0
	return out, nil
}

func classify(doc *ast.Document, policy order.Policy) (map[ast.TableID]order.Classification, error) {
	classes := make(map[ast.TableID]order.Classification, len(doc.Order))
	seen := make(map[string]struct{}, len(doc.Order))
	for _, id := range doc.Order {
		t := doc.Table(id)
		names := t.Key.Names()
		if !t.Array {
			pk := ast.PathKey(names)
			if _, dup := seen[pk]; dup {
				return nil, fmt.Errorf("%w: duplicate table [%s]", ErrAmbiguousOrdering, t.Key.String())
			}
			seen[pk] = struct{}{}
		}
		classes[id] = policy.Classify(names)
	}
	return classes, nil
}

type tableSlot struct {
	id     ast.TableID
	path   []string
	cls    order.Classification
	group  int
	sorted bool
	index  int
}

// sortTables groups tables by root segment in first-appearance order (or by
// table-order rank when configured) and sorts sortable roots lexically.
func sortTables(doc *ast.Document, classes map[ast.TableID]order.Classification) []ast.TableID {
	firstSeen := make(map[string]int)
	hasArray := make(map[string]bool)
	for i, id := range doc.Order {
		t := doc.Table(id)
		root := classes[id].Root
		if _, ok := firstSeen[root]; !ok {
			firstSeen[root] = i
		}
		if t.Array {
			hasArray[root] = true
		}
	}

	slots := make([]tableSlot, len(doc.Order))
	for i, id := range doc.Order {
		cls := classes[id]
		slots[i] = tableSlot{
			id:     id,
			path:   doc.Table(id).Key.Names(),
			cls:    cls,
			group:  firstSeen[cls.Root],
			sorted: cls.SortableRoot && !hasArray[cls.Root],
			index:  i,
		}
	}

	slices.SortStableFunc(slots, func(a, b tableSlot) int {
		if c := cmp.Compare(a.cls.Rank, b.cls.Rank); c != 0 {
			return c
		}
		if a.cls.ViaTarget != b.cls.ViaTarget {
			if a.cls.ViaTarget {
				return 1
			}
			return -1
		}
		if c := cmp.Compare(a.group, b.group); c != 0 {
			return c
		}
		if a.sorted && b.sorted {
			if c := order.ComparePaths(a.path, b.path); c != 0 {
				return c
			}
		}
		return cmp.Compare(a.index, b.index)
	})

	out := make([]ast.TableID, len(slots))
	for i, s := range slots {
		out[i] = s.id
	}
	return out
}

// sortEntries sorts a sortable table's entries by key. In grouped mode each
// run is sorted on its own and its boundary is re-attached to the run's new
// first entry. Otherwise blank lines are dropped when the order changed, so
// no stale group boundary survives, or always under CollapseBlanks.
func sortEntries(doc *ast.Document, id ast.TableID, opts Options) (bool, error) {
	grouped := opts.Grouped
	t := doc.Table(id)
	if !grouped && opts.CollapseBlanks {
		for _, eid := range t.Entries {
			e := doc.Entry(eid)
			e.Leading = e.Leading.WithoutBlanks()
		}
	}
	if len(t.Entries) < 2 {
		return false, nil
	}
	bindings := Bind(doc, t.Entries)
	if err := checkUniqueKeys(t, bindings); err != nil {
		return false, err
	}

	groups := [][]Binding{bindings}
	if grouped {
		groups = Runs(bindings)
	}

	sortedRuns := make([][]Binding, len(groups))
	next := make([]ast.EntryID, 0, len(t.Entries))
	for i, run := range groups {
		s := slices.Clone(run)
		slices.SortStableFunc(s, func(a, b Binding) int {
			return a.Key.Compare(b.Key)
		})
		sortedRuns[i] = s
		for _, b := range s {
			next = append(next, b.Entry)
		}
	}
	if slices.Equal(next, t.Entries) {
		return false, nil
	}

	for i, s := range sortedRuns {
		boundary := groups[i][0].Boundary
		for j, b := range s {
			e := doc.Entry(b.Entry)
			switch {
			case !grouped:
				e.Leading = e.Leading.WithoutBlanks()
			case j == 0:
				e.Leading = boundary.Concat(b.Own)
			default:
				e.Leading = b.Own
			}
		}
	}
	t.Entries = next
	return true, nil
}

func checkUniqueKeys(t *ast.Table, bindings []Binding) error {
	seen := make(map[string]struct{}, len(bindings))
	for _, b := range bindings {
		pk := ast.PathKey(b.Key.Names())
		if _, dup := seen[pk]; dup {
			return fmt.Errorf("%w: duplicate key %s in %s", ErrAmbiguousOrdering, b.Key.String(), tableName(t))
		}
		seen[pk] = struct{}{}
	}
	return nil
}

func tableName(t *ast.Table) string {
	if t.Implicit {
		return "root table"
	}
	return t.Header()
}
