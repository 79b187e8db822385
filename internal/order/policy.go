package order

import (
	"strings"
)

type Class uint8

const (
	// PassThrough tables keep their entry order and trivia untouched.
	PassThrough Class = iota
	// Sortable tables have their entries sorted by key.
	Sortable
)

func (c Class) String() string {
	if c == Sortable {
		return "sortable"
	}
	return "pass-through"
}

// Classification is the per-table result of Policy.Classify.
type Classification struct {
	Class Class
	// Root is the first path segment.
	Root string
	// SortableRoot tables are positioned lexically inside their root group.
	SortableRoot bool
	// Rank is the index of the first matching table-order entry, or
	// len(TableOrder) when nothing matched.
	Rank int
	// ViaTarget is set when a target.<cfg>.<name> table matched the rank
	// through its <name> tail; such tables follow the entry's own tables.
	ViaTarget bool
}

// Policy is immutable and safe to share between goroutines.
type Policy struct {
	Matcher    Matcher
	TableOrder [][]string
}

// New builds a policy from table-order prefixes such as "package" or
// "workspace.dependencies".
func New(tableOrder []string) Policy {
	p := Policy{Matcher: DefaultMatcher}
	for _, t := range tableOrder {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		p.TableOrder = append(p.TableOrder, strings.Split(t, "."))
	}
	return p
}

// HasTableOrder reports whether a table-order list was configured.
func (p Policy) HasTableOrder() bool {
	return len(p.TableOrder) > 0
}

// Classify computes everything the sorter needs about a header table.
func (p Policy) Classify(path []string) Classification {
	c := Classification{Rank: len(p.TableOrder)}
	if len(path) == 0 {
		return c
	}
	c.Root = path[0]
	c.SortableRoot = p.Matcher.isSortableRoot(c.Root)
	if p.IsSortableTable(path) {
		c.Class = Sortable
	}
	c.Rank, c.ViaTarget = p.rank(path)
	return c
}

// IsSortableTable reports whether the entries of the table at path are sorted.
func (p Policy) IsSortableTable(path []string) bool {
	switch {
	case len(path) == 1:
		return p.Matcher.isHeading(path[0])
	case len(path) == 2:
		return p.Matcher.isHeadingKey(path) && !p.Matcher.IsSortedArray(path)
	case len(path) == 3 && path[0] == Target:
		return p.Matcher.isHeading(path[2])
	}
	return false
}

func (p Policy) rank(path []string) (int, bool) {
	for i, prefix := range p.TableOrder {
		if hasPrefix(path, prefix) {
			return i, false
		}
	}
	if len(path) >= 3 && path[0] == Target {
		for i, prefix := range p.TableOrder {
			if hasPrefix(path[2:], prefix) {
				return i, true
			}
		}
	}
	return len(p.TableOrder), false
}

func hasPrefix(path, prefix []string) bool {
	if len(prefix) > len(path) {
		return false
	}
	for i := range prefix {
		if path[i] != prefix[i] {
			return false
		}
	}
	return true
}
