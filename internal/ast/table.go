package ast

import "cargosort/internal/source"

// Table is a header table ([a.b] or [[a.b]]) or the implicit root table.
type Table struct {
	Key      Key
	Array    bool // [[a.b]]
	Implicit bool // root table; has no header
	Leading  Trivia
	Comment  string // same-line comment after the header
	Raw      string // header line as written
	Entries  []EntryID
	Span     source.Span
	Index    int // position among headers as parsed; root is -1
}

// Header renders the normalized header line without comment.
func (t *Table) Header() string {
	if t.Array {
		return "[[" + t.Key.String() + "]]"
	}
	return "[" + t.Key.String() + "]"
}

type Tables struct {
	Arena *Arena[Table]
}

func NewTables(capHint uint) *Tables {
	if capHint == 0 {
		capHint = 1 << 4
	}
	return &Tables{Arena: NewArena[Table](capHint)}
}

func (t *Tables) New(table Table) TableID {
	return TableID(t.Arena.Allocate(table))
}

func (t *Tables) Get(id TableID) *Table {
	return t.Arena.Get(uint32(id))
}
