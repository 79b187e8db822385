package ast

import "cargosort/internal/source"

// Entry is a key/value line inside a table.
type Entry struct {
	Key     Key
	Value   *Value
	Leading Trivia
	Comment string // same-line trailing comment, "# ..."
	Raw     string // source lines of the entry without the final '\n'
	Span    source.Span
	Index   int  // position in the table as parsed
	Dirty   bool // value rewritten; Raw is stale
}

// BlankBefore reports how many blank lines precede the entry.
func (e *Entry) BlankBefore() int {
	return e.Leading.BlankLines()
}

type Entries struct {
	Arena *Arena[Entry]
}

func NewEntries(capHint uint) *Entries {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Entries{Arena: NewArena[Entry](capHint)}
}

func (e *Entries) New(entry Entry) EntryID {
	return EntryID(e.Arena.Allocate(entry))
}

func (e *Entries) Get(id EntryID) *Entry {
	return e.Arena.Get(uint32(id))
}
