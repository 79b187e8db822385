package ast

import "cargosort/internal/source"

// Document is a parsed manifest. Order lists header tables as they will be
// rendered; the root table always comes first and is not part of Order.
type Document struct {
	File     source.FileID
	Root     TableID
	Order    []TableID
	Trailing Trivia // blank and comment lines after the last record

	CRLF         bool // source used \r\n
	BOM          bool // source started with a UTF-8 BOM
	FinalNewline bool // source ended with a newline

	tables  *Tables
	entries *Entries
}

func (d *Document) Table(id TableID) *Table {
	return d.tables.Get(id)
}

func (d *Document) Entry(id EntryID) *Entry {
	return d.entries.Get(id)
}

// RootTable returns the implicit table holding entries before the first header.
func (d *Document) RootTable() *Table {
	return d.tables.Get(d.Root)
}

// Headers returns header tables in document order.
func (d *Document) Headers() []*Table {
	out := make([]*Table, len(d.Order))
	for i, id := range d.Order {
		out[i] = d.tables.Get(id)
	}
	return out
}

// EntriesOf returns the entries of a table in order.
func (d *Document) EntriesOf(id TableID) []*Entry {
	t := d.tables.Get(id)
	if t == nil {
		return nil
	}
	out := make([]*Entry, len(t.Entries))
	for i, eid := range t.Entries {
		out[i] = d.entries.Get(eid)
	}
	return out
}

// Lookup finds the first non-array header table with exactly this path.
func (d *Document) Lookup(path ...string) (TableID, bool) {
	for _, id := range d.Order {
		t := d.tables.Get(id)
		if !t.Array && t.Key.Len() == len(path) && t.Key.HasPrefix(path) {
			return id, true
		}
	}
	return NoTableID, false
}

// Nested returns header tables strictly below path, in document order.
func (d *Document) Nested(path ...string) []TableID {
	var out []TableID
	for _, id := range d.Order {
		t := d.tables.Get(id)
		if t.Key.Len() > len(path) && t.Key.HasPrefix(path) {
			out = append(out, id)
		}
	}
	return out
}

// Find returns the entry of table whose key equals names.
func (d *Document) Find(table TableID, names ...string) (EntryID, bool) {
	t := d.tables.Get(table)
	if t == nil {
		return NoEntryID, false
	}
	for _, eid := range t.Entries {
		e := d.entries.Get(eid)
		if e.Key.Len() == len(names) && e.Key.HasPrefix(names) {
			return eid, true
		}
	}
	return NoEntryID, false
}
