package ast

import (
	"cargosort/internal/source"
)

type Hints struct{ Tables, Entries uint }

type Builder struct {
	Tables  *Tables
	Entries *Entries
}

func NewBuilder(hints Hints) *Builder {
	return &Builder{
		Tables:  NewTables(hints.Tables),
		Entries: NewEntries(hints.Entries),
	}
}

// NewDocument allocates a document with an empty implicit root table.
func (b *Builder) NewDocument(file source.FileID) *Document {
	root := b.Tables.New(Table{Implicit: true, Index: -1})
	return &Document{
		File:    file,
		Root:    root,
		tables:  b.Tables,
		entries: b.Entries,
	}
}

// NewTable allocates a header table and appends it to the document order.
func (b *Builder) NewTable(doc *Document, t Table) TableID {
	t.Index = len(doc.Order)
	id := b.Tables.New(t)
	doc.Order = append(doc.Order, id)
	return id
}

// PushEntry allocates an entry and appends it to table.
func (b *Builder) PushEntry(table TableID, e Entry) EntryID {
	t := b.Tables.Get(table)
	e.Index = len(t.Entries)
	id := b.Entries.New(e)
	t.Entries = append(t.Entries, id)
	return id
}
