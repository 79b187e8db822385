package ast

type (
	TableID uint32
	EntryID uint32
)

const (
	NoTableID TableID = 0
	NoEntryID EntryID = 0
)

func (id TableID) IsValid() bool { return id != NoTableID }
func (id EntryID) IsValid() bool { return id != NoEntryID }
