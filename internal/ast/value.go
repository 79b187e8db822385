package ast

import (
	"cargosort/internal/source"
	"cargosort/internal/token"
)

type ValueKind uint8

const (
	ValueScalar ValueKind = iota // number, bool, date-time
	ValueString
	ValueArray
	ValueInlineTable
)

// Value is a TOML value as written. Scalars and strings keep their raw text;
// they are never rewritten.
type Value struct {
	Kind ValueKind
	Span source.Span
	Raw  string           // ValueScalar, ValueString
	Str  token.StringKind // ValueString
	Text string           // decoded ValueString contents

	Elems         []Elem  // ValueArray
	Trailing      Trivia  // comments after the last element
	TrailingComma bool    // source had a comma after the last element
	Multiline     bool    // source spanned several lines
	Fields        []Field // ValueInlineTable
}

// Elem is an array element with its comments.
type Elem struct {
	Value   *Value
	Leading Trivia // comment lines above the element
	Comment string // same-line comment after the element
}

// Field is a key/value pair of an inline table.
type Field struct {
	Key   Key
	Value *Value
}

// HasComments reports whether the value or any nested array carries comments.
func (v *Value) HasComments() bool {
	if v == nil {
		return false
	}
	switch v.Kind {
	case ValueArray:
		if !v.Trailing.Empty() {
			return true
		}
		for _, e := range v.Elems {
			if e.Comment != "" || len(e.Leading.Comments()) > 0 || e.Value.HasComments() {
				return true
			}
		}
	case ValueInlineTable:
		for _, f := range v.Fields {
			if f.Value.HasComments() {
				return true
			}
		}
	}
	return false
}

// HasMultilineString reports whether a multi-line string occurs anywhere in v.
func (v *Value) HasMultilineString() bool {
	if v == nil {
		return false
	}
	switch v.Kind {
	case ValueString:
		return v.Str.Multiline()
	case ValueArray:
		for _, e := range v.Elems {
			if e.Value.HasMultilineString() {
				return true
			}
		}
	case ValueInlineTable:
		for _, f := range v.Fields {
			if f.Value.HasMultilineString() {
				return true
			}
		}
	}
	return false
}

// AllStrings reports whether v is an array whose elements are all strings.
func (v *Value) AllStrings() bool {
	if v == nil || v.Kind != ValueArray {
		return false
	}
	for _, e := range v.Elems {
		if e.Value.Kind != ValueString {
			return false
		}
	}
	return true
}
