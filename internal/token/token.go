package token

import (
	"cargosort/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Str     StringKind // only for Kind == String
	Leading []Trivia
}

// IsValue reports whether the token can start a TOML value.
func (t Token) IsValue() bool {
	switch t.Kind {
	case String, Scalar, LBracket, LBrace:
		return true
	default:
		return false
	}
}

// IsKeyStart reports whether the token can start a key.
func (t Token) IsKeyStart() bool {
	return t.Kind == BareKey || (t.Kind == String && !t.Str.Multiline())
}

// IsLineEnd reports whether the token terminates a logical line.
func (t Token) IsLineEnd() bool {
	return t.Kind == Newline || t.Kind == EOF
}
