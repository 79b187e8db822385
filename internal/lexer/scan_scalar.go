package lexer

import (
	"cargosort/internal/token"
)

// scanScalar reads an unquoted value. Local date followed by a space and a
// time ("1979-05-27 07:32:00") is kept as one token.
func (lx *Lexer) scanScalar() token.Token {
	start := lx.cursor.Mark()
	for isScalarByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	text := lx.file.Content[start:lx.cursor.Off]
	if isLocalDate(text) && lx.cursor.Peek() == ' ' && isDec(lx.cursor.PeekAt(1)) && isDec(lx.cursor.PeekAt(2)) && lx.cursor.PeekAt(3) == ':' {
		lx.cursor.Bump()
		for isScalarByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}
	return lx.tokenFrom(token.Scalar, start)
}

func isLocalDate(b []byte) bool {
	if len(b) != 10 || b[4] != '-' || b[7] != '-' {
		return false
	}
	for i, c := range b {
		if i == 4 || i == 7 {
			continue
		}
		if !isDec(c) {
			return false
		}
	}
	return true
}
