package lexer

import (
	"cargosort/internal/diag"
	"cargosort/internal/token"
)

// scanString reads any of the four TOML string flavours. Escapes are checked
// but not decoded; the raw text is kept in Token.Text.
func (lx *Lexer) scanString() token.Token {
	q := lx.cursor.Peek()
	switch {
	case q == '"' && lx.cursor.HasPrefix(`"""`):
		return lx.scanMultiline(`"""`, token.MultiLineBasicString)
	case q == '\'' && lx.cursor.HasPrefix(`'''`):
		return lx.scanMultiline(`'''`, token.MultiLineLiteralString)
	case q == '"':
		return lx.scanSingleLine('"', token.BasicString)
	default:
		return lx.scanSingleLine('\'', token.LiteralString)
	}
}

func (lx *Lexer) scanSingleLine(q byte, kind token.StringKind) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening quote
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == q {
			lx.cursor.Bump()
			tok := lx.tokenFrom(token.String, start)
			tok.Str = kind
			return tok
		}
		if b == '\n' {
			break
		}
		if b == '\\' && kind == token.BasicString {
			lx.scanEscape(false)
			continue
		}
		lx.cursor.Bump()
	}
	tok := lx.tokenFrom(token.Invalid, start)
	lx.errLex(diag.LexUnterminatedString, tok.Span, "unterminated string")
	return tok
}

func (lx *Lexer) scanMultiline(delim string, kind token.StringKind) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Skip(3)
	for !lx.cursor.EOF() {
		if lx.cursor.HasPrefix(delim) {
			lx.cursor.Skip(3)
			// до двух кавычек подряд перед закрывающим разделителем принадлежат содержимому
			for extra := 0; extra < 2 && lx.cursor.Peek() == delim[0]; extra++ {
				lx.cursor.Bump()
			}
			tok := lx.tokenFrom(token.String, start)
			tok.Str = kind
			return tok
		}
		if lx.cursor.Peek() == '\\' && kind == token.MultiLineBasicString {
			lx.scanEscape(true)
			continue
		}
		lx.cursor.Bump()
	}
	tok := lx.tokenFrom(token.Invalid, start)
	lx.errLex(diag.LexUnterminatedString, tok.Span, "unterminated multi-line string")
	return tok
}

// scanEscape consumes a backslash sequence starting at the cursor.
func (lx *Lexer) scanEscape(multiline bool) {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '\'
	b := lx.cursor.Peek()
	switch b {
	case 'b', 't', 'n', 'f', 'r', 'e', '"', '\\':
		lx.cursor.Bump()
		return
	case 'u', 'U':
		n := uint32(4)
		if b == 'U' {
			n = 8
		}
		lx.cursor.Bump()
		for i := uint32(0); i < n; i++ {
			if !isHex(lx.cursor.Peek()) {
				lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(start), "invalid unicode escape")
				return
			}
			lx.cursor.Bump()
		}
		return
	}
	if multiline && (b == ' ' || b == '\t' || b == '\n') {
		// line ending backslash
		return
	}
	if b != 0 && b != '\n' {
		lx.cursor.Bump()
	}
	lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(start), "invalid escape sequence")
}
