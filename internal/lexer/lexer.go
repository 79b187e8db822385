package lexer

import (
	"cargosort/internal/diag"
	"cargosort/internal/source"
	"cargosort/internal/token"
)

// Mode selects how ambiguous bytes are scanned.
type Mode uint8

const (
	// ModeKey: '.' separates key segments, "[[" and "]]" are header brackets,
	// unquoted runs are bare keys.
	ModeKey Mode = iota
	// ModeValue: unquoted runs are scalars (numbers, booleans, date-times).
	ModeValue
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	mode   Mode
	look   *token.Token   // 1 элементный буфер для токена
	lookAt Mark           // позиция до leading trivia токена в look
	hold   []token.Trivia // накопленные leading trivia
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// File returns the file being scanned.
func (lx *Lexer) File() *source.File {
	return lx.file
}

// Mode returns the current scanning mode.
func (lx *Lexer) Mode() Mode {
	return lx.mode
}

// SetMode switches the scanning mode. A token peeked under the previous mode
// is discarded and will be rescanned.
func (lx *Lexer) SetMode(m Mode) {
	if lx.mode == m {
		return
	}
	lx.mode = m
	if lx.look != nil {
		lx.cursor.Reset(lx.lookAt)
		lx.look = nil
	}
}

// Next возвращает следующий значимый токен с уже собранным Leading.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.collectLeadingTrivia()

	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan(), Leading: lx.takeHold()}
	}

	var tok token.Token
	ch := lx.cursor.Peek()
	switch {
	case ch == '\n':
		tok = lx.single(token.Newline)
	case ch == '#':
		tok = lx.scanComment()
	case ch == '"' || ch == '\'':
		tok = lx.scanString()
	case ch == '[':
		if lx.mode == ModeKey && lx.cursor.PeekAt(1) == '[' {
			tok = lx.double(token.DoubleLBracket)
		} else {
			tok = lx.single(token.LBracket)
		}
	case ch == ']':
		if lx.mode == ModeKey && lx.cursor.PeekAt(1) == ']' {
			tok = lx.double(token.DoubleRBracket)
		} else {
			tok = lx.single(token.RBracket)
		}
	case ch == '{':
		tok = lx.single(token.LBrace)
	case ch == '}':
		tok = lx.single(token.RBrace)
	case ch == ',':
		tok = lx.single(token.Comma)
	case ch == '=':
		tok = lx.single(token.Equals)
	case ch == '.' && lx.mode == ModeKey:
		tok = lx.single(token.Dot)
	case lx.mode == ModeKey && isBareKeyByte(ch):
		tok = lx.scanBareKey()
	case lx.mode == ModeValue && isScalarByte(ch):
		tok = lx.scanScalar()
	default:
		tok = lx.scanUnknown()
	}

	tok.Leading = lx.takeHold()
	return tok
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	if lx.look != nil {
		return *lx.look
	}
	at := lx.cursor.Mark()
	t := lx.Next()
	lx.look = &t
	lx.lookAt = at
	return t
}

// RestOfLine consumes raw bytes up to (not including) the next '\n'.
// Used by the parser to resynchronise after a syntax error.
func (lx *Lexer) RestOfLine() source.Span {
	if lx.look != nil {
		lx.cursor.Reset(lx.lookAt)
		lx.look = nil
	}
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	return lx.cursor.SpanFrom(start)
}

func (lx *Lexer) takeHold() []token.Trivia {
	h := lx.hold
	lx.hold = nil
	return h
}

func (lx *Lexer) single(k token.Kind) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	return lx.tokenFrom(k, start)
}

func (lx *Lexer) double(k token.Kind) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Skip(2)
	return lx.tokenFrom(k, start)
}

func (lx *Lexer) tokenFrom(k token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: k, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

func (lx *Lexer) scanComment() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		b := lx.cursor.Bump()
		if b < 0x20 && b != '\t' {
			lx.errLex(diag.LexControlChar, lx.cursor.SpanFrom(Mark(lx.cursor.Off-1)), "control character in comment")
		}
	}
	return lx.tokenFrom(token.Comment, start)
}

func (lx *Lexer) scanBareKey() token.Token {
	start := lx.cursor.Mark()
	for isBareKeyByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return lx.tokenFrom(token.BareKey, start)
}

func (lx *Lexer) scanUnknown() token.Token {
	start := lx.cursor.Mark()
	lx.bumpRune()
	tok := lx.tokenFrom(token.Invalid, start)
	lx.errLex(diag.LexUnknownChar, tok.Span, "unexpected character "+quoteText(tok.Text))
	return tok
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}
