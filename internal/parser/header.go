package parser

import (
	"cargosort/internal/ast"
	"cargosort/internal/diag"
	"cargosort/internal/token"
)

// parseHeader разбирает строку `[a.b]` или `[[a.b]]` и делает таблицу текущей.
func (p *Parser) parseHeader() bool {
	open := p.advance()
	array := open.Kind == token.DoubleLBracket

	key, ok := p.parseKey()
	if !ok {
		return false
	}
	closeKind, closeText := token.RBracket, "]"
	if array {
		closeKind, closeText = token.DoubleRBracket, "]]"
	}
	if _, ok := p.expect(closeKind, diag.SynUnclosedHeader, "expected '"+closeText+"' after table name "+key.String()); !ok {
		return false
	}
	comment, ok := p.lineTail()
	if !ok {
		return false
	}

	span := open.Span.Cover(p.lastSpan)
	p.defineTable(key, array, span)
	p.current = p.arenas.NewTable(p.doc, ast.Table{
		Key:     key,
		Array:   array,
		Leading: p.takeTrivia(),
		Comment: comment,
		Raw:     p.lineText(open.Span.Start, p.lastSpan.End),
		Span:    span,
	})
	return true
}

// lineTail съедает необязательный комментарий и конец строки.
func (p *Parser) lineTail() (string, bool) {
	comment := ""
	tok := p.lx.Peek()
	if tok.Kind == token.Comment {
		p.advance()
		comment = tok.Text
		tok = p.lx.Peek()
	}
	switch tok.Kind {
	case token.Newline:
		p.advance()
		return comment, true
	case token.EOF:
		return comment, true
	}
	p.errTok(tok, diag.SynExpectNewline, "expected end of line, got "+tok.Kind.String())
	return comment, false
}

// parseKey разбирает ключ из сегментов, разделённых '.'. Лексер должен быть в ModeKey.
func (p *Parser) parseKey() (ast.Key, bool) {
	var key ast.Key
	for {
		tok := p.lx.Peek()
		if !tok.IsKeyStart() {
			msg := "expected key"
			if len(key.Segments) > 0 {
				msg = "expected key after '.'"
			}
			p.errTok(tok, diag.SynExpectKey, msg)
			return key, false
		}
		p.advance()
		key.Segments = append(key.Segments, p.keySegment(tok))
		if !p.at(token.Dot) {
			break
		}
		p.advance()
	}
	key.Span = key.Segments[0].Span.Cover(key.Segments[len(key.Segments)-1].Span)
	return key, true
}

func (p *Parser) keySegment(tok token.Token) ast.KeySegment {
	seg := ast.KeySegment{Raw: tok.Text, Name: tok.Text, Span: tok.Span}
	if tok.Kind == token.String {
		if name, err := unquote(tok); err == nil {
			seg.Name = name
		}
	}
	return seg
}
