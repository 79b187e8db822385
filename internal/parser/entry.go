package parser

import (
	"cargosort/internal/ast"
	"cargosort/internal/diag"
	"cargosort/internal/lexer"
	"cargosort/internal/token"
)

// parseEntry разбирает строку `key = value [# comment]` в текущую таблицу.
func (p *Parser) parseEntry() bool {
	key, ok := p.parseKey()
	if !ok {
		return false
	}
	if _, ok := p.expect(token.Equals, diag.SynExpectEquals, "expected '=' after key "+key.String()); !ok {
		return false
	}
	p.lx.SetMode(lexer.ModeValue)
	val, ok := p.parseValue()
	if !ok {
		return false
	}
	comment, ok := p.lineTail()
	if !ok {
		return false
	}

	p.defineKey(p.current, key)
	p.arenas.PushEntry(p.current, ast.Entry{
		Key:     key,
		Value:   val,
		Leading: p.takeTrivia(),
		Comment: comment,
		Raw:     p.lineText(key.Span.Start, p.lastSpan.End),
		Span:    key.Span.Cover(val.Span),
	})
	return true
}
