package parser

import (
	"cargosort/internal/ast"
	"cargosort/internal/diag"
	"cargosort/internal/lexer"
	"cargosort/internal/token"
)

// parseValue разбирает значение. Лексер должен быть в ModeValue.
func (p *Parser) parseValue() (*ast.Value, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.String:
		p.advance()
		text, _ := unquote(tok)
		return &ast.Value{Kind: ast.ValueString, Span: tok.Span, Raw: tok.Text, Str: tok.Str, Text: text}, true
	case token.Scalar:
		p.advance()
		if !validScalar(tok.Text) {
			p.err(diag.SynExpectValue, tok.Span, "invalid value "+quote(tok.Text))
			return nil, false
		}
		return &ast.Value{Kind: ast.ValueScalar, Span: tok.Span, Raw: tok.Text}, true
	case token.LBracket:
		return p.parseArray()
	case token.LBrace:
		return p.parseInlineTable()
	}
	p.errTok(tok, diag.SynExpectValue, "expected value, got "+tok.Kind.String())
	return nil, false
}

// parseArray разбирает массив, сохраняя комментарии элементов.
// Комментарий на той же строке, что и элемент, принадлежит элементу;
// остальные: следующему элементу или хвосту массива.
func (p *Parser) parseArray() (*ast.Value, bool) {
	open := p.advance()
	arr := &ast.Value{Kind: ast.ValueArray}
	var pending []ast.TriviaLine
	needComma := false
	sameLine := -1

	for {
		tok := p.lx.Peek()
		switch tok.Kind {
		case token.Newline:
			p.advance()
			arr.Multiline = true
			sameLine = -1
		case token.Comment:
			p.advance()
			if sameLine >= 0 && arr.Elems[sameLine].Comment == "" {
				arr.Elems[sameLine].Comment = tok.Text
			} else {
				pending = append(pending, ast.TriviaLine{Text: tok.Text, Raw: tok.Text})
			}
		case token.Comma:
			if !needComma {
				p.err(diag.SynUnexpectedToken, tok.Span, "unexpected ',' in array")
				return nil, false
			}
			p.advance()
			needComma = false
			arr.TrailingComma = true
		case token.RBracket:
			closing := p.advance()
			arr.Trailing = ast.Trivia{Lines: pending}
			arr.Span = open.Span.Cover(closing.Span)
			return arr, true
		case token.EOF:
			p.err(diag.SynUnclosedBracket, open.Span, "unclosed array")
			return nil, false
		default:
			if needComma {
				p.errTok(tok, diag.SynUnexpectedToken, "expected ',' or ']' in array, got "+tok.Kind.String())
				return nil, false
			}
			elem, ok := p.parseValue()
			if !ok {
				return nil, false
			}
			arr.Elems = append(arr.Elems, ast.Elem{Value: elem, Leading: ast.Trivia{Lines: pending}})
			pending = nil
			needComma = true
			arr.TrailingComma = false
			sameLine = len(arr.Elems) - 1
		}
	}
}

// parseInlineTable разбирает `{ a = 1, b.c = 2 }`; перевод строки внутри запрещён.
func (p *Parser) parseInlineTable() (*ast.Value, bool) {
	open := p.advance()
	tbl := &ast.Value{Kind: ast.ValueInlineTable}
	seen := newKeySet()

	p.lx.SetMode(lexer.ModeKey)
	defer p.lx.SetMode(lexer.ModeValue)

	if p.at(token.RBrace) {
		closing := p.advance()
		tbl.Span = open.Span.Cover(closing.Span)
		return tbl, true
	}
	for {
		key, ok := p.parseKey()
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.Equals, diag.SynExpectEquals, "expected '=' after key "+key.String()); !ok {
			return nil, false
		}
		p.lx.SetMode(lexer.ModeValue)
		val, ok := p.parseValue()
		if !ok {
			return nil, false
		}
		p.lx.SetMode(lexer.ModeKey)
		p.checkKey(seen, key)
		tbl.Fields = append(tbl.Fields, ast.Field{Key: key, Value: val})

		tok := p.lx.Peek()
		switch tok.Kind {
		case token.Comma:
			p.advance()
			if next := p.lx.Peek(); next.Kind == token.RBrace {
				p.err(diag.SynTrailingComma, tok.Span, "trailing comma is not allowed in inline table")
				return nil, false
			}
		case token.RBrace:
			closing := p.advance()
			tbl.Span = open.Span.Cover(closing.Span)
			return tbl, true
		case token.Newline, token.Comment:
			p.err(diag.SynInlineTableNewline, tok.Span, "inline table must be on a single line")
			return nil, false
		case token.EOF:
			p.err(diag.SynUnclosedBrace, open.Span, "unclosed inline table")
			return nil, false
		default:
			p.errTok(tok, diag.SynUnexpectedToken, "expected ',' or '}' in inline table, got "+tok.Kind.String())
			return nil, false
		}
	}
}

// validScalar отсекает явный мусор; числа и даты глубже не проверяются.
func validScalar(s string) bool {
	switch s {
	case "true", "false", "inf", "+inf", "-inf", "nan", "+nan", "-nan":
		return true
	}
	c := s[0]
	if c == '+' || c == '-' {
		if len(s) == 1 {
			return false
		}
		c = s[1]
	}
	return c >= '0' && c <= '9'
}

func unquote(tok token.Token) (string, error) {
	return lexer.Unquote(tok.Text, tok.Str)
}
