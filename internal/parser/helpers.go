package parser

import (
	"cargosort/internal/diag"
	"cargosort/internal/source"
	"cargosort/internal/token"
)

// advance: съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF && tok.Kind != token.Newline {
		p.lastSpan = tok.Span
	}
	return tok
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

// expect: ожидаем конкретный токен. Если нет: репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	tok := p.lx.Peek()
	if tok.Kind == k {
		return p.advance(), true
	}
	p.errTok(tok, code, msg)
	return token.Token{Kind: token.Invalid, Span: tok.Span}, false
}

// errTok репортует ошибку на токене; Invalid уже отрепортил лексер.
func (p *Parser) errTok(tok token.Token, code diag.Code, msg string) {
	if tok.Kind == token.Invalid {
		p.opts.CurrentErrors++
		return
	}
	p.err(code, tok.Span, msg)
}

func (p *Parser) err(code diag.Code, sp source.Span, msg string) {
	p.Report(code, diag.SevError, sp, msg, nil)
}

// Report реализует diag.Reporter: лексер пишет через парсер, чтобы ошибки считались.
func (p *Parser) Report(code diag.Code, sev diag.Severity, sp source.Span, msg string, notes []diag.Note) {
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	if p.opts.Reporter != nil && !p.opts.Enough() {
		p.opts.Reporter.Report(code, sev, sp, msg, notes)
	}
}
