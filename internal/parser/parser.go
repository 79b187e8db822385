package parser

import (
	"errors"
	"fmt"

	"cargosort/internal/ast"
	"cargosort/internal/diag"
	"cargosort/internal/lexer"
	"cargosort/internal/source"
	"cargosort/internal/token"
)

// ErrMalformedDocument is returned when the manifest has syntax errors.
var ErrMalformedDocument = errors.New("malformed document")

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	Doc    *ast.Document
	Errors uint
}

// Parser: состояние парсера на один файл
type Parser struct {
	lx       *lexer.Lexer
	file     *source.File
	arenas   *ast.Builder
	doc      *ast.Document
	opts     Options
	lastSpan source.Span // span последнего съеденного токена (кроме Newline)

	current ast.TableID
	pending []ast.TriviaLine
	tables  map[string]tableDef
	keys    map[ast.TableID]*keySet
}

// ParseFile: входная точка для разбора одного файла.
func ParseFile(file *source.File, arenas *ast.Builder, opts Options) Result {
	p := &Parser{
		file:   file,
		arenas: arenas,
		opts:   opts,
		tables: make(map[string]tableDef),
		keys:   make(map[ast.TableID]*keySet),
	}
	p.lx = lexer.New(file, lexer.Options{Reporter: p})
	p.doc = arenas.NewDocument(file.ID)
	p.doc.CRLF = file.HadCRLF()
	p.doc.BOM = file.Flags&source.FileHadBOM != 0
	p.doc.FinalNewline = len(file.Content) > 0 && file.Content[len(file.Content)-1] == '\n'
	p.current = p.doc.Root

	p.parseDocument()
	return Result{Doc: p.doc, Errors: p.opts.CurrentErrors}
}

// Parse разбирает файл в новом Builder и превращает ошибки в ErrMalformedDocument.
func Parse(file *source.File, opts Options) (*ast.Document, error) {
	res := ParseFile(file, ast.NewBuilder(ast.Hints{}), opts)
	if res.Errors > 0 {
		return nil, fmt.Errorf("%s: %w (%d errors)", file.Path, ErrMalformedDocument, res.Errors)
	}
	return res.Doc, nil
}

// parseDocument: основной цикл: одна итерация на логическую строку.
func (p *Parser) parseDocument() {
	for {
		p.lx.SetMode(lexer.ModeKey)
		tok := p.lx.Peek()
		switch {
		case tok.Kind == token.EOF:
			p.finish(tok)
			return
		case tok.Kind == token.Newline:
			p.advance()
			p.pushBlank(tok.Span.Start)
		case tok.Kind == token.Comment:
			p.advance()
			p.pushComment(tok)
			p.eatLineEnd()
		case tok.Kind == token.LBracket || tok.Kind == token.DoubleLBracket:
			if !p.parseHeader() {
				p.resyncLine()
			}
		case tok.IsKeyStart():
			if !p.parseEntry() {
				p.resyncLine()
			}
		default:
			p.errTok(tok, diag.SynExpectKey, "expected key or table header, got "+tok.Kind.String())
			p.resyncLine()
		}
	}
}

func (p *Parser) finish(eof token.Token) {
	if len(eof.Leading) > 0 && p.file.LineStart(eof.Span.Start) == eof.Leading[0].Span.Start {
		// последняя строка из одних пробелов без '\n'
		p.pending = append(p.pending, ast.TriviaLine{Blank: true, Raw: p.lineBefore(eof.Span.Start)})
	}
	p.doc.Trailing = p.takeTrivia()
}

// resyncLine: восстановление после ошибки: пропускаем остаток строки.
func (p *Parser) resyncLine() {
	p.lx.RestOfLine()
	p.eatLineEnd()
}

func (p *Parser) eatLineEnd() {
	if p.at(token.Newline) {
		p.advance()
	}
}

func (p *Parser) pushBlank(nl uint32) {
	p.pending = append(p.pending, ast.TriviaLine{Blank: true, Raw: p.lineBefore(nl)})
}

func (p *Parser) pushComment(tok token.Token) {
	p.pending = append(p.pending, ast.TriviaLine{Text: tok.Text, Raw: p.lineText(tok.Span.Start, tok.Span.End)})
}

func (p *Parser) takeTrivia() ast.Trivia {
	t := ast.Trivia{Lines: p.pending}
	p.pending = nil
	return t
}

// lineBefore returns the text between the line start and off.
func (p *Parser) lineBefore(off uint32) string {
	return string(p.file.Content[p.file.LineStart(off):off])
}

// lineText returns whole source lines covering [start, end).
func (p *Parser) lineText(start, end uint32) string {
	from := p.file.LineStart(start)
	to := p.file.LineEnd(end - 1)
	if end <= start {
		to = p.file.LineEnd(start)
	}
	return string(p.file.Content[from:to])
}
