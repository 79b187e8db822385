package format

import (
	"strings"

	"cargosort/internal/ast"
)

type renderer struct {
	doc *ast.Document
	cfg Config
	w   *Writer
}

// Render produces the formatted text of doc.
func Render(doc *ast.Document, cfg Config) []byte {
	cfg = cfg.normalized()
	r := &renderer{doc: doc, cfg: cfg, w: NewWriter(cfg.IndentWidth, 1024)}

	r.tableBody(doc.RootTable())
	for _, id := range doc.Order {
		t := doc.Table(id)
		r.header(t)
		r.tableBody(t)
	}
	r.trailing(doc.Trailing)
	return finish(r.w.Bytes(), cfg.TrailingNewline, cfg.CRLF)
}

// header writes the header's comment block and the header line. The blank run
// before a non-first header is at least one line and at most MaxBlankLines.
func (r *renderer) header(t *ast.Table) {
	run, leading := 0, true
	flush := func() {
		switch {
		case r.w.Empty():
		case leading:
			r.w.Blank(min(max(run, 1), r.cfg.MaxBlankLines))
		default:
			r.w.Blank(min(run, r.cfg.MaxBlankLines))
		}
		run = 0
	}
	for _, l := range t.Leading.Lines {
		if l.Blank {
			run++
			continue
		}
		flush()
		leading = false
		r.w.WriteString(l.Text)
		r.w.Newline()
	}
	flush()

	r.w.WriteString(t.Header())
	r.comment(t.Comment)
	r.w.Newline()
}

func (r *renderer) tableBody(t *ast.Table) {
	start := true
	for _, eid := range t.Entries {
		e := r.doc.Entry(eid)
		r.bodyTrivia(e.Leading, &start)
		r.entry(e)
		r.w.Newline()
		start = false
	}
}

// bodyTrivia writes comment lines above an entry. Blank runs never follow a
// header directly and are dropped unless AllowBlankLines.
func (r *renderer) bodyTrivia(tr ast.Trivia, start *bool) {
	run := 0
	for _, l := range tr.Lines {
		if l.Blank {
			run++
			continue
		}
		r.bodyBlanks(run, *start)
		run = 0
		r.w.WriteString(l.Text)
		r.w.Newline()
		*start = false
	}
	r.bodyBlanks(run, *start)
}

func (r *renderer) bodyBlanks(run int, start bool) {
	if start || run == 0 || !r.cfg.AllowBlankLines || r.w.Empty() {
		return
	}
	r.w.Blank(min(run, r.cfg.MaxBlankLines))
}

// trailing writes comments after the last record; trailing blank lines go.
func (r *renderer) trailing(tr ast.Trivia) {
	run := 0
	for _, l := range tr.Lines {
		if l.Blank {
			run++
			continue
		}
		r.bodyBlanks(run, false)
		run = 0
		r.w.WriteString(l.Text)
		r.w.Newline()
	}
}

func (r *renderer) entry(e *ast.Entry) {
	r.w.WriteString(e.Key.String())
	r.w.WriteString(r.cfg.eq())
	r.value(e.Value, false)
	r.comment(e.Comment)
}

func (r *renderer) comment(c string) {
	if c != "" {
		r.w.WriteString(" ")
		r.w.WriteString(c)
	}
}

func (r *renderer) value(v *ast.Value, inInline bool) {
	switch v.Kind {
	case ast.ValueArray:
		r.array(v, inInline)
	case ast.ValueInlineTable:
		r.inlineTable(v)
	default:
		r.w.WriteString(v.Raw)
	}
}

// array keeps v on one line when it fits MaxArrayLineLen and holds no
// comments or multi-line strings. Inside inline tables the length limit does
// not apply.
func (r *renderer) array(v *ast.Value, inInline bool) {
	if s, ok := r.flat(v); ok && (inInline || len(s) <= r.cfg.MaxArrayLineLen) {
		r.w.WriteString(s)
		return
	}

	r.w.WriteString("[")
	r.w.IndentPush()
	last := len(v.Elems) - 1
	for i, e := range v.Elems {
		r.w.Newline()
		for _, c := range e.Leading.Comments() {
			r.w.WriteString(c)
			r.w.Newline()
		}
		r.value(e.Value, inInline)
		if i < last || r.cfg.TrailingCommaAlways || r.cfg.TrailingCommaMultiline {
			r.w.WriteString(",")
		}
		r.comment(e.Comment)
	}
	for _, c := range v.Trailing.Comments() {
		r.w.Newline()
		r.w.WriteString(c)
	}
	r.w.IndentPop()
	r.w.Newline()
	r.w.WriteString("]")
}

func (r *renderer) inlineTable(v *ast.Value) {
	if len(v.Fields) == 0 {
		r.w.WriteString("{}")
		return
	}
	pad := r.pad(r.cfg.CompactInlineTables)
	r.w.WriteString("{" + pad)
	for i, f := range v.Fields {
		if i > 0 {
			r.w.WriteString(", ")
		}
		r.w.WriteString(f.Key.String())
		r.w.WriteString(r.cfg.eq())
		r.value(f.Value, true)
	}
	r.w.WriteString(pad + "}")
}

// flat renders v on one line; ok is false when that would lose comments or
// split a multi-line string.
func (r *renderer) flat(v *ast.Value) (string, bool) {
	switch v.Kind {
	case ast.ValueString:
		return v.Raw, !v.Str.Multiline()
	case ast.ValueArray:
		if !v.Trailing.Empty() {
			return "", false
		}
		if len(v.Elems) == 0 {
			return "[]", true
		}
		parts := make([]string, len(v.Elems))
		for i, e := range v.Elems {
			if e.Comment != "" || len(e.Leading.Comments()) > 0 {
				return "", false
			}
			s, ok := r.flat(e.Value)
			if !ok {
				return "", false
			}
			parts[i] = s
		}
		body := strings.Join(parts, ", ")
		if r.cfg.TrailingCommaAlways {
			body += ","
		}
		pad := r.pad(r.cfg.CompactArrays)
		return "[" + pad + body + pad + "]", true
	case ast.ValueInlineTable:
		if len(v.Fields) == 0 {
			return "{}", true
		}
		parts := make([]string, len(v.Fields))
		for i, f := range v.Fields {
			s, ok := r.flat(f.Value)
			if !ok {
				return "", false
			}
			parts[i] = f.Key.String() + r.cfg.eq() + s
		}
		pad := r.pad(r.cfg.CompactInlineTables)
		return "{" + pad + strings.Join(parts, ", ") + pad + "}", true
	}
	return v.Raw, true
}

func (r *renderer) pad(compact bool) string {
	if compact {
		return ""
	}
	return " "
}
