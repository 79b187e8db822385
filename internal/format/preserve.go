package format

import (
	"strings"

	"cargosort/internal/ast"
)

// RenderPreserve emits every untouched record from its source lines; only
// entries marked Dirty are re-rendered under cfg. A table header that no
// longer follows its original predecessor gets its leading blank lines
// normalized: none when first in the file, at least one otherwise.
func RenderPreserve(doc *ast.Document, cfg Config) []byte {
	cfg = cfg.normalized()
	r := &renderer{doc: doc, cfg: cfg}
	var lines []string

	body := func(t *ast.Table) {
		for _, eid := range t.Entries {
			e := doc.Entry(eid)
			lines = appendRaw(lines, e.Leading.Lines)
			if e.Dirty {
				lines = append(lines, r.entryText(e))
			} else {
				lines = append(lines, e.Raw)
			}
		}
	}

	body(doc.RootTable())
	prevIndex := -1
	for _, id := range doc.Order {
		t := doc.Table(id)
		trivia := t.Leading.Lines
		if t.Index != prevIndex+1 {
			trivia = normalizeLeadingBlanks(trivia, len(lines) == 0)
		}
		prevIndex = t.Index
		lines = appendRaw(lines, trivia)
		lines = append(lines, t.Raw)
		body(t)
	}
	lines = appendRaw(lines, doc.Trailing.Lines)

	out := []byte(strings.Join(lines, "\n"))
	if doc.FinalNewline && len(lines) > 0 {
		out = append(out, '\n')
	}
	if doc.CRLF || cfg.CRLF {
		out = []byte(strings.ReplaceAll(string(out), "\n", "\r\n"))
	}
	if doc.BOM {
		out = append([]byte("\uFEFF"), out...)
	}
	return out
}

func (r *renderer) entryText(e *ast.Entry) string {
	r.w = NewWriter(r.cfg.IndentWidth, len(e.Raw))
	r.entry(e)
	return string(r.w.Bytes())
}

func appendRaw(lines []string, trivia []ast.TriviaLine) []string {
	for _, l := range trivia {
		lines = append(lines, l.Raw)
	}
	return lines
}

func normalizeLeadingBlanks(lines []ast.TriviaLine, first bool) []ast.TriviaLine {
	n := 0
	for n < len(lines) && lines[n].Blank {
		n++
	}
	switch {
	case first:
		return lines[n:]
	case n == 0:
		return append([]ast.TriviaLine{{Blank: true}}, lines...)
	}
	return lines
}
