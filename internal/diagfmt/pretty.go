package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"cargosort/internal/diag"
	"cargosort/internal/source"
)

type palette struct {
	err, warn, info, note, gutter, caret *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgBlue, color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.gutter, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil || fs == nil {
		return
	}
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		f := fs.Get(d.Primary.File)
		start, end := fs.Resolve(d.Primary)
		fmt.Fprintf(w, "%s:%d:%d: %s: %s\n",
			formatPath(f, fs, opts.PathMode), start.Line, start.Col,
			p.severity(d.Severity).Sprintf("%s %s", d.Severity, d.Code.ID()), d.Message)
		writeSnippet(w, p, f, start, end, opts.Context)

		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			nf := fs.Get(n.Span.File)
			ns, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", p.note.Sprint("note:"),
				formatPath(nf, fs, opts.PathMode), ns.Line, ns.Col, n.Msg)
		}
	}
}

func writeSnippet(w io.Writer, p palette, f *source.File, start, end source.LineCol, context int) {
	first := int(start.Line) - context
	if first < 1 {
		first = 1
	}
	width := len(strconv.Itoa(int(start.Line)))
	for line := first; line <= int(start.Line); line++ {
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", width, line), lineText(f, uint32(line)))
	}

	text := lineText(f, start.Line)
	from := clamp(int(start.Col)-1, len(text))
	to := len(text)
	if end.Line == start.Line {
		to = clamp(int(end.Col)-1, len(text))
	}
	if to < from {
		to = from
	}
	underline := runewidth.StringWidth(text[from:to])
	if underline < 1 {
		underline = 1
	}
	mark := "^" + strings.Repeat("~", underline-1)
	fmt.Fprintf(w, "%s %s%s\n", p.gutter.Sprintf("%*s |", width, ""), padFor(text[:from]), p.caret.Sprint(mark))
}

// padFor повторяет отступ prefix: табы сохраняются, остальное заменяется пробелами по ширине.
func padFor(prefix string) string {
	var sb strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return sb.String()
}

func clamp(v, hi int) int {
	if v < 0 {
		return 0
	}
	if v > hi {
		return hi
	}
	return v
}
