package format

import (
	"bytes"
	"strings"
)

// Writer accumulates output with '\n' line endings and lazy indentation.
type Writer struct {
	buf         []byte
	indent      string
	indentLevel int
	atLineStart bool
}

// NewWriter creates a writer indenting by width spaces per level.
func NewWriter(width, capHint int) *Writer {
	return &Writer{
		buf:         make([]byte, 0, capHint),
		indent:      strings.Repeat(" ", width),
		atLineStart: true,
	}
}

// Bytes returns the accumulated output.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Empty reports whether nothing has been written yet.
func (w *Writer) Empty() bool {
	return len(w.buf) == 0
}

func (w *Writer) writeIndent() {
	if !w.atLineStart {
		return
	}
	for range w.indentLevel {
		w.buf = append(w.buf, w.indent...)
	}
	w.atLineStart = false
}

// WriteString writes s, indenting first when at the start of a line.
// s must not contain '\n' unless it is raw source text (multi-line strings).
func (w *Writer) WriteString(s string) {
	if s == "" {
		return
	}
	w.writeIndent()
	w.buf = append(w.buf, s...)
	w.atLineStart = s[len(s)-1] == '\n'
}

// Newline terminates the current line.
func (w *Writer) Newline() {
	w.buf = append(w.buf, '\n')
	w.atLineStart = true
}

// Blank writes n empty lines after a terminated line.
func (w *Writer) Blank(n int) {
	for range n {
		w.buf = append(w.buf, '\n')
	}
}

// IndentPush increases the indentation level.
func (w *Writer) IndentPush() {
	w.indentLevel++
}

// IndentPop decreases the indentation level.
func (w *Writer) IndentPop() {
	if w.indentLevel > 0 {
		w.indentLevel--
	}
}

// finish applies the final-newline policy and line-ending style.
func finish(out []byte, finalNewline, crlf bool) []byte {
	out = bytes.TrimRight(out, "\n")
	if finalNewline && len(out) > 0 {
		out = append(out, '\n')
	}
	if crlf {
		out = bytes.ReplaceAll(out, []byte("\n"), []byte("\r\n"))
	}
	return out
}
