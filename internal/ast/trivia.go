package ast

// TriviaLine is a whole source line holding no data: either blank or a comment.
type TriviaLine struct {
	Blank bool
	Text  string // "# ..." without indentation; empty for blank lines
	Raw   string // exact source line without '\n'
}

// Trivia is the run of blank and comment lines above a record.
type Trivia struct {
	Lines []TriviaLine
}

func (t Trivia) Empty() bool { return len(t.Lines) == 0 }

// BlankLines counts blank lines.
func (t Trivia) BlankLines() int {
	n := 0
	for _, l := range t.Lines {
		if l.Blank {
			n++
		}
	}
	return n
}

// HasBlank reports whether any line is blank.
func (t Trivia) HasBlank() bool {
	for _, l := range t.Lines {
		if l.Blank {
			return true
		}
	}
	return false
}

// Comments returns the comment lines in order.
func (t Trivia) Comments() []string {
	var out []string
	for _, l := range t.Lines {
		if !l.Blank {
			out = append(out, l.Text)
		}
	}
	return out
}

// Split divides the trivia at its last blank line: boundary is everything up to
// and including that line, own is the comment block directly above the record.
func (t Trivia) Split() (boundary, own Trivia) {
	last := -1
	for i, l := range t.Lines {
		if l.Blank {
			last = i
		}
	}
	if last < 0 {
		return Trivia{}, t
	}
	return Trivia{Lines: t.Lines[:last+1:last+1]}, Trivia{Lines: t.Lines[last+1:]}
}

// Concat returns t followed by other.
func (t Trivia) Concat(other Trivia) Trivia {
	if len(t.Lines) == 0 {
		return other
	}
	if len(other.Lines) == 0 {
		return t
	}
	lines := make([]TriviaLine, 0, len(t.Lines)+len(other.Lines))
	lines = append(lines, t.Lines...)
	lines = append(lines, other.Lines...)
	return Trivia{Lines: lines}
}

// WithoutBlanks drops blank lines and keeps comments.
func (t Trivia) WithoutBlanks() Trivia {
	if !t.HasBlank() {
		return t
	}
	lines := make([]TriviaLine, 0, len(t.Lines))
	for _, l := range t.Lines {
		if !l.Blank {
			lines = append(lines, l)
		}
	}
	return Trivia{Lines: lines}
}

// LeadingBlanks counts blank lines before the first comment.
func (t Trivia) LeadingBlanks() int {
	n := 0
	for _, l := range t.Lines {
		if !l.Blank {
			break
		}
		n++
	}
	return n
}
