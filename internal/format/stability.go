package format

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/pelletier/go-toml/v2"

	"cargosort/internal/ast"
	"cargosort/internal/parser"
	"cargosort/internal/source"
)

// ErrUnstableFormatting is returned when formatted output does not survive a
// parse/render round trip or decodes to different values.
var ErrUnstableFormatting = errors.New("formatting is unstable")

// Stability is the verdict of CheckStability.
type Stability struct {
	// Stable: render(parse(render(doc))) == render(doc).
	Stable bool
	// SemanticsPreserved: the formatted text decodes to the same values as
	// the no-format rendering of the same tree.
	SemanticsPreserved bool
	Reason             string
	Formatted          []byte
}

func (s Stability) OK() bool {
	return s.Stable && s.SemanticsPreserved
}

// Err returns nil for a stable document and ErrUnstableFormatting otherwise.
func (s Stability) Err() error {
	if s.OK() {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnstableFormatting, s.Reason)
}

// CheckStability renders doc, parses the result, renders again and compares.
func CheckStability(doc *ast.Document, cfg Config) Stability {
	first := Render(doc, cfg)
	st := Stability{Formatted: first}

	fs := source.NewFileSet()
	id := fs.AddVirtual("formatted.toml", first)
	reparsed, err := parser.Parse(fs.Get(id), parser.Options{})
	if err != nil {
		st.Reason = "formatted output does not parse: " + err.Error()
		return st
	}
	second := Render(reparsed, cfg)
	st.Stable = bytes.Equal(first, second)
	if !st.Stable {
		st.Reason = "second formatting pass differs at " + firstDiff(first, second)
	}

	same, reason := sameValues(RenderPreserve(doc, cfg), first)
	st.SemanticsPreserved = same
	if !same && st.Reason == "" {
		st.Reason = reason
	}
	return st
}

func sameValues(preserved, formatted []byte) (bool, string) {
	var want, got map[string]any
	errWant := toml.Unmarshal(preserved, &want)
	errGot := toml.Unmarshal(formatted, &got)
	switch {
	case errWant != nil && errGot != nil:
		return true, ""
	case errGot != nil:
		return false, "formatted output is not valid TOML: " + errGot.Error()
	case errWant != nil:
		return false, "formatting changed document validity: " + errWant.Error()
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateNaNs()); diff != "" {
		return false, "formatting changed values:\n" + diff
	}
	return true, ""
}

func firstDiff(a, b []byte) string {
	line := 1
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return fmt.Sprintf("line %d", line)
		}
		if a[i] == '\n' {
			line++
		}
	}
	return fmt.Sprintf("line %d", line)
}
