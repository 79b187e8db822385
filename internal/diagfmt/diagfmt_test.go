package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"cargosort/internal/diag"
	"cargosort/internal/source"
)

func duplicateKeyBag() (*diag.Bag, *source.FileSet) {
	fs := source.NewFileSetWithBase("/home/user/project")
	content := []byte("[dependencies]\nserde = \"1\"\nserde = \"2\"\n")
	id := fs.AddVirtual("/home/user/project/crates/a/Cargo.toml", content)

	bag := diag.NewBag(10)
	d := diag.NewError(diag.SynDuplicateKey, source.Span{File: id, Start: 27, End: 32}, "duplicate key \"serde\"").
		WithNote(source.Span{File: id, Start: 15, End: 20}, "first defined here")
	bag.Add(d)
	return bag, fs
}

func TestPrettySnippet(t *testing.T) {
	bag, fs := duplicateKeyBag()
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: PathModeRelative, ShowNotes: true})

	want := strings.Join([]string{
		"crates/a/Cargo.toml:3:1: ERROR SYN2010: duplicate key \"serde\"",
		"2 | serde = \"1\"",
		"3 | serde = \"2\"",
		"  | ^~~~~",
		"  note: crates/a/Cargo.toml:2:1: first defined here",
		"",
	}, "\n")
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("pretty output mismatch (-want +got):\n%s", diff)
	}
}

func TestPrettyPathModes(t *testing.T) {
	bag, fs := duplicateKeyBag()
	tests := []struct {
		mode PathMode
		want string
	}{
		{PathModeAbsolute, "/home/user/project/crates/a/Cargo.toml:3:1"},
		{PathModeRelative, "crates/a/Cargo.toml:3:1"},
		{PathModeBasename, "Cargo.toml:3:1"},
		{PathModeAuto, "crates/a/Cargo.toml:3:1"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode})
		if !strings.HasPrefix(buf.String(), tt.want+":") {
			t.Fatalf("mode %d: got %q, want prefix %q", tt.mode, buf.String(), tt.want)
		}
		if strings.Contains(buf.String(), "note:") {
			t.Fatalf("notes printed without ShowNotes")
		}
	}
}

func TestPrettyWideCharacters(t *testing.T) {
	fs := source.NewFileSetWithBase("/p")
	content := []byte("\"日本\" = 1\n")
	id := fs.AddVirtual("/p/Cargo.toml", content)
	bag := diag.NewBag(1)
	bag.Add(diag.New(diag.SevWarning, diag.SynConfusableKey, source.Span{File: id, Start: 0, End: 8}, "wide"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	lines := strings.Split(buf.String(), "\n")
	if len(lines) < 3 || lines[2] != "  | ^~~~~~" {
		t.Fatalf("unexpected underline: %q", buf.String())
	}
}

func TestJSONOutput(t *testing.T) {
	bag, fs := duplicateKeyBag()
	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, PathMode: PathModeBasename, IncludeNotes: true}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var got DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := DiagnosticsOutput{
		Count: 1,
		Diagnostics: []DiagnosticJSON{{
			Severity: "ERROR",
			Code:     "SYN2010",
			Message:  "duplicate key \"serde\"",
			Location: LocationJSON{File: "Cargo.toml", StartByte: 27, EndByte: 32, StartLine: 3, StartCol: 1, EndLine: 3, EndCol: 6},
			Notes: []NoteJSON{{
				Message:  "first defined here",
				Location: LocationJSON{File: "Cargo.toml", StartByte: 15, EndByte: 20, StartLine: 2, StartCol: 1, EndLine: 2, EndCol: 6},
			}},
		}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("json mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONMax(t *testing.T) {
	bag, fs := duplicateKeyBag()
	bag.Add(diag.NewError(diag.SynDuplicateKey, source.Span{File: 0, Start: 0, End: 1}, "second"))
	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 1})
	if out.Count != 1 || out.Diagnostics[0].Notes != nil {
		t.Fatalf("unexpected output: %+v", out)
	}
}
