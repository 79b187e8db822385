package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"

	"cargosort/internal/diag"
	"cargosort/internal/driver"
	"cargosort/internal/source"
)

func TestCargoArgs(t *testing.T) {
	cases := []struct {
		in   []string
		want []string
	}{
		{nil, nil},
		{[]string{"sort"}, []string{}},
		{[]string{"sort", "--check", "crates/a"}, []string{"--check", "crates/a"}},
		{[]string{"--check", "sort"}, []string{"--check", "sort"}},
	}
	for _, tc := range cases {
		got := cargoArgs(tc.in)
		if len(got) == 0 && len(tc.want) == 0 {
			continue
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Fatalf("cargoArgs(%q) mismatch (-want +got):\n%s", tc.in, diff)
		}
	}
}

func TestAutoModeFlag(t *testing.T) {
	for in, want := range map[string]autoMode{"": modeAuto, "AUTO": modeAuto, " on ": modeOn, "never": modeOff} {
		got, err := parseAutoMode(in)
		if err != nil {
			t.Fatalf("parseAutoMode(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("parseAutoMode(%q) = %q, want %q", in, got, want)
		}
	}

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	mode := modeAuto
	flags.Var(&mode, "ui", "")
	if err := flags.Parse([]string{"--ui", "off"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	got, err := autoFlag(flags, "ui")
	if err != nil || got != modeOff {
		t.Fatalf("autoFlag = %q, %v", got, err)
	}
	if err := flags.Parse([]string{"--ui", "sometimes"}); err == nil {
		t.Fatalf("expected error for invalid ui mode")
	}
	if modeOff.enabled(os.Stdout) || !modeOn.enabled(os.Stdout) {
		t.Fatalf("explicit modes must win over terminal detection")
	}
}

func TestTrimOrder(t *testing.T) {
	got := trimOrder([]string{" package", "", "dependencies ", "  "})
	if diff := cmp.Diff([]string{"package", "dependencies"}, got); diff != "" {
		t.Fatalf("trimOrder mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderTextCheck(t *testing.T) {
	color.NoColor = true
	results := []driver.Result{
		{Path: "a/Cargo.toml", Sorted: true},
		{Path: "b/Cargo.toml", Sorted: false},
	}
	var out, errOut bytes.Buffer
	if !renderText(&out, &errOut, results, driver.ModeCheck, false) {
		t.Fatalf("expected failure for unsorted manifest")
	}
	if !strings.Contains(out.String(), "dependencies are sorted for a/Cargo.toml") {
		t.Fatalf("unexpected stdout: %q", out.String())
	}
	if !strings.Contains(errOut.String(), "dependencies are not sorted for b/Cargo.toml") {
		t.Fatalf("unexpected stderr: %q", errOut.String())
	}
}

func TestRenderTextWriteQuiet(t *testing.T) {
	color.NoColor = true
	results := []driver.Result{{Path: "Cargo.toml", Written: true, Differs: true}}
	var out, errOut bytes.Buffer
	if renderText(&out, &errOut, results, driver.ModeWrite, true) {
		t.Fatalf("write mode must not fail without errors")
	}
	if out.Len() != 0 || errOut.Len() != 0 {
		t.Fatalf("quiet output not empty: %q / %q", out.String(), errOut.String())
	}
}

func TestRenderTextPrint(t *testing.T) {
	results := []driver.Result{{Path: "Cargo.toml", Output: []byte("[package]\nname = \"x\"\n")}}
	var out, errOut bytes.Buffer
	renderText(&out, &errOut, results, driver.ModePrint, false)
	if got := out.String(); got != "[package]\nname = \"x\"\n" {
		t.Fatalf("print output = %q", got)
	}
}

func TestRenderTextError(t *testing.T) {
	color.NoColor = true
	results := []driver.Result{{Path: "Cargo.toml", Err: errors.New("Cargo.toml: boom")}}
	var out, errOut bytes.Buffer
	if !renderText(&out, &errOut, results, driver.ModeWrite, false) {
		t.Fatalf("expected failure")
	}
	if !strings.Contains(errOut.String(), "Cargo.toml: boom") {
		t.Fatalf("stderr = %q", errOut.String())
	}
}

func TestRenderTextGroupingWarningOnce(t *testing.T) {
	color.NoColor = true
	fs := source.NewFileSet()
	file := fs.AddVirtual("Cargo.toml", []byte("[dependencies]\na = 1\n"))
	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevWarning, diag.SortGroupingIgnored, source.Span{File: file},
		"--grouped has no effect while key_value_newlines = false or allowed_blank_lines = 0; blank lines inside tables are removed"))
	results := []driver.Result{{
		Path:            "Cargo.toml",
		Sorted:          true,
		GroupingIgnored: true,
		Diagnostics:     bag,
		FileSet:         fs,
	}}

	var out, errOut bytes.Buffer
	if renderText(&out, &errOut, results, driver.ModeCheck, false) {
		t.Fatalf("sorted manifest must not fail")
	}
	if n := strings.Count(errOut.String(), "--grouped"); n != 1 {
		t.Fatalf("grouping warning printed %d times:\n%s", n, errOut.String())
	}
	if !strings.Contains(errOut.String(), "SRT3001") {
		t.Fatalf("stderr = %q", errOut.String())
	}
}

func TestRenderJSON(t *testing.T) {
	results := []driver.Result{
		{Path: "a/Cargo.toml", Sorted: true},
		{Path: "b/Cargo.toml", Differs: true},
	}
	var out bytes.Buffer
	failed, err := renderJSON(&out, results, driver.ModeCheck)
	if err != nil {
		t.Fatalf("renderJSON: %v", err)
	}
	if !failed {
		t.Fatalf("expected failure in check mode")
	}
	var decoded []jsonResult
	if err := json.Unmarshal(out.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []jsonResult{
		{Path: "a/Cargo.toml", Sorted: true},
		{Path: "b/Cargo.toml", Differs: true},
	}
	if diff := cmp.Diff(want, decoded); diff != "" {
		t.Fatalf("json mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderTextAndJSONAgreeOnFailure(t *testing.T) {
	color.NoColor = true
	cases := []struct {
		name    string
		results []driver.Result
		mode    driver.Mode
		want    bool
	}{
		{"check sorted", []driver.Result{{Path: "Cargo.toml", Sorted: true}}, driver.ModeCheck, false},
		{"check unsorted", []driver.Result{{Path: "Cargo.toml", Differs: true}}, driver.ModeCheck, true},
		{"write unsorted", []driver.Result{{Path: "Cargo.toml", Differs: true, Written: true}}, driver.ModeWrite, false},
		{"print error", []driver.Result{{Path: "Cargo.toml", Err: errors.New("boom")}}, driver.ModePrint, true},
		{"check error", []driver.Result{{Path: "Cargo.toml", Sorted: true, Err: errors.New("boom")}}, driver.ModeCheck, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out, errOut, js bytes.Buffer
			text := renderText(&out, &errOut, tc.results, tc.mode, true)
			jsonFailed, err := renderJSON(&js, tc.results, tc.mode)
			if err != nil {
				t.Fatalf("renderJSON: %v", err)
			}
			if text != tc.want || jsonFailed != tc.want {
				t.Fatalf("failed: text=%v json=%v, want %v", text, jsonFailed, tc.want)
			}
		})
	}
}
