package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"cargosort/internal/diagfmt"
	"cargosort/internal/driver"
)

var (
	okMark   = color.New(color.FgGreen, color.Bold)
	failMark = color.New(color.FgRed, color.Bold)
)

// renderText prints one line per manifest and reports whether the run failed.
func renderText(out, errOut io.Writer, results []driver.Result, mode driver.Mode, quiet bool) bool {
	failed := false
	for _, res := range results {
		printDiagnostics(errOut, res)
		failed = failed || res.Failed(mode)
		if res.Err != nil {
			fmt.Fprintf(errOut, "%s %v\n", failMark.Sprint("✘"), res.Err)
			continue
		}

		switch mode {
		case driver.ModePrint:
			_, _ = out.Write(res.Output)
		case driver.ModeCheck:
			if !res.Sorted {
				fmt.Fprintf(errOut, "%s dependencies are not sorted for %s\n", failMark.Sprint("✘"), res.Path)
				continue
			}
			if !quiet {
				fmt.Fprintf(out, "%s dependencies are sorted for %s\n", okMark.Sprint("✔"), res.Path)
			}
		default:
			if quiet {
				continue
			}
			if res.Written {
				fmt.Fprintf(out, "%s sorted %s\n", okMark.Sprint("✔"), res.Path)
			} else {
				fmt.Fprintf(out, "%s %s already sorted\n", okMark.Sprint("✔"), res.Path)
			}
		}
	}
	return failed
}

func printDiagnostics(w io.Writer, res driver.Result) {
	if res.Diagnostics == nil || res.Diagnostics.Len() == 0 || res.FileSet == nil {
		return
	}
	res.Diagnostics.Sort()
	diagfmt.Pretty(w, res.Diagnostics, res.FileSet, diagfmt.PrettyOpts{
		Color:     !color.NoColor,
		Context:   1,
		PathMode:  diagfmt.PathModeAuto,
		ShowNotes: true,
	})
}

type jsonResult struct {
	Path            string                   `json:"path"`
	Sorted          bool                     `json:"sorted"`
	Differs         bool                     `json:"differs"`
	Written         bool                     `json:"written,omitempty"`
	Cached          bool                     `json:"cached,omitempty"`
	GroupingIgnored bool                     `json:"grouping_ignored,omitempty"`
	Stable          *bool                    `json:"format_stable,omitempty"`
	Diagnostics     []diagfmt.DiagnosticJSON `json:"diagnostics,omitempty"`
	Error           string                   `json:"error,omitempty"`
}

func renderJSON(out io.Writer, results []driver.Result, mode driver.Mode) (bool, error) {
	failed := false
	payload := make([]jsonResult, 0, len(results))
	for _, res := range results {
		jr := jsonResult{
			Path:            res.Path,
			Sorted:          res.Sorted,
			Differs:         res.Differs,
			Written:         res.Written,
			Cached:          res.Cached,
			GroupingIgnored: res.GroupingIgnored,
		}
		if res.Stability != nil {
			ok := res.Stability.OK()
			jr.Stable = &ok
		}
		if res.Diagnostics != nil && res.Diagnostics.Len() > 0 && res.FileSet != nil {
			res.Diagnostics.Sort()
			out := diagfmt.BuildDiagnosticsOutput(res.Diagnostics, res.FileSet, diagfmt.JSONOpts{
				IncludePositions: true,
				PathMode:         diagfmt.PathModeAuto,
				IncludeNotes:     true,
			})
			jr.Diagnostics = out.Diagnostics
		}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		}
		failed = failed || res.Failed(mode)
		payload = append(payload, jr)
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return failed, encoder.Encode(payload)
}
