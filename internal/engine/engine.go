// Package engine ties ordering and formatting together: one call sorts a
// parsed manifest and serializes it under a resolved Config.
package engine

import (
	"context"
	"fmt"

	"cargosort/internal/ast"
	"cargosort/internal/diag"
	"cargosort/internal/format"
	"cargosort/internal/order"
	"cargosort/internal/sorter"
	"cargosort/internal/trace"
)

type Options struct {
	// Grouped sorts each blank-line separated run of entries on its own.
	Grouped bool
	// Format renders through format.Render; otherwise untouched records are
	// copied from source.
	Format bool
	// TableOrder overrides cfg.TableOrder when non-empty.
	TableOrder []string
}

type Result struct {
	// Sorted is true when the input was already in order.
	Sorted          bool
	Changed         bool
	Text            []byte
	Doc             *ast.Document
	Outcome         sorter.Outcome
	GroupingIgnored bool
	Warnings        []diag.Diagnostic
}

// Process reorders doc in place and renders it.
func Process(ctx context.Context, doc *ast.Document, cfg format.Config, opts Options) (Result, error) {
	res := Result{Doc: doc}

	tableOrder := cfg.TableOrder
	if len(opts.TableOrder) > 0 {
		tableOrder = opts.TableOrder
	}

	// Formatting that can emit no blank line inside a table erases group
	// boundaries, so grouped sorting would not survive a second pass.
	grouped := opts.Grouped
	if grouped && opts.Format && (!cfg.AllowBlankLines || cfg.MaxBlankLines <= 0) {
		grouped = false
		res.GroupingIgnored = true
		res.Warnings = append(res.Warnings, diag.New(diag.SevWarning, diag.SortGroupingIgnored, doc.RootTable().Span,
			"--grouped has no effect while key_value_newlines = false or allowed_blank_lines = 0; blank lines inside tables are removed"))
	}

	_, span := trace.Start(ctx, trace.ScopePass, "sort")
	out, err := sorter.Reorder(doc, sorter.Options{
		Policy:         order.New(tableOrder),
		Grouped:        grouped,
		CollapseBlanks: opts.Format,
	})
	span.WithExtra("changed", fmt.Sprint(out.Changed)).End("")
	if err != nil {
		return res, fmt.Errorf("sort: %w", err)
	}
	res.Outcome = out
	res.Changed = out.Changed
	res.Sorted = !out.Changed

	_, span = trace.Start(ctx, trace.ScopePass, "format")
	if opts.Format {
		res.Text = format.Render(doc, cfg)
	} else {
		res.Text = format.RenderPreserve(doc, cfg)
	}
	span.End("")
	return res, nil
}

// CheckFormat runs the formatting stability oracle over doc.
func CheckFormat(ctx context.Context, doc *ast.Document, cfg format.Config) (format.Stability, error) {
	_, span := trace.Start(ctx, trace.ScopePass, "check-format")
	st := format.CheckStability(doc, cfg)
	span.WithExtra("stable", fmt.Sprint(st.Stable)).End(st.Reason)
	return st, st.Err()
}
