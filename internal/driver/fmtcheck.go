package driver

import (
	"context"

	"cargosort/internal/ast"
	"cargosort/internal/diag"
	"cargosort/internal/engine"
)

// checkFormat runs the stability oracle and records its verdict both in the
// result and, as a diagnostic, in the manifest's bag.
func checkFormat(ctx context.Context, doc *ast.Document, opts Options, res *Result) error {
	st, err := engine.CheckFormat(ctx, doc, opts.Config)
	res.Stability = &st
	if err == nil {
		return nil
	}
	code := diag.FmtUnstable
	if st.Stable && !st.SemanticsPreserved {
		code = diag.FmtSemanticsChanged
	}
	res.Diagnostics.Add(diag.NewError(code, doc.RootTable().Span, st.Reason))
	return err
}
