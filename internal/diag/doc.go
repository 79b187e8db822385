// Package diag defines the diagnostic model shared by the lexer, parser and
// sorter.
//
// # Purpose
//
//   - Provide deterministic data structures that capture findings produced while
//     reading a manifest (lexing, parsing) and while sorting it (conflicts that
//     are reported rather than failed on).
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to storage or rendering.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary – the source.Span pointing to the issue.
//   - Notes – optional secondary spans, e.g. "first defined here" for duplicates.
//
// # Emitting diagnostics
//
// Producers use a Reporter. BagReporter aggregates into a Bag, which supports
// sorting and limits. Rendering lives in FormatShortDiagnostics and in the CLI.
package diag
