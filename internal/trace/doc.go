// Package trace records where a cargo-sort run spends its time.
//
// Enable it from the command line:
//
//	cargo-sort --trace=- --trace-level=detail --workspace .
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: reserved for failures
//   - LevelPhase: driver and pass boundaries
//   - LevelDetail: per-manifest events
//   - LevelDebug: everything
//
// # Scopes
//
//   - ScopeDriver: one span per CLI run
//   - ScopePass: parse, sort, format, check-format
//   - ScopeManifest: one span per manifest file
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Start(ctx, trace.ScopePass, "parse")
//	defer span.End("")
package trace
