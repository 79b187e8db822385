// Package token defines lexical token kinds and trivia for TOML manifests.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Begin..End).
//   - Newlines and comments are real tokens: TOML is line oriented and the
//     parser needs them to bind comments to the following entry.
//   - Only horizontal whitespace is Trivia.
package token
