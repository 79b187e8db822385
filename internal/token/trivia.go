package token

import "cargosort/internal/source"

type TriviaKind uint8

const (
	// TriviaSpace is a run of spaces and tabs.
	TriviaSpace TriviaKind = iota
)

type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}
