package lexer

import (
	"cargosort/internal/token"
)

// collectLeadingTrivia собирает пробелы и табы перед значимым токеном.
// Переводы строк и комментарии в TOML значимы и возвращаются как токены.
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = nil
	start := lx.cursor.Mark()
	for {
		b := lx.cursor.Peek()
		if b != ' ' && b != '\t' {
			break
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	if sp.Empty() {
		return
	}
	lx.hold = append(lx.hold, token.Trivia{
		Kind: token.TriviaSpace,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	})
}
