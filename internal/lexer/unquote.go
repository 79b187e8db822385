package lexer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"cargosort/internal/token"
)

var errBadEscape = errors.New("invalid escape")

// Unquote decodes the raw text of a string token.
func Unquote(raw string, kind token.StringKind) (string, error) {
	switch kind {
	case token.LiteralString:
		if len(raw) < 2 {
			return "", fmt.Errorf("short literal string %q", raw)
		}
		return raw[1 : len(raw)-1], nil
	case token.MultiLineLiteralString:
		if len(raw) < 6 {
			return "", fmt.Errorf("short multi-line string %q", raw)
		}
		return trimFirstNewline(raw[3 : len(raw)-3]), nil
	case token.BasicString:
		if len(raw) < 2 {
			return "", fmt.Errorf("short basic string %q", raw)
		}
		return unescape(raw[1:len(raw)-1], false)
	case token.MultiLineBasicString:
		if len(raw) < 6 {
			return "", fmt.Errorf("short multi-line string %q", raw)
		}
		return unescape(trimFirstNewline(raw[3:len(raw)-3]), true)
	}
	return raw, nil
}

func trimFirstNewline(s string) string {
	return strings.TrimPrefix(s, "\n")
}

func unescape(s string, multiline bool) (string, error) {
	if !strings.Contains(s, `\`) {
		return s, nil
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(s) {
			return "", errBadEscape
		}
		switch s[i] {
		case 'b':
			b.WriteByte('\b')
		case 't':
			b.WriteByte('\t')
		case 'n':
			b.WriteByte('\n')
		case 'f':
			b.WriteByte('\f')
		case 'r':
			b.WriteByte('\r')
		case 'e':
			b.WriteByte(0x1b)
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		case 'u', 'U':
			n := 4
			if s[i] == 'U' {
				n = 8
			}
			if i+1+n > len(s) {
				return "", errBadEscape
			}
			v, err := strconv.ParseUint(s[i+1:i+1+n], 16, 32)
			if err != nil || !utf8.ValidRune(rune(v)) {
				return "", errBadEscape
			}
			b.WriteRune(rune(v))
			i += n
		case ' ', '\t', '\n':
			if !multiline {
				return "", errBadEscape
			}
			// line ending backslash: skip all whitespace up to the next content
			for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n') {
				i++
			}
			i--
		default:
			return "", errBadEscape
		}
	}
	return b.String(), nil
}
