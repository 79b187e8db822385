package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadEscape          Code = 1003
	LexControlChar        Code = 1004

	// Синтаксические
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynExpectKey          Code = 2002
	SynExpectEquals       Code = 2003
	SynExpectValue        Code = 2004
	SynExpectNewline      Code = 2005
	SynUnclosedBracket    Code = 2006
	SynUnclosedBrace      Code = 2007
	SynUnclosedHeader     Code = 2008
	SynInlineTableNewline Code = 2009
	SynDuplicateKey       Code = 2010
	SynDuplicateTable     Code = 2011
	SynTrailingComma      Code = 2012
	SynConfusableKey      Code = 2013

	// Сортировка
	SortInfo            Code = 3000
	SortGroupingIgnored Code = 3001
	SortDuplicateKey    Code = 3002

	// Форматирование
	FmtInfo              Code = 4000
	FmtUnstable          Code = 4001
	FmtSemanticsChanged  Code = 4002
)

var codeDescription = map[Code]string{
	UnknownCode:           "Unknown error",
	LexInfo:               "Lexical information",
	LexUnknownChar:        "Unknown character",
	LexUnterminatedString: "Unterminated string",
	LexBadEscape:          "Invalid escape sequence",
	LexControlChar:        "Control character in string",
	SynInfo:               "Syntax information",
	SynUnexpectedToken:    "Unexpected token",
	SynExpectKey:          "Expected key",
	SynExpectEquals:       "Expected '='",
	SynExpectValue:        "Expected value",
	SynExpectNewline:      "Expected end of line",
	SynUnclosedBracket:    "Unclosed '['",
	SynUnclosedBrace:      "Unclosed '{'",
	SynUnclosedHeader:     "Unclosed table header",
	SynInlineTableNewline: "Newline inside inline table",
	SynDuplicateKey:       "Duplicate key",
	SynDuplicateTable:     "Duplicate table",
	SynTrailingComma:      "Trailing comma in inline table",
	SynConfusableKey:      "Keys differ only in Unicode normalization",
	SortInfo:              "Sort information",
	SortGroupingIgnored:   "Grouping has no effect",
	SortDuplicateKey:      "Ambiguous ordering",
	FmtInfo:               "Format information",
	FmtUnstable:           "Formatting is unstable",
	FmtSemanticsChanged:   "Formatting changed document semantics",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SRT%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("FMT%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
