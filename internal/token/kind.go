package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	// Newline is a single '\n'.
	Newline
	// Comment is '#' up to (not including) the end of the line.
	Comment

	// BareKey is an unquoted key segment: [A-Za-z0-9_-]+ (ModeKey only).
	BareKey
	// String is a basic, literal or multi-line string; see StringKind.
	String
	// Scalar is an unquoted value: integer, float, bool, date-time (ModeValue only).
	Scalar

	LBracket       // [
	RBracket       // ]
	DoubleLBracket // [[ (ModeKey only, at header position)
	DoubleRBracket // ]] (ModeKey only)
	LBrace         // {
	RBrace         // }
	Comma          // ,
	Dot            // .
	Equals         // =
)

var kindNames = [...]string{
	Invalid:        "Invalid",
	EOF:            "EOF",
	Newline:        "Newline",
	Comment:        "Comment",
	BareKey:        "BareKey",
	String:         "String",
	Scalar:         "Scalar",
	LBracket:       "'['",
	RBracket:       "']'",
	DoubleLBracket: "'[['",
	DoubleRBracket: "']]'",
	LBrace:         "'{'",
	RBrace:         "'}'",
	Comma:          "','",
	Dot:            "'.'",
	Equals:         "'='",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// StringKind distinguishes the four TOML string flavours.
type StringKind uint8

const (
	NotString StringKind = iota
	BasicString
	LiteralString
	MultiLineBasicString
	MultiLineLiteralString
)

// Multiline reports whether the string may contain raw newlines.
func (s StringKind) Multiline() bool {
	return s == MultiLineBasicString || s == MultiLineLiteralString
}
