package format

// Config holds the formatting rules. It is resolved once per run and never
// mutated afterwards.
type Config struct {
	TrailingCommaAlways    bool     `toml:"always_trailing_comma"`
	TrailingCommaMultiline bool     `toml:"multiline_trailing_comma"`
	MaxArrayLineLen        int      `toml:"max_array_line_len"`
	IndentWidth            int      `toml:"indent_count"`
	SpaceAroundEq          bool     `toml:"space_around_eq"`
	CompactArrays          bool     `toml:"compact_arrays"`
	CompactInlineTables    bool     `toml:"compact_inline_tables"`
	TrailingNewline        bool     `toml:"trailing_newline"`
	AllowBlankLines        bool     `toml:"key_value_newlines"`
	MaxBlankLines          int      `toml:"allowed_blank_lines"`
	CRLF                   bool     `toml:"crlf"`
	TableOrder             []string `toml:"table_order"`
}

func DefaultConfig() Config {
	return Config{
		TrailingCommaAlways:    false,
		TrailingCommaMultiline: true,
		MaxArrayLineLen:        80,
		IndentWidth:            4,
		SpaceAroundEq:          true,
		CompactArrays:          false,
		CompactInlineTables:    false,
		TrailingNewline:        true,
		AllowBlankLines:        true,
		MaxBlankLines:          1,
		CRLF:                   false,
		TableOrder:             []string{},
	}
}

func (c Config) normalized() Config {
	c.MaxArrayLineLen = max(c.MaxArrayLineLen, 0)
	c.IndentWidth = max(c.IndentWidth, 0)
	c.MaxBlankLines = max(c.MaxBlankLines, 0)
	return c
}

func (c Config) eq() string {
	if c.SpaceAroundEq {
		return " = "
	}
	return "="
}
