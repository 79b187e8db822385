// Package format renders a manifest tree back to text.
//
// Render is the formatted mode: layout is a pure function of the tree and
// Config. RenderPreserve is the no-format mode: untouched records are copied
// byte for byte from their source lines. CheckStability is the check-format
// oracle.
//
// Comments on their own lines are written above the entry or header they
// belong to. A trailing comment on the same line as an entry, header or array
// element stays on that line after the value.
//
// Зависимости: internal/ast, internal/parser (только CheckStability),
// github.com/pelletier/go-toml/v2 для сравнения значений.
package format
