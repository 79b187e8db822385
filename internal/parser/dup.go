package parser

import (
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"cargosort/internal/ast"
	"cargosort/internal/diag"
	"cargosort/internal/source"
)

type tableDef struct {
	span  source.Span
	array bool
}

// keySet отслеживает ключи одной таблицы: полные пути и их префиксы.
type keySet struct {
	full     map[string]source.Span
	prefixes map[string]source.Span
	// ключи в NFC, для предупреждения о визуально одинаковых ключах
	nfc map[string]source.Span
}

func newKeySet() *keySet {
	return &keySet{
		full:     make(map[string]source.Span),
		prefixes: make(map[string]source.Span),
		nfc:      make(map[string]source.Span),
	}
}

func (p *Parser) defineKey(table ast.TableID, key ast.Key) {
	set, ok := p.keys[table]
	if !ok {
		set = newKeySet()
		p.keys[table] = set
	}
	p.checkKey(set, key)
}

// checkKey репортит повтор ключа, а также `a = 1` рядом с `a.b = 2`.
func (p *Parser) checkKey(set *keySet, key ast.Key) {
	names := key.Names()
	full := ast.PathKey(names)
	if prev, ok := set.full[full]; ok {
		p.duplicate(diag.SynDuplicateKey, key.Span, prev, "duplicate key "+quote(key.Dotted()))
		return
	}
	if prev, ok := set.prefixes[full]; ok {
		p.duplicate(diag.SynDuplicateKey, key.Span, prev, "key "+quote(key.Dotted())+" is already defined as a table")
		return
	}
	for i := 1; i < len(names); i++ {
		pk := ast.PathKey(names[:i])
		if prev, ok := set.full[pk]; ok {
			p.duplicate(diag.SynDuplicateKey, key.Span, prev, "cannot extend value "+quote(strings.Join(names[:i], ".")))
			return
		}
		if _, ok := set.prefixes[pk]; !ok {
			set.prefixes[pk] = key.Span
		}
	}
	set.full[full] = key.Span

	n := norm.NFC.String(full)
	if prev, ok := set.nfc[n]; ok {
		p.Report(diag.SynConfusableKey, diag.SevWarning, key.Span,
			"key "+quote(key.Dotted())+" differs from an earlier key only in Unicode normalization",
			[]diag.Note{{Span: prev, Msg: "earlier key"}})
		return
	}
	set.nfc[n] = key.Span
}

// defineTable репортит повторный заголовок. `[[a]]` начинает новый элемент
// массива, поэтому заголовки под ним забываются.
func (p *Parser) defineTable(key ast.Key, array bool, span source.Span) {
	full := ast.PathKey(key.Names())
	prev, exists := p.tables[full]
	switch {
	case exists && !(array && prev.array):
		p.duplicate(diag.SynDuplicateTable, span, prev.span, "duplicate table "+quote(key.Dotted()))
		return
	case array:
		sub := full + "\x00"
		for k := range p.tables {
			if strings.HasPrefix(k, sub) {
				delete(p.tables, k)
			}
		}
	}
	p.tables[full] = tableDef{span: span, array: array}
}

func (p *Parser) duplicate(code diag.Code, at, prev source.Span, msg string) {
	p.Report(code, diag.SevError, at, msg, []diag.Note{{Span: prev, Msg: "first defined here"}})
}

func quote(s string) string {
	return strconv.Quote(s)
}
