package ast

import (
	"strings"

	"cargosort/internal/source"
)

// KeySegment is one component of a dotted key.
type KeySegment struct {
	Raw  string // as written: bare, "quoted" or 'literal'
	Name string // decoded
	Span source.Span
}

// Key is a possibly dotted key or table path.
type Key struct {
	Segments []KeySegment
	Span     source.Span
}

// NewKey builds a key from bare segment names. Names are quoted when they
// are not valid bare keys.
func NewKey(names ...string) Key {
	k := Key{Segments: make([]KeySegment, 0, len(names))}
	for _, n := range names {
		k.Segments = append(k.Segments, KeySegment{Raw: quoteKey(n), Name: n})
	}
	return k
}

func (k Key) Len() int { return len(k.Segments) }

// Names returns decoded segment names.
func (k Key) Names() []string {
	out := make([]string, len(k.Segments))
	for i, s := range k.Segments {
		out[i] = s.Name
	}
	return out
}

// Name returns the decoded segment i, or "" when out of range.
func (k Key) Name(i int) string {
	if i < 0 || i >= len(k.Segments) {
		return ""
	}
	return k.Segments[i].Name
}

// String renders the key with normalized dot spacing, keeping each segment's
// original quoting.
func (k Key) String() string {
	var b strings.Builder
	for i, s := range k.Segments {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s.Raw)
	}
	return b.String()
}

// Dotted returns decoded names joined with '.'. Only for display and lookup
// of names that contain no dots.
func (k Key) Dotted() string {
	return strings.Join(k.Names(), ".")
}

// Compare orders keys segment-wise by decoded names, byte-wise and
// case-sensitive; a key sorts before any key it is a prefix of.
func (k Key) Compare(other Key) int {
	n := min(len(k.Segments), len(other.Segments))
	for i := 0; i < n; i++ {
		if c := strings.Compare(k.Segments[i].Name, other.Segments[i].Name); c != 0 {
			return c
		}
	}
	switch {
	case len(k.Segments) < len(other.Segments):
		return -1
	case len(k.Segments) > len(other.Segments):
		return 1
	}
	return 0
}

// Equal reports whether both keys have the same decoded segments.
func (k Key) Equal(other Key) bool {
	return len(k.Segments) == len(other.Segments) && k.Compare(other) == 0
}

// HasPrefix reports whether the leading segments of k equal prefix.
func (k Key) HasPrefix(prefix []string) bool {
	if len(prefix) > len(k.Segments) {
		return false
	}
	for i, p := range prefix {
		if k.Segments[i].Name != p {
			return false
		}
	}
	return true
}

// PathKey is a map key for a segment path; segments may contain dots.
func PathKey(names []string) string {
	return strings.Join(names, "\x00")
}

// IsBareKey reports whether s can be written without quotes.
func IsBareKey(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '_' || c == '-') {
			return false
		}
	}
	return true
}

func quoteKey(s string) string {
	if IsBareKey(s) {
		return s
	}
	if !strings.ContainsAny(s, "'\n") {
		return "'" + s + "'"
	}
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\t", `\t`)
	return `"` + r.Replace(s) + `"`
}
