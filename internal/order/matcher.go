package order

// Target is the leading segment of platform-specific tables such as
// [target.'cfg(unix)'.dependencies].
const Target = "target"

// Matcher lists the recognized dependency tables.
type Matcher struct {
	// Headings are table names whose entries are sorted by key.
	Headings []string
	// HeadingKeys are (table, key) pairs: string arrays to sort, or nested
	// tables whose entries are sorted.
	HeadingKeys [][2]string
	// ArrayKeys are the HeadingKeys holding string arrays.
	ArrayKeys [][2]string
}

// DefaultMatcher is the fixed set of sortable names.
var DefaultMatcher = Matcher{
	Headings: []string{"dependencies", "dev-dependencies", "build-dependencies"},
	HeadingKeys: [][2]string{
		{"workspace", "members"},
		{"workspace", "exclude"},
		{"workspace", "dependencies"},
		{"workspace", "dev-dependencies"},
		{"workspace", "build-dependencies"},
	},
	ArrayKeys: [][2]string{
		{"workspace", "members"},
		{"workspace", "exclude"},
	},
}

func (m Matcher) isHeading(name string) bool {
	for _, h := range m.Headings {
		if h == name {
			return true
		}
	}
	return false
}

func (m Matcher) isHeadingKey(path []string) bool {
	if len(path) != 2 {
		return false
	}
	for _, hk := range m.HeadingKeys {
		if hk[0] == path[0] && hk[1] == path[1] {
			return true
		}
	}
	return false
}

// IsSortedArray reports whether the value at path is a string array to sort.
func (m Matcher) IsSortedArray(path []string) bool {
	if len(path) != 2 {
		return false
	}
	for _, ak := range m.ArrayKeys {
		if ak[0] == path[0] && ak[1] == path[1] {
			return true
		}
	}
	return false
}

// isSortableRoot: tables under these roots are placed in lexical path order.
func (m Matcher) isSortableRoot(root string) bool {
	return root == Target || m.isHeading(root)
}
