package order

import "strings"

// ComparePaths orders segment lists lexically, case-sensitive, a parent
// before its children.
func ComparePaths(a, b []string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if c := strings.Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return len(a) - len(b)
}
