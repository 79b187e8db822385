package sorter

import "errors"

// ErrAmbiguousOrdering is returned when two keys of a table, or two non-array
// tables, have the same path. The parser rejects such documents, so this
// only fires for trees built elsewhere.
var ErrAmbiguousOrdering = errors.New("ambiguous ordering")
