// Package order defines which tables of a manifest are sorted and the total
// order used for table paths and keys.
//
// Classification is computed once per table (Policy.Classify) and then used by
// the sorter's comparators, so no name matching happens inside a sort.
package order
