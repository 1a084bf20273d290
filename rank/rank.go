// Package rank orders detected patterns and bounds how many are returned.
//
// Patterns are ordered by type priority, then by how many segments they
// cover, then by significance, with the pattern ID as the final tie-break
// so equal inputs always produce equal output.
package rank

import (
	"cmp"
	"slices"

	"github.com/tucker-bin/noctua-forest-sub005/pattern"
)

// DefaultCap is the number of patterns Select keeps when limit is not positive.
const DefaultCap = 35

// priority ranks pattern types; higher sorts first.
var priority = map[pattern.Type]int{
	pattern.Rhyme:          5,
	pattern.Alliteration:   4,
	pattern.SlantRhyme:     4,
	pattern.InternalRhyme:  4,
	pattern.Assonance:      3,
	pattern.CodeSwitch:     3,
	pattern.PhoneticBridge: 3,
	pattern.Consonance:     2,
	pattern.Sibilance:      2,
	pattern.Fricative:      2,
	pattern.Plosive:        2,
	pattern.Liquid:         2,
	pattern.Rhythm:         1,
}

// Priority returns the ranking weight of t. Unknown types weigh 0.
func Priority(t pattern.Type) int {
	return priority[t]
}

// Compare orders a before b when a ranks higher.
func Compare(a, b pattern.Pattern) int {
	if c := cmp.Compare(Priority(b.Type), Priority(a.Type)); c != 0 {
		return c
	}
	if c := cmp.Compare(len(b.SegmentIDs), len(a.SegmentIDs)); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Significance, a.Significance); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// Select returns the highest ranked patterns, at most limit of them. A limit
// of zero or less means DefaultCap. ps is not modified.
func Select(ps []pattern.Pattern, limit int) []pattern.Pattern {
	if len(ps) == 0 {
		return nil
	}
	if limit <= 0 {
		limit = DefaultCap
	}
	out := slices.Clone(ps)
	slices.SortStableFunc(out, Compare)
	if len(out) > limit {
		out = out[:limit:limit]
	}
	return out
}
