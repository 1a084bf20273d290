// Package merge reconciles patterns detected independently per chunk.
//
// Overlapping chunks report the same words twice and split patterns that
// straddle a chunk edge. Patterns groups candidates by type and primary
// feature and merges neighbours whose document spans overlap, so no two
// surviving patterns with the same type and primary feature overlap.
// Dedupe is the cheaper exact-duplicate filter for unchunked input.
//
// All functions are safe for concurrent use.
package merge

import (
	"cmp"
	"slices"

	"github.com/tucker-bin/noctua-forest-sub005/pattern"
)

// key identifies patterns that may merge.
type key struct {
	typ     pattern.Type
	primary string
}

// Patterns merges overlapping patterns that share type and primary
// feature. ix resolves segment IDs to offsets and text; it must hold
// every segment referenced by ps. Groups keep their first-appearance
// order; within a group patterns are ordered by span start.
func Patterns(ps []pattern.Pattern, ix pattern.Index) []pattern.Pattern {
	if len(ps) == 0 {
		return nil
	}

	var order []key
	groups := make(map[key][]pattern.Pattern)
	for _, p := range ps {
		k := key{p.Type, p.PrimaryFeature}
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], p)
	}

	out := make([]pattern.Pattern, 0, len(ps))
	for _, k := range order {
		g := groups[k]
		slices.SortStableFunc(g, func(a, b pattern.Pattern) int {
			if c := cmp.Compare(a.Span.Start, b.Span.Start); c != 0 {
				return c
			}
			return cmp.Compare(a.ID, b.ID)
		})

		cur := g[0]
		for _, next := range g[1:] {
			if cur.Span.End >= next.Span.Start {
				cur = union(cur, next, ix)
				continue
			}
			out = append(out, cur)
			cur = next
		}
		out = append(out, cur)
	}
	return out
}

// union merges b into a.
func union(a, b pattern.Pattern, ix pattern.Index) pattern.Pattern {
	ids := ix.Sort(append(slices.Clone(a.SegmentIDs), b.SegmentIDs...))

	features := slices.Clone(a.SecondaryFeatures)
	for _, f := range b.SecondaryFeatures {
		if !slices.Contains(features, f) {
			features = append(features, f)
		}
	}
	if features == nil {
		features = []string{}
	}

	desc := a.Description
	if len(b.SegmentIDs) > len(a.SegmentIDs) {
		desc = b.Description
	}

	return pattern.Pattern{
		ID:                a.ID + "_" + b.ID,
		Type:              a.Type,
		SegmentIDs:        ids,
		OriginalText:      ix.Text(ids),
		Significance:      max(a.Significance, b.Significance),
		PrimaryFeature:    a.PrimaryFeature,
		SecondaryFeatures: features,
		Description:       desc,
		Span: pattern.Span{
			Start: min(a.Span.Start, b.Span.Start),
			End:   max(a.Span.End, b.Span.End),
		},
	}
}

// Dedupe drops patterns whose type and original text repeat an earlier
// pattern's.
func Dedupe(ps []pattern.Pattern) []pattern.Pattern {
	if len(ps) == 0 {
		return nil
	}
	type dupKey struct {
		typ  pattern.Type
		text string
	}
	seen := make(map[dupKey]bool, len(ps))
	out := make([]pattern.Pattern, 0, len(ps))
	for _, p := range ps {
		k := dupKey{p.Type, p.OriginalText}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, p)
	}
	return out
}
