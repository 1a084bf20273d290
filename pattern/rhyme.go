package pattern

import (
	"fmt"

	"github.com/antzucaro/matchr"

	"github.com/tucker-bin/noctua-forest-sub005/detect"
	"github.com/tucker-bin/noctua-forest-sub005/phonetic"
)

// DetectRhymes groups segments by rhyme key. Each group of two or more
// yields a rhyme when its first and last members score at least
// RhymeThreshold on phonetic similarity, else a slant rhyme. Group members
// no more than InternalWindow bytes apart also yield an internal rhyme.
func DetectRhymes(segs []PhoneticSegment, opts Options) []Pattern {
	opts = opts.withDefaults()
	var out []Pattern
	for _, g := range groupBy(segs, func(s PhoneticSegment) string { return s.RhymeKey }) {
		if len(g.segs) < 2 {
			continue
		}
		first, last := g.segs[0], g.segs[len(g.segs)-1]
		sim := phonetic.Similarity(first.Transcription(), last.Transcription())

		typ, sig := Rhyme, rhymeSignificance(g.segs)
		if !phonetic.AtLeast(sim, opts.RhymeThreshold) {
			typ, sig = SlantRhyme, sig*slantFactor
		}
		desc := fmt.Sprintf("%d words share the rhyme /%s/ (similarity %.2f)", len(g.segs), g.key, sim)
		out = append(out, build(typ, g.segs, sig, g.key, metaphoneCodes(g.segs), desc))

		if near := closeMembers(g.segs, opts.InternalWindow); len(near) >= 2 {
			desc := fmt.Sprintf("%d words rhyme on /%s/ within %d characters", len(near), g.key, opts.InternalWindow)
			out = append(out, build(InternalRhyme, near, internalSignificance, g.key, metaphoneCodes(near), desc))
		}
	}
	return assignIDs(out, opts.Chunk)
}

// rhymeSignificance scores a group by its shortest member: 0.9 when every
// word has three or more syllables, 0.7 for two, 0.5 otherwise.
func rhymeSignificance(segs []PhoneticSegment) float64 {
	minSyl := segs[0].SyllableCount
	for _, s := range segs[1:] {
		minSyl = min(minSyl, s.SyllableCount)
	}
	switch {
	case minSyl >= 3:
		return 0.9
	case minSyl == 2:
		return 0.7
	default:
		return 0.5
	}
}

// closeMembers returns the members that lie within window bytes of their
// neighbour in the group. segs are in document order.
func closeMembers(segs []PhoneticSegment, window int) []PhoneticSegment {
	if window < 0 {
		return nil
	}
	var near []PhoneticSegment
	lastAdded := -1
	for i := 1; i < len(segs); i++ {
		if segs[i].GlobalStart-segs[i-1].GlobalEnd > window {
			continue
		}
		if lastAdded != i-1 {
			near = append(near, segs[i-1])
		}
		near = append(near, segs[i])
		lastAdded = i
	}
	return near
}

// metaphoneCodes lists the distinct Double Metaphone codes of the
// members' Latin spellings as "metaphone:CODE" features.
func metaphoneCodes(segs []PhoneticSegment) []string {
	var codes []string
	for _, s := range segs {
		if s.Script != detect.ScriptLatin {
			continue
		}
		primary, secondary := matchr.DoubleMetaphone(s.Word)
		if primary != "" {
			codes = appendUnique(codes, "metaphone:"+primary)
		}
		if secondary != "" && secondary != primary {
			codes = appendUnique(codes, "metaphone:"+secondary)
		}
	}
	return codes
}
