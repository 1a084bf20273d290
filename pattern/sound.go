package pattern

import (
	"fmt"
	"strings"
)

// DetectAlliteration groups segments by the first consonant symbol of
// their phonetic form. Groups of at least AlliterationMin members are
// reported; significance is 0.4 + 0.1·min(n, 5).
func DetectAlliteration(segs []PhoneticSegment, opts Options) []Pattern {
	opts = opts.withDefaults()
	var out []Pattern
	for _, g := range groupBy(segs, func(s PhoneticSegment) string { return leading(s.SoundQuality.Consonants, 1) }) {
		n := len(g.segs)
		if n < opts.AlliterationMin {
			continue
		}
		var clusters []string
		for _, s := range g.segs {
			if c := opts.Profile.Cluster(s.Word); c != "" {
				clusters = appendUnique(clusters, "cluster:"+c)
			}
		}
		desc := fmt.Sprintf("%d words repeat the consonant /%s/", n, g.key)
		out = append(out, build(Alliteration, g.segs, 0.4+0.1*float64(min(n, 5)), g.key, clusters, desc))
	}
	return assignIDs(out, opts.Chunk)
}

// DetectAssonance groups segments by the first two vowel symbols of their
// phonetic form; significance is 0.2 + 0.05·min(n, 5).
func DetectAssonance(segs []PhoneticSegment, opts Options) []Pattern {
	opts = opts.withDefaults()
	return assignIDs(soundGroups(Assonance, segs, opts, func(s PhoneticSegment) []string {
		return s.SoundQuality.Vowels
	}), opts.Chunk)
}

// DetectConsonance groups segments by the first two consonant symbols of
// their phonetic form; significance is 0.2 + 0.05·min(n, 5).
func DetectConsonance(segs []PhoneticSegment, opts Options) []Pattern {
	opts = opts.withDefaults()
	return assignIDs(soundGroups(Consonance, segs, opts, func(s PhoneticSegment) []string {
		return s.SoundQuality.Consonants
	}), opts.Chunk)
}

func soundGroups(t Type, segs []PhoneticSegment, opts Options, seq func(PhoneticSegment) []string) []Pattern {
	var out []Pattern
	for _, g := range groupBy(segs, func(s PhoneticSegment) string { return leading(seq(s), 2) }) {
		n := len(g.segs)
		if n < opts.SoundMin {
			continue
		}
		var full []string
		for _, s := range g.segs {
			full = appendUnique(full, strings.Join(seq(s), ""))
		}
		kind := "vowel"
		if t == Consonance {
			kind = "consonant"
		}
		desc := fmt.Sprintf("%d words share the %s sounds /%s/", n, kind, g.key)
		out = append(out, build(t, g.segs, 0.2+0.05*float64(min(n, 5)), g.key, full, desc))
	}
	return out
}

// consonantClass is a named set of phonetic consonant symbols.
type consonantClass struct {
	typ     Type
	name    string
	symbols []rune
}

// consonantClasses are checked in this order.
var consonantClasses = []consonantClass{
	{Sibilance, "sibilance", []rune{'s', 'z', 'ʃ', 'ʒ', 'ʧ', 'ʤ'}},
	{Fricative, "fricative", []rune{'f', 'v', 'θ', 'ð', 's', 'z', 'ʃ', 'ʒ', 'h'}},
	{Plosive, "plosive", []rune{'p', 'b', 't', 'd', 'k', 'g'}},
	{Liquid, "liquid", []rune{'l', 'r'}},
}

// DetectConsonantClasses reports one pattern per consonant class when at
// least ClassMin segments contain a symbol of the class; significance is
// 0.25 + 0.05·min(n, 5).
func DetectConsonantClasses(segs []PhoneticSegment, opts Options) []Pattern {
	opts = opts.withDefaults()
	var out []Pattern
	for _, c := range consonantClasses {
		var members []PhoneticSegment
		found := make(map[rune]bool)
		for _, s := range segs {
			hit := false
			for _, r := range s.PhoneticForm {
				for _, sym := range c.symbols {
					if r == sym {
						hit = true
						found[sym] = true
					}
				}
			}
			if hit {
				members = append(members, s)
			}
		}
		n := len(members)
		if n < opts.ClassMin {
			continue
		}
		var syms []string
		for _, sym := range c.symbols {
			if found[sym] {
				syms = append(syms, string(sym))
			}
		}
		desc := fmt.Sprintf("%d words carry %s sounds (%s)", n, c.name, strings.Join(syms, " "))
		out = append(out, build(c.typ, members, 0.25+0.05*float64(min(n, 5)), c.name, syms, desc))
	}
	return assignIDs(out, opts.Chunk)
}
