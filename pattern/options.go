package pattern

import (
	"fmt"
	"strings"

	"github.com/tucker-bin/noctua-forest-sub005/profile"
)

const (
	DefaultAlliterationMin = 2   // smallest alliteration group
	StrictAlliteration     = 3   // stricter alliteration minimum
	DefaultSoundMin        = 2   // smallest assonance or consonance group
	DefaultClassMin        = 3   // segments needed for a consonant class pattern
	DefaultRhythmMin       = 3   // shortest rhythm run
	DefaultInternalWindow  = 20  // max bytes between internally rhyming words
	DefaultRhymeThreshold  = 0.8 // rhyme vs slant rhyme cut-off
	DefaultBridgeThreshold = 0.7 // similarity a bridge pair must exceed
	DefaultMeterMin        = 8   // smallest per-line syllable total named as meter
	maxBridgeFeatures      = 20  // pair features kept on a bridge pattern
	meterSignificance      = 0.8 // significance of a named meter
	internalSignificance   = 0.6 // significance of an internal rhyme
	slantFactor            = 0.8 // slant rhyme significance multiplier
	meterID                = "doc-rhythm-0"
)

// Options tunes the detectors. Zero fields take their defaults.
type Options struct {
	// Chunk is the index of the chunk being analyzed; it prefixes IDs.
	Chunk int

	// Profile is the document language profile. Nil means English.
	Profile *profile.Profile

	AlliterationMin int
	SoundMin        int
	ClassMin        int
	RhythmMin       int

	// InternalWindow is the largest gap in bytes between two rhyming
	// words for an internal rhyme. Negative disables internal rhymes.
	InternalWindow int

	RhymeThreshold  float64
	BridgeThreshold float64
}

// DefaultOptions returns the production detector settings.
func DefaultOptions() Options {
	return Options{}.withDefaults()
}

func (o Options) withDefaults() Options {
	if o.Profile == nil {
		o.Profile = profile.Default()
	}
	if o.AlliterationMin <= 0 {
		o.AlliterationMin = DefaultAlliterationMin
	}
	if o.SoundMin <= 0 {
		o.SoundMin = DefaultSoundMin
	}
	if o.ClassMin <= 0 {
		o.ClassMin = DefaultClassMin
	}
	if o.RhythmMin <= 0 {
		o.RhythmMin = DefaultRhythmMin
	}
	if o.InternalWindow == 0 {
		o.InternalWindow = DefaultInternalWindow
	}
	if o.RhymeThreshold <= 0 {
		o.RhymeThreshold = DefaultRhymeThreshold
	}
	if o.BridgeThreshold <= 0 {
		o.BridgeThreshold = DefaultBridgeThreshold
	}
	return o
}

// group collects segments sharing a key, in first-appearance order.
type group struct {
	key  string
	segs []PhoneticSegment
}

// groupBy buckets segs by key; segments with an empty key are skipped.
func groupBy(segs []PhoneticSegment, key func(PhoneticSegment) string) []group {
	var groups []group
	pos := make(map[string]int)
	for _, s := range segs {
		k := key(s)
		if k == "" {
			continue
		}
		i, ok := pos[k]
		if !ok {
			i = len(groups)
			pos[k] = i
			groups = append(groups, group{key: k})
		}
		groups[i].segs = append(groups[i].segs, s)
	}
	return groups
}

// build assembles a pattern over segs, which must be in document order.
func build(t Type, segs []PhoneticSegment, significance float64, primary string, secondary []string, desc string) Pattern {
	ids := make([]string, 0, len(segs))
	texts := make([]string, 0, len(segs))
	sp := Span{Start: segs[0].GlobalStart, End: segs[0].GlobalEnd}
	seen := make(map[string]bool, len(segs))
	for _, s := range segs {
		if seen[s.ID] {
			continue
		}
		seen[s.ID] = true
		ids = append(ids, s.ID)
		texts = append(texts, s.Text)
		sp.Start = min(sp.Start, s.GlobalStart)
		sp.End = max(sp.End, s.GlobalEnd)
	}
	if secondary == nil {
		secondary = []string{}
	}
	return Pattern{
		Type:              t,
		SegmentIDs:        ids,
		OriginalText:      strings.Join(texts, " "),
		Significance:      clamp01(significance),
		PrimaryFeature:    primary,
		SecondaryFeatures: secondary,
		Description:       desc,
		Span:              sp,
	}
}

// assignIDs numbers patterns per type: c{chunk}-{type}-{n}.
func assignIDs(ps []Pattern, chunk int) []Pattern {
	counts := make(map[Type]int)
	for i := range ps {
		n := counts[ps[i].Type]
		counts[ps[i].Type] = n + 1
		ps[i].ID = fmt.Sprintf("c%d-%s-%d", chunk, ps[i].Type, n)
	}
	return ps
}

// appendUnique appends s to list unless present or empty.
func appendUnique(list []string, s string) []string {
	if s == "" {
		return list
	}
	for _, x := range list {
		if x == s {
			return list
		}
	}
	return append(list, s)
}

func clamp01(f float64) float64 {
	return min(max(f, 0), 1)
}

// leading returns the first n runes of the joined symbols.
func leading(symbols []string, n int) string {
	var b strings.Builder
	for _, s := range symbols {
		for _, r := range s {
			if n == 0 {
				return b.String()
			}
			b.WriteRune(r)
			n--
		}
	}
	return b.String()
}
