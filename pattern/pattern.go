// Package pattern detects sound patterns among transcribed segments.
//
// Every detector is a pure function of its segments and Options and
// does not depend on the order detectors run in:
//
//   - DetectRhymes: rhyme, slant_rhyme and internal_rhyme
//   - DetectAlliteration: shared first consonant
//   - DetectAssonance, DetectConsonance: shared leading vowels or consonants
//   - DetectConsonantClasses: sibilance, fricative, plosive, liquid
//   - DetectRhythm: runs of equal stress shape
//   - DetectCodeSwitch, DetectBridges: cross-language transitions and
//     similar-sounding words across languages
//
// DetectMeter runs once per document after chunk results are merged.
//
// Pattern IDs are deterministic: c{chunk}-{type}-{n}, numbered per type
// in detection order. Segments passed to a detector must be in document
// order.
//
// All functions are safe for concurrent use.
package pattern

import (
	"context"
	"fmt"
)

// detector is one per-chunk detector.
type detector struct {
	name string
	run  func([]PhoneticSegment, Options) []Pattern
}

// detectors run in this order; the order fixes the output order.
var detectors = []detector{
	{"rhyme", DetectRhymes},
	{"alliteration", DetectAlliteration},
	{"assonance", DetectAssonance},
	{"consonance", DetectConsonance},
	{"consonant classes", DetectConsonantClasses},
	{"rhythm", DetectRhythm},
	{"code switch", DetectCodeSwitch},
	{"bridge", DetectBridges},
}

// Detect runs every per-chunk detector over segs. It checks ctx before
// each detector and returns the context error if it is done.
func Detect(ctx context.Context, segs []PhoneticSegment, opts Options) ([]Pattern, error) {
	opts = opts.withDefaults()
	var out []Pattern
	for _, d := range detectors {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("pattern: %s: %w", d.name, err)
		}
		out = append(out, d.run(segs, opts)...)
	}
	return out, nil
}
