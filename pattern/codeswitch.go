package pattern

import (
	"fmt"

	"github.com/tucker-bin/noctua-forest-sub005/detect"
	"github.com/tucker-bin/noctua-forest-sub005/phonetic"
)

// DetectCodeSwitch reports one code_switch pattern when at least one pair
// of adjacent segments differs in language. The description names the
// first transition as "phoneticTransition: en (Latin) -> zh (Han)".
// Significance is 0.5 + 0.1·min(n, 5) for n switch points.
func DetectCodeSwitch(segs []PhoneticSegment, opts Options) []Pattern {
	opts = opts.withDefaults()

	var (
		members     []PhoneticSegment
		transitions []string
		switches    int
		firstFrom   PhoneticSegment
		firstTo     PhoneticSegment
	)
	for i := 1; i < len(segs); i++ {
		prev, cur := segs[i-1], segs[i]
		if prev.Lang == cur.Lang {
			continue
		}
		if switches == 0 {
			firstFrom, firstTo = prev, cur
		}
		switches++
		if len(members) == 0 || members[len(members)-1].ID != prev.ID {
			members = append(members, prev)
		}
		members = append(members, cur)
		transitions = appendUnique(transitions, prev.Lang+"->"+cur.Lang)
	}
	if switches == 0 {
		return nil
	}

	desc := fmt.Sprintf("%d language switches; phoneticTransition: %s (%s) -> %s (%s)",
		switches, firstFrom.Lang, scriptLabel(firstFrom.Script), firstTo.Lang, scriptLabel(firstTo.Script))
	p := build(CodeSwitch, members, 0.5+0.1*float64(min(switches, 5)), transitions[0], transitions, desc)
	return assignIDs([]Pattern{p}, opts.Chunk)
}

func scriptLabel(s detect.Script) string {
	if s == detect.ScriptUnknown {
		return "none"
	}
	return s.String()
}

// DetectBridges compares every pair of segments in different languages
// and bundles the pairs whose phonetic similarity exceeds BridgeThreshold
// into one phonetic_bridge pattern. Significance is the mean similarity
// of the bundled pairs.
func DetectBridges(segs []PhoneticSegment, opts Options) []Pattern {
	opts = opts.withDefaults()

	var (
		inPair   = make(map[string]bool)
		features []string
		total    float64
		pairs    int
		primary  string
	)
	for i := range segs {
		for j := i + 1; j < len(segs); j++ {
			a, b := segs[i], segs[j]
			if a.Lang == b.Lang || a.SyllableCount == 0 || b.SyllableCount == 0 {
				continue
			}
			sim := phonetic.Similarity(a.Transcription(), b.Transcription())
			if !phonetic.Above(sim, opts.BridgeThreshold) {
				continue
			}
			if pairs == 0 {
				primary = langPair(a.Lang, b.Lang)
			}
			pairs++
			total += sim
			inPair[a.ID], inPair[b.ID] = true, true
			if len(features) < maxBridgeFeatures {
				features = append(features, fmt.Sprintf("%s~%s:%.2f", a.Word, b.Word, sim))
			}
		}
	}
	if pairs == 0 {
		return nil
	}

	var members []PhoneticSegment
	for _, s := range segs {
		if inPair[s.ID] {
			members = append(members, s)
			inPair[s.ID] = false
		}
	}
	mean := total / float64(pairs)
	desc := fmt.Sprintf("%d cross-language pairs sound alike (mean similarity %.2f)", pairs, mean)
	p := build(PhoneticBridge, members, mean, primary, features, desc)
	return assignIDs([]Pattern{p}, opts.Chunk)
}

// langPair names an unordered language pair, e.g. "en~es".
func langPair(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "~" + b
}
