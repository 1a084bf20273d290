package pattern

import (
	"fmt"
	"slices"
	"strconv"
)

// DetectRhythm reports runs of at least RhythmMin consecutive segments
// sharing stress pattern and syllable count. Segments without syllables
// break a run. Significance is 0.3 + 0.1·min(n−2, 4).
func DetectRhythm(segs []PhoneticSegment, opts Options) []Pattern {
	opts = opts.withDefaults()
	var out []Pattern

	flush := func(run []PhoneticSegment) {
		n := len(run)
		if n < opts.RhythmMin {
			return
		}
		shape := rhythmShape(run[0])
		desc := fmt.Sprintf("%d consecutive words with stress %s and %d syllables",
			n, run[0].StressPattern, run[0].SyllableCount)
		out = append(out, build(Rhythm, run, 0.3+0.1*float64(min(n-2, 4)), shape, nil, desc))
	}

	start := 0
	for i := 1; i <= len(segs); i++ {
		if i < len(segs) && segs[i].SyllableCount > 0 && rhythmShape(segs[i]) == rhythmShape(segs[start]) {
			continue
		}
		if segs[start].SyllableCount > 0 {
			flush(segs[start:i])
		}
		start = i
	}
	return assignIDs(out, opts.Chunk)
}

// rhythmShape is the primary feature of a rhythm run: "stress/syllables".
func rhythmShape(s PhoneticSegment) string {
	return s.StressPattern + "/" + strconv.Itoa(s.SyllableCount)
}

// meterNames names common per-line syllable totals.
var meterNames = map[int]string{
	8:  "Octosyllabic",
	10: "Iambic pentameter",
	12: "Alexandrine",
	14: "Fourteener",
}

// MeterName returns the name of a line length in syllables.
func MeterName(syllables int) string {
	if name, ok := meterNames[syllables]; ok {
		return name
	}
	return fmt.Sprintf("%d-syllable", syllables)
}

// DetectMeter runs over the unique segments of a whole document. When
// every line carrying segments has the same syllable total, and that total
// is at least 8, it returns one rhythm pattern naming the meter. A single
// line qualifies on its own. Otherwise it returns nil.
func DetectMeter(segs []PhoneticSegment) []Pattern {
	if len(segs) == 0 {
		return nil
	}
	ordered := slices.Clone(segs)
	slices.SortStableFunc(ordered, func(a, b PhoneticSegment) int { return a.GlobalStart - b.GlobalStart })

	totals := make(map[int]int)
	var lines []int
	for _, s := range ordered {
		if _, ok := totals[s.Line]; !ok {
			lines = append(lines, s.Line)
		}
		totals[s.Line] += s.SyllableCount
	}
	n := totals[lines[0]]
	for _, l := range lines[1:] {
		if totals[l] != n {
			return nil
		}
	}
	if n < DefaultMeterMin {
		return nil
	}

	name := MeterName(n)
	desc := fmt.Sprintf("%s: %d lines of %d syllables", name, len(lines), n)
	p := build(Rhythm, ordered, meterSignificance, "meter:"+strconv.Itoa(n), []string{name}, desc)
	p.ID = meterID
	return []Pattern{p}
}
