package pattern

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/tucker-bin/noctua-forest-sub005/detect"
	"github.com/tucker-bin/noctua-forest-sub005/phonetic"
	"github.com/tucker-bin/noctua-forest-sub005/profile"
)

// Type identifies a pattern family.
type Type int

const (
	Rhyme          Type = iota + 1 // identical rhyme keys, high similarity
	SlantRhyme                     // identical rhyme keys, lower similarity
	InternalRhyme                  // rhyming words close together
	Alliteration                   // shared first consonant
	Assonance                      // shared leading vowels
	Consonance                     // shared leading consonants
	Sibilance                      // s z ʃ ʒ ʧ ʤ
	Fricative                      // f v θ ð s z ʃ ʒ h
	Plosive                        // p b t d k g
	Liquid                         // l r
	Rhythm                         // repeated stress and syllable shape, or meter
	CodeSwitch                     // adjacent words in different languages
	PhoneticBridge                 // similar-sounding words across languages
)

// typeNames maps Type values to their wire names.
var typeNames = [...]string{
	Rhyme:          "rhyme",
	SlantRhyme:     "slant_rhyme",
	InternalRhyme:  "internal_rhyme",
	Alliteration:   "alliteration",
	Assonance:      "assonance",
	Consonance:     "consonance",
	Sibilance:      "sibilance",
	Fricative:      "fricative",
	Plosive:        "plosive",
	Liquid:         "liquid",
	Rhythm:         "rhythm",
	CodeSwitch:     "code_switch",
	PhoneticBridge: "phonetic_bridge",
}

// typeFromName maps wire names back to Type values.
var typeFromName = func() map[string]Type {
	m := make(map[string]Type, len(typeNames))
	for t, name := range typeNames {
		if name != "" {
			m[name] = Type(t)
		}
	}
	return m
}()

// Types returns every pattern type in declaration order.
func Types() []Type {
	out := make([]Type, 0, len(typeNames)-1)
	for t := Rhyme; t <= PhoneticBridge; t++ {
		out = append(out, t)
	}
	return out
}

// ParseType returns the Type with wire name s.
func ParseType(s string) (Type, error) {
	t, ok := typeFromName[s]
	if !ok {
		return 0, fmt.Errorf("pattern: unknown type: %q", s)
	}
	return t, nil
}

// Valid reports whether t is a declared type.
func (t Type) Valid() bool {
	return t >= Rhyme && t <= PhoneticBridge
}

// String returns the wire name of the type.
func (t Type) String() string {
	if t.Valid() {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// MarshalJSON encodes the type as a JSON string (e.g. "slant_rhyme").
func (t Type) MarshalJSON() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("pattern: cannot marshal %s", t)
	}
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes a JSON string into a Type. Unknown names fail.
func (t *Type) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Segment is a token span. Start and End are chunk-relative byte
// offsets; GlobalStart and GlobalEnd are document-relative, so
// doc[GlobalStart:GlobalEnd] == Text.
type Segment struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	Start       int    `json:"startIndex"`
	End         int    `json:"endIndex"`
	GlobalStart int    `json:"globalStartIndex"`
	GlobalEnd   int    `json:"globalEndIndex"`
	Line        int    `json:"line"` // zero-based document line
}

// ErrBadSegment reports a segment whose offsets violate End > Start.
var ErrBadSegment = errors.New("pattern: invalid segment offsets")

// SegmentID derives the segment ID from its global offsets, so a token
// seen by two overlapping chunks has one ID.
func SegmentID(globalStart, globalEnd int) string {
	return fmt.Sprintf("s%d:%d", globalStart, globalEnd)
}

// NewSegment builds a segment from a document span and the base offset
// of the chunk it was read from.
func NewSegment(text string, globalStart, globalEnd, chunkBase, line int) Segment {
	return Segment{
		ID:          SegmentID(globalStart, globalEnd),
		Text:        text,
		Start:       globalStart - chunkBase,
		End:         globalEnd - chunkBase,
		GlobalStart: globalStart,
		GlobalEnd:   globalEnd,
		Line:        line,
	}
}

// Validate checks the offset invariants of s.
func (s Segment) Validate() error {
	if s.End <= s.Start || s.GlobalEnd <= s.GlobalStart || s.Start < 0 {
		return fmt.Errorf("%w: %s local [%d:%d] global [%d:%d]",
			ErrBadSegment, s.ID, s.Start, s.End, s.GlobalStart, s.GlobalEnd)
	}
	if s.End-s.Start != s.GlobalEnd-s.GlobalStart || s.GlobalEnd-s.GlobalStart != len(s.Text) {
		return fmt.Errorf("%w: %s length mismatch", ErrBadSegment, s.ID)
	}
	return nil
}

// SoundQuality lists the vowel and consonant symbols of a phonetic form.
type SoundQuality struct {
	Vowels     []string `json:"vowels"`
	Consonants []string `json:"consonants"`
}

// PhoneticSegment is a Segment with its transcription and language.
// It is not modified after NewPhoneticSegment returns.
type PhoneticSegment struct {
	Segment
	Word          string        `json:"word"` // folded spelling
	PhoneticForm  string        `json:"phoneticForm"`
	StressPattern string        `json:"stressPattern"`
	SyllableCount int           `json:"syllableCount"`
	SoundQuality  SoundQuality  `json:"soundQuality"`
	RhymeKey      string        `json:"rhymeKey"`
	Lang          string        `json:"lang"`
	Script        detect.Script `json:"script"`
}

// NewPhoneticSegment transcribes seg with profile p and classifies its
// language against the document language p.Code.
func NewPhoneticSegment(seg Segment, p *profile.Profile) PhoneticSegment {
	if p == nil {
		p = profile.Default()
	}
	tr := phonetic.Transcribe(seg.Text, p)
	cls := detect.Classify(seg.Text, p.Code)
	return PhoneticSegment{
		Segment:       seg,
		Word:          tr.Word,
		PhoneticForm:  tr.Form,
		StressPattern: tr.Stress,
		SyllableCount: tr.Syllables,
		SoundQuality: SoundQuality{
			Vowels:     symbols(tr.Vowels),
			Consonants: symbols(tr.Consonants),
		},
		RhymeKey: tr.RhymeKey,
		Lang:     cls.Lang,
		Script:   cls.Script,
	}
}

// Transcription returns the phonetic fields of s for similarity scoring.
func (s PhoneticSegment) Transcription() phonetic.Transcription {
	return phonetic.Transcription{
		Word:       s.Word,
		Form:       s.PhoneticForm,
		Stress:     s.StressPattern,
		Syllables:  s.SyllableCount,
		Vowels:     strings.Join(s.SoundQuality.Vowels, ""),
		Consonants: strings.Join(s.SoundQuality.Consonants, ""),
		RhymeKey:   s.RhymeKey,
	}
}

func symbols(seq string) []string {
	out := make([]string, 0, len(seq))
	for _, r := range seq {
		out = append(out, string(r))
	}
	return out
}

// Span is a document byte range covered by a pattern's segments.
type Span struct {
	Start int
	End   int
}

// Overlaps reports whether b starts at or before the end of s.
func (s Span) Overlaps(b Span) bool {
	return s.End >= b.Start && b.End >= s.Start
}

// Pattern is a detected sound relationship among segments.
type Pattern struct {
	ID                string   `json:"id"`
	Type              Type     `json:"type"`
	SegmentIDs        []string `json:"segmentIds"`
	OriginalText      string   `json:"originalText"`
	Significance      float64  `json:"significance"`
	PrimaryFeature    string   `json:"primaryFeature"`
	SecondaryFeatures []string `json:"secondaryFeatures"`
	Description       string   `json:"description"`

	// Span is the document range of the segments, used for merging.
	Span Span `json:"-"`
}

// String returns a debug representation, e.g. rhyme(c0-rhyme-0)[3 segs].
func (p Pattern) String() string {
	return fmt.Sprintf("%s(%s)[%d segs]", p.Type, p.ID, len(p.SegmentIDs))
}

// Index resolves segment IDs to segments.
type Index map[string]Segment

// NewIndex indexes segs by ID. Later duplicates are ignored.
func NewIndex(segs []PhoneticSegment) Index {
	ix := make(Index, len(segs))
	ix.Add(segs)
	return ix
}

// Add indexes segs. Existing IDs are kept.
func (ix Index) Add(segs []PhoneticSegment) {
	for _, s := range segs {
		if _, ok := ix[s.ID]; !ok {
			ix[s.ID] = s.Segment
		}
	}
}

// Sort orders ids by global offset and removes duplicates. Unknown IDs
// sort last, by name.
func (ix Index) Sort(ids []string) []string {
	out := slices.Clone(ids)
	slices.SortFunc(out, func(a, b string) int {
		sa, okA := ix[a]
		sb, okB := ix[b]
		switch {
		case okA && okB:
			if sa.GlobalStart != sb.GlobalStart {
				return sa.GlobalStart - sb.GlobalStart
			}
			return sa.GlobalEnd - sb.GlobalEnd
		case okA:
			return -1
		case okB:
			return 1
		}
		return strings.Compare(a, b)
	})
	return slices.Compact(out)
}

// Text joins the texts of ids with single spaces, in the given order.
func (ix Index) Text(ids []string) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		if s, ok := ix[id]; ok {
			parts = append(parts, s.Text)
		}
	}
	return strings.Join(parts, " ")
}

// Span returns the document range covered by ids.
func (ix Index) Span(ids []string) Span {
	var sp Span
	first := true
	for _, id := range ids {
		s, ok := ix[id]
		if !ok {
			continue
		}
		if first {
			sp = Span{Start: s.GlobalStart, End: s.GlobalEnd}
			first = false
			continue
		}
		sp.Start = min(sp.Start, s.GlobalStart)
		sp.End = max(sp.End, s.GlobalEnd)
	}
	return sp
}
