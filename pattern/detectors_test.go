package pattern

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tucker-bin/noctua-forest-sub005/profile"
)

func TestDetectRhymes_MoonJuneSoon(t *testing.T) {
	t.Parallel()

	segs := segmentsOf(t, "moon June soon", "en")
	ps := DetectRhymes(segs, Options{})

	rhymes := ofType(ps, Rhyme)
	require.Len(t, rhymes, 1)
	r := rhymes[0]
	assert.Equal(t, "c0-rhyme-0", r.ID)
	assert.Equal(t, []string{"s0:4", "s5:9", "s10:14"}, r.SegmentIDs)
	assert.Equal(t, "oon", r.PrimaryFeature)
	assert.InDelta(t, 0.5, r.Significance, 1e-9)
	assert.Equal(t, "moon June soon", r.OriginalText)
	assert.Equal(t, Span{Start: 0, End: 14}, r.Span)
	require.NotEmpty(t, r.SecondaryFeatures)
	for _, f := range r.SecondaryFeatures {
		assert.True(t, strings.HasPrefix(f, "metaphone:"), f)
	}

	assert.Empty(t, ofType(ps, SlantRhyme))
	internal := ofType(ps, InternalRhyme)
	require.Len(t, internal, 1)
	assert.Equal(t, "c0-internal_rhyme-0", internal[0].ID)
	assert.Len(t, internal[0].SegmentIDs, 3)
	assert.InDelta(t, 0.6, internal[0].Significance, 1e-9)
}

func TestDetectRhymes_Slant(t *testing.T) {
	t.Parallel()

	// Same rhyme key, different onsets: vowel match 1, consonant match 0.
	segs := segmentsOf(t, "flower power", "en")
	ps := DetectRhymes(segs, Options{})

	assert.Empty(t, ofType(ps, Rhyme))
	slant := ofType(ps, SlantRhyme)
	require.Len(t, slant, 1)
	assert.Equal(t, "aʊɝ", slant[0].PrimaryFeature)
	assert.InDelta(t, 0.7*0.8, slant[0].Significance, 1e-9)
}

func TestDetectRhymes_Significance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want float64
	}{
		{"monosyllabic", "moon soon", 0.5},
		{"two syllables", "Peter heater", 0.7},
		{"three syllables", "tomato pomato", 0.9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ps := append(ofType(DetectRhymes(segmentsOf(t, tt.text, "en"), Options{}), Rhyme),
				ofType(DetectRhymes(segmentsOf(t, tt.text, "en"), Options{}), SlantRhyme)...)
			require.Len(t, ps, 1)
			base := ps[0].Significance
			if ps[0].Type == SlantRhyme {
				base /= 0.8
			}
			assert.InDelta(t, tt.want, base, 1e-9)
		})
	}
}

func TestDetectRhymes_InternalWindow(t *testing.T) {
	t.Parallel()

	far := "moon" + strings.Repeat(" ", 25) + "soon"
	ps := DetectRhymes(segmentsOf(t, far, "en"), Options{})
	assert.Len(t, ofType(ps, Rhyme), 1)
	assert.Empty(t, ofType(ps, InternalRhyme), "gap of 25 exceeds the window")

	ps = DetectRhymes(segmentsOf(t, far, "en"), Options{InternalWindow: 30})
	assert.Len(t, ofType(ps, InternalRhyme), 1)

	ps = DetectRhymes(segmentsOf(t, "moon soon", "en"), Options{InternalWindow: -1})
	assert.Empty(t, ofType(ps, InternalRhyme))
}

func TestCloseMembers(t *testing.T) {
	t.Parallel()

	// moon and June are close, soon is far from June.
	text := "moon June" + strings.Repeat(" ", 30) + "soon"
	segs := segmentsOf(t, text, "en")
	near := closeMembers(segs, DefaultInternalWindow)
	require.Len(t, near, 2)
	assert.Equal(t, "moon", near[0].Text)
	assert.Equal(t, "June", near[1].Text)
}

func TestDetectAlliteration_PeterPiper(t *testing.T) {
	t.Parallel()

	segs := segmentsOf(t, "Peter Piper picked a peck", "en")
	ps := DetectAlliteration(segs, Options{})

	require.Len(t, ps, 1)
	p := ps[0]
	assert.Equal(t, "c0-alliteration-0", p.ID)
	assert.Equal(t, "p", p.PrimaryFeature)
	assert.Len(t, p.SegmentIDs, 4)
	assert.InDelta(t, 0.8, p.Significance, 1e-9)
	assert.Equal(t, "Peter Piper picked peck", p.OriginalText)
}

func TestDetectAlliteration_Minimum(t *testing.T) {
	t.Parallel()

	segs := segmentsOf(t, "Peter Piper", "en")
	assert.Len(t, DetectAlliteration(segs, Options{}), 1)
	assert.Empty(t, DetectAlliteration(segs, Options{AlliterationMin: StrictAlliteration}))
}

func TestDetectAlliteration_Clusters(t *testing.T) {
	t.Parallel()

	ps := DetectAlliteration(segmentsOf(t, "stone street", "en"), Options{})
	require.Len(t, ps, 1)
	assert.Equal(t, []string{"cluster:st", "cluster:str"}, ps[0].SecondaryFeatures)
}

func TestDetectAlliteration_Capped(t *testing.T) {
	t.Parallel()

	ps := DetectAlliteration(segmentsOf(t, "peck peck peck peck peck peck peck", "en"), Options{})
	require.Len(t, ps, 1)
	assert.InDelta(t, 0.9, ps[0].Significance, 1e-9)
}

func TestDetectAssonanceConsonance(t *testing.T) {
	t.Parallel()

	as := DetectAssonance(segmentsOf(t, "moon June soon", "en"), Options{})
	require.Len(t, as, 1)
	assert.Equal(t, "oo", as[0].PrimaryFeature)
	assert.InDelta(t, 0.35, as[0].Significance, 1e-9)
	assert.Equal(t, "c0-assonance-0", as[0].ID)

	cs := DetectConsonance(segmentsOf(t, "Peter Piper picked a peck", "en"), Options{})
	require.Len(t, cs, 1)
	assert.Equal(t, "pk", cs[0].PrimaryFeature)
	assert.Len(t, cs[0].SegmentIDs, 2)
	assert.InDelta(t, 0.3, cs[0].Significance, 1e-9)
}

func TestDetectConsonantClasses(t *testing.T) {
	t.Parallel()

	ps := DetectConsonantClasses(segmentsOf(t, "she sells sea shells", "en"), Options{})

	sib := ofType(ps, Sibilance)
	require.Len(t, sib, 1)
	assert.Len(t, sib[0].SegmentIDs, 4)
	assert.InDelta(t, 0.45, sib[0].Significance, 1e-9)
	assert.Equal(t, "sibilance", sib[0].PrimaryFeature)
	assert.Equal(t, []string{"s", "ʃ"}, sib[0].SecondaryFeatures)

	assert.Len(t, ofType(ps, Fricative), 1)
	assert.Empty(t, ofType(ps, Liquid), "only two words carry l")
	assert.Empty(t, ofType(ps, Plosive))
}

func TestDetectRhythm(t *testing.T) {
	t.Parallel()

	ps := DetectRhythm(segmentsOf(t, "moon June soon Peter", "en"), Options{})
	require.Len(t, ps, 1)
	assert.Equal(t, "1/1", ps[0].PrimaryFeature)
	assert.Len(t, ps[0].SegmentIDs, 3)
	assert.InDelta(t, 0.4, ps[0].Significance, 1e-9)

	assert.Empty(t, DetectRhythm(segmentsOf(t, "moon Peter soon", "en"), Options{}))

	long := DetectRhythm(segmentsOf(t, strings.Repeat("moon ", 10), "en"), Options{})
	require.Len(t, long, 1)
	assert.InDelta(t, 0.7, long[0].Significance, 1e-9)
}

func TestDetectMeter(t *testing.T) {
	t.Parallel()

	line := "moon June soon moon June soon moon June"
	segs := segmentsOf(t, line+"\n"+line, "en")
	ps := DetectMeter(segs)
	require.Len(t, ps, 1)
	p := ps[0]
	assert.Equal(t, "doc-rhythm-0", p.ID)
	assert.Equal(t, Rhythm, p.Type)
	assert.Equal(t, "meter:8", p.PrimaryFeature)
	assert.Equal(t, []string{"Octosyllabic"}, p.SecondaryFeatures)
	assert.InDelta(t, 0.8, p.Significance, 1e-9)
	assert.Len(t, p.SegmentIDs, 16)

	single := DetectMeter(segmentsOf(t, line, "en"))
	require.Len(t, single, 1, "one line of 8 syllables")
	assert.Equal(t, "meter:8", single[0].PrimaryFeature)
	assert.Len(t, single[0].SegmentIDs, 8)
	assert.Contains(t, single[0].Description, "1 lines of 8 syllables")
	assert.Empty(t, DetectMeter(segmentsOf(t, line+"\nmoon", "en")), "unequal lines")
	assert.Empty(t, DetectMeter(segmentsOf(t, "moon June\nsoon moon", "en")), "too short")
	assert.Empty(t, DetectMeter(nil))
}

func TestMeterName(t *testing.T) {
	t.Parallel()

	tests := map[int]string{
		8:  "Octosyllabic",
		10: "Iambic pentameter",
		12: "Alexandrine",
		14: "Fourteener",
		9:  "9-syllable",
	}
	for n, want := range tests {
		assert.Equal(t, want, MeterName(n))
	}
}

func TestDetectCodeSwitch(t *testing.T) {
	t.Parallel()

	ps := DetectCodeSwitch(segmentsOf(t, "hello 你好 world", "en"), Options{})
	require.Len(t, ps, 1)
	p := ps[0]
	assert.Equal(t, CodeSwitch, p.Type)
	assert.Equal(t, "c0-code_switch-0", p.ID)
	assert.Contains(t, p.Description, "phoneticTransition: en (Latin) -> zh (Han)")
	assert.Contains(t, p.Description, "Latin")
	assert.Contains(t, p.Description, "Han")
	assert.Equal(t, "en->zh", p.PrimaryFeature)
	assert.Equal(t, []string{"en->zh", "zh->en"}, p.SecondaryFeatures)
	assert.Equal(t, []string{"s0:5", "s6:12", "s13:18"}, p.SegmentIDs)
	assert.InDelta(t, 0.7, p.Significance, 1e-9)

	assert.Empty(t, DetectCodeSwitch(segmentsOf(t, "moon June soon", "en"), Options{}))
}

func TestDetectBridges(t *testing.T) {
	t.Parallel()

	segs := segmentsOf(t, "my soul sole", "en")
	require.Equal(t, "it", segs[2].Lang)

	ps := DetectBridges(segs, Options{})
	require.Len(t, ps, 1)
	p := ps[0]
	assert.Equal(t, PhoneticBridge, p.Type)
	assert.Equal(t, "en~it", p.PrimaryFeature)
	assert.Equal(t, []string{"s3:7", "s8:12"}, p.SegmentIDs)
	assert.InDelta(t, 1.0, p.Significance, 1e-9)

	assert.Empty(t, DetectBridges(segmentsOf(t, "moon June soon", "en"), Options{}))
}

func TestDetect(t *testing.T) {
	t.Parallel()

	segs := segmentsOf(t, "moon June soon", "en")
	opts := Options{Chunk: 2, Profile: profile.Default()}
	ps, err := Detect(context.Background(), segs, opts)
	require.NoError(t, err)
	require.NotEmpty(t, ps)
	assert.Equal(t, Rhyme, ps[0].Type)
	assert.Equal(t, "c2-rhyme-0", ps[0].ID)

	again, err := Detect(context.Background(), segs, opts)
	require.NoError(t, err)
	if diff := cmp.Diff(ps, again); diff != "" {
		t.Errorf("Detect not deterministic (-first +second):\n%s", diff)
	}
}

func TestDetectCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Detect(ctx, segmentsOf(t, "moon June soon", "en"), Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestDetectorsIndependentOfOrder(t *testing.T) {
	t.Parallel()

	segs := segmentsOf(t, "Peter Piper picked a peck of pickled pepper", "en")
	forward := make(map[string]Pattern)
	for _, d := range detectors {
		for _, p := range d.run(segs, Options{}) {
			forward[p.ID] = p
		}
	}
	for i := len(detectors) - 1; i >= 0; i-- {
		for _, p := range detectors[i].run(segs, Options{}) {
			if diff := cmp.Diff(forward[p.ID], p); diff != "" {
				t.Errorf("%s differs when run in reverse order:\n%s", p.ID, diff)
			}
		}
	}
}

func BenchmarkDetect(b *testing.B) {
	segs := segmentsOf(b, strings.Repeat("Peter Piper picked a peck of pickled pepper\n", 50), "en")
	ctx := context.Background()
	for b.Loop() {
		if _, err := Detect(ctx, segs, Options{}); err != nil {
			b.Fatal(err)
		}
	}
}
