package pattern

import (
	"testing"

	"github.com/tucker-bin/noctua-forest-sub005/profile"
	"github.com/tucker-bin/noctua-forest-sub005/tokenizer"
)

// segmentsOf tokenizes text as one chunk at offset 0 and transcribes it
// with the profile for lang.
func segmentsOf(t testing.TB, text, lang string) []PhoneticSegment {
	t.Helper()
	p := profile.Lookup(lang)
	lines := tokenizer.NewLines(text)
	var segs []PhoneticSegment
	for _, tok := range tokenizer.Tokens(text) {
		seg := NewSegment(tok.Text, tok.Start, tok.End, 0, lines.Line(tok.Start))
		if err := seg.Validate(); err != nil {
			t.Fatalf("segment %v: %v", seg, err)
		}
		ps := NewPhoneticSegment(seg, p)
		if ps.PhoneticForm == "" {
			continue
		}
		segs = append(segs, ps)
	}
	return segs
}

// ofType filters ps by type.
func ofType(ps []Pattern, t Type) []Pattern {
	var out []Pattern
	for _, p := range ps {
		if p.Type == t {
			out = append(out, p)
		}
	}
	return out
}
