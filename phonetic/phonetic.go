// Package phonetic converts words into approximate phonetic forms.
//
// A word is folded (lowercased with the language's case mapping, NFC
// composed, non-letters removed) and looked up in the embedded
// pronunciation table when the profile has one. Otherwise the profile's
// spelling rules produce the form: initial rules, the silent-e rule,
// final rules, then the ordered substitution pass. Stress is assigned by
// syllable count: one or two syllables stress the first, three or more
// stress the antepenultimate.
//
// Two API layers are provided:
//
//   - Structured: Transcribe returns a Transcription with form, stress
//     pattern, syllable count, vowel and consonant sequences and rhyme key.
//   - Convenience: Phoneticize returns only the phonetic form.
//
// Known limitations:
//   - The rules approximate pronunciation; they do not model allophony,
//     vowel reduction outside the dictionary, or lexical stress.
//   - Only English has a pronunciation table.
//
// All functions are pure and safe for concurrent use.
package phonetic

import (
	"strings"
	"unicode/utf8"

	"github.com/tucker-bin/noctua-forest-sub005/internal/textfold"
	"github.com/tucker-bin/noctua-forest-sub005/profile"
)

// Transcription is the phonetic analysis of one word.
type Transcription struct {
	Word       string `json:"word"`       // folded spelling
	Form       string `json:"form"`       // phonetic form including the stress marker
	Stress     string `json:"stress"`     // one digit per syllable: 1 primary, 2 secondary, 0 none
	Syllables  int    `json:"syllables"`  // syllable count of Form
	Vowels     string `json:"vowels"`     // vowel symbols of Form, in order
	Consonants string `json:"consonants"` // consonant symbols of Form, in order
	RhymeKey   string `json:"rhymeKey"`   // tail of Form that must match to rhyme
}

// Transcribe returns the full transcription of word under profile p.
// A nil profile means the default profile. A word without letters
// yields the zero Transcription.
func Transcribe(word string, p *profile.Profile) Transcription {
	if p == nil {
		p = profile.Default()
	}
	folded := textfold.Word(word, p.Tag())
	if folded == "" {
		return Transcription{}
	}

	var form, stress string
	if p.Dictionary {
		if phones, ok := lookupPhones(folded); ok {
			form, stress = fromPhones(phones, p.PrimaryStress())
		}
	}
	if form == "" {
		form, stress = applyRules(folded, p)
	}

	return Transcription{
		Word:       folded,
		Form:       form,
		Stress:     stress,
		Syllables:  CountSyllables(form, p),
		Vowels:     VowelSequence(form, p),
		Consonants: ConsonantSequence(form, p),
		RhymeKey:   RhymeKey(form, p),
	}
}

// Phoneticize returns the phonetic form of word.
//
// Convenience wrapper around Transcribe.
func Phoneticize(word string, p *profile.Profile) string {
	return Transcribe(word, p).Form
}

// applyRules builds a form from spelling rules and assigns stress.
func applyRules(word string, p *profile.Profile) (form, stress string) {
	s := p.ApplyInitial(word)
	s = silentE(s, p)
	s = p.ApplyFinal(s)
	s = p.Replace(s)
	return assignStress(s, p)
}

// silentE rewrites a vowel-consonant-e ending: the final e is dropped and
// the vowel takes its long spelling. When the vowel is part of a vowel
// team the e is only dropped.
func silentE(w string, p *profile.Profile) string {
	if len(p.SilentE) == 0 {
		return w
	}
	rs := []rune(w)
	n := len(rs)
	if n < 3 || rs[n-1] != 'e' || profile.IsWrittenVowel(rs[n-2]) || !profile.IsWrittenVowel(rs[n-3]) {
		return w
	}
	if n >= 4 && profile.IsWrittenVowel(rs[n-4]) {
		return string(rs[:n-1])
	}
	long, ok := p.SilentE[string(rs[n-3])]
	if !ok {
		return string(rs[:n-1])
	}
	return string(rs[:n-3]) + long + string(rs[n-2])
}

// assignStress inserts the primary stress marker before the stressed
// nucleus of form and returns the stress digits.
func assignStress(form string, p *profile.Profile) (string, string) {
	nuclei := nucleusOffsets(form, p)
	n := len(nuclei)
	if n == 0 {
		return form, ""
	}

	// One or two syllables: the first. Three or more: the antepenultimate.
	idx := 0
	if n >= 3 {
		idx = n - 3
	}

	digits := []byte(strings.Repeat("0", n))
	digits[idx] = '1'
	at := nuclei[idx]
	return form[:at] + p.PrimaryStress() + form[at:], string(digits)
}

// nucleusOffsets returns the byte offset of every vowel nucleus in form.
// A listed diphthong is one nucleus; other adjacent vowels are separate.
func nucleusOffsets(form string, p *profile.Profile) []int {
	var offs []int
	for i := 0; i < len(form); {
		r, size := utf8.DecodeRuneInString(form[i:])
		if !p.IsVowel(r) {
			i += size
			continue
		}
		offs = append(offs, i)
		step := size
		for _, d := range p.Nuclei() {
			if strings.HasPrefix(form[i:], d) {
				step = len(d)
				break
			}
		}
		i += step
	}
	return offs
}

// CountSyllables counts the vowel nuclei of a phonetic form.
func CountSyllables(form string, p *profile.Profile) int {
	if p == nil {
		p = profile.Default()
	}
	return len(nucleusOffsets(form, p))
}

// VowelSequence returns the vowel symbols of form in order.
func VowelSequence(form string, p *profile.Profile) string {
	if p == nil {
		p = profile.Default()
	}
	return filter(form, p.IsVowel)
}

// ConsonantSequence returns the consonant symbols of form in order.
func ConsonantSequence(form string, p *profile.Profile) string {
	if p == nil {
		p = profile.Default()
	}
	return filter(form, p.IsConsonant)
}

func filter(s string, keep func(rune) bool) string {
	var b strings.Builder
	for _, r := range s {
		if keep(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// RhymeKey returns the part of form that must match for two words to
// rhyme: from the last primary-stressed vowel to the end for
// last_stressed_vowel profiles, from the last nucleus for last_vowel
// profiles and for unstressed forms. A form without vowels is its own key.
// Stress markers are removed from the key.
func RhymeKey(form string, p *profile.Profile) string {
	if p == nil {
		p = profile.Default()
	}
	if form == "" {
		return ""
	}
	if p.RhymeRule == profile.LastStressedVowel {
		marker := p.PrimaryStress()
		if i := strings.LastIndex(form, marker); i >= 0 {
			return stripMarkers(form[i+len(marker):], p)
		}
	}
	offs := nucleusOffsets(form, p)
	if len(offs) == 0 {
		return stripMarkers(form, p)
	}
	return stripMarkers(form[offs[len(offs)-1]:], p)
}

func stripMarkers(s string, p *profile.Profile) string {
	return filter(s, func(r rune) bool { return !p.IsStressMarker(r) })
}

// similarityEpsilon absorbs floating-point error in threshold comparisons.
const similarityEpsilon = 1e-9

// Similarity scores how alike two transcriptions sound, in [0, 1]:
// 0.6 times the vowel match plus 0.4 times the consonant match. Each
// match counts equal symbols over the common trailing slice of the two
// sequences, divided by the longer sequence length.
func Similarity(a, b Transcription) float64 {
	return 0.6*trailingMatch(a.Vowels, b.Vowels) + 0.4*trailingMatch(a.Consonants, b.Consonants)
}

// AtLeast reports whether score reaches threshold, tolerating rounding.
func AtLeast(score, threshold float64) bool {
	return score+similarityEpsilon >= threshold
}

// Above reports whether score strictly exceeds threshold, tolerating rounding.
func Above(score, threshold float64) bool {
	return score > threshold+similarityEpsilon
}

func trailingMatch(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)
	longer := max(la, lb)
	if longer == 0 {
		return 0
	}
	eq := 0
	for i := 1; i <= min(la, lb); i++ {
		if ra[la-i] == rb[lb-i] {
			eq++
		}
	}
	return float64(eq) / float64(longer)
}
