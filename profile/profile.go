// Package profile holds the per-language phonetic rule tables.
//
// Seven profiles ship embedded: en, es, fr, de, it, pt, ru. Each profile
// lists the phonetic vowel and consonant symbols its rules emit, the
// diphthongs counted as a single syllable nucleus, the rhyme extraction
// rule, and an ordered set of spelling-to-sound substitutions.
//
// Lookup never fails: a code whose primary subtag is not registered
// resolves to the English profile. The registry is built once from
// embedded data and never mutated, so every function is safe for
// concurrent use.
package profile

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"
)

// DefaultCode is the code of the fallback profile.
const DefaultCode = "en"

// RhymeRule selects where a rhyme key starts in a phonetic form.
type RhymeRule int

const (
	LastStressedVowel RhymeRule = iota // from the last stressed vowel
	LastVowel                          // from the last vowel nucleus
)

var rhymeRuleNames = [...]string{
	LastStressedVowel: "last_stressed_vowel",
	LastVowel:         "last_vowel",
}

var rhymeRuleFromName = map[string]RhymeRule{
	"last_stressed_vowel": LastStressedVowel,
	"last_vowel":          LastVowel,
}

// String returns the snake_case name of the rule.
func (r RhymeRule) String() string {
	if int(r) >= 0 && int(r) < len(rhymeRuleNames) {
		return rhymeRuleNames[r]
	}
	return fmt.Sprintf("RhymeRule(%d)", int(r))
}

// MarshalJSON encodes the rule as a JSON string (e.g. "last_vowel").
func (r RhymeRule) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON decodes a JSON string into a RhymeRule.
func (r *RhymeRule) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	rule, ok := rhymeRuleFromName[s]
	if !ok {
		return fmt.Errorf("profile: unknown rhyme rule: %q", s)
	}
	*r = rule
	return nil
}

// Position restricts where a substitution rule may match.
type Position int

const (
	Anywhere Position = iota // ordered single-pass replacement
	Initial                  // word prefix only
	Final                    // word suffix only
)

// Rule is one spelling-to-sound substitution.
type Rule struct {
	From     string
	To       string
	Position Position

	// AfterConsonant limits a Final rule to suffixes preceded by a
	// written consonant.
	AfterConsonant bool
}

// Profile is an immutable per-language rule table.
type Profile struct {
	Code           string
	Name           string
	Script         string // ISO 15924 code, e.g. "Latn"
	Vowels         []string
	Consonants     []string
	StressMarkers  []string
	Diphthongs     []string
	CommonClusters []string
	RhymeRule      RhymeRule
	Rules          []Rule

	// SilentE maps the vowel of a vowel-consonant-e ending to the
	// spelling of its long form. Empty for languages without the rule.
	SilentE map[string]string

	// Dictionary reports whether the pronunciation table covers this
	// language.
	Dictionary bool

	tag        language.Tag
	replacer   *strings.Replacer
	initial    []Rule
	final      []Rule
	vowels     map[rune]bool
	consonants map[rune]bool
	nuclei     []string // diphthongs, longest first
}

// Tag returns the language tag used for case folding.
func (p *Profile) Tag() language.Tag { return p.tag }

// IsVowel reports whether r is a phonetic vowel symbol of the profile.
func (p *Profile) IsVowel(r rune) bool { return p.vowels[r] }

// IsConsonant reports whether r is a phonetic consonant symbol of the profile.
func (p *Profile) IsConsonant(r rune) bool { return p.consonants[r] }

// IsStressMarker reports whether r is one of the profile's stress markers.
func (p *Profile) IsStressMarker(r rune) bool {
	for _, m := range p.StressMarkers {
		if mr, _ := utf8.DecodeRuneInString(m); mr == r {
			return true
		}
	}
	return false
}

// PrimaryStress returns the marker inserted before a stressed nucleus.
func (p *Profile) PrimaryStress() string {
	if len(p.StressMarkers) == 0 {
		return "ˈ"
	}
	return p.StressMarkers[0]
}

// Nuclei returns the multi-rune vowel sequences counted as one syllable
// nucleus, longest first. The returned slice must not be modified.
func (p *Profile) Nuclei() []string { return p.nuclei }

// Replace applies the ordered Anywhere rules in a single pass.
func (p *Profile) Replace(s string) string {
	if p.replacer == nil {
		return s
	}
	return p.replacer.Replace(s)
}

// ApplyInitial rewrites the first matching Initial rule prefix of word.
// A rule never consumes the whole word.
func (p *Profile) ApplyInitial(word string) string {
	for _, r := range p.initial {
		if len(word) > len(r.From) && strings.HasPrefix(word, r.From) {
			return r.To + word[len(r.From):]
		}
	}
	return word
}

// ApplyFinal rewrites the first matching Final rule suffix of word.
// A rule never consumes the whole word.
func (p *Profile) ApplyFinal(word string) string {
	for _, r := range p.final {
		if len(word) <= len(r.From) || !strings.HasSuffix(word, r.From) {
			continue
		}
		stem := word[:len(word)-len(r.From)]
		if r.AfterConsonant {
			last, _ := utf8.DecodeLastRuneInString(stem)
			if IsWrittenVowel(last) {
				continue
			}
		}
		return stem + r.To
	}
	return word
}

// Cluster returns the longest common onset cluster word starts with, or "".
func (p *Profile) Cluster(word string) string {
	best := ""
	for _, c := range p.CommonClusters {
		if len(c) > len(best) && strings.HasPrefix(word, c) {
			best = c
		}
	}
	return best
}

// writtenVowels lists the orthographic vowels of the shipped Latin profiles.
const writtenVowels = "aeiouyàáâãäåèéêëìíîïòóôõöùúûüæœ"

// IsWrittenVowel reports whether r is a vowel letter in Latin orthography.
func IsWrittenVowel(r rune) bool {
	return strings.ContainsRune(writtenVowels, r)
}

// Lookup returns the profile for a language code. code may be any BCP 47
// tag ("en-US", "pt_BR", "ES"); unknown codes return the default profile.
func Lookup(code string) *Profile {
	if p, ok := registry.byCode[primarySubtag(code)]; ok {
		return p
	}
	return registry.byCode[DefaultCode]
}

// Default returns the English profile.
func Default() *Profile {
	return registry.byCode[DefaultCode]
}

// Codes returns the registered profile codes in sorted order.
func Codes() []string {
	return slices.Clone(registry.codes)
}

// primarySubtag extracts the lowercase primary language subtag of code.
func primarySubtag(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	if tag, err := language.Parse(code); err == nil {
		base, _ := tag.Base()
		return base.String()
	}
	if i := strings.IndexAny(code, "-_"); i >= 0 {
		code = code[:i]
	}
	return strings.ToLower(code)
}
