// Package detect classifies the language of a single token.
//
// Classification is a deterministic rule chain, not a statistical model:
//
//  1. Ordered Unicode script checks: Kana (ja), Hangul (ko), Han (zh),
//     Cyrillic (ru), Greek (el), Arabic (ar), Hebrew (he),
//     Devanagari (hi), Thai (th).
//  2. For Latin tokens: the document language's common-word lexicon,
//     diacritic hints (ñ es, ã õ pt, ß ä ö ü de, œ ç è ê fr, ì ò it),
//     then the other lexicons in a fixed order.
//  3. The document language when it is a Latin-script language with a
//     lexicon, otherwise English.
//
// Tokens without letters take the document language.
//
// Two API layers are provided:
//
//   - Structured: Classify returns a Result with language and script.
//   - Convenience: Lang returns the language code as a string.
//
// Known limitations:
//   - One token is too little evidence for closely related languages; a
//     word missing from every lexicon and without diacritics falls back to
//     the document language.
//   - Russian stands in for every Cyrillic-script language.
//
// All functions are safe for concurrent use by multiple goroutines.
package detect

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/tucker-bin/noctua-forest-sub005/data"
	"github.com/tucker-bin/noctua-forest-sub005/internal/textfold"
)

// Result holds the classification of one token.
type Result struct {
	Lang   string `json:"lang"`   // ISO 639-1 code
	Script Script `json:"script"` // writing system
}

// String returns a debug representation, e.g. "zh (Han)".
func (r Result) String() string {
	return fmt.Sprintf("%s (%s)", r.Lang, r.Script)
}

// latinOrder is the fixed order in which lexicons are consulted.
var latinOrder = []string{"en", "es", "fr", "de", "it", "pt"}

// diacriticHints map letters that occur in one Latin-script language's
// orthography far more than in the others. Checked in order.
var diacriticHints = []struct {
	lang    string
	letters string
}{
	{"es", "ñ¿¡"},
	{"pt", "ãõ"},
	{"de", "ßäöü"},
	{"fr", "œçèêëæ"},
	{"it", "ìò"},
}

// lexicons holds folded common words per language, populated by init().
var lexicons map[string]map[string]bool

func init() {
	lex, err := parseLexicon(data.Lexicon)
	if err != nil {
		panic(err)
	}
	lexicons = lex
}

func parseLexicon(src []byte) (map[string]map[string]bool, error) {
	var raw map[string][]string
	if err := yaml.Unmarshal(src, &raw); err != nil {
		return nil, fmt.Errorf("detect: decode lexicon: %w", err)
	}
	out := make(map[string]map[string]bool, len(raw))
	for code, words := range raw {
		if !slices.Contains(latinOrder, code) {
			return nil, fmt.Errorf("detect: lexicon for unsupported language %q", code)
		}
		tag := language.Make(code)
		set := make(map[string]bool, len(words))
		for _, w := range words {
			if f := textfold.Word(w, tag); f != "" {
				set[f] = true
			}
		}
		out[code] = set
	}
	return out, nil
}

// Classify returns the language and script of token. docLang is the
// resolved document language code.
func Classify(token, docLang string) Result {
	script, lang := scriptAndLang(token)
	switch script {
	case ScriptUnknown:
		return Result{Lang: docLang, Script: ScriptUnknown}
	case ScriptLatin:
		return Result{Lang: classifyLatin(token, docLang), Script: ScriptLatin}
	default:
		return Result{Lang: lang, Script: script}
	}
}

// Lang returns the language code of token.
//
// Convenience wrapper around Classify.
func Lang(token, docLang string) string {
	return Classify(token, docLang).Lang
}

// IsLatinLang reports whether code has a Latin-script lexicon.
func IsLatinLang(code string) bool {
	return slices.Contains(latinOrder, code)
}

func classifyLatin(token, docLang string) string {
	word := textfold.Word(token, language.Und)
	if lexicons[docLang][word] {
		return docLang
	}
	lower := strings.ToLower(token)
	for _, h := range diacriticHints {
		if strings.ContainsAny(lower, h.letters) {
			return h.lang
		}
	}
	for _, code := range latinOrder {
		if code != docLang && lexicons[code][word] {
			return code
		}
	}
	if IsLatinLang(docLang) {
		return docLang
	}
	return "en"
}
