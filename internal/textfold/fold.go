// Package textfold folds words into the canonical form used for
// dictionary lookup and phonetic rules.
//
// Folding lowercases with the language's case mapping (so Turkic and
// Greek special cases are honoured through golang.org/x/text/cases),
// composes to NFC and removes every rune that is not a letter or a
// combining mark. "Don't," folds to "dont".
//
// All functions are safe for concurrent use.
package textfold

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Word returns the folded form of w for the language tag.
func Word(w string, tag language.Tag) string {
	if w == "" {
		return ""
	}
	// A Caser is stateful, so one is built per call.
	lower := cases.Lower(tag).String(w)
	lower = norm.NFC.String(lower)
	return Letters(lower)
}

// Letters drops every rune that is neither a letter nor a mark.
func Letters(s string) string {
	clean := true
	for _, r := range s {
		if !isWordRune(r) {
			clean = false
			break
		}
	}
	if clean {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isWordRune(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.Is(unicode.Mn, r)
}
