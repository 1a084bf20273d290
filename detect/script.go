package detect

import (
	"encoding/json"
	"fmt"
	"unicode"
)

// Script identifies the writing system of a token.
type Script int

const (
	ScriptUnknown    Script = iota // zero value, no letters
	ScriptLatin                    // Latin
	ScriptHan                      // CJK ideographs
	ScriptKana                     // Hiragana or Katakana
	ScriptHangul                   // Korean Hangul
	ScriptCyrillic                 // Cyrillic
	ScriptGreek                    // Greek
	ScriptArabic                   // Arabic
	ScriptHebrew                   // Hebrew
	ScriptDevanagari               // Devanagari
	ScriptThai                     // Thai
)

// scriptNames maps Script values to their display names.
var scriptNames = [...]string{
	ScriptUnknown:    "",
	ScriptLatin:      "Latin",
	ScriptHan:        "Han",
	ScriptKana:       "Kana",
	ScriptHangul:     "Hangul",
	ScriptCyrillic:   "Cyrillic",
	ScriptGreek:      "Greek",
	ScriptArabic:     "Arabic",
	ScriptHebrew:     "Hebrew",
	ScriptDevanagari: "Devanagari",
	ScriptThai:       "Thai",
}

// scriptFromName maps display names back to Script values.
var scriptFromName = func() map[string]Script {
	m := make(map[string]Script, len(scriptNames))
	for s, name := range scriptNames {
		m[name] = Script(s)
	}
	return m
}()

// String returns the display name of the script, or "" for ScriptUnknown.
func (s Script) String() string {
	if int(s) >= 0 && int(s) < len(scriptNames) {
		return scriptNames[s]
	}
	return fmt.Sprintf("Script(%d)", int(s))
}

// MarshalJSON encodes the script as a JSON string (e.g. "Han").
func (s Script) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a JSON string (e.g. "Han") into a Script.
func (s *Script) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	sc, ok := scriptFromName[str]
	if !ok {
		return fmt.Errorf("detect: unknown script: %q", str)
	}
	*s = sc
	return nil
}

// scriptCheck ties a Unicode range table to the script and language it
// signals.
type scriptCheck struct {
	tables []*unicode.RangeTable
	script Script
	lang   string
}

// scriptChecks run in order; the first table containing any rune of the
// token wins. Kana precedes Han so Japanese words mixing kanji and kana
// classify as Japanese.
var scriptChecks = []scriptCheck{
	{[]*unicode.RangeTable{unicode.Hiragana, unicode.Katakana}, ScriptKana, "ja"},
	{[]*unicode.RangeTable{unicode.Hangul}, ScriptHangul, "ko"},
	{[]*unicode.RangeTable{unicode.Han}, ScriptHan, "zh"},
	{[]*unicode.RangeTable{unicode.Cyrillic}, ScriptCyrillic, "ru"},
	{[]*unicode.RangeTable{unicode.Greek}, ScriptGreek, "el"},
	{[]*unicode.RangeTable{unicode.Arabic}, ScriptArabic, "ar"},
	{[]*unicode.RangeTable{unicode.Hebrew}, ScriptHebrew, "he"},
	{[]*unicode.RangeTable{unicode.Devanagari}, ScriptDevanagari, "hi"},
	{[]*unicode.RangeTable{unicode.Thai}, ScriptThai, "th"},
}

// ScriptOf returns the script of token: the first non-Latin script found
// by the ordered checks, else Latin when the token has a Latin letter.
func ScriptOf(token string) Script {
	s, _ := scriptAndLang(token)
	return s
}

func scriptAndLang(token string) (Script, string) {
	for _, c := range scriptChecks {
		for _, r := range token {
			if unicode.IsOneOf(c.tables, r) {
				return c.script, c.lang
			}
		}
	}
	for _, r := range token {
		if unicode.Is(unicode.Latin, r) {
			return ScriptLatin, ""
		}
	}
	return ScriptUnknown, ""
}
