package phonetic

import (
	"bytes"
	"slices"
	"strings"

	"github.com/tucker-bin/noctua-forest-sub005/data"
)

// Parsed pronunciation table, populated by init().
var (
	dictWords  []string   // sorted lowercase headwords for binary search
	dictPhones [][]string // parallel slice: ARPAbet phonemes of dictWords[i]
)

func init() {
	dictWords, dictPhones = parseDict(data.Pronunciations)
}

// parseDict reads CMU-format lines: WORD, two spaces, phonemes.
// Comment lines start with ";;;". Alternate pronunciations, written
// WORD(2), are skipped; the first entry wins.
func parseDict(raw []byte) ([]string, [][]string) {
	type entry struct {
		word   string
		phones []string
	}
	var entries []entry
	seen := make(map[string]bool)

	for _, line := range bytes.Split(raw, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || bytes.HasPrefix(line, []byte(";;;")) {
			continue
		}
		fields := strings.Fields(string(line))
		if len(fields) < 2 {
			continue
		}
		word := fields[0]
		if strings.HasSuffix(word, ")") {
			continue
		}
		word = strings.ToLower(word)
		if seen[word] {
			continue
		}
		seen[word] = true
		entries = append(entries, entry{word: word, phones: fields[1:]})
	}

	slices.SortFunc(entries, func(a, b entry) int { return strings.Compare(a.word, b.word) })
	words := make([]string, len(entries))
	phones := make([][]string, len(entries))
	for i, e := range entries {
		words[i] = e.word
		phones[i] = e.phones
	}
	return words, phones
}

// lookupPhones returns the ARPAbet phonemes of a folded word.
func lookupPhones(word string) ([]string, bool) {
	if word == "" {
		return nil, false
	}
	i, ok := slices.BinarySearch(dictWords, word)
	if !ok {
		return nil, false
	}
	return dictPhones[i], true
}

// arpabet maps ARPAbet phonemes (stress digit removed) to the symbols
// used by the English profile. Long vowels are written with doubled
// letters so dictionary and rule transcriptions share rhyme keys.
var arpabet = map[string]string{
	"AA": "ɑ",
	"AE": "æ",
	"AH": "ʌ", // unstressed AH0 becomes ə
	"AO": "ɔ",
	"AW": "aʊ",
	"AY": "ai",
	"EH": "ɛ",
	"ER": "ɝ",
	"EY": "ei",
	"IH": "ɪ",
	"IY": "ee",
	"OW": "o",
	"OY": "oi",
	"UH": "ʊ",
	"UW": "oo",
	"B":  "b",
	"CH": "ʧ",
	"D":  "d",
	"DH": "ð",
	"F":  "f",
	"G":  "g",
	"HH": "h",
	"JH": "ʤ",
	"K":  "k",
	"L":  "l",
	"M":  "m",
	"N":  "n",
	"NG": "ŋ",
	"P":  "p",
	"R":  "r",
	"S":  "s",
	"SH": "ʃ",
	"T":  "t",
	"TH": "θ",
	"V":  "v",
	"W":  "w",
	"Y":  "y",
	"Z":  "z",
	"ZH": "ʒ",
}

// fromPhones renders phonemes as a phonetic form with marker inserted
// before the first primary-stressed vowel, and returns the stress digits
// of the vowels in order.
func fromPhones(phones []string, marker string) (form, stress string) {
	var b, s strings.Builder
	marked := false
	for _, ph := range phones {
		base := strings.TrimRight(ph, "012")
		digit := ph[len(base):]
		sym, ok := arpabet[base]
		if !ok {
			sym = strings.ToLower(base)
		}
		if digit != "" {
			if base == "AH" && digit == "0" {
				sym = "ə"
			}
			if digit == "1" && !marked {
				b.WriteString(marker)
				marked = true
			}
			s.WriteString(digit)
		}
		b.WriteString(sym)
	}
	return b.String(), s.String()
}
