// Package tokenizer splits text into whitespace-delimited tokens with
// byte offsets and indexes line starts.
//
// The package provides two API layers:
//
//   - Structured: Tokens and Window return []Token with document byte
//     offsets. The invariant doc[t.Start:t.End] == t.Text holds for every
//     token. Lines maps a byte offset to its zero-based line.
//   - Convenience: Words returns []string.
//
// A token is a maximal run of non-whitespace runes; punctuation stays
// attached to its word and is stripped later by the transcriber.
//
// All functions are safe for concurrent use by multiple goroutines.
package tokenizer

import (
	"fmt"
	"sort"
	"unicode"
	"unicode/utf8"
)

// Token is a whitespace-delimited span of the document.
type Token struct {
	Text  string // The token text
	Start int    // Byte offset in the document (inclusive)
	End   int    // Byte offset in the document (exclusive)
}

// String returns a debug representation, e.g. Token("moon")[0:4].
func (t Token) String() string {
	return fmt.Sprintf("Token(%q)[%d:%d]", t.Text, t.Start, t.End)
}

// Tokens splits s into whitespace-delimited tokens.
func Tokens(s string) []Token {
	if s == "" {
		return nil
	}
	return scan(s, 0, len(s))
}

// Words returns the token texts of s.
func Words(s string) []string {
	toks := Tokens(s)
	if len(toks) == 0 {
		return nil
	}
	words := make([]string, len(toks))
	for i, t := range toks {
		words[i] = t.Text
	}
	return words
}

// Window returns the tokens of doc[start:end] with document offsets.
// A token touching a window edge that is not a document edge, with no
// whitespace on the far side of that edge, was cut by the window and is
// dropped; the overlapping neighbour window holds it whole.
func Window(doc string, start, end int) []Token {
	start = max(start, 0)
	end = min(end, len(doc))
	if start >= end {
		return nil
	}
	toks := scan(doc, start, end)
	if len(toks) == 0 {
		return nil
	}
	if first := toks[0]; first.Start == start && start > 0 && !spaceBefore(doc, start) {
		toks = toks[1:]
	}
	if n := len(toks); n > 0 {
		if last := toks[n-1]; last.End == end && end < len(doc) && !spaceAt(doc, end) {
			toks = toks[:n-1]
		}
	}
	return toks
}

// scan collects the tokens of doc[start:end] with document offsets.
func scan(doc string, start, end int) []Token {
	var toks []Token
	tokStart := -1
	for i := start; i < end; {
		r, size := utf8.DecodeRuneInString(doc[i:end])
		if unicode.IsSpace(r) {
			if tokStart >= 0 {
				toks = append(toks, Token{Text: doc[tokStart:i], Start: tokStart, End: i})
				tokStart = -1
			}
		} else if tokStart < 0 {
			tokStart = i
		}
		i += size
	}
	if tokStart >= 0 {
		toks = append(toks, Token{Text: doc[tokStart:end], Start: tokStart, End: end})
	}
	return toks
}

func spaceBefore(doc string, i int) bool {
	r, _ := utf8.DecodeLastRuneInString(doc[:i])
	return unicode.IsSpace(r)
}

func spaceAt(doc string, i int) bool {
	r, _ := utf8.DecodeRuneInString(doc[i:])
	return unicode.IsSpace(r)
}

// Lines indexes the line starts of a document.
type Lines struct {
	starts []int // byte offset of each line start, ascending
}

// NewLines indexes the lines of text. Lines are separated by '\n'.
func NewLines(text string) *Lines {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Lines{starts: starts}
}

// Line returns the zero-based line holding byte offset off.
// Offsets before the document clamp to line 0.
func (l *Lines) Line(off int) int {
	i := sort.Search(len(l.starts), func(i int) bool { return l.starts[i] > off })
	return max(i-1, 0)
}

// Count returns the number of lines.
func (l *Lines) Count() int {
	return len(l.starts)
}
