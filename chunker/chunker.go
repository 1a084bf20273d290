// Package chunker splits long text into overlapping analysis windows.
//
// Window i covers the rune range
//
//	[i·(Size−Overlap) − Overlap, i·(Size−Overlap) + Size)
//
// clipped to the text, so consecutive windows share Overlap runes and a
// token cut by one window edge appears whole in its neighbour. Text shorter
// than Bypass runes is returned as a single window at offset 0.
//
// Only the first MaxChunks windows are produced. Text beyond the last
// window is not analyzed; this bounds latency and cost on long input and
// callers are expected to cap input size upstream.
//
// Two API layers:
//
//   - Structured: Split returns []Chunk with byte offsets and chunk index.
//     The invariant text[c.Start:c.End] == c.Text holds for every chunk.
//   - Convenience: Windows returns []string with default options.
//
// All functions are safe for concurrent use by multiple goroutines.
package chunker

import (
	"fmt"
	"unicode/utf8"
)

const (
	DefaultSize      = 5000 // window size in runes
	DefaultOverlap   = 500  // runes shared by consecutive windows
	DefaultMaxChunks = 3    // windows produced at most
	DefaultBypass    = 2000 // shorter texts are one window
)

// Options configures Split. Zero fields take their defaults; a negative
// Overlap or Bypass disables overlap or bypass.
type Options struct {
	Size      int
	Overlap   int
	MaxChunks int
	Bypass    int
}

// withDefaults fills zero fields and clamps Overlap below Size.
func (o Options) withDefaults() Options {
	if o.Size <= 0 {
		o.Size = DefaultSize
	}
	switch {
	case o.Overlap == 0:
		o.Overlap = min(DefaultOverlap, o.Size-1)
	case o.Overlap < 0:
		o.Overlap = 0
	case o.Overlap >= o.Size:
		o.Overlap = o.Size - 1
	}
	if o.MaxChunks <= 0 {
		o.MaxChunks = DefaultMaxChunks
	}
	switch {
	case o.Bypass == 0:
		o.Bypass = DefaultBypass
	case o.Bypass < 0:
		o.Bypass = 0
	}
	return o
}

// DefaultOptions returns the production window settings.
func DefaultOptions() Options {
	return Options{
		Size:      DefaultSize,
		Overlap:   DefaultOverlap,
		MaxChunks: DefaultMaxChunks,
		Bypass:    DefaultBypass,
	}
}

// Chunk is one analysis window.
//
// Byte-offset invariant: for every Chunk c produced from input text,
// text[c.Start:c.End] == c.Text.
type Chunk struct {
	Text  string `json:"text"`  // window content
	Start int    `json:"start"` // byte offset in the document (inclusive)
	End   int    `json:"end"`   // byte offset in the document (exclusive)
	Index int    `json:"index"` // zero-based window index
}

// String returns a debug representation, e.g. Chunk(0)[0:42](42 bytes).
func (c Chunk) String() string {
	return fmt.Sprintf("Chunk(%d)[%d:%d](%d bytes)", c.Index, c.Start, c.End, len(c.Text))
}

// Bypassed reports whether text is short enough to skip windowing.
func Bypassed(text string, opts Options) bool {
	opts = opts.withDefaults()
	return utf8.RuneCountInString(text) < opts.Bypass
}

// Split cuts text into overlapping windows. Returns nil for empty text.
func Split(text string, opts Options) []Chunk {
	if text == "" {
		return nil
	}
	opts = opts.withDefaults()

	runeOffsets := buildRuneOffsets(text)
	totalRunes := len(runeOffsets) - 1
	if totalRunes < opts.Bypass {
		return []Chunk{{Text: text, Start: 0, End: len(text), Index: 0}}
	}

	step := opts.Size - opts.Overlap
	chunks := make([]Chunk, 0, opts.MaxChunks)
	for i := 0; i < opts.MaxChunks; i++ {
		startRune := max(i*step-opts.Overlap, 0)
		endRune := min(i*step+opts.Size, totalRunes)
		if startRune >= totalRunes {
			break
		}
		startByte, endByte := runeOffsets[startRune], runeOffsets[endRune]
		chunks = append(chunks, Chunk{
			Text:  text[startByte:endByte],
			Start: startByte,
			End:   endByte,
			Index: i,
		})
		if endRune == totalRunes {
			break
		}
	}
	return chunks
}

// buildRuneOffsets returns a slice mapping rune index -> byte offset.
// The returned slice has len(runeOffsets) == runeCount + 1, where the
// last element is len(text). Invalid bytes count as one rune each.
func buildRuneOffsets(text string) []int {
	offsets := make([]int, 0, utf8.RuneCountInString(text)+1)
	for i := range text {
		offsets = append(offsets, i)
	}
	offsets = append(offsets, len(text))
	return offsets
}

// Windows splits text with DefaultOptions and returns the window texts.
func Windows(text string) []string {
	cs := Split(text, DefaultOptions())
	if len(cs) == 0 {
		return nil
	}
	result := make([]string, len(cs))
	for i, c := range cs {
		result[i] = c.Text
	}
	return result
}
