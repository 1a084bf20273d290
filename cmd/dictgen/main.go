// Command dictgen generates data/pronounce.txt from the CMU Pronouncing
// Dictionary.
//
// Download cmudict.dict from https://github.com/cmusphinx/cmudict
// then run:
//
//	go run ./cmd/dictgen -input cmudict.dict -words wordlist.txt -top 5000
//
// The word list holds one word per line, most frequent first; -top keeps
// only its first N words. Without -words every plain entry is kept.
//
// Output: data/pronounce.txt (commit this file). Regenerate when the word
// list or the dictionary changes.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
)

const (
	defaultInput   = "data/dictionary/cmudict.dict"
	defaultOutput  = "data/pronounce.txt"
	scannerBufSize = 1 << 20 // 1 MB
)

// errSkipLine signals a comment, blank, variant or unusable line.
var errSkipLine = errors.New("skip line")

// entry is one dictionary word with its ARPAbet phonemes.
type entry struct {
	word   string // upper case
	phones []string
}

func main() {
	inputPath := flag.String("input", defaultInput, "path to cmudict.dict")
	outputPath := flag.String("output", defaultOutput, "output path for pronounce.txt")
	wordsPath := flag.String("words", "", "optional word list, most frequent first")
	top := flag.Int("top", 0, "keep only the first N words of the word list (0 keeps all)")
	flag.Parse()

	if *inputPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: dictgen -input <file> [-words <file>] [-top N] [-output <file>]\n")
		os.Exit(1)
	}

	var keep map[string]bool
	if *wordsPath != "" {
		wf, err := os.Open(*wordsPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "dictgen: open word list: %v\n", err)
			os.Exit(1)
		}
		keep, err = readWordList(wf, *top)
		wf.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "dictgen: read word list: %v\n", err)
			os.Exit(1)
		}
	}

	f, err := os.Open(*inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dictgen: open input: %v\n", err)
		os.Exit(1)
	}
	entries, stats, err := parse(f, keep)
	if cerr := f.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "dictgen: %v\n", err)
		os.Exit(1)
	}

	out, err := os.Create(*outputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dictgen: create output: %v\n", err)
		os.Exit(1)
	}
	if err := write(out, entries); err != nil {
		out.Close()
		fmt.Fprintf(os.Stderr, "dictgen: write output: %v\n", err)
		os.Exit(1)
	}
	if err := out.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "dictgen: close output: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "Lines read:     %d\n", stats.totalLines)
	fmt.Fprintf(os.Stderr, "  comments:     %d\n", stats.commentLines)
	fmt.Fprintf(os.Stderr, "  variants:     %d\n", stats.variantLines)
	fmt.Fprintf(os.Stderr, "Entries kept:   %d\n", len(entries))
	fmt.Fprintf(os.Stderr, "Output file:    %s\n", *outputPath)
}

type stats struct {
	totalLines   int
	commentLines int
	variantLines int
}

// readWordList returns the set of the first top words of r, upper-cased.
// top <= 0 keeps every word.
func readWordList(r io.Reader, top int) (map[string]bool, error) {
	keep := make(map[string]bool)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		w := strings.ToUpper(strings.TrimSpace(scanner.Text()))
		if w == "" || strings.HasPrefix(w, "#") || keep[w] {
			continue
		}
		keep[w] = true
		if top > 0 && len(keep) == top {
			break
		}
	}
	return keep, scanner.Err()
}

// parse reads CMU dictionary lines, keeping the first pronunciation of
// each plain alphabetic word in keep (or of every word if keep is nil).
func parse(r io.Reader, keep map[string]bool) ([]entry, stats, error) {
	var st stats
	seen := make(map[string]bool)
	var entries []entry

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, scannerBufSize), scannerBufSize)
	for scanner.Scan() {
		st.totalLines++
		line := scanner.Text()
		e, err := parseLine(line)
		if err != nil {
			switch {
			case strings.HasPrefix(line, ";;;"):
				st.commentLines++
			case isVariant(line):
				st.variantLines++
			}
			continue
		}
		if seen[e.word] || (keep != nil && !keep[e.word]) {
			continue
		}
		seen[e.word] = true
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, st, fmt.Errorf("scanner error: %w", err)
	}

	slices.SortFunc(entries, func(a, b entry) int { return strings.Compare(a.word, b.word) })
	return entries, st, nil
}

// parseLine parses "WORD  PH1 PH2 ..." with an optional trailing "# comment".
// Both the classic upper-case file and the lower-case cmudict.dict are accepted.
func parseLine(line string) (entry, error) {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, ";;;") {
		return entry{}, errSkipLine
	}
	fields := strings.Fields(line)
	if len(fields) < 2 || isVariant(fields[0]) {
		return entry{}, errSkipLine
	}
	word := strings.ToUpper(fields[0])
	for _, r := range word {
		if r < 'A' || r > 'Z' {
			return entry{}, errSkipLine
		}
	}
	phones := make([]string, len(fields)-1)
	for i, p := range fields[1:] {
		phones[i] = strings.ToUpper(p)
	}
	return entry{word: word, phones: phones}, nil
}

// isVariant reports whether s starts with an alternate pronunciation
// entry such as "READ(2)".
func isVariant(s string) bool {
	word, _, _ := strings.Cut(strings.TrimSpace(s), " ")
	return strings.HasSuffix(word, ")") && strings.Contains(word, "(")
}

// write emits the header and one "WORD  PHONES" line per entry.
func write(w io.Writer, entries []entry) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, ";;; Pronunciation table in CMU Pronouncing Dictionary format.")
	fmt.Fprintln(bw, ";;; Regenerate with: go run ./cmd/dictgen -input cmudict.dict")
	for _, e := range entries {
		fmt.Fprintf(bw, "%s  %s\n", e.word, strings.Join(e.phones, " "))
	}
	return bw.Flush()
}
