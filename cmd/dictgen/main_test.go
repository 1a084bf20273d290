package main

import (
	"bytes"
	"strings"
	"testing"
)

const sample = `;;; sample
MOON  M UW1 N
READ  R IY1 D
READ(2)  R EH1 D
june JH UW1 N # lower case file
DON'T  D OW1 N T
ABOUT  AH0 B AW1 T

`

func TestParseLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line   string
		word   string
		phones string
		skip   bool
	}{
		{"MOON  M UW1 N", "MOON", "M UW1 N", false},
		{"june JH UW1 N # comment", "JUNE", "JH UW1 N", false},
		{"READ(2)  R EH1 D", "", "", true},
		{";;; header", "", "", true},
		{"", "", "", true},
		{"DON'T  D OW1 N T", "", "", true},
		{"LONELY", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()
			e, err := parseLine(tt.line)
			if tt.skip {
				if err != errSkipLine {
					t.Fatalf("parseLine(%q) = %v, want errSkipLine", tt.line, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseLine(%q): %v", tt.line, err)
			}
			if e.word != tt.word || strings.Join(e.phones, " ") != tt.phones {
				t.Errorf("parseLine(%q) = %s %v, want %s %s", tt.line, e.word, e.phones, tt.word, tt.phones)
			}
		})
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	entries, st, err := parse(strings.NewReader(sample), nil)
	if err != nil {
		t.Fatal(err)
	}
	var words []string
	for _, e := range entries {
		words = append(words, e.word)
	}
	if got, want := strings.Join(words, ","), "ABOUT,JUNE,MOON,READ"; got != want {
		t.Errorf("words = %s, want %s", got, want)
	}
	if st.commentLines != 1 || st.variantLines != 1 {
		t.Errorf("stats = %+v", st)
	}
}

func TestParse_WordList(t *testing.T) {
	t.Parallel()

	keep, err := readWordList(strings.NewReader("moon\nread\n\nabout\n"), 2)
	if err != nil {
		t.Fatal(err)
	}
	entries, _, err := parse(strings.NewReader(sample), keep)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 || entries[0].word != "MOON" || entries[1].word != "READ" {
		t.Errorf("entries = %+v", entries)
	}
}

func TestWrite(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := write(&buf, []entry{{word: "MOON", phones: []string{"M", "UW1", "N"}}})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(buf.String(), "\nMOON  M UW1 N\n") {
		t.Errorf("output = %q", buf.String())
	}
}
