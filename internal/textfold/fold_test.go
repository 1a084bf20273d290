package textfold

import (
	"testing"

	"golang.org/x/text/language"
)

func TestWord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		tag   language.Tag
		want  string
	}{
		{"empty", "", language.English, ""},
		{"ascii", "Moon", language.English, "moon"},
		{"boundary punctuation", "\"June,\"", language.English, "june"},
		{"interior apostrophe", "Don't", language.English, "dont"},
		{"digits dropped", "r2d2", language.English, "rd"},
		{"decomposed accent", "cafe\u0301", language.French, "caf\u00e9"},
		{"german sharp s", "STRAßE", language.German, "straße"},
		{"turkish dotted I", "İstanbul", language.Turkish, "istanbul"},
		{"cyrillic", "Луна!", language.Russian, "луна"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Word(tt.input, tt.tag); got != tt.want {
				t.Errorf("Word(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func BenchmarkWord(b *testing.B) {
	for b.Loop() {
		Word("Beautiful,", language.English)
	}
}
