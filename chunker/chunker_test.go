package chunker

import (
	"strings"
	"sync"
	"testing"
)

// verifyInvariants checks the byte-offset invariant for every chunk:
// text[c.Start:c.End] == c.Text, and that indices are sequential.
func verifyInvariants(t *testing.T, input string, chunks []Chunk) {
	t.Helper()
	for i, c := range chunks {
		if c.Index != i {
			t.Errorf("chunk %d has Index=%d, want %d", i, c.Index, i)
		}
		if c.Start < 0 || c.End > len(input) || c.Start > c.End {
			t.Errorf("chunk %d has invalid offsets [%d:%d] for input len %d",
				i, c.Start, c.End, len(input))
			continue
		}
		if got := input[c.Start:c.End]; got != c.Text {
			t.Errorf("chunk %d offset invariant broken: input[%d:%d]=%q, Text=%q",
				i, c.Start, c.End, got, c.Text)
		}
	}
}

type span struct{ start, end int }

func spans(cs []Chunk) []span {
	out := make([]span, len(cs))
	for i, c := range cs {
		out[i] = span{c.Start, c.End}
	}
	return out
}

func TestSplit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		opts  Options
		want  []span
	}{
		{"empty", "", DefaultOptions(), nil},
		{"short bypass", "moon June soon", DefaultOptions(), []span{{0, 14}}},
		{"just under bypass", strings.Repeat("a", 1999), DefaultOptions(), []span{{0, 1999}}},
		{"bypass threshold single window", strings.Repeat("a", 2000), DefaultOptions(), []span{{0, 2000}}},
		{"size plus one", strings.Repeat("a", 5001), DefaultOptions(), []span{{0, 5000}, {4000, 5001}}},
		{
			"max chunks cap", strings.Repeat("a", 20000), DefaultOptions(),
			[]span{{0, 5000}, {4000, 9500}, {8500, 14000}},
		},
		{
			"multibyte windows", strings.Repeat("ə", 2500),
			Options{Size: 1000, Overlap: 100, Bypass: 10},
			[]span{{0, 2000}, {1600, 3800}, {3400, 5000}},
		},
		{
			"small windows no bypass", strings.Repeat("x", 30),
			Options{Size: 10, Overlap: 3, MaxChunks: 5, Bypass: -1},
			[]span{{0, 10}, {4, 17}, {11, 24}, {18, 30}},
		},
		{
			"overlap clamped", strings.Repeat("x", 6),
			Options{Size: 3, Overlap: 9, MaxChunks: 10, Bypass: -1},
			[]span{{0, 3}, {0, 4}, {0, 5}, {1, 6}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Split(tt.input, tt.opts)
			verifyInvariants(t, tt.input, got)
			gotSpans := spans(got)
			if len(gotSpans) != len(tt.want) {
				t.Fatalf("Split: got %d chunks %v, want %d %v", len(gotSpans), gotSpans, len(tt.want), tt.want)
			}
			for i := range tt.want {
				if gotSpans[i] != tt.want[i] {
					t.Errorf("chunk %d: got %v, want %v", i, gotSpans[i], tt.want[i])
				}
			}
		})
	}
}

func TestBypassed(t *testing.T) {
	t.Parallel()

	if !Bypassed("moon June soon", Options{}) {
		t.Error("short text should bypass windowing")
	}
	if Bypassed(strings.Repeat("a", 2000), Options{}) {
		t.Error("2000 runes should not bypass")
	}
	if Bypassed("a", Options{Bypass: -1}) {
		t.Error("negative Bypass disables bypass")
	}
	// Runes, not bytes: 1999 two-byte runes still bypass.
	if !Bypassed(strings.Repeat("ə", 1999), Options{}) {
		t.Error("bypass must count runes")
	}
}

func TestWindowsOverlapCoversCut(t *testing.T) {
	t.Parallel()

	// A word straddling the first window's end is whole in the second.
	text := strings.Repeat(" ", 4997) + "moonlight"
	cs := Split(text, DefaultOptions())
	if len(cs) != 2 {
		t.Fatalf("got %d chunks, want 2", len(cs))
	}
	if strings.Contains(cs[0].Text, "moonlight") {
		t.Error("first window should cut the word")
	}
	if !strings.Contains(cs[1].Text, "moonlight") {
		t.Error("second window should hold the whole word")
	}
}

func TestWindows(t *testing.T) {
	t.Parallel()

	if got := Windows(""); got != nil {
		t.Errorf("Windows(\"\") = %v, want nil", got)
	}
	got := Windows("moon June soon")
	if len(got) != 1 || got[0] != "moon June soon" {
		t.Errorf("Windows = %q", got)
	}
}

func TestChunkString(t *testing.T) {
	t.Parallel()

	c := Chunk{Text: "abc", Start: 4, End: 7, Index: 1}
	if got, want := c.String(), "Chunk(1)[4:7](3 bytes)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestSplitConcurrent(t *testing.T) {
	t.Parallel()

	text := strings.Repeat("moon June soon ", 1000)
	want := spans(Split(text, DefaultOptions()))

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := spans(Split(text, DefaultOptions()))
			if len(got) != len(want) {
				t.Errorf("concurrent Split: got %d chunks, want %d", len(got), len(want))
				return
			}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("concurrent Split chunk %d: got %v, want %v", i, got[i], want[i])
				}
			}
		}()
	}
	wg.Wait()
}

func BenchmarkSplit(b *testing.B) {
	text := strings.Repeat("The moon in June is soon. ", 600)
	for b.Loop() {
		Split(text, DefaultOptions())
	}
}
