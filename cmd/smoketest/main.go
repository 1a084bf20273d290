// Command smoketest runs the engine over every .txt file in a directory
// and checks report invariants: segment offsets point at their text,
// pattern segments are known and ordered, patterns of one type and
// feature do not overlap, the pattern cap holds, and a second run gives
// the same result.
//
//	go run ./cmd/smoketest -lang es ./corpus
//
// A file named like poem.fr.txt is analyzed as French regardless of -lang.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/sync/errgroup"

	"github.com/tucker-bin/noctua-forest-sub005/engine"
	"github.com/tucker-bin/noctua-forest-sub005/pattern"
	"github.com/tucker-bin/noctua-forest-sub005/profile"
	"github.com/tucker-bin/noctua-forest-sub005/rank"
)

const (
	maxWorkers    = 4
	expectedArgs  = 1
	outlierFactor = 3
)

type fileRatio struct {
	path     string
	segments int
	patterns int
	ratio    float64
}

type Stats struct {
	mu              sync.Mutex
	filesScanned    int
	totalBytes      int64
	invariantOK     int
	invariantFail   int
	nondeterminism  int
	errors          int
	patternOutliers int
	typeCounts      map[pattern.Type]int
	fileRatios      []fileRatio
}

func main() {
	lang := flag.String("lang", "en", "default language code")
	flag.Parse()
	if flag.NArg() != expectedArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [-lang code] <directory>\n", os.Args[0])
		os.Exit(1)
	}

	dirPath := flag.Arg(0)
	stats := &Stats{
		typeCounts: make(map[pattern.Type]int),
	}

	var filePaths []string
	err := filepath.WalkDir(dirPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".txt") {
			return nil
		}
		filePaths = append(filePaths, path)
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error walking directory: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "Found %d files to process\n", len(filePaths))
	start := time.Now()

	eng := engine.New()
	var g errgroup.Group
	g.SetLimit(maxWorkers)

	for _, path := range filePaths {
		g.Go(func() error {
			processFile(eng, path, fileLang(path, *lang), stats)
			return nil
		})
	}

	_ = g.Wait()

	flagPatternOutliers(stats)

	fmt.Fprintf(os.Stderr, "\nCompleted in %s\n\n", time.Since(start).Round(time.Millisecond))
	printStats(stats)
	if stats.invariantFail > 0 || stats.nondeterminism > 0 || stats.errors > 0 {
		os.Exit(1)
	}
}

// fileLang returns the language tag embedded in a name like poem.fr.txt,
// or def.
func fileLang(path, def string) string {
	name := strings.TrimSuffix(filepath.Base(path), ".txt")
	if ext := filepath.Ext(name); ext != "" {
		code := ext[1:]
		if profile.Lookup(code).Code == strings.ToLower(code) {
			return code
		}
	}
	return def
}

func processFile(eng *engine.Engine, path, lang string, stats *Stats) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", path, err)
		stats.addError()
		return
	}
	text := string(data)
	fileStart := time.Now()

	ctx := context.Background()
	rep, err := eng.AnalyzeReport(ctx, text, lang)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ANALYZE_FAIL: %s: %v\n", path, err)
		stats.addError()
		return
	}
	again, err := eng.AnalyzeReport(ctx, text, lang)
	deterministic := err == nil && cmp.Equal(rep.Patterns, again.Patterns)
	if !deterministic {
		fmt.Fprintf(os.Stderr, "NONDETERMINISTIC: %s\n", path)
	}

	violations := checkReport(text, rep, eng.Config().MaxPatterns)
	for _, v := range violations {
		fmt.Fprintf(os.Stderr, "INVARIANT_FAIL: %s: %s\n", path, v)
	}

	fmt.Fprintf(os.Stderr, "DONE  %s (%s) in %s: %d segments, %d patterns\n",
		filepath.Base(path), rep.Language, time.Since(fileStart).Round(time.Millisecond),
		len(rep.Segments), len(rep.Patterns))

	stats.mu.Lock()
	defer stats.mu.Unlock()

	stats.filesScanned++
	stats.totalBytes += int64(len(data))
	if len(violations) > 0 {
		stats.invariantFail++
	} else {
		stats.invariantOK++
	}
	if !deterministic {
		stats.nondeterminism++
	}
	for _, p := range rep.Patterns {
		stats.typeCounts[p.Type]++
	}
	if len(rep.Segments) > 0 {
		stats.fileRatios = append(stats.fileRatios, fileRatio{
			path:     path,
			segments: len(rep.Segments),
			patterns: len(rep.Patterns),
			ratio:    float64(len(rep.Patterns)) / float64(len(rep.Segments)),
		})
	}
}

func (s *Stats) addError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors++
}

// checkReport returns a description of every invariant rep violates.
func checkReport(text string, rep *engine.Report, limit int) []string {
	var out []string

	ix := make(pattern.Index, len(rep.Segments))
	for _, s := range rep.Segments {
		if s.GlobalStart < 0 || s.GlobalEnd > len(text) || s.GlobalStart >= s.GlobalEnd {
			out = append(out, fmt.Sprintf("segment %s out of range", s.ID))
			continue
		}
		if got := text[s.GlobalStart:s.GlobalEnd]; got != s.Text {
			pos, g, w := firstDivergence(s.Text, got)
			out = append(out, fmt.Sprintf("segment %s: first divergence at byte %d (got 0x%02x, want 0x%02x)",
				s.ID, pos, g, w))
		}
		ix[s.ID] = s.Segment
	}

	if limit <= 0 {
		limit = rank.DefaultCap
	}
	if len(rep.Patterns) > limit {
		out = append(out, fmt.Sprintf("%d patterns exceed the cap of %d", len(rep.Patterns), limit))
	}

	for i, p := range rep.Patterns {
		for _, id := range p.SegmentIDs {
			if _, ok := ix[id]; !ok {
				out = append(out, fmt.Sprintf("pattern %s: unknown segment %s", p.ID, id))
			}
		}
		if sorted := ix.Sort(p.SegmentIDs); !slices.Equal(sorted, p.SegmentIDs) {
			out = append(out, fmt.Sprintf("pattern %s: segments not in document order", p.ID))
		}
		for _, q := range rep.Patterns[i+1:] {
			if p.Type == q.Type && p.PrimaryFeature == q.PrimaryFeature &&
				ix.Span(p.SegmentIDs).Overlaps(ix.Span(q.SegmentIDs)) {
				out = append(out, fmt.Sprintf("patterns %s and %s overlap", p.ID, q.ID))
			}
		}
	}
	return out
}

// flagPatternOutliers computes the median patterns/segments ratio across
// all files and flags any file whose ratio exceeds 3x the median.
func flagPatternOutliers(stats *Stats) {
	if len(stats.fileRatios) == 0 {
		return
	}

	ratios := make([]float64, len(stats.fileRatios))
	for i, fr := range stats.fileRatios {
		ratios[i] = fr.ratio
	}
	med := computeMedian(ratios)

	for _, fr := range stats.fileRatios {
		if med > 0 && fr.ratio > outlierFactor*med {
			stats.patternOutliers++
			fmt.Fprintf(os.Stderr, "PATTERN_OUTLIER: %s: %d patterns / %d segments (ratio %.2f, median %.2f)\n",
				fr.path, fr.patterns, fr.segments, fr.ratio, med)
		}
	}
}

// firstDivergence finds the byte position where two strings first differ.
// Returns the position and the differing bytes from each string.
func firstDivergence(want, got string) (pos int, g, w byte) {
	n := min(len(want), len(got))
	for i := range n {
		if want[i] != got[i] {
			return i, got[i], want[i]
		}
	}
	pos = n
	if pos < len(got) {
		g = got[pos]
	}
	if pos < len(want) {
		w = want[pos]
	}
	return pos, g, w
}

func computeMedian(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2 //nolint:mnd // arithmetic mean of two middle values
	}
	return sorted[mid]
}

func printStats(stats *Stats) {
	fmt.Printf("Files scanned:           %d\n", stats.filesScanned)
	fmt.Printf("Total bytes:             %d\n", stats.totalBytes)
	fmt.Printf("Invariants OK:           %d\n", stats.invariantOK)
	fmt.Printf("Invariants FAIL:         %d\n", stats.invariantFail)
	fmt.Printf("Nondeterministic:        %d\n", stats.nondeterminism)
	fmt.Printf("Errors:                  %d\n", stats.errors)
	fmt.Printf("Pattern outliers:        %d\n", stats.patternOutliers)
	fmt.Println()

	total := 0
	for _, count := range stats.typeCounts {
		total += count
	}

	fmt.Println("Pattern type distribution:")
	for _, t := range pattern.Types() {
		printTypeStats(t, stats.typeCounts, total)
	}
}

func printTypeStats(t pattern.Type, counts map[pattern.Type]int, total int) {
	count := counts[t]
	percentage := 0.0
	if total > 0 {
		percentage = float64(count) / float64(total) * 100
	}
	fmt.Printf("  %-17s %d  (%.1f%%)\n", t.String()+":", count, percentage)
}
