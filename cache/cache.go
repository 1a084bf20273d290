// Package cache memoizes engine reports by document and language.
//
// Keys are BLAKE3 digests of the resolved language code, a zero byte and
// the text, so texts are not retained as keys. The cache is a bounded LRU;
// failed analyses are not stored. Cached reports are shared between
// callers and must not be modified.
//
// An Analyzer is safe for concurrent use.
package cache

import (
	"context"
	"fmt"
	"io"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/zeebo/blake3"

	"github.com/tucker-bin/noctua-forest-sub005/engine"
	"github.com/tucker-bin/noctua-forest-sub005/metrics"
	"github.com/tucker-bin/noctua-forest-sub005/pattern"
	"github.com/tucker-bin/noctua-forest-sub005/profile"
)

// DefaultSize is the number of reports kept when size is not positive.
const DefaultSize = 1000

// Key identifies a (language, text) pair.
type Key [32]byte

// KeyOf derives the cache key of text analyzed as lang. Language codes
// that resolve to the same profile share keys.
func KeyOf(text, lang string) Key {
	h := blake3.New()
	_, _ = io.WriteString(h, profile.Lookup(lang).Code)
	_, _ = h.Write([]byte{0})
	_, _ = io.WriteString(h, text)
	var k Key
	copy(k[:], h.Sum(nil))
	return k
}

// Analyzer wraps an engine with a result cache.
type Analyzer struct {
	eng     *engine.Engine
	reports *lru.Cache[Key, *engine.Report]
	metrics *metrics.Metrics
}

// New returns an Analyzer holding at most size reports. m may be nil.
func New(eng *engine.Engine, size int, m *metrics.Metrics) (*Analyzer, error) {
	if size <= 0 {
		size = DefaultSize
	}
	reports, err := lru.New[Key, *engine.Report](size)
	if err != nil {
		return nil, fmt.Errorf("cache: %w", err)
	}
	return &Analyzer{eng: eng, reports: reports, metrics: m}, nil
}

// AnalyzeReport returns the cached report for text and lang, running the
// engine on a miss.
func (a *Analyzer) AnalyzeReport(ctx context.Context, text, lang string) (*engine.Report, error) {
	k := KeyOf(text, lang)
	if rep, ok := a.reports.Get(k); ok {
		a.metrics.CacheHit()
		return rep, nil
	}
	a.metrics.CacheMiss()

	rep, err := a.eng.AnalyzeReport(ctx, text, lang)
	if err != nil {
		return nil, err
	}
	a.reports.Add(k, rep)
	return rep, nil
}

// Analyze returns the ranked patterns of text, cached.
func (a *Analyzer) Analyze(ctx context.Context, text, lang string) ([]pattern.Pattern, error) {
	rep, err := a.AnalyzeReport(ctx, text, lang)
	if err != nil {
		return nil, err
	}
	return rep.Patterns, nil
}

// Len returns the number of cached reports.
func (a *Analyzer) Len() int { return a.reports.Len() }

// Purge drops every cached report.
func (a *Analyzer) Purge() { a.reports.Purge() }
