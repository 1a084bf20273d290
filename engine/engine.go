// Package engine runs the full analysis pipeline over a document.
//
// A document is split into overlapping chunks, each chunk is tokenized,
// transcribed and scanned by the pattern detectors in its own goroutine,
// and the per-chunk results are merged, checked for document meter,
// ranked and truncated.
//
// Two API layers:
//
//   - Structured: (*Engine).AnalyzeReport returns a Report with chunks,
//     segments and patterns; (*Engine).Analyze returns only the patterns.
//   - Convenience: Analyze runs a default engine with context.Background.
//
// An unknown language code falls back to English and is never an error.
// Empty or whitespace-only text yields no patterns and no error.
// Segment offsets are byte offsets into the text as given.
//
// An Engine is safe for concurrent use by multiple goroutines.
package engine

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tucker-bin/noctua-forest-sub005/chunker"
	"github.com/tucker-bin/noctua-forest-sub005/merge"
	"github.com/tucker-bin/noctua-forest-sub005/metrics"
	"github.com/tucker-bin/noctua-forest-sub005/pattern"
	"github.com/tucker-bin/noctua-forest-sub005/profile"
	"github.com/tucker-bin/noctua-forest-sub005/rank"
	"github.com/tucker-bin/noctua-forest-sub005/tokenizer"
)

// Option configures an Engine.
type Option func(*Engine)

// WithConfig replaces the engine settings.
func WithConfig(cfg Config) Option {
	return func(e *Engine) {
		e.cfg = cfg
	}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithMetrics reports every analysis to m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// Engine analyzes documents. It is read-only after New.
type Engine struct {
	cfg     Config
	log     *zap.Logger
	metrics *metrics.Metrics
}

// New returns an engine with DefaultConfig and a no-op logger, modified
// by opts.
func New(opts ...Option) *Engine {
	e := &Engine{
		cfg: DefaultConfig(),
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the engine settings.
func (e *Engine) Config() Config { return e.cfg }

// Report is the full result of one analysis.
type Report struct {
	Language string                    `json:"language"` // resolved profile code
	Chunks   []chunker.Chunk           `json:"chunks"`
	Segments []pattern.PhoneticSegment `json:"segments"` // unique, in document order
	Patterns []pattern.Pattern         `json:"patterns"`
}

// chunkResult is what one goroutine produces.
type chunkResult struct {
	segs     []pattern.PhoneticSegment
	patterns []pattern.Pattern
}

// Analyze returns the ranked patterns of text.
func (e *Engine) Analyze(ctx context.Context, text, lang string) ([]pattern.Pattern, error) {
	rep, err := e.AnalyzeReport(ctx, text, lang)
	if err != nil {
		return nil, err
	}
	return rep.Patterns, nil
}

// AnalyzeReport analyzes text in language lang and returns the full report.
func (e *Engine) AnalyzeReport(ctx context.Context, text, lang string) (*Report, error) {
	p := profile.Lookup(lang)
	rep := &Report{Language: p.Code}
	if strings.TrimSpace(text) == "" {
		return rep, nil
	}

	if e.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.Timeout)
		defer cancel()
	}

	began := time.Now()
	rep, err := e.run(ctx, text, p)
	if err != nil {
		e.metrics.ObserveFailure()
		return nil, err
	}

	types := make([]string, len(rep.Patterns))
	for i, pat := range rep.Patterns {
		types[i] = pat.Type.String()
	}
	e.metrics.ObserveAnalysis(utf8.RuneCountInString(text), time.Since(began), types)
	return rep, nil
}

func (e *Engine) run(ctx context.Context, text string, p *profile.Profile) (*Report, error) {
	chunks := chunker.Split(text, e.cfg.Chunk)
	bypassed := chunker.Bypassed(text, e.cfg.Chunk)
	e.log.Debug("chunked",
		zap.String("lang", p.Code),
		zap.Int("chunks", len(chunks)),
		zap.Bool("bypassed", bypassed),
	)

	lines := tokenizer.NewLines(text)
	results := make([]chunkResult, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	for i, c := range chunks {
		g.Go(func() error {
			r, err := e.analyzeChunk(gctx, text, c, lines, p)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ix := make(pattern.Index)
	var segs []pattern.PhoneticSegment
	var candidates []pattern.Pattern
	for _, r := range results {
		for _, s := range r.segs {
			if _, ok := ix[s.ID]; !ok {
				segs = append(segs, s)
			}
		}
		ix.Add(r.segs)
		candidates = append(candidates, r.patterns...)
	}
	slices.SortFunc(segs, func(a, b pattern.PhoneticSegment) int {
		return a.GlobalStart - b.GlobalStart
	})

	var merged []pattern.Pattern
	if len(chunks) == 1 {
		merged = merge.Dedupe(candidates)
	} else {
		merged = merge.Patterns(candidates, ix)
	}
	merged = append(merged, pattern.DetectMeter(segs)...)
	selected := rank.Select(merged, e.cfg.MaxPatterns)

	e.log.Debug("analyzed",
		zap.Int("segments", len(segs)),
		zap.Int("candidates", len(candidates)),
		zap.Int("merged", len(merged)),
		zap.Int("patterns", len(selected)),
	)

	return &Report{
		Language: p.Code,
		Chunks:   chunks,
		Segments: segs,
		Patterns: selected,
	}, nil
}

// analyzeChunk tokenizes, transcribes and scans one chunk.
func (e *Engine) analyzeChunk(ctx context.Context, text string, c chunker.Chunk, lines *tokenizer.Lines, p *profile.Profile) (chunkResult, error) {
	if err := ctx.Err(); err != nil {
		return chunkResult{}, fmt.Errorf("engine: chunk %d: %w", c.Index, err)
	}
	if c.Start < 0 || c.End > len(text) || c.Start >= c.End || text[c.Start:c.End] != c.Text {
		return chunkResult{}, e.invariant("chunk", fmt.Sprintf("%v out of range for %d bytes", c, len(text)))
	}

	var segs []pattern.PhoneticSegment
	for _, tok := range tokenizer.Window(text, c.Start, c.End) {
		seg := pattern.NewSegment(tok.Text, tok.Start, tok.End, c.Start, lines.Line(tok.Start))
		if err := seg.Validate(); err != nil {
			return chunkResult{}, e.invariant("segment", err.Error())
		}
		ps := pattern.NewPhoneticSegment(seg, p)
		if ps.PhoneticForm == "" {
			continue
		}
		segs = append(segs, ps)
	}

	opts := e.cfg.Detect
	opts.Chunk = c.Index
	opts.Profile = p
	pats, err := pattern.Detect(ctx, segs, opts)
	if err != nil {
		return chunkResult{}, fmt.Errorf("engine: chunk %d: %w", c.Index, err)
	}

	e.log.Debug("chunk scanned",
		zap.Int("chunk", c.Index),
		zap.Int("segments", len(segs)),
		zap.Int("candidates", len(pats)),
	)
	return chunkResult{segs: segs, patterns: pats}, nil
}

func (e *Engine) invariant(op, detail string) error {
	err := &InvariantError{Op: op, Detail: detail}
	e.log.Error("invariant violated", zap.String("op", op), zap.String("detail", detail))
	return err
}

var defaultEngine = New()

// Analyze runs the default engine over text with context.Background.
func Analyze(text, lang string) ([]pattern.Pattern, error) {
	return defaultEngine.Analyze(context.Background(), text, lang)
}
