package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tucker-bin/noctua-forest-sub005/cache"
	"github.com/tucker-bin/noctua-forest-sub005/engine"
	"github.com/tucker-bin/noctua-forest-sub005/metrics"
	"github.com/tucker-bin/noctua-forest-sub005/pattern"
)

// errAnalysisFailed is shown instead of internal error detail.
var errAnalysisFailed = errors.New("analysis failed")

type analyzeFlags struct {
	lang   string
	max    int
	asJSON bool
	pretty bool
	report bool
}

// analyzeFunc is satisfied by both the engine and the result cache.
type analyzeFunc func(ctx context.Context, text, lang string) (*engine.Report, error)

func newAnalyzeCmd(a *app) *cobra.Command {
	var f analyzeFlags
	cmd := &cobra.Command{
		Use:   "analyze [file|-]...",
		Short: "Detect sound patterns in text files or stdin",
		Long: `Detect sound patterns in each input in turn. With no arguments stdin
is read. All inputs share one engine and one result cache, so a repeated
input is answered from the cache. JSON output is one document per input.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srcs := args
			if len(srcs) == 0 {
				srcs = []string{"-"}
			}
			return a.analyzeAll(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), srcs, f)
		},
	}
	cmd.Flags().StringVarP(&f.lang, "lang", "l", "en", "language code of the text")
	cmd.Flags().IntVar(&f.max, "max", 0, "maximum patterns to return (0 uses the config)")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "print JSON")
	cmd.Flags().BoolVar(&f.pretty, "pretty", false, "indent JSON output")
	cmd.Flags().BoolVar(&f.report, "report", false, "print the full report with chunks and segments (JSON)")
	return cmd
}

func readInput(stdin io.Reader, src string) (string, error) {
	var (
		data []byte
		err  error
	)
	if src == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(src)
	}
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("read input: %s is not valid UTF-8", src)
	}
	return string(data), nil
}

func (a *app) analyzeAll(ctx context.Context, stdin io.Reader, w io.Writer, srcs []string, f analyzeFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}

	ec := a.cfg.EngineOptions()
	if f.max > 0 {
		ec.MaxPatterns = f.max
	}
	m := metrics.New()
	eng := engine.New(engine.WithConfig(ec), engine.WithLogger(a.logger), engine.WithMetrics(m))

	analyze := analyzeFunc(eng.AnalyzeReport)
	if a.cfg.Cache.Enabled {
		c, err := cache.New(eng, a.cfg.Cache.Size, m)
		if err != nil {
			return err
		}
		analyze = c.AnalyzeReport
	}

	headers := len(srcs) > 1 && !f.asJSON && !f.pretty && !f.report
	var err error
	for i, src := range srcs {
		var text string
		if text, err = readInput(stdin, src); err != nil {
			break
		}
		if headers {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "==> %s <==\n", src)
		}
		if err = a.analyze(ctx, w, analyze, text, f); err != nil {
			break
		}
	}

	if path := a.cfg.Metrics.Textfile; path != "" {
		if werr := m.WriteToTextfile(path); werr != nil {
			a.logger.Warn("metrics export failed", zap.Error(werr))
		}
	}
	return err
}

func (a *app) analyze(ctx context.Context, w io.Writer, analyze analyzeFunc, text string, f analyzeFlags) error {
	if n, limit := utf8.RuneCountInString(text), a.cfg.Input.MaxInputRunes; n > limit {
		return fmt.Errorf("input is %d characters, the limit is %d", n, limit)
	}

	rep, err := analyze(ctx, text, f.lang)
	if err != nil {
		if errors.Is(err, engine.ErrInternal) {
			a.logger.Error("analysis failed", zap.Error(err))
			return errAnalysisFailed
		}
		return err
	}
	a.logger.Info("analysis complete",
		zap.String("lang", rep.Language),
		zap.Int("chars", utf8.RuneCountInString(text)),
		zap.Int("patterns", len(rep.Patterns)),
	)

	switch {
	case f.report:
		return writeJSON(w, rep, f.pretty)
	case f.asJSON || f.pretty:
		ps := rep.Patterns
		if ps == nil {
			ps = []pattern.Pattern{}
		}
		return writeJSON(w, ps, f.pretty)
	}
	return writeTable(w, rep.Patterns)
}

func writeJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func writeTable(w io.Writer, ps []pattern.Pattern) error {
	if len(ps) == 0 {
		_, err := fmt.Fprintln(w, "no patterns found")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tSIGNIFICANCE\tFEATURE\tTEXT")
	for _, p := range ps {
		fmt.Fprintf(tw, "%s\t%.2f\t%s\t%s\n", p.Type, p.Significance, p.PrimaryFeature, p.OriginalText)
	}
	return tw.Flush()
}
