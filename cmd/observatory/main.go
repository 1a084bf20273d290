// Command observatory finds sound patterns in text.
//
//	observatory analyze poem.txt --lang en
//	observatory analyze a.txt b.txt --json
//	echo "moon June soon" | observatory analyze --json
//	observatory transcribe moon luna --lang es
//	observatory profiles
//
// Settings come from --config, OBSERVATORY_CONFIG or ./observatory.yaml,
// overridden by environment variables.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tucker-bin/noctua-forest-sub005/internal/config"
)

// app holds state shared by the subcommands of one invocation.
type app struct {
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

func main() {
	if err := newRootCmd(&app{}).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "observatory",
		Short: "Find rhyme, alliteration and other sound patterns in text",
		Long: `observatory transcribes each word of a text into a phonetic form and
reports the sound patterns it finds: rhyme, slant and internal rhyme,
alliteration, assonance, consonance, consonant classes, rhythm and meter,
code switching and cross-language phonetic bridges.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			if a.logger != nil {
				return nil
			}
			logger, err := buildLogger(cfg.Log, a.verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger.With(zap.String("run_id", uuid.NewString()))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to YAML config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newAnalyzeCmd(a), newTranscribeCmd(), newProfilesCmd())
	return root
}

// buildLogger builds a JSON or console logger at the configured level.
func buildLogger(lc config.LogConfig, verbose bool) (*zap.Logger, error) {
	var zc zap.Config
	if strings.EqualFold(lc.Format, "console") {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(strings.ToLower(lc.Level))
	if err != nil {
		return nil, err
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}
