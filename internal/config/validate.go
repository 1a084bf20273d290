package config

import (
	"fmt"
	"slices"
	"strings"
)

// Validate checks the loaded configuration. Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Engine.validate(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	if c.Input.MaxInputRunes <= 0 {
		return fmt.Errorf("input: max_input_runes must be > 0 (got %d)", c.Input.MaxInputRunes)
	}
	if c.Cache.Enabled && c.Cache.Size <= 0 {
		return fmt.Errorf("cache: size must be > 0 when enabled (got %d)", c.Cache.Size)
	}
	if err := c.Log.validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	return nil
}

func (e *EngineConfig) validate() error {
	if e.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be > 0 (got %d)", e.ChunkSize)
	}
	if e.Overlap < 0 || e.Overlap >= e.ChunkSize {
		return fmt.Errorf("overlap must be in [0, chunk_size) (got %d, chunk_size %d)", e.Overlap, e.ChunkSize)
	}
	if e.MaxChunks <= 0 {
		return fmt.Errorf("max_chunks must be > 0 (got %d)", e.MaxChunks)
	}
	if e.BypassRunes < 0 {
		return fmt.Errorf("bypass_runes must be >= 0 (got %d)", e.BypassRunes)
	}
	if e.MaxPatterns <= 0 {
		return fmt.Errorf("max_patterns must be > 0 (got %d)", e.MaxPatterns)
	}
	if e.AlliterationMin < 2 {
		return fmt.Errorf("alliteration_min must be >= 2 (got %d)", e.AlliterationMin)
	}
	if e.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0 (got %s)", e.Timeout)
	}
	return nil
}

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"json", "console"}
)

func (l *LogConfig) validate() error {
	if !slices.Contains(logLevels, strings.ToLower(l.Level)) {
		return fmt.Errorf("level must be one of %v (got %q)", logLevels, l.Level)
	}
	if !slices.Contains(logFormats, strings.ToLower(l.Format)) {
		return fmt.Errorf("format must be one of %v (got %q)", logFormats, l.Format)
	}
	return nil
}
