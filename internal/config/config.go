// Package config loads the observatory CLI settings.
package config

import (
	"time"

	"github.com/tucker-bin/noctua-forest-sub005/chunker"
	"github.com/tucker-bin/noctua-forest-sub005/engine"
	"github.com/tucker-bin/noctua-forest-sub005/pattern"
)

// Config is the root configuration.
type Config struct {
	Engine  EngineConfig  `yaml:"engine"`
	Input   InputConfig   `yaml:"input"`
	Cache   CacheConfig   `yaml:"cache"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// EngineConfig holds analysis settings.
type EngineConfig struct {
	ChunkSize       int           `yaml:"chunk_size"       env:"ENGINE_CHUNK_SIZE"       env-default:"5000"`
	Overlap         int           `yaml:"overlap"          env:"ENGINE_OVERLAP"          env-default:"500"`
	MaxChunks       int           `yaml:"max_chunks"       env:"ENGINE_MAX_CHUNKS"       env-default:"3"`
	BypassRunes     int           `yaml:"bypass_runes"     env:"ENGINE_BYPASS_RUNES"     env-default:"2000"`
	MaxPatterns     int           `yaml:"max_patterns"     env:"ENGINE_MAX_PATTERNS"     env-default:"35"`
	InternalWindow  int           `yaml:"internal_window"  env:"ENGINE_INTERNAL_WINDOW"  env-default:"20"`
	AlliterationMin int           `yaml:"alliteration_min" env:"ENGINE_ALLITERATION_MIN" env-default:"2"`
	Timeout         time.Duration `yaml:"timeout"          env:"ENGINE_TIMEOUT"          env-default:"10s"`
}

// InputConfig bounds accepted input.
type InputConfig struct {
	MaxInputRunes int `yaml:"max_input_runes" env:"INPUT_MAX_RUNES" env-default:"5000"`
}

// CacheConfig holds result cache settings.
type CacheConfig struct {
	Enabled bool `yaml:"enabled" env:"CACHE_ENABLED" env-default:"true"`
	Size    int  `yaml:"size"    env:"CACHE_SIZE"    env-default:"1000"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// MetricsConfig holds metrics export settings. An empty Textfile
// disables the export.
type MetricsConfig struct {
	Textfile string `yaml:"textfile" env:"METRICS_TEXTFILE"`
}

// EngineOptions converts the engine section to engine options.
func (c *Config) EngineOptions() engine.Config {
	e := c.Engine
	detect := pattern.DefaultOptions()
	detect.InternalWindow = e.InternalWindow
	detect.AlliterationMin = e.AlliterationMin
	return engine.Config{
		Chunk: chunker.Options{
			Size:      e.ChunkSize,
			Overlap:   e.Overlap,
			MaxChunks: e.MaxChunks,
			Bypass:    e.BypassRunes,
		},
		Detect:      detect,
		MaxPatterns: e.MaxPatterns,
		Timeout:     e.Timeout,
	}
}
