package engine

import (
	"time"

	"github.com/tucker-bin/noctua-forest-sub005/chunker"
	"github.com/tucker-bin/noctua-forest-sub005/pattern"
	"github.com/tucker-bin/noctua-forest-sub005/rank"
)

// Config holds the engine settings. Zero fields take their defaults.
type Config struct {
	Chunk  chunker.Options
	Detect pattern.Options // Chunk and Profile are set per call

	// MaxPatterns bounds the result; zero or less means rank.DefaultCap.
	MaxPatterns int

	// Timeout bounds one analysis when positive.
	Timeout time.Duration
}

// DefaultConfig returns the production settings.
func DefaultConfig() Config {
	return Config{
		Chunk:       chunker.DefaultOptions(),
		Detect:      pattern.DefaultOptions(),
		MaxPatterns: rank.DefaultCap,
	}
}
