// Package config provides configuration management for pprl.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Pipeline: k, threshold, bloom_size, num_hash, secret_key
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - WorkDir (per-invocation output location)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use PPRL_ prefix with underscores for nesting:
//
//	PPRL_PIPELINE_K=5
//	PPRL_PIPELINE_THRESHOLD=0.8
//	PPRL_PIPELINE_SECRET_KEY=secret_key
//	PPRL_LOG_LEVEL=info
//	PPRL_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Config represents the complete pprl configuration.
type Config struct {
	// Pipeline contains the privacy parameters of the linkage pipeline.
	Pipeline PipelineConfig `mapstructure:"pipeline" yaml:"pipeline"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for parallel operations.
	// Default value is set according to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// WorkDir is the directory where all pipeline artifacts are written.
	// Runtime-only, set per invocation from the --work-dir flag.
	WorkDir string

	// HomeDir determines where config and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// PipelineConfig contains the privacy parameters shared by the
// anonymization, blocking, encoding and matching stages.
type PipelineConfig struct {
	// K is the k-anonymity parameter. Every Mondrian partition of the
	// anonymized output has at least K rows.
	K int `mapstructure:"k" yaml:"k"`

	// Threshold is the Dice-coefficient threshold for classifying a
	// candidate pair as a match. A pair matches when every encoded
	// field scores at or above Threshold.
	Threshold float64 `mapstructure:"threshold" yaml:"threshold"`

	// BloomSize is the Bloom filter length in bits.
	BloomSize int `mapstructure:"bloom_size" yaml:"bloom_size"`

	// NumHash is the number of hash functions applied per q-gram.
	NumHash int `mapstructure:"num_hash" yaml:"num_hash"`

	// SecretKey is the HMAC key shared by both data holders. It is a
	// security parameter of the encoding scheme and must be identical
	// on both sides.
	SecretKey string `mapstructure:"secret_key" yaml:"secret_key"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Pipeline: PipelineConfig{
			K:         5,
			Threshold: 0.8,
			BloomSize: 500,
			NumHash:   10,
			SecretKey: "secret_key",
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(), // Default to number of CPU threads
	}

	return res
}
