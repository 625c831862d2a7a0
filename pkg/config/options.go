package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptK sets the k-anonymity parameter.
func OptK(i int) Option {
	return func(c *Config) {
		if isValidInt("Anonymity K", i) {
			c.Pipeline.K = i
		}
	}
}

// OptThreshold sets the Dice-coefficient match threshold.
// Valid values lie in [0, 1].
func OptThreshold(f float64) Option {
	return func(c *Config) {
		if isValidUnitInterval("Match Threshold", f) {
			c.Pipeline.Threshold = f
		}
	}
}

// OptBloomSize sets the Bloom filter length in bits.
func OptBloomSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Bloom Size", i) {
			c.Pipeline.BloomSize = i
		}
	}
}

// OptNumHash sets the number of hash functions per q-gram.
func OptNumHash(i int) Option {
	return func(c *Config) {
		if isValidInt("Hash Number", i) {
			c.Pipeline.NumHash = i
		}
	}
}

// OptSecretKey sets the shared HMAC key of the Bloom encoding.
// Both data holders must use the same key for their filters
// to be comparable.
func OptSecretKey(s string) Option {
	return func(c *Config) {
		if isValidString("Secret Key", s) {
			c.Pipeline.SecretKey = s
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers for parallel operations.
// Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptWorkDir sets the directory where pipeline artifacts are written.
// Runtime-only field - not in ToOptions().
func OptWorkDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Work Directory", s) {
			c.WorkDir = s
		}
	}
}

// OptHomeDir sets the home directory for config and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
