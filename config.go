package citetrack

import "time"

// Default configuration values for a scraping run.
const (
	DefaultWorkers       = 10
	DefaultBatchSize     = 50
	DefaultMaxContentLen = 5000
	DefaultFetchTimeout  = 30 * time.Second
	DefaultDelayMin      = 500 * time.Millisecond
	DefaultDelayMax      = 2 * time.Second
	DefaultRatePerDomain = 1.0 // requests per second
)

// Config carries the tunable settings for a scraping run. Stages receive
// the config (or the fields they need) at construction; there is no
// package-level mutable state.
type Config struct {
	// Workers bounds the fetch pool width within a batch.
	Workers int

	// BatchSize is the number of URLs fetched and persisted per batch.
	BatchSize int

	// MaxContentLen is the character budget for stored citation content.
	MaxContentLen int

	// FetchTimeout is the per-request timeout.
	FetchTimeout time.Duration

	// DelayMin and DelayMax bound the randomized post-fetch delay.
	DelayMin time.Duration
	DelayMax time.Duration

	// RatePerDomain limits requests per second to any one domain.
	RatePerDomain float64

	// InsecureSkipVerify disables TLS certificate verification. The
	// upstream sites serve a mix of expired and self-signed certs.
	InsecureSkipVerify bool
}

// DefaultConfig returns a Config populated with the default values.
func DefaultConfig() Config {
	return Config{
		Workers:       DefaultWorkers,
		BatchSize:     DefaultBatchSize,
		MaxContentLen: DefaultMaxContentLen,
		FetchTimeout:  DefaultFetchTimeout,
		DelayMin:      DefaultDelayMin,
		DelayMax:      DefaultDelayMax,
		RatePerDomain: DefaultRatePerDomain,
	}
}

// Validate returns an error if the configuration is unusable.
func (c Config) Validate() error {
	if c.Workers <= 0 {
		return Errorf(EINVALID, "workers must be positive")
	}
	if c.BatchSize <= 0 {
		return Errorf(EINVALID, "batch size must be positive")
	}
	if c.MaxContentLen <= 0 {
		return Errorf(EINVALID, "max content length must be positive")
	}
	if c.DelayMax < c.DelayMin {
		return Errorf(EINVALID, "delay max must not be less than delay min")
	}
	return nil
}
