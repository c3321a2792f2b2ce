package check

import (
	"hash/fnv"
	"time"

	"github.com/launchdarkly/laws-harness/framework/helpers"
)

// DefaultTrials is the number of trials used when Config.Trials is zero or negative.
const DefaultTrials = 100

// Config controls how many samples are drawn and how they are seeded.
type Config struct {
	// Trials is the maximum number of times a law's predicate is applied.
	Trials int `json:"trials" yaml:"trials"`

	// Seed is the base seed for every generator stream. Zero means a seed is chosen from the clock
	// when the Checker is created.
	Seed int64 `json:"seed" yaml:"seed"`
}

// Option is a ConfigOption for NewChecker.
type Option = helpers.ConfigOption[Config]

// WithTrials overrides Config.Trials.
func WithTrials(trials int) Option {
	return helpers.ConfigOptionFunc[Config](func(c *Config) error {
		c.Trials = trials
		return nil
	})
}

// WithSeed overrides Config.Seed.
func WithSeed(seed int64) Option {
	return helpers.ConfigOptionFunc[Config](func(c *Config) error {
		c.Seed = seed
		return nil
	})
}

// WithDefaults fills in DefaultTrials and a clock-derived seed where the values are unset.
func (c Config) WithDefaults() Config {
	if c.Trials <= 0 {
		c.Trials = DefaultTrials
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	return c
}

// SeedFor derives the seed used for the law with the given label. Laws with different labels get
// different streams from the same base seed.
func SeedFor(base int64, label string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(label))
	return base ^ int64(h.Sum64()) //nolint:gosec
}
