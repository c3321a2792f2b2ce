// Package check implements the repetition policy for laws: it draws samples from a generator,
// applies a predicate to them, and stops at the first failure.
package check

import (
	"context"
	"fmt"

	"github.com/launchdarkly/laws-harness/framework"
	"github.com/launchdarkly/laws-harness/framework/gen"
	"github.com/launchdarkly/laws-harness/framework/helpers"
	"github.com/launchdarkly/laws-harness/framework/result"
)

// Checker holds the trial settings for a run. It is immutable and safe for concurrent use.
type Checker struct {
	config Config
	logger framework.Logger
}

// Predicate is a law body. It receives exactly as many samples as the law's arity.
type Predicate[A any] func(ctx context.Context, samples []A) result.TestResult

// NewChecker creates a Checker. Options are applied on top of config; a nil logger discards
// debug output.
func NewChecker(config Config, logger framework.Logger, options ...Option) (*Checker, error) {
	if err := helpers.ApplyOptions(&config, options...); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &Checker{config: config.WithDefaults(), logger: logger}, nil
}

// DefaultChecker returns a Checker with default trials, a clock-derived seed, and no logging.
func DefaultChecker() *Checker {
	c, _ := NewChecker(Config{}, nil)
	return c
}

// Config returns the effective configuration, with defaults filled in.
func (c *Checker) Config() Config { return c.config }

// Logger returns the checker's debug logger.
func (c *Checker) Logger() framework.Logger { return c.logger }

// ForLaw returns a copy of the checker whose seed is derived from the law label.
func (c *Checker) ForLaw(label string) *Checker {
	ret := *c
	ret.config.Seed = SeedFor(c.config.Seed, label)
	return &ret
}

// Check opens one stream from g and runs up to Trials trials, drawing arity samples for each. It
// returns at the first failing trial, with the samples and the number of trials that passed before
// it attached. A context that is done between trials, or a generator that panics, also produces a
// failure rather than an error.
func Check[A any](
	ctx context.Context,
	c *Checker,
	g gen.Gen[A],
	arity int,
	predicate Predicate[A],
) (ret result.TestResult) {
	if c == nil {
		c = DefaultChecker()
	}
	if arity < 1 {
		return result.Failedf("invalid arity %d", arity)
	}
	trials := 0
	defer func() {
		if r := recover(); r != nil {
			c.logger.Printf("generator panicked after %d trials: %v", trials, r)
			ret = result.Failedf("generator failed: %v", r).WithTrials(trials)
		}
	}()

	stream := g.Stream(c.config.Seed)
	for trials < c.config.Trials {
		if err := ctx.Err(); err != nil {
			return result.Failedf("check stopped: %s", err).WithTrials(trials)
		}
		samples := make([]A, arity)
		for i := range samples {
			samples[i] = stream.Next()
		}
		r := predicate(ctx, samples)
		if !r.OK() {
			c.logger.Printf("trial %d failed with samples %s", trials+1, formatSamples(samples))
			return r.WithSamples(asInterfaces(samples)...).WithTrials(trials)
		}
		trials++
	}
	c.logger.Printf("%d trials passed (seed %d)", trials, c.config.Seed)
	return result.Passed().WithTrials(trials)
}

// Check1 is Check for a one-argument predicate.
func Check1[A any](ctx context.Context, c *Checker, g gen.Gen[A],
	fn func(ctx context.Context, a A) result.TestResult) result.TestResult {
	return Check(ctx, c, g, 1, func(ctx context.Context, s []A) result.TestResult { return fn(ctx, s[0]) })
}

// Check2 is Check for a two-argument predicate.
func Check2[A any](ctx context.Context, c *Checker, g gen.Gen[A],
	fn func(ctx context.Context, a1, a2 A) result.TestResult) result.TestResult {
	return Check(ctx, c, g, 2, func(ctx context.Context, s []A) result.TestResult { return fn(ctx, s[0], s[1]) })
}

// Check3 is Check for a three-argument predicate.
func Check3[A any](ctx context.Context, c *Checker, g gen.Gen[A],
	fn func(ctx context.Context, a1, a2, a3 A) result.TestResult) result.TestResult {
	return Check(ctx, c, g, 3, func(ctx context.Context, s []A) result.TestResult {
		return fn(ctx, s[0], s[1], s[2])
	})
}

func asInterfaces[A any](samples []A) []interface{} {
	ret := make([]interface{}, len(samples))
	for i, s := range samples {
		ret[i] = s
	}
	return ret
}

func formatSamples[A any](samples []A) string {
	return result.FormatSamples(asInterfaces(samples))
}

func (c Config) String() string {
	return fmt.Sprintf("trials=%d seed=%d", c.Trials, c.Seed)
}
