package lawtest

import (
	"context"
	"testing"

	"github.com/launchdarkly/laws-harness/framework/check"
	"github.com/launchdarkly/laws-harness/framework/gen"
	"github.com/launchdarkly/laws-harness/framework/laws"
	"github.com/launchdarkly/laws-harness/framework/result"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLaws() laws.Laws[int, any] {
	return laws.All(
		laws.Law1("positive", func(a int) result.TestResult { return result.FromBool(a > 0, "not positive") }),
		laws.Law2("ordered", func(a, b int) result.TestResult { return result.FromBool(a < b, "a >= b") }),
	)
}

func TestCheckReportsEachLawAsSubtest(t *testing.T) {
	var logger recordingTestLogger
	config := TestConfiguration{TestLogger: &logger, Check: check.Config{Trials: 5, Seed: 1}}
	var r result.TestResult
	results := Run(config, func(lt *T) {
		lt.Run("ints", func(lt1 *T) {
			r = Check(lt1, sampleLaws(), nil, gen.Sequence(2, 1))
		})
	})

	assert.False(t, r.OK())
	assert.Equal(t, []string{"ordered"}, r.FailedLabels())
	require.Len(t, results.Failures, 1)
	assert.Equal(t, TestID{"ints", "ordered"}, results.Failures[0].TestID)
	assert.Equal(t, []TestID{{"ints"}, {"ints", "positive"}, {"ints", "ordered"}}, logger.started)

	require.Len(t, logger.errors, 1)
	assert.Equal(t, "ints/ordered: a >= b\nsamples: (2, 1)", logger.errors[0])
}

func TestCheckSkipsFilteredLaws(t *testing.T) {
	var logger recordingTestLogger
	var filters RegexFilters
	require.NoError(t, filters.MustNotMatch.Set("ints/ordered"))
	called := false
	l := sampleLaws().Combine(laws.Law1("spy", func(int) result.TestResult {
		called = true
		return result.Passed()
	}))
	filtered := l.Filter(func(label string) bool { return label != "spy" })
	assert.Equal(t, 2, filtered.Size())

	results := Run(TestConfiguration{TestLogger: &logger, Filter: filters, Check: check.Config{Trials: 3, Seed: 1}},
		func(lt *T) {
			lt.Run("ints", func(lt1 *T) {
				Check(lt1, l, nil, gen.Sequence(2, 1))
			})
		})

	assert.True(t, results.OK())
	assert.True(t, called)
	assert.Equal(t, []string{"ints/ordered (excluded by filter parameters)"}, logger.skipped)
}

func TestCheckPassesContextAndEnvironment(t *testing.T) {
	ctx := context.WithValue(context.Background(), ctxKey{}, "v")
	l := laws.Effect1("env", func(ctx context.Context, env string, a int) result.TestResult {
		return result.FromBool(ctx.Value(ctxKey{}) == "v" && env == "memory", "missing context or env")
	})
	results := Run(TestConfiguration{Context: ctx, Check: check.Config{Trials: 2, Seed: 1}}, func(lt *T) {
		lt.Run("stores", func(lt1 *T) {
			assert.True(t, Check(lt1, l, "memory", gen.Const(1)).OK())
		})
	})
	assert.True(t, results.OK())
}

func TestCheckDebugOutput(t *testing.T) {
	var logger recordingTestLogger
	_ = Run(TestConfiguration{TestLogger: &logger, Check: check.Config{Trials: 2, Seed: 1}}, func(lt *T) {
		Check(lt, sampleLaws().Filter(func(l string) bool { return l == "positive" }), nil, gen.Const(1))
	})
	require.Len(t, logger.finished, 1)
	positive := logger.finished[0]
	assert.Equal(t, TestID{"positive"}, positive.id)
	assert.Contains(t, positive.messages, "held for 2 trials")
}

func TestDescribeFailure(t *testing.T) {
	assert.Equal(t, "law does not hold", describeFailure(result.Outcome{Labels: []string{"x"}}))
	assert.Equal(t, "inner: bad\nsamples: (1)\nafter 1 passing trial",
		describeFailure(result.Outcome{Labels: []string{"x", "inner"}, Message: "bad", Samples: []interface{}{1}, Trials: 1}))
	assert.Equal(t, "bad\nafter 3 passing trials",
		describeFailure(result.Outcome{Labels: []string{"x"}, Message: "bad", Trials: 3}))
}
