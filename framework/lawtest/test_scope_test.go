package lawtest

import (
	"context"
	"testing"

	"github.com/launchdarkly/laws-harness/framework/check"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ctxKey struct{}

func TestTestScopeInheritsConfiguration(t *testing.T) {
	ctx := context.WithValue(context.Background(), ctxKey{}, "hi")
	config := TestConfiguration{
		Context: ctx,
		Check:   check.Config{Trials: 7, Seed: 3},
	}
	_ = Run(config, func(lt *T) {
		assert.Equal(t, "hi", lt.Context().Value(ctxKey{}))
		assert.Equal(t, check.Config{Trials: 7, Seed: 3}, lt.CheckConfig())

		lt.Run("subtest", func(lt1 *T) {
			assert.Equal(t, "hi", lt1.Context().Value(ctxKey{}))
			assert.Equal(t, check.Config{Trials: 7, Seed: 3}, lt1.CheckConfig())
		})
	})
}

func TestTestScopeFillsInCheckDefaults(t *testing.T) {
	var seen check.Config
	_ = Run(TestConfiguration{}, func(lt *T) {
		seen = lt.CheckConfig()
		assert.NotNil(t, lt.Context())
	})
	assert.Equal(t, check.DefaultTrials, seen.Trials)
	assert.NotEqual(t, int64(0), seen.Seed)
}

func TestTestScopeExitsImmediatelyOnFailNow(t *testing.T) {
	executed1 := false
	executed2 := false
	executed3 := false
	_ = Run(TestConfiguration{}, func(lt *T) {
		lt.Run("", func(lt *T) {
			executed1 = true
			lt.FailNow()
			executed2 = true
		})
		executed3 = true
	})
	assert.True(t, executed1)
	assert.False(t, executed2)
	assert.True(t, executed3)
}

func TestTestScopeExitsImmediatelyOnSkip(t *testing.T) {
	executed1 := false
	executed2 := false
	executed3 := false
	_ = Run(TestConfiguration{}, func(lt *T) {
		lt.Run("", func(lt *T) {
			executed1 = true
			lt.Skip()
			executed2 = true
		})
		executed3 = true
	})
	assert.True(t, executed1)
	assert.False(t, executed2)
	assert.True(t, executed3)
}

func TestTestScopePassedResult(t *testing.T) {
	result := Run(TestConfiguration{}, func(lt *T) {
		lt.Run("parent", func(lt0 *T) {
			lt0.Run("subtest1", func(lt1 *T) {})
			lt0.Run("subtest2", func(lt2 *T) {})
		})
	})

	assert.True(t, result.OK())
	require.Len(t, result.Tests, 4)
	assert.Len(t, result.Failures, 0)

	assert.Equal(t, TestID{"parent", "subtest1"}, result.Tests[0].TestID)
	assert.Len(t, result.Tests[0].Errors, 0)

	assert.Equal(t, TestID{"parent", "subtest2"}, result.Tests[1].TestID)
	assert.Equal(t, TestID{"parent"}, result.Tests[2].TestID)
	assert.Nil(t, result.Tests[3].TestID)
}

func TestTestScopeFailedResult(t *testing.T) {
	result := Run(TestConfiguration{}, func(lt *T) {
		lt.Run("parent", func(lt0 *T) {
			lt0.Run("subtest1", func(lt1 *T) {})
			lt0.Run("subtest2", func(lt2 *T) {
				lt2.Errorf("failed because %s", "reasons")
				lt2.Errorf("and failed some more")
				assert.True(t, lt2.Failed())
			})
			lt0.Errorf("and parent failed")
		})
	})

	assert.False(t, result.OK())
	require.Len(t, result.Tests, 4)
	assert.Len(t, result.Failures, 2)

	assert.Len(t, result.Tests[0].Errors, 0)

	assert.Equal(t, TestID{"parent", "subtest2"}, result.Tests[1].TestID)
	require.Len(t, result.Tests[1].Errors, 2)
	assert.Equal(t, "failed because reasons", result.Tests[1].Errors[0].Error())
	assert.Equal(t, "and failed some more", result.Tests[1].Errors[1].Error())

	assert.Equal(t, TestID{"parent"}, result.Tests[2].TestID)
	require.Len(t, result.Tests[2].Errors, 1)
	assert.Equal(t, "and parent failed", result.Tests[2].Errors[0].Error())
}

func TestTestScopeUnexpectedPanic(t *testing.T) {
	result := Run(TestConfiguration{}, func(lt *T) {
		lt.Run("panics", func(lt1 *T) {
			panic("oops")
		})
	})
	require.Len(t, result.Failures, 1)
	assert.Contains(t, result.Failures[0].Errors[0].Error(), "unexpected panic in test: oops")
}

func TestTestScopeSkippedResult(t *testing.T) {
	result := Run(TestConfiguration{}, func(lt *T) {
		lt.Run("parent", func(lt0 *T) {
			lt0.Run("subtest1", func(lt1 *T) {
				lt1.Skip()
			})
			lt0.Run("subtest2", func(lt2 *T) {
				lt2.SkipWithReason("why not")
			})
		})
	})

	assert.True(t, result.OK())
	assert.Len(t, result.Tests, 2)
	assert.Equal(t, []TestID{{"parent", "subtest1"}, {"parent", "subtest2"}}, result.Skipped)
}

func TestTestScopeRunsCleanupsInReverseOrder(t *testing.T) {
	var order []string
	_ = Run(TestConfiguration{}, func(lt *T) {
		lt.Run("a", func(lt1 *T) {
			lt1.Defer(func() { order = append(order, "first") })
			lt1.Defer(func() { order = append(order, "second") })
			lt1.FailNow()
		})
		lt.Run("b", func(lt1 *T) {
			lt1.Defer(func() { order = append(order, "skipped") })
			lt1.Skip()
		})
	})
	assert.Equal(t, []string{"second", "first", "skipped"}, order)
}

func TestTestScopeFilter(t *testing.T) {
	filter := FilterFunc(func(id TestID) bool {
		return len(id) == 0 || id[0] == "b"
	})

	result := Run(TestConfiguration{Filter: filter}, func(lt *T) {
		lt.Run("a", func(lt0 *T) {
			lt0.Run("sub1a", func(lt1 *T) {})
			lt0.Run("sub2a", func(lt1 *T) {})
		})
		lt.Run("b", func(lt0 *T) {
			lt0.Run("sub1b", func(lt1 *T) {})
			lt0.Run("sub2b", func(lt1 *T) {})
		})
	})

	assert.True(t, result.OK())
	require.Len(t, result.Tests, 4)
	assert.Equal(t, []TestID{{"a"}}, result.Skipped)

	assert.Equal(t, TestID{"b", "sub1b"}, result.Tests[0].TestID)
	assert.Equal(t, TestID{"b", "sub2b"}, result.Tests[1].TestID)
	assert.Equal(t, TestID{"b"}, result.Tests[2].TestID)
	assert.Equal(t, TestID(nil), result.Tests[3].TestID)
}

func TestDebugOutputIsCapturedPerTest(t *testing.T) {
	var logger recordingTestLogger
	_ = Run(TestConfiguration{TestLogger: &logger}, func(lt *T) {
		lt.Debug("from parent")
		lt.Run("child", func(lt1 *T) {
			lt1.Debug("from child")
		})
	})
	require.Len(t, logger.finished, 1)
	assert.Equal(t, []string{"from parent", "from child"}, logger.finished[0].messages)
}
