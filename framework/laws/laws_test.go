package laws

import (
	"context"
	"math/rand"
	"sync"
	"testing"

	"github.com/launchdarkly/laws-harness/framework/check"
	"github.com/launchdarkly/laws-harness/framework/gen"
	"github.com/launchdarkly/laws-harness/framework/result"

	"github.com/google/go-cmp/cmp"
	m "github.com/launchdarkly/go-test-helpers/v2/matchers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(tm *testing.M) {
	goleak.VerifyTestMain(tm)
}

func checker(t *testing.T, trials int) *check.Checker {
	c, err := check.NewChecker(check.Config{Trials: trials, Seed: 1}, nil)
	require.NoError(t, err)
	return c
}

// lessOrEqual is deliberately not a valid equality, so that it breaks symmetry.
func lessOrEqual(a, b int) bool { return a <= b }

func reflexivity(eq func(a, b int) bool) Laws[int, any] {
	return Law1("reflexivity", func(a int) result.TestResult {
		return result.FromBool(eq(a, a), "a != a")
	})
}

func symmetry(eq func(a, b int) bool) Laws[int, any] {
	return Law2("symmetry", func(a, b int) result.TestResult {
		return result.FromBool(!eq(a, b) || eq(b, a), "a == b but b != a")
	})
}

func equals(a, b int) bool { return a == b }

func TestReflexivityOnSinglePassingSample(t *testing.T) {
	r := reflexivity(equals).RunWith(context.Background(), checker(t, 1), nil, gen.Const(5))
	assert.True(t, r.OK())
	assert.Equal(t, []string{"reflexivity"}, r.Labels())
	assert.Len(t, r.Failures(), 0)
}

func TestCompositeReportsOnlyTheFailingLaw(t *testing.T) {
	laws := symmetry(lessOrEqual).Combine(reflexivity(lessOrEqual))
	r := laws.RunWith(context.Background(), checker(t, 10), nil, gen.Sequence(1, 2))

	assert.False(t, r.OK())
	assert.Equal(t, []string{"symmetry"}, r.FailedLabels())
	assert.Equal(t, []string{"symmetry", "reflexivity"}, r.Labels())

	outcomes := r.Outcomes()
	require.Len(t, outcomes, 2)
	assert.Equal(t, []interface{}{1, 2}, outcomes[0].Samples)
	assert.True(t, outcomes[1].Passed)
	assert.Equal(t, 10, outcomes[1].Trials)
}

func TestEffectfulLawThatAlwaysFailsCompletes(t *testing.T) {
	l := Effect1("always fails", func(ctx context.Context, env string, a int) result.TestResult {
		return result.Failedf("env %s rejected %d", env, a)
	})
	r := l.RunWith(context.Background(), checker(t, 10), "store", gen.Const(3))
	require.False(t, r.OK())
	f := r.Failures()[0]
	assert.Equal(t, []string{"always fails"}, f.Labels)
	assert.Equal(t, "env store rejected 3", f.Message)
	assert.Equal(t, 0, f.Trials)
}

func TestArityContract(t *testing.T) {
	var mu sync.Mutex
	received := map[string][]int{}
	record := func(label string, samples ...int) result.TestResult {
		mu.Lock()
		defer mu.Unlock()
		received[label] = samples
		return result.Passed()
	}
	all := All(
		Law1("one", func(a int) result.TestResult { return record("one", a) }),
		Law2("two", func(a, b int) result.TestResult { return record("two", a, b) }),
		Law3("three", func(a, b, c int) result.TestResult { return record("three", a, b, c) }),
	)
	r := all.RunWith(context.Background(), checker(t, 1), nil, gen.Sequence(1, 2, 3, 4))
	assert.True(t, r.OK())
	assert.Equal(t, map[string][]int{
		"one":   {1},
		"two":   {1, 2},
		"three": {1, 2, 3},
	}, received)
}

func TestEffectfulArity(t *testing.T) {
	l := All(
		Effect2("two", func(_ context.Context, env int, a, b int) result.TestResult {
			return result.FromBool(a+b+env == 3+env, "sum")
		}),
		Effect3("three", func(_ context.Context, env int, a, b, c int) result.TestResult {
			return result.FromBool(c == a+b, "c is not a+b")
		}),
	)
	r := l.RunWith(context.Background(), checker(t, 1), 10, gen.Sequence(1, 2, 3))
	assert.True(t, r.OK(), r.String())
}

func TestCombinePassesIffBothPass(t *testing.T) {
	pass := Law1("pass", func(int) result.TestResult { return result.Passed() })
	fail := Law1("fail", func(int) result.TestResult { return result.Failed("no") })
	ctx := context.Background()

	for _, tc := range []struct {
		a, b     Laws[int, any]
		expectOK bool
	}{
		{pass, pass, true},
		{pass, fail, false},
		{fail, pass, false},
		{fail, fail, false},
	} {
		r := tc.a.Combine(tc.b).RunWith(ctx, checker(t, 3), nil, gen.Const(0))
		ra := tc.a.RunWith(ctx, checker(t, 3), nil, gen.Const(0))
		rb := tc.b.RunWith(ctx, checker(t, 3), nil, gen.Const(0))
		assert.Equal(t, tc.expectOK, r.OK())
		assert.Equal(t, ra.OK() && rb.OK(), r.OK())
	}
}

func TestBothSidesRunEvenIfOneFails(t *testing.T) {
	fail := Law1("first", func(int) result.TestResult { return result.Failed("no") })
	alsoFail := Law1("second", func(int) result.TestResult { return result.Failed("no") })
	r := fail.Combine(alsoFail).RunWith(context.Background(), checker(t, 3), nil, gen.Const(0))
	assert.Equal(t, []string{"first", "second"}, r.FailedLabels())
}

func TestCombineDoesNotMutateOperands(t *testing.T) {
	a := reflexivity(equals)
	b := symmetry(equals)
	before := a.Labels()
	_ = a.Combine(b)
	_ = a.Combine(b)
	assert.Equal(t, before, a.Labels())
	assert.Equal(t, []string{"symmetry"}, b.Labels())
	assert.Equal(t, 1, a.Size())
}

func TestRunningTwiceGivesEqualOutcomes(t *testing.T) {
	l := symmetry(lessOrEqual).Combine(reflexivity(lessOrEqual))
	c := checker(t, 20)
	g := gen.Sequence(3, 1, 4, 1, 5, 9, 2, 6)
	r1 := l.RunWith(context.Background(), c, nil, g)
	r2 := l.RunWith(context.Background(), c, nil, g)
	if diff := cmp.Diff(r1.Outcomes(), r2.Outcomes()); diff != "" {
		t.Errorf("outcomes differ (-first +second):\n%s", diff)
	}
}

func TestEmptyLawsPassVacuously(t *testing.T) {
	var l Laws[int, any]
	assert.True(t, l.IsEmpty())
	r := l.RunWith(context.Background(), checker(t, 1), nil, gen.Sequence[int]())
	assert.True(t, r.OK())
	assert.Len(t, r.Outcomes(), 0)

	one := reflexivity(equals)
	assert.Equal(t, one.Labels(), l.Combine(one).Labels())
	assert.Equal(t, one.Labels(), one.Combine(l).Labels())
	assert.True(t, All[int, any]().IsEmpty())
}

func TestPanickingPredicateBecomesFailure(t *testing.T) {
	l := Law1("panics", func(int) result.TestResult { panic("oops") })
	r := l.RunWith(context.Background(), checker(t, 5), nil, gen.Const(1))
	require.False(t, r.OK())
	f := r.Failures()[0]
	m.In(t).Assert(f.Labels, m.Equal([]string{"panics"}))
	m.In(t).Assert(f.Message, m.AllOf(m.StringContains("panicked"), m.StringContains("oops")))
}

func TestInvalidArityPanicsAtConstruction(t *testing.T) {
	assert.Panics(t, func() {
		leaf("bad", 4, false, func(context.Context, any, []int) result.TestResult { return result.Passed() })
	})
	assert.Panics(t, func() {
		leaf[int, any]("nil", 1, false, nil)
	})
}

type richEnv struct {
	prefix string
	count  int
}

func TestContramapEnv(t *testing.T) {
	l := Effect1("prefix", func(_ context.Context, prefix string, a int) result.TestResult {
		return result.FromBool(prefix == "k", "wrong prefix "+prefix)
	}).Combine(Effect1("other", func(_ context.Context, prefix string, a int) result.TestResult {
		return result.Passed()
	}))
	adapted := ContramapEnv(l, func(e richEnv) string { return e.prefix })
	assert.Equal(t, l.Labels(), adapted.Labels())

	assert.True(t, adapted.RunWith(context.Background(), checker(t, 2), richEnv{prefix: "k"}, gen.Const(1)).OK())
	r := adapted.RunWith(context.Background(), checker(t, 2), richEnv{prefix: "z"}, gen.Const(1))
	assert.Equal(t, []string{"prefix"}, r.FailedLabels())
}

func TestLift(t *testing.T) {
	pure := reflexivity(equals)
	effect := Effect1("count", func(_ context.Context, e richEnv, a int) result.TestResult {
		return result.FromBool(e.count == 2, "count")
	})
	combined := Lift[int, richEnv](pure).Combine(effect)
	r := combined.RunWith(context.Background(), checker(t, 2), richEnv{count: 2}, gen.Const(1))
	assert.True(t, r.OK())
	assert.Equal(t, []string{"reflexivity", "count"}, r.Labels())
}

func TestRunUsesDefaultChecker(t *testing.T) {
	calls := 0
	l := Law1("count", func(int) result.TestResult {
		calls++
		return result.Passed()
	})
	assert.True(t, l.Run(context.Background(), nil, gen.Const(0)).OK())
	assert.Equal(t, check.DefaultTrials, calls)
}

func TestLeavesGetIndependentStreams(t *testing.T) {
	var mu sync.Mutex
	firsts := map[string]int{}
	capture := func(label string) Laws[int, any] {
		return Law1(label, func(a int) result.TestResult {
			mu.Lock()
			defer mu.Unlock()
			if _, ok := firsts[label]; !ok {
				firsts[label] = a
			}
			return result.Passed()
		})
	}
	l := capture("a").Combine(capture("b"))
	r := l.RunWith(context.Background(), checker(t, 1), nil, gen.Func(func(rng *rand.Rand) int { return rng.Int() }))
	assert.True(t, r.OK())
	assert.NotEqual(t, firsts["a"], firsts["b"])
}

func TestFilter(t *testing.T) {
	l := All(reflexivity(equals), symmetry(equals), Law1("third", func(int) result.TestResult { return result.Passed() }))
	assert.Equal(t, []string{"reflexivity", "third"}, l.Filter(func(label string) bool { return label != "symmetry" }).Labels())
	assert.True(t, l.Filter(func(string) bool { return false }).IsEmpty())
	assert.Equal(t, 3, l.Size())
}
