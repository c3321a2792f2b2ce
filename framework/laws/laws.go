package laws

import (
	"context"
	"fmt"

	"github.com/launchdarkly/laws-harness/framework/check"
	"github.com/launchdarkly/laws-harness/framework/gen"
	"github.com/launchdarkly/laws-harness/framework/result"

	"golang.org/x/sync/errgroup"
)

// MaxArity is the largest number of samples a single law can take.
const MaxArity = 3

type kind int

const (
	kindEmpty kind = iota
	kindLeaf
	kindBoth
)

// Laws is an immutable set of laws over sampled values of type A, run in an environment of type R.
// The zero value is an empty set, which passes without checking anything.
type Laws[A, R any] struct {
	kind      kind
	label     string
	arity     int
	effectful bool
	apply     func(ctx context.Context, env R, samples []A) result.TestResult
	left      *Laws[A, R]
	right     *Laws[A, R]
}

func leaf[A, R any](
	label string,
	arity int,
	effectful bool,
	apply func(ctx context.Context, env R, samples []A) result.TestResult,
) Laws[A, R] {
	if arity < 1 || arity > MaxArity {
		panic(fmt.Sprintf("law %q has arity %d; must be between 1 and %d", label, arity, MaxArity))
	}
	if apply == nil {
		panic(fmt.Sprintf("law %q has no predicate", label))
	}
	return Laws[A, R]{kind: kindLeaf, label: label, arity: arity, effectful: effectful, apply: apply}
}

// Law1 is a pure law about one sample.
func Law1[A any](label string, fn func(a A) result.TestResult) Laws[A, any] {
	return leaf(label, 1, false, func(_ context.Context, _ any, s []A) result.TestResult {
		return fn(s[0])
	})
}

// Law2 is a pure law about two independently drawn samples.
func Law2[A any](label string, fn func(a1, a2 A) result.TestResult) Laws[A, any] {
	return leaf(label, 2, false, func(_ context.Context, _ any, s []A) result.TestResult {
		return fn(s[0], s[1])
	})
}

// Law3 is a pure law about three independently drawn samples.
func Law3[A any](label string, fn func(a1, a2, a3 A) result.TestResult) Laws[A, any] {
	return leaf(label, 3, false, func(_ context.Context, _ any, s []A) result.TestResult {
		return fn(s[0], s[1], s[2])
	})
}

// Effect1 is a law about one sample that needs an environment. The predicate may block, and must
// express every failure, including errors from the environment, as a failing result.
func Effect1[A, R any](label string, fn func(ctx context.Context, env R, a A) result.TestResult) Laws[A, R] {
	return leaf(label, 1, true, func(ctx context.Context, env R, s []A) result.TestResult {
		return fn(ctx, env, s[0])
	})
}

// Effect2 is Effect1 for two samples.
func Effect2[A, R any](label string, fn func(ctx context.Context, env R, a1, a2 A) result.TestResult) Laws[A, R] {
	return leaf(label, 2, true, func(ctx context.Context, env R, s []A) result.TestResult {
		return fn(ctx, env, s[0], s[1])
	})
}

// Effect3 is Effect1 for three samples.
func Effect3[A, R any](
	label string,
	fn func(ctx context.Context, env R, a1, a2, a3 A) result.TestResult,
) Laws[A, R] {
	return leaf(label, 3, true, func(ctx context.Context, env R, s []A) result.TestResult {
		return fn(ctx, env, s[0], s[1], s[2])
	})
}

// Combine returns a law set that holds if and only if both l and other hold. Neither operand is
// changed. Combining with an empty law set returns the other operand.
func (l Laws[A, R]) Combine(other Laws[A, R]) Laws[A, R] {
	if other.kind == kindEmpty {
		return l
	}
	if l.kind == kindEmpty {
		return other
	}
	left, right := l, other
	return Laws[A, R]{kind: kindBoth, left: &left, right: &right}
}

// All combines any number of law sets, in order.
func All[A, R any](laws ...Laws[A, R]) Laws[A, R] {
	var ret Laws[A, R]
	for _, l := range laws {
		ret = ret.Combine(l)
	}
	return ret
}

// IsEmpty returns true if the law set contains no laws.
func (l Laws[A, R]) IsEmpty() bool { return l.kind == kindEmpty }

// Labels returns the labels of all leaves in the order their outcomes are reported.
func (l Laws[A, R]) Labels() []string {
	var ret []string
	l.walk(func(leaf Laws[A, R]) { ret = append(ret, leaf.label) })
	return ret
}

// Size returns the number of leaves.
func (l Laws[A, R]) Size() int {
	n := 0
	l.walk(func(Laws[A, R]) { n++ })
	return n
}

func (l Laws[A, R]) walk(fn func(Laws[A, R])) {
	switch l.kind {
	case kindLeaf:
		fn(l)
	case kindBoth:
		l.left.walk(fn)
		l.right.walk(fn)
	}
}

// Filter returns a law set containing only the leaves whose label satisfies keep, in the same order.
func (l Laws[A, R]) Filter(keep func(label string) bool) Laws[A, R] {
	switch l.kind {
	case kindLeaf:
		if keep(l.label) {
			return l
		}
		return Laws[A, R]{}
	case kindBoth:
		return l.left.Filter(keep).Combine(l.right.Filter(keep))
	default:
		return l
	}
}

// Run checks every law against samples from g with a default checker. See RunWith.
func (l Laws[A, R]) Run(ctx context.Context, env R, g gen.Gen[A]) result.TestResult {
	return l.RunWith(ctx, check.DefaultChecker(), env, g)
}

// RunWith checks every law against samples from g. Each leaf is checked by c with a seed derived
// from its label, and its outcome carries that label. Failing laws and panicking predicates produce
// failing outcomes; RunWith itself never panics because of a law.
func (l Laws[A, R]) RunWith(ctx context.Context, c *check.Checker, env R, g gen.Gen[A]) result.TestResult {
	if c == nil {
		c = check.DefaultChecker()
	}
	switch l.kind {
	case kindLeaf:
		return l.runLeaf(ctx, c, env, g)
	case kindBoth:
		var left, right result.TestResult
		var group errgroup.Group
		group.Go(func() error {
			left = l.left.RunWith(ctx, c, env, g)
			return nil
		})
		group.Go(func() error {
			right = l.right.RunWith(ctx, c, env, g)
			return nil
		})
		_ = group.Wait()
		return left.And(right)
	default:
		return result.TestResult{}
	}
}

func (l Laws[A, R]) runLeaf(ctx context.Context, c *check.Checker, env R, g gen.Gen[A]) result.TestResult {
	checker := c.ForLaw(l.label)
	checker.Logger().Printf("checking %q (arity %d, %s)", l.label, l.arity, checker.Config())
	r := check.Check(ctx, checker, g, l.arity, func(ctx context.Context, samples []A) result.TestResult {
		return l.safeApply(ctx, env, samples)
	})
	return r.Label(l.label)
}

func (l Laws[A, R]) safeApply(ctx context.Context, env R, samples []A) (ret result.TestResult) {
	defer func() {
		if r := recover(); r != nil {
			ret = result.Failedf("law panicked: %v", r)
		}
	}()
	return l.apply(ctx, env, samples)
}

// ContramapEnv adapts a law set that needs an environment of type R1 so that it can run in an
// environment of type R2, using f to get an R1 out of an R2.
func ContramapEnv[A, R1, R2 any](l Laws[A, R1], f func(R2) R1) Laws[A, R2] {
	switch l.kind {
	case kindLeaf:
		apply := l.apply
		return Laws[A, R2]{
			kind:      kindLeaf,
			label:     l.label,
			arity:     l.arity,
			effectful: l.effectful,
			apply: func(ctx context.Context, env R2, samples []A) result.TestResult {
				return apply(ctx, f(env), samples)
			},
		}
	case kindBoth:
		left, right := ContramapEnv(*l.left, f), ContramapEnv(*l.right, f)
		return Laws[A, R2]{kind: kindBoth, left: &left, right: &right}
	default:
		return Laws[A, R2]{}
	}
}

// Lift makes a law set that does not depend on its environment usable with any environment type.
func Lift[A, R any](l Laws[A, any]) Laws[A, R] {
	return ContramapEnv(l, func(env R) any { return env })
}
