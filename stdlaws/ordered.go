package stdlaws

import (
	"github.com/launchdarkly/laws-harness/framework/laws"
	"github.com/launchdarkly/laws-harness/framework/result"

	"golang.org/x/exp/constraints"
)

// OrderedLaws checks Go's built-in ordering operators. Floating-point NaN values do not satisfy
// these laws, so generators for float types should not produce them.
func OrderedLaws[A constraints.Ordered]() laws.Laws[A, any] {
	return laws.All(
		laws.Law1("irreflexivity of <", func(a A) result.TestResult {
			return result.FromBool(!(a < a), "a < a")
		}),
		laws.Law2("totality", func(a, b A) result.TestResult {
			return result.FromBool(a <= b || b <= a, "neither a <= b nor b <= a")
		}),
		laws.Law2("antisymmetry", func(a, b A) result.TestResult {
			return result.FromBool(!(a <= b && b <= a) || a == b, "a <= b and b <= a but a != b")
		}),
		laws.Law3("order transitivity", func(a, b, c A) result.TestResult {
			return result.FromBool(!(a <= b && b <= c) || a <= c, "a <= b and b <= c but not a <= c")
		}),
		laws.Law2("trichotomy", func(a, b A) result.TestResult {
			n := 0
			for _, holds := range []bool{a < b, a == b, b < a} {
				if holds {
					n++
				}
			}
			return result.FromBool(n == 1, "not exactly one of a < b, a == b, b < a")
		}),
	)
}
