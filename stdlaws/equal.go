package stdlaws

import (
	"fmt"

	"github.com/launchdarkly/laws-harness/framework/laws"
	"github.com/launchdarkly/laws-harness/framework/result"
)

func EqualLaws[A Equal[A]]() laws.Laws[A, any] {
	return laws.All(
		laws.Law1("reflexivity", func(a A) result.TestResult {
			return result.FromBool(a.Equal(a), fmt.Sprintf("%v is not equal to itself", a))
		}),
		laws.Law2("symmetry", func(a, b A) result.TestResult {
			return result.FromBool(a.Equal(b) == b.Equal(a), fmt.Sprintf("a == b is %t but b == a is %t", a.Equal(b), b.Equal(a)))
		}),
		laws.Law3("transitivity", func(a, b, c A) result.TestResult {
			return result.FromBool(!(a.Equal(b) && b.Equal(c)) || a.Equal(c), "a == b and b == c but a != c")
		}),
	)
}

// OrdLaws checks the equality laws and that Compare is a total order consistent with Equal.
func OrdLaws[A Ord[A]]() laws.Laws[A, any] {
	le := func(a, b A) bool { return a.Compare(b) <= 0 }
	return laws.All(
		EqualLaws[A](),
		laws.Law2("totality", func(a, b A) result.TestResult {
			return result.FromBool(le(a, b) || le(b, a), "neither a <= b nor b <= a")
		}),
		laws.Law2("antisymmetry", func(a, b A) result.TestResult {
			return result.FromBool(!(le(a, b) && le(b, a)) || a.Equal(b), "a <= b and b <= a but a != b")
		}),
		laws.Law3("order transitivity", func(a, b, c A) result.TestResult {
			return result.FromBool(!(le(a, b) && le(b, c)) || le(a, c), "a <= b and b <= c but not a <= c")
		}),
		laws.Law2("compare consistent with equal", func(a, b A) result.TestResult {
			return result.FromBool((a.Compare(b) == 0) == a.Equal(b),
				fmt.Sprintf("compare returned %d but equal returned %t", a.Compare(b), a.Equal(b)))
		}),
	)
}
