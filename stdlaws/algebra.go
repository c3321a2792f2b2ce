package stdlaws

import (
	"fmt"

	"github.com/launchdarkly/laws-harness/framework/laws"
	"github.com/launchdarkly/laws-harness/framework/result"
)

func SemigroupLaws[A SemigroupEq[A]]() laws.Laws[A, any] {
	return laws.Law3("associativity", func(a, b, c A) result.TestResult {
		left := a.Combine(b).Combine(c)
		right := a.Combine(b.Combine(c))
		return result.FromBool(left.Equal(right), fmt.Sprintf("(a+b)+c = %v but a+(b+c) = %v", left, right))
	})
}

// MonoidLaws checks the semigroup laws and that Empty is a two-sided identity.
func MonoidLaws[A MonoidEq[A]]() laws.Laws[A, any] {
	return laws.All(
		SemigroupLaws[A](),
		laws.Law1("left identity", func(a A) result.TestResult {
			r := a.Empty().Combine(a)
			return result.FromBool(r.Equal(a), fmt.Sprintf("empty+a = %v", r))
		}),
		laws.Law1("right identity", func(a A) result.TestResult {
			r := a.Combine(a.Empty())
			return result.FromBool(r.Equal(a), fmt.Sprintf("a+empty = %v", r))
		}),
	)
}
