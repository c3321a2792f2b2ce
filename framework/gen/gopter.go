package gen

import (
	"fmt"
	"math/rand"

	"github.com/leanovate/gopter"
)

// MaxSieveAttempts is how many times a gopter generator is retried when its sieve rejects a value.
const MaxSieveAttempts = 100

// FromGopter wraps a gopter generator. The generator's values must be of type A. Shrinking is not
// used; only the generated values are.
func FromGopter[A any](g gopter.Gen) Gen[A] {
	return GenFunc[A](func(seed int64) Stream[A] {
		params := gopter.DefaultGenParameters()
		params.Rng = rand.New(rand.NewSource(seed)) //nolint:gosec
		return StreamFunc[A](func() A {
			for i := 0; i < MaxSieveAttempts; i++ {
				v, ok := g(params).Retrieve()
				if !ok {
					continue
				}
				a, isA := v.(A)
				if !isA {
					var zero A
					panic(fmt.Errorf("gopter generator produced %T, expected %T", v, zero))
				}
				return a
			}
			panic(ExhaustedError{Source: "gopter", Attempts: MaxSieveAttempts})
		})
	})
}
