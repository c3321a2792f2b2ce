// Package gen provides the sample sources that laws are checked against.
//
// A Gen is restartable: every call to Stream returns a new, independent sequence of values that
// depends only on the seed. The checker opens a fresh stream for each law it checks, so two laws
// never share samples and a run can be reproduced from its seed.
package gen

import (
	"fmt"
	"math/rand"
)

// Stream is a conceptually infinite sequence of samples. It is not safe for concurrent use.
type Stream[A any] interface {
	Next() A
}

// Gen produces streams of samples of type A.
type Gen[A any] interface {
	Stream(seed int64) Stream[A]
}

// StreamFunc adapts a function to the Stream interface.
type StreamFunc[A any] func() A

func (f StreamFunc[A]) Next() A { return f() }

// GenFunc adapts a function to the Gen interface.
type GenFunc[A any] func(seed int64) Stream[A]

func (f GenFunc[A]) Stream(seed int64) Stream[A] { return f(seed) }

// Sequence returns a generator that yields the given values in order, starting over after the
// last one. The seed is ignored, so every stream yields the same values. Calling Next on a stream
// from an empty sequence panics.
func Sequence[A any](values ...A) Gen[A] {
	values = append([]A(nil), values...)
	return GenFunc[A](func(int64) Stream[A] {
		i := 0
		return StreamFunc[A](func() A {
			if len(values) == 0 {
				panic("gen.Sequence has no values")
			}
			v := values[i%len(values)]
			i++
			return v
		})
	})
}

// Const returns a generator that always yields the same value.
func Const[A any](value A) Gen[A] {
	return Sequence(value)
}

// Func returns a generator that calls fn with a random source seeded from the stream seed.
func Func[A any](fn func(rng *rand.Rand) A) Gen[A] {
	return GenFunc[A](func(seed int64) Stream[A] {
		rng := rand.New(rand.NewSource(seed)) //nolint:gosec
		return StreamFunc[A](func() A { return fn(rng) })
	})
}

// Map transforms every value of a generator.
func Map[A, B any](g Gen[A], fn func(A) B) Gen[B] {
	return GenFunc[B](func(seed int64) Stream[B] {
		s := g.Stream(seed)
		return StreamFunc[B](func() B { return fn(s.Next()) })
	})
}

// OneOf returns a generator that picks one of the given generators at random for each value.
// Each underlying generator gets its own stream, so picking one does not disturb the others.
func OneOf[A any](gens ...Gen[A]) Gen[A] {
	if len(gens) == 0 {
		panic("gen.OneOf requires at least one generator")
	}
	return GenFunc[A](func(seed int64) Stream[A] {
		rng := rand.New(rand.NewSource(seed)) //nolint:gosec
		streams := make([]Stream[A], len(gens))
		for i, g := range gens {
			streams[i] = g.Stream(seed + int64(i) + 1)
		}
		return StreamFunc[A](func() A { return streams[rng.Intn(len(streams))].Next() })
	})
}

// Take draws n values from a fresh stream. It is mostly useful for tests and for printing
// examples of what a generator produces.
func Take[A any](g Gen[A], seed int64, n int) []A {
	s := g.Stream(seed)
	ret := make([]A, 0, n)
	for i := 0; i < n; i++ {
		ret = append(ret, s.Next())
	}
	return ret
}

// ExhaustedError is the panic value used when a generator cannot produce a value.
type ExhaustedError struct {
	Source   string
	Attempts int
}

func (e ExhaustedError) Error() string {
	return fmt.Sprintf("%s generator produced no value after %d attempts", e.Source, e.Attempts)
}
