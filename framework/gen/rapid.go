package gen

import "pgregory.net/rapid"

// FromRapid wraps a rapid generator. Value i of a stream is the generator's example for seed+i,
// so streams are reproducible.
func FromRapid[A any](g *rapid.Generator[A]) Gen[A] {
	return GenFunc[A](func(seed int64) Stream[A] {
		next := int(seed)
		return StreamFunc[A](func() A {
			v := g.Example(next)
			next++
			return v
		})
	})
}
