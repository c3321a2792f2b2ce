// Package laws defines Laws, a composable description of properties that generated values must
// satisfy.
//
// A law set is either a leaf or the combination of two law sets. A leaf has a label, an arity of
// 1, 2 or 3, and a predicate. Pure leaves (Law1, Law2, Law3) look only at the samples. Effectful
// leaves (Effect1, Effect2, Effect3) also receive a context and an environment of type R, such as
// a connection to a data store, and may block.
//
// The sampled type A is constrained by the generic constructor that builds a law set, for
// instance
//
//	func SemigroupLaws[A Semigroup[A]]() laws.Laws[A, any]
//
// so a law set can only be run against a generator of a type that has the required operations.
// A law set that needs a smaller environment can be adapted to a larger one with ContramapEnv,
// and a law set that needs no environment at all can be used anywhere with Lift.
//
// Running a law set checks every leaf independently. Each leaf gets its own stream of samples
// and its own trial loop (see package check), and its outcome is labeled with the leaf's label.
// The two sides of a combination are checked concurrently, and both are always checked even if
// one of them fails.
package laws
