// Package stdlaws is a catalog of standard algebraic laws and of the instances the harness checks
// them against.
//
// Each law set is a generic constructor whose type constraint names the operations the sampled
// type must have. A constraint that embeds another (MonoidEq embeds SemigroupEq) reuses the weaker
// law set, so every monoid is also checked as a semigroup.
package stdlaws

// Equal is the capability of comparing two values for equality.
type Equal[A any] interface {
	Equal(other A) bool
}

// Ord is the capability of ordering values. Compare returns a negative number, zero, or a positive
// number as the receiver is less than, equal to, or greater than other.
type Ord[A any] interface {
	Equal[A]
	Compare(other A) int
}

// Semigroup is the capability of combining two values into one.
type Semigroup[A any] interface {
	Combine(other A) A
}

// Monoid is a Semigroup with an identity element.
type Monoid[A any] interface {
	Semigroup[A]
	Empty() A
}

// SemigroupEq is a Semigroup whose results can be compared.
type SemigroupEq[A any] interface {
	Semigroup[A]
	Equal[A]
}

// MonoidEq is a Monoid whose results can be compared.
type MonoidEq[A any] interface {
	Monoid[A]
	Equal[A]
}
