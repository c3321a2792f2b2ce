package stdlaws

import (
	"math"
	"strings"
)

// Sum is the monoid of integers under addition.
type Sum int

func (s Sum) Combine(other Sum) Sum { return s + other }
func (s Sum) Empty() Sum            { return 0 }
func (s Sum) Equal(other Sum) bool  { return s == other }
func (s Sum) Compare(other Sum) int { return compareInts(int(s), int(other)) }

// Product is the monoid of integers under multiplication.
type Product int

func (p Product) Combine(other Product) Product { return p * other }
func (p Product) Empty() Product                { return 1 }
func (p Product) Equal(other Product) bool      { return p == other }

// Max is the monoid of integers under max, with math.MinInt as the identity.
type Max int

func (m Max) Combine(other Max) Max {
	if other > m {
		return other
	}
	return m
}
func (m Max) Empty() Max            { return Max(math.MinInt) }
func (m Max) Equal(other Max) bool  { return m == other }
func (m Max) Compare(other Max) int { return compareInts(int(m), int(other)) }

// Concat is the monoid of strings under concatenation.
type Concat string

func (c Concat) Combine(other Concat) Concat { return c + other }
func (c Concat) Empty() Concat               { return "" }
func (c Concat) Equal(other Concat) bool     { return c == other }
func (c Concat) Compare(other Concat) int    { return strings.Compare(string(c), string(other)) }

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
