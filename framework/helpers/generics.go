package helpers

import "golang.org/x/exp/slices"

// IfElse returns valueIfTrue or valueIfFalse depending on isTrue.
func IfElse[V any](isTrue bool, valueIfTrue, valueIfFalse V) V {
	if isTrue {
		return valueIfTrue
	}
	return valueIfFalse
}

// SliceContains returns true if and only if the slice has an element that equals the value.
func SliceContains[V comparable](value V, slice []V) bool {
	return slices.Contains(slice, value)
}

// CopyOf returns a shallow copy of a slice. A nil slice stays nil.
func CopyOf[V any](slice []V) []V {
	if slice == nil {
		return nil
	}
	return append(make([]V, 0, len(slice)), slice...)
}

// Sorted returns a sorted copy of a slice of strings without modifying the original.
func Sorted(slice []string) []string {
	ret := CopyOf(slice)
	slices.Sort(ret)
	return ret
}
