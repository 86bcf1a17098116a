// Package ordering provides three-way comparison for persistent structures that
// take part in total orders.
package ordering

import "slices"

// Comparable is implemented by types with a total order. Compare returns a
// negative number when the receiver sorts before other, zero when they are
// equivalent and a positive number otherwise.
type Comparable[T any] interface {
	Compare(other T) int
}

// Compare returns a.Compare(b).
func Compare[T Comparable[T]](a, b T) int {
	return a.Compare(b)
}

// Less reports whether a sorts before b.
func Less[T Comparable[T]](a, b T) bool {
	return a.Compare(b) < 0
}

// Sort sorts xs in place. Equivalent elements keep their relative order.
func Sort[T Comparable[T]](xs []T) {
	slices.SortStableFunc(xs, Compare[T])
}

// Min returns the smallest of its arguments, preferring the earliest on ties.
func Min[T Comparable[T]](first T, rest ...T) T {
	m := first
	for _, x := range rest {
		if x.Compare(m) < 0 {
			m = x
		}
	}
	return m
}

// Max returns the largest of its arguments, preferring the earliest on ties.
func Max[T Comparable[T]](first T, rest ...T) T {
	m := first
	for _, x := range rest {
		if x.Compare(m) > 0 {
			m = x
		}
	}
	return m
}
