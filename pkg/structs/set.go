package structs

import (
	"slices"

	"golang.org/x/exp/constraints"
)

type empty = struct{}

// Set is a plain membership set over comparable values.
type Set[T comparable] map[T]empty

func NewSet[T comparable](values ...T) Set[T] {
	res := make(Set[T], len(values))
	for _, v := range values {
		res[v] = empty{}
	}
	return res
}

func (s Set[T]) Add(value T) {
	s[value] = empty{}
}

func (s Set[T]) Contains(value T) bool {
	_, exists := s[value]
	return exists
}

// Sorted returns the members in ascending order, for stable messages.
func Sorted[T constraints.Ordered](s Set[T]) []T {
	values := make([]T, 0, len(s))
	for v := range s {
		values = append(values, v)
	}
	slices.Sort(values)
	return values
}
