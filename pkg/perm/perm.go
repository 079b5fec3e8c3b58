// Package perm enumerates every ordering of n items, lazily and in
// lexicographic order starting from the identity.
package perm

import (
	"iter"

	"golang.org/x/exp/constraints"
)

// Count returns n!, the number of orderings of n items. Count(0) == 1.
func Count[N constraints.Integer](n N) N {
	var res N = 1
	for i := N(2); i <= n; i++ {
		res *= i
	}
	return res
}

// identity returns [0, 1, ..., n-1].
func identity(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}

// next advances order to its lexicographic successor in place. It returns
// false, leaving order untouched, when order is already the last one.
func next(order []int) bool {
	i := len(order) - 2
	for i >= 0 && order[i] >= order[i+1] {
		i--
	}
	if i < 0 {
		return false
	}

	j := len(order) - 1
	for order[j] <= order[i] {
		j--
	}
	order[i], order[j] = order[j], order[i]

	for l, r := i+1, len(order)-1; l < r; l, r = l+1, r-1 {
		order[l], order[r] = order[r], order[l]
	}
	return true
}

// All yields (index, order) for every ordering of n items. The yielded
// slice is reused between iterations; clone it to keep it. Each call to
// All starts over from the identity.
func All(n int) iter.Seq2[int, []int] {
	return func(yield func(int, []int) bool) {
		order := identity(n)
		for i := 0; ; i++ {
			if !yield(i, order) {
				return
			}
			if !next(order) {
				return
			}
		}
	}
}

// Nth returns the k-th ordering (0-based) in the sequence produced by All,
// or nil when k is out of range.
func Nth(n, k int) []int {
	if k < 0 || k >= Count(n) {
		return nil
	}

	pool := identity(n)
	order := make([]int, 0, n)
	for i := n; i > 0; i-- {
		f := Count(i - 1)
		idx := k / f
		k %= f
		order = append(order, pool[idx])
		pool = append(pool[:idx], pool[idx+1:]...)
	}
	return order
}

// Apply returns items rearranged by order.
func Apply[T any](items []T, order []int) []T {
	res := make([]T, len(order))
	for i, idx := range order {
		res[i] = items[idx]
	}
	return res
}
