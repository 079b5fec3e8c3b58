package perm

import (
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCount(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{n: 0, want: 1},
		{n: 1, want: 1},
		{n: 2, want: 2},
		{n: 3, want: 6},
		{n: 5, want: 120},
		{n: 9, want: 362880},
	}

	for _, tc := range tests {
		t.Run(fmt.Sprintf("n=%d", tc.n), func(t *testing.T) {
			require.Equal(t, tc.want, Count(tc.n))
			require.Equal(t, uint64(tc.want), Count(uint64(tc.n)))
		})
	}
}

func TestAll_Three(t *testing.T) {
	var got [][]int
	for i, order := range All(3) {
		require.Equal(t, len(got), i)
		got = append(got, slices.Clone(order))
	}

	require.Equal(t, [][]int{
		{0, 1, 2},
		{0, 2, 1},
		{1, 0, 2},
		{1, 2, 0},
		{2, 0, 1},
		{2, 1, 0},
	}, got)
}

func TestAll_CoversEveryOrderingOnce(t *testing.T) {
	for n := 0; n <= 6; n++ {
		seen := make(map[string]struct{})
		count := 0
		for _, order := range All(n) {
			seen[fmt.Sprint(order)] = struct{}{}
			count++
		}
		require.Equal(t, Count(n), count, "n=%d", n)
		require.Len(t, seen, Count(n), "n=%d", n)
	}
}

func TestAll_Restartable(t *testing.T) {
	seq := All(4)

	first := 0
	for i := range seq {
		if i == 5 {
			break
		}
		first++
	}
	require.Equal(t, 5, first)

	total := 0
	for range seq {
		total++
	}
	require.Equal(t, 24, total)
}

func TestNth_MatchesAll(t *testing.T) {
	for i, order := range All(5) {
		require.Equal(t, order, Nth(5, i), "index %d", i)
	}
	require.Nil(t, Nth(5, 120))
	require.Nil(t, Nth(5, -1))
}

func TestNext_Last(t *testing.T) {
	order := []int{2, 1, 0}
	require.False(t, next(order))
	require.Equal(t, []int{2, 1, 0}, order)
}

func TestApply(t *testing.T) {
	require.Equal(t, []string{"c", "a", "b"}, Apply([]string{"a", "b", "c"}, []int{2, 0, 1}))
}
