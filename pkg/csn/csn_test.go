package csn

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a    CSN
		b    CSN
		want int
	}{
		{name: "lower", a: 1, b: 2, want: Lower},
		{name: "greater", a: 5, b: 2, want: Greater},
		{name: "equal", a: 3, b: 3, want: Equal},
		{name: "absent below initial", a: Absent, b: Initial, want: Lower},
		{name: "initial below first operation", a: Initial, b: 1, want: Lower},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Compare(tc.a, tc.b))
		})
	}
}

func TestMax(t *testing.T) {
	require.Equal(t, CSN(4), Max(4, Absent))
	require.Equal(t, CSN(4), Max(Absent, 4))
	require.Equal(t, Absent, Max(Absent, Absent))
	require.True(t, CSN(1).After(Initial))
	require.True(t, Absent.Before(Initial))
	require.True(t, Absent.IsAbsent())
	require.False(t, Initial.IsAbsent())
	require.Equal(t, "absent", Absent.String())
	require.Equal(t, "7", CSN(7).String())
}

func TestClock(t *testing.T) {
	c := NewClock()
	require.Equal(t, CSN(1), c.Next())
	require.Equal(t, CSN(2), c.Next())
}

func TestClock_Concurrent(t *testing.T) {
	c := NewClock()
	var wg sync.WaitGroup
	seen := make([]CSN, 100)

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			seen[i] = c.Next()
		}(i)
	}
	wg.Wait()

	unique := make(map[CSN]struct{}, len(seen))
	for _, s := range seen {
		unique[s] = struct{}{}
	}
	require.Len(t, unique, 100)
	require.Equal(t, CSN(101), c.Next())
}
