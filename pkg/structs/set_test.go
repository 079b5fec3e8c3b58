package structs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSet(t *testing.T) {
	s := NewSet("info", "debug")
	require.True(t, s.Contains("info"))
	require.False(t, s.Contains("trace"))
	require.Len(t, s, 2)

	s.Add("trace")
	s.Add("trace")
	require.Len(t, s, 3)
	require.Equal(t, []string{"debug", "info", "trace"}, Sorted(s))
}

func TestSet_Empty(t *testing.T) {
	s := NewSet[int]()
	require.Empty(t, s)
	require.Empty(t, Sorted(s))
}
