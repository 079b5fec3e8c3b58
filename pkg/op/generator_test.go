package op

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerator_WellFormed(t *testing.T) {
	cat := DefaultCatalog()
	gen := NewGenerator(1, cat, 9)

	kinds := make(map[Kind]int)
	for range 500 {
		ops := gen.Generate()
		require.NotEmpty(t, ops)
		require.LessOrEqual(t, len(ops), 9)
		require.NoError(t, Validate(ops, cat))

		for i, o := range ops {
			require.EqualValues(t, i+1, o.CSN)
			kinds[o.Kind]++
		}
	}

	for k := range kindCount {
		require.Positive(t, kinds[k], "kind %s never generated", k)
	}
}

func TestGenerator_Deterministic(t *testing.T) {
	cat := DefaultCatalog()
	a := NewGenerator(42, cat, 6)
	b := NewGenerator(42, cat, 6)
	c := NewGenerator(43, cat, 6)

	var xs, ys, zs [][]Operation
	for range 20 {
		xs = append(xs, a.Generate())
		ys = append(ys, b.Generate())
		zs = append(zs, c.Generate())
	}
	require.Equal(t, xs, ys)
	require.NotEqual(t, xs, zs)
}

func TestGenerator_MinimumBound(t *testing.T) {
	gen := NewGenerator(3, DefaultCatalog(), 0)
	for range 10 {
		require.Len(t, gen.Generate(), 1)
	}
}
