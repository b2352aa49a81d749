package basis_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/spinsym/basis"
	"github.com/katalvlaran/spinsym/symmetry"
)

// translation returns the cyclic shift i → i+1 (mod n).
func translation(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = (i + 1) % n
	}

	return p
}

func identity(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}

	return p
}

// ringGroup is the translation group of an n-site ring in momentum sector k.
func ringGroup(t testing.TB, n, k int) *symmetry.Group {
	t.Helper()
	s, err := symmetry.New(translation(n), k, false)
	require.NoError(t, err)
	g, err := symmetry.NewGroup([]*symmetry.Symmetry{s})
	require.NoError(t, err)

	return g
}

func mustBuilt(t testing.TB, n, hw int, g *symmetry.Group, opts ...basis.Option) *basis.SpinBasis {
	t.Helper()
	b, err := basis.New(n, hw, g, opts...)
	require.NoError(t, err)
	require.NoError(t, b.Build(context.Background()))

	return b
}

func uint64States(t testing.TB, b *basis.SpinBasis) []uint64 {
	t.Helper()
	s, err := b.StatesUint64()
	require.NoError(t, err)

	return s
}
