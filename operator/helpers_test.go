package operator_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/spinsym/basis"
	"github.com/katalvlaran/spinsym/operator"
	"github.com/katalvlaran/spinsym/symmetry"
)

// heisenberg is σ·σ on two spins (site 0 = low bit).
var heisenberg = [4][4]complex128{
	{1, 0, 0, 0},
	{0, -1, 2, 0},
	{0, 2, -1, 0},
	{0, 0, 0, 1},
}

func ringBonds(n int) [][2]int {
	out := make([][2]int, n)
	for i := range out {
		out[i] = [2]int{i, (i + 1) % n}
	}

	return out
}

func translation(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = (i + 1) % n
	}

	return p
}

func reflection(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = n - 1 - i
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

type gen struct {
	perm   []int
	sector int
	flip   bool
}

func mustGroup(t testing.TB, gens ...gen) *symmetry.Group {
	t.Helper()
	ss := make([]*symmetry.Symmetry, len(gens))
	for i, g := range gens {
		s, err := symmetry.New(g.perm, g.sector, g.flip)
		require.NoError(t, err)
		ss[i] = s
	}
	g, err := symmetry.NewGroup(ss)
	require.NoError(t, err)

	return g
}

func mustBasis(t testing.TB, n, hw int, g *symmetry.Group) *basis.SpinBasis {
	t.Helper()
	b, err := basis.New(n, hw, g)
	require.NoError(t, err)
	require.NoError(t, b.Build(context.Background()))

	return b
}

func heisenbergRing(t testing.TB, b *basis.SpinBasis, opts ...operator.Option) *operator.Operator {
	t.Helper()
	it, err := operator.NewInteraction2(heisenberg, ringBonds(b.NumberSpins()))
	require.NoError(t, err)
	op, err := operator.New(b, []*operator.Interaction{it}, opts...)
	require.NoError(t, err)

	return op
}

func numberStates(t testing.TB, b *basis.SpinBasis) int {
	t.Helper()
	n, err := b.NumberStates()
	require.NoError(t, err)

	return int(n)
}

func randomBlock(rng *rand.Rand, rows, cols int) *operator.Block[complex128] {
	x := operator.NewBlock[complex128](rows, cols)
	for i := range x.Data {
		x.Data[i] = complex(rng.Float64()-0.5, rng.Float64()-0.5)
	}

	return x
}

// denseOf materializes the operator by applying it to unit vectors.
func denseOf(t testing.TB, op *operator.Operator, dim int) *operator.Block[complex128] {
	t.Helper()
	eye := operator.NewBlock[complex128](dim, dim)
	for i := 0; i < dim; i++ {
		eye.Set(i, i, 1)
	}
	out := operator.NewBlock[complex128](dim, dim)
	require.NoError(t, operator.Apply(context.Background(), op, eye, out))

	return out
}
