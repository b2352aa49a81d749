package symmetry_test

import (
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/spinsym/bits"
	"github.com/katalvlaran/spinsym/status"
	"github.com/katalvlaran/spinsym/symmetry"
)

// translation returns the shift-by-one permutation of an n-site ring.
func translation(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = (i + 1) % n
	}

	return p
}

// reflection returns i → n-1-i.
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

// TestNew_InvalidArguments covers malformed permutations and sectors.
func TestNew_InvalidArguments(t *testing.T) {
	cases := map[string]struct {
		perm   []int
		sector int
		flip   bool
	}{
		"empty":          {nil, 0, false},
		"out of range":   {[]int{0, 2}, 0, false},
		"negative":       {[]int{-1, 0}, 0, false},
		"repeated":       {[]int{1, 1, 0}, 0, false},
		"sector too big": {translation(4), 4, false},
		"sector < 0":     {translation(4), -1, false},
		"flip sector":    {identity(3), 2, true},
	}
	for name, tc := range cases {
		_, err := symmetry.New(tc.perm, tc.sector, tc.flip)
		assert.ErrorIs(t, err, status.ErrInvalidArgument, name)
	}
}

// TestNew_Periodicity checks orders with and without spin flip.
func TestNew_Periodicity(t *testing.T) {
	cases := []struct {
		name string
		perm []int
		flip bool
		want int
	}{
		{"identity", identity(4), false, 1},
		{"flip only", identity(4), true, 2},
		{"translation", translation(4), false, 4},
		{"translation+flip", translation(4), true, 4},
		{"reflection", reflection(4), false, 2},
		{"3-cycle+flip", translation(3), true, 6},
		{"mixed cycles", []int{1, 0, 3, 4, 2}, false, 6},
	}
	for _, tc := range cases {
		s, err := symmetry.New(tc.perm, 0, tc.flip)
		require.NoError(t, err, tc.name)
		assert.Equal(t, tc.want, s.Periodicity(), tc.name)
	}
}

// TestSymmetry_ApplyPeriodicityTimes returns every configuration unchanged.
func TestSymmetry_ApplyPeriodicityTimes(t *testing.T) {
	for _, flip := range []bool{false, true} {
		s, err := symmetry.New([]int{1, 2, 0, 4, 3}, 0, flip)
		require.NoError(t, err)
		for v := uint64(0); v < 1<<5; v++ {
			x := bits.FromUint64(v)
			y := x
			for k := 0; k < s.Periodicity(); k++ {
				y = s.Apply(y)
			}
			assert.Equal(t, x, y, "config %05b flip=%v", v, flip)
		}
	}
}

// TestSymmetry_Getters checks derived scalar properties.
func TestSymmetry_Getters(t *testing.T) {
	s, err := symmetry.New(translation(4), 1, false)
	require.NoError(t, err)
	assert.Equal(t, 4, s.NumberSpins())
	assert.Equal(t, 1, s.Sector())
	assert.False(t, s.Flip())
	assert.InDelta(t, 0.25, s.Phase(), 1e-15)
	assert.Equal(t, complex128(1i), s.Eigenvalue())

	s3, err := symmetry.New(translation(3), 1, false)
	require.NoError(t, err)
	assert.InDelta(t, 0, cmplx.Abs(s3.Eigenvalue()-cmplx.Rect(1, 2*3.141592653589793/3)), 1e-12)

	perm := s.Permutation()
	perm[0] = 99
	assert.Equal(t, translation(4), s.Permutation(), "Permutation must return a copy")
}
