package bits_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/spinsym/bits"
)

// TestMask_Widths checks partial and full word masks.
func TestMask_Widths(t *testing.T) {
	assert.Equal(t, bits.FromUint64(0xF), bits.Mask(4))
	assert.Equal(t, bits.FromUint64(^uint64(0)), bits.Mask(64))
	m := bits.Mask(70)
	assert.Equal(t, ^uint64(0), m[0])
	assert.Equal(t, uint64(0x3F), m[1])
	assert.Equal(t, 70, m.OnesCount())
	assert.Equal(t, bits.MaxSpins, bits.Mask(bits.MaxSpins).OnesCount())
}

// TestCompare_MostSignificantWordFirst checks multi-word ordering.
func TestCompare_MostSignificantWordFirst(t *testing.T) {
	small := bits.FromWords(^uint64(0), 0)
	big := bits.FromWords(0, 1)
	assert.True(t, small.Less(big))
	assert.Equal(t, 1, big.Compare(small))
	assert.Equal(t, 0, big.Compare(big))
}

// TestBitWith_RoundTrip sets and reads spins across word boundaries.
func TestBitWith_RoundTrip(t *testing.T) {
	var b bits.Bits
	for _, i := range []int{0, 63, 64, 200, 511} {
		b = b.With(i, 1)
		assert.Equal(t, uint64(1), b.Bit(i))
	}
	assert.Equal(t, 5, b.OnesCount())
	b = b.With(64, 0)
	assert.Equal(t, uint64(0), b.Bit(64))
	assert.Equal(t, 4, b.OnesCount())
}

// TestGatherScatter uses the first site as the least significant local bit.
func TestGatherScatter(t *testing.T) {
	x := bits.FromUint64(0b1010)
	sites := []int{1, 2}
	assert.Equal(t, 0b01, x.Gather(sites))
	y := x.Scatter(sites, 0b10)
	assert.Equal(t, uint64(0b1100), y.Uint64())
	assert.Equal(t, x, x.Scatter(sites, x.Gather(sites)))
}

// TestTop reads the most significant spins.
func TestTop(t *testing.T) {
	x := bits.FromUint64(0b1101_0000)
	assert.Equal(t, uint64(0b1101), x.Top(8, 4))
	assert.Equal(t, uint64(0), x.Top(8, 0))
	wide := bits.FromWords(0, 1<<5) // spin 69 of a 70-spin configuration
	assert.Equal(t, uint64(1), wide.Top(70, 1))
}

// TestString renders without leading zero words.
func TestString(t *testing.T) {
	assert.Equal(t, "0x5", bits.FromUint64(5).String())
	assert.Equal(t, "0x1_0000000000000002", bits.FromWords(2, 1).String())
}

// TestTable_PackAndSearch checks packing width and binary search.
func TestTable_PackAndSearch(t *testing.T) {
	tab := bits.NewTable(10, 4)
	require.Equal(t, 1, tab.WordsPerEntry())
	for _, v := range []uint64{1, 3, 5, 7} {
		tab.Append(bits.FromUint64(v))
	}
	require.Equal(t, 4, tab.Len())
	require.True(t, tab.IsStrictlyAscending())

	i, ok := tab.Search(0, tab.Len(), bits.FromUint64(5))
	assert.True(t, ok)
	assert.Equal(t, 2, i)
	_, ok = tab.Search(0, tab.Len(), bits.FromUint64(4))
	assert.False(t, ok)
	_, ok = tab.Search(0, tab.Len(), bits.FromUint64(8))
	assert.False(t, ok)

	clone := tab.Clone()
	clone.Append(bits.FromUint64(2))
	assert.False(t, clone.IsStrictlyAscending())
	assert.Equal(t, 4, tab.Len())
}

// TestTable_Wide keeps two words per entry for 100 spins.
func TestTable_Wide(t *testing.T) {
	tab := bits.NewTable(100, 0)
	require.Equal(t, 2, tab.WordsPerEntry())
	a := bits.FromWords(7, 0)
	b := bits.FromWords(0, 1)
	tab.Append(a)
	tab.Append(b)
	assert.Equal(t, b, tab.At(1))
	i, ok := tab.Search(0, 2, b)
	assert.True(t, ok)
	assert.Equal(t, 1, i)

	raw, err := bits.TableFromWords(2, tab.Raw())
	require.NoError(t, err)
	assert.Equal(t, a, raw.At(0))
	_, err = bits.TableFromWords(2, []uint64{1, 2, 3})
	assert.Error(t, err)
}

// TestPermute_Rotation moves spin i+1 into position i.
func TestPermute_Rotation(t *testing.T) {
	perm := []int{1, 2, 3, 0}
	x := bits.FromUint64(0b0001)
	assert.Equal(t, uint64(0b1000), x.Permute(perm).Uint64())
	assert.Equal(t, uint64(0b0011), bits.FromUint64(0b0110).Permute(perm).Uint64())

	wide := make([]int, 100)
	for i := range wide {
		wide[i] = (i + 1) % 100
	}
	y := bits.FromWords(0, 1) // spin 64
	assert.Equal(t, uint64(1), y.Permute(wide).Bit(63))
}
