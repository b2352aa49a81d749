package basis

import "github.com/katalvlaran/spinsym/bits"

// maxPrefixBits bounds the bucket table to 2^16+1 offsets.
const maxPrefixBits = 16

// prefixIndex maps the top k spins of a configuration to the range of table
// entries sharing them. offsets[p] is the first entry whose prefix is ≥ p.
type prefixIndex struct {
	numberSpins int
	k           int
	offsets     []int
}

func newPrefixIndex(numberSpins int, t *bits.Table) *prefixIndex {
	k := min(numberSpins, maxPrefixBits)
	offsets := make([]int, (1<<k)+1)
	for i := 0; i < t.Len(); i++ {
		offsets[t.At(i).Top(numberSpins, k)+1]++
	}
	for p := 1; p < len(offsets); p++ {
		offsets[p] += offsets[p-1]
	}

	return &prefixIndex{numberSpins: numberSpins, k: k, offsets: offsets}
}

func (ix *prefixIndex) find(t *bits.Table, x bits.Bits) (int, bool) {
	p := x.Top(ix.numberSpins, ix.k)

	return t.Search(ix.offsets[p], ix.offsets[p+1], x)
}
