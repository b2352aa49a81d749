// SPDX-License-Identifier: MIT

package bits

import (
	"fmt"
)

// Table is a packed, append-only sequence of configurations that all use the
// same number of words. Entry i occupies data[i*words : (i+1)*words].
type Table struct {
	words int
	data  []uint64
}

// NewTable returns an empty table sized for numberSpins-spin configurations
// with room for capacity entries.
func NewTable(numberSpins, capacity int) *Table {
	w := Words(numberSpins)
	if w < 1 {
		w = 1
	}

	return &Table{words: w, data: make([]uint64, 0, capacity*w)}
}

// TableFromWords wraps a raw word slice (as produced by Table.Raw). The slice
// length must be a multiple of words.
func TableFromWords(words int, data []uint64) (*Table, error) {
	if words < 1 || words > MaxWords {
		return nil, fmt.Errorf("bits: TableFromWords: bad word count %d", words)
	}
	if len(data)%words != 0 {
		return nil, fmt.Errorf("bits: TableFromWords: %d words is not a multiple of %d", len(data), words)
	}

	return &Table{words: words, data: data}, nil
}

// WordsPerEntry returns the packing width.
func (t *Table) WordsPerEntry() int { return t.words }

// Len returns the number of entries.
func (t *Table) Len() int { return len(t.data) / t.words }

// At returns entry i. Panics when i is out of range, like slice indexing.
func (t *Table) At(i int) Bits {
	var b Bits
	copy(b[:t.words], t.data[i*t.words:(i+1)*t.words])

	return b
}

// Append adds b. Words of b beyond the packing width are dropped.
func (t *Table) Append(b Bits) {
	t.data = append(t.data, b[:t.words]...)
}

// AppendTable appends all entries of o, which must share the packing width.
func (t *Table) AppendTable(o *Table) {
	t.data = append(t.data, o.data...)
}

// compareAt compares entry i with b over the packed words only.
func (t *Table) compareAt(i int, b Bits) int {
	base := i * t.words
	for w := t.words - 1; w >= 0; w-- {
		x := t.data[base+w]
		switch {
		case x < b[w]:
			return -1
		case x > b[w]:
			return 1
		}
	}

	return 0
}

// Search binary-searches b within entries [lo, hi) of an ascending table.
// It returns the position and whether the entry equals b.
func (t *Table) Search(lo, hi int, b Bits) (int, bool) {
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if t.compareAt(mid, b) < 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < t.Len() && t.compareAt(lo, b) == 0 {
		return lo, true
	}

	return lo, false
}

// IsStrictlyAscending reports whether every entry is greater than the
// previous one.
func (t *Table) IsStrictlyAscending() bool {
	for i := 1; i < t.Len(); i++ {
		if t.compareAt(i, t.At(i-1)) <= 0 {
			return false
		}
	}

	return true
}

// Raw exposes the packed words. Callers must not modify the slice.
func (t *Table) Raw() []uint64 { return t.data }

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	cp := make([]uint64, len(t.data))
	copy(cp, t.data)

	return &Table{words: t.words, data: cp}
}
