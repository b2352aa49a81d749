// SPDX-License-Identifier: MIT

package bits

import (
	"fmt"
	mbits "math/bits"
	"strings"
)

const (
	// WordSize is the number of spins held by one machine word.
	WordSize = 64

	// MaxSpins is the widest configuration supported.
	MaxSpins = 512

	// MaxWords is the number of words in a Bits value.
	MaxWords = MaxSpins / WordSize
)

// Bits is a configuration of up to MaxSpins spins. Word 0 holds spins 0..63.
type Bits [MaxWords]uint64

// FromUint64 returns the configuration whose low 64 spins are x.
func FromUint64(x uint64) Bits {
	var b Bits
	b[0] = x

	return b
}

// FromWords builds a configuration from little-endian words.
// Panics if more than MaxWords words are given (programmer error).
func FromWords(ws ...uint64) Bits {
	if len(ws) > MaxWords {
		panic("bits: FromWords: too many words")
	}
	var b Bits
	copy(b[:], ws)

	return b
}

// Words returns the number of machine words needed for numberSpins spins.
func Words(numberSpins int) int {
	return (numberSpins + WordSize - 1) / WordSize
}

// Mask returns the configuration with the low numberSpins bits set.
func Mask(numberSpins int) Bits {
	var m Bits
	i := 0
	for ; numberSpins >= WordSize; i, numberSpins = i+1, numberSpins-WordSize {
		m[i] = ^uint64(0)
	}
	if numberSpins > 0 {
		m[i] = ^uint64(0) >> (WordSize - numberSpins)
	}

	return m
}

// Bit returns the state (0 or 1) of spin i.
func (b Bits) Bit(i int) uint64 {
	return (b[i/WordSize] >> (uint(i) % WordSize)) & 1
}

// With returns a copy of b with spin i set to v (0 or 1).
func (b Bits) With(i int, v uint64) Bits {
	w, s := i/WordSize, uint(i)%WordSize
	b[w] = (b[w] &^ (1 << s)) | ((v & 1) << s)

	return b
}

// Compare returns -1, 0 or +1 comparing b and o as unsigned integers.
func (b Bits) Compare(o Bits) int {
	for i := MaxWords - 1; i >= 0; i-- {
		switch {
		case b[i] < o[i]:
			return -1
		case b[i] > o[i]:
			return 1
		}
	}

	return 0
}

// Less reports b < o.
func (b Bits) Less(o Bits) bool { return b.Compare(o) < 0 }

// Xor returns b ^ o.
func (b Bits) Xor(o Bits) Bits {
	for i := range b {
		b[i] ^= o[i]
	}

	return b
}

// OnesCount returns the Hamming weight.
func (b Bits) OnesCount() int {
	n := 0
	for _, w := range b {
		n += mbits.OnesCount64(w)
	}

	return n
}

// Uint64 returns the low word. Exact only for configurations of ≤ 64 spins.
func (b Bits) Uint64() uint64 { return b[0] }

// IsZero reports whether no spin is up.
func (b Bits) IsZero() bool { return b == Bits{} }

// Top returns the k most significant bits of an n-spin configuration, i.e.
// spins n-k..n-1 read as an integer (spin n-1 is the highest bit).
// Requires 0 ≤ k ≤ min(n, 32).
func (b Bits) Top(numberSpins, k int) uint64 {
	var out uint64
	for i := numberSpins - 1; i >= numberSpins-k; i-- {
		out = out<<1 | b.Bit(i)
	}

	return out
}

// Gather reads the spins at sites into a small integer: sites[0] becomes the
// least significant bit of the result.
func (b Bits) Gather(sites []int) int {
	out := 0
	for m, s := range sites {
		out |= int(b.Bit(s)) << m
	}

	return out
}

// Scatter writes the low len(sites) bits of local back into b at sites, the
// inverse of Gather.
func (b Bits) Scatter(sites []int, local int) Bits {
	for m, s := range sites {
		b = b.With(s, uint64(local>>m)&1)
	}

	return b
}

// String renders the configuration in hexadecimal, most significant word
// first, without leading zero words.
func (b Bits) String() string {
	hi := MaxWords - 1
	for hi > 0 && b[hi] == 0 {
		hi--
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("0x%x", b[hi]))
	for i := hi - 1; i >= 0; i-- {
		sb.WriteString(fmt.Sprintf("_%016x", b[i]))
	}

	return sb.String()
}

// Permute returns the configuration whose spin i is spin perm[i] of b.
// perm must be a permutation of 0..len(perm)-1.
func (b Bits) Permute(perm []int) Bits {
	var out Bits
	for i, p := range perm {
		out[i/WordSize] |= ((b[p/WordSize] >> (uint(p) % WordSize)) & 1) << (uint(i) % WordSize)
	}

	return out
}

// And returns b & o.
func (b Bits) And(o Bits) Bits {
	for i := range b {
		b[i] &= o[i]
	}

	return b
}
