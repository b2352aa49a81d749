// SPDX-License-Identifier: MIT

package basis

import (
	mbits "math/bits"

	"github.com/katalvlaran/spinsym/bits"
)

// binomial returns C(n, k) and false if it does not fit in a uint64.
// Every intermediate C(n, i+1) = C(n, i)·(n-i)/(i+1) is exact; the product is
// formed in 128 bits.
func binomial(n, k int) (uint64, bool) {
	if k < 0 || k > n {
		return 0, true
	}
	if k > n-k {
		k = n - k
	}
	c := uint64(1)
	for i := 0; i < k; i++ {
		hi, lo := mbits.Mul64(c, uint64(n-i))
		d := uint64(i + 1)
		if hi >= d {
			return 0, false
		}
		c, _ = mbits.Div64(hi, lo, d)
	}

	return c, true
}

// candidateCount returns how many patterns Build must visit; false means the
// count does not fit in a uint64.
func candidateCount(numberSpins, hammingWeight int) (uint64, bool) {
	if hammingWeight < 0 {
		if numberSpins >= bits.WordSize {
			return 0, false
		}

		return uint64(1) << numberSpins, true
	}

	return binomial(numberSpins, hammingWeight)
}

// unrank returns the candidate of the given rank in ascending order.
// With a Hamming weight this is the combinatorial number system: the largest
// c with C(c, m) ≤ rank is the position of the m-th highest set bit.
func unrank(rank uint64, numberSpins, hammingWeight int) bits.Bits {
	if hammingWeight < 0 {
		return bits.FromUint64(rank)
	}
	var x bits.Bits
	upper := numberSpins - 1
	for m := hammingWeight; m >= 1; m-- {
		c := upper
		for ; c >= m; c-- {
			if v, ok := binomial(c, m); ok && v <= rank {
				break
			}
		}
		v, _ := binomial(c, m)
		rank -= v
		x = x.With(c, 1)
		upper = c - 1
	}

	return x
}

// nextCandidate returns the next larger pattern in the enumeration. The caller
// never steps past the last candidate.
func nextCandidate(x bits.Bits, numberSpins, hammingWeight int) bits.Bits {
	if hammingWeight < 0 {
		x[0]++
		return x
	}
	if hammingWeight == 0 {
		return x
	}
	if numberSpins <= bits.WordSize {
		// Gosper's hack.
		v := x[0]
		t := v | (v - 1)
		x[0] = (t + 1) | (((^t & -^t) - 1) >> (mbits.TrailingZeros64(v) + 1))

		return x
	}

	// Lowest run of ones [p, q): set q, clear the run, refill the low bits.
	p := 0
	for x.Bit(p) == 0 {
		p++
	}
	q := p
	for x.Bit(q) == 1 {
		q++
	}
	x = x.With(q, 1)
	for i := p; i < q; i++ {
		x = x.With(i, 0)
	}
	for i := 0; i < q-p-1; i++ {
		x = x.With(i, 1)
	}

	return x
}
