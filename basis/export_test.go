package basis

import (
	"encoding/binary"
	"io"
)

// White-box bridge for basis_test.
var (
	ExportedBinomial       = binomial
	ExportedUnrank         = unrank
	ExportedNextCandidate  = nextCandidate
	ExportedCandidateCount = candidateCount
)

// ExportedWriteHeader writes the cache header b would produce for count
// states, with no body.
func ExportedWriteHeader(b *SpinBasis, w io.Writer, count uint64) error {
	return binary.Write(w, binary.LittleEndian, b.header(int(count)))
}
