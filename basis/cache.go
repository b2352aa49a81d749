// SPDX-License-Identifier: MIT

package basis

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/katalvlaran/spinsym/bits"
	"github.com/katalvlaran/spinsym/status"
)

// cacheVersion is bumped whenever the on-disk layout changes.
const cacheVersion uint32 = 1

// cacheReadChunk bounds how many values LoadCache decodes per read, so a
// header claiming more states than the body holds fails on EOF long before
// the full claimed size is allocated.
const cacheReadChunk = 1 << 16

// cacheMaxWindow caps the zstd window a cache body may request.
const cacheMaxWindow = 1 << 25

var cacheMagic = [8]byte{'S', 'P', 'I', 'N', 'S', 'Y', 'M', 0}

// cacheHeader is written uncompressed in little-endian order. The body that
// follows is a zstd stream of Count·Words uint64 words then Count float64 norms.
type cacheHeader struct {
	Magic         [8]byte
	Version       uint32
	NumberSpins   uint32
	HammingWeight int32
	Words         uint32
	Count         uint64
	GroupDigest   [32]byte
}

func (b *SpinBasis) header(count int) cacheHeader {
	return cacheHeader{
		Magic:         cacheMagic,
		Version:       cacheVersion,
		NumberSpins:   uint32(b.numberSpins),
		HammingWeight: int32(b.hammingWeight),
		Words:         uint32(bits.Words(b.numberSpins)),
		Count:         uint64(count),
		GroupDigest:   b.group.Digest(),
	}
}

// SaveCache writes the built basis to path. The file is written to a
// temporary sibling and renamed into place.
//
// Errors: status.ErrBasisNotBuilt, or the underlying I/O error.
func (b *SpinBasis) SaveCache(path string) (err error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.built {
		return fmt.Errorf("basis.SaveCache: %w", status.ErrBasisNotBuilt)
	}

	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("basis.SaveCache: %w", err)
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	w := bufio.NewWriter(f)
	if err = binary.Write(w, binary.LittleEndian, b.header(b.table.Len())); err != nil {
		return fmt.Errorf("basis.SaveCache: header: %w", err)
	}
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("basis.SaveCache: %w", err)
	}
	if err = binary.Write(enc, binary.LittleEndian, b.table.Raw()); err != nil {
		_ = enc.Close()
		return fmt.Errorf("basis.SaveCache: states: %w", err)
	}
	if err = binary.Write(enc, binary.LittleEndian, b.norms); err != nil {
		_ = enc.Close()
		return fmt.Errorf("basis.SaveCache: norms: %w", err)
	}
	if err = enc.Close(); err != nil {
		return fmt.Errorf("basis.SaveCache: %w", err)
	}
	if err = w.Flush(); err != nil {
		return fmt.Errorf("basis.SaveCache: %w", err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("basis.SaveCache: %w", err)
	}
	if err = os.Rename(f.Name(), path); err != nil {
		return fmt.Errorf("basis.SaveCache: %w", err)
	}
	b.opts.logger.Debug("basis cache saved", "path", path, "states", b.table.Len())

	return nil
}

// LoadCache replaces the basis tables with those stored at path.
//
// Errors:
//   - status.ErrCacheMismatch when the file was written for another number of
//     spins, Hamming weight or group;
//   - status.ErrInternal when the file is truncated or corrupt;
//   - the underlying error when the file cannot be opened.
func (b *SpinBasis) LoadCache(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("basis.LoadCache: %w", err)
	}
	defer f.Close()

	var h cacheHeader
	if err := binary.Read(f, binary.LittleEndian, &h); err != nil {
		return fmt.Errorf("basis.LoadCache: header: %v: %w", err, status.ErrInternal)
	}
	if h.Magic != cacheMagic || h.Version != cacheVersion {
		return fmt.Errorf("basis.LoadCache: %s is not a version %d cache: %w", path, cacheVersion, status.ErrInternal)
	}
	want := b.header(int(h.Count))
	if h.NumberSpins != want.NumberSpins || h.HammingWeight != want.HammingWeight ||
		h.Words != want.Words || h.GroupDigest != want.GroupDigest {
		return fmt.Errorf("basis.LoadCache: %s: spins=%d weight=%d, want spins=%d weight=%d (or group differs): %w",
			path, h.NumberSpins, h.HammingWeight, want.NumberSpins, want.HammingWeight, status.ErrCacheMismatch)
	}
	if total, ok := candidateCount(b.numberSpins, b.hammingWeight); h.Count == 0 || h.Count > b.opts.maxCandidates || (ok && h.Count > total) {
		return fmt.Errorf("basis.LoadCache: %d states is impossible here: %w", h.Count, status.ErrInternal)
	}

	if h.Count > math.MaxUint64/uint64(h.Words) {
		return fmt.Errorf("basis.LoadCache: %d states overflow: %w", h.Count, status.ErrInternal)
	}

	dec, err := zstd.NewReader(f, zstd.WithDecoderMaxWindow(cacheMaxWindow))
	if err != nil {
		return fmt.Errorf("basis.LoadCache: %v: %w", err, status.ErrInternal)
	}
	defer dec.Close()

	words, err := readChunked[uint64](dec, h.Count*uint64(h.Words))
	if err != nil {
		return fmt.Errorf("basis.LoadCache: states: %w", err)
	}
	norms, err := readChunked[float64](dec, h.Count)
	if err != nil {
		return fmt.Errorf("basis.LoadCache: norms: %w", err)
	}
	if _, err := dec.Read(make([]byte, 1)); !errors.Is(err, io.EOF) {
		return fmt.Errorf("basis.LoadCache: trailing data: %w", status.ErrInternal)
	}

	table, err := bits.TableFromWords(int(h.Words), words)
	if err != nil || !table.IsStrictlyAscending() {
		return fmt.Errorf("basis.LoadCache: states not ascending: %w", status.ErrInternal)
	}
	for i, n := range norms {
		if !(n > 0) {
			return fmt.Errorf("basis.LoadCache: norm[%d]=%g: %w", i, n, status.ErrInternal)
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.publish(table, norms)
	b.opts.logger.Debug("basis cache loaded", "path", path, "states", len(norms))

	return nil
}

// readChunked decodes n little-endian values from r, growing the result only
// as data arrives.
func readChunked[T uint64 | float64](r io.Reader, n uint64) ([]T, error) {
	buf := make([]T, min(n, cacheReadChunk))
	var out []T
	for remaining := n; remaining > 0; {
		chunk := buf[:min(remaining, uint64(len(buf)))]
		if err := binary.Read(r, binary.LittleEndian, chunk); err != nil {
			return nil, fmt.Errorf("%d of %d values: %v: %w", n-remaining, n, err, status.ErrInternal)
		}
		out = append(out, chunk...)
		remaining -= uint64(len(chunk))
	}

	return out, nil
}
