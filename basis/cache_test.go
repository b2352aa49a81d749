package basis_test

import (
	"bytes"
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/spinsym/basis"
	"github.com/katalvlaran/spinsym/status"
)

func TestCache_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ring10.cache")
	src := mustBuilt(t, 10, 5, ringGroup(t, 10, 3))
	require.NoError(t, src.SaveCache(path))

	dst, err := basis.New(10, 5, ringGroup(t, 10, 3))
	require.NoError(t, err)
	require.NoError(t, dst.LoadCache(path))
	assert.True(t, dst.IsBuilt())
	assert.Equal(t, uint64States(t, src), uint64States(t, dst))
	wantNorms, _ := src.Norms()
	gotNorms, _ := dst.Norms()
	assert.Equal(t, wantNorms, gotNorms)

	states, err := dst.States()
	require.NoError(t, err)
	for i, s := range states {
		idx, err := dst.Index(s)
		require.NoError(t, err)
		assert.Equal(t, uint64(i), idx)
	}
}

func TestCache_Wide(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wide.cache")
	src := mustBuilt(t, 66, 2, nil)
	require.NoError(t, src.SaveCache(path))

	dst, err := basis.New(66, 2, nil)
	require.NoError(t, err)
	require.NoError(t, dst.LoadCache(path))
	a, _ := src.States()
	b, _ := dst.States()
	assert.Equal(t, a, b)
}

func TestCache_Mismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ring.cache")
	require.NoError(t, mustBuilt(t, 8, 4, ringGroup(t, 8, 0)).SaveCache(path))

	for name, newBasis := range map[string]func() (*basis.SpinBasis, error){
		"sector":   func() (*basis.SpinBasis, error) { return basis.New(8, 4, ringGroup(t, 8, 1)) },
		"weight":   func() (*basis.SpinBasis, error) { return basis.New(8, 3, ringGroup(t, 8, 0)) },
		"spins":    func() (*basis.SpinBasis, error) { return basis.New(9, 4, ringGroup(t, 9, 0)) },
		"symmetry": func() (*basis.SpinBasis, error) { return basis.New(8, 4, nil) },
	} {
		b, err := newBasis()
		require.NoError(t, err, name)
		err = b.LoadCache(path)
		assert.ErrorIs(t, err, status.ErrCacheMismatch, name)
		assert.False(t, b.IsBuilt(), name)
	}
}

func TestCache_Corrupt(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ring.cache")
	require.NoError(t, mustBuilt(t, 8, 4, ringGroup(t, 8, 0)).SaveCache(path))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	truncated := filepath.Join(dir, "truncated.cache")
	require.NoError(t, os.WriteFile(truncated, raw[:len(raw)-8], 0o600))
	garbage := filepath.Join(dir, "garbage.cache")
	require.NoError(t, os.WriteFile(garbage, []byte("definitely not a cache"), 0o600))
	header := filepath.Join(dir, "header.cache")
	require.NoError(t, os.WriteFile(header, raw[:20], 0o600))

	for _, p := range []string{truncated, garbage, header} {
		b, err := basis.New(8, 4, ringGroup(t, 8, 0))
		require.NoError(t, err)
		assert.ErrorIs(t, b.LoadCache(p), status.ErrInternal, p)
	}
}

func TestCache_CountBeyondBody(t *testing.T) {
	dir := t.TempDir()

	// A well-formed header for C(40,20) > 1e11 states followed by nothing.
	wide, err := basis.New(40, 20, nil)
	require.NoError(t, err)
	var hdr bytes.Buffer
	require.NoError(t, basis.ExportedWriteHeader(wide, &hdr, 100_000_000_000))
	headerOnly := filepath.Join(dir, "header-only.cache")
	require.NoError(t, os.WriteFile(headerOnly, hdr.Bytes(), 0o600))
	assert.ErrorIs(t, wide.LoadCache(headerOnly), status.ErrInternal)
	assert.False(t, wide.IsBuilt())

	// A real cache whose Count field (bytes 24..32) claims every candidate.
	path := filepath.Join(dir, "ring.cache")
	require.NoError(t, mustBuilt(t, 8, 4, ringGroup(t, 8, 0)).SaveCache(path))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	binary.LittleEndian.PutUint64(raw[24:32], 70)
	inflated := filepath.Join(dir, "inflated.cache")
	require.NoError(t, os.WriteFile(inflated, raw, 0o600))
	b, err := basis.New(8, 4, ringGroup(t, 8, 0))
	require.NoError(t, err)
	assert.ErrorIs(t, b.LoadCache(inflated), status.ErrInternal)
	assert.False(t, b.IsBuilt())
}

func TestCache_MissingFile(t *testing.T) {
	b, err := basis.New(4, -1, nil)
	require.NoError(t, err)
	err = b.LoadCache(filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCache_LoadReplacesBuiltTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.cache")
	src := mustBuilt(t, 6, -1, ringGroup(t, 6, 0))
	require.NoError(t, src.SaveCache(path))
	require.NoError(t, src.Close())

	require.NoError(t, src.LoadCache(path))
	require.NoError(t, src.Build(context.Background()))
	n, err := src.NumberStates()
	require.NoError(t, err)
	assert.Equal(t, uint64(14), n)
}
