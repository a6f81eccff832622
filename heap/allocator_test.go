// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newAllocator(t *testing.T) *Allocator {
	t.Helper()
	a := New(Config{})
	require.NoError(t, a.Initialize())
	return a
}

// Seed scenario 1: init then small alloc.
func TestSeedInitThenSmallAlloc(t *testing.T) {
	a := newAllocator(t)

	p, err := a.Allocate(1)
	require.NoError(t, err)
	require.NotEqual(t, NoAddress, p)
	require.Equal(t, int64(0), int64(p)%alignment)

	hdr := a.header(p)
	require.Equal(t, int64(minBlock), hdr.size())
	require.True(t, hdr.allocated())

	require.NoError(t, a.Verify(nil))
}

// Seed scenario 2: alloc/free/alloc reuse (LIFO).
func TestSeedAllocFreeAllocReuse(t *testing.T) {
	a := newAllocator(t)

	x, err := a.Allocate(100)
	require.NoError(t, err)

	a.Free(x)

	y, err := a.Allocate(100)
	require.NoError(t, err)
	require.Equal(t, x, y)

	require.NoError(t, a.Verify(nil))
}

// Seed scenario 3: two-alloc coalesce.
func TestSeedTwoAllocCoalesce(t *testing.T) {
	a := newAllocator(t)

	x, err := a.Allocate(40)
	require.NoError(t, err)
	y, err := a.Allocate(40)
	require.NoError(t, err)
	require.Equal(t, a.nextPhysical(x), int64(y))

	a.Free(x)
	a.Free(y)

	var stats AllocStats
	require.NoError(t, a.Verify(&stats))
	require.Equal(t, int64(1), stats.FreeBlocks)
}

// Seed scenario 4: split on placement.
func TestSeedSplitOnPlacement(t *testing.T) {
	a := newAllocator(t)

	x, err := a.Allocate(32)
	require.NoError(t, err)

	hdr := a.header(x)
	require.Equal(t, int64(40), hdr.size())
	require.True(t, hdr.allocated())

	next := a.nextPhysical(x)
	nextHdr := a.header(Pointer(next))
	require.False(t, nextHdr.allocated())

	require.NoError(t, a.Verify(nil))
}

// Seed scenario 5: realloc in-place grow.
func TestSeedReallocInPlaceGrow(t *testing.T) {
	a := newAllocator(t)

	x, err := a.Allocate(40)
	require.NoError(t, err)

	y, err := a.Reallocate(x, 80)
	require.NoError(t, err)
	require.Equal(t, x, y)
	require.GreaterOrEqual(t, a.header(y).size(), int64(88))

	next := a.nextPhysical(y)
	nextHdr := a.header(Pointer(next))
	require.True(t, nextHdr.allocated() || nextHdr.size() == 0)

	require.NoError(t, a.Verify(nil))
}

// Seed scenario 6: realloc move, preserving content.
func TestSeedReallocMove(t *testing.T) {
	a := newAllocator(t)

	x, err := a.Allocate(40)
	require.NoError(t, err)
	copy(a.Bytes(x, 40), []byte("0123456789012345678901234567890123456789"))

	_, err = a.Allocate(40) // pin x's right neighbor so the grow must move
	require.NoError(t, err)

	y, err := a.Reallocate(x, 200)
	require.NoError(t, err)
	require.NotEqual(t, x, y)
	require.Equal(t, []byte("0123456789012345678901234567890123456789"), a.Bytes(y, 40))

	require.NoError(t, a.Verify(nil))
}

func TestReallocateSizeUnchangedReturnsSamePointer(t *testing.T) {
	a := newAllocator(t)

	x, err := a.Allocate(40)
	require.NoError(t, err)

	y, err := a.Reallocate(x, a.Size(x))
	require.NoError(t, err)
	require.Equal(t, x, y)
}

func TestReallocateZeroIsFree(t *testing.T) {
	a := newAllocator(t)

	x, err := a.Allocate(40)
	require.NoError(t, err)

	y, err := a.Reallocate(x, 0)
	require.NoError(t, err)
	require.Equal(t, NoAddress, y)

	var stats AllocStats
	require.NoError(t, a.Verify(&stats))
	require.Equal(t, int64(0), stats.AllocBlocks)
}

func TestReallocateNegativeIsInvalid(t *testing.T) {
	a := newAllocator(t)

	x, err := a.Allocate(40)
	require.NoError(t, err)

	y, err := a.Reallocate(x, -1)
	require.Error(t, err)
	require.Equal(t, NoAddress, y)

	// Untouched: the original block is still allocated and intact.
	require.True(t, a.header(x).allocated())
}

func TestAllocateZeroReturnsNoAddress(t *testing.T) {
	a := newAllocator(t)

	p, err := a.Allocate(0)
	require.NoError(t, err)
	require.Equal(t, NoAddress, p)
}

func TestFreeNoAddressIsNoOp(t *testing.T) {
	a := newAllocator(t)
	a.Free(NoAddress) // must not panic
	require.NoError(t, a.Verify(nil))
}

func TestAllocateBeyondChunkTriggersExtension(t *testing.T) {
	a := newAllocator(t)

	before := a.region.Size()
	p, err := a.Allocate(chunkSize * 2)
	require.NoError(t, err)
	require.NotEqual(t, NoAddress, p)
	require.Greater(t, a.region.Size(), before)

	require.NoError(t, a.Verify(nil))
}
