// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import "encoding/binary"

// A Pointer is an opaque, Region-relative payload address returned by
// Allocate and Reallocate. It is the Go analogue of the "payload pointer"
// of spec §3/§4.1 - a plain offset, not a Go pointer, the same handle
// discipline lldb.Allocator uses for on-file blocks.
type Pointer int64

// NoAddress is the distinguished "no block" result returned by Allocate on
// failure or a spurious request, and accepted as a no-op by Free (spec §7).
const NoAddress Pointer = 0

// Allocator is the public allocator surface of spec §6: Initialize,
// Allocate, Free, Reallocate, built over a Region. It owns two pieces of
// process-wide mutable state mentioned in spec §9 (free-list head and heap
// walking pointer) as plain fields instead of file-scope statics, so
// multiple independent heaps can coexist in one process.
type Allocator struct {
	region Region
	config Config

	heapStart  int64 // payload offset of the prologue block ("heap_listp")
	firstBlock int64 // payload offset of the first real (non-sentinel) block
	freeHead   Pointer
}

// New returns an Allocator ready for Initialize. cfg's zero value is a
// valid, spec-default configuration.
func New(cfg Config) *Allocator {
	return &Allocator{region: newMemRegion(0), config: cfg}
}

// newTestAllocator is used by this package's tests to install a Region with
// a bounded capacity (simulating out-of-region failure) or, via
// regionmock, a hand-mocked one.
func newTestAllocator(cfg Config, r Region) *Allocator {
	return &Allocator{region: r, config: cfg}
}

// Initialize lays down the prologue/epilogue sentinels and extends the
// Region by one chunk to produce the first free block. It returns an error
// (the Go analogue of mm_init's -1 return) if the initial Region extension
// fails.
func (a *Allocator) Initialize() error {
	// Spec §4.5 / mm_init: 32 bytes requested, only the first 16 used for
	// the pad/prologue/epilogue words. The last word of the remaining 16
	// bytes becomes the first real block's header (see extendRegion); the
	// rest is permanent slack ahead of that block - never visited by any
	// next_physical walk, which always starts at the first real block,
	// not at the prologue (spec §8, invariant 3).
	const initialRequest = 8 * wordSize

	off, ok := a.region.Extend(initialRequest)
	if !ok {
		return &OutOfRegionError{Requested: initialRequest, Size: a.region.Size()}
	}

	// Byte 0: alignment pad. Bytes [4,12): prologue (PACK(8,1) header +
	// footer). Byte 12: epilogue header (PACK(0,1)).
	a.putWord(off+wordSize, pack(prologue, true))
	a.putWord(off+2*wordSize, pack(prologue, true))
	a.putWord(off+3*wordSize, pack(0, true))

	a.heapStart = off + 2*wordSize // prologue payload
	a.freeHead = NoAddress

	first, err := a.extendRegion(a.config.chunkSize())
	if err != nil {
		return err
	}
	a.firstBlock = int64(first)
	return nil
}

// Size returns the usable payload capacity of the block at p, i.e. the
// largest n for which Bytes(p, n) is valid. Reallocate(p, Size(p)) always
// returns p unchanged (spec §8).
func (a *Allocator) Size(p Pointer) int64 {
	return a.getWord(headerOff(int64(p))).size() - overhead
}

// Bytes returns a []byte view of n bytes of p's payload, for direct
// reads/writes by the caller (spec §5/§6: the allocator never inspects or
// constrains payload content). The returned slice aliases the Region and
// is valid only until p is freed or moved by Reallocate.
func (a *Allocator) Bytes(p Pointer, n int64) []byte {
	return a.region.Bytes(int64(p), n)
}

// Allocate reserves a block able to hold size bytes and returns the payload
// Pointer, or NoAddress if size is zero or the Region cannot grow far
// enough (spec §7).
func (a *Allocator) Allocate(size int64) (Pointer, error) {
	if size <= 0 {
		return NoAddress, nil
	}

	asize := adjustedSize(size)

	if p := a.findFit(asize); p != NoAddress {
		a.place(p, asize)
		return p, nil
	}

	extendBy := asize
	if a.config.chunkSize() > extendBy {
		extendBy = a.config.chunkSize()
	}

	p, err := a.extendRegion(extendBy)
	if err != nil {
		return NoAddress, err
	}

	a.place(p, asize)
	return p, nil
}

// adjustedSize computes asize = max(16, roundUp8(size+8)), matching spec
// §4.5 step 2 / mm_malloc's DSIZE arithmetic exactly.
func adjustedSize(size int64) int64 {
	if size <= wordSize*2 {
		return minBlock
	}
	return roundUp8(size + overhead)
}

// Free releases the block at p. Freeing NoAddress is a no-op (spec §7).
func (a *Allocator) Free(p Pointer) {
	if p == NoAddress {
		return
	}

	off := int64(p)
	size := a.getWord(headerOff(off)).size()
	if a.config.ZeroOnFree {
		clear(a.region.Bytes(off, size-overhead))
	}
	a.putWord(headerOff(off), pack(size, false))
	a.putWord(footerOff(off, size), pack(size, false))
	a.coalesce(Pointer(off))
}

// Reallocate resizes the block at p to newSize bytes, per spec §4.5:
//
//	newSize < 0: returns NoAddress without side effect (spec §7.3).
//	newSize == 0: equivalent to Free(p); returns NoAddress (spec §7.2).
//	newSize > 0: returns p unchanged if its block already holds newSize
//	bytes (the block is never shrunk), grows in place by absorbing a free
//	right neighbor when possible, else relocates.
func (a *Allocator) Reallocate(p Pointer, newSize int64) (Pointer, error) {
	if newSize < 0 {
		return NoAddress, &InvalidSizeError{Op: "reallocate", Size: newSize}
	}
	if newSize == 0 {
		a.Free(p)
		return NoAddress, nil
	}

	off := int64(p)
	oldSize := a.getWord(headerOff(off)).size()
	needed := roundUp8(newSize + overhead)

	if needed <= oldSize {
		return p, nil
	}

	if nextOff := off + oldSize; a.canAbsorbNext(nextOff, needed-oldSize) {
		nextSize := a.getWord(headerOff(nextOff)).size()
		a.unlink(Pointer(nextOff))
		total := oldSize + nextSize
		a.putWord(headerOff(off), pack(total, true))
		a.putWord(footerOff(off, total), pack(total, true))
		return p, nil
	}

	fresh, err := a.Allocate(newSize)
	if err != nil {
		return NoAddress, err
	}

	copyLen := oldSize - overhead
	if needed-overhead < copyLen {
		copyLen = needed - overhead
	}
	copy(a.region.Bytes(int64(fresh), copyLen), a.region.Bytes(off, copyLen))
	a.Free(p)
	return fresh, nil
}

// canAbsorbNext reports whether the block starting at nextOff is free and
// big enough, together with the caller's current block, to satisfy an
// in-place grow needing `more` additional bytes.
func (a *Allocator) canAbsorbNext(nextOff, more int64) bool {
	if nextOff >= a.region.Size() {
		return false
	}
	w := a.getWord(headerOff(nextOff))
	return !w.allocated() && w.size() >= more
}

// extendRegion grows the Region by at least n bytes (rounded up to an even
// word count, at least minBlock), writes a fresh free block and epilogue,
// and coalesces the new block with any preceding trailing free block -
// mirroring extend_heap in mm.c / the Region-extension branch of
// lldb.Allocator.alloc.
//
// The new block's header overwrites the last word of the Region as it
// stood before growing - the word that held the previous epilogue header
// (or, on the very first call, the initial slack left by Initialize) -
// exactly as HDRP(bp) does in extend_heap when bp is mem_sbrk's returned
// old break.
func (a *Allocator) extendRegion(n int64) (Pointer, error) {
	size := roundUp8(n)
	if size < minBlock {
		size = minBlock
	}

	payload := a.region.Size()
	if _, ok := a.region.Extend(size); !ok {
		return NoAddress, &OutOfRegionError{Requested: size, Size: a.region.Size()}
	}

	a.putWord(headerOff(payload), pack(size, false))
	a.putWord(footerOff(payload, size), pack(size, false))
	a.putWord(payload+size-wordSize, pack(0, true)) // new epilogue header

	return a.coalesce(Pointer(payload)), nil
}

func (a *Allocator) getWord(off int64) word {
	return word(binary.BigEndian.Uint32(a.region.Bytes(off, wordSize)))
}

func (a *Allocator) putWord(off int64, w word) {
	binary.BigEndian.PutUint32(a.region.Bytes(off, wordSize), uint32(w))
}
