// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import "github.com/cznic/mathutil"

// A Region is a []byte-like model of a linearly growable memory area. It
// plays the role lldb.Filer plays for on-file blocks: the Allocator never
// touches the backing storage directly, it only asks a Region to grow and
// then reads/writes through the slice Region.Bytes exposes.
//
// A Region is not safe for concurrent use, matching the single threaded
// contract of the Allocator built on top of it (spec §5).
type Region interface {
	// Size returns the current high-water mark, in bytes.
	Size() int64

	// Extend grows the Region by n bytes, zero filled, and returns the
	// offset of the first new byte (the old high-water mark). n must be
	// a positive multiple of 4. Extend returns ok == false if the Region
	// refuses to grow (out-of-region, spec §7.1); the Region is left
	// unchanged in that case.
	Extend(n int64) (off int64, ok bool)

	// Bytes returns a slice view of the Region covering [off, off+n).
	// The slice aliases the Region's backing storage: writes through it
	// are writes to the Region.
	Bytes(off, n int64) []byte
}

var _ Region = (*memRegion)(nil)

// memRegion is the only Region implementation in this module: a plain,
// memory backed growable byte slice. It is the heap-allocator analogue of
// lldb.MemFiler, minus paging (this spec's regions stay small enough -
// kilobytes to a few megabytes for typical workloads - that a single
// contiguous slice is simpler and exercises the same Region contract).
type memRegion struct {
	buf   []byte
	limit int64 // 0 means unlimited; used by tests to simulate exhaustion
}

// newMemRegion returns an empty Region. A limit of 0 means the Region never
// refuses to grow; a positive limit caps Size() and causes Extend to report
// failure once reached, which is how this module's tests exercise the
// out-of-region failure path of spec §7.1 without actually exhausting
// process memory.
func newMemRegion(limit int64) *memRegion {
	return &memRegion{limit: limit}
}

func (r *memRegion) Size() int64 { return int64(len(r.buf)) }

func (r *memRegion) Extend(n int64) (off int64, ok bool) {
	if n <= 0 {
		return 0, false
	}

	off = int64(len(r.buf))
	newSize := off + n
	if r.limit > 0 && newSize > r.limit {
		return 0, false
	}

	// mathutil.MaxInt64 keeps the growth arithmetic symmetric with the
	// clamping InnerFiler performs in lldb's filer.go.
	grown := make([]byte, mathutil.MaxInt64(newSize, 0))
	copy(grown, r.buf)
	r.buf = grown
	return off, true
}

func (r *memRegion) Bytes(off, n int64) []byte {
	return r.buf[off : off+n]
}
