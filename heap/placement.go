// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

// findFit walks the free list from the head and returns the first block
// whose size is >= asize, or NoAddress if none fits. This is the Go
// analogue of find_fit in mm.c.
//
// mm.c's find_fit terminates its walk by testing GET_ALLOC(HDRP(bp)) == 0,
// relying on the free list eventually running into allocated memory or a
// null pointer; one draft flagged in spec §9 even extends the heap on
// asize == 0. This implementation instead walks an explicitly
// null-terminated list (see freelist.go's unlink) and always returns
// NoAddress up front for asize == 0, matching the resolution spec §9
// prefers: allocate already short-circuits before ever calling findFit
// with a zero size.
func (a *Allocator) findFit(asize int64) Pointer {
	if asize <= 0 {
		return NoAddress
	}

	for p := a.freeHead; p != NoAddress; p = a.nextLink(p) {
		if a.header(p).size() >= asize {
			return p
		}
	}
	return NoAddress
}

// place removes b from the free list, marks it allocated, and splits off
// any remainder of at least minBlock bytes into a fresh free block that is
// immediately coalesced with its own right neighbor. This is the Go
// analogue of place() in mm.c.
func (a *Allocator) place(b Pointer, asize int64) {
	total := a.header(b).size()
	a.unlink(b)

	remainder := total - asize
	if remainder < minBlock {
		a.putWord(headerOff(int64(b)), pack(total, true))
		a.putWord(footerOff(int64(b), total), pack(total, true))
		return
	}

	a.putWord(headerOff(int64(b)), pack(asize, true))
	a.putWord(footerOff(int64(b), asize), pack(asize, true))

	free := Pointer(int64(b) + asize)
	a.putWord(headerOff(int64(free)), pack(remainder, false))
	a.putWord(footerOff(int64(free), remainder), pack(remainder, false))
	a.coalesce(free)
}
