// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

// The free list is a doubly linked LIFO list threaded through the payload
// area of every free block (spec §3/§4.2). A free block's prev link lives
// at its payload offset, its next link 4 bytes further in - the Go offset
// analogue of GET_PREV_PTR/GET_NEXT_PTR in mm.c and of the prev/next
// handles lldb's falloc.go keeps in a free block's body.

// Link words store a raw Region offset, not a packed size|alloc word - they
// must not go through word.size()'s flag-bit mask, since a payload offset's
// low bits are not reliably zero (only block starts are).
func (a *Allocator) prevLink(p Pointer) Pointer { return Pointer(a.getWord(int64(p))) }
func (a *Allocator) nextLink(p Pointer) Pointer { return Pointer(a.getWord(int64(p) + wordSize)) }

func (a *Allocator) setPrevLink(p, v Pointer) { a.putWord(int64(p), word(v)) }
func (a *Allocator) setNextLink(p, v Pointer) { a.putWord(int64(p)+wordSize, word(v)) }

// insert adds b to the head of the free list. O(1), the Go analogue of
// insert_in_free_list in mm.c.
func (a *Allocator) insert(b Pointer) {
	old := a.freeHead
	a.setPrevLink(b, NoAddress)
	a.setNextLink(b, old)
	if old != NoAddress {
		a.setPrevLink(old, b)
	}
	a.freeHead = b
}

// unlink removes b from the free list. O(1) given b.
//
// mm.c's remove_from_free_list writes SET_PREV_PTR(next_pointer,
// prev_pointer) unconditionally, which is an out-of-bounds write when b is
// the tail of the list (next == NULL) - flagged as an open question in spec
// §9. This implementation guards it explicitly: the tail's next link has no
// node to write into.
func (a *Allocator) unlink(b Pointer) {
	prev := a.prevLink(b)
	next := a.nextLink(b)

	if prev != NoAddress {
		a.setNextLink(prev, next)
	} else {
		a.freeHead = next
	}

	if next != NoAddress {
		a.setPrevLink(next, prev)
	}
}
