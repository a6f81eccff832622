// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

// coalesce merges the just-freed or just-extended free block at p with any
// immediately physically adjacent free neighbors, maintaining both the
// boundary tags and free-list membership, and returns the (possibly
// shifted) payload of the resulting block. It is the Go analogue of
// coalesce() in mm.c / Allocator.free2 in lldb's falloc.go.
//
// p's header/footer must already report it as free; coalesce never flips
// the allocated bit itself, it only merges and re-links.
func (a *Allocator) coalesce(p Pointer) Pointer {
	size := a.header(p).size()

	// prevOff == p is prevPhysical's self-loop for the first real block
	// and counts as "previous is allocated".
	prevOff := a.prevPhysical(p)
	prevFree := prevOff != int64(p) && !a.header(Pointer(prevOff)).allocated()

	// No top-of-heap check: for the last real block nextOff lands on the
	// epilogue header, which always reports allocated.
	nextOff := a.nextPhysical(p)
	nextFree := !a.header(Pointer(nextOff)).allocated()

	switch {
	case !prevFree && !nextFree:
		a.insert(p)
		return p

	case !prevFree && nextFree:
		nextSize := a.header(Pointer(nextOff)).size()
		a.unlink(Pointer(nextOff))
		total := size + nextSize
		a.putWord(headerOff(int64(p)), pack(total, false))
		a.putWord(footerOff(int64(p), total), pack(total, false))
		a.insert(p)
		return p

	case prevFree && !nextFree:
		prevSize := a.header(Pointer(prevOff)).size()
		a.unlink(Pointer(prevOff))
		total := prevSize + size
		a.putWord(headerOff(prevOff), pack(total, false))
		a.putWord(footerOff(prevOff, total), pack(total, false))
		a.insert(Pointer(prevOff))
		return Pointer(prevOff)

	default: // prevFree && nextFree
		prevSize := a.header(Pointer(prevOff)).size()
		nextSize := a.header(Pointer(nextOff)).size()
		a.unlink(Pointer(prevOff))
		a.unlink(Pointer(nextOff))
		total := prevSize + size + nextSize
		a.putWord(headerOff(prevOff), pack(total, false))
		a.putWord(footerOff(prevOff, total), pack(total, false))
		a.insert(Pointer(prevOff))
		return Pointer(prevOff)
	}
}
