// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

// Block layout constants, the Go-offset analogues of WSIZE/DSIZE/CHUNKSIZE
// in the original mm.c and of the atom arithmetic in lldb's falloc.go.
const (
	wordSize  = 4                  // header/footer word size, bytes
	alignment = 8                  // all block sizes are multiples of this
	minBlock  = 2 * alignment      // header + 2 link words + footer
	overhead  = 2 * wordSize       // header + footer bytes charged to every block
	chunkSize = 1 << 12            // default Region extension size, bytes
	prologue  = alignment          // size of the 8-byte sentinel prologue block
)

// word is a packed (size | allocated-bit) header/footer value, the Go
// analogue of the C PACK/GET_SIZE/GET_ALLOC macros in mm.c.
type word uint32

// pack encodes size and the allocated flag into a header/footer word. size
// must already be a multiple of 8.
func pack(size int64, allocated bool) word {
	w := word(size)
	if allocated {
		w |= 1
	}
	return w
}

// size decodes the block size carried by a header/footer word.
func (w word) size() int64 { return int64(w &^ 0x7) }

// allocated decodes the allocated flag carried by a header/footer word.
func (w word) allocated() bool { return w&0x1 != 0 }

// roundUp8 rounds n up to the next multiple of 8.
func roundUp8(n int64) int64 { return (n + 7) &^ 7 }

// headerOff returns the offset of the header word of the block whose
// payload starts at payload. This mirrors HDRP(bp) in mm.c.
func headerOff(payload int64) int64 { return payload - wordSize }

// footerOff returns the offset of the footer word of a block of the given
// size whose payload starts at payload. This mirrors FTRP(bp) in mm.c.
func footerOff(payload, size int64) int64 { return payload + size - 2*wordSize }

// payloadOf returns the payload offset of the block whose header sits at
// headerOff.
func payloadOf(headerOff int64) int64 { return headerOff + wordSize }

// header returns the header word of the block whose payload is p. This
// mirrors GET(HDRP(bp)) in mm.c.
func (a *Allocator) header(p Pointer) word { return a.getWord(headerOff(int64(p))) }

// nextPhysical returns the payload offset of the block physically
// following p, computed from p's own size word. This mirrors NEXT_BLKP(bp)
// in mm.c; it is always safe to call, even when p is the last real block,
// because the epilogue header makes the arithmetic land exactly on the
// epilogue's (zero-size, allocated) word.
func (a *Allocator) nextPhysical(p Pointer) int64 {
	return int64(p) + a.header(p).size()
}

// prevPhysical returns the payload offset of the block physically
// preceding p, computed from the footer word immediately before p's
// header. This mirrors PREV_BLKP(bp) in mm.c.
//
// For the first real block, the word at that position lies in the slack
// Initialize leaves ahead of that block, which stays zero and decodes to
// size 0 - so the arithmetic degenerates to prevPhysical(p) == p. Callers must treat that self-loop as "previous is allocated" (spec
// §4.3's guard), since there is no real block to merge with.
func (a *Allocator) prevPhysical(p Pointer) int64 {
	leftSize := a.getWord(int64(p) - 2*wordSize).size()
	return int64(p) - leftSize
}
