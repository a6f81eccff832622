// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import (
	"sort"

	"github.com/cznic/mathutil"
	"github.com/cznic/sortutil"
)

// AllocStats summarizes the result of a successful Verify, the Go analogue
// of lldb's AllocStats filled in by Allocator.Verify.
type AllocStats struct {
	TotalBlocks int64 // real (non-sentinel) blocks, allocated + free
	AllocBlocks int64
	FreeBlocks  int64
	AllocBytes  int64 // sum of allocated blocks' sizes, including overhead
	FreeBytes   int64 // sum of free blocks' sizes, including overhead
}

// Verify is the optional consistency checker spec §7/§8 recommends. It
// walks the Region from the first real block to the epilogue, checking the
// testable properties of spec §8 (tag agreement, alignment, minimum size,
// no adjacent free blocks), then cross-checks that walk against an
// independent traversal of the free list, the same way lldb's
// Allocator.Verify cross-checks its heap walk against its FLT.
//
// Verify never mutates the Allocator. A non-nil error is the first
// violated invariant encountered; stats, if non-nil, is filled in only on
// success.
func (a *Allocator) Verify(stats *AllocStats) error {
	var s AllocStats
	var freeByWalk []int64

	off := a.firstBlock
	for {
		hdr := a.getWord(headerOff(off))

		if hdr.size() == 0 {
			if !hdr.allocated() {
				return &CorruptionError{Off: off, Problem: "epilogue reports unallocated"}
			}
			break // reached the epilogue
		}

		ftr := a.getWord(footerOff(off, hdr.size()))
		if hdr != ftr {
			return &CorruptionError{Off: off, Problem: "header/footer mismatch"}
		}
		if hdr.size()%alignment != 0 {
			return &CorruptionError{Off: off, Problem: "size not a multiple of 8"}
		}
		if hdr.size() < minBlock {
			return &CorruptionError{Off: off, Problem: "size below minimum block"}
		}
		if off%alignment != 0 {
			return &CorruptionError{Off: off, Problem: "payload not 8 byte aligned"}
		}

		s.TotalBlocks++
		if hdr.allocated() {
			s.AllocBlocks++
			s.AllocBytes += hdr.size()
		} else {
			s.FreeBlocks++
			s.FreeBytes += hdr.size()
			freeByWalk = append(freeByWalk, off)

			next := a.nextPhysical(Pointer(off))
			if next < a.region.Size() && !a.getWord(headerOff(next)).allocated() {
				return &CorruptionError{Off: off, Problem: "adjacent free blocks were not coalesced"}
			}
		}

		off = a.nextPhysical(Pointer(off))
	}

	var freeByList []int64
	seen := map[int64]bool{}
	for p := a.freeHead; p != NoAddress; p = a.nextLink(p) {
		if seen[int64(p)] {
			return &CorruptionError{Off: int64(p), Problem: "free list cycle"}
		}
		seen[int64(p)] = true

		if a.header(p).allocated() {
			return &CorruptionError{Off: int64(p), Problem: "free list node is marked allocated"}
		}

		if next := a.nextLink(p); next != NoAddress && a.prevLink(next) != p {
			return &CorruptionError{Off: int64(p), Problem: "free list link asymmetry"}
		}

		freeByList = append(freeByList, int64(p))
	}

	sort.Sort(sortutil.Int64Slice(freeByWalk))
	sort.Sort(sortutil.Int64Slice(freeByList))
	if len(freeByWalk) != len(freeByList) {
		return &CorruptionError{Off: a.firstBlock, Problem: "free list size disagrees with heap walk"}
	}
	for i := range freeByWalk {
		if freeByWalk[i] != freeByList[i] {
			return &CorruptionError{Off: freeByWalk[i], Problem: "free list membership disagrees with heap walk"}
		}
	}

	if stats != nil {
		*stats = s
	}
	return nil
}

// walkSize returns the number of bytes covered by the forward walk, from
// the first real block's header up to the epilogue header: the value the
// "sum of block sizes equals the region size minus padding/sentinels"
// property of spec §8 compares against.
func (a *Allocator) walkSize() int64 {
	return mathutil.MaxInt64(a.region.Size()-a.firstBlock, 0)
}
