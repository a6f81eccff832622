// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*

Package heap implements a general purpose dynamic storage allocator on top
of a single, linearly growable Region of bytes.

The Region is an abstraction over a raw, ever growing slice of bytes -
analogous to what lldb.Filer is to a file. Initialize lays down a 4 byte
alignment pad, an 8 byte prologue block and a zero size epilogue header,
then extends the Region by a chunk to produce the first free block.
Allocate, Free and Reallocate orchestrate the placement engine, the free
list and the coalescer over that Region to hand out and reclaim 8 byte
aligned payload addresses.

Block layout

Every block, free or used, is a multiple of 8 bytes, never smaller than 16
bytes, and carries matching header/footer words of the form

	size | allocated-bit

at its first and last 4 bytes. When a block is free, the first 8 bytes of
its payload - the bytes a used block would hand to its caller - carry the
previous/next links of the doubly linked free list instead. There is no
side table: the free list is threaded entirely through the Region itself,
the same way lldb threads its free block lists through the backing Filer.

Addressing

Callers never see a Go pointer into the Region. Allocate/Reallocate return
a Pointer, an opaque Region-relative payload offset (the same handle/offset
discipline lldb.Allocator uses for on-file blocks), together with an
accessor, Bytes, that hands back a []byte view of exactly the requested
payload length for direct reads and writes. Pointer remains valid only
until the block it names is freed or moved by Reallocate.

Concurrency

heap is single threaded and not reentrant, matching the allocator it is
modeled on: every public method assumes exclusive access to its Allocator
for the duration of the call. Callers needing concurrent access must
serialize it externally.

*/
package heap
