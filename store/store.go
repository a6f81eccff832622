// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package store is a thin convenience layer over heap.Allocator, playing the
role lldb's dbm package plays over lldb.Allocator: it turns raw payload
Pointers into a byte-slice-in, byte-slice-out API (Put/Get/Update/Delete),
the same shape Allocator.Alloc/Get/Realloc/Free have in falloc.go, plus
optional Snappy compression of stored content.

Unlike heap.Allocator, Store never hands payload Pointers back to the
caller to dereference directly; Get always returns a freshly allocated
copy, so Store's compression bookkeeping stays private.
*/
package store

import (
	"encoding/binary"

	"github.com/golang/snappy"

	"github.com/cznic/vmalloc/heap"
)

// Config carries Store's construction-time knobs, mirroring heap.Config's
// plain-struct-field discipline.
type Config struct {
	Heap heap.Config

	// Compress, when true, Snappy-compresses content before it is handed
	// to the Allocator, and transparently decompresses it on Get.
	Compress bool
}

// A Store wraps a heap.Allocator with a content-addressed Put/Get/Update
// surface. A Store is not safe for concurrent use, matching heap.Allocator.
type Store struct {
	alloc    *heap.Allocator
	compress bool
}

// New returns a Store ready for use; it initializes the underlying
// heap.Allocator (the Go analogue of dbm.Create over a fresh lldb.Allocator).
func New(cfg Config) (*Store, error) {
	a := heap.New(cfg.Heap)
	if err := a.Initialize(); err != nil {
		return nil, err
	}
	return &Store{alloc: a, compress: cfg.Compress}, nil
}

// wireLenPrefix is the byte width of the stored-length header Store keeps
// at the front of every block's payload. heap.Allocator rounds a request up
// to asize (spec §4.5), so the block's usable capacity (heap.Size) is
// generally larger than what was actually written; Store needs its own
// record of the exact wire length to know where content ends, the same
// problem lldb's Allocator solves internally via its block's own length
// field (nfo's s return value in falloc.go) that this simplified heap
// package does not expose.
const wireLenPrefix = 4

// encode prepends the wireLenPrefix length header, Snappy-compressing the
// content first when s.compress is set - the same length-prefixed framing
// lldb's dbm package uses around code.google.com/p/snappy-go.
func (s *Store) encode(b []byte) []byte {
	payload := b
	if s.compress {
		payload = snappy.Encode(nil, b)
	}
	out := make([]byte, wireLenPrefix+len(payload))
	binary.BigEndian.PutUint32(out, uint32(len(payload)))
	copy(out[wireLenPrefix:], payload)
	return out
}

func (s *Store) decode(wire []byte) ([]byte, error) {
	n := binary.BigEndian.Uint32(wire[:wireLenPrefix])
	payload := wire[wireLenPrefix : wireLenPrefix+int64(n)]
	if !s.compress {
		cp := make([]byte, len(payload))
		copy(cp, payload)
		return cp, nil
	}
	return snappy.Decode(nil, payload)
}

// Put copies b into a freshly allocated block and returns its Pointer, the
// Go analogue of lldb.Allocator.Alloc.
func (s *Store) Put(b []byte) (heap.Pointer, error) {
	wire := s.encode(b)
	p, err := s.alloc.Allocate(int64(len(wire)))
	if err != nil {
		return heap.NoAddress, err
	}
	if p == heap.NoAddress {
		return heap.NoAddress, nil
	}
	copy(s.alloc.Bytes(p, int64(len(wire))), wire)
	return p, nil
}

// Get returns a copy of the content stored at p, the Go analogue of
// lldb.Allocator.Get. The returned slice does not alias the Store's
// internal storage and remains valid after p is freed or updated.
func (s *Store) Get(p heap.Pointer) ([]byte, error) {
	header := s.alloc.Bytes(p, wireLenPrefix)
	n := binary.BigEndian.Uint32(header)
	wire := s.alloc.Bytes(p, wireLenPrefix+int64(n))
	return s.decode(wire)
}

// Update replaces the content at p with b, resizing and possibly relocating
// the underlying block, and returns the (possibly new) Pointer - the Go
// analogue of lldb.Allocator.Realloc, generalized to resize-by-content
// instead of resize-by-length.
func (s *Store) Update(p heap.Pointer, b []byte) (heap.Pointer, error) {
	wire := s.encode(b)
	q, err := s.alloc.Reallocate(p, int64(len(wire)))
	if err != nil || q == heap.NoAddress {
		return q, err
	}
	copy(s.alloc.Bytes(q, int64(len(wire))), wire)
	return q, nil
}

// Delete releases the block at p. Deleting heap.NoAddress is a no-op.
func (s *Store) Delete(p heap.Pointer) {
	s.alloc.Free(p)
}

// Verify exposes the underlying heap.Allocator's consistency check.
func (s *Store) Verify(stats *heap.AllocStats) error {
	return s.alloc.Verify(stats)
}
