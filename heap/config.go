// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

// Config carries the construction-time knobs of an Allocator. It plays the
// same role dbm.Options plays for a dbm.DB or Allocator.Compress plays for
// an lldb.Allocator: plain struct fields set once, never flags or env vars
// (spec §6 rules out a CLI/config surface for this library entirely).
type Config struct {
	// ChunkSize is the number of bytes requested from the Region on a
	// miss in the free list, before rounding up to satisfy the request
	// itself. Zero means the spec default of 4096 (CHUNKSIZE in mm.c).
	ChunkSize int64

	// ZeroOnFree, when true, overwrites a block's payload with zeros
	// before it is linked back into the free list. The spec's "Content
	// wiping" note (lldb falloc.go) treats this as the caller's
	// responsibility by default; set this when the Allocator should do
	// it unconditionally instead.
	ZeroOnFree bool
}

func (c Config) chunkSize() int64 {
	if c.ChunkSize > 0 {
		return roundUp8(c.ChunkSize)
	}
	return chunkSize
}
