// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import "fmt"

// An OutOfRegionError is returned (together with the public API's NoAddress
// sentinel, see Allocate/Reallocate) when the Region refuses to grow.
type OutOfRegionError struct {
	Requested int64 // bytes asked for
	Size      int64 // Region size at the time of the request
}

func (e *OutOfRegionError) Error() string {
	return fmt.Sprintf("heap: region extend by %d bytes failed at size %d", e.Requested, e.Size)
}

// An InvalidSizeError reports a malformed (negative) size argument to
// Reallocate - see spec §7 "Invalid argument". Allocate does not return it;
// it answers a non-positive size with NoAddress and a nil error.
type InvalidSizeError struct {
	Op   string
	Size int64
}

func (e *InvalidSizeError) Error() string {
	return fmt.Sprintf("heap: %s: invalid size %d", e.Op, e.Size)
}

// A CorruptionError is reported by Verify when an invariant of §3 does not
// hold. It is never returned by Allocate/Free/Reallocate themselves -
// corruption reached through those is undefined behavior by design (spec §7).
type CorruptionError struct {
	Off     int64
	Problem string
}

func (e *CorruptionError) Error() string {
	return fmt.Sprintf("heap: corruption at offset %d: %s", e.Off, e.Problem)
}
