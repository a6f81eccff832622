// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import (
	"flag"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	rndTestN       = flag.Int("heap.n", 200, "randomized allocator test op count")
	rndTestMaxSize = flag.Int("heap.maxsize", 512, "randomized allocator test max request size")
	rndTestSeed    = flag.Int64("heap.seed", 1, "randomized allocator test PRNG seed")
)

// checkedAllocator wraps an Allocator and calls Verify after every mutating
// operation, the Go analogue of lldb's falloc_test.go pAllocator. Any
// invariant violation fails the test immediately with the failing op
// recorded, instead of surfacing many ops later as an unexplained panic.
type checkedAllocator struct {
	*Allocator
	t      *testing.T
	lastOp string
}

func newCheckedAllocator(t *testing.T) *checkedAllocator {
	t.Helper()
	a := New(Config{})
	require.NoError(t, a.Initialize())
	c := &checkedAllocator{Allocator: a, t: t}
	c.check("initialize")
	return c
}

func (c *checkedAllocator) check(op string) {
	c.t.Helper()
	c.lastOp = op
	if err := c.Verify(nil); err != nil {
		c.t.Fatalf("invariant violated after %s: %v", c.lastOp, err)
	}
}

func (c *checkedAllocator) allocate(size int64) Pointer {
	c.t.Helper()
	p, err := c.Allocate(size)
	require.NoError(c.t, err)
	c.check("allocate")
	return p
}

func (c *checkedAllocator) free(p Pointer) {
	c.t.Helper()
	c.Free(p)
	c.check("free")
}

func (c *checkedAllocator) reallocate(p Pointer, size int64) Pointer {
	c.t.Helper()
	q, err := c.Reallocate(p, size)
	require.NoError(c.t, err)
	c.check("reallocate")
	return q
}

// TestAllocatorRnd drives a checkedAllocator through a long sequence of
// random allocate/free/reallocate ops, modeled on lldb's TestAllocatorRnd,
// verifying all of §8's invariants hold after every single call.
func TestAllocatorRnd(t *testing.T) {
	rng := rand.New(rand.NewSource(*rndTestSeed))
	a := newCheckedAllocator(t)

	var live []Pointer
	for i := 0; i < *rndTestN; i++ {
		switch {
		case len(live) == 0 || rng.Intn(3) != 0:
			size := int64(rng.Intn(*rndTestMaxSize) + 1)
			p := a.allocate(size)
			if p != NoAddress {
				live = append(live, p)
			}

		case rng.Intn(2) == 0:
			idx := rng.Intn(len(live))
			a.free(live[idx])
			live[idx] = live[len(live)-1]
			live = live[:len(live)-1]

		default:
			idx := rng.Intn(len(live))
			size := int64(rng.Intn(*rndTestMaxSize) + 1)
			live[idx] = a.reallocate(live[idx], size)
		}
	}

	for _, p := range live {
		a.free(p)
	}

	var stats AllocStats
	require.NoError(t, a.Verify(&stats))
	require.Equal(t, int64(0), stats.AllocBlocks)
	require.Equal(t, int64(1), stats.FreeBlocks)
}

func TestVerifyDetectsHeaderFooterMismatch(t *testing.T) {
	a := newAllocator(t)
	p, err := a.Allocate(40)
	require.NoError(t, err)

	// Corrupt the footer directly through the Region, bypassing the public
	// API, to check Verify actually notices.
	a.putWord(footerOff(int64(p), a.header(p).size()), pack(9999, true))

	err = a.Verify(nil)
	require.Error(t, err)
	var corrupt *CorruptionError
	require.ErrorAs(t, err, &corrupt)
}
