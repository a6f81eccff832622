// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/cznic/vmalloc/heap/regionmock"
)

func TestInitializeReportsOutOfRegionFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r := regionmock.NewMockRegion(ctrl)
	r.EXPECT().Extend(gomock.Any()).Return(int64(0), false)
	// The failure path records the Region's size in the returned error.
	r.EXPECT().Size().Return(int64(0)).AnyTimes()

	a := newTestAllocator(Config{}, r)
	err := a.Initialize()

	require.Error(t, err)
	var oor *OutOfRegionError
	require.ErrorAs(t, err, &oor)
}

func TestAllocateReportsOutOfRegionFailureOnExtend(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r := regionmock.NewMockRegion(ctrl)

	// Initialize succeeds: the 32 byte sentinel request, then the first
	// chunk extension, both backed by a tiny real buffer so the sentinel
	// and free-block bookkeeping writes land somewhere valid.
	buf := make([]byte, 0, 256)
	var size int64
	r.EXPECT().Extend(gomock.Any()).DoAndReturn(func(n int64) (int64, bool) {
		off := size
		buf = append(buf, make([]byte, n)...)
		size += n
		return off, true
	}).Times(2)
	r.EXPECT().Bytes(gomock.Any(), gomock.Any()).DoAndReturn(func(off, n int64) []byte {
		return buf[off : off+n]
	}).AnyTimes()
	r.EXPECT().Size().DoAndReturn(func() int64 { return size }).AnyTimes()

	a := newTestAllocator(Config{ChunkSize: 64}, r)
	require.NoError(t, a.Initialize())

	// Now force the next Region.Extend (triggered by a request the free
	// list cannot satisfy) to fail.
	r.EXPECT().Extend(gomock.Any()).Return(int64(0), false)

	p, err := a.Allocate(4096)
	require.Equal(t, NoAddress, p)
	require.Error(t, err)
	var oor *OutOfRegionError
	require.ErrorAs(t, err, &oor)
}
