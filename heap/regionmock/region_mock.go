// Mock of github.com/cznic/vmalloc/heap (interfaces: Region), written by
// hand in the layout MockGen generates.

// Package regionmock provides a mock of heap.Region, hand-authored in the
// shape go.uber.org/mock/mockgen produces, for exercising Allocator's
// out-of-region failure paths (spec §7.1) without actually exhausting
// process memory. It is intentionally untyped against heap.Region itself -
// Go interface satisfaction is structural, so MockRegion plugs into any
// heap.Allocator constructor accepting a heap.Region without this package
// importing heap.
package regionmock

import (
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"
)

// MockRegion is a mock of the Region interface.
type MockRegion struct {
	ctrl     *gomock.Controller
	recorder *MockRegionMockRecorder
}

// MockRegionMockRecorder is the mock recorder for MockRegion.
type MockRegionMockRecorder struct {
	mock *MockRegion
}

// NewMockRegion creates a new mock instance.
func NewMockRegion(ctrl *gomock.Controller) *MockRegion {
	mock := &MockRegion{ctrl: ctrl}
	mock.recorder = &MockRegionMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockRegion) EXPECT() *MockRegionMockRecorder {
	return m.recorder
}

// Size mocks base method.
func (m *MockRegion) Size() int64 {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Size")
	ret0, _ := ret[0].(int64)
	return ret0
}

// Size indicates an expected call of Size.
func (mr *MockRegionMockRecorder) Size() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Size", reflect.TypeOf((*MockRegion)(nil).Size))
}

// Extend mocks base method.
func (m *MockRegion) Extend(n int64) (int64, bool) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Extend", n)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(bool)
	return ret0, ret1
}

// Extend indicates an expected call of Extend.
func (mr *MockRegionMockRecorder) Extend(n interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Extend", reflect.TypeOf((*MockRegion)(nil).Extend), n)
}

// Bytes mocks base method.
func (m *MockRegion) Bytes(off, n int64) []byte {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Bytes", off, n)
	ret0, _ := ret[0].([]byte)
	return ret0
}

// Bytes indicates an expected call of Bytes.
func (mr *MockRegionMockRecorder) Bytes(off, n interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Bytes", reflect.TypeOf((*MockRegion)(nil).Bytes), off, n)
}
