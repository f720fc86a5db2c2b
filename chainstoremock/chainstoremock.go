// SPDX-License-Identifier: ISC

// Package chainstoremock is a golang/mock-style mock of
// chainstore.Storage, hand-written in mockgen's generated shape since
// mockgen (golang/mock v1.6.0, the version this module pins per
// _examples/bitmark-inc-bitmarkd/storage/access_test.go's
// "storage/mocks" usage) predates support for generic interfaces —
// chainstore.Storage is generic over its Record type, so this file
// plays the role mockgen's `storage/mocks` package plays for the
// teacher's own Cache interface, reproduced by hand for the one
// generic parameter this module needs mocked.
package chainstoremock

import (
	"reflect"

	"github.com/golang/mock/gomock"

	"github.com/hychain/core/chainstore"
)

// MockStorage is a mock of chainstore.Storage[T].
type MockStorage[T chainstore.Record] struct {
	ctrl     *gomock.Controller
	recorder *MockStorageRecorder[T]
}

// MockStorageRecorder is the EXPECT() receiver for MockStorage.
type MockStorageRecorder[T chainstore.Record] struct {
	mock *MockStorage[T]
}

// NewMockStorage constructs a MockStorage controlled by ctrl.
func NewMockStorage[T chainstore.Record](ctrl *gomock.Controller) *MockStorage[T] {
	m := &MockStorage[T]{ctrl: ctrl}
	m.recorder = &MockStorageRecorder[T]{mock: m}
	return m
}

// EXPECT returns an object that allows the caller to indicate expected
// use.
func (m *MockStorage[T]) EXPECT() *MockStorageRecorder[T] {
	return m.recorder
}

func (m *MockStorage[T]) PutBlock(b T) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PutBlock", b)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockStorageRecorder[T]) PutBlock(b interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PutBlock", reflect.TypeOf((*MockStorage[T])(nil).PutBlock), b)
}

func (m *MockStorage[T]) GetBlock(id string) (T, bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetBlock", id)
	ret0, _ := ret[0].(T)
	ret1, _ := ret[1].(bool)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

func (mr *MockStorageRecorder[T]) GetBlock(id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetBlock", reflect.TypeOf((*MockStorage[T])(nil).GetBlock), id)
}

func (m *MockStorage[T]) HasBlock(id string) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "HasBlock", id)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockStorageRecorder[T]) HasBlock(id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "HasBlock", reflect.TypeOf((*MockStorage[T])(nil).HasBlock), id)
}

func (m *MockStorage[T]) GetBlockBySequence(seq uint32) (T, bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetBlockBySequence", seq)
	ret0, _ := ret[0].(T)
	ret1, _ := ret[1].(bool)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

func (mr *MockStorageRecorder[T]) GetBlockBySequence(seq interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetBlockBySequence", reflect.TypeOf((*MockStorage[T])(nil).GetBlockBySequence), seq)
}

func (m *MockStorage[T]) GetLatestBlock() (T, bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetLatestBlock")
	ret0, _ := ret[0].(T)
	ret1, _ := ret[1].(bool)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

func (mr *MockStorageRecorder[T]) GetLatestBlock() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetLatestBlock", reflect.TypeOf((*MockStorage[T])(nil).GetLatestBlock))
}

func (m *MockStorage[T]) GetAllBlocks() ([]T, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetAllBlocks")
	ret0, _ := ret[0].([]T)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockStorageRecorder[T]) GetAllBlocks() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetAllBlocks", reflect.TypeOf((*MockStorage[T])(nil).GetAllBlocks))
}

func (m *MockStorage[T]) Dispose() error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Dispose")
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockStorageRecorder[T]) Dispose() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Dispose", reflect.TypeOf((*MockStorage[T])(nil).Dispose))
}

func (m *MockStorage[T]) OnDispose(cb func()) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "OnDispose", cb)
}

func (mr *MockStorageRecorder[T]) OnDispose(cb interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "OnDispose", reflect.TypeOf((*MockStorage[T])(nil).OnDispose), cb)
}
