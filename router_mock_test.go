package forkpool

// Code in the shape mockgen would generate for the Router interface, kept
// hand-written since the Go toolchain (and therefore `mockgen` itself)
// never runs as part of building this repo.

import (
	"reflect"

	"go.uber.org/mock/gomock"
)

// MockRouter is a gomock-style mock of the Router interface.
type MockRouter struct {
	ctrl     *gomock.Controller
	recorder *MockRouterMockRecorder
}

// MockRouterMockRecorder records expected calls on a MockRouter.
type MockRouterMockRecorder struct {
	mock *MockRouter
}

// NewMockRouter constructs a MockRouter.
func NewMockRouter(ctrl *gomock.Controller) *MockRouter {
	m := &MockRouter{ctrl: ctrl}
	m.recorder = &MockRouterMockRecorder{mock: m}
	return m
}

// EXPECT returns the recorder used to set expectations.
func (m *MockRouter) EXPECT() *MockRouterMockRecorder {
	return m.recorder
}

func (m *MockRouter) Route(ctx RouteContext) int {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Route", ctx)
	ret0, _ := ret[0].(int)
	return ret0
}

func (mr *MockRouterMockRecorder) Route(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Route", reflect.TypeOf((*MockRouter)(nil).Route), ctx)
}

func (m *MockRouter) Name() string {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Name")
	ret0, _ := ret[0].(string)
	return ret0
}

func (mr *MockRouterMockRecorder) Name() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Name", reflect.TypeOf((*MockRouter)(nil).Name))
}

var _ Router = (*MockRouter)(nil)
