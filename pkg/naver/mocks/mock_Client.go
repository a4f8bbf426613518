// Package mocks provides test doubles for the naver client.
package mocks

import (
	"context"

	naver "github.com/scanpang/data-pipeline/pkg/naver"
	mock "github.com/stretchr/testify/mock"
)

// MockClient is a mock type for the Client interface.
type MockClient struct {
	mock.Mock
}

// SearchLocal provides a mock function with given fields: ctx, query, display, start
func (_m *MockClient) SearchLocal(ctx context.Context, query string, display int, start int) (*naver.SearchResponse, error) {
	ret := _m.Called(ctx, query, display, start)

	if len(ret) == 0 {
		panic("no return value specified for SearchLocal")
	}

	var r0 *naver.SearchResponse
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string, int, int) (*naver.SearchResponse, error)); ok {
		return rf(ctx, query, display, start)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string, int, int) *naver.SearchResponse); ok {
		r0 = rf(ctx, query, display, start)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*naver.SearchResponse)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string, int, int) error); ok {
		r1 = rf(ctx, query, display, start)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockClient creates a new instance of MockClient.
func NewMockClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockClient {
	mock := &MockClient{}
	mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
