// Package mocks provides test doubles for the google client.
package mocks

import (
	"context"

	google "github.com/scanpang/data-pipeline/pkg/google"
	mock "github.com/stretchr/testify/mock"
)

// MockClient is a mock type for the Client interface.
type MockClient struct {
	mock.Mock
}

// NearbySearch provides a mock function with given fields: ctx, req
func (_m *MockClient) NearbySearch(ctx context.Context, req google.NearbySearchRequest) (*google.NearbySearchResponse, error) {
	ret := _m.Called(ctx, req)

	if len(ret) == 0 {
		panic("no return value specified for NearbySearch")
	}

	var r0 *google.NearbySearchResponse
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, google.NearbySearchRequest) (*google.NearbySearchResponse, error)); ok {
		return rf(ctx, req)
	}
	if rf, ok := ret.Get(0).(func(context.Context, google.NearbySearchRequest) *google.NearbySearchResponse); ok {
		r0 = rf(ctx, req)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*google.NearbySearchResponse)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, google.NearbySearchRequest) error); ok {
		r1 = rf(ctx, req)
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
