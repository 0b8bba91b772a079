package mocks

import (
	"context"

	"food-delivery/order-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

// OrderEventPublisher is a mock type for the OrderEventPublisher type
type OrderEventPublisher struct {
	mock.Mock
}

func (_m *OrderEventPublisher) PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error {
	ret := _m.Called(ctx, event)

	if len(ret) == 0 {
		panic("no return value specified for PublishOrderEvent")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, domain.OrderEvent) error); ok {
		r0 = rf(ctx, event)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewOrderEventPublisher creates a new instance of OrderEventPublisher. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewOrderEventPublisher(t interface {
	mock.TestingT
	Cleanup(func())
}) *OrderEventPublisher {
	mock := &OrderEventPublisher{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
