package mocks

import (
	"context"

	"food-delivery/order-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

// ChatServiceInterface is a mock type for the ChatServiceInterface type
type ChatServiceInterface struct {
	mock.Mock
}

func (_m *ChatServiceInterface) Handle(ctx context.Context, req domain.ChatRequest) domain.ChatReply {
	ret := _m.Called(ctx, req)

	if len(ret) == 0 {
		panic("no return value specified for Handle")
	}

	var r0 domain.ChatReply
	if rf, ok := ret.Get(0).(func(context.Context, domain.ChatRequest) domain.ChatReply); ok {
		r0 = rf(ctx, req)
	} else {
		r0 = ret.Get(0).(domain.ChatReply)
	}

	return r0
}

// NewChatServiceInterface creates a new instance of ChatServiceInterface. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewChatServiceInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *ChatServiceInterface {
	mock := &ChatServiceInterface{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
