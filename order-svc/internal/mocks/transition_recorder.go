package mocks

import (
	"food-delivery/order-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

// TransitionRecorder is a mock type for the TransitionRecorder type
type TransitionRecorder struct {
	mock.Mock
}

func (_m *TransitionRecorder) ObserveTransition(from domain.ChatState, to domain.ChatState) {
	_m.Called(from, to)
}

// NewTransitionRecorder creates a new instance of TransitionRecorder. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewTransitionRecorder(t interface {
	mock.TestingT
	Cleanup(func())
}) *TransitionRecorder {
	mock := &TransitionRecorder{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
