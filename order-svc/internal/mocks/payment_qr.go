package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// PaymentQRInterface is a mock type for the PaymentQRInterface type
type PaymentQRInterface struct {
	mock.Mock
}

func (_m *PaymentQRInterface) PaymentQRCode(ctx context.Context, orderID int) ([]byte, error) {
	ret := _m.Called(ctx, orderID)

	if len(ret) == 0 {
		panic("no return value specified for PaymentQRCode")
	}

	var r0 []byte
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, int) ([]byte, error)); ok {
		return rf(ctx, orderID)
	}
	if rf, ok := ret.Get(0).(func(context.Context, int) []byte); ok {
		r0 = rf(ctx, orderID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]byte)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, int) error); ok {
		r1 = rf(ctx, orderID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *PaymentQRInterface) QRCodeURL(orderID int) string {
	ret := _m.Called(orderID)

	if len(ret) == 0 {
		panic("no return value specified for QRCodeURL")
	}

	var r0 string
	if rf, ok := ret.Get(0).(func(int) string); ok {
		r0 = rf(orderID)
	} else {
		r0 = ret.Get(0).(string)
	}

	return r0
}

// NewPaymentQRInterface creates a new instance of PaymentQRInterface. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewPaymentQRInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *PaymentQRInterface {
	mock := &PaymentQRInterface{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
