package mocks

import (
	"context"

	"food-delivery/order-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

// OrderRepository is a mock type for the OrderRepository type
type OrderRepository struct {
	mock.Mock
}

func (_m *OrderRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	ret := _m.Called(ctx, order)

	if len(ret) == 0 {
		panic("no return value specified for CreateOrder")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *domain.Order) error); ok {
		r0 = rf(ctx, order)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

func (_m *OrderRepository) GetOrder(ctx context.Context, id int) (*domain.Order, error) {
	ret := _m.Called(ctx, id)

	if len(ret) == 0 {
		panic("no return value specified for GetOrder")
	}

	var r0 *domain.Order
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, int) (*domain.Order, error)); ok {
		return rf(ctx, id)
	}
	if rf, ok := ret.Get(0).(func(context.Context, int) *domain.Order); ok {
		r0 = rf(ctx, id)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*domain.Order)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, int) error); ok {
		r1 = rf(ctx, id)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *OrderRepository) GetOrderDetails(ctx context.Context, id int) (*domain.OrderDetails, error) {
	ret := _m.Called(ctx, id)

	if len(ret) == 0 {
		panic("no return value specified for GetOrderDetails")
	}

	var r0 *domain.OrderDetails
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, int) (*domain.OrderDetails, error)); ok {
		return rf(ctx, id)
	}
	if rf, ok := ret.Get(0).(func(context.Context, int) *domain.OrderDetails); ok {
		r0 = rf(ctx, id)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*domain.OrderDetails)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, int) error); ok {
		r1 = rf(ctx, id)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *OrderRepository) UpdateOrderStatus(ctx context.Context, id int, status domain.OrderStatus) (*domain.Order, error) {
	ret := _m.Called(ctx, id, status)

	if len(ret) == 0 {
		panic("no return value specified for UpdateOrderStatus")
	}

	var r0 *domain.Order
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, int, domain.OrderStatus) (*domain.Order, error)); ok {
		return rf(ctx, id, status)
	}
	if rf, ok := ret.Get(0).(func(context.Context, int, domain.OrderStatus) *domain.Order); ok {
		r0 = rf(ctx, id, status)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*domain.Order)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, int, domain.OrderStatus) error); ok {
		r1 = rf(ctx, id, status)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *OrderRepository) CancelOrder(ctx context.Context, id int) (*domain.Cancellation, error) {
	ret := _m.Called(ctx, id)

	if len(ret) == 0 {
		panic("no return value specified for CancelOrder")
	}

	var r0 *domain.Cancellation
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, int) (*domain.Cancellation, error)); ok {
		return rf(ctx, id)
	}
	if rf, ok := ret.Get(0).(func(context.Context, int) *domain.Cancellation); ok {
		r0 = rf(ctx, id)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*domain.Cancellation)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, int) error); ok {
		r1 = rf(ctx, id)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *OrderRepository) GetPaymentByOrder(ctx context.Context, orderID int) (*domain.Payment, error) {
	ret := _m.Called(ctx, orderID)

	if len(ret) == 0 {
		panic("no return value specified for GetPaymentByOrder")
	}

	var r0 *domain.Payment
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, int) (*domain.Payment, error)); ok {
		return rf(ctx, orderID)
	}
	if rf, ok := ret.Get(0).(func(context.Context, int) *domain.Payment); ok {
		r0 = rf(ctx, orderID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*domain.Payment)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, int) error); ok {
		r1 = rf(ctx, orderID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *OrderRepository) SavePayment(ctx context.Context, payment *domain.Payment) error {
	ret := _m.Called(ctx, payment)

	if len(ret) == 0 {
		panic("no return value specified for SavePayment")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *domain.Payment) error); ok {
		r0 = rf(ctx, payment)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

func (_m *OrderRepository) UpdatePaymentStatus(ctx context.Context, paymentID int, status domain.PaymentStatus) (*domain.Payment, error) {
	ret := _m.Called(ctx, paymentID, status)

	if len(ret) == 0 {
		panic("no return value specified for UpdatePaymentStatus")
	}

	var r0 *domain.Payment
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, int, domain.PaymentStatus) (*domain.Payment, error)); ok {
		return rf(ctx, paymentID, status)
	}
	if rf, ok := ret.Get(0).(func(context.Context, int, domain.PaymentStatus) *domain.Payment); ok {
		r0 = rf(ctx, paymentID, status)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*domain.Payment)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, int, domain.PaymentStatus) error); ok {
		r1 = rf(ctx, paymentID, status)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *OrderRepository) SetDeliveryAddress(ctx context.Context, orderID int, address string) (*domain.Delivery, error) {
	ret := _m.Called(ctx, orderID, address)

	if len(ret) == 0 {
		panic("no return value specified for SetDeliveryAddress")
	}

	var r0 *domain.Delivery
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, int, string) (*domain.Delivery, error)); ok {
		return rf(ctx, orderID, address)
	}
	if rf, ok := ret.Get(0).(func(context.Context, int, string) *domain.Delivery); ok {
		r0 = rf(ctx, orderID, address)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*domain.Delivery)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, int, string) error); ok {
		r1 = rf(ctx, orderID, address)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewOrderRepository creates a new instance of OrderRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewOrderRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *OrderRepository {
	mock := &OrderRepository{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
