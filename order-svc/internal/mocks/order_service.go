package mocks

import (
	"context"

	"food-delivery/order-svc/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// OrderServiceInterface is a mock type for the OrderServiceInterface type
type OrderServiceInterface struct {
	mock.Mock
}

func (_m *OrderServiceInterface) CreateSingleItemOrder(ctx context.Context, userID string, menuItemID int) (*domain.Order, error) {
	ret := _m.Called(ctx, userID, menuItemID)

	if len(ret) == 0 {
		panic("no return value specified for CreateSingleItemOrder")
	}

	var r0 *domain.Order
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string, int) (*domain.Order, error)); ok {
		return rf(ctx, userID, menuItemID)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string, int) *domain.Order); ok {
		r0 = rf(ctx, userID, menuItemID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*domain.Order)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string, int) error); ok {
		r1 = rf(ctx, userID, menuItemID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *OrderServiceInterface) CreateOrder(ctx context.Context, userID string, restaurantID int, cart []domain.CartItem) (*domain.Order, error) {
	ret := _m.Called(ctx, userID, restaurantID, cart)

	if len(ret) == 0 {
		panic("no return value specified for CreateOrder")
	}

	var r0 *domain.Order
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string, int, []domain.CartItem) (*domain.Order, error)); ok {
		return rf(ctx, userID, restaurantID, cart)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string, int, []domain.CartItem) *domain.Order); ok {
		r0 = rf(ctx, userID, restaurantID, cart)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*domain.Order)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string, int, []domain.CartItem) error); ok {
		r1 = rf(ctx, userID, restaurantID, cart)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *OrderServiceInterface) GetOrder(ctx context.Context, id int) (*domain.Order, error) {
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

func (_m *OrderServiceInterface) OrderDetails(ctx context.Context, id int) (*domain.OrderDetails, error) {
	ret := _m.Called(ctx, id)

	if len(ret) == 0 {
		panic("no return value specified for OrderDetails")
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

func (_m *OrderServiceInterface) UpdateOrderStatus(ctx context.Context, id int, status domain.OrderStatus) (*domain.Order, error) {
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

func (_m *OrderServiceInterface) CreatePayment(ctx context.Context, orderID int, amount decimal.Decimal, method domain.PaymentMethod) (*domain.Payment, error) {
	ret := _m.Called(ctx, orderID, amount, method)

	if len(ret) == 0 {
		panic("no return value specified for CreatePayment")
	}

	var r0 *domain.Payment
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, int, decimal.Decimal, domain.PaymentMethod) (*domain.Payment, error)); ok {
		return rf(ctx, orderID, amount, method)
	}
	if rf, ok := ret.Get(0).(func(context.Context, int, decimal.Decimal, domain.PaymentMethod) *domain.Payment); ok {
		r0 = rf(ctx, orderID, amount, method)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*domain.Payment)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, int, decimal.Decimal, domain.PaymentMethod) error); ok {
		r1 = rf(ctx, orderID, amount, method)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *OrderServiceInterface) UpdatePaymentStatus(ctx context.Context, paymentID int, status domain.PaymentStatus) (*domain.Payment, error) {
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

func (_m *OrderServiceInterface) CancelOrder(ctx context.Context, orderID int) (*domain.CancelResult, error) {
	ret := _m.Called(ctx, orderID)

	if len(ret) == 0 {
		panic("no return value specified for CancelOrder")
	}

	var r0 *domain.CancelResult
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, int) (*domain.CancelResult, error)); ok {
		return rf(ctx, orderID)
	}
	if rf, ok := ret.Get(0).(func(context.Context, int) *domain.CancelResult); ok {
		r0 = rf(ctx, orderID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*domain.CancelResult)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, int) error); ok {
		r1 = rf(ctx, orderID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *OrderServiceInterface) SetDeliveryAddress(ctx context.Context, orderID int, address string) (*domain.Delivery, error) {
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

// NewOrderServiceInterface creates a new instance of OrderServiceInterface. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewOrderServiceInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *OrderServiceInterface {
	mock := &OrderServiceInterface{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
