package mocks

import (
	"context"

	"food-delivery/order-svc/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// CatalogRepository is a mock type for the CatalogRepository type
type CatalogRepository struct {
	mock.Mock
}

func (_m *CatalogRepository) CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	ret := _m.Called(ctx, rest)

	if len(ret) == 0 {
		panic("no return value specified for CreateRestaurant")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *domain.Restaurant) error); ok {
		r0 = rf(ctx, rest)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

func (_m *CatalogRepository) ListRestaurants(ctx context.Context, activeOnly bool) ([]domain.Restaurant, error) {
	ret := _m.Called(ctx, activeOnly)

	if len(ret) == 0 {
		panic("no return value specified for ListRestaurants")
	}

	var r0 []domain.Restaurant
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, bool) ([]domain.Restaurant, error)); ok {
		return rf(ctx, activeOnly)
	}
	if rf, ok := ret.Get(0).(func(context.Context, bool) []domain.Restaurant); ok {
		r0 = rf(ctx, activeOnly)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]domain.Restaurant)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, bool) error); ok {
		r1 = rf(ctx, activeOnly)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *CatalogRepository) GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error) {
	ret := _m.Called(ctx, id)

	if len(ret) == 0 {
		panic("no return value specified for GetRestaurant")
	}

	var r0 *domain.Restaurant
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, int) (*domain.Restaurant, error)); ok {
		return rf(ctx, id)
	}
	if rf, ok := ret.Get(0).(func(context.Context, int) *domain.Restaurant); ok {
		r0 = rf(ctx, id)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*domain.Restaurant)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, int) error); ok {
		r1 = rf(ctx, id)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *CatalogRepository) CreateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	ret := _m.Called(ctx, item)

	if len(ret) == 0 {
		panic("no return value specified for CreateMenuItem")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *domain.MenuItem) error); ok {
		r0 = rf(ctx, item)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

func (_m *CatalogRepository) ListMenuItems(ctx context.Context, restaurantID int) ([]domain.MenuItem, error) {
	ret := _m.Called(ctx, restaurantID)

	if len(ret) == 0 {
		panic("no return value specified for ListMenuItems")
	}

	var r0 []domain.MenuItem
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, int) ([]domain.MenuItem, error)); ok {
		return rf(ctx, restaurantID)
	}
	if rf, ok := ret.Get(0).(func(context.Context, int) []domain.MenuItem); ok {
		r0 = rf(ctx, restaurantID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]domain.MenuItem)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, int) error); ok {
		r1 = rf(ctx, restaurantID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *CatalogRepository) GetMenuItem(ctx context.Context, id int) (*domain.MenuItem, error) {
	ret := _m.Called(ctx, id)

	if len(ret) == 0 {
		panic("no return value specified for GetMenuItem")
	}

	var r0 *domain.MenuItem
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, int) (*domain.MenuItem, error)); ok {
		return rf(ctx, id)
	}
	if rf, ok := ret.Get(0).(func(context.Context, int) *domain.MenuItem); ok {
		r0 = rf(ctx, id)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*domain.MenuItem)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, int) error); ok {
		r1 = rf(ctx, id)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *CatalogRepository) UpdateMenuItemPrice(ctx context.Context, id int, price decimal.Decimal) error {
	ret := _m.Called(ctx, id, price)

	if len(ret) == 0 {
		panic("no return value specified for UpdateMenuItemPrice")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, int, decimal.Decimal) error); ok {
		r0 = rf(ctx, id, price)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewCatalogRepository creates a new instance of CatalogRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewCatalogRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *CatalogRepository {
	mock := &CatalogRepository{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
