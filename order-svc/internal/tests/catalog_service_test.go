package tests

import (
	"context"
	"testing"

	"food-delivery/order-svc/internal/domain"
	"food-delivery/order-svc/internal/mocks"
	"food-delivery/order-svc/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCatalogService_CreateRestaurant(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewCatalogRepository(t)
	svc := service.NewCatalogService(repo)

	err := svc.CreateRestaurant(ctx, &domain.Restaurant{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	repo.On("CreateRestaurant", ctx, mock.MatchedBy(func(r *domain.Restaurant) bool {
		return r.Name == "Pizza Place"
	})).Return(nil).Once()
	assert.NoError(t, svc.CreateRestaurant(ctx, &domain.Restaurant{Name: " Pizza Place "}))
}

func TestCatalogService_CreateMenuItem(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		item      domain.MenuItem
		setupMock func(*mocks.CatalogRepository)
		wantErr   error
	}{
		{
			name: "valid item gets default category",
			item: domain.MenuItem{RestaurantID: 1, Name: "Soup", Price: decimal.RequireFromString("4.50")},
			setupMock: func(m *mocks.CatalogRepository) {
				m.On("GetRestaurant", ctx, 1).Return(&domain.Restaurant{ID: 1}, nil).Once()
				m.On("CreateMenuItem", ctx, mock.MatchedBy(func(i *domain.MenuItem) bool {
					return i.Category == "Other"
				})).Return(nil).Once()
			},
		},
		{
			name:      "missing name",
			item:      domain.MenuItem{RestaurantID: 1, Price: decimal.NewFromInt(1)},
			setupMock: func(m *mocks.CatalogRepository) {},
			wantErr:   domain.ErrInvalidInput,
		},
		{
			name:      "negative price",
			item:      domain.MenuItem{RestaurantID: 1, Name: "Soup", Price: decimal.NewFromInt(-1)},
			setupMock: func(m *mocks.CatalogRepository) {},
			wantErr:   domain.ErrInvalidInput,
		},
		{
			name: "unknown restaurant",
			item: domain.MenuItem{RestaurantID: 9, Name: "Soup", Price: decimal.NewFromInt(1)},
			setupMock: func(m *mocks.CatalogRepository) {
				m.On("GetRestaurant", ctx, 9).Return(nil, domain.Errorf(domain.ErrNotFound, "Restaurant not found")).Once()
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo := mocks.NewCatalogRepository(t)
			svc := service.NewCatalogService(repo)
			testCase.setupMock(repo)

			item := testCase.item
			err := svc.CreateMenuItem(ctx, &item)
			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCatalogService_UpdateMenuItemPrice(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewCatalogRepository(t)
	svc := service.NewCatalogService(repo)

	assert.ErrorIs(t, svc.UpdateMenuItemPrice(ctx, 1, decimal.NewFromInt(-5)), domain.ErrInvalidInput)

	price := decimal.RequireFromString("11.00")
	repo.On("UpdateMenuItemPrice", ctx, 1, price).Return(nil).Once()
	assert.NoError(t, svc.UpdateMenuItemPrice(ctx, 1, price))
}
