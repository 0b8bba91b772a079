package service

import (
	"context"
	"strings"

	"food-delivery/order-svc/internal/domain"

	"github.com/shopspring/decimal"
)

type CatalogService struct {
	repo CatalogRepository
}

func NewCatalogService(repo CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	rest.Name = strings.TrimSpace(rest.Name)
	if rest.Name == "" {
		return domain.Errorf(domain.ErrInvalidInput, "Restaurant name is required")
	}
	return s.repo.CreateRestaurant(ctx, rest)
}

func (s *CatalogService) ListRestaurants(ctx context.Context, activeOnly bool) ([]domain.Restaurant, error) {
	return s.repo.ListRestaurants(ctx, activeOnly)
}

func (s *CatalogService) GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error) {
	return s.repo.GetRestaurant(ctx, id)
}

// CreateMenuItem adds an item to an existing restaurant's menu.
func (s *CatalogService) CreateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return domain.Errorf(domain.ErrInvalidInput, "Menu item name is required")
	}
	if item.Price.IsNegative() {
		return domain.Errorf(domain.ErrInvalidInput, "Price must not be negative")
	}
	if _, err := s.repo.GetRestaurant(ctx, item.RestaurantID); err != nil {
		return err
	}
	if item.Category == "" {
		item.Category = "Other"
	}
	return s.repo.CreateMenuItem(ctx, item)
}

func (s *CatalogService) ListMenu(ctx context.Context, restaurantID int) ([]domain.MenuItem, error) {
	return s.repo.ListMenuItems(ctx, restaurantID)
}

func (s *CatalogService) GetMenuItem(ctx context.Context, id int) (*domain.MenuItem, error) {
	return s.repo.GetMenuItem(ctx, id)
}

func (s *CatalogService) UpdateMenuItemPrice(ctx context.Context, id int, price decimal.Decimal) error {
	if price.IsNegative() {
		return domain.Errorf(domain.ErrInvalidInput, "Price must not be negative")
	}
	return s.repo.UpdateMenuItemPrice(ctx, id, price)
}

var _ CatalogServiceInterface = (*CatalogService)(nil)
