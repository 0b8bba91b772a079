package service

import (
	"context"

	"food-delivery/order-svc/internal/domain"

	"github.com/shopspring/decimal"
)

type CatalogRepository interface {
	CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error
	ListRestaurants(ctx context.Context, activeOnly bool) ([]domain.Restaurant, error)
	GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error)
	CreateMenuItem(ctx context.Context, item *domain.MenuItem) error
	ListMenuItems(ctx context.Context, restaurantID int) ([]domain.MenuItem, error)
	GetMenuItem(ctx context.Context, id int) (*domain.MenuItem, error)
	UpdateMenuItemPrice(ctx context.Context, id int, price decimal.Decimal) error
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrder(ctx context.Context, id int) (*domain.Order, error)
	GetOrderDetails(ctx context.Context, id int) (*domain.OrderDetails, error)
	UpdateOrderStatus(ctx context.Context, id int, status domain.OrderStatus) (*domain.Order, error)
	CancelOrder(ctx context.Context, id int) (*domain.Cancellation, error)
	GetPaymentByOrder(ctx context.Context, orderID int) (*domain.Payment, error)
	SavePayment(ctx context.Context, payment *domain.Payment) error
	UpdatePaymentStatus(ctx context.Context, paymentID int, status domain.PaymentStatus) (*domain.Payment, error)
	SetDeliveryAddress(ctx context.Context, orderID int, address string) (*domain.Delivery, error)
}

type SessionStore interface {
	Get(ctx context.Context, userID string) (domain.Session, error)
	Upsert(ctx context.Context, session domain.Session) error
}

type OrderEventPublisher interface {
	PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error
}

type QRCache interface {
	QRCodeKey(orderID int) string
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

type QRGenerator interface {
	Generate(data string) ([]byte, error)
}

type CatalogServiceInterface interface {
	CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error
	ListRestaurants(ctx context.Context, activeOnly bool) ([]domain.Restaurant, error)
	GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error)
	CreateMenuItem(ctx context.Context, item *domain.MenuItem) error
	ListMenu(ctx context.Context, restaurantID int) ([]domain.MenuItem, error)
	GetMenuItem(ctx context.Context, id int) (*domain.MenuItem, error)
	UpdateMenuItemPrice(ctx context.Context, id int, price decimal.Decimal) error
}

type OrderServiceInterface interface {
	CreateSingleItemOrder(ctx context.Context, userID string, menuItemID int) (*domain.Order, error)
	CreateOrder(ctx context.Context, userID string, restaurantID int, cart []domain.CartItem) (*domain.Order, error)
	GetOrder(ctx context.Context, id int) (*domain.Order, error)
	OrderDetails(ctx context.Context, id int) (*domain.OrderDetails, error)
	UpdateOrderStatus(ctx context.Context, id int, status domain.OrderStatus) (*domain.Order, error)
	CreatePayment(ctx context.Context, orderID int, amount decimal.Decimal, method domain.PaymentMethod) (*domain.Payment, error)
	UpdatePaymentStatus(ctx context.Context, paymentID int, status domain.PaymentStatus) (*domain.Payment, error)
	CancelOrder(ctx context.Context, orderID int) (*domain.CancelResult, error)
	SetDeliveryAddress(ctx context.Context, orderID int, address string) (*domain.Delivery, error)
}

type PaymentQRInterface interface {
	PaymentQRCode(ctx context.Context, orderID int) ([]byte, error)
	QRCodeURL(orderID int) string
}

type ChatServiceInterface interface {
	Handle(ctx context.Context, req domain.ChatRequest) domain.ChatReply
}
