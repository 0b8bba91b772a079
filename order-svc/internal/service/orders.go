package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"food-delivery/order-svc/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// OrderService turns catalog selections into orders and drives their payment
// and cancellation. Persistence of each step is a single repository call so
// that the multi-row updates stay atomic.
type OrderService struct {
	catalog   CatalogRepository
	orders    OrderRepository
	publisher OrderEventPublisher
	log       logrus.FieldLogger
	now       func() time.Time
}

func NewOrderService(catalog CatalogRepository, orders OrderRepository, publisher OrderEventPublisher, log logrus.FieldLogger) *OrderService {
	return &OrderService{
		catalog:   catalog,
		orders:    orders,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

// CreateSingleItemOrder places a pending order for one unit of a menu item,
// priced at the item's current price.
func (s *OrderService) CreateSingleItemOrder(ctx context.Context, userID string, menuItemID int) (*domain.Order, error) {
	item, err := s.catalog.GetMenuItem(ctx, menuItemID)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		UserID:       userID,
		RestaurantID: item.RestaurantID,
		Status:       domain.OrderPending,
		Items: []domain.OrderItem{{
			MenuItemID: item.ID,
			Name:       item.Name,
			Quantity:   1,
			Price:      item.Price,
		}},
	}
	order.Total = domain.OrderTotal(order.Items)

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, err
	}
	s.publish(ctx, domain.EventOrderCreated, order, string(order.Status), order.Total)
	return order, nil
}

// CreateOrder places a pending order for a cart. Every item must belong to
// the given restaurant and have a positive quantity.
func (s *OrderService) CreateOrder(ctx context.Context, userID string, restaurantID int, cart []domain.CartItem) (*domain.Order, error) {
	if len(cart) == 0 {
		return nil, domain.Errorf(domain.ErrInvalidInput, "Order must contain at least one item")
	}
	if _, err := s.catalog.GetRestaurant(ctx, restaurantID); err != nil {
		return nil, err
	}

	order := &domain.Order{
		UserID:       userID,
		RestaurantID: restaurantID,
		Status:       domain.OrderPending,
	}
	for _, line := range cart {
		if line.Quantity <= 0 {
			return nil, domain.Errorf(domain.ErrInvalidInput, "Quantity must be positive for menu item %d", line.MenuItemID)
		}
		item, err := s.catalog.GetMenuItem(ctx, line.MenuItemID)
		if err != nil {
			return nil, err
		}
		if item.RestaurantID != restaurantID {
			return nil, domain.Errorf(domain.ErrInvalidInput, "Menu item %d does not belong to restaurant %d", item.ID, restaurantID)
		}
		order.Items = append(order.Items, domain.OrderItem{
			MenuItemID: item.ID,
			Name:       item.Name,
			Quantity:   line.Quantity,
			Price:      item.Price,
		})
	}
	order.Total = domain.OrderTotal(order.Items)

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, err
	}
	s.publish(ctx, domain.EventOrderCreated, order, string(order.Status), order.Total)
	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id int) (*domain.Order, error) {
	return s.orders.GetOrder(ctx, id)
}

func (s *OrderService) OrderDetails(ctx context.Context, id int) (*domain.OrderDetails, error) {
	return s.orders.GetOrderDetails(ctx, id)
}

// UpdateOrderStatus advances an order towards preparing. Orders are
// cancelled with CancelOrder only.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id int, status domain.OrderStatus) (*domain.Order, error) {
	switch {
	case status == domain.OrderCancelled:
		return nil, domain.Errorf(domain.ErrInvalidInput, "Use cancel_order to cancel an order")
	case !status.Valid():
		return nil, domain.Errorf(domain.ErrInvalidInput, "Unknown order status: %s", status)
	}
	order, err := s.orders.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, domain.EventOrderStatusChanged, order, string(order.Status), order.Total)
	return order, nil
}

// CreatePayment records a pending payment for the order. A zero amount means
// the order total. It does not change the order status.
func (s *OrderService) CreatePayment(ctx context.Context, orderID int, amount decimal.Decimal, method domain.PaymentMethod) (*domain.Payment, error) {
	if !method.Valid() {
		return nil, domain.Errorf(domain.ErrInvalidInput, "Unknown payment method: %s", method)
	}
	if amount.IsNegative() {
		return nil, domain.Errorf(domain.ErrInvalidInput, "Amount must not be negative")
	}

	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if amount.IsZero() {
		amount = order.Total
	}

	payment := &domain.Payment{
		OrderID:       orderID,
		Amount:        amount,
		Method:        method,
		Status:        domain.PaymentPending,
		TransactionID: fmt.Sprintf("TR-%d-%s", orderID, uuid.NewString()),
	}
	if err := s.orders.SavePayment(ctx, payment); err != nil {
		return nil, err
	}
	s.publish(ctx, domain.EventPaymentCreated, order, string(payment.Status), payment.Amount)
	return payment, nil
}

// UpdatePaymentStatus is the payment confirmation entry point. Completing an
// online payment confirms the order. Refunds are issued by CancelOrder.
func (s *OrderService) UpdatePaymentStatus(ctx context.Context, paymentID int, status domain.PaymentStatus) (*domain.Payment, error) {
	switch {
	case status == domain.PaymentRefunded:
		return nil, domain.Errorf(domain.ErrInvalidInput, "Payments are refunded by cancelling the order")
	case !status.Valid():
		return nil, domain.Errorf(domain.ErrInvalidInput, "Unknown payment status: %s", status)
	}
	payment, err := s.orders.UpdatePaymentStatus(ctx, paymentID, status)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, domain.EventPaymentStatusChanged, &domain.Order{ID: payment.OrderID}, string(payment.Status), payment.Amount)
	return payment, nil
}

// CancelOrder cancels a pending or confirmed order and refunds a completed
// payment.
func (s *OrderService) CancelOrder(ctx context.Context, orderID int) (*domain.CancelResult, error) {
	cancellation, err := s.orders.CancelOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Order #%d has been cancelled successfully.", orderID)
	if cancellation.Refunded {
		message += fmt.Sprintf(" A refund of $%s has been processed.", domain.FormatMoney(cancellation.Order.Total))
	}

	s.publish(ctx, domain.EventOrderCancelled, &cancellation.Order, string(cancellation.Order.Status), cancellation.Order.Total)
	return &domain.CancelResult{Message: message, RefundProcessed: cancellation.Refunded}, nil
}

func (s *OrderService) SetDeliveryAddress(ctx context.Context, orderID int, address string) (*domain.Delivery, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, domain.Errorf(domain.ErrInvalidInput, "Delivery address is required")
	}
	delivery, err := s.orders.SetDeliveryAddress(ctx, orderID, address)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, domain.EventDeliveryUpdated, &domain.Order{ID: orderID}, delivery.Status, decimal.Zero)
	return delivery, nil
}

// publish is best effort: the order change is already committed.
func (s *OrderService) publish(ctx context.Context, eventType domain.OrderEventType, order *domain.Order, status string, amount decimal.Decimal) {
	if s.publisher == nil {
		return
	}
	event := domain.OrderEvent{
		Type:         eventType,
		OrderID:      order.ID,
		RestaurantID: order.RestaurantID,
		UserID:       order.UserID,
		Status:       status,
		Amount:       amount,
		Timestamp:    s.now().UTC(),
	}
	if err := s.publisher.PublishOrderEvent(ctx, event); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"event":    eventType,
			"order_id": order.ID,
		}).Warn("failed to publish order event")
	}
}

var _ OrderServiceInterface = (*OrderService)(nil)
