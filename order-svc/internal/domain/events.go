package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderEventType string

const (
	EventOrderCreated         OrderEventType = "order_created"
	EventOrderCancelled       OrderEventType = "order_cancelled"
	EventOrderStatusChanged   OrderEventType = "order_status_changed"
	EventPaymentCreated       OrderEventType = "payment_created"
	EventPaymentStatusChanged OrderEventType = "payment_status_changed"
	EventDeliveryUpdated      OrderEventType = "delivery_updated"
)

type OrderEvent struct {
	Type         OrderEventType  `json:"type"`
	OrderID      int             `json:"order_id"`
	RestaurantID int             `json:"restaurant_id"`
	UserID       string          `json:"user_id,omitempty"`
	Status       string          `json:"status"`
	Amount       decimal.Decimal `json:"amount"`
	Timestamp    time.Time       `json:"timestamp"`
}
