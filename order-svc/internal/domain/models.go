package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderPreparing OrderStatus = "preparing"
	OrderCancelled OrderStatus = "cancelled"
)

// Cancellable reports whether an order in this status may still be cancelled.
func (s OrderStatus) Cancellable() bool {
	return s == OrderPending || s == OrderConfirmed
}

var orderProgress = map[OrderStatus]int{
	OrderPending:   0,
	OrderConfirmed: 1,
	OrderPreparing: 2,
}

func (s OrderStatus) Valid() bool {
	_, ok := orderProgress[s]
	return ok || s == OrderCancelled
}

// CanAdvanceTo reports whether next lies strictly ahead of s on the
// pending, confirmed, preparing path. Cancelled is never reachable here.
func (s OrderStatus) CanAdvanceTo(next OrderStatus) bool {
	from, ok := orderProgress[s]
	if !ok {
		return false
	}
	to, ok := orderProgress[next]
	return ok && to > from
}

type PaymentMethod string

const (
	PaymentOnline PaymentMethod = "online"
	PaymentCOD    PaymentMethod = "cod"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentOnline || m == PaymentCOD
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentRefunded  PaymentStatus = "refunded"
)

func (s PaymentStatus) Valid() bool {
	return s == PaymentPending || s == PaymentCompleted || s == PaymentRefunded
}

type Restaurant struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Address  string          `json:"address"`
	Cuisine  string          `json:"cuisine"`
	Rating   decimal.Decimal `json:"rating"`
	ImageURL string          `json:"image_url"`
	IsActive bool            `json:"is_active"`
}

type MenuItem struct {
	ID           int             `json:"id"`
	RestaurantID int             `json:"restaurant_id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Category     string          `json:"category"`
	ImageURL     string          `json:"image_url"`
}

type Order struct {
	ID           int             `json:"id"`
	UserID       string          `json:"user_id"`
	RestaurantID int             `json:"restaurant_id"`
	Total        decimal.Decimal `json:"total"`
	Status       OrderStatus     `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	Items        []OrderItem     `json:"items"`
}

// OrderItem.Price is the menu price at the time the order was placed.
type OrderItem struct {
	ID         int             `json:"id"`
	OrderID    int             `json:"order_id"`
	MenuItemID int             `json:"menu_item_id"`
	Name       string          `json:"name,omitempty"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
}

func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// OrderTotal sums price times quantity over the items.
func OrderTotal(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}

type Payment struct {
	ID            int             `json:"id"`
	OrderID       int             `json:"order_id"`
	Amount        decimal.Decimal `json:"amount"`
	Method        PaymentMethod   `json:"method"`
	Status        PaymentStatus   `json:"status"`
	TransactionID string          `json:"transaction_id"`
	CreatedAt     time.Time       `json:"created_at"`
}

type Delivery struct {
	ID      int       `json:"id"`
	OrderID int       `json:"order_id"`
	Address string    `json:"address"`
	Date    time.Time `json:"date"`
	Status  string    `json:"status"`
}

type OrderDetails struct {
	Order          Order     `json:"order"`
	RestaurantName string    `json:"restaurant"`
	Payment        *Payment  `json:"payment,omitempty"`
	Delivery       *Delivery `json:"delivery,omitempty"`
}

// AwaitingPayment reports whether the order still needs to be paid: it is
// pending and no completed payment exists for it.
func (d OrderDetails) AwaitingPayment() bool {
	if d.Order.Status != OrderPending {
		return false
	}
	return d.Payment == nil || d.Payment.Status != PaymentCompleted
}

type CartItem struct {
	MenuItemID int `json:"menu_item_id"`
	Quantity   int `json:"quantity"`
}

// Cancellation is the outcome of a committed cancellation.
type Cancellation struct {
	Order    Order    `json:"order"`
	Payment  *Payment `json:"payment,omitempty"`
	Refunded bool     `json:"refunded"`
}

type CancelResult struct {
	Message         string `json:"message"`
	RefundProcessed bool   `json:"refund_processed"`
}

// FormatMoney renders an amount with two decimals, without currency sign.
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}
