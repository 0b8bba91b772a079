package domain

type ChatState string

const (
	StateDefault             ChatState = "default"
	StateSelectingRestaurant ChatState = "selecting_restaurant"
	StateSelectingMenuItem   ChatState = "selecting_menu_item"
	StateAwaitingPayment     ChatState = "awaiting_payment"
	StateManagingOrder       ChatState = "managing_order"
	StatePaymentInitiated    ChatState = "payment_initiated"
	StateOrderConfirmed      ChatState = "order_confirmed"
	StatePostOrder           ChatState = "post_order"
	StatePostCancellation    ChatState = "post_cancellation"
	StateCancellationFlow    ChatState = "cancellation_flow"
	StateTracking            ChatState = "tracking"
)

// SelectionTarget says what a bare number typed by the user refers to.
type SelectionTarget string

const (
	AwaitingNothing    SelectionTarget = ""
	AwaitingRestaurant SelectionTarget = "restaurant"
	AwaitingMenuItem   SelectionTarget = "menu_item"
	AwaitingOrderID    SelectionTarget = "order_id"
)

type Session struct {
	UserID               string          `json:"user_id"`
	State                ChatState       `json:"state"`
	CurrentOrderID       *int            `json:"current_order_id,omitempty"`
	LastRestaurantID     *int            `json:"last_restaurant_id,omitempty"`
	LastMenuItemID       *int            `json:"last_menu_item_id,omitempty"`
	AwaitingSelectionFor SelectionTarget `json:"awaiting_selection_for,omitempty"`
}

func NewSession(userID string) Session {
	return Session{UserID: userID, State: StateDefault}
}

// SessionPatch holds the fields of a partial session update. Nil fields are
// left untouched.
type SessionPatch struct {
	State                *ChatState
	CurrentOrderID       *int
	LastRestaurantID     *int
	LastMenuItemID       *int
	AwaitingSelectionFor *SelectionTarget
}

func (s *Session) Apply(p SessionPatch) {
	if p.State != nil {
		s.State = *p.State
	}
	if p.CurrentOrderID != nil {
		id := *p.CurrentOrderID
		s.CurrentOrderID = &id
	}
	if p.LastRestaurantID != nil {
		id := *p.LastRestaurantID
		s.LastRestaurantID = &id
	}
	if p.LastMenuItemID != nil {
		id := *p.LastMenuItemID
		s.LastMenuItemID = &id
	}
	if p.AwaitingSelectionFor != nil {
		s.AwaitingSelectionFor = *p.AwaitingSelectionFor
	}
}
