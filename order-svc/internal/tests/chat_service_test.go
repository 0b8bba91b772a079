package tests

import (
	"context"
	"errors"
	"strings"
	"testing"

	"food-delivery/order-svc/internal/domain"
	"food-delivery/order-svc/internal/mocks"
	"food-delivery/order-svc/internal/service"
	"food-delivery/order-svc/internal/storage"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type chatFixture struct {
	svc     *service.ChatService
	store   *storage.MemorySessionStore
	catalog *mocks.CatalogServiceInterface
	orders  *mocks.OrderServiceInterface
	qr      *mocks.PaymentQRInterface
}

func newChatFixture(t *testing.T) *chatFixture {
	store := storage.NewMemorySessionStore()
	catalog := mocks.NewCatalogServiceInterface(t)
	orders := mocks.NewOrderServiceInterface(t)
	qr := mocks.NewPaymentQRInterface(t)
	logger, _ := test.NewNullLogger()
	return &chatFixture{
		svc:     service.NewChatService(service.NewSessionManager(store), catalog, orders, qr, nil, logger),
		store:   store,
		catalog: catalog,
		orders:  orders,
		qr:      qr,
	}
}

func (f *chatFixture) say(text string) domain.ChatReply {
	return f.svc.Handle(context.Background(), domain.ChatRequest{
		UserID:   "alice",
		Messages: []domain.ChatMessage{{Role: "user", Content: text}},
	})
}

func (f *chatFixture) setSession(t *testing.T, session domain.Session) {
	session.UserID = "alice"
	require.NoError(t, f.store.Upsert(context.Background(), session))
}

func (f *chatFixture) session(t *testing.T) domain.Session {
	session, err := f.store.Get(context.Background(), "alice")
	require.NoError(t, err)
	return session
}

func intPtr(v int) *int { return &v }

var (
	pizzaPlace = &domain.Restaurant{ID: 1, Name: "Pizza Place", Cuisine: "Italian", IsActive: true}
	margherita = &domain.MenuItem{ID: 1, RestaurantID: 1, Name: "Margherita", Description: "Tomato and mozzarella", Price: decimal.RequireFromString("9.99")}
)

func TestChat_NoMessages(t *testing.T) {
	f := newChatFixture(t)

	reply := f.svc.Handle(context.Background(), domain.ChatRequest{})
	assert.Equal(t, "No messages provided.", reply.Text)
	assert.Equal(t, domain.StateDefault, reply.State)
}

func TestChat_OrderWithCashOnDelivery(t *testing.T) {
	ctx := context.Background()
	f := newChatFixture(t)

	f.catalog.On("ListRestaurants", ctx, true).Return([]domain.Restaurant{*pizzaPlace}, nil).Once()
	reply := f.say("new order")
	assert.Equal(t, domain.StateSelectingRestaurant, reply.State)
	assert.Equal(t, domain.ReplyRestaurantList, reply.Kind)
	assert.Equal(t, "Choose a restaurant:\n1. Pizza Place (Italian)", reply.Text)

	f.catalog.On("GetRestaurant", ctx, 1).Return(pizzaPlace, nil)
	f.catalog.On("ListMenu", ctx, 1).Return([]domain.MenuItem{*margherita}, nil).Once()
	reply = f.say("1")
	assert.Equal(t, domain.StateSelectingMenuItem, reply.State)
	assert.Contains(t, reply.Text, "Menu for Pizza Place:\n1. Margherita - $9.99\n   Tomato and mozzarella\n")

	f.catalog.On("GetMenuItem", ctx, 1).Return(margherita, nil).Once()
	order := &domain.Order{ID: 77, RestaurantID: 1, Total: decimal.RequireFromString("9.99"), Status: domain.OrderPending}
	f.orders.On("CreateSingleItemOrder", ctx, "alice", 1).Return(order, nil).Once()
	reply = f.say("1")
	assert.Equal(t, domain.StateAwaitingPayment, reply.State)
	require.NotNil(t, reply.OrderID)
	assert.Equal(t, 77, *reply.OrderID)
	assert.Contains(t, reply.Text, "Order #77\nTotal: $9.99")
	assert.Contains(t, reply.Text, "1. Pay Now (Online Payment)\n2. Cash on Delivery (COD)")

	f.orders.On("GetOrder", ctx, 77).Return(order, nil).Once()
	f.orders.On("CreatePayment", ctx, 77, order.Total, domain.PaymentCOD).
		Return(&domain.Payment{ID: 3, OrderID: 77, Method: domain.PaymentCOD, Status: domain.PaymentPending}, nil).Once()
	reply = f.say("2")
	assert.Equal(t, domain.StateOrderConfirmed, reply.State)
	assert.Equal(t, domain.ReplyCODConfirmed, reply.Kind)
	assert.True(t, strings.HasPrefix(reply.Text, "Cash on Delivery selected for Order #77.\nTotal amount: $9.99"))
	assert.Contains(t, reply.Text, "1. Track this order")

	session := f.session(t)
	assert.Equal(t, domain.StateOrderConfirmed, session.State)
	assert.Equal(t, 77, *session.CurrentOrderID)
	assert.Equal(t, 1, *session.LastRestaurantID)
	assert.Equal(t, 1, *session.LastMenuItemID)
}

func TestChat_PayNowReturnsQRCodeURL(t *testing.T) {
	ctx := context.Background()
	f := newChatFixture(t)
	f.setSession(t, domain.Session{State: domain.StateAwaitingPayment, CurrentOrderID: intPtr(77)})

	order := &domain.Order{ID: 77, RestaurantID: 1, Total: decimal.RequireFromString("9.99"), Status: domain.OrderPending}
	f.orders.On("GetOrder", ctx, 77).Return(order, nil).Once()
	f.orders.On("CreatePayment", ctx, 77, order.Total, domain.PaymentOnline).
		Return(&domain.Payment{ID: 3, OrderID: 77, Status: domain.PaymentPending}, nil).Once()
	f.catalog.On("GetRestaurant", ctx, 1).Return(pizzaPlace, nil).Once()
	f.qr.On("QRCodeURL", 77).Return("http://localhost:8000/get_qr_code/77").Once()

	reply := f.say("pay now")
	assert.Equal(t, domain.StatePaymentInitiated, reply.State)
	assert.Equal(t, domain.ReplyPaymentQR, reply.Kind)
	assert.Equal(t, "http://localhost:8000/get_qr_code/77", reply.QRCodeURL)
	assert.Contains(t, reply.Text, "complete your payment of $9.99.\nOrder #77\nRestaurant: Pizza Place")
}

func TestChat_InvalidOptionReprompts(t *testing.T) {
	f := newChatFixture(t)
	f.setSession(t, domain.Session{State: domain.StateAwaitingPayment, CurrentOrderID: intPtr(77)})

	reply := f.say("maybe later")
	assert.Equal(t, domain.StateAwaitingPayment, reply.State)
	assert.Equal(t, domain.ReplyInvalidOption, reply.Kind)
	assert.Equal(t, "Please choose a valid payment method:\n1. Pay Now (Online Payment)\n2. Cash on Delivery (COD)", reply.Text)
}

func TestChat_TrackOrder(t *testing.T) {
	ctx := context.Background()
	order := domain.Order{
		ID: 42, Status: domain.OrderPending, Total: decimal.RequireFromString("9.99"),
		Items: []domain.OrderItem{{Name: "Margherita", Quantity: 1, Price: decimal.RequireFromString("9.99")}},
	}

	tests := []struct {
		name      string
		details   *domain.OrderDetails
		wantState domain.ChatState
		wantText  string
	}{
		{
			name:      "pending unpaid order can be managed",
			details:   &domain.OrderDetails{Order: order, RestaurantName: "Pizza Place"},
			wantState: domain.StateManagingOrder,
			wantText:  "1. Pay Now\n2. Cancel Order",
		},
		{
			name: "pending order with pending payment can be managed",
			details: &domain.OrderDetails{Order: order, RestaurantName: "Pizza Place",
				Payment: &domain.Payment{Status: domain.PaymentPending}},
			wantState: domain.StateManagingOrder,
			wantText:  "Payment: pending",
		},
		{
			name: "confirmed order returns to default",
			details: &domain.OrderDetails{Order: func() domain.Order { o := order; o.Status = domain.OrderConfirmed; return o }(),
				RestaurantName: "Pizza Place", Payment: &domain.Payment{Status: domain.PaymentCompleted}},
			wantState: domain.StateDefault,
			wantText:  "Order #42 Status: confirmed",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			f := newChatFixture(t)
			f.orders.On("OrderDetails", ctx, 42).Return(testCase.details, nil).Once()

			reply := f.svc.Handle(ctx, domain.ChatRequest{
				UserID:   "alice",
				OrderID:  intPtr(42),
				Messages: []domain.ChatMessage{{Role: "user", Content: "track my order"}},
			})
			assert.Equal(t, testCase.wantState, reply.State)
			assert.Equal(t, domain.ReplyOrderSummary, reply.Kind)
			assert.Contains(t, reply.Text, "- Margherita: $9.99")
			assert.Contains(t, reply.Text, testCase.wantText)
			if testCase.wantState == domain.StateManagingOrder {
				assert.Equal(t, 42, *f.session(t).CurrentOrderID)
			}
		})
	}
}

func TestChat_TrackWithoutOrderIDAsksForIt(t *testing.T) {
	ctx := context.Background()
	f := newChatFixture(t)

	reply := f.say("where is my food")
	assert.Equal(t, domain.StateDefault, reply.State)
	assert.Equal(t, "Please enter your order ID to track your order.", reply.Text)
	assert.Equal(t, domain.AwaitingOrderID, f.session(t).AwaitingSelectionFor)

	f.orders.On("OrderDetails", ctx, 404).Return(nil, domain.Errorf(domain.ErrNotFound, "Order not found")).Once()
	reply = f.say("404")
	assert.Equal(t, domain.StateDefault, reply.State)
	assert.Equal(t, "Order not found. Please check your order ID.", reply.Text)
}

func TestChat_CancellationFlow(t *testing.T) {
	ctx := context.Background()
	f := newChatFixture(t)

	reply := f.say("cancel order")
	assert.Equal(t, domain.StateCancellationFlow, reply.State)
	assert.Equal(t, "Please enter your order ID to proceed with cancellation.", reply.Text)

	reply = f.say("the pizza one")
	assert.Equal(t, domain.StateCancellationFlow, reply.State)
	assert.Equal(t, "Please enter a valid order ID (numbers only).", reply.Text)

	f.orders.On("CancelOrder", ctx, 42).Return(&domain.CancelResult{
		Message:         "Order #42 has been cancelled successfully. A refund of $25.00 has been processed.",
		RefundProcessed: true,
	}, nil).Once()
	reply = f.say("42")
	assert.Equal(t, domain.StatePostCancellation, reply.State)
	assert.Equal(t, domain.ReplyCancellation, reply.Kind)
	assert.Contains(t, reply.Text, "A refund of $25.00 has been processed.")
	assert.Contains(t, reply.Text, "Your refund will be processed within 7 working days.")
	assert.Contains(t, reply.Text, "1. Talk to a real agent\n2. Place a new order\n3. Track another order")

	reply = f.say("3")
	assert.Equal(t, domain.StateDefault, reply.State)
	assert.Equal(t, "Please enter the order ID you'd like to track.", reply.Text)
	assert.Equal(t, domain.AwaitingOrderID, f.session(t).AwaitingSelectionFor)
}

func TestChat_CancellationFlowFailureStays(t *testing.T) {
	ctx := context.Background()
	f := newChatFixture(t)
	f.setSession(t, domain.Session{State: domain.StateCancellationFlow, AwaitingSelectionFor: domain.AwaitingOrderID})

	f.orders.On("CancelOrder", ctx, 42).
		Return(nil, domain.Errorf(domain.ErrConflict, "Order cannot be cancelled in its current status: cancelled")).Once()
	reply := f.say("42")
	assert.Equal(t, domain.StateCancellationFlow, reply.State)
	assert.True(t, strings.HasPrefix(reply.Text, "Order cannot be cancelled in its current status: cancelled."))

	reply = f.say("menu")
	assert.Equal(t, domain.StateDefault, reply.State)
}

func TestChat_CancelCurrentOrder(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		state domain.ChatState
		input string
	}{
		{name: "managing order by number", state: domain.StateManagingOrder, input: "2"},
		{name: "managing order by word", state: domain.StateManagingOrder, input: "cancel"},
		{name: "payment initiated by number", state: domain.StatePaymentInitiated, input: "1"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			f := newChatFixture(t)
			f.setSession(t, domain.Session{State: testCase.state, CurrentOrderID: intPtr(42)})

			f.orders.On("CancelOrder", ctx, 42).Return(&domain.CancelResult{Message: "Order #42 has been cancelled successfully."}, nil).Once()
			reply := f.say(testCase.input)
			assert.Equal(t, domain.StateDefault, reply.State)
			assert.Equal(t, domain.ReplyCancellation, reply.Kind)
			assert.Equal(t, "Order #42 has been cancelled successfully.", reply.Text)
			assert.Equal(t, domain.StateDefault, f.session(t).State)
		})
	}
}

func TestChat_ManagingOrderPayNow(t *testing.T) {
	ctx := context.Background()
	f := newChatFixture(t)
	f.setSession(t, domain.Session{State: domain.StateManagingOrder, CurrentOrderID: intPtr(42)})

	order := &domain.Order{ID: 42, RestaurantID: 1, Total: decimal.RequireFromString("12.50"), Status: domain.OrderPending}
	f.orders.On("GetOrder", ctx, 42).Return(order, nil).Once()
	f.orders.On("CreatePayment", ctx, 42, order.Total, domain.PaymentOnline).
		Return(&domain.Payment{ID: 8, OrderID: 42, Status: domain.PaymentPending}, nil).Once()
	f.catalog.On("GetRestaurant", ctx, 1).Return(pizzaPlace, nil).Once()
	f.qr.On("QRCodeURL", 42).Return("http://localhost:8000/get_qr_code/42").Once()

	reply := f.say("1")
	assert.Equal(t, domain.StatePaymentInitiated, reply.State)
	assert.Equal(t, "http://localhost:8000/get_qr_code/42", reply.QRCodeURL)
	assert.Contains(t, reply.Text, "1. Cancel this order\n2. Track this order\n3. Talk to a real agent")
	assert.Equal(t, domain.StatePaymentInitiated, f.session(t).State)
}

func TestChat_PostCancellationOptions(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantKind     domain.ReplyKind
		wantText     string
		wantAwaiting domain.SelectionTarget
	}{
		{
			name:     "talk to agent",
			input:    "1",
			wantKind: domain.ReplyAgent,
			wantText: "Connecting you to a real agent. Please wait a moment...\n\nIn the meantime, you can type 'new order' to place a new order or 'track order' to track another order.",
		},
		{
			name:     "place a new order",
			input:    "2",
			wantKind: domain.ReplyPrompt,
			wantText: "Let's place a new order! Type 'new order' to begin.",
		},
		{
			name:         "track another order",
			input:        "3",
			wantKind:     domain.ReplyPrompt,
			wantText:     "Please enter the order ID you'd like to track.",
			wantAwaiting: domain.AwaitingOrderID,
		},
		{
			name:     "unknown option re-prompts",
			input:    "4",
			wantKind: domain.ReplyInvalidOption,
			wantText: "Please choose a valid option:\n1. Talk to a real agent\n2. Place a new order\n3. Track another order",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			f := newChatFixture(t)
			f.setSession(t, domain.Session{State: domain.StatePostCancellation})

			reply := f.say(testCase.input)
			assert.Equal(t, testCase.wantKind, reply.Kind)
			assert.Equal(t, testCase.wantText, reply.Text)
			if testCase.wantKind == domain.ReplyInvalidOption {
				assert.Equal(t, domain.StatePostCancellation, reply.State)
			} else {
				assert.Equal(t, domain.StateDefault, reply.State)
			}
			assert.Equal(t, testCase.wantAwaiting, f.session(t).AwaitingSelectionFor)
		})
	}
}

func TestChat_PostOrderOptions(t *testing.T) {
	ctx := context.Background()

	t.Run("cancel asks to confirm order id", func(t *testing.T) {
		f := newChatFixture(t)
		f.setSession(t, domain.Session{State: domain.StateOrderConfirmed, CurrentOrderID: intPtr(42)})

		reply := f.say("2")
		assert.Equal(t, domain.StateCancellationFlow, reply.State)
		assert.Equal(t, "Please confirm your order ID to proceed with cancellation.", reply.Text)
	})

	t.Run("track shows summary", func(t *testing.T) {
		f := newChatFixture(t)
		f.setSession(t, domain.Session{State: domain.StatePaymentInitiated, CurrentOrderID: intPtr(42)})
		f.orders.On("OrderDetails", ctx, 42).Return(&domain.OrderDetails{
			Order:          domain.Order{ID: 42, Status: domain.OrderPending, Total: decimal.NewFromInt(5)},
			RestaurantName: "Pizza Place",
		}, nil).Once()

		reply := f.say("2")
		assert.Equal(t, domain.StateTracking, reply.State)
		assert.Contains(t, reply.Text, "Order #42 Status: pending")
	})

	t.Run("agent", func(t *testing.T) {
		f := newChatFixture(t)
		f.setSession(t, domain.Session{State: domain.StatePostOrder, CurrentOrderID: intPtr(42)})

		reply := f.say("3")
		assert.Equal(t, domain.StateDefault, reply.State)
		assert.Equal(t, domain.ReplyAgent, reply.Kind)
	})
}

func TestChat_InvalidSelections(t *testing.T) {
	ctx := context.Background()

	t.Run("inactive restaurant", func(t *testing.T) {
		f := newChatFixture(t)
		f.setSession(t, domain.Session{State: domain.StateSelectingRestaurant, AwaitingSelectionFor: domain.AwaitingRestaurant})
		f.catalog.On("GetRestaurant", ctx, 2).Return(&domain.Restaurant{ID: 2, IsActive: false}, nil).Once()

		reply := f.say("2")
		assert.Equal(t, domain.StateSelectingRestaurant, reply.State)
		assert.Equal(t, "Invalid restaurant selection.", reply.Text)
	})

	t.Run("menu item of another restaurant", func(t *testing.T) {
		f := newChatFixture(t)
		f.setSession(t, domain.Session{State: domain.StateSelectingMenuItem, AwaitingSelectionFor: domain.AwaitingMenuItem, LastRestaurantID: intPtr(1)})
		f.catalog.On("GetMenuItem", ctx, 9).Return(&domain.MenuItem{ID: 9, RestaurantID: 2}, nil).Once()

		reply := f.say("9")
		assert.Equal(t, domain.StateSelectingMenuItem, reply.State)
		assert.Equal(t, "Invalid menu item selection.", reply.Text)
	})

	t.Run("text while selecting re-prompts", func(t *testing.T) {
		f := newChatFixture(t)
		f.setSession(t, domain.Session{State: domain.StateSelectingMenuItem, AwaitingSelectionFor: domain.AwaitingMenuItem})

		reply := f.say("something spicy")
		assert.Equal(t, domain.StateSelectingMenuItem, reply.State)
		assert.Equal(t, domain.ReplyPrompt, reply.Kind)
	})

	t.Run("no restaurants", func(t *testing.T) {
		f := newChatFixture(t)
		f.catalog.On("ListRestaurants", ctx, true).Return(nil, nil).Once()

		reply := f.say("new order")
		assert.Equal(t, domain.StateDefault, reply.State)
		assert.Equal(t, "No restaurants available at the moment.", reply.Text)
	})
}

func TestChat_HelpResetsToDefault(t *testing.T) {
	f := newChatFixture(t)
	f.setSession(t, domain.Session{State: domain.StateTracking})

	reply := f.say("hi")
	assert.Equal(t, domain.StateDefault, reply.State)
	assert.Equal(t, domain.ReplyHelp, reply.Kind)
	assert.Contains(t, reply.Text, "I can help you with:")
}

func TestChat_UnexpectedErrorKeepsState(t *testing.T) {
	ctx := context.Background()
	f := newChatFixture(t)
	f.setSession(t, domain.Session{State: domain.StateSelectingRestaurant, AwaitingSelectionFor: domain.AwaitingRestaurant})

	f.catalog.On("GetRestaurant", ctx, 1).Return(nil, errors.New("connection refused")).Once()
	reply := f.say("1")
	assert.Equal(t, "Something went wrong. Please try again later.", reply.Text)
	assert.Equal(t, domain.StateSelectingRestaurant, reply.State)
	assert.Equal(t, domain.StateSelectingRestaurant, f.session(t).State)
}

func TestChat_RecordsTransitions(t *testing.T) {
	store := storage.NewMemorySessionStore()
	recorder := mocks.NewTransitionRecorder(t)
	logger, _ := test.NewNullLogger()
	svc := service.NewChatService(service.NewSessionManager(store),
		mocks.NewCatalogServiceInterface(t), mocks.NewOrderServiceInterface(t), mocks.NewPaymentQRInterface(t), recorder, logger)

	recorder.On("ObserveTransition", domain.StateDefault, domain.StateCancellationFlow).Once()
	reply := svc.Handle(context.Background(), domain.ChatRequest{
		Messages: []domain.ChatMessage{{Role: "user", Content: "cancel order"}},
	})
	assert.Equal(t, domain.StateCancellationFlow, reply.State)

	session, err := store.Get(context.Background(), service.DefaultUserID)
	require.NoError(t, err)
	assert.Equal(t, domain.StateCancellationFlow, session.State)
	recorder.AssertCalled(t, "ObserveTransition", mock.Anything, mock.Anything)
}
