package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"food-delivery/order-svc/internal/domain"

	"github.com/sirupsen/logrus"
)

const (
	DefaultUserID = "default"

	msgNoMessages      = "No messages provided."
	msgSomethingWrong  = "Something went wrong. Please try again later."
	msgOrderNotFound   = "Order not found. Please check your order ID."
	msgNoCurrentOrder  = "Order not found. Please try placing a new order."
	msgAskTrackID      = "Please enter your order ID to track your order."
	msgAskCancelID     = "Please enter your order ID to proceed with cancellation."
	msgConfirmCancelID = "Please confirm your order ID to proceed with cancellation."
	msgDigitsOnly      = "Please enter a valid order ID (numbers only)."
	msgAgent           = "Connecting you to a real agent. Please wait a moment..."
	msgNoRestaurants   = "No restaurants available at the moment."
	msgBadRestaurant   = "Invalid restaurant selection."
	msgEmptyMenu       = "No menu items available for this restaurant. Please choose another restaurant."
	msgBadMenuItem     = "Invalid menu item selection."
	msgOrderFailed     = "Sorry, there was an error creating your order. Please try again."
	msgPickRestaurant  = "Please enter the number of a restaurant from the list."
	msgPickMenuItem    = "Please enter the number of the item you want to order."
	msgBackToMenu      = "Okay, back to the main menu. Type 'new order' to place an order or 'track order' to track one."
	msgStartNewOrder   = "Let's place a new order! Type 'new order' to begin."
	msgAskTrackAnother = "Please enter the order ID you'd like to track."

	msgHelp = "I can help you with:\n" +
		"1. Track an order - type 'track order'\n" +
		"2. Place a new order - type 'new order'\n" +
		"What would you like to do?"

	paymentMenu = "Please choose your payment method:\n" +
		"1. Pay Now (Online Payment)\n" +
		"2. Cash on Delivery (COD)"
	postOrderMenu = "Would you like to:\n" +
		"1. Track this order\n" +
		"2. Cancel this order\n" +
		"3. Talk to a real agent"
	paymentInitiatedMenu = "Would you like to:\n" +
		"1. Cancel this order\n" +
		"2. Track this order\n" +
		"3. Talk to a real agent"
	postCancellationMenu = "Would you like to:\n" +
		"1. Talk to a real agent\n" +
		"2. Place a new order\n" +
		"3. Track another order"
)

// repromptText is shown when input does not match the current state's menu.
var repromptText = map[domain.ChatState]string{
	domain.StateAwaitingPayment:  "Please choose a valid payment method:\n1. Pay Now (Online Payment)\n2. Cash on Delivery (COD)",
	domain.StateManagingOrder:    "Please choose a valid option:\n1. Pay Now\n2. Cancel Order",
	domain.StatePaymentInitiated: "Please choose a valid option:\n1. Cancel this order\n2. Track this order\n3. Talk to a real agent",
	domain.StatePostOrder:        "Please choose a valid option:\n1. Track this order\n2. Cancel this order\n3. Talk to a real agent",
	domain.StateOrderConfirmed:   "Please choose a valid option:\n1. Track this order\n2. Cancel this order\n3. Talk to a real agent",
	domain.StatePostCancellation: "Please choose a valid option:\n1. Talk to a real agent\n2. Place a new order\n3. Track another order",
}

var backToMenuWords = map[string]bool{"menu": true, "back": true, "main menu": true, "exit": true}

// TransitionRecorder observes state changes, typically for metrics.
type TransitionRecorder interface {
	ObserveTransition(from, to domain.ChatState)
}

// ChatService runs the ordering conversation. Each call handles one user
// message against the stored session and persists the resulting state.
type ChatService struct {
	sessions *SessionManager
	catalog  CatalogServiceInterface
	orders   OrderServiceInterface
	qr       PaymentQRInterface
	recorder TransitionRecorder
	log      logrus.FieldLogger
}

func NewChatService(sessions *SessionManager, catalog CatalogServiceInterface, orders OrderServiceInterface, qr PaymentQRInterface, recorder TransitionRecorder, log logrus.FieldLogger) *ChatService {
	return &ChatService{
		sessions: sessions,
		catalog:  catalog,
		orders:   orders,
		qr:       qr,
		recorder: recorder,
		log:      log,
	}
}

func (s *ChatService) Handle(ctx context.Context, req domain.ChatRequest) domain.ChatReply {
	if len(req.Messages) == 0 {
		return domain.TextReply(domain.ReplyError, domain.StateDefault, msgNoMessages)
	}
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		userID = DefaultUserID
	}
	log := s.log.WithField("user_id", userID)

	unlock := s.sessions.Lock(userID)
	defer unlock()

	session, err := s.sessions.Get(ctx, userID)
	if err != nil {
		log.WithError(err).Error("failed to load chat session")
		return domain.TextReply(domain.ReplyError, domain.StateDefault, msgSomethingWrong)
	}
	if session.State == "" {
		session.State = domain.StateDefault
	}

	input := strings.TrimSpace(req.LastUserMessage())
	intent := Classify(Turn{
		Input:           input,
		State:           session.State,
		Awaiting:        session.AwaitingSelectionFor,
		PreviousMessage: req.PreviousMessage(),
	})

	next := session
	reply, err := s.dispatch(ctx, &next, intent, input, req)
	if err != nil {
		log.WithError(err).WithFields(logrus.Fields{
			"state":  session.State,
			"intent": intent.Kind,
		}).Error("chat turn failed")
		next = session
		reply = domain.TextReply(domain.ReplyError, session.State, msgSomethingWrong)
	}
	next.State = reply.State

	if err := s.sessions.Save(ctx, next); err != nil {
		log.WithError(err).Error("failed to save chat session")
	}
	if s.recorder != nil {
		s.recorder.ObserveTransition(session.State, next.State)
	}
	log.WithFields(logrus.Fields{
		"from":   session.State,
		"to":     next.State,
		"intent": intent.Kind,
	}).Debug("chat turn")
	return reply
}

// dispatch returns an error only for failures the user cannot act on.
func (s *ChatService) dispatch(ctx context.Context, session *domain.Session, intent Intent, input string, req domain.ChatRequest) (domain.ChatReply, error) {
	switch intent.Kind {
	case IntentCancel:
		return s.cancellationFlow(ctx, session, input)
	case IntentOption:
		return s.chooseOption(ctx, session, intent.Option)
	case IntentInvalidOption:
		return domain.TextReply(domain.ReplyInvalidOption, session.State, repromptText[session.State]), nil
	case IntentNewOrder:
		return s.listRestaurants(ctx, session)
	case IntentTrack:
		if req.OrderID != nil {
			return s.trackOrder(ctx, session, *req.OrderID)
		}
		session.AwaitingSelectionFor = domain.AwaitingOrderID
		return domain.TextReply(domain.ReplyPrompt, domain.StateDefault, msgAskTrackID), nil
	case IntentSelectRestaurant:
		return s.selectRestaurant(ctx, session, intent.Number)
	case IntentSelectMenuItem:
		return s.selectMenuItem(ctx, session, intent.Number)
	case IntentOrderLookup:
		return s.trackOrder(ctx, session, intent.Number)
	}

	switch session.State {
	case domain.StateSelectingRestaurant:
		return domain.TextReply(domain.ReplyPrompt, session.State, msgPickRestaurant), nil
	case domain.StateSelectingMenuItem:
		return domain.TextReply(domain.ReplyPrompt, session.State, msgPickMenuItem), nil
	}
	session.AwaitingSelectionFor = domain.AwaitingNothing
	return domain.TextReply(domain.ReplyHelp, domain.StateDefault, msgHelp), nil
}

func (s *ChatService) listRestaurants(ctx context.Context, session *domain.Session) (domain.ChatReply, error) {
	restaurants, err := s.catalog.ListRestaurants(ctx, true)
	if err != nil {
		return domain.ChatReply{}, err
	}
	session.AwaitingSelectionFor = domain.AwaitingNothing
	if len(restaurants) == 0 {
		return domain.TextReply(domain.ReplyError, domain.StateDefault, msgNoRestaurants), nil
	}

	var b strings.Builder
	b.WriteString("Choose a restaurant:")
	for _, r := range restaurants {
		fmt.Fprintf(&b, "\n%d. %s (%s)", r.ID, r.Name, r.Cuisine)
	}
	session.AwaitingSelectionFor = domain.AwaitingRestaurant
	return domain.TextReply(domain.ReplyRestaurantList, domain.StateSelectingRestaurant, b.String()), nil
}

func (s *ChatService) selectRestaurant(ctx context.Context, session *domain.Session, id int) (domain.ChatReply, error) {
	rest, err := s.catalog.GetRestaurant(ctx, id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return domain.TextReply(domain.ReplyError, domain.StateSelectingRestaurant, msgBadRestaurant), nil
	case err != nil:
		return domain.ChatReply{}, err
	case !rest.IsActive:
		return domain.TextReply(domain.ReplyError, domain.StateSelectingRestaurant, msgBadRestaurant), nil
	}

	items, err := s.catalog.ListMenu(ctx, id)
	if err != nil {
		return domain.ChatReply{}, err
	}
	if len(items) == 0 {
		return domain.TextReply(domain.ReplyError, domain.StateSelectingRestaurant, msgEmptyMenu), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Menu for %s:\n", rest.Name)
	for _, item := range items {
		fmt.Fprintf(&b, "%d. %s - $%s\n", item.ID, item.Name, domain.FormatMoney(item.Price))
		if item.Description != "" {
			fmt.Fprintf(&b, "   %s\n", item.Description)
		}
	}
	b.WriteString("\nEnter the number of the item you want to order.")

	session.LastRestaurantID = intRef(rest.ID)
	session.AwaitingSelectionFor = domain.AwaitingMenuItem
	return domain.TextReply(domain.ReplyMenu, domain.StateSelectingMenuItem, b.String()), nil
}

func (s *ChatService) selectMenuItem(ctx context.Context, session *domain.Session, id int) (domain.ChatReply, error) {
	item, err := s.catalog.GetMenuItem(ctx, id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return domain.TextReply(domain.ReplyError, domain.StateSelectingMenuItem, msgBadMenuItem), nil
	case err != nil:
		return domain.ChatReply{}, err
	}
	if session.LastRestaurantID != nil && item.RestaurantID != *session.LastRestaurantID {
		return domain.TextReply(domain.ReplyError, domain.StateSelectingMenuItem, msgBadMenuItem), nil
	}

	order, err := s.orders.CreateSingleItemOrder(ctx, session.UserID, id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return domain.TextReply(domain.ReplyError, domain.StateSelectingMenuItem, msgBadMenuItem), nil
	case err != nil:
		s.log.WithError(err).WithField("menu_item_id", id).Error("failed to create order")
		return domain.TextReply(domain.ReplyError, domain.StateSelectingMenuItem, msgOrderFailed), nil
	}

	restaurantName := s.restaurantName(ctx, order.RestaurantID)
	text := fmt.Sprintf("Order created successfully!\nOrder #%d\nTotal: $%s\n\n"+
		"Got it! You've ordered %s from %s. That'll be $%s. Expect it in 30-40 minutes.\n\n"+
		"%s\n\nType '1' for Pay Now or '2' for COD.",
		order.ID, domain.FormatMoney(order.Total),
		item.Name, restaurantName, domain.FormatMoney(order.Total),
		paymentMenu)

	session.CurrentOrderID = intRef(order.ID)
	session.LastMenuItemID = intRef(item.ID)
	session.AwaitingSelectionFor = domain.AwaitingNothing
	return domain.OrderReply(domain.ReplyOrderCreated, domain.StateAwaitingPayment, text, order.ID), nil
}

func (s *ChatService) chooseOption(ctx context.Context, session *domain.Session, option Option) (domain.ChatReply, error) {
	state := session.State
	switch {
	case option == OptionPay:
		return s.payOnline(ctx, session)
	case option == OptionCOD:
		return s.payOnDelivery(ctx, session)
	case option == OptionCancel && (state == domain.StateManagingOrder || state == domain.StatePaymentInitiated):
		return s.cancelCurrentOrder(ctx, session)
	case option == OptionCancel:
		session.AwaitingSelectionFor = domain.AwaitingOrderID
		return domain.TextReply(domain.ReplyPrompt, domain.StateCancellationFlow, msgConfirmCancelID), nil
	case option == OptionTrack && state == domain.StatePostCancellation:
		session.AwaitingSelectionFor = domain.AwaitingOrderID
		return domain.TextReply(domain.ReplyPrompt, domain.StateDefault, msgAskTrackAnother), nil
	case option == OptionTrack:
		return s.trackCurrentOrder(ctx, session)
	case option == OptionAgent:
		session.AwaitingSelectionFor = domain.AwaitingNothing
		text := msgAgent
		if state == domain.StatePostCancellation {
			text += "\n\nIn the meantime, you can type 'new order' to place a new order or 'track order' to track another order."
		}
		return domain.TextReply(domain.ReplyAgent, domain.StateDefault, text), nil
	case option == OptionNewOrder:
		session.AwaitingSelectionFor = domain.AwaitingNothing
		return domain.TextReply(domain.ReplyPrompt, domain.StateDefault, msgStartNewOrder), nil
	}
	return domain.TextReply(domain.ReplyInvalidOption, state, repromptText[state]), nil
}

func (s *ChatService) currentOrder(ctx context.Context, session *domain.Session) (*domain.Order, error) {
	if session.CurrentOrderID == nil {
		return nil, domain.Errorf(domain.ErrNotFound, "No current order")
	}
	return s.orders.GetOrder(ctx, *session.CurrentOrderID)
}

func (s *ChatService) payOnline(ctx context.Context, session *domain.Session) (domain.ChatReply, error) {
	order, err := s.currentOrder(ctx, session)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return domain.TextReply(domain.ReplyError, domain.StateDefault, msgNoCurrentOrder), nil
	case err != nil:
		return domain.ChatReply{}, err
	}

	if _, err := s.orders.CreatePayment(ctx, order.ID, order.Total, domain.PaymentOnline); err != nil {
		if isUserError(err) {
			return domain.TextReply(domain.ReplyError, session.State, err.Error()+"."), nil
		}
		return domain.ChatReply{}, err
	}

	qrURL := s.qr.QRCodeURL(order.ID)
	text := fmt.Sprintf("Please scan the QR code to complete your payment of $%s.\nOrder #%d\nRestaurant: %s\n\nQR Code URL: %s\n\n%s",
		domain.FormatMoney(order.Total), order.ID, s.restaurantName(ctx, order.RestaurantID), qrURL, paymentInitiatedMenu)
	session.AwaitingSelectionFor = domain.AwaitingNothing
	return domain.PaymentQRReply(domain.StatePaymentInitiated, text, order.ID, qrURL), nil
}

func (s *ChatService) payOnDelivery(ctx context.Context, session *domain.Session) (domain.ChatReply, error) {
	order, err := s.currentOrder(ctx, session)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return domain.TextReply(domain.ReplyError, domain.StateDefault, msgNoCurrentOrder), nil
	case err != nil:
		return domain.ChatReply{}, err
	}

	if _, err := s.orders.CreatePayment(ctx, order.ID, order.Total, domain.PaymentCOD); err != nil {
		if isUserError(err) {
			return domain.TextReply(domain.ReplyError, session.State, err.Error()+"."), nil
		}
		return domain.ChatReply{}, err
	}

	text := fmt.Sprintf("Cash on Delivery selected for Order #%d.\nTotal amount: $%s\nPlease have the exact amount ready when your order arrives.\n\n%s",
		order.ID, domain.FormatMoney(order.Total), postOrderMenu)
	session.AwaitingSelectionFor = domain.AwaitingNothing
	return domain.OrderReply(domain.ReplyCODConfirmed, domain.StateOrderConfirmed, text, order.ID), nil
}

func (s *ChatService) cancelCurrentOrder(ctx context.Context, session *domain.Session) (domain.ChatReply, error) {
	if session.CurrentOrderID == nil {
		return domain.TextReply(domain.ReplyError, domain.StateDefault, msgNoCurrentOrder), nil
	}
	orderID := *session.CurrentOrderID

	result, err := s.orders.CancelOrder(ctx, orderID)
	if err != nil {
		if isUserError(err) {
			return domain.TextReply(domain.ReplyError, session.State, err.Error()+"."), nil
		}
		return domain.ChatReply{}, err
	}
	session.AwaitingSelectionFor = domain.AwaitingNothing
	return domain.OrderReply(domain.ReplyCancellation, domain.StateDefault, result.Message, orderID), nil
}

// cancellationFlow asks for an order id and cancels the order it names.
func (s *ChatService) cancellationFlow(ctx context.Context, session *domain.Session, input string) (domain.ChatReply, error) {
	if session.State != domain.StateCancellationFlow {
		session.AwaitingSelectionFor = domain.AwaitingOrderID
		return domain.TextReply(domain.ReplyPrompt, domain.StateCancellationFlow, msgAskCancelID), nil
	}

	text := normalize(input)
	switch {
	case backToMenuWords[text]:
		session.AwaitingSelectionFor = domain.AwaitingNothing
		return domain.TextReply(domain.ReplyPrompt, domain.StateDefault, msgBackToMenu), nil
	case text == "agent" || text == "talk to agent":
		session.AwaitingSelectionFor = domain.AwaitingNothing
		return domain.TextReply(domain.ReplyAgent, domain.StateDefault, msgAgent), nil
	}

	orderID, ok := parseNumber(text)
	if !ok {
		return domain.TextReply(domain.ReplyPrompt, domain.StateCancellationFlow, msgDigitsOnly), nil
	}

	result, err := s.orders.CancelOrder(ctx, orderID)
	if err != nil {
		if isUserError(err) {
			msg := err.Error() + ".\n\nEnter another order ID, type 'agent' to talk to a real agent, or 'menu' to go back."
			return domain.TextReply(domain.ReplyError, domain.StateCancellationFlow, msg), nil
		}
		return domain.ChatReply{}, err
	}

	msg := result.Message
	if result.RefundProcessed {
		msg += "\n\nYour refund will be processed within 7 working days."
	}
	msg += "\n\n" + postCancellationMenu
	session.AwaitingSelectionFor = domain.AwaitingNothing
	return domain.OrderReply(domain.ReplyCancellation, domain.StatePostCancellation, msg, orderID), nil
}

// trackOrder shows an order summary. An order that still needs paying moves
// the conversation to managing_order so it can be paid or cancelled.
func (s *ChatService) trackOrder(ctx context.Context, session *domain.Session, orderID int) (domain.ChatReply, error) {
	details, err := s.orders.OrderDetails(ctx, orderID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		session.AwaitingSelectionFor = domain.AwaitingOrderID
		return domain.TextReply(domain.ReplyError, domain.StateDefault, msgOrderNotFound), nil
	case err != nil:
		return domain.ChatReply{}, err
	}

	text := orderSummary(details)
	if details.AwaitingPayment() {
		session.CurrentOrderID = intRef(details.Order.ID)
		session.AwaitingSelectionFor = domain.AwaitingNothing
		text += "\n\nWould you like to:\n1. Pay Now\n2. Cancel Order"
		return domain.OrderReply(domain.ReplyOrderSummary, domain.StateManagingOrder, text, orderID), nil
	}

	session.AwaitingSelectionFor = domain.AwaitingOrderID
	text += "\n\nType 'new order' to place a new order or enter another order ID to track it."
	return domain.OrderReply(domain.ReplyOrderSummary, domain.StateDefault, text, orderID), nil
}

func (s *ChatService) trackCurrentOrder(ctx context.Context, session *domain.Session) (domain.ChatReply, error) {
	if session.CurrentOrderID == nil {
		return domain.TextReply(domain.ReplyError, domain.StateDefault, msgNoCurrentOrder), nil
	}
	orderID := *session.CurrentOrderID

	details, err := s.orders.OrderDetails(ctx, orderID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return domain.TextReply(domain.ReplyError, domain.StateDefault, msgNoCurrentOrder), nil
	case err != nil:
		return domain.ChatReply{}, err
	}

	session.AwaitingSelectionFor = domain.AwaitingOrderID
	text := orderSummary(details) + "\n\nType 'cancel order' to cancel an order, 'new order' to place another one, or enter an order ID to track it."
	return domain.OrderReply(domain.ReplyOrderSummary, domain.StateTracking, text, orderID), nil
}

func (s *ChatService) restaurantName(ctx context.Context, id int) string {
	rest, err := s.catalog.GetRestaurant(ctx, id)
	if err != nil {
		return "Unknown Restaurant"
	}
	return rest.Name
}

func orderSummary(details *domain.OrderDetails) string {
	var b strings.Builder
	order := details.Order
	fmt.Fprintf(&b, "Order #%d Status: %s\nRestaurant: %s\nTotal: $%s\nItems:\n",
		order.ID, order.Status, details.RestaurantName, domain.FormatMoney(order.Total))
	for _, item := range order.Items {
		if item.Quantity > 1 {
			fmt.Fprintf(&b, "- %s x%d: $%s\n", item.Name, item.Quantity, domain.FormatMoney(item.LineTotal()))
			continue
		}
		fmt.Fprintf(&b, "- %s: $%s\n", item.Name, domain.FormatMoney(item.Price))
	}
	if details.Payment != nil {
		fmt.Fprintf(&b, "\nPayment: %s", details.Payment.Status)
	} else {
		b.WriteString("\nPayment: not paid")
	}
	return b.String()
}

func intRef(v int) *int { return &v }

func isUserError(err error) bool {
	return errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidInput) || errors.Is(err, domain.ErrConflict)
}

var _ ChatServiceInterface = (*ChatService)(nil)
