package service

import (
	"strconv"
	"strings"

	"food-delivery/order-svc/internal/domain"
)

type IntentKind string

const (
	IntentCancel           IntentKind = "cancel"
	IntentOption           IntentKind = "option"
	IntentInvalidOption    IntentKind = "invalid_option"
	IntentNewOrder         IntentKind = "new_order"
	IntentTrack            IntentKind = "track"
	IntentSelectRestaurant IntentKind = "select_restaurant"
	IntentSelectMenuItem   IntentKind = "select_menu_item"
	IntentOrderLookup      IntentKind = "order_lookup"
	IntentHelp             IntentKind = "help"
)

type Option string

const (
	OptionPay      Option = "pay"
	OptionCOD      Option = "cod"
	OptionCancel   Option = "cancel"
	OptionTrack    Option = "track"
	OptionAgent    Option = "agent"
	OptionNewOrder Option = "new_order"
)

// Intent is the classified meaning of one user message. Option is set for
// IntentOption, Number for the numeric selection and lookup intents. The
// cancellation flow reads the order id from the raw input itself.
type Intent struct {
	Kind   IntentKind
	Option Option
	Number int
}

// Turn is everything the classifier looks at.
type Turn struct {
	Input           string
	State           domain.ChatState
	Awaiting        domain.SelectionTarget
	PreviousMessage string
}

type OptionChoice struct {
	Option   Option
	Synonyms []string
}

var (
	payChoice    = OptionChoice{OptionPay, []string{"1", "pay now", "pay", "payment"}}
	trackChoice  = func(n string) OptionChoice { return OptionChoice{OptionTrack, []string{n, "track", "track order"}} }
	cancelChoice = func(n string) OptionChoice { return OptionChoice{OptionCancel, []string{n, "cancel", "cancel order"}} }
	postOrder    = []OptionChoice{
		trackChoice("1"),
		cancelChoice("2"),
		{OptionAgent, []string{"3", "agent", "talk to agent"}},
	}
)

// OptionSets lists the fixed menu of every state that expects a choice.
// Matching is exact after trimming and lowercasing.
var OptionSets = map[domain.ChatState][]OptionChoice{
	domain.StateAwaitingPayment: {
		payChoice,
		{OptionCOD, []string{"2", "cod", "cash on delivery"}},
	},
	domain.StateManagingOrder: {
		payChoice,
		cancelChoice("2"),
	},
	domain.StatePaymentInitiated: {
		cancelChoice("1"),
		trackChoice("2"),
		{OptionAgent, []string{"3", "agent", "talk to agent"}},
	},
	domain.StatePostOrder:      postOrder,
	domain.StateOrderConfirmed: postOrder,
	domain.StatePostCancellation: {
		{OptionAgent, []string{"1", "talk to agent", "agent"}},
		{OptionNewOrder, []string{"2", "new order", "place order"}},
		trackChoice("3"),
	},
}

var (
	CancelKeywords   = []string{"cancel order"}
	NewOrderKeywords = []string{"new order"}
	TrackKeywords    = []string{"track", "status", "where", "check"}
)

// IntentRule matches a normalised message in the context of a turn.
type IntentRule struct {
	Name  string
	Match func(turn Turn, text string) (Intent, bool)
}

// IntentRules is evaluated in order; the first match wins and anything left
// over is a request for help.
var IntentRules = []IntentRule{
	{Name: "cancel", Match: matchCancel},
	{Name: "option", Match: matchOption},
	{Name: "new_order", Match: keywordRule(IntentNewOrder, NewOrderKeywords)},
	{Name: "track", Match: keywordRule(IntentTrack, TrackKeywords)},
	{Name: "numeric", Match: matchNumeric},
}

func Classify(turn Turn) Intent {
	text := normalize(turn.Input)
	for _, rule := range IntentRules {
		if intent, ok := rule.Match(turn, text); ok {
			return intent
		}
	}
	return Intent{Kind: IntentHelp}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func matchCancel(turn Turn, text string) (Intent, bool) {
	if turn.State != domain.StateCancellationFlow && !containsAny(text, CancelKeywords) {
		return Intent{}, false
	}
	return Intent{Kind: IntentCancel}, true
}

func matchOption(turn Turn, text string) (Intent, bool) {
	choices, ok := OptionSets[turn.State]
	if !ok {
		return Intent{}, false
	}
	for _, choice := range choices {
		for _, synonym := range choice.Synonyms {
			if text == synonym {
				return Intent{Kind: IntentOption, Option: choice.Option}, true
			}
		}
	}
	return Intent{Kind: IntentInvalidOption}, true
}

func keywordRule(kind IntentKind, keywords []string) func(Turn, string) (Intent, bool) {
	return func(_ Turn, text string) (Intent, bool) {
		if containsAny(text, keywords) {
			return Intent{Kind: kind}, true
		}
		return Intent{}, false
	}
}

func matchNumeric(turn Turn, text string) (Intent, bool) {
	n, ok := parseNumber(text)
	if !ok {
		return Intent{}, false
	}

	awaiting := turn.Awaiting
	if awaiting == domain.AwaitingNothing {
		prev := strings.ToLower(turn.PreviousMessage)
		switch {
		case strings.Contains(prev, "choose a restaurant"):
			awaiting = domain.AwaitingRestaurant
		case strings.Contains(prev, "menu for"):
			awaiting = domain.AwaitingMenuItem
		}
	}

	switch awaiting {
	case domain.AwaitingRestaurant:
		return Intent{Kind: IntentSelectRestaurant, Number: n}, true
	case domain.AwaitingMenuItem:
		return Intent{Kind: IntentSelectMenuItem, Number: n}, true
	default:
		return Intent{Kind: IntentOrderLookup, Number: n}, true
	}
}

// parseNumber accepts a non-empty string of ASCII digits that fits an int.
func parseNumber(text string) (int, bool) {
	if text == "" {
		return 0, false
	}
	for _, r := range text {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, false
	}
	return n, true
}
