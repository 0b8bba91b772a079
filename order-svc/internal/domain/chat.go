package domain

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
	OrderID  *int          `json:"order_id,omitempty"`
	UserID   string        `json:"user_id,omitempty"`
}

// LastUserMessage returns the content of the final message.
func (r ChatRequest) LastUserMessage() string {
	if len(r.Messages) == 0 {
		return ""
	}
	return r.Messages[len(r.Messages)-1].Content
}

// PreviousMessage returns the message before the final one, usually the
// assistant's last reply.
func (r ChatRequest) PreviousMessage() string {
	if len(r.Messages) < 2 {
		return ""
	}
	return r.Messages[len(r.Messages)-2].Content
}

type ReplyKind string

const (
	ReplyHelp           ReplyKind = "help"
	ReplyPrompt         ReplyKind = "prompt"
	ReplyInvalidOption  ReplyKind = "invalid_option"
	ReplyRestaurantList ReplyKind = "restaurant_list"
	ReplyMenu           ReplyKind = "menu"
	ReplyOrderCreated   ReplyKind = "order_created"
	ReplyPaymentQR      ReplyKind = "payment_qr"
	ReplyCODConfirmed   ReplyKind = "cod_confirmed"
	ReplyOrderSummary   ReplyKind = "order_summary"
	ReplyCancellation   ReplyKind = "cancellation"
	ReplyAgent          ReplyKind = "agent"
	ReplyError          ReplyKind = "error"
)

// ChatReply is the response to one chat turn. Kind tags which of the optional
// fields are populated; use the constructors below rather than literals.
type ChatReply struct {
	Kind      ReplyKind `json:"kind"`
	Text      string    `json:"response"`
	OrderID   *int      `json:"order_id,omitempty"`
	QRCodeURL string    `json:"qr_code_url,omitempty"`
	State     ChatState `json:"state"`
}

func TextReply(kind ReplyKind, state ChatState, text string) ChatReply {
	return ChatReply{Kind: kind, Text: text, State: state}
}

func OrderReply(kind ReplyKind, state ChatState, text string, orderID int) ChatReply {
	return ChatReply{Kind: kind, Text: text, OrderID: &orderID, State: state}
}

func PaymentQRReply(state ChatState, text string, orderID int, qrURL string) ChatReply {
	return ChatReply{Kind: ReplyPaymentQR, Text: text, OrderID: &orderID, QRCodeURL: qrURL, State: state}
}
