package whatsapp

// Event is implemented by every webhook event emitted by DispatchWebhook.
// Callers type-switch on the concrete variants.
type Event interface {
	event()
}

// MessageEvent holds the fields shared by all inbound message events.
type MessageEvent struct {
	PhoneNumberID string
	MessageID     string
	Timestamp     string
	FromNumber    string
	Context       map[string]any
}

func (MessageEvent) event() {}

// StatusEvent holds the fields shared by all message status events.
type StatusEvent struct {
	PhoneNumberID string
	MessageID     string
	Timestamp     string
	RecipientID   string
	Conversation  map[string]any
	Pricing       map[string]any
}

func (StatusEvent) event() {}

// TextReceived is fired for an inbound text message.
type TextReceived struct {
	MessageEvent
	Body       string
	PreviewURL bool
}

// ImageReceived is fired for an inbound image message.
type ImageReceived struct {
	MessageEvent
	ImageID  string
	MimeType string
	SHA256   string
	Caption  string
}

// VideoReceived is fired for an inbound video message.
type VideoReceived struct {
	MessageEvent
	VideoID  string
	MimeType string
	SHA256   string
	Caption  string
}

// AudioReceived is fired for an inbound audio message.
type AudioReceived struct {
	MessageEvent
	AudioID  string
	MimeType string
	SHA256   string
	Voice    bool
}

// DocumentReceived is fired for an inbound document message.
type DocumentReceived struct {
	MessageEvent
	DocumentID string
	MimeType   string
	SHA256     string
	Filename   string
	Caption    string
}

// StickerReceived is fired for an inbound sticker message.
type StickerReceived struct {
	MessageEvent
	StickerID string
	MimeType  string
	Animated  bool
}

// LocationReceived is fired for an inbound location message.
type LocationReceived struct {
	MessageEvent
	Latitude  float64
	Longitude float64
	Name      string
	Address   string
}

// ContactsReceived is fired for an inbound contact-card message.
type ContactsReceived struct {
	MessageEvent
	Contacts []map[string]any
}

// ReactionReceived is fired when a user reacts to a message.
type ReactionReceived struct {
	MessageEvent
	Emoji            string
	ReactedMessageID string
}

// ButtonReply is fired when a user taps an interactive reply button.
type ButtonReply struct {
	MessageEvent
	ButtonID    string
	ButtonTitle string
}

// ListReply is fired when a user selects an interactive list row.
type ListReply struct {
	MessageEvent
	ListID          string
	ListTitle       string
	ListDescription string
}

// FlowResponse is fired when a user completes a WhatsApp Flow.
type FlowResponse struct {
	MessageEvent
	ResponseJSON map[string]any
	FlowToken    string
}

// OrderReceived is fired for an inbound catalog order.
type OrderReceived struct {
	MessageEvent
	CatalogID    string
	ProductItems []map[string]any
	OrderText    string
}

// UnknownMessageReceived is fired for any message or interactive type not
// explicitly mapped. RawData carries the unprocessed payload.
type UnknownMessageReceived struct {
	MessageEvent
	RawType string
	RawData map[string]any
}

// MessageSent is fired for a "sent" status update.
type MessageSent struct {
	StatusEvent
}

// MessageDelivered is fired for a "delivered" status update.
type MessageDelivered struct {
	StatusEvent
}

// MessageRead is fired for a "read" status update.
type MessageRead struct {
	StatusEvent
}

// MessageFailed is fired for a "failed" status update.
type MessageFailed struct {
	StatusEvent
	Errors []map[string]any
}
