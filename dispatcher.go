package whatsapp

import "encoding/json"

// Sink receives events as they are produced by DispatchWebhook. Emission is
// synchronous; the dispatcher does not buffer or batch.
type Sink interface {
	Emit(Event)
}

// SinkFunc adapts a plain function to the Sink interface.
type SinkFunc func(Event)

func (f SinkFunc) Emit(e Event) { f(e) }

// DispatchWebhook maps every message and status in a normalized webhook to
// its typed event and hands each to the sink, messages first, both in
// source order.
func DispatchWebhook(webhook *NormalizedWebhook, sink Sink) {
	if webhook == nil {
		return
	}

	pid := webhook.PhoneNumberID

	for _, msg := range webhook.Messages {
		sink.Emit(MapMessage(msg, pid))
	}
	for _, status := range webhook.Statuses {
		sink.Emit(mapStatus(status, pid))
	}
}

// MapMessage converts a single webhook message into a typed event. It is
// total: unrecognized message types produce an UnknownMessageReceived
// carrying the raw payload, never an error.
func MapMessage(msg WebhookMessage, phoneNumberID string) Event {
	base := baseEvent(msg, phoneNumberID)

	switch msg.Type {
	case "text":
		return TextReceived{
			MessageEvent: base,
			Body:         stringField(msg.Text, "body"),
			PreviewURL:   boolField(msg.Text, "preview_url"),
		}

	case "image":
		return ImageReceived{
			MessageEvent: base,
			ImageID:      stringField(msg.Image, "id"),
			MimeType:     stringField(msg.Image, "mime_type"),
			SHA256:       stringField(msg.Image, "sha256"),
			Caption:      stringField(msg.Image, "caption"),
		}

	case "video":
		return VideoReceived{
			MessageEvent: base,
			VideoID:      stringField(msg.Video, "id"),
			MimeType:     stringField(msg.Video, "mime_type"),
			SHA256:       stringField(msg.Video, "sha256"),
			Caption:      stringField(msg.Video, "caption"),
		}

	case "audio":
		return AudioReceived{
			MessageEvent: base,
			AudioID:      stringField(msg.Audio, "id"),
			MimeType:     stringField(msg.Audio, "mime_type"),
			SHA256:       stringField(msg.Audio, "sha256"),
			Voice:        boolField(msg.Audio, "voice"),
		}

	case "document":
		return DocumentReceived{
			MessageEvent: base,
			DocumentID:   stringField(msg.Document, "id"),
			MimeType:     stringField(msg.Document, "mime_type"),
			SHA256:       stringField(msg.Document, "sha256"),
			Filename:     stringField(msg.Document, "filename"),
			Caption:      stringField(msg.Document, "caption"),
		}

	case "sticker":
		return StickerReceived{
			MessageEvent: base,
			StickerID:    stringField(msg.Sticker, "id"),
			MimeType:     stringField(msg.Sticker, "mime_type"),
			Animated:     boolField(msg.Sticker, "animated"),
		}

	case "location":
		return LocationReceived{
			MessageEvent: base,
			Latitude:     floatField(msg.Location, "latitude"),
			Longitude:    floatField(msg.Location, "longitude"),
			Name:         stringField(msg.Location, "name"),
			Address:      stringField(msg.Location, "address"),
		}

	case "contacts":
		contacts := msg.Contacts
		if contacts == nil {
			contacts = []map[string]any{}
		}
		return ContactsReceived{MessageEvent: base, Contacts: contacts}

	case "reaction":
		return ReactionReceived{
			MessageEvent:     base,
			Emoji:            stringField(msg.Reaction, "emoji"),
			ReactedMessageID: stringField(msg.Reaction, "message_id"),
		}

	case "interactive":
		return mapInteractive(msg, base)

	case "order":
		items := mapList(msg.Order, "product_items")
		if items == nil {
			items = []map[string]any{}
		}
		return OrderReceived{
			MessageEvent: base,
			CatalogID:    stringField(msg.Order, "catalog_id"),
			ProductItems: items,
			OrderText:    stringField(msg.Order, "order_text"),
		}

	default:
		return UnknownMessageReceived{
			MessageEvent: base,
			RawType:      msg.Type,
			RawData:      msg.Data,
		}
	}
}

// mapInteractive resolves the interactive sub-type to a reply event.
func mapInteractive(msg WebhookMessage, base MessageEvent) Event {
	itype := stringField(msg.Interactive, "type")

	switch itype {
	case "button_reply":
		reply, _ := msg.Interactive["button_reply"].(map[string]any)
		return ButtonReply{
			MessageEvent: base,
			ButtonID:     stringField(reply, "id"),
			ButtonTitle:  stringField(reply, "title"),
		}

	case "list_reply":
		reply, _ := msg.Interactive["list_reply"].(map[string]any)
		return ListReply{
			MessageEvent:    base,
			ListID:          stringField(reply, "id"),
			ListTitle:       stringField(reply, "title"),
			ListDescription: stringField(reply, "description"),
		}

	case "nfm_reply":
		reply, _ := msg.Interactive["nfm_reply"].(map[string]any)
		return FlowResponse{
			MessageEvent: base,
			ResponseJSON: decodeResponseJSON(reply["response_json"]),
			FlowToken:    stringField(reply, "flow_token"),
		}

	default:
		return UnknownMessageReceived{
			MessageEvent: base,
			RawType:      "interactive:" + itype,
			RawData:      msg.Interactive,
		}
	}
}

func mapStatus(status MessageStatusUpdate, phoneNumberID string) Event {
	base := StatusEvent{
		PhoneNumberID: phoneNumberID,
		MessageID:     status.ID,
		Timestamp:     status.Timestamp,
		RecipientID:   status.RecipientID,
		Conversation:  status.Conversation,
		Pricing:       status.Pricing,
	}

	switch status.Status {
	case "sent":
		return MessageSent{StatusEvent: base}
	case "delivered":
		return MessageDelivered{StatusEvent: base}
	case "read":
		return MessageRead{StatusEvent: base}
	case "failed":
		errs := status.Errors
		if errs == nil {
			errs = []map[string]any{}
		}
		return MessageFailed{StatusEvent: base, Errors: errs}
	default:
		// Any other status value is reported as sent.
		// TODO: emit a distinct event for unrecognized status values.
		return MessageSent{StatusEvent: base}
	}
}

func baseEvent(msg WebhookMessage, phoneNumberID string) MessageEvent {
	var ctx map[string]any
	if len(msg.Context) > 0 {
		ctx = make(map[string]any, len(msg.Context))
		for k, v := range msg.Context {
			if v != nil {
				ctx[k] = v
			}
		}
		if len(ctx) == 0 {
			ctx = nil
		}
	}

	return MessageEvent{
		PhoneNumberID: phoneNumberID,
		MessageID:     msg.ID,
		Timestamp:     msg.Timestamp,
		FromNumber:    msg.From,
		Context:       ctx,
	}
}

// decodeResponseJSON accepts the nfm_reply response_json value either as an
// already-parsed map or as a JSON-encoded string. A string that fails to
// parse yields an empty map.
func decodeResponseJSON(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		return t
	case string:
		var out map[string]any
		if err := json.Unmarshal([]byte(t), &out); err != nil || out == nil {
			return map[string]any{}
		}
		return out
	default:
		return map[string]any{}
	}
}

func boolField(m map[string]any, key string) bool {
	b, _ := m[key].(bool)
	return b
}

func floatField(m map[string]any, key string) float64 {
	switch n := m[key].(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}
