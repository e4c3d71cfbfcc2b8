package whatsapp

import "fmt"

// WebhookMessage is one inbound message extracted from a webhook delivery.
// Exactly one of the type-specific payload maps is populated per the Type
// tag; the rest are nil. Data holds the full normalized (snake_case) map so
// unrecognized keys survive the typed view.
type WebhookMessage struct {
	ID        string
	Type      string
	Timestamp string
	From      string
	To        string
	Context   map[string]any

	Text        map[string]any
	Image       map[string]any
	Video       map[string]any
	Audio       map[string]any
	Document    map[string]any
	Location    map[string]any
	Interactive map[string]any
	Template    map[string]any
	Order       map[string]any
	Sticker     map[string]any
	Reaction    map[string]any
	Button      map[string]any
	Referral    map[string]any
	Contacts    []map[string]any

	Data map[string]any
}

// MessageStatusUpdate is one delivery/read receipt extracted from a webhook
// delivery.
type MessageStatusUpdate struct {
	ID           string
	Status       string
	Timestamp    string
	RecipientID  string
	Conversation map[string]any
	Pricing      map[string]any
	Errors       []map[string]any
}

// NormalizedWebhook is the flattened view of one webhook delivery: entries,
// changes and values collapsed into aggregate lists. Changes whose field is
// not "messages" land uninterpreted in Raw, keyed by field name.
type NormalizedWebhook struct {
	Object             string
	PhoneNumberID      string
	DisplayPhoneNumber string
	Contacts           []map[string]any
	Messages           []WebhookMessage
	Statuses           []MessageStatusUpdate
	Raw                map[string][]map[string]any
}

// NormalizeWebhook flattens a parsed webhook body into a NormalizedWebhook.
// All keys are converted to snake_case and source order is preserved across
// entries and changes. A non-map payload yields an all-empty result. An
// individual message or status that fails shape validation aborts the whole
// normalization; malformed items are a hard failure, not a soft skip.
func NormalizeWebhook(payload any) (*NormalizedWebhook, error) {
	out := &NormalizedWebhook{Raw: map[string][]map[string]any{}}

	body, ok := payload.(map[string]any)
	if !ok {
		return out, nil
	}

	out.Object = stringField(body, "object")
	entries, _ := body["entry"].([]any)

	for _, rawEntry := range entries {
		entry, ok := rawEntry.(map[string]any)
		if !ok {
			continue
		}
		changes, _ := entry["changes"].([]any)
		for _, rawChange := range changes {
			change, ok := rawChange.(map[string]any)
			if !ok {
				continue
			}
			value, _ := change["value"].(map[string]any)
			field := stringField(change, "field")

			if field != "messages" {
				if m, ok := ToSnakeDeep(value).(map[string]any); ok {
					out.Raw[field] = append(out.Raw[field], m)
				}
				continue
			}

			if metadata, ok := value["metadata"].(map[string]any); ok && out.PhoneNumberID == "" {
				out.PhoneNumberID = stringField(metadata, "phone_number_id")
				out.DisplayPhoneNumber = stringField(metadata, "display_phone_number")
			}

			for _, c := range anyList(value, "contacts") {
				if m, ok := ToSnakeDeep(c).(map[string]any); ok {
					out.Contacts = append(out.Contacts, m)
				}
			}

			for _, raw := range anyList(value, "messages") {
				m, ok := ToSnakeDeep(raw).(map[string]any)
				if !ok {
					return nil, fmt.Errorf("webhook message is not an object: %T", raw)
				}
				if from, present := m["from"]; present {
					m["from_"] = from
					delete(m, "from")
				}
				msg, err := newWebhookMessage(m)
				if err != nil {
					return nil, err
				}
				out.Messages = append(out.Messages, msg)
			}

			for _, raw := range anyList(value, "statuses") {
				m, ok := ToSnakeDeep(raw).(map[string]any)
				if !ok {
					return nil, fmt.Errorf("webhook status is not an object: %T", raw)
				}
				status, err := newMessageStatusUpdate(m)
				if err != nil {
					return nil, err
				}
				out.Statuses = append(out.Statuses, status)
			}
		}
	}

	return out, nil
}

func newWebhookMessage(m map[string]any) (WebhookMessage, error) {
	msg := WebhookMessage{Data: m}
	for _, req := range []string{"id", "type", "timestamp"} {
		if stringField(m, req) == "" {
			return msg, fmt.Errorf("webhook message missing required field %q", req)
		}
	}

	msg.ID = stringField(m, "id")
	msg.Type = stringField(m, "type")
	msg.Timestamp = stringField(m, "timestamp")
	msg.From = stringField(m, "from_")
	msg.To = stringField(m, "to")
	msg.Context, _ = m["context"].(map[string]any)

	msg.Text, _ = m["text"].(map[string]any)
	msg.Image, _ = m["image"].(map[string]any)
	msg.Video, _ = m["video"].(map[string]any)
	msg.Audio, _ = m["audio"].(map[string]any)
	msg.Document, _ = m["document"].(map[string]any)
	msg.Location, _ = m["location"].(map[string]any)
	msg.Interactive, _ = m["interactive"].(map[string]any)
	msg.Template, _ = m["template"].(map[string]any)
	msg.Order, _ = m["order"].(map[string]any)
	msg.Sticker, _ = m["sticker"].(map[string]any)
	msg.Reaction, _ = m["reaction"].(map[string]any)
	msg.Button, _ = m["button"].(map[string]any)
	msg.Referral, _ = m["referral"].(map[string]any)
	msg.Contacts = mapList(m, "contacts")

	return msg, nil
}

func newMessageStatusUpdate(m map[string]any) (MessageStatusUpdate, error) {
	var status MessageStatusUpdate
	for _, req := range []string{"id", "status", "timestamp"} {
		if stringField(m, req) == "" {
			return status, fmt.Errorf("webhook status missing required field %q", req)
		}
	}

	status.ID = stringField(m, "id")
	status.Status = stringField(m, "status")
	status.Timestamp = stringField(m, "timestamp")
	status.RecipientID = stringField(m, "recipient_id")
	status.Conversation, _ = m["conversation"].(map[string]any)
	status.Pricing, _ = m["pricing"].(map[string]any)
	status.Errors = mapList(m, "errors")

	return status, nil
}

func anyList(m map[string]any, key string) []any {
	l, _ := m[key].([]any)
	return l
}

func mapList(m map[string]any, key string) []map[string]any {
	l, ok := m[key].([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(l))
	for _, item := range l {
		if im, ok := item.(map[string]any); ok {
			out = append(out, im)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
