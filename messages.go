package whatsapp

import (
	"context"
	"encoding/json"
	"fmt"
)

// MessagesService sends outbound messages of every supported type through
// the /<phone_number_id>/messages endpoint.
type MessagesService struct {
	client *Client
}

// toPayloadMap dumps a typed payload to the wire map via its json tags.
func toPayloadMap(v any) map[string]any {
	b, err := json.Marshal(v)
	if err != nil {
		return map[string]any{}
	}
	out := map[string]any{}
	_ = json.Unmarshal(b, &out)
	return out
}

func (s *MessagesService) send(ctx context.Context, target MessageTarget, msgType string, payload any) (*SendMessageResponse, error) {
	body := map[string]any{
		"messaging_product": "whatsapp",
		"recipient_type":    target.recipientType(),
		"to":                target.To,
		"type":              msgType,
		msgType:             payload,
	}
	if target.ContextMessageID != "" {
		body["context"] = map[string]any{"message_id": target.ContextMessageID}
	}
	if target.BizOpaqueCallbackData != "" {
		body["biz_opaque_callback_data"] = target.BizOpaqueCallbackData
	}

	resp, err := s.client.Post(ctx, fmt.Sprintf("%s/messages", target.PhoneNumberID), body)
	if err != nil {
		return nil, err
	}

	out := new(SendMessageResponse)
	if err := decodeInto(resp, out); err != nil {
		return nil, fmt.Errorf("decode send message response: %w", err)
	}
	return out, nil
}

func (s *MessagesService) sendInteractive(ctx context.Context, target MessageTarget, interactiveType string, action map[string]any, bodyText, footerText string, header *InteractiveHeader) (*SendMessageResponse, error) {
	interactive := map[string]any{
		"type":   interactiveType,
		"action": action,
	}
	if bodyText != "" {
		interactive["body"] = map[string]any{"text": bodyText}
	}
	if footerText != "" {
		interactive["footer"] = map[string]any{"text": footerText}
	}
	if header != nil {
		interactive["header"] = toPayloadMap(header)
	}

	return s.send(ctx, target, "interactive", interactive)
}

// SendText sends a plain text message.
func (s *MessagesService) SendText(ctx context.Context, in TextMessage) (*SendMessageResponse, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	return s.send(ctx, in.MessageTarget, "text", map[string]any{
		"body":        in.Body,
		"preview_url": in.PreviewURL,
	})
}

// SendImage sends an image by media ID or link.
func (s *MessagesService) SendImage(ctx context.Context, in ImageMessage) (*SendMessageResponse, error) {
	if err := in.MessageTarget.validate(); err != nil {
		return nil, err
	}
	if err := in.Image.validate("image"); err != nil {
		return nil, err
	}
	return s.send(ctx, in.MessageTarget, "image", toPayloadMap(in.Image))
}

// SendAudio sends an audio clip or voice note by media ID or link.
func (s *MessagesService) SendAudio(ctx context.Context, in AudioMessage) (*SendMessageResponse, error) {
	if err := in.MessageTarget.validate(); err != nil {
		return nil, err
	}
	if err := in.Audio.validate(); err != nil {
		return nil, err
	}
	return s.send(ctx, in.MessageTarget, "audio", toPayloadMap(in.Audio))
}

// SendVideo sends a video by media ID or link.
func (s *MessagesService) SendVideo(ctx context.Context, in VideoMessage) (*SendMessageResponse, error) {
	if err := in.MessageTarget.validate(); err != nil {
		return nil, err
	}
	if err := in.Video.validate("video"); err != nil {
		return nil, err
	}
	return s.send(ctx, in.MessageTarget, "video", toPayloadMap(in.Video))
}

// SendDocument sends a document by media ID or link.
func (s *MessagesService) SendDocument(ctx context.Context, in DocumentMessage) (*SendMessageResponse, error) {
	if err := in.MessageTarget.validate(); err != nil {
		return nil, err
	}
	if err := in.Document.validate(); err != nil {
		return nil, err
	}
	return s.send(ctx, in.MessageTarget, "document", toPayloadMap(in.Document))
}

// SendSticker sends a sticker by media ID or link.
func (s *MessagesService) SendSticker(ctx context.Context, in StickerMessage) (*SendMessageResponse, error) {
	if err := in.MessageTarget.validate(); err != nil {
		return nil, err
	}
	if err := in.Sticker.validate(); err != nil {
		return nil, err
	}
	return s.send(ctx, in.MessageTarget, "sticker", toPayloadMap(in.Sticker))
}

// SendLocation sends a geographic location.
func (s *MessagesService) SendLocation(ctx context.Context, in LocationMessage) (*SendMessageResponse, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	return s.send(ctx, in.MessageTarget, "location", toPayloadMap(in.Location))
}

// SendContacts sends one or more contact cards.
func (s *MessagesService) SendContacts(ctx context.Context, in ContactsMessage) (*SendMessageResponse, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	contacts := make([]any, len(in.Contacts))
	for i, c := range in.Contacts {
		contacts[i] = toPayloadMap(c)
	}
	return s.send(ctx, in.MessageTarget, "contacts", contacts)
}

// SendReaction reacts to a message with an emoji. An empty emoji removes a
// previous reaction.
func (s *MessagesService) SendReaction(ctx context.Context, in ReactionMessage) (*SendMessageResponse, error) {
	if err := in.MessageTarget.validate(); err != nil {
		return nil, err
	}
	if in.Reaction.MessageID == "" {
		return nil, validationErrorf("reaction message_id must be set")
	}
	return s.send(ctx, in.MessageTarget, "reaction", map[string]any{
		"message_id": in.Reaction.MessageID,
		"emoji":      in.Reaction.Emoji,
	})
}

// SendTemplate sends a pre-approved message template.
func (s *MessagesService) SendTemplate(ctx context.Context, in TemplateMessage) (*SendMessageResponse, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	return s.send(ctx, in.MessageTarget, "template", toPayloadMap(in.Template))
}

// SendInteractiveButtons sends up to three tappable reply buttons.
func (s *MessagesService) SendInteractiveButtons(ctx context.Context, in InteractiveButtonsMessage) (*SendMessageResponse, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	buttons := make([]any, len(in.Buttons))
	for i, b := range in.Buttons {
		buttons[i] = map[string]any{
			"type":  "reply",
			"reply": map[string]any{"id": b.ID, "title": b.Title},
		}
	}
	action := map[string]any{"buttons": buttons}

	return s.sendInteractive(ctx, in.MessageTarget, "button", action, in.BodyText, in.FooterText, in.Header)
}

// SendInteractiveList sends a sectioned selection list.
func (s *MessagesService) SendInteractiveList(ctx context.Context, in InteractiveListMessage) (*SendMessageResponse, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	sections := make([]any, len(in.Sections))
	for i, sec := range in.Sections {
		rows := make([]any, len(sec.Rows))
		for j, r := range sec.Rows {
			rows[j] = toPayloadMap(r)
		}
		m := map[string]any{"rows": rows}
		if sec.Title != "" {
			m["title"] = sec.Title
		}
		sections[i] = m
	}
	action := map[string]any{"button": in.ButtonText, "sections": sections}

	return s.sendInteractive(ctx, in.MessageTarget, "list", action, in.BodyText, in.FooterText, in.Header)
}

// SendInteractiveProduct sends a single catalog product.
func (s *MessagesService) SendInteractiveProduct(ctx context.Context, in InteractiveProductMessage) (*SendMessageResponse, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	action := map[string]any{
		"catalog_id":          in.CatalogID,
		"product_retailer_id": in.ProductRetailerID,
	}
	return s.sendInteractive(ctx, in.MessageTarget, "product", action, in.BodyText, in.FooterText, nil)
}

// SendInteractiveProductList sends a multi-section product list.
func (s *MessagesService) SendInteractiveProductList(ctx context.Context, in InteractiveProductListMessage) (*SendMessageResponse, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	sections := make([]any, len(in.Sections))
	for i, sec := range in.Sections {
		items := make([]any, len(sec.ProductItems))
		for j, p := range sec.ProductItems {
			items[j] = toPayloadMap(p)
		}
		sections[i] = map[string]any{"title": sec.Title, "product_items": items}
	}
	action := map[string]any{"catalog_id": in.CatalogID, "sections": sections}

	return s.sendInteractive(ctx, in.MessageTarget, "product_list", action, in.BodyText, in.FooterText, &in.Header)
}

// SendInteractiveFlow sends a WhatsApp Flow entry point.
func (s *MessagesService) SendInteractiveFlow(ctx context.Context, in InteractiveFlowMessage) (*SendMessageResponse, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	params := in.Parameters
	if params.FlowMessageVersion == "" {
		params.FlowMessageVersion = "3"
	}
	action := map[string]any{"name": "flow", "parameters": toPayloadMap(params)}

	return s.sendInteractive(ctx, in.MessageTarget, "flow", action, in.BodyText, in.FooterText, in.Header)
}

// SendInteractiveCtaURL sends a call-to-action URL button.
func (s *MessagesService) SendInteractiveCtaURL(ctx context.Context, in InteractiveCtaURLMessage) (*SendMessageResponse, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	action := map[string]any{"name": "cta_url", "parameters": toPayloadMap(in.Parameters)}

	return s.sendInteractive(ctx, in.MessageTarget, "cta_url", action, in.BodyText, in.FooterText, in.Header)
}

// SendInteractiveLocationRequest asks the user to share their location.
func (s *MessagesService) SendInteractiveLocationRequest(ctx context.Context, in InteractiveLocationRequestMessage) (*SendMessageResponse, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	action := map[string]any{"name": "send_location"}

	return s.sendInteractive(ctx, in.MessageTarget, "location_request_message", action, in.BodyText, in.FooterText, nil)
}

// SendInteractiveCatalog sends the catalog browser entry point.
func (s *MessagesService) SendInteractiveCatalog(ctx context.Context, in InteractiveCatalogMessage) (*SendMessageResponse, error) {
	if err := in.MessageTarget.validate(); err != nil {
		return nil, err
	}

	action := map[string]any{"name": "catalog_message"}
	if in.Parameters != nil && in.Parameters.ThumbnailProductRetailerID != "" {
		action["parameters"] = toPayloadMap(in.Parameters)
	}

	return s.sendInteractive(ctx, in.MessageTarget, "catalog_message", action, in.BodyText, "", nil)
}

// SendInteractiveRaw sends a caller-assembled interactive payload without
// reshaping it.
func (s *MessagesService) SendInteractiveRaw(ctx context.Context, target MessageTarget, interactive map[string]any) (*SendMessageResponse, error) {
	if err := target.validate(); err != nil {
		return nil, err
	}
	if len(interactive) == 0 {
		return nil, validationErrorf("interactive payload must not be empty")
	}
	return s.send(ctx, target, "interactive", interactive)
}

// MarkRead marks an inbound message as read.
func (s *MessagesService) MarkRead(ctx context.Context, in MarkReadInput) (map[string]any, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	body := map[string]any{
		"messaging_product": "whatsapp",
		"status":            "read",
		"message_id":        in.MessageID,
	}
	resp, err := s.client.Post(ctx, fmt.Sprintf("%s/messages", in.PhoneNumberID), body)
	if err != nil {
		return nil, err
	}
	m, _ := resp.(map[string]any)
	return m, nil
}
