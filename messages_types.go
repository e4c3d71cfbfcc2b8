package whatsapp

// MessageTarget holds the addressing fields shared by every outbound
// message input.
type MessageTarget struct {
	PhoneNumberID         string
	To                    string
	RecipientType         string // "individual" (default) or "group"
	ContextMessageID      string
	BizOpaqueCallbackData string
}

func (t MessageTarget) recipientType() string {
	if t.RecipientType == "" {
		return "individual"
	}
	return t.RecipientType
}

func (t MessageTarget) validate() error {
	if t.PhoneNumberID == "" {
		return validationErrorf("phone_number_id must be set")
	}
	if t.To == "" {
		return validationErrorf("to must be set")
	}
	if len(t.BizOpaqueCallbackData) > 512 {
		return validationErrorf("biz_opaque_callback_data must not exceed 512 characters")
	}
	return nil
}

// TextMessage is the input for MessagesService.SendText.
type TextMessage struct {
	MessageTarget
	Body       string
	PreviewURL bool
}

func (m TextMessage) validate() error {
	if err := m.MessageTarget.validate(); err != nil {
		return err
	}
	if m.Body == "" {
		return validationErrorf("body must be set")
	}
	return nil
}

// MediaRef points at previously uploaded media by ID, or at an externally
// hosted file by link. Exactly one of ID and Link must be set.
type MediaRef struct {
	ID      string `json:"id,omitempty"`
	Link    string `json:"link,omitempty"`
	Caption string `json:"caption,omitempty"`
}

func (r MediaRef) validate(kind string) error {
	if (r.ID == "") == (r.Link == "") {
		return validationErrorf("%s must set exactly one of id or link", kind)
	}
	return nil
}

// AudioRef is a MediaRef variant without caption; Voice marks a voice note.
type AudioRef struct {
	ID    string `json:"id,omitempty"`
	Link  string `json:"link,omitempty"`
	Voice bool   `json:"voice,omitempty"`
}

func (r AudioRef) validate() error {
	if (r.ID == "") == (r.Link == "") {
		return validationErrorf("audio must set exactly one of id or link")
	}
	return nil
}

// DocumentRef is a MediaRef variant with an optional filename.
type DocumentRef struct {
	ID       string `json:"id,omitempty"`
	Link     string `json:"link,omitempty"`
	Caption  string `json:"caption,omitempty"`
	Filename string `json:"filename,omitempty"`
}

func (r DocumentRef) validate() error {
	if (r.ID == "") == (r.Link == "") {
		return validationErrorf("document must set exactly one of id or link")
	}
	if len(r.Filename) > 240 {
		return validationErrorf("document filename must not exceed 240 characters")
	}
	return nil
}

// StickerRef points at sticker media by ID or link.
type StickerRef struct {
	ID   string `json:"id,omitempty"`
	Link string `json:"link,omitempty"`
}

func (r StickerRef) validate() error {
	if (r.ID == "") == (r.Link == "") {
		return validationErrorf("sticker must set exactly one of id or link")
	}
	return nil
}

type ImageMessage struct {
	MessageTarget
	Image MediaRef
}

type AudioMessage struct {
	MessageTarget
	Audio AudioRef
}

type VideoMessage struct {
	MessageTarget
	Video MediaRef
}

type DocumentMessage struct {
	MessageTarget
	Document DocumentRef
}

type StickerMessage struct {
	MessageTarget
	Sticker StickerRef
}

// LocationPayload is a geographic point with optional labeling.
type LocationPayload struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"name,omitempty"`
	Address   string  `json:"address,omitempty"`
}

type LocationMessage struct {
	MessageTarget
	Location LocationPayload
}

func (m LocationMessage) validate() error {
	if err := m.MessageTarget.validate(); err != nil {
		return err
	}
	if len(m.Location.Name) > 100 {
		return validationErrorf("location name must not exceed 100 characters")
	}
	if len(m.Location.Address) > 300 {
		return validationErrorf("location address must not exceed 300 characters")
	}
	return nil
}

// Contact card fields, per the Graph API contacts payload.

type ContactName struct {
	FormattedName string `json:"formatted_name"`
	FirstName     string `json:"first_name,omitempty"`
	LastName      string `json:"last_name,omitempty"`
	MiddleName    string `json:"middle_name,omitempty"`
	Suffix        string `json:"suffix,omitempty"`
	Prefix        string `json:"prefix,omitempty"`
}

type ContactAddress struct {
	Street      string `json:"street,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	Zip         string `json:"zip,omitempty"`
	Country     string `json:"country,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
	Type        string `json:"type,omitempty"`
}

type ContactEmail struct {
	Email string `json:"email,omitempty"`
	Type  string `json:"type,omitempty"`
}

type ContactOrg struct {
	Company    string `json:"company,omitempty"`
	Department string `json:"department,omitempty"`
	Title      string `json:"title,omitempty"`
}

type ContactPhone struct {
	Phone string `json:"phone,omitempty"`
	WaID  string `json:"wa_id,omitempty"`
	Type  string `json:"type,omitempty"`
}

type ContactURL struct {
	URL  string `json:"url,omitempty"`
	Type string `json:"type,omitempty"`
}

type Contact struct {
	Name      ContactName      `json:"name"`
	Birthday  string           `json:"birthday,omitempty"`
	Addresses []ContactAddress `json:"addresses,omitempty"`
	Emails    []ContactEmail   `json:"emails,omitempty"`
	Org       *ContactOrg      `json:"org,omitempty"`
	Phones    []ContactPhone   `json:"phones,omitempty"`
	URLs      []ContactURL     `json:"urls,omitempty"`
}

type ContactsMessage struct {
	MessageTarget
	Contacts []Contact
}

func (m ContactsMessage) validate() error {
	if err := m.MessageTarget.validate(); err != nil {
		return err
	}
	if len(m.Contacts) == 0 {
		return validationErrorf("contacts must not be empty")
	}
	for i, c := range m.Contacts {
		if c.Name.FormattedName == "" {
			return validationErrorf("contact at index %d missing formatted_name", i)
		}
	}
	return nil
}

// ReactionPayload targets a message with an emoji; an empty emoji removes
// the reaction.
type ReactionPayload struct {
	MessageID string `json:"message_id"`
	Emoji     string `json:"emoji"`
}

type ReactionMessage struct {
	MessageTarget
	Reaction ReactionPayload
}

type TemplateLanguage struct {
	Code   string `json:"code"`
	Policy string `json:"policy,omitempty"`
}

type TemplateComponent struct {
	Type       string           `json:"type"`
	SubType    string           `json:"sub_type,omitempty"`
	Index      *int             `json:"index,omitempty"`
	Parameters []map[string]any `json:"parameters"`
}

type TemplatePayload struct {
	Name       string              `json:"name"`
	Language   TemplateLanguage    `json:"language"`
	Components []TemplateComponent `json:"components,omitempty"`
}

type TemplateMessage struct {
	MessageTarget
	Template TemplatePayload
}

func (m TemplateMessage) validate() error {
	if err := m.MessageTarget.validate(); err != nil {
		return err
	}
	if m.Template.Name == "" {
		return validationErrorf("template name must be set")
	}
	if m.Template.Language.Code == "" {
		return validationErrorf("template language code must be set")
	}
	return nil
}

// InteractiveHeader is the optional header block of interactive messages.
// Type selects which of the remaining fields applies.
type InteractiveHeader struct {
	Type     string            `json:"type"` // "text", "image", "video" or "document"
	Text     string            `json:"text,omitempty"`
	Image    map[string]string `json:"image,omitempty"`
	Video    map[string]string `json:"video,omitempty"`
	Document map[string]string `json:"document,omitempty"`
}

type InteractiveButton struct {
	ID    string
	Title string
}

type InteractiveButtonsMessage struct {
	MessageTarget
	BodyText   string
	FooterText string
	Header     *InteractiveHeader
	Buttons    []InteractiveButton
}

func (m InteractiveButtonsMessage) validate() error {
	if err := m.MessageTarget.validate(); err != nil {
		return err
	}
	if m.BodyText == "" {
		return validationErrorf("body_text must be set")
	}
	if len(m.BodyText) > 1024 {
		return validationErrorf("body_text must not exceed 1024 characters")
	}
	if len(m.FooterText) > 60 {
		return validationErrorf("footer_text must not exceed 60 characters")
	}
	if len(m.Buttons) < 1 || len(m.Buttons) > 3 {
		return validationErrorf("buttons must contain between 1 and 3 entries")
	}
	for i, b := range m.Buttons {
		if len(b.ID) > 256 {
			return validationErrorf("button id at index %d must not exceed 256 characters", i)
		}
		if len(b.Title) > 20 {
			return validationErrorf("button title at index %d must not exceed 20 characters", i)
		}
	}
	return nil
}

type ListRow struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type ListSection struct {
	Title string
	Rows  []ListRow
}

type InteractiveListMessage struct {
	MessageTarget
	BodyText   string
	ButtonText string
	Header     *InteractiveHeader
	FooterText string
	Sections   []ListSection
}

func (m InteractiveListMessage) validate() error {
	if err := m.MessageTarget.validate(); err != nil {
		return err
	}
	if m.BodyText == "" {
		return validationErrorf("body_text must be set")
	}
	if len(m.BodyText) > 4096 {
		return validationErrorf("body_text must not exceed 4096 characters")
	}
	if m.ButtonText == "" || len(m.ButtonText) > 20 {
		return validationErrorf("button_text must be set and not exceed 20 characters")
	}
	if len(m.Sections) < 1 || len(m.Sections) > 10 {
		return validationErrorf("sections must contain between 1 and 10 entries")
	}
	for i, s := range m.Sections {
		if len(s.Rows) < 1 || len(s.Rows) > 10 {
			return validationErrorf("section at index %d must contain between 1 and 10 rows", i)
		}
	}
	return nil
}

type InteractiveProductMessage struct {
	MessageTarget
	BodyText          string
	FooterText        string
	CatalogID         string
	ProductRetailerID string
}

func (m InteractiveProductMessage) validate() error {
	if err := m.MessageTarget.validate(); err != nil {
		return err
	}
	if m.CatalogID == "" || m.ProductRetailerID == "" {
		return validationErrorf("catalog_id and product_retailer_id must be set")
	}
	return nil
}

type ProductItem struct {
	ProductRetailerID string `json:"product_retailer_id"`
}

type ProductSection struct {
	Title        string
	ProductItems []ProductItem
}

type InteractiveProductListMessage struct {
	MessageTarget
	BodyText   string
	FooterText string
	Header     InteractiveHeader
	CatalogID  string
	Sections   []ProductSection
}

func (m InteractiveProductListMessage) validate() error {
	if err := m.MessageTarget.validate(); err != nil {
		return err
	}
	if m.BodyText == "" {
		return validationErrorf("body_text must be set")
	}
	if m.CatalogID == "" {
		return validationErrorf("catalog_id must be set")
	}
	if len(m.Sections) < 1 || len(m.Sections) > 10 {
		return validationErrorf("sections must contain between 1 and 10 entries")
	}
	for i, s := range m.Sections {
		if len(s.ProductItems) < 1 || len(s.ProductItems) > 30 {
			return validationErrorf("section at index %d must contain between 1 and 30 product items", i)
		}
	}
	return nil
}

// FlowParameters configures the flow launched by an interactive flow
// message.
type FlowParameters struct {
	FlowID             string         `json:"flow_id"`
	FlowCTA            string         `json:"flow_cta"`
	FlowMessageVersion string         `json:"flow_message_version"`
	FlowToken          string         `json:"flow_token,omitempty"`
	FlowAction         string         `json:"flow_action,omitempty"` // "navigate" or "data_exchange"
	FlowActionPayload  map[string]any `json:"flow_action_payload,omitempty"`
}

type InteractiveFlowMessage struct {
	MessageTarget
	BodyText   string
	FooterText string
	Header     *InteractiveHeader
	Parameters FlowParameters
}

func (m InteractiveFlowMessage) validate() error {
	if err := m.MessageTarget.validate(); err != nil {
		return err
	}
	if m.BodyText == "" {
		return validationErrorf("body_text must be set")
	}
	if m.Parameters.FlowID == "" {
		return validationErrorf("flow_id must be set")
	}
	if m.Parameters.FlowCTA == "" || len(m.Parameters.FlowCTA) > 20 {
		return validationErrorf("flow_cta must be set and not exceed 20 characters")
	}
	return nil
}

type CtaURLParameters struct {
	DisplayText string `json:"display_text"`
	URL         string `json:"url"`
}

type InteractiveCtaURLMessage struct {
	MessageTarget
	BodyText   string
	Header     *InteractiveHeader
	FooterText string
	Parameters CtaURLParameters
}

func (m InteractiveCtaURLMessage) validate() error {
	if err := m.MessageTarget.validate(); err != nil {
		return err
	}
	if m.BodyText == "" {
		return validationErrorf("body_text must be set")
	}
	if m.Parameters.DisplayText == "" || len(m.Parameters.DisplayText) > 20 {
		return validationErrorf("display_text must be set and not exceed 20 characters")
	}
	if m.Parameters.URL == "" {
		return validationErrorf("url must be set")
	}
	return nil
}

type LocationRequestParameters struct {
	RequestMessage string
}

type InteractiveLocationRequestMessage struct {
	MessageTarget
	BodyText   string
	FooterText string
	Parameters LocationRequestParameters
}

func (m InteractiveLocationRequestMessage) validate() error {
	if err := m.MessageTarget.validate(); err != nil {
		return err
	}
	if m.BodyText == "" {
		return validationErrorf("body_text must be set")
	}
	return nil
}

type CatalogParameters struct {
	ThumbnailProductRetailerID string `json:"thumbnail_product_retailer_id,omitempty"`
}

type InteractiveCatalogMessage struct {
	MessageTarget
	BodyText   string
	Parameters *CatalogParameters
}

// MarkReadInput identifies the message to mark as read.
type MarkReadInput struct {
	PhoneNumberID string
	MessageID     string
}

func (m MarkReadInput) validate() error {
	if m.PhoneNumberID == "" {
		return validationErrorf("phone_number_id must be set")
	}
	if m.MessageID == "" {
		return validationErrorf("message_id must be set")
	}
	return nil
}
