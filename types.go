package whatsapp

// Response types for the Graph API surfaces. Transport responses are
// snake_cased before decoding, so json tags here use snake_case.

type ContactInfo struct {
	Input string `json:"input"`
	WaID  string `json:"wa_id"`
}

type MessageInfo struct {
	ID            string `json:"id"`
	MessageStatus string `json:"message_status,omitempty"`
}

// SendMessageResponse is returned by every message send operation.
type SendMessageResponse struct {
	MessagingProduct string        `json:"messaging_product"`
	Contacts         []ContactInfo `json:"contacts"`
	Messages         []MessageInfo `json:"messages"`
}

type PagingCursors struct {
	Before string `json:"before,omitempty"`
	After  string `json:"after,omitempty"`
}

type Paging struct {
	Cursors  PagingCursors `json:"cursors"`
	Next     string        `json:"next,omitempty"`
	Previous string        `json:"previous,omitempty"`
}

// MediaUploadResponse is returned by MediaService.Upload.
type MediaUploadResponse struct {
	ID string `json:"id"`
}

// MediaMetadata describes an uploaded media object, including the
// short-lived CDN URL used for download.
type MediaMetadata struct {
	MessagingProduct string `json:"messaging_product"`
	URL              string `json:"url"`
	MimeType         string `json:"mime_type"`
	SHA256           string `json:"sha256"`
	FileSize         string `json:"file_size"`
	ID               string `json:"id"`
}

type MessageTemplate struct {
	ID                   string           `json:"id"`
	Name                 string           `json:"name"`
	Category             string           `json:"category,omitempty"`
	Language             string           `json:"language,omitempty"`
	Status               string           `json:"status,omitempty"`
	Components           []map[string]any `json:"components,omitempty"`
	QualityScoreCategory string           `json:"quality_score_category,omitempty"`
	LastUpdatedTime      string           `json:"last_updated_time,omitempty"`
}

type TemplateListResponse struct {
	Data   []MessageTemplate `json:"data"`
	Paging Paging            `json:"paging"`
}

type TemplateCreateResponse struct {
	ID       string `json:"id"`
	Status   string `json:"status,omitempty"`
	Category string `json:"category,omitempty"`
}

type TemplateDeleteResponse struct {
	Success bool `json:"success"`
}

type BusinessProfile struct {
	About             string   `json:"about,omitempty"`
	Address           string   `json:"address,omitempty"`
	Description       string   `json:"description,omitempty"`
	Email             string   `json:"email,omitempty"`
	ProfilePictureURL string   `json:"profile_picture_url,omitempty"`
	Websites          []string `json:"websites,omitempty"`
	Vertical          string   `json:"vertical,omitempty"`
	MessagingProduct  string   `json:"messaging_product,omitempty"`
}

type BusinessProfileResponse struct {
	Data []BusinessProfile `json:"data"`
}
