package whatsapp

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
)

// MediaService uploads, inspects, downloads and deletes media objects.
type MediaService struct {
	client *Client
}

// UploadMediaInput describes a media upload. File holds the raw content;
// MIMEType must match one of the types accepted by the API for the given
// media kind.
type UploadMediaInput struct {
	PhoneNumberID string
	File          []byte
	Filename      string
	MIMEType      string
}

func (in UploadMediaInput) validate() error {
	if in.PhoneNumberID == "" {
		return validationErrorf("phone number ID must be set")
	}
	if len(in.File) == 0 {
		return validationErrorf("media file content must not be empty")
	}
	return nil
}

// Upload uploads media content and returns the assigned media ID.
func (s *MediaService) Upload(ctx context.Context, in UploadMediaInput) (*MediaUploadResponse, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	filename := in.Filename
	if filename == "" {
		filename = "file"
	}
	mimeType := in.MIMEType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	resp, err := s.client.do(ctx, requestSpec{
		method: "POST",
		path:   fmt.Sprintf("%s/media", in.PhoneNumberID),
		formData: map[string]string{
			"messaging_product": "whatsapp",
			"type":              mimeType,
		},
		files: []formFile{{
			param:       "file",
			filename:    filename,
			contentType: mimeType,
			content:     in.File,
		}},
	})
	if err != nil {
		return nil, err
	}

	out := new(MediaUploadResponse)
	if err := decodeInto(resp, out); err != nil {
		return nil, fmt.Errorf("decode media upload response: %w", err)
	}
	return out, nil
}

// Get retrieves the metadata of an uploaded media object, including the
// short-lived CDN URL.
func (s *MediaService) Get(ctx context.Context, mediaID string) (*MediaMetadata, error) {
	if mediaID == "" {
		return nil, validationErrorf("media ID must be set")
	}

	resp, err := s.client.Get(ctx, mediaID, nil)
	if err != nil {
		return nil, err
	}

	out := new(MediaMetadata)
	if err := decodeInto(resp, out); err != nil {
		return nil, fmt.Errorf("decode media metadata: %w", err)
	}
	return out, nil
}

// Delete removes an uploaded media object.
func (s *MediaService) Delete(ctx context.Context, mediaID string) (map[string]any, error) {
	if mediaID == "" {
		return nil, validationErrorf("media ID must be set")
	}

	resp, err := s.client.Delete(ctx, mediaID, nil)
	if err != nil {
		return nil, err
	}
	m, _ := resp.(map[string]any)
	return m, nil
}

// Download resolves the CDN URL of a media object and fetches its content.
// The CDN is tried without auth first; a 401 or 403 triggers one retry with
// the bearer token attached. Set useAuth to send the token on the first
// attempt.
func (s *MediaService) Download(ctx context.Context, mediaID string, useAuth bool) ([]byte, error) {
	meta, err := s.Get(ctx, mediaID)
	if err != nil {
		return nil, err
	}

	var resp *resty.Response
	if useAuth {
		resp, err = s.client.FetchAuthenticated(ctx, meta.URL, nil)
	} else {
		resp, err = s.client.FetchRaw(ctx, meta.URL, nil)
	}
	if err != nil {
		return nil, err
	}

	if resp.StatusCode() == 401 || resp.StatusCode() == 403 {
		resp, err = s.client.FetchAuthenticated(ctx, meta.URL, nil)
		if err != nil {
			return nil, err
		}
	}

	if resp.StatusCode() >= 400 {
		return nil, fmt.Errorf("download media %s: unexpected status %d", mediaID, resp.StatusCode())
	}
	return resp.Body(), nil
}
