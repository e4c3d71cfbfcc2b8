package whatsapp

import (
	"context"
	"fmt"
)

const businessProfileFields = "about,address,description,email,profile_picture_url,websites,vertical"

// PhoneNumbersService handles phone number registration and verification,
// plus the business profile and settings sub-resources.
type PhoneNumbersService struct {
	client *Client

	BusinessProfile *BusinessProfileService
	Settings        *SettingsService
}

// NewPhoneNumbersService builds the phone numbers surface with its
// sub-services wired to the same client.
func NewPhoneNumbersService(c *Client) *PhoneNumbersService {
	return &PhoneNumbersService{
		client:          c,
		BusinessProfile: &BusinessProfileService{client: c},
		Settings:        &SettingsService{client: c},
	}
}

// RequestCodeInput asks for a verification code to be delivered by SMS or
// voice call in the given language.
type RequestCodeInput struct {
	PhoneNumberID string
	CodeMethod    string // "SMS" or "VOICE"
	Language      string
}

func (in RequestCodeInput) validate() error {
	if in.PhoneNumberID == "" {
		return validationErrorf("phone number ID must be set")
	}
	if in.CodeMethod != "SMS" && in.CodeMethod != "VOICE" {
		return validationErrorf("code method must be SMS or VOICE, got %q", in.CodeMethod)
	}
	if len(in.Language) < 2 {
		return validationErrorf("language must be at least 2 characters")
	}
	return nil
}

// VerifyCodeInput submits a received verification code.
type VerifyCodeInput struct {
	PhoneNumberID string
	Code          string
}

// RegisterInput registers a phone number for Cloud API messaging. Pin is
// the six-digit two-step verification PIN.
type RegisterInput struct {
	PhoneNumberID          string
	Pin                    string
	DataLocalizationRegion string
}

// UpdateBusinessProfileInput carries the profile fields to change. Zero
// fields are left untouched.
type UpdateBusinessProfileInput struct {
	PhoneNumberID     string
	About             string
	Address           string
	Description       string
	Email             string
	ProfilePictureURL string
	Websites          []string
	Vertical          string
}

// RequestCode asks the API to deliver a verification code to the number.
func (s *PhoneNumbersService) RequestCode(ctx context.Context, in RequestCodeInput) (map[string]any, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	resp, err := s.client.Post(ctx, fmt.Sprintf("%s/request_code", in.PhoneNumberID), map[string]any{
		"code_method": in.CodeMethod,
		"language":    in.Language,
	})
	if err != nil {
		return nil, err
	}
	m, _ := resp.(map[string]any)
	return m, nil
}

// VerifyCode submits the verification code received via RequestCode.
func (s *PhoneNumbersService) VerifyCode(ctx context.Context, in VerifyCodeInput) (map[string]any, error) {
	if in.PhoneNumberID == "" {
		return nil, validationErrorf("phone number ID must be set")
	}
	if in.Code == "" {
		return nil, validationErrorf("verification code must be set")
	}

	resp, err := s.client.Post(ctx, fmt.Sprintf("%s/verify_code", in.PhoneNumberID), map[string]any{
		"code": in.Code,
	})
	if err != nil {
		return nil, err
	}
	m, _ := resp.(map[string]any)
	return m, nil
}

// Register enables a verified phone number for Cloud API messaging.
func (s *PhoneNumbersService) Register(ctx context.Context, in RegisterInput) (map[string]any, error) {
	if in.PhoneNumberID == "" {
		return nil, validationErrorf("phone number ID must be set")
	}
	if in.Pin == "" {
		return nil, validationErrorf("two-step verification pin must be set")
	}

	body := map[string]any{
		"messaging_product": "whatsapp",
		"pin":               in.Pin,
	}
	if in.DataLocalizationRegion != "" {
		body["data_localization_region"] = in.DataLocalizationRegion
	}

	resp, err := s.client.Post(ctx, fmt.Sprintf("%s/register", in.PhoneNumberID), body)
	if err != nil {
		return nil, err
	}
	m, _ := resp.(map[string]any)
	return m, nil
}

// Deregister disables Cloud API messaging for a phone number.
func (s *PhoneNumbersService) Deregister(ctx context.Context, phoneNumberID string) (map[string]any, error) {
	if phoneNumberID == "" {
		return nil, validationErrorf("phone number ID must be set")
	}

	resp, err := s.client.Post(ctx, fmt.Sprintf("%s/deregister", phoneNumberID), map[string]any{})
	if err != nil {
		return nil, err
	}
	m, _ := resp.(map[string]any)
	return m, nil
}

// BusinessProfileService reads and updates the WhatsApp business profile
// attached to a phone number.
type BusinessProfileService struct {
	client *Client
}

// Get returns the business profile of a phone number.
func (s *BusinessProfileService) Get(ctx context.Context, phoneNumberID string) (*BusinessProfileResponse, error) {
	if phoneNumberID == "" {
		return nil, validationErrorf("phone number ID must be set")
	}

	resp, err := s.client.Get(ctx, fmt.Sprintf("%s/whatsapp_business_profile", phoneNumberID), map[string]string{
		"fields": businessProfileFields,
	})
	if err != nil {
		return nil, err
	}

	out := new(BusinessProfileResponse)
	if err := decodeInto(resp, out); err != nil {
		return nil, fmt.Errorf("decode business profile response: %w", err)
	}
	return out, nil
}

// Update changes the set fields of the business profile.
func (s *BusinessProfileService) Update(ctx context.Context, in UpdateBusinessProfileInput) (map[string]any, error) {
	if in.PhoneNumberID == "" {
		return nil, validationErrorf("phone number ID must be set")
	}

	body := map[string]any{"messaging_product": "whatsapp"}
	if in.About != "" {
		body["about"] = in.About
	}
	if in.Address != "" {
		body["address"] = in.Address
	}
	if in.Description != "" {
		body["description"] = in.Description
	}
	if in.Email != "" {
		body["email"] = in.Email
	}
	if in.ProfilePictureURL != "" {
		body["profile_picture_url"] = in.ProfilePictureURL
	}
	if len(in.Websites) > 0 {
		body["websites"] = in.Websites
	}
	if in.Vertical != "" {
		body["vertical"] = in.Vertical
	}

	resp, err := s.client.Post(ctx, fmt.Sprintf("%s/whatsapp_business_profile", in.PhoneNumberID), body)
	if err != nil {
		return nil, err
	}
	m, _ := resp.(map[string]any)
	return m, nil
}

// SettingsService reads and updates per-number API settings.
type SettingsService struct {
	client *Client
}

// Get returns the settings of a phone number.
func (s *SettingsService) Get(ctx context.Context, phoneNumberID string) (map[string]any, error) {
	if phoneNumberID == "" {
		return nil, validationErrorf("phone number ID must be set")
	}

	resp, err := s.client.Get(ctx, fmt.Sprintf("%s/settings", phoneNumberID), nil)
	if err != nil {
		return nil, err
	}
	m, _ := resp.(map[string]any)
	return m, nil
}

// Update writes the given settings for a phone number.
func (s *SettingsService) Update(ctx context.Context, phoneNumberID string, settings map[string]any) (map[string]any, error) {
	if phoneNumberID == "" {
		return nil, validationErrorf("phone number ID must be set")
	}

	resp, err := s.client.Post(ctx, fmt.Sprintf("%s/settings", phoneNumberID), settings)
	if err != nil {
		return nil, err
	}
	m, _ := resp.(map[string]any)
	return m, nil
}
