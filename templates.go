package whatsapp

import (
	"context"
	"fmt"
	"strconv"
)

// TemplatesService manages message templates on a WhatsApp Business
// Account.
type TemplatesService struct {
	client *Client
}

// TemplateListInput filters a template listing. All filter fields are
// optional; Limit of zero means the API default page size.
type TemplateListInput struct {
	BusinessAccountID string
	Before            string
	After             string
	Limit             int
	Order             string
	Status            string
	Name              string
	Category          string
	Language          string
}

// TemplateCreateInput describes a new template submitted for review.
type TemplateCreateInput struct {
	BusinessAccountID   string
	Name                string
	Language            string
	Category            string
	ParameterFormat     string
	AllowCategoryChange *bool
	Components          []map[string]any
}

func (in TemplateCreateInput) validate() error {
	if in.BusinessAccountID == "" {
		return validationErrorf("business account ID must be set")
	}
	if in.Name == "" {
		return validationErrorf("template name must be set")
	}
	if in.Language == "" {
		return validationErrorf("template language must be set")
	}
	if in.Category == "" {
		return validationErrorf("template category must be set")
	}
	return nil
}

// TemplateDeleteInput identifies a template to delete. HSMID narrows the
// deletion to one template ID instead of every language variant sharing
// the name.
type TemplateDeleteInput struct {
	BusinessAccountID string
	Name              string
	HSMID             string
}

// List returns the templates of a business account matching the given
// filters.
func (s *TemplatesService) List(ctx context.Context, in TemplateListInput) (*TemplateListResponse, error) {
	if in.BusinessAccountID == "" {
		return nil, validationErrorf("business account ID must be set")
	}

	params := map[string]string{}
	if in.Limit > 0 {
		params["limit"] = strconv.Itoa(in.Limit)
	}
	if in.Before != "" {
		params["before"] = in.Before
	}
	if in.After != "" {
		params["after"] = in.After
	}
	if in.Order != "" {
		params["order"] = in.Order
	}
	if in.Status != "" {
		params["status"] = in.Status
	}
	if in.Name != "" {
		params["name"] = in.Name
	}
	if in.Category != "" {
		params["category"] = in.Category
	}
	if in.Language != "" {
		params["language"] = in.Language
	}

	resp, err := s.client.Get(ctx, fmt.Sprintf("%s/message_templates", in.BusinessAccountID), params)
	if err != nil {
		return nil, err
	}

	out := new(TemplateListResponse)
	if err := decodeInto(resp, out); err != nil {
		return nil, fmt.Errorf("decode template list response: %w", err)
	}
	return out, nil
}

// Create submits a template for review and returns its ID and initial
// status.
func (s *TemplatesService) Create(ctx context.Context, in TemplateCreateInput) (*TemplateCreateResponse, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	body := map[string]any{
		"name":       in.Name,
		"language":   in.Language,
		"category":   in.Category,
		"components": in.Components,
	}
	if in.ParameterFormat != "" {
		body["parameter_format"] = in.ParameterFormat
	}
	if in.AllowCategoryChange != nil {
		body["allow_category_change"] = *in.AllowCategoryChange
	}

	resp, err := s.client.Post(ctx, fmt.Sprintf("%s/message_templates", in.BusinessAccountID), body)
	if err != nil {
		return nil, err
	}

	out := new(TemplateCreateResponse)
	if err := decodeInto(resp, out); err != nil {
		return nil, fmt.Errorf("decode template create response: %w", err)
	}
	return out, nil
}

// Delete removes a template by name, optionally narrowed to a single
// template ID.
func (s *TemplatesService) Delete(ctx context.Context, in TemplateDeleteInput) (*TemplateDeleteResponse, error) {
	if in.BusinessAccountID == "" {
		return nil, validationErrorf("business account ID must be set")
	}
	if in.Name == "" {
		return nil, validationErrorf("template name must be set")
	}

	params := map[string]string{"name": in.Name}
	if in.HSMID != "" {
		params["hsm_id"] = in.HSMID
	}

	resp, err := s.client.Delete(ctx, fmt.Sprintf("%s/message_templates", in.BusinessAccountID), params)
	if err != nil {
		return nil, err
	}

	out := new(TemplateDeleteResponse)
	if err := decodeInto(resp, out); err != nil {
		return nil, fmt.Errorf("decode template delete response: %w", err)
	}
	return out, nil
}
