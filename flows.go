package whatsapp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
)

// FlowsService manages WhatsApp Flows: creation, asset updates, lifecycle
// transitions and previews.
type FlowsService struct {
	client *Client
}

// CreateFlowInput describes a new flow on a WhatsApp Business Account.
// Categories defaults to ["OTHER"]; Publish publishes the flow right
// after creation.
type CreateFlowInput struct {
	WABAID     string
	Name       string
	Categories []string
	FlowJSON   map[string]any
	Publish    bool
}

func (in CreateFlowInput) validate() error {
	if in.WABAID == "" {
		return validationErrorf("WABA ID must be set")
	}
	if in.Name == "" {
		return validationErrorf("flow name must be set")
	}
	if len(in.FlowJSON) == 0 {
		return validationErrorf("flow JSON must not be empty")
	}
	return nil
}

// UpdateFlowAssetInput replaces the flow.json asset of a flow. Exactly one
// of JSONData and File must be set.
type UpdateFlowAssetInput struct {
	FlowID   string
	JSONData map[string]any
	File     []byte
}

func (in UpdateFlowAssetInput) validate() error {
	if in.FlowID == "" {
		return validationErrorf("flow ID must be set")
	}
	if len(in.JSONData) == 0 && len(in.File) == 0 {
		return validationErrorf("either flow JSON data or a file must be provided")
	}
	return nil
}

// PreviewFlowInput requests a preview URL for a flow. Interactive selects
// the interactive preview; Fields narrows the returned fields.
type PreviewFlowInput struct {
	FlowID      string
	Interactive *bool
	Fields      string
}

// ListFlowsInput pages through the flows of a WhatsApp Business Account.
type ListFlowsInput struct {
	WABAID string
	Limit  int
	After  string
}

// DeployFlowInput is the create-or-update input used by Deploy. A set
// FlowID updates that flow's asset; an empty one creates a new flow under
// the WABA.
type DeployFlowInput struct {
	WABAID     string
	Name       string
	Categories []string
	FlowJSON   map[string]any
	FlowID     string
	Publish    bool
}

// DeployFlowResult reports the outcome of a Deploy call on top of the raw
// API response.
type DeployFlowResult struct {
	FlowID    string
	Published bool
	Response  map[string]any
}

// Create registers a new flow, uploading the flow JSON as a multipart
// asset, and optionally publishes it.
func (s *FlowsService) Create(ctx context.Context, in CreateFlowInput) (map[string]any, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	categories := in.Categories
	if len(categories) == 0 {
		categories = []string{"OTHER"}
	}
	categoriesJSON, err := json.Marshal(categories)
	if err != nil {
		return nil, fmt.Errorf("encode flow categories: %w", err)
	}
	flowJSON, err := json.Marshal(in.FlowJSON)
	if err != nil {
		return nil, fmt.Errorf("encode flow JSON: %w", err)
	}

	resp, err := s.client.do(ctx, requestSpec{
		method: "POST",
		path:   fmt.Sprintf("%s/flows", in.WABAID),
		formData: map[string]string{
			"name":       in.Name,
			"categories": string(categoriesJSON),
		},
		files: []formFile{{
			param:       "flow_json",
			filename:    "flow.json",
			contentType: "application/json",
			content:     flowJSON,
		}},
	})
	if err != nil {
		return nil, err
	}
	m, _ := resp.(map[string]any)

	if in.Publish {
		if id := stringField(m, "id"); id != "" {
			if _, err := s.Publish(ctx, id); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// UpdateAsset replaces the flow.json asset of an existing flow.
func (s *FlowsService) UpdateAsset(ctx context.Context, in UpdateFlowAssetInput) (map[string]any, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	content := in.File
	if len(in.JSONData) > 0 {
		encoded, err := json.Marshal(in.JSONData)
		if err != nil {
			return nil, fmt.Errorf("encode flow JSON: %w", err)
		}
		content = encoded
	}

	resp, err := s.client.do(ctx, requestSpec{
		method: "POST",
		path:   fmt.Sprintf("%s/assets", in.FlowID),
		formData: map[string]string{
			"name":       "flow.json",
			"asset_type": "FLOW_JSON",
		},
		files: []formFile{{
			param:       "file",
			filename:    "flow.json",
			contentType: "application/json",
			content:     content,
		}},
	})
	if err != nil {
		return nil, err
	}
	m, _ := resp.(map[string]any)
	return m, nil
}

// Publish moves a draft flow to the published state.
func (s *FlowsService) Publish(ctx context.Context, flowID string) (map[string]any, error) {
	return s.postLifecycle(ctx, flowID, "publish")
}

// Deprecate marks a published flow as deprecated.
func (s *FlowsService) Deprecate(ctx context.Context, flowID string) (map[string]any, error) {
	return s.postLifecycle(ctx, flowID, "deprecate")
}

func (s *FlowsService) postLifecycle(ctx context.Context, flowID, action string) (map[string]any, error) {
	if flowID == "" {
		return nil, validationErrorf("flow ID must be set")
	}

	resp, err := s.client.Post(ctx, fmt.Sprintf("%s/%s", flowID, action), map[string]any{})
	if err != nil {
		return nil, err
	}
	m, _ := resp.(map[string]any)
	return m, nil
}

// Preview returns the web preview details of a flow.
func (s *FlowsService) Preview(ctx context.Context, in PreviewFlowInput) (map[string]any, error) {
	if in.FlowID == "" {
		return nil, validationErrorf("flow ID must be set")
	}

	params := map[string]string{}
	if in.Interactive != nil {
		params["interactive"] = strconv.FormatBool(*in.Interactive)
	}
	if in.Fields != "" {
		params["fields"] = in.Fields
	}

	resp, err := s.client.Get(ctx, fmt.Sprintf("%s/preview", in.FlowID), params)
	if err != nil {
		return nil, err
	}
	m, _ := resp.(map[string]any)
	return m, nil
}

// Get returns a flow, optionally narrowed to the given comma-separated
// fields.
func (s *FlowsService) Get(ctx context.Context, flowID, fields string) (map[string]any, error) {
	if flowID == "" {
		return nil, validationErrorf("flow ID must be set")
	}

	var params map[string]string
	if fields != "" {
		params = map[string]string{"fields": fields}
	}

	resp, err := s.client.Get(ctx, flowID, params)
	if err != nil {
		return nil, err
	}
	m, _ := resp.(map[string]any)
	return m, nil
}

// List pages through the flows of a WhatsApp Business Account.
func (s *FlowsService) List(ctx context.Context, in ListFlowsInput) (map[string]any, error) {
	if in.WABAID == "" {
		return nil, validationErrorf("WABA ID must be set")
	}

	params := map[string]string{}
	if in.Limit > 0 {
		params["limit"] = strconv.Itoa(in.Limit)
	}
	if in.After != "" {
		params["after"] = in.After
	}

	resp, err := s.client.Get(ctx, fmt.Sprintf("%s/flows", in.WABAID), params)
	if err != nil {
		return nil, err
	}
	m, _ := resp.(map[string]any)
	return m, nil
}

// Deploy creates the flow when FlowID is empty and updates its asset
// otherwise, then optionally publishes. The returned result carries the
// effective flow ID alongside the raw response.
func (s *FlowsService) Deploy(ctx context.Context, in DeployFlowInput) (*DeployFlowResult, error) {
	var (
		resp map[string]any
		err  error
	)
	if in.FlowID != "" {
		resp, err = s.UpdateAsset(ctx, UpdateFlowAssetInput{FlowID: in.FlowID, JSONData: in.FlowJSON})
	} else {
		resp, err = s.Create(ctx, CreateFlowInput{
			WABAID:     in.WABAID,
			Name:       in.Name,
			Categories: in.Categories,
			FlowJSON:   in.FlowJSON,
		})
	}
	if err != nil {
		return nil, err
	}

	flowID := in.FlowID
	if flowID == "" {
		flowID = stringField(resp, "id")
	}

	if in.Publish && flowID != "" {
		if _, err := s.Publish(ctx, flowID); err != nil {
			return nil, err
		}
	}

	return &DeployFlowResult{
		FlowID:    flowID,
		Published: in.Publish,
		Response:  resp,
	}, nil
}
