package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
)

const (
	defaultBaseURL      = "https://graph.facebook.com"
	defaultGraphVersion = "v23.0"
)

// Client is a WhatsApp Business Cloud API client backed by resty. All API
// surfaces hang off the resource services (Messages, Media, Templates,
// PhoneNumbers, Flows); the Get/Post/Delete methods expose the raw
// transport for endpoints not covered by a service.
type Client struct {
	accessToken string
	baseURL     string
	version     string
	http        *resty.Client
	ownsHTTP    bool
	options     *Options

	Messages     *MessagesService
	Media        *MediaService
	Templates    *TemplatesService
	PhoneNumbers *PhoneNumbersService
	Flows        *FlowsService
}

// New creates a Client authenticated with the given access token. The
// default transport is owned by the client and torn down by Close; supply
// an external one with [WithHTTPClient] to share a connection pool, in
// which case Close leaves it untouched.
func New(accessToken string, opts ...Option) (*Client, error) {
	if accessToken == "" {
		return nil, errors.New("access token must be set")
	}

	options := newClientOptions()
	for _, opt := range opts {
		opt(options)
	}

	if err := options.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	httpClient := options.httpClient
	ownsHTTP := false
	if httpClient == nil {
		httpClient = resty.New().SetTimeout(options.timeout)
		if options.retryCount > 0 {
			httpClient.
				SetRetryCount(options.retryCount).
				SetRetryWaitTime(options.retryWaitTime).
				SetRetryMaxWaitTime(options.retryMaxWaitTime).
				AddRetryCondition(options.retryPolicy)
		}
		ownsHTTP = true
	}

	c := &Client{
		accessToken: accessToken,
		baseURL:     options.baseURL,
		version:     options.graphVersion,
		http:        httpClient,
		ownsHTTP:    ownsHTTP,
		options:     options,
	}

	c.Messages = &MessagesService{client: c}
	c.Media = &MediaService{client: c}
	c.Templates = &TemplatesService{client: c}
	c.PhoneNumbers = NewPhoneNumbersService(c)
	c.Flows = &FlowsService{client: c}

	return c, nil
}

// Close releases the underlying connections of an owned transport. It is a
// no-op when the transport was supplied externally.
func (c *Client) Close() {
	if c.ownsHTTP {
		c.http.GetClient().CloseIdleConnections()
	}
}

// URL joins a resource path onto <baseURL>/<version>/. Absolute URLs pass
// through unchanged.
func (c *Client) URL(path string) string {
	if strings.HasPrefix(path, "http") {
		return path
	}
	return fmt.Sprintf("%s/%s/%s", c.baseURL, c.version, strings.TrimPrefix(path, "/"))
}

type formFile struct {
	param       string
	filename    string
	contentType string
	content     []byte
}

type requestSpec struct {
	method   string
	path     string
	body     any
	params   map[string]string
	formData map[string]string
	files    []formFile
	headers  map[string]string
}

// do issues one request and decodes the response. A status >= 400 becomes a
// *GraphAPIError built from the decoded body and the Retry-After header; a
// success body is decoded and recursively converted to snake_case keys.
func (c *Client) do(ctx context.Context, spec requestSpec) (any, error) {
	req := c.http.R().SetContext(ctx)

	multipart := len(spec.files) > 0 || len(spec.formData) > 0
	for k, v := range c.options.requestHeaders {
		// resty computes the multipart boundary content type itself
		if multipart && strings.EqualFold(k, "Content-Type") {
			continue
		}
		req.SetHeader(k, v)
	}
	for k, v := range spec.headers {
		if strings.EqualFold(k, "Authorization") {
			continue
		}
		req.SetHeader(k, v)
	}
	req.SetHeader("Authorization", "Bearer "+c.accessToken)

	if spec.body != nil {
		req.SetBody(spec.body)
	}
	if len(spec.params) > 0 {
		req.SetQueryParams(spec.params)
	}
	if len(spec.formData) > 0 {
		req.SetFormData(spec.formData)
	}
	for _, f := range spec.files {
		if f.contentType != "" {
			req.SetMultipartField(f.param, f.filename, f.contentType, bytes.NewReader(f.content))
		} else {
			req.SetFileReader(f.param, f.filename, bytes.NewReader(f.content))
		}
	}

	c.options.requestLogger.Debugf("%s %s", spec.method, spec.path)

	resp, err := req.Execute(spec.method, c.URL(spec.path))
	if err != nil {
		c.options.requestLogger.Errorf("%s %s failed: %v", spec.method, spec.path, err)
		return nil, fmt.Errorf("%s %s: %w", spec.method, spec.path, err)
	}

	body := map[string]any{}
	if len(resp.Body()) > 0 {
		// A body that is not a JSON object (rare) is kept only in Raw.
		_ = json.Unmarshal(resp.Body(), &body)
	}

	if resp.StatusCode() >= 400 {
		graphErr := GraphAPIErrorFromResponse(resp.StatusCode(), body, resp.Header().Get("Retry-After"))
		c.options.requestLogger.Warnf("%s %s: graph api error %d (category %s)",
			spec.method, spec.path, resp.StatusCode(), graphErr.Category)
		return nil, graphErr
	}

	var decoded any = map[string]any{}
	if len(resp.Body()) > 0 {
		if err := json.Unmarshal(resp.Body(), &decoded); err != nil {
			return nil, fmt.Errorf("%s %s: decode response: %w", spec.method, spec.path, err)
		}
	}

	return ToSnakeDeep(decoded), nil
}

// Get issues a GET request against a versioned Graph API path.
func (c *Client) Get(ctx context.Context, path string, params map[string]string) (any, error) {
	return c.do(ctx, requestSpec{method: "GET", path: path, params: params})
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) (any, error) {
	return c.do(ctx, requestSpec{method: "POST", path: path, body: body})
}

// Delete issues a DELETE request against a versioned Graph API path.
func (c *Client) Delete(ctx context.Context, path string, params map[string]string) (any, error) {
	return c.do(ctx, requestSpec{method: "DELETE", path: path, params: params})
}

// FetchRaw fetches a URL without auth headers and without JSON decoding or
// error raising, e.g. for CDN-hosted media content.
func (c *Client) FetchRaw(ctx context.Context, url string, headers map[string]string) (*resty.Response, error) {
	return c.fetch(ctx, url, headers, false)
}

// FetchAuthenticated fetches a URL with the bearer token attached, without
// JSON decoding or error raising.
func (c *Client) FetchAuthenticated(ctx context.Context, url string, headers map[string]string) (*resty.Response, error) {
	return c.fetch(ctx, url, headers, true)
}

func (c *Client) fetch(ctx context.Context, url string, headers map[string]string, withAuth bool) (*resty.Response, error) {
	req := c.http.R().SetContext(ctx)
	for k, v := range headers {
		req.SetHeader(k, v)
	}
	if withAuth {
		req.SetHeader("Authorization", "Bearer "+c.accessToken)
	}

	resp, err := req.Get(url)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	return resp, nil
}

// decodeInto re-marshals a decoded (snake_case) response value into a typed
// struct via its json tags.
func decodeInto(v any, out any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}
