package whatsapp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-resty/resty/v2"
)

// testClient builds a client pointed at a test server, with an empty
// version segment so paths line up with the handler mux.
func testClient(t *testing.T, serverURL string, opts ...Option) *Client {
	t.Helper()

	opts = append([]Option{WithBaseURL(serverURL)}, opts...)
	client, err := New("test-token", opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(client.Close)
	return client
}

func TestNew(t *testing.T) {
	t.Parallel()

	client, err := New("test-token", WithGraphVersion("v22.0"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer client.Close()

	if client.baseURL != "https://graph.facebook.com" {
		t.Errorf("expected baseURL=https://graph.facebook.com, got %s", client.baseURL)
	}

	if client.version != "v22.0" {
		t.Errorf("expected version=v22.0, got %s", client.version)
	}

	if !client.ownsHTTP {
		t.Error("expected client to own its default transport")
	}

	if client.Messages == nil || client.Media == nil || client.Templates == nil ||
		client.PhoneNumbers == nil || client.Flows == nil {
		t.Error("expected all resource services to be wired")
	}

	if client.PhoneNumbers.BusinessProfile == nil || client.PhoneNumbers.Settings == nil {
		t.Error("expected phone number sub-services to be wired")
	}
}

func TestNew_EmptyToken(t *testing.T) {
	t.Parallel()

	_, err := New("")

	if err == nil {
		t.Fatal("expected error for empty token")
	}

	if err.Error() != "access token must be set" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNew_ExternalHTTPClient(t *testing.T) {
	t.Parallel()

	client, err := New("test-token", WithHTTPClient(resty.New()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if client.ownsHTTP {
		t.Error("expected externally supplied transport to be borrowed")
	}

	// Close must leave a borrowed transport untouched.
	client.Close()
}

func TestURL(t *testing.T) {
	t.Parallel()

	client, err := New("test-token", WithBaseURL("https://graph.example.com"), WithGraphVersion("v23.0"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer client.Close()

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"relative path", "123/messages", "https://graph.example.com/v23.0/123/messages"},
		{"leading slash trimmed", "/123/messages", "https://graph.example.com/v23.0/123/messages"},
		{"absolute URL passthrough", "https://cdn.example.com/media/42", "https://cdn.example.com/media/42"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := client.URL(tt.path); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestDo_SetsHeaders(t *testing.T) {
	t.Parallel()

	var authHeader, contentType, accept, customHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		contentType = r.Header.Get("Content-Type")
		accept = r.Header.Get("Accept")
		customHeader = r.Header.Get("X-Custom")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := testClient(t, server.URL, WithRequestHeader("X-Custom", "custom-value"))

	_, err := client.Get(context.Background(), "123", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if authHeader != "Bearer test-token" {
		t.Errorf("expected 'Bearer test-token', got %s", authHeader)
	}

	if contentType != "application/json" {
		t.Errorf("expected Content-Type=application/json, got %s", contentType)
	}

	if accept != "application/json" {
		t.Errorf("expected Accept=application/json, got %s", accept)
	}

	if customHeader != "custom-value" {
		t.Errorf("expected X-Custom=custom-value, got %s", customHeader)
	}
}

func TestDo_AuthorizationNotOverridable(t *testing.T) {
	t.Parallel()

	var authHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	_, err := client.do(context.Background(), requestSpec{
		method:  "GET",
		path:    "123",
		headers: map[string]string{"Authorization": "Bearer stolen"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if authHeader != "Bearer test-token" {
		t.Errorf("expected per-request Authorization to be ignored, got %s", authHeader)
	}
}

func TestDo_SnakeCasesResponse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"messagingProduct":"whatsapp","contacts":[{"waId":"15551234567"}]}`))
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	resp, err := client.Get(context.Background(), "123", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m, ok := resp.(map[string]any)
	if !ok {
		t.Fatalf("expected map response, got %T", resp)
	}

	if m["messaging_product"] != "whatsapp" {
		t.Errorf("expected messaging_product key, got %v", m)
	}

	contacts, _ := m["contacts"].([]any)
	if len(contacts) != 1 {
		t.Fatalf("expected 1 contact, got %v", m["contacts"])
	}
	contact, _ := contacts[0].(map[string]any)
	if contact["wa_id"] != "15551234567" {
		t.Errorf("expected nested keys converted, got %v", contact)
	}
}

func TestDo_GraphAPIError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", "2.5")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"Too many requests","code":4,"type":"OAuthException","fbtrace_id":"abc123"}}`))
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	_, err := client.Post(context.Background(), "123/messages", map[string]any{})
	if err == nil {
		t.Fatal("expected error for 429 response")
	}

	var graphErr *GraphAPIError
	if !errors.As(err, &graphErr) {
		t.Fatalf("expected *GraphAPIError, got %T: %v", err, err)
	}

	if graphErr.Message != "Too many requests" {
		t.Errorf("expected message 'Too many requests', got %s", graphErr.Message)
	}

	if graphErr.HTTPStatus != 429 {
		t.Errorf("expected HTTPStatus=429, got %d", graphErr.HTTPStatus)
	}

	if graphErr.Code == nil || *graphErr.Code != 4 {
		t.Errorf("expected code=4, got %v", graphErr.Code)
	}

	if graphErr.Category != CategoryThrottling {
		t.Errorf("expected category=throttling, got %s", graphErr.Category)
	}

	if graphErr.Retry.Action != ActionRetryAfter {
		t.Errorf("expected action=retry_after, got %s", graphErr.Retry.Action)
	}

	if graphErr.Retry.RetryAfterMS == nil || *graphErr.Retry.RetryAfterMS != 2500 {
		t.Errorf("expected retry_after_ms=2500, got %v", graphErr.Retry.RetryAfterMS)
	}

	if graphErr.FBTraceID != "abc123" {
		t.Errorf("expected fbtrace_id=abc123, got %s", graphErr.FBTraceID)
	}
}

func TestDo_NonJSONErrorBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("Bad Gateway"))
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	_, err := client.Get(context.Background(), "123", nil)

	var graphErr *GraphAPIError
	if !errors.As(err, &graphErr) {
		t.Fatalf("expected *GraphAPIError, got %T: %v", err, err)
	}

	if graphErr.Message != "Unknown Graph API error" {
		t.Errorf("expected fallback message, got %s", graphErr.Message)
	}

	if graphErr.Category != CategoryServer {
		t.Errorf("expected category=server, got %s", graphErr.Category)
	}
}

func TestDo_QueryParams(t *testing.T) {
	t.Parallel()

	var query string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	_, err := client.Delete(context.Background(), "123/message_templates", map[string]string{"name": "order_update"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(query, "name=order_update") {
		t.Errorf("expected name query param, got %s", query)
	}
}

func TestFetchRaw_NoAuthHeader(t *testing.T) {
	t.Parallel()

	var authHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		_, _ = w.Write([]byte("binary-content"))
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	resp, err := client.FetchRaw(context.Background(), server.URL+"/media/42", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if authHeader != "" {
		t.Errorf("expected no Authorization header, got %s", authHeader)
	}

	if string(resp.Body()) != "binary-content" {
		t.Errorf("unexpected body: %s", resp.Body())
	}
}

func TestFetchAuthenticated_BearerToken(t *testing.T) {
	t.Parallel()

	var authHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		_, _ = w.Write([]byte("binary-content"))
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	_, err := client.FetchAuthenticated(context.Background(), server.URL+"/media/42", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if authHeader != "Bearer test-token" {
		t.Errorf("expected 'Bearer test-token', got %s", authHeader)
	}
}

func TestFetchRaw_NoErrorRaising(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	resp, err := client.FetchRaw(context.Background(), server.URL+"/media/42", nil)
	if err != nil {
		t.Fatalf("expected no error for 401, got %v", err)
	}

	if resp.StatusCode() != 401 {
		t.Errorf("expected status 401, got %d", resp.StatusCode())
	}
}

func TestDecodeInto(t *testing.T) {
	t.Parallel()

	src := map[string]any{
		"messaging_product": "whatsapp",
		"messages":          []any{map[string]any{"id": "wamid.1"}},
	}

	out := new(SendMessageResponse)
	if err := decodeInto(src, out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.MessagingProduct != "whatsapp" {
		t.Errorf("expected messaging_product=whatsapp, got %s", out.MessagingProduct)
	}

	if len(out.Messages) != 1 || out.Messages[0].ID != "wamid.1" {
		t.Errorf("unexpected messages: %+v", out.Messages)
	}
}

func TestDo_ContextCancelled(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Get(ctx, "123", nil)
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}

	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestDo_EmptyBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	resp, err := client.Get(context.Background(), "123", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m, ok := resp.(map[string]any)
	if !ok || len(m) != 0 {
		t.Errorf("expected empty map, got %#v", resp)
	}
}

// decodeRequestBody is a helper shared by the service tests.
func decodeRequestBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()

	body := map[string]any{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		t.Fatalf("decode request body: %v", err)
	}
	return body
}
