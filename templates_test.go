package whatsapp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplatesList(t *testing.T) {
	t.Parallel()

	var path, query string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		query = r.URL.RawQuery
		_, _ = w.Write([]byte(`{
			"data": [
				{"id": "t-1", "name": "order_update", "language": "en_US", "status": "APPROVED", "category": "UTILITY"}
			],
			"paging": {"cursors": {"before": "b1", "after": "a1"}, "next": "https://next.example.com"}
		}`))
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	resp, err := client.Templates.List(context.Background(), TemplateListInput{
		BusinessAccountID: "waba-1",
		Limit:             25,
		Status:            "APPROVED",
		Name:              "order_update",
	})
	require.NoError(t, err)

	assert.Equal(t, "/v23.0/waba-1/message_templates", path)
	assert.Contains(t, query, "limit=25")
	assert.Contains(t, query, "status=APPROVED")
	assert.Contains(t, query, "name=order_update")

	require.Len(t, resp.Data, 1)
	assert.Equal(t, "order_update", resp.Data[0].Name)
	assert.Equal(t, "APPROVED", resp.Data[0].Status)
	assert.Equal(t, "a1", resp.Paging.Cursors.After)
	assert.Equal(t, "https://next.example.com", resp.Paging.Next)
}

func TestTemplatesList_NoFilters(t *testing.T) {
	t.Parallel()

	var query string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"data": [], "paging": {}}`))
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	_, err := client.Templates.List(context.Background(), TemplateListInput{BusinessAccountID: "waba-1"})
	require.NoError(t, err)
	assert.Empty(t, query)
}

func TestTemplatesList_Validation(t *testing.T) {
	t.Parallel()

	client := testClient(t, "http://unused.invalid")

	_, err := client.Templates.List(context.Background(), TemplateListInput{})
	require.Error(t, err)
	assert.Equal(t, "business account ID must be set", err.Error())
}

func TestTemplatesCreate(t *testing.T) {
	t.Parallel()

	var path string
	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		body = decodeRequestBody(t, r)
		_, _ = w.Write([]byte(`{"id": "t-9", "status": "PENDING", "category": "UTILITY"}`))
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	allow := true
	resp, err := client.Templates.Create(context.Background(), TemplateCreateInput{
		BusinessAccountID:   "waba-1",
		Name:                "order_update",
		Language:            "en_US",
		Category:            "UTILITY",
		ParameterFormat:     "POSITIONAL",
		AllowCategoryChange: &allow,
		Components: []map[string]any{
			{"type": "BODY", "text": "Your order {{1}} shipped."},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "/v23.0/waba-1/message_templates", path)
	assert.Equal(t, "order_update", body["name"])
	assert.Equal(t, "en_US", body["language"])
	assert.Equal(t, "UTILITY", body["category"])
	assert.Equal(t, "POSITIONAL", body["parameter_format"])
	assert.Equal(t, true, body["allow_category_change"])

	components := body["components"].([]any)
	require.Len(t, components, 1)

	assert.Equal(t, "t-9", resp.ID)
	assert.Equal(t, "PENDING", resp.Status)
}

func TestTemplatesCreate_OptionalFieldsOmitted(t *testing.T) {
	t.Parallel()

	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body = decodeRequestBody(t, r)
		_, _ = w.Write([]byte(`{"id": "t-9"}`))
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	_, err := client.Templates.Create(context.Background(), TemplateCreateInput{
		BusinessAccountID: "waba-1",
		Name:              "order_update",
		Language:          "en_US",
		Category:          "UTILITY",
	})
	require.NoError(t, err)

	assert.NotContains(t, body, "parameter_format")
	assert.NotContains(t, body, "allow_category_change")
}

func TestTemplatesCreate_Validation(t *testing.T) {
	t.Parallel()

	client := testClient(t, "http://unused.invalid")

	tests := []struct {
		name    string
		input   TemplateCreateInput
		wantErr string
	}{
		{"missing account", TemplateCreateInput{Name: "n", Language: "en", Category: "UTILITY"}, "business account ID must be set"},
		{"missing name", TemplateCreateInput{BusinessAccountID: "w", Language: "en", Category: "UTILITY"}, "template name must be set"},
		{"missing language", TemplateCreateInput{BusinessAccountID: "w", Name: "n", Category: "UTILITY"}, "template language must be set"},
		{"missing category", TemplateCreateInput{BusinessAccountID: "w", Name: "n", Language: "en"}, "template category must be set"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := client.Templates.Create(context.Background(), tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestTemplatesDelete(t *testing.T) {
	t.Parallel()

	var method, query string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		query = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"success": true}`))
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	resp, err := client.Templates.Delete(context.Background(), TemplateDeleteInput{
		BusinessAccountID: "waba-1",
		Name:              "order_update",
		HSMID:             "t-1",
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodDelete, method)
	assert.Contains(t, query, "name=order_update")
	assert.Contains(t, query, "hsm_id=t-1")
	assert.True(t, resp.Success)
}

func TestTemplatesDelete_Validation(t *testing.T) {
	t.Parallel()

	client := testClient(t, "http://unused.invalid")

	_, err := client.Templates.Delete(context.Background(), TemplateDeleteInput{Name: "x"})
	require.Error(t, err)
	assert.Equal(t, "business account ID must be set", err.Error())

	_, err = client.Templates.Delete(context.Background(), TemplateDeleteInput{BusinessAccountID: "waba-1"})
	require.Error(t, err)
	assert.Equal(t, "template name must be set", err.Error())
}
