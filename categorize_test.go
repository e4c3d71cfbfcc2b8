package whatsapp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorizeError_CodeTable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code     int
		expected ErrorCategory
	}{
		{0, CategoryAuthorization},
		{190, CategoryAuthorization},
		{10, CategoryPermission},
		{200, CategoryPermission},
		{299, CategoryPermission},
		{4, CategoryThrottling},
		{80007, CategoryThrottling},
		{130429, CategoryThrottling},
		{131048, CategoryThrottling},
		{131056, CategoryThrottling},
		{33, CategoryParameter},
		{100, CategoryParameter},
		{130472, CategoryParameter},
		{131008, CategoryParameter},
		{131009, CategoryParameter},
		{131021, CategoryParameter},
		{131026, CategoryParameter},
		{135000, CategoryParameter},
		{131051, CategoryMedia},
		{131052, CategoryMedia},
		{131053, CategoryMedia},
		{132000, CategoryTemplate},
		{132001, CategoryTemplate},
		{132005, CategoryTemplate},
		{132007, CategoryTemplate},
		{132012, CategoryTemplate},
		{132015, CategoryTemplate},
		{132016, CategoryTemplate},
		{132068, CategoryFlow},
		{132069, CategoryFlow},
		{133000, CategoryPhoneRegistration},
		{133004, CategoryPhoneRegistration},
		{133005, CategoryPhoneRegistration},
		{133006, CategoryPhoneRegistration},
		{133008, CategoryPhoneRegistration},
		{133009, CategoryPhoneRegistration},
		{133010, CategoryPhoneRegistration},
		{133015, CategoryPhoneRegistration},
		{133016, CategoryPhoneRegistration},
		{131047, CategoryReengagementWindow},
		{368, CategoryIntegrity},
		{130497, CategoryIntegrity},
		{131031, CategoryIntegrity},
	}

	for _, tt := range tests {
		tt := tt
		code := tt.code
		assert.Equal(t, tt.expected, CategorizeError(&code, 400), "code %d", tt.code)
	}
}

func TestCategorizeError_KnownCodeWinsOverServerStatus(t *testing.T) {
	t.Parallel()

	// A documented code is authoritative even when the HTTP status is 5xx.
	code := 190
	assert.Equal(t, CategoryAuthorization, CategorizeError(&code, 500))

	code = 4
	assert.Equal(t, CategoryThrottling, CategorizeError(&code, 503))
}

func TestCategorizeError_Fallbacks(t *testing.T) {
	t.Parallel()

	unknownCode := 999999

	tests := []struct {
		name       string
		code       *int
		httpStatus int
		expected   ErrorCategory
	}{
		{"nil code 5xx", nil, 500, CategoryServer},
		{"nil code 503", nil, 503, CategoryServer},
		{"nil code 4xx", nil, 400, CategoryUnknown},
		{"nil code no status", nil, 0, CategoryUnknown},
		{"unknown code 4xx", &unknownCode, 400, CategoryUnknown},
		{"unknown code 5xx", &unknownCode, 500, CategoryServer},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, CategorizeError(tt.code, tt.httpStatus))
		})
	}
}

func TestCategorizeError_ZeroCodeIsAuthorization(t *testing.T) {
	t.Parallel()

	// Code 0 is a real documented code, distinct from an absent code.
	zero := 0
	assert.Equal(t, CategoryAuthorization, CategorizeError(&zero, 400))
	assert.Equal(t, CategoryUnknown, CategorizeError(nil, 400))
}
