package whatsapp

// GraphAPIError is the single error surface for failed Graph API responses.
// It captures the decoded error body and attaches the derived category and
// retry hint. Instances are never mutated after construction.
type GraphAPIError struct {
	Message      string
	HTTPStatus   int
	Code         *int
	Type         string
	Details      string
	ErrorSubcode *int
	FBTraceID    string
	ErrorData    any
	Raw          any

	Category ErrorCategory
	Retry    RetryHint
}

func (e *GraphAPIError) Error() string {
	return e.Message
}

// IsAuthError reports whether the error is an authorization failure.
func (e *GraphAPIError) IsAuthError() bool {
	return e.Category == CategoryAuthorization
}

// IsRateLimit reports whether the error is a throttling failure.
func (e *GraphAPIError) IsRateLimit() bool {
	return e.Category == CategoryThrottling
}

// IsTemplateError reports whether the error relates to message templates.
func (e *GraphAPIError) IsTemplateError() bool {
	return e.Category == CategoryTemplate
}

// RequiresTokenRefresh reports whether the advised action is a token refresh.
func (e *GraphAPIError) RequiresTokenRefresh() bool {
	return e.Retry.Action == ActionRefreshToken
}

// ToMap returns a loggable summary of the error. Raw body, error_data and
// details are deliberately excluded.
func (e *GraphAPIError) ToMap() map[string]any {
	var code any
	if e.Code != nil {
		code = *e.Code
	}
	var retryAfter any
	if e.Retry.RetryAfterMS != nil {
		retryAfter = *e.Retry.RetryAfterMS
	}
	return map[string]any{
		"message":     e.Message,
		"http_status": e.HTTPStatus,
		"code":        code,
		"type":        e.Type,
		"category":    string(e.Category),
		"retry": map[string]any{
			"action":         string(e.Retry.Action),
			"retry_after_ms": retryAfter,
		},
		"fbtrace_id": e.FBTraceID,
	}
}

// GraphAPIErrorFromResponse builds a GraphAPIError from a failed response.
// The body may wrap the error fields under an "error" key; a flat body is
// accepted as a fallback. retryAfterHeader is the raw Retry-After header
// value, empty when absent.
func GraphAPIErrorFromResponse(httpStatus int, body map[string]any, retryAfterHeader string) *GraphAPIError {
	errFields := body
	if wrapped, ok := body["error"].(map[string]any); ok {
		errFields = wrapped
	}

	message := stringField(errFields, "message")
	if message == "" {
		message = "Unknown Graph API error"
	}

	details := stringField(errFields, "error_user_msg")
	if details == "" {
		details = stringField(errFields, "details")
	}

	code := intField(errFields, "code")

	e := &GraphAPIError{
		Message:      message,
		HTTPStatus:   httpStatus,
		Code:         code,
		Type:         stringField(errFields, "type"),
		Details:      details,
		ErrorSubcode: intField(errFields, "error_subcode"),
		FBTraceID:    stringField(errFields, "fbtrace_id"),
		ErrorData:    errFields["error_data"],
		Raw:          body,
	}
	e.Category = CategorizeError(code, httpStatus)
	e.Retry = GetRetryHint(e.Category, retryAfterHeader)
	return e
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

// intField reads a numeric field, tolerating the float64 representation
// produced by encoding/json. Returns nil when the field is absent or not a
// number.
func intField(m map[string]any, key string) *int {
	switch n := m[key].(type) {
	case float64:
		i := int(n)
		return &i
	case int:
		i := n
		return &i
	default:
		return nil
	}
}
