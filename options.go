package whatsapp

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

type Option func(*Options)

type Options struct {
	baseURL          string
	graphVersion     string
	timeout          time.Duration
	httpClient       *resty.Client
	retryCount       int
	retryWaitTime    time.Duration
	retryMaxWaitTime time.Duration
	requestLogger    RequestLogger
	retryPolicy      func(*resty.Response, error) bool
	requestHeaders   map[string]string
}

func newClientOptions() *Options {
	return &Options{
		baseURL:          defaultBaseURL,
		graphVersion:     defaultGraphVersion,
		timeout:          30 * time.Second,
		retryCount:       0,
		retryWaitTime:    500 * time.Millisecond,
		retryMaxWaitTime: 3 * time.Second,
		requestLogger:    &NoopLogger{},
		retryPolicy:      DefaultRetryPolicy,
		requestHeaders: map[string]string{
			"Content-Type": "application/json",
			"Accept":       "application/json",
		},
	}
}

// Validate reports the first invalid option value. Called by New before the
// underlying resty client is configured.
func (o *Options) Validate() error {
	if o.baseURL == "" {
		return errors.New("baseURL must not be empty")
	}

	if o.graphVersion == "" {
		return errors.New("graphVersion must not be empty")
	}

	if o.retryCount < 0 {
		return errors.New("retryCount must be non-negative")
	}

	if o.retryCount > 100 {
		return errors.New("retryCount must not exceed 100")
	}

	if o.retryWaitTime < 100*time.Millisecond {
		return errors.New("retryWaitTime must be at least 100ms")
	}

	if o.retryWaitTime > time.Minute {
		return errors.New("retryWaitTime must not exceed 1m0s")
	}

	if o.retryMaxWaitTime < 100*time.Millisecond {
		return errors.New("retryMaxWaitTime must be at least 100ms")
	}

	if o.retryMaxWaitTime > 5*time.Minute {
		return errors.New("retryMaxWaitTime must not exceed 5m0s")
	}

	if o.retryMaxWaitTime < o.retryWaitTime {
		return fmt.Errorf("retryMaxWaitTime (%v) must be greater than or equal to retryWaitTime (%v)",
			o.retryMaxWaitTime, o.retryWaitTime)
	}

	if o.requestLogger == nil {
		return errors.New("requestLogger must not be nil")
	}

	if o.retryPolicy == nil {
		return errors.New("retryPolicy must not be nil")
	}

	return nil
}

// WithBaseURL overrides the Graph API base URL. Trailing slashes are
// trimmed. Empty values are ignored.
func WithBaseURL(baseURL string) Option {
	return func(o *Options) {
		baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
		if baseURL != "" {
			o.baseURL = baseURL
		}
	}
}

// WithGraphVersion overrides the Graph API version path segment, e.g.
// "v22.0". Empty values are ignored.
func WithGraphVersion(version string) Option {
	return func(o *Options) {
		version = strings.TrimSpace(version)
		if version != "" {
			o.graphVersion = version
		}
	}
}

// WithTimeout sets the per-request timeout on an owned transport. Ignored
// when an external client is supplied via WithHTTPClient.
func WithTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithHTTPClient supplies an external resty client. The client is borrowed:
// Close becomes a no-op and timeout/retry options are left to the owner.
func WithHTTPClient(httpClient *resty.Client) Option {
	return func(o *Options) {
		if httpClient != nil {
			o.httpClient = httpClient
		}
	}
}

// WithRetryCount enables transport-level retries. The default is 0: the
// library never retries on its own, callers opt in.
func WithRetryCount(count int) Option {
	return func(o *Options) {
		if count >= 0 {
			o.retryCount = count
		}
	}
}

func WithRetryWaitTime(waitTime time.Duration) Option {
	return func(o *Options) {
		if waitTime >= 100*time.Millisecond {
			o.retryWaitTime = waitTime
		}
	}
}

func WithRetryMaxWaitTime(maxWaitTime time.Duration) Option {
	return func(o *Options) {
		if maxWaitTime >= 100*time.Millisecond {
			o.retryMaxWaitTime = maxWaitTime
		}
	}
}

func WithRequestLogger(logger RequestLogger) Option {
	return func(o *Options) {
		if logger != nil {
			o.requestLogger = logger
		}
	}
}

func WithRetryPolicy(policy func(*resty.Response, error) bool) Option {
	return func(o *Options) {
		if policy != nil {
			o.retryPolicy = policy
		}
	}
}

// WithRequestHeader adds a default header to every request. Content-Type,
// Accept and Authorization cannot be overridden through this option.
func WithRequestHeader(header, value string) Option {
	return func(o *Options) {
		header = strings.TrimSpace(header)

		if header == "" ||
			strings.EqualFold(header, "Content-Type") ||
			strings.EqualFold(header, "Accept") ||
			strings.EqualFold(header, "Authorization") {
			return
		}

		o.requestHeaders[header] = value
	}
}
