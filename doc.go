// Package whatsapp provides an HTTP client for the WhatsApp Business
// Cloud API.
//
// The client wraps [github.com/go-resty/resty/v2] with Graph API error
// classification, configurable retries, and pluggable logging. Resource
// services cover messages, media, message templates, phone numbers and
// WhatsApp Flows; webhook helpers verify, normalize and dispatch inbound
// payloads.
//
// # Basic Usage
//
//	c, err := whatsapp.New("my-access-token",
//	    whatsapp.WithGraphVersion("v23.0"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer c.Close()
//
//	resp, err := c.Messages.SendText(ctx, whatsapp.TextMessage{
//	    MessageTarget: whatsapp.MessageTarget{
//	        PhoneNumberID: "1234567890",
//	        To:            "15551234567",
//	    },
//	    Body: "hello",
//	})
//
// # Configuration
//
// All configuration is supplied as [Option] functions passed to [New].
// Invalid values are silently ignored and the default is retained;
// all configuration is validated when [New] is called.
//
// # Error Handling
//
// Responses with status 400 or above become a [*GraphAPIError] carrying
// the decoded error body, an [ErrorCategory] derived from the numeric
// error code (falling back to the HTTP status), and a [RetryHint] that
// tells callers whether and when to retry. Use [errors.As] to get at the
// typed error.
//
// # Retry Behaviour
//
// The client performs no retries unless [WithRetryCount] enables them.
// When enabled, [DefaultRetryPolicy] retries on HTTP 429 (rate limit) and
// 5xx server errors, and on transient connection errors. It respects the
// Retry-After response header for rate-limit backoff. Context
// cancellation, deadline exceeded, and DNS resolution errors are never
// retried. Supply a custom function via [WithRetryPolicy] to override
// this behaviour.
//
// # Webhooks
//
// [VerifySignature] checks the X-Hub-Signature-256 header against the raw
// request body. [NormalizeWebhook] flattens the entry/changes envelope
// into a [NormalizedWebhook], and [DispatchWebhook] maps its messages and
// statuses onto typed [Event] values delivered to a [Sink].
//
// # Logging
//
// Implement [RequestLogger] and supply it via [WithRequestLogger] to
// integrate with your logging library. [NewZapLogger] adapts a zap logger
// to the interface; the default [NoopLogger] discards all log output.
// Ensure your implementation redacts credentials and tokens from request
// and response bodies before persisting logs.
package whatsapp
