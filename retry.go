package whatsapp

import "strconv"

// RetryAction tells the caller what to do about a failed request. The
// library never executes retries itself; it only advises.
type RetryAction string

const (
	ActionRetry        RetryAction = "retry"
	ActionRetryAfter   RetryAction = "retry_after"
	ActionFixAndRetry  RetryAction = "fix_and_retry"
	ActionDoNotRetry   RetryAction = "do_not_retry"
	ActionRefreshToken RetryAction = "refresh_token"
)

// RetryHint pairs a retry action with an optional wait, in milliseconds.
// RetryAfterMS is nil when no wait applies.
type RetryHint struct {
	Action       RetryAction `json:"action"`
	RetryAfterMS *int64      `json:"retry_after_ms"`
}

const defaultRetryAfterMS = 60_000

// categoryActions is the fixed category-to-action table. One action per
// category; only the timing varies per response.
var categoryActions = map[ErrorCategory]RetryAction{
	CategoryAuthorization:       ActionRefreshToken,
	CategoryPermission:          ActionFixAndRetry,
	CategoryParameter:           ActionFixAndRetry,
	CategoryThrottling:          ActionRetryAfter,
	CategoryTemplate:            ActionFixAndRetry,
	CategoryMedia:               ActionFixAndRetry,
	CategoryPhoneRegistration:   ActionFixAndRetry,
	CategoryIntegrity:           ActionDoNotRetry,
	CategoryBusinessEligibility: ActionDoNotRetry,
	CategoryReengagementWindow:  ActionDoNotRetry,
	CategoryWabaConfig:          ActionFixAndRetry,
	CategoryFlow:                ActionFixAndRetry,
	CategorySynchronization:     ActionRetry,
	CategoryServer:              ActionRetry,
	CategoryUnknown:             ActionRetry,
}

// GetRetryHint resolves the retry action for a category and parses the
// optional Retry-After header value (seconds, possibly fractional). An
// unparseable header is treated as absent. When the action is
// ActionRetryAfter and no valid header value exists, the wait defaults to
// 60 seconds; other actions carry a parsed value but never a default.
func GetRetryHint(category ErrorCategory, retryAfterHeader string) RetryHint {
	action, ok := categoryActions[category]
	if !ok {
		action = ActionRetry
	}

	var retryAfterMS *int64
	if retryAfterHeader != "" {
		if secs, err := strconv.ParseFloat(retryAfterHeader, 64); err == nil {
			ms := int64(secs * 1000)
			retryAfterMS = &ms
		}
	}

	if action == ActionRetryAfter && retryAfterMS == nil {
		ms := int64(defaultRetryAfterMS)
		retryAfterMS = &ms
	}

	return RetryHint{Action: action, RetryAfterMS: retryAfterMS}
}
