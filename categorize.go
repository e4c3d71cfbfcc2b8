package whatsapp

// ErrorCategory classifies a Graph API error code into one of a fixed set
// of buckets that callers can branch on.
type ErrorCategory string

const (
	CategoryAuthorization       ErrorCategory = "authorization"
	CategoryPermission          ErrorCategory = "permission"
	CategoryParameter           ErrorCategory = "parameter"
	CategoryThrottling          ErrorCategory = "throttling"
	CategoryTemplate            ErrorCategory = "template"
	CategoryMedia               ErrorCategory = "media"
	CategoryPhoneRegistration   ErrorCategory = "phone_registration"
	CategoryIntegrity           ErrorCategory = "integrity"
	CategoryBusinessEligibility ErrorCategory = "business_eligibility"
	CategoryReengagementWindow  ErrorCategory = "reengagement_window"
	CategoryWabaConfig          ErrorCategory = "waba_config"
	CategoryFlow                ErrorCategory = "flow"
	CategorySynchronization     ErrorCategory = "synchronization"
	CategoryServer              ErrorCategory = "server"
	CategoryUnknown             ErrorCategory = "unknown"
)

// codeCategories maps documented Graph API error codes to categories.
var codeCategories = map[int]ErrorCategory{
	// Authorization
	0:   CategoryAuthorization,
	190: CategoryAuthorization,
	// Permission
	10:  CategoryPermission,
	200: CategoryPermission,
	299: CategoryPermission,
	// Throttling / rate-limit
	4:      CategoryThrottling,
	80007:  CategoryThrottling,
	130429: CategoryThrottling,
	131048: CategoryThrottling,
	131056: CategoryThrottling,
	// Parameter
	33:     CategoryParameter,
	100:    CategoryParameter,
	130472: CategoryParameter,
	131008: CategoryParameter,
	131009: CategoryParameter,
	131021: CategoryParameter,
	131026: CategoryParameter,
	135000: CategoryParameter,
	// Media
	131051: CategoryMedia,
	131052: CategoryMedia,
	131053: CategoryMedia,
	// Template
	132000: CategoryTemplate,
	132001: CategoryTemplate,
	132005: CategoryTemplate,
	132007: CategoryTemplate,
	132012: CategoryTemplate,
	132015: CategoryTemplate,
	132016: CategoryTemplate,
	// Flow
	132068: CategoryFlow,
	132069: CategoryFlow,
	// Phone registration
	133000: CategoryPhoneRegistration,
	133004: CategoryPhoneRegistration,
	133005: CategoryPhoneRegistration,
	133006: CategoryPhoneRegistration,
	133008: CategoryPhoneRegistration,
	133009: CategoryPhoneRegistration,
	133010: CategoryPhoneRegistration,
	133015: CategoryPhoneRegistration,
	133016: CategoryPhoneRegistration,
	// Re-engagement window
	131047: CategoryReengagementWindow,
	// Integrity
	368:    CategoryIntegrity,
	130497: CategoryIntegrity,
	131031: CategoryIntegrity,
}

// CategorizeError maps a Graph API error code and HTTP status to an
// ErrorCategory. A known code wins over any HTTP status, including 5xx.
// code is nil when the response carried no numeric code.
func CategorizeError(code *int, httpStatus int) ErrorCategory {
	if code != nil {
		if cat, ok := codeCategories[*code]; ok {
			return cat
		}
	}
	if httpStatus >= 500 {
		return CategoryServer
	}
	return CategoryUnknown
}
