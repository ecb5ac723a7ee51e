package constants

// Context keys set by middleware
const (
	ContextKeyRequestID = "RequestID"
	ContextKeyClientID  = "clientID"
	ContextKeyRateLimit = "rateLimit"
)
