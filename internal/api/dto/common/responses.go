package common

// APIResponse is the standard wrapper for all API responses. Error is a
// human-readable reason that is safe to show to the visitor.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Generic messages that never carry internal details
const (
	MessageUnexpected = "An unexpected error occurred"
)

// NewMessageResponse creates a new success response with a simple message
func NewMessageResponse(message string) APIResponse {
	return APIResponse{
		Success: true,
		Message: message,
	}
}

// NewSuccessResponse creates a new successful API response carrying data
func NewSuccessResponse(message string, data interface{}) APIResponse {
	return APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// NewErrorResponse creates a new error API response
func NewErrorResponse(message string) APIResponse {
	return APIResponse{
		Success: false,
		Error:   message,
	}
}
