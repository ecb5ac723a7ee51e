package contact

import "encoding/json"

// SpamFields are the hidden inputs read by the silent filters. They are
// decoded loosely because bots post whatever type they like.
type SpamFields struct {
	// Website is the honeypot field, hidden from humans
	Website json.RawMessage `json:"website,omitempty"`
	// FormLoadedAt is the browser's Date.now() when the form rendered
	FormLoadedAt json.RawMessage `json:"formLoadedAt,omitempty"`
}

// SubmissionRequest represents a contact form submission. It lives for one
// request only. Validation runs after the silent spam filters, so the tags
// use the validate key rather than gin's binding key.
type SubmissionRequest struct {
	SpamFields

	Name           string `json:"name" validate:"required,max=100"`
	Email          string `json:"email" validate:"required,contactemail,max=100"`
	Subject        string `json:"subject" validate:"required,max=200"`
	Message        string `json:"message" validate:"required,max=5000"`
	RecaptchaToken string `json:"recaptchaToken,omitempty"`
}

// Messages returned to the visitor
const (
	MessageSent            = "Message sent successfully!"
	ErrAllFieldsRequired   = "All fields are required"
	ErrInvalidEmail        = "Invalid email address"
	ErrFieldLengthExceeded = "Field length exceeded"
	ErrCaptchaFailed       = "reCAPTCHA verification failed"
	ErrSendFailed          = "Failed to send message. Please try again."
)
