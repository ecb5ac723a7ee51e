package validation

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/ashcraft-tech/contact-api/internal/api/dto/v1/contact"

	"github.com/go-playground/validator/v10"
)

var (
	// local@domain with at least one dot in the domain and no whitespace
	contactEmailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Validation failures, in priority order
var (
	ErrRequired     = errors.New("required field missing")
	ErrInvalidEmail = errors.New("invalid email address")
	ErrTooLong      = errors.New("field length exceeded")
)

// RegisterValidators registers custom validators
func RegisterValidators(v *validator.Validate) {
	v.RegisterValidation("contactemail", validateContactEmail)
}

// validateContactEmail checks the basic local@domain.tld shape
func validateContactEmail(fl validator.FieldLevel) bool {
	return contactEmailRegex.MatchString(fl.Field().String())
}

// ValidationError represents a validation error
type ValidationError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Value string `json:"value"`
}

// FormatValidationError flattens validator errors for logging
func FormatValidationError(err error) []ValidationError {
	var errs []ValidationError
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			errs = append(errs, ValidationError{
				Field: e.Field(),
				Tag:   e.Tag(),
				Value: e.Param(),
			})
		}
	}
	return errs
}

// SubmissionError carries the winning rule and every failed field
type SubmissionError struct {
	Kind   error
	Fields []ValidationError
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("%v: %+v", e.Kind, e.Fields)
}

func (e *SubmissionError) Unwrap() error {
	return e.Kind
}

// ContactValidator checks contact submissions
type ContactValidator struct {
	validate *validator.Validate
}

func NewContactValidator() *ContactValidator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	RegisterValidators(validate)
	return &ContactValidator{validate: validate}
}

// Validate returns nil or a *SubmissionError wrapping ErrRequired,
// ErrInvalidEmail or ErrTooLong. When several rules fail the first in that
// order wins.
func (v *ContactValidator) Validate(req *contact.SubmissionRequest) error {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	var required, email, tooLong bool
	for _, e := range validationErrors {
		switch e.Tag() {
		case "required":
			required = true
		case "contactemail":
			email = true
		case "max":
			tooLong = true
		}
	}

	var kind error
	switch {
	case required:
		kind = ErrRequired
	case email:
		kind = ErrInvalidEmail
	case tooLong:
		kind = ErrTooLong
	default:
		return err
	}
	return &SubmissionError{Kind: kind, Fields: FormatValidationError(err)}
}

// PublicMessage maps a Validate error to the text shown to the visitor
func PublicMessage(err error) string {
	switch {
	case errors.Is(err, ErrRequired):
		return contact.ErrAllFieldsRequired
	case errors.Is(err, ErrInvalidEmail):
		return contact.ErrInvalidEmail
	case errors.Is(err, ErrTooLong):
		return contact.ErrFieldLengthExceeded
	default:
		return contact.ErrAllFieldsRequired
	}
}
