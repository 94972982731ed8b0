package fabricform

import "errors"

var (
	// ErrValidation indicates length, width or price did not parse to a finite number.
	ErrValidation = errors.New("invalid numeric input")

	// ErrSubmission indicates the mutation failed or returned no usable data.
	ErrSubmission = errors.New("fabric submission failed")

	// ErrSubmitInFlight indicates a submit was attempted while another one is outstanding.
	ErrSubmitInFlight = errors.New("submission already in progress")

	// ErrControllerClosed indicates the form session was torn down.
	ErrControllerClosed = errors.New("form session closed")

	// ErrUnknownField indicates a field name outside the fixed form keys.
	ErrUnknownField = errors.New("unknown form field")
)

// User-facing notifications.
const (
	MessageInvalidNumbers = "Please enter valid numeric values for length, width, and price."
	MessageSubmitted      = "Form submitted successfully!"
	MessageSubmitFailed   = "Error submitting the form."
	MessageSubmitPending  = "Submitting..."
)

// UserMessage maps a controller error to the notification shown to the user.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return MessageInvalidNumbers
	case errors.Is(err, ErrSubmitInFlight):
		return MessageSubmitPending
	default:
		return MessageSubmitFailed
	}
}
