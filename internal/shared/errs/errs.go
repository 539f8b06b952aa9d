package errs

import "errors"

// Error kinds shared by repositories, the analysis requester and the HTTP layer.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrStorage    = errors.New("storage error")
	ErrAnalysis   = errors.New("analysis error")
	ErrTimeout    = errors.New("analysis timed out")
	ErrConfig     = errors.New("server misconfigured")
)

// Error carries a user-safe message alongside its kind and the underlying cause.
// Message is what clients see; Cause is for logs only.
type Error struct {
	Kind    error
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	out := []error{e.Kind}
	if e.Cause != nil {
		out = append(out, e.Cause)
	}
	return out
}

// Validation builds an ErrValidation with the given client message.
func Validation(message string) error {
	return &Error{Kind: ErrValidation, Message: message}
}

// NotFound builds an ErrNotFound with the given client message.
func NotFound(message string) error {
	return &Error{Kind: ErrNotFound, Message: message}
}

// Storage wraps a store failure.
func Storage(message string, cause error) error {
	return &Error{Kind: ErrStorage, Message: message, Cause: cause}
}

// Analysis wraps an LLM call or parse failure.
func Analysis(message string, cause error) error {
	return &Error{Kind: ErrAnalysis, Message: message, Cause: cause}
}

// Timeout reports that the analysis budget elapsed.
func Timeout(message string, cause error) error {
	return &Error{Kind: ErrTimeout, Message: message, Cause: cause}
}

// Config reports missing server configuration.
func Config(message string) error {
	return &Error{Kind: ErrConfig, Message: message}
}

// Message returns the client-safe message of err, or fallback when err carries none.
func Message(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return fallback
}
