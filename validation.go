package whatsapp

import "fmt"

// ValidationError reports invalid input to a request builder, detected
// before any network call is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, v ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, v...)}
}
