package services

import (
	"errors"
	"fmt"
)

// ErrNotFound means an id, slug or username did not resolve. Handlers turn it
// into the 404 page.
var ErrNotFound = errors.New("not found")

// ErrPermissionDenied means the caller is not allowed to mutate the record.
// Handlers redirect to a safe page instead of erroring.
var ErrPermissionDenied = errors.New("permission denied")

// ValidationError rejects user input. The message is shown back on the form
// together with the submitted values.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
