package library

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates the entry id does not resolve for the organization.
var ErrNotFound = errors.New("library entry not found")

// ValidationError carries field-level detail for malformed entry input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}
