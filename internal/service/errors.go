package service

import "fmt"

// Error is the outcome taxonomy for post operations. Presentation layers
// map codes to status codes once, at their boundary.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

var (
	ErrMissingFields    = &Error{Code: "MISSING_FIELDS", Message: "title, content and author are required"}
	ErrMissingPassword  = &Error{Code: "MISSING_FIELDS", Message: "password is required"}
	ErrNoFieldsProvided = &Error{Code: "NO_FIELDS_PROVIDED", Message: "no fields to update"}
	ErrInvalidID        = &Error{Code: "INVALID_ID", Message: "invalid post id"}
	ErrNotFound         = &Error{Code: "NOT_FOUND", Message: "post not found"}
	ErrForbidden        = &Error{Code: "FORBIDDEN", Message: "invalid password"}
)
