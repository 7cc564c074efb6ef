package types

import "fmt"

// Error type strings reported in API responses.
const (
	ErrorTypeValidation      = "validation"
	ErrorTypeNotFound        = "not_found"
	ErrorTypeUnauthenticated = "auth.unauthenticated"
)

type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

// NewValidationError reports a field-level constraint violation. It is
// raised before any persistence write.
func NewValidationError(field, message string) *CustomError {
	return &CustomError{
		Code:    400,
		Message: fmt.Sprintf("%s: %s", field, message),
		Type:    ErrorTypeValidation,
	}
}

// NewNotFoundError reports a missing target. Rows owned by another user are
// reported with the same error so their existence is never leaked.
func NewNotFoundError(resource string) *CustomError {
	return &CustomError{
		Code:    404,
		Message: fmt.Sprintf("%s not found", resource),
		Type:    ErrorTypeNotFound,
	}
}

// NewUnauthenticatedError reports a request with no valid principal.
func NewUnauthenticatedError(message string) *CustomError {
	return &CustomError{
		Code:    401,
		Message: message,
		Type:    ErrorTypeUnauthenticated,
	}
}
