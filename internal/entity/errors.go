package entity

import "errors"

// Sentinel errors for expected, caller-recoverable conditions. The delivery
// layer maps these to HTTP statuses (404 and 403 respectively).
var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrToppingNotFound  = errors.New("topping not found")
	ErrForbidden        = errors.New("you are not allowed to access this resource")
)

// ValidationError carries the first violated rule's message for a malformed
// input. Mapped to 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Validationf builds a ValidationError from a plain message.
func Validationf(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

// ConfigError signals a fatal misconfiguration (e.g. an asset URI that cannot
// be constructed). Mapped to 500 and never retried.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string { return "invalid configuration: " + e.Reason }
