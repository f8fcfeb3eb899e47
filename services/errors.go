package services

import (
	"errors"
	"fmt"
)

// Error codes for recoverable business failures. These are reported to the
// caller as structured failures, never as a crash of the serving process.
const (
	CodeProviderUnavailable = "providerUnavailable"
	CodeSlotConflict        = "slotConflict"
	CodeNotFound            = "notFound"
	CodeUnauthorized        = "unauthorized"
	CodeAlreadyCancelled    = "alreadyCancelled"
	CodeInvalidFee          = "invalidFee"
	CodeGatewayUnavailable  = "gatewayUnavailable"
	CodeValidation          = "validationError"
)

// Error is a recoverable business failure with a stable code.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewError builds a coded service error.
func NewError(code, message string) error {
	return &Error{Code: code, Message: message}
}

// ErrorCode extracts the code from a service error, or returns "" for any
// other error.
func ErrorCode(err error) string {
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}
