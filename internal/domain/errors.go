package domain

import (
	"errors"
	"fmt"
)

// ErrorCode is a stable machine-readable failure classification.
type ErrorCode string

const (
	CodeRateLimited          ErrorCode = "rate_limited"
	CodeProviderTimeout      ErrorCode = "provider_timeout"
	CodeProviderError        ErrorCode = "provider_error"
	CodeEmptyResponse        ErrorCode = "empty_response"
	CodeNoApplicableStrategy ErrorCode = "no_applicable_strategy"
	CodeValidationFailed     ErrorCode = "validation_failed"
	CodeExecutionError       ErrorCode = "execution_error"
	CodeNotFound             ErrorCode = "not_found"
	CodeCancelled            ErrorCode = "cancelled"
)

// BridgeError pairs an ErrorCode with a human-readable message. Every failure
// the pipeline surfaces to callers is a BridgeError or wraps one.
type BridgeError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *BridgeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BridgeError) Unwrap() error {
	return e.Err
}

// NewError builds a BridgeError with a formatted message.
func NewError(code ErrorCode, format string, args ...any) *BridgeError {
	return &BridgeError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WrapError attaches a code and message to an underlying error.
func WrapError(code ErrorCode, err error, format string, args ...any) *BridgeError {
	return &BridgeError{Code: code, Message: fmt.Sprintf(format, args...), Err: err}
}

// CodeOf extracts the ErrorCode from err, or CodeProviderError when err is
// not a BridgeError (unclassified failures are treated as provider-side).
func CodeOf(err error) ErrorCode {
	var be *BridgeError
	if errors.As(err, &be) {
		return be.Code
	}
	return CodeProviderError
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}

// Retryable reports whether a failure with the given code should be retried
// by the gateway's retry loop.
func Retryable(code ErrorCode) bool {
	switch code {
	case CodeRateLimited, CodeProviderTimeout, CodeProviderError:
		return true
	default:
		return false
	}
}
