package errors

import (
	"fmt"
)

// ErrorCode represents a specific error type for scheduling operations.
type ErrorCode string

const (
	// ErrCodeInvalidArgument indicates invalid input parameters on a direct call.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// ErrCodeNotFound indicates a reference to an activity that is not in the store.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeParseFailed indicates the planner reply contained no extractable payload.
	ErrCodeParseFailed ErrorCode = "PARSE_FAILED"
	// ErrCodeValidationFailed indicates a proposal batch was rejected with aggregated issues.
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	// ErrCodePlannerUnavailable indicates the external planner call itself failed.
	ErrCodePlannerUnavailable ErrorCode = "PLANNER_UNAVAILABLE"
)

// Error represents a structured error for scheduling operations.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Convenience constructors for common error types.

// InvalidArgument creates an invalid argument error.
func InvalidArgument(msg string) *Error {
	return &Error{Code: ErrCodeInvalidArgument, Message: msg}
}

// InvalidArgumentf creates an invalid argument error with a formatted message.
func InvalidArgumentf(format string, args ...any) *Error {
	return &Error{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// NotFound creates a not found error for the given activity reference.
func NotFound(uid string) *Error {
	return &Error{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("activity not found: %s", uid),
	}
}

// ParseFailed creates a parse failed error.
func ParseFailed(msg string) *Error {
	return &Error{Code: ErrCodeParseFailed, Message: msg}
}

// PlannerUnavailable creates a planner unavailable error.
func PlannerUnavailable(msg string, cause error) *Error {
	return &Error{Code: ErrCodePlannerUnavailable, Message: msg, Cause: cause}
}

// Wrap wraps an existing error with a code and message.
func Wrap(cause error, code ErrorCode, msg string) *Error {
	return &Error{Code: code, Message: msg, Cause: cause}
}

// IsCode checks if an error is of a specific code.
func IsCode(err error, code ErrorCode) bool {
	if e, ok := err.(*Error); ok {
		return e.Code == code
	}
	return false
}
