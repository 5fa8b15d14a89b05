// Package errors provides structured error types for familytower.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, the HTTP API and the core
//   - Machine-readable error codes for programmatic handling
//   - User-friendly messages that name the conflicting family member
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Codes fall into a few groups:
//   - INVALID_*, FUTURE_BIRTH, AGE_GAP, UNDERAGE_SPOUSE: rejected input
//   - *_NOT_FOUND: unknown member or resource
//   - ROOT_EXISTS: tree already started
//   - STORAGE_ERROR: snapshot load/save failures
//   - INTERNAL_*: unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMemberNotFound, "member %q not found", id)
//	if errors.Is(err, errors.ErrCodeMemberNotFound) {
//	    // Handle lookup failure
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeStorage, origErr, "load snapshot %s", key)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidYear     Code = "INVALID_YEAR"
	ErrCodeInvalidLifespan Code = "INVALID_LIFESPAN"
	ErrCodeInvalidRelation Code = "INVALID_RELATION"
	ErrCodeInvalidGender   Code = "INVALID_GENDER"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"

	// Consistency rule violations
	ErrCodeFutureBirth    Code = "FUTURE_BIRTH"
	ErrCodeAgeGap         Code = "AGE_GAP"
	ErrCodeUnderageSpouse Code = "UNDERAGE_SPOUSE"

	// Registry state errors
	ErrCodeNotFound       Code = "NOT_FOUND"
	ErrCodeMemberNotFound Code = "MEMBER_NOT_FOUND"
	ErrCodeRootExists     Code = "ROOT_EXISTS"
	ErrCodeDuplicateID    Code = "DUPLICATE_ID"

	// Persistence errors
	ErrCodeStorage Code = "STORAGE_ERROR"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// NotFound reports a relation target or edit target that is not in the registry.
func NotFound(id string) *Error {
	return New(ErrCodeMemberNotFound, "member %q not found", id)
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error or *ValidationError with a
// matching code. The outermost coded error wins.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error carries no code.
func GetCode(err error) Code {
	for err != nil {
		switch e := err.(type) {
		case *Error:
			return e.Code
		case *ValidationError:
			return e.Code
		}
		err = errors.Unwrap(err)
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For coded errors, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// ValidationError is a rejected add or edit. The registry is left untouched
// and the caller may resubmit corrected input.
type ValidationError struct {
	Code     Code   // Rule that failed
	Field    string // Draft field the message refers to (usually "birthYear")
	Message  string // Human-readable message naming the conflicting member
	MemberID string // Conflicting member, empty when the rule is not relational
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Invalid creates a ValidationError for field.
func Invalid(code Code, field, format string, args ...any) *ValidationError {
	return &ValidationError{
		Code:    code,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

// Conflict creates a ValidationError caused by another member.
func Conflict(code Code, field, memberID, format string, args ...any) *ValidationError {
	return &ValidationError{
		Code:     code,
		Field:    field,
		MemberID: memberID,
		Message:  fmt.Sprintf(format, args...),
	}
}

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
