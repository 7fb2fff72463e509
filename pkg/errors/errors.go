package errors

import (
	"fmt"
	"time"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeStore represents record store errors
	ErrorTypeStore ErrorType = "store"
	// ErrorTypeInference represents inference provider errors
	ErrorTypeInference ErrorType = "inference"
	// ErrorTypeAuth represents authentication errors
	ErrorTypeAuth ErrorType = "auth"
	// ErrorTypeUpload represents file upload errors
	ErrorTypeUpload ErrorType = "upload"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
)

// BaseError is the base error type with common fields
type BaseError struct {
	Type      ErrorType
	Message   string
	Timestamp time.Time
	Err       error // Wrapped error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error for error unwrapping
func (e *BaseError) Unwrap() error {
	return e.Err
}

// NewBaseError creates a new base error
func NewBaseError(errType ErrorType, message string, err error) *BaseError {
	return &BaseError{
		Type:      errType,
		Message:   message,
		Timestamp: time.Now(),
		Err:       err,
	}
}

// Store Errors

// ErrStoreConnectionFailed is returned when the record store cannot be reached
type ErrStoreConnectionFailed struct {
	*BaseError
	Backend string
}

func NewStoreConnectionFailed(backend string, err error) *ErrStoreConnectionFailed {
	return &ErrStoreConnectionFailed{
		BaseError: NewBaseError(ErrorTypeStore, fmt.Sprintf("failed to connect to %s store", backend), err),
		Backend:   backend,
	}
}

// ErrStoreQueryFailed is returned when a record store operation fails
type ErrStoreQueryFailed struct {
	*BaseError
	Operation string
}

func NewStoreQueryFailed(operation string, err error) *ErrStoreQueryFailed {
	return &ErrStoreQueryFailed{
		BaseError: NewBaseError(ErrorTypeStore, fmt.Sprintf("store operation failed: %s", operation), err),
		Operation: operation,
	}
}

// ErrEntryNotFound is returned when an entry does not exist in the store
type ErrEntryNotFound struct {
	*BaseError
	EntryID string
}

func NewEntryNotFound(entryID string) *ErrEntryNotFound {
	return &ErrEntryNotFound{
		BaseError: NewBaseError(ErrorTypeStore, fmt.Sprintf("entry not found: %s", entryID), nil),
		EntryID:   entryID,
	}
}

// Inference Errors

// ErrInferenceFailed is returned when the inference provider request fails
type ErrInferenceFailed struct {
	*BaseError
	Model string
}

func NewInferenceFailed(model string, err error) *ErrInferenceFailed {
	return &ErrInferenceFailed{
		BaseError: NewBaseError(ErrorTypeInference, "inference request failed", err),
		Model:     model,
	}
}

// ErrInferenceEmpty is returned when the provider returns no usable response
var ErrInferenceEmpty = NewBaseError(ErrorTypeInference, "no response from inference provider", nil)

// Auth Errors

// ErrInvalidToken is returned when a session token fails verification
var ErrInvalidToken = NewBaseError(ErrorTypeAuth, "invalid or expired token", nil)

// ErrDomainNotAllowed is returned when a login email is outside the community domain
type ErrDomainNotAllowed struct {
	*BaseError
	Domain string
}

func NewDomainNotAllowed(domain string) *ErrDomainNotAllowed {
	return &ErrDomainNotAllowed{
		BaseError: NewBaseError(ErrorTypeAuth, fmt.Sprintf("email domain not allowed: %s", domain), nil),
		Domain:    domain,
	}
}

// Upload Errors

// ErrUploadTooLarge is returned when an uploaded file exceeds the size limit
type ErrUploadTooLarge struct {
	*BaseError
	Size  int64
	Limit int64
}

func NewUploadTooLarge(size, limit int64) *ErrUploadTooLarge {
	return &ErrUploadTooLarge{
		BaseError: NewBaseError(ErrorTypeUpload, fmt.Sprintf("file size %d exceeds limit %d", size, limit), nil),
		Size:      size,
		Limit:     limit,
	}
}

// Helper functions

// IsErrorType checks if an error is of a specific type
func IsErrorType(err error, errType ErrorType) bool {
	if baseErr, ok := err.(*BaseError); ok {
		return baseErr.Type == errType
	}
	if wrapped, ok := err.(interface{ Unwrap() error }); ok {
		if inner := wrapped.Unwrap(); inner != nil {
			return IsErrorType(inner, errType)
		}
	}
	return false
}

// IsNotFound checks if an error is an entry-not-found error
func IsNotFound(err error) bool {
	if _, ok := err.(*ErrEntryNotFound); ok {
		return true
	}
	if wrapped, ok := err.(interface{ Unwrap() error }); ok {
		if inner := wrapped.Unwrap(); inner != nil {
			return IsNotFound(inner)
		}
	}
	return false
}
