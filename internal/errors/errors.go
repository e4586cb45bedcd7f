package errors

import (
	"fmt"
	"net/http"
)

// Kind classifies a failure in the analysis pipeline
type Kind string

const (
	// Client input errors, surfaced verbatim as 400s
	KindMissingInput    Kind = "missing_input"
	KindUnsupportedType Kind = "unsupported_type"
	KindTooLarge        Kind = "too_large"

	// External/provider errors, surfaced as 500s and never retried here
	KindProviderUnavailable Kind = "provider_unavailable"
	KindEmptyResponse       Kind = "empty_response"
	KindMalformedResponse   Kind = "malformed_response"

	// Contract drift between the provider's output and the expected shape
	KindSchemaViolation Kind = "schema_violation"

	KindInternal Kind = "internal"
)

// AppError represents a structured application error
type AppError struct {
	Kind       Kind   `json:"kind"`
	Message    string `json:"message"`
	StatusCode int    `json:"status_code"`
	Cause      error  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewMissingInputError reports an absent required request field
func NewMissingInputError(message string, cause error) *AppError {
	return &AppError{
		Kind:       KindMissingInput,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Cause:      cause,
	}
}

// NewUnsupportedTypeError reports a non-image upload
func NewUnsupportedTypeError(message string, cause error) *AppError {
	return &AppError{
		Kind:       KindUnsupportedType,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Cause:      cause,
	}
}

// NewTooLargeError reports an upload over the configured size cap
func NewTooLargeError(message string, cause error) *AppError {
	return &AppError{
		Kind:       KindTooLarge,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Cause:      cause,
	}
}

// NewProviderUnavailableError reports a transport or provider-side failure
func NewProviderUnavailableError(message string, cause error) *AppError {
	return &AppError{
		Kind:       KindProviderUnavailable,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// NewEmptyResponseError reports a provider reply with no content
func NewEmptyResponseError(message string, cause error) *AppError {
	return &AppError{
		Kind:       KindEmptyResponse,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// NewMalformedResponseError reports provider text that is not valid JSON
func NewMalformedResponseError(message string, cause error) *AppError {
	return &AppError{
		Kind:       KindMalformedResponse,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// NewSchemaViolationError reports a provider payload that parsed as JSON but
// does not match the canonical analysis shape. Field is the offending path.
func NewSchemaViolationError(field, message string, cause error) *AppError {
	return &AppError{
		Kind:       KindSchemaViolation,
		Message:    fmt.Sprintf("field %q: %s", field, message),
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Kind:       KindInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// IsKind checks if the error is of a specific kind
func IsKind(err error, kind Kind) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Kind == kind
	}
	return false
}

// KindOf extracts the kind from an error, defaulting to internal
func KindOf(err error) Kind {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Kind
	}
	return KindInternal
}

// GetStatusCode extracts the HTTP status code from an error
func GetStatusCode(err error) int {
	if appErr, ok := err.(*AppError); ok {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
