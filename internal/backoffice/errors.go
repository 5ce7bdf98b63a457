package backoffice

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"syscall"
)

// Error kinds for back-office API operations

// ErrorKind represents the category of error that occurred
type ErrorKind int

const (
	// KindNetwork indicates a transport-level failure (no HTTP response)
	KindNetwork ErrorKind = iota
	// KindValidation indicates input the server (or local validation) rejected
	KindValidation
	// KindNotFound indicates the requested entity or endpoint does not exist
	KindNotFound
	// KindServer indicates a 5xx response from the API
	KindServer
	// KindUnexpectedFormat indicates a response body missing expected fields
	// or not matching the documented shape
	KindUnexpectedFormat
	// KindTimeout indicates the request deadline expired
	KindTimeout
	// KindUnknown indicates an unclassified error
	KindUnknown
)

// String returns a human-readable name for the error kind
func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "Network Error"
	case KindValidation:
		return "Validation Error"
	case KindNotFound:
		return "Not Found"
	case KindServer:
		return "Server Error"
	case KindUnexpectedFormat:
		return "Unexpected Format"
	case KindTimeout:
		return "Timeout"
	case KindUnknown:
		return "Unknown Error"
	default:
		return fmt.Sprintf("ErrorKind(%d)", k)
	}
}

// APIError represents an error from one back-office API interaction
type APIError struct {
	Kind       ErrorKind // Category of error
	Message    string    // Human-readable error message
	StatusCode int       // HTTP status code (0 when no response arrived)
	Err        error     // Underlying error (if any)
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *APIError) Unwrap() error {
	return e.Err
}

// ClassifyTransportError analyzes a transport failure and returns a typed error.
// Timeouts are distinguished from other network failures so callers can advise
// the user accordingly.
func ClassifyTransportError(err error) *APIError {
	if err == nil {
		return nil
	}

	if os.IsTimeout(err) {
		return &APIError{
			Kind:    KindTimeout,
			Message: "request timed out",
			Err:     err,
		}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &APIError{
			Kind:    KindNetwork,
			Message: fmt.Sprintf("DNS resolution failed for %s", dnsErr.Name),
			Err:     err,
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if errors.Is(opErr.Err, syscall.ECONNREFUSED) {
			return &APIError{
				Kind:    KindNetwork,
				Message: "connection refused by the API server",
				Err:     err,
			}
		}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		// Recursively classify the underlying error
		return ClassifyTransportError(urlErr.Err)
	}

	return &APIError{
		Kind:    KindNetwork,
		Message: "network error occurred",
		Err:     err,
	}
}

// ClassifyStatus maps a non-2xx HTTP status to a typed error.
// 404 maps to NotFound, other 4xx to Validation (the API reports rejected
// input this way), and 5xx to Server.
func ClassifyStatus(statusCode int, message string) *APIError {
	kind := KindUnknown
	switch {
	case statusCode == http.StatusNotFound:
		kind = KindNotFound
	case statusCode >= 400 && statusCode < 500:
		kind = KindValidation
	case statusCode >= 500:
		kind = KindServer
	}

	if message == "" {
		message = fmt.Sprintf("request failed with status %d", statusCode)
	}

	return &APIError{
		Kind:       kind,
		Message:    message,
		StatusCode: statusCode,
	}
}

// NewNetworkError creates a transport-level error with automatic classification
func NewNetworkError(message string, err error) *APIError {
	classified := ClassifyTransportError(err)
	if classified != nil {
		classified.Message = message
		return classified
	}
	return &APIError{
		Kind:    KindNetwork,
		Message: message,
		Err:     err,
	}
}

// NewValidationError creates a local validation error.
// These never reach the network and are handled entirely in the workflow.
func NewValidationError(message string) *APIError {
	return &APIError{
		Kind:    KindValidation,
		Message: message,
	}
}

// NewFormatError creates an unexpected-format error for a response body
// that does not match the documented shape
func NewFormatError(message string, err error) *APIError {
	return &APIError{
		Kind:    KindUnexpectedFormat,
		Message: message,
		Err:     err,
	}
}

// IsNetworkError checks if an error is a transport-level error (including timeouts)
func IsNetworkError(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind == KindNetwork || apiErr.Kind == KindTimeout
	}
	return false
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind == KindValidation
	}
	return false
}

// IsNotFoundError checks if an error is a not-found error
func IsNotFoundError(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind == KindNotFound
	}
	return false
}

// IsServerError checks if an error is a 5xx server error
func IsServerError(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind == KindServer
	}
	return false
}

// IsFormatError checks if an error is an unexpected-format error
func IsFormatError(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind == KindUnexpectedFormat
	}
	return false
}

// ShortMessage returns a concise, user-friendly message for an error.
// Used by the TUI status line and the CLI result boxes.
func ShortMessage(err error) string {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return err.Error()
	}

	switch apiErr.Kind {
	case KindTimeout:
		return "API not responding (timeout)"
	case KindNetwork:
		return "Network error - check that the API server is reachable"
	case KindNotFound:
		return apiErr.Message
	case KindServer:
		return fmt.Sprintf("Server error (HTTP %d): %s", apiErr.StatusCode, apiErr.Message)
	case KindUnexpectedFormat:
		return "The API returned an unexpected response format"
	case KindValidation:
		return apiErr.Message
	default:
		return apiErr.Message
	}
}
