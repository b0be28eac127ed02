package chapa

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinel errors for common API rejections. They wrap the underlying
// *RemoteError, so both errors.Is on the sentinel and errors.As on the
// typed value keep working after classification.
var (
	// ErrNotFound indicates the referenced resource does not exist.
	ErrNotFound = errors.New("chapa: resource not found")

	// ErrUnauthorized indicates the secret key was rejected.
	ErrUnauthorized = errors.New("chapa: unauthorized")

	// ErrRateLimited indicates the API throttled the caller.
	ErrRateLimited = errors.New("chapa: rate limit reached")

	// ErrServerError indicates a Chapa-side failure (5xx).
	ErrServerError = errors.New("chapa: server error")

	// ErrDuplicateReference indicates the transaction reference was already used.
	ErrDuplicateReference = errors.New("chapa: transaction reference already used")

	// ErrInsufficientBalance indicates the account cannot cover the operation.
	ErrInsufficientBalance = errors.New("chapa: insufficient balance")
)

// ValidationError reports malformed or missing input, detected before any
// network call is made. Field carries the wire name of the offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("chapa: validation failed on field '%s': %s", e.Field, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// TransportError reports a network-level failure: the request never
// completed and no response body is available. Callers may retry.
type TransportError struct {
	Op  string
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("chapa: %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError reports a response body that did not match the expected
// shape. RawBody holds the original bytes unmodified for diagnosis, since
// this usually means the API contract drifted.
type DecodeError struct {
	StatusCode int
	RawBody    []byte
	Err        error
}

func (e *DecodeError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("chapa: cannot decode payload: %v", e.Err)
	}
	return fmt.Sprintf("chapa: cannot decode response (http %d): %v", e.StatusCode, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// RemoteError reports a rejection by the API itself, either through a
// failed envelope status or a non-2xx response. Message carries the API's
// message verbatim; these rejections are business-level and must not be
// retried blindly.
type RemoteError struct {
	StatusCode int
	Message    Message
	RawBody    []byte
}

func (e *RemoteError) Error() string {
	if msg := e.Message.String(); msg != "" {
		return msg
	}
	return fmt.Sprintf("chapa: request failed with status %d", e.StatusCode)
}

// IsValidation returns true if the error is a client-side validation failure.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsTransport returns true if the error is a network-level failure.
func IsTransport(err error) bool {
	var t *TransportError
	return errors.As(err, &t)
}

// IsDecode returns true if the error is a response-shape mismatch.
func IsDecode(err error) bool {
	var d *DecodeError
	return errors.As(err, &d)
}

// IsRemote returns true if the API itself rejected the request.
func IsRemote(err error) bool {
	var r *RemoteError
	return errors.As(err, &r)
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var remoteErr *RemoteError
	if errors.As(err, &remoteErr) {
		return remoteErr.StatusCode == http.StatusNotFound
	}
	return false
}

// IsUnauthorized returns true if the error indicates an authentication failure.
func IsUnauthorized(err error) bool {
	if errors.Is(err, ErrUnauthorized) {
		return true
	}
	var remoteErr *RemoteError
	if errors.As(err, &remoteErr) {
		return remoteErr.StatusCode == http.StatusUnauthorized
	}
	return false
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var remoteErr *RemoteError
	if errors.As(err, &remoteErr) {
		return remoteErr.StatusCode == http.StatusTooManyRequests
	}
	return false
}

// IsServerError returns true if the error came from the server side (5xx).
func IsServerError(err error) bool {
	if errors.Is(err, ErrServerError) {
		return true
	}
	var remoteErr *RemoteError
	if errors.As(err, &remoteErr) {
		return remoteErr.StatusCode >= 500
	}
	return false
}

// IsDuplicateReference returns true if the transaction reference was
// already used for an earlier transaction.
func IsDuplicateReference(err error) bool {
	if errors.Is(err, ErrDuplicateReference) {
		return true
	}
	var remoteErr *RemoteError
	if errors.As(err, &remoteErr) {
		return containsDuplicateReference(remoteErr.Message.String())
	}
	return false
}

// ClassifyError attaches a sentinel error to a RemoteError when the status
// code or the API message identifies a common condition. Other errors pass
// through unchanged.
func ClassifyError(err error) error {
	var remoteErr *RemoteError
	if !errors.As(err, &remoteErr) {
		return err
	}

	switch remoteErr.StatusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %w", ErrNotFound, remoteErr)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %w", ErrUnauthorized, remoteErr)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %w", ErrRateLimited, remoteErr)
	}

	if remoteErr.StatusCode >= 500 {
		return fmt.Errorf("%w: %w", ErrServerError, remoteErr)
	}

	msg := strings.ToLower(remoteErr.Message.String())
	switch {
	case containsDuplicateReference(msg):
		return fmt.Errorf("%w: %w", ErrDuplicateReference, remoteErr)
	case strings.Contains(msg, "insufficient balance"):
		return fmt.Errorf("%w: %w", ErrInsufficientBalance, remoteErr)
	}

	return err
}

func containsDuplicateReference(msg string) bool {
	return strings.Contains(strings.ToLower(msg), "reference has been used")
}

// wrapOp adds operation context while keeping the typed error reachable
// through errors.As.
func wrapOp(operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("chapa %s: %w", operation, err)
}
