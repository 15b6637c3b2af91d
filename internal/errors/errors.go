// Package errors provides centralized error definitions and error handling utilities
// for moviefinder. It defines the backend error taxonomy, the submission
// rejection sentinels, semantic error types, and classification helpers.
//
// # Error Types
//
// Domain-specific errors represent errors from the recommendation backend:
//   - BackendError: the backend could not be reached, rejected the request,
//     or answered with a body that does not match the expected shape.
//     The Kind field tells these apart; errors.Is works against
//     ErrBackendUnreachable, ErrBackendRejected and ErrMalformedResponse.
//
// Semantic errors represent common error conditions:
//   - ValidationError: invalid input or state (rejected submissions, bad config)
//   - TimeoutError: operation timed out
//
// # Usage
//
//	err := errors.NewBackendError(errors.KindRejected, "search failed", nil).
//	    WithStatus(503).
//	    WithRequestID(id)
//
//	if errors.Is(err, errors.ErrBackendRejected) { ... }
//
//	var backendErr *errors.BackendError
//	if errors.As(err, &backendErr) { ... }
//
// # Error Classification
//
// Backend error text carries transport detail. It is logged at the error's
// Severity and never shown; the interface displays one fixed message instead.
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Aliases for the standard library so callers need one errors import.
var (
	Is   = errors.Is
	As   = errors.As
	New  = errors.New
	Join = errors.Join
)

// Severity decides the level a failure is logged at.
type Severity int

const (
	// SeverityDebug is reserved for the absence of an error.
	SeverityDebug Severity = iota
	// SeverityWarning marks expected conditions: a backend that is down, an
	// open breaker, a rejected submission.
	SeverityWarning
	// SeverityError marks a backend that answered wrongly.
	SeverityError
	// SeverityCritical marks a bug on this side, such as a searcher panic.
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Submission sentinels. These reject a submission without a state
// transition and are never shown to the user.
var (
	ErrEmptyQuery     = New("query is empty")
	ErrSearchInFlight = New("search already in flight")
)

// Backend sentinels, matched by BackendError.Is according to its Kind.
var (
	ErrBackendUnreachable = New("backend unreachable")
	ErrBackendRejected    = New("backend rejected request")
	ErrMalformedResponse  = New("malformed backend response")
	// ErrCircuitOpen is joined into the cause when the breaker refuses a call.
	ErrCircuitOpen = New("circuit breaker open")
)

var (
	ErrTimeout  = New("operation timed out")
	ErrCanceled = New("operation canceled")
)

// FinderError is implemented by every error type in this package.
type FinderError interface {
	error
	Unwrap() error
	Is(target error) bool
	Severity() Severity
	// IsRetryable reports whether the same request may succeed later.
	IsRetryable() bool
}

type baseError struct {
	message   string
	cause     error
	severity  Severity
	retryable bool
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *baseError) Unwrap() error { return e.cause }

func (e *baseError) Is(target error) bool {
	return e.cause != nil && errors.Is(e.cause, target)
}

func (e *baseError) Severity() Severity { return e.severity }

func (e *baseError) IsRetryable() bool { return e.retryable }

// BackendKind classifies a backend failure.
type BackendKind int

const (
	// KindUnreachable is a transport failure: refused connection, DNS, timeout,
	// or an open circuit breaker.
	KindUnreachable BackendKind = iota
	// KindRejected is a response with a non-success status code.
	KindRejected
	// KindMalformed is a success response whose body could not be parsed.
	KindMalformed
)

// String returns the kind name used in logs and metric labels.
func (k BackendKind) String() string {
	switch k {
	case KindUnreachable:
		return "unreachable"
	case KindRejected:
		return "rejected"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

func (k BackendKind) sentinel() error {
	switch k {
	case KindRejected:
		return ErrBackendRejected
	case KindMalformed:
		return ErrMalformedResponse
	default:
		return ErrBackendUnreachable
	}
}

// BackendError represents a failed exchange with the recommendation backend.
//
// Example:
//
//	err := errors.NewBackendError(errors.KindRejected, "search failed", nil).WithStatus(500)
//	fmt.Println(err) // "backend error [kind=rejected, status=500]: search failed"
type BackendError struct {
	baseError
	Kind       BackendKind
	Endpoint   string
	StatusCode int
	RequestID  string
	// Detail is the backend's own error text, when it sent one.
	Detail string
}

// NewBackendError creates a new BackendError of the given kind.
func NewBackendError(kind BackendKind, message string, cause error) *BackendError {
	return &BackendError{
		baseError: baseError{
			message:   message,
			cause:     cause,
			severity:  SeverityError,
			retryable: kind == KindUnreachable,
		},
		Kind: kind,
	}
}

// WithEndpoint adds the request URL to the error context.
func (e *BackendError) WithEndpoint(endpoint string) *BackendError {
	e.Endpoint = endpoint
	return e
}

// WithStatus adds the HTTP status code. 5xx and 429 responses are retryable.
func (e *BackendError) WithStatus(code int) *BackendError {
	e.StatusCode = code
	e.retryable = code >= 500 || code == 429
	return e
}

// WithRequestID adds the correlation ID sent with the request.
func (e *BackendError) WithRequestID(id string) *BackendError {
	e.RequestID = id
	return e
}

// WithDetail records the backend's own error text.
func (e *BackendError) WithDetail(detail string) *BackendError {
	e.Detail = detail
	return e
}

// WithSeverity sets the error severity.
func (e *BackendError) WithSeverity(s Severity) *BackendError {
	e.severity = s
	return e
}

// Error returns the formatted error message.
func (e *BackendError) Error() string {
	parts := []string{"kind=" + e.Kind.String()}
	if e.StatusCode != 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}
	if e.RequestID != "" {
		parts = append(parts, "request="+e.RequestID)
	}

	prefix := fmt.Sprintf("backend error [%s]", strings.Join(parts, ", "))
	msg := e.message
	if e.Detail != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Detail)
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, msg, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, msg)
}

// Is checks if this error matches the target.
func (e *BackendError) Is(target error) bool {
	if _, ok := target.(*BackendError); ok {
		return true
	}
	if target == e.Kind.sentinel() {
		return true
	}
	return e.baseError.Is(target)
}

// KindOf returns the backend kind of err and true, or false when err is not
// a backend error.
func KindOf(err error) (BackendKind, bool) {
	var backendErr *BackendError
	if As(err, &backendErr) {
		return backendErr.Kind, true
	}
	return 0, false
}

// ValidationError represents invalid input or state.
//
// Example:
//
//	err := errors.NewValidationError("query rejected").WithField("input").WithCause(errors.ErrEmptyQuery)
type ValidationError struct {
	baseError
	Field string
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:   message,
			severity:  SeverityWarning,
			retryable: false,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithCause adds a cause to the error.
func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	prefix := "validation error"
	if e.Field != "" {
		prefix = fmt.Sprintf("validation error [field=%s]", e.Field)
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// TimeoutError represents an operation that timed out.
//
// Example:
//
//	err := errors.NewTimeoutError("search request", 60*time.Second)
//	fmt.Println(err) // "timeout error: search request (timeout: 1m0s)"
type TimeoutError struct {
	baseError
	Operation string
	Duration  time.Duration
}

// NewTimeoutError creates a new TimeoutError.
func NewTimeoutError(operation string, duration time.Duration) *TimeoutError {
	return &TimeoutError{
		baseError: baseError{
			message:   operation,
			severity:  SeverityWarning,
			retryable: true,
		},
		Operation: operation,
		Duration:  duration,
	}
}

// WithCause adds a cause to the error.
func (e *TimeoutError) WithCause(cause error) *TimeoutError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *TimeoutError) Error() string {
	base := fmt.Sprintf("timeout error: %s (timeout: %s)", e.Operation, e.Duration)
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", base, e.cause)
	}
	return base
}

// Is checks if this error matches the target.
func (e *TimeoutError) Is(target error) bool {
	if _, ok := target.(*TimeoutError); ok {
		return true
	}
	if errors.Is(target, ErrTimeout) {
		return true
	}
	return e.baseError.Is(target)
}

// IsRetryable returns true if the error represents a transient condition
// that may succeed on retry.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var finderErr FinderError
	if As(err, &finderErr) {
		return finderErr.IsRetryable()
	}

	return Is(err, ErrTimeout)
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement FinderError.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}

	var finderErr FinderError
	if As(err, &finderErr) {
		return finderErr.Severity()
	}

	return SeverityError
}

// IsRejection reports whether err is a submission rejection: a no-op that
// must not be surfaced.
func IsRejection(err error) bool {
	return Is(err, ErrEmptyQuery) || Is(err, ErrSearchInFlight)
}

// Wrap wraps an error with additional context message.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
