package apperr

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"
)

// Kind identifies one of the closed set of failure classes. Every error that
// reaches the response boundary carries exactly one Kind; no other kinds are
// ever introduced. Dispatch on Kind, never on concrete error types.
type Kind string

const (
	KindAuthenticationFailed   Kind = "AUTHENTICATION_FAILED"
	KindAccessDenied           Kind = "ACCESS_DENIED"
	KindValidationFailed       Kind = "VALIDATION_FAILED"
	KindNotFound               Kind = "NOT_FOUND"
	KindConflict               Kind = "CONFLICT"
	KindRateLimited            Kind = "RATE_LIMITED"
	KindDatabaseFailure        Kind = "DATABASE_FAILURE"
	KindExternalServiceFailure Kind = "EXTERNAL_SERVICE_FAILURE"
	KindConfigurationFailure   Kind = "CONFIGURATION_FAILURE"
	KindUnclassified           Kind = "UNCLASSIFIED"
)

// kindDefaults fixes the status code and operational flag for each kind.
// Operational errors are expected, client-caused faults whose message is safe
// to show; non-operational errors are programmer or infrastructure defects.
//
// DatabaseFailure is deliberately operational despite mapping to 500: the
// source system reported generic storage faults that way, and the behavior is
// preserved as observed rather than "fixed".
var kindDefaults = map[Kind]struct {
	status      int
	operational bool
}{
	KindAuthenticationFailed:   {http.StatusUnauthorized, true},
	KindAccessDenied:           {http.StatusForbidden, true},
	KindValidationFailed:       {http.StatusBadRequest, true},
	KindNotFound:               {http.StatusNotFound, true},
	KindConflict:               {http.StatusConflict, true},
	KindRateLimited:            {http.StatusTooManyRequests, true},
	KindDatabaseFailure:        {http.StatusInternalServerError, true},
	KindExternalServiceFailure: {http.StatusBadGateway, true},
	KindConfigurationFailure:   {http.StatusInternalServerError, false},
	KindUnclassified:           {http.StatusInternalServerError, false},
}

// Error is the single application error representation. It is created at the
// point of failure, enriched with request context by the terminal handler,
// consumed exactly once, then serialized and discarded.
type Error struct {
	Kind        Kind
	Message     string
	StatusCode  int
	Operational bool
	Timestamp   time.Time
	Path        string
	Method      string
	Details     map[string][]string
	Stack       string

	cause error
}

// New creates an Error of the given kind with its default status code and
// operational flag. The stack is captured at the point of failure so defects
// can be traced in non-production deployments.
func New(kind Kind, message string) *Error {
	defaults, ok := kindDefaults[kind]
	if !ok {
		defaults = kindDefaults[KindUnclassified]
		kind = KindUnclassified
	}

	return &Error{
		Kind:        kind,
		Message:     message,
		StatusCode:  defaults.status,
		Operational: defaults.operational,
		Timestamp:   time.Now().UTC(),
		Stack:       string(debug.Stack()),
	}
}

// Wrap creates an Error of the given kind that records cause for logging and
// errors.Is/As matching. The cause never reaches a client.
func Wrap(kind Kind, message string, cause error) *Error {
	e := New(kind, message)
	e.cause = cause
	return e
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the wrapped cause to support errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.cause
}

// WithDetails attaches per-field violation messages. Only ValidationFailed
// errors render them.
func (e *Error) WithDetails(details map[string][]string) *Error {
	e.Details = details
	return e
}

// WithRequest records the request path and method on the error if absent.
func (e *Error) WithRequest(path, method string) *Error {
	if e.Path == "" {
		e.Path = path
	}
	if e.Method == "" {
		e.Method = method
	}
	return e
}
