package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Common errors
var (
	ErrNotFound           = errors.New("not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrBadRequest         = errors.New("bad request")
	ErrRateLimited        = errors.New("rate limited")
	ErrQuotaExhausted     = errors.New("quota exhausted")
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrMalformed          = errors.New("malformed response")
)

// Kind classifies an upstream failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindTransport
	KindRateLimited
	KindQuotaExhausted
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindBadRequest
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindRateLimited:
		return "rate_limited"
	case KindQuotaExhausted:
		return "quota_exhausted"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindBadRequest:
		return "bad_request"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// Action is what a caller does when it sees an error of a given Kind.
type Action int

const (
	ActionAbort Action = iota
	ActionRetry
	ActionWait
	ActionStop
)

func (a Action) String() string {
	switch a {
	case ActionRetry:
		return "retry"
	case ActionWait:
		return "wait"
	case ActionStop:
		return "stop"
	default:
		return "abort"
	}
}

var policy = map[Kind]Action{
	KindTransport:      ActionRetry,
	KindRateLimited:    ActionWait,
	KindQuotaExhausted: ActionStop,
	KindUnauthorized:   ActionAbort,
	KindForbidden:      ActionAbort,
	KindNotFound:       ActionAbort,
	KindBadRequest:     ActionAbort,
	KindMalformed:      ActionAbort,
}

// Error represents a custom error type
type Error struct {
	Kind       Kind
	Message    string
	StatusCode int
	RetryAfter time.Duration
	Err        error
}

// Error returns the error message
func (e *Error) Error() string {
	msg := e.Message
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets a classified error match the sentinel of its kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Kind == KindUnauthorized
	case ErrForbidden:
		return e.Kind == KindForbidden
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrBadRequest:
		return e.Kind == KindBadRequest
	case ErrRateLimited:
		return e.Kind == KindRateLimited
	case ErrQuotaExhausted:
		return e.Kind == KindQuotaExhausted
	case ErrServiceUnavailable:
		return e.Kind == KindTransport
	case ErrMalformed:
		return e.Kind == KindMalformed
	}
	return false
}

// Wrap wraps an error with additional message
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Kind:    KindOf(err),
		Message: message,
		Err:     err,
	}
}

// Transport wraps a network level failure.
func Transport(err error, message string) error {
	return &Error{Kind: KindTransport, Message: message, Err: err}
}

// Malformed wraps a body that could not be decoded at all.
func Malformed(err error, message string) error {
	return &Error{Kind: KindMalformed, Message: message, Err: err}
}

// FromStatus classifies a non-2xx HTTP status.
func FromStatus(status int, message string) *Error {
	return &Error{Kind: KindForStatus(status), Message: message, StatusCode: status}
}

// KindForStatus maps an HTTP status code to a Kind.
func KindForStatus(status int) Kind {
	switch {
	case status == http.StatusTooManyRequests:
		return KindRateLimited
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status == http.StatusForbidden:
		return KindForbidden
	case status == http.StatusNotFound:
		return KindNotFound
	case status >= 500:
		return KindTransport
	case status >= 400:
		return KindBadRequest
	}
	return KindUnknown
}

// KindOf returns the Kind of the first classified error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// ActionFor returns what the policy table prescribes for err.
func ActionFor(err error) Action {
	if a, ok := policy[KindOf(err)]; ok {
		return a
	}
	return ActionAbort
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	if e := find(err, func(e *Error) bool { return e.StatusCode != 0 }); e != nil {
		return e.StatusCode
	}
	return 0
}

// RetryAfter returns how long the upstream asked us to wait, or 0.
func RetryAfter(err error) time.Duration {
	if e := find(err, func(e *Error) bool { return e.RetryAfter != 0 }); e != nil {
		return e.RetryAfter
	}
	return 0
}

// find walks err's chain, so a Wrap around a classified error still
// reports the inner status.
func find(err error, match func(*Error) bool) *Error {
	for err != nil {
		if e, ok := err.(*Error); ok && match(e) {
			return e
		}
		err = errors.Unwrap(err)
	}
	return nil
}

// IsNotFound returns true if the error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnauthorized returns true if the error is an unauthorized error
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsForbidden returns true if the error is a forbidden error
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}
