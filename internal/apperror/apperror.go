package apperror

import (
	"errors"
	"net/http"
)

type Kind string

const (
	KindInvalidInput        Kind = "invalid_input"
	KindDuplicateCredential Kind = "duplicate_credential"
	KindInvalidCredentials  Kind = "invalid_credentials"
	KindInvalidToken        Kind = "invalid_token"
	KindExpiredToken        Kind = "expired_token"
	KindUnauthorized        Kind = "unauthorized"
	KindRateLimited         Kind = "rate_limited"
	KindStoreUnavailable    Kind = "store_unavailable"
	KindInternal            Kind = "internal"
)

// Sentinels for errors.Is. Matching is by Kind only.
var (
	ErrInvalidInput        = &Error{Kind: KindInvalidInput}
	ErrDuplicateCredential = &Error{Kind: KindDuplicateCredential}
	ErrInvalidCredentials  = &Error{Kind: KindInvalidCredentials}
	ErrInvalidToken        = &Error{Kind: KindInvalidToken}
	ErrExpiredToken        = &Error{Kind: KindExpiredToken}
	ErrUnauthorized        = &Error{Kind: KindUnauthorized}
	ErrRateLimited         = &Error{Kind: KindRateLimited}
	ErrStoreUnavailable    = &Error{Kind: KindStoreUnavailable}
)

// Error is a business error carrying the kind used to pick the HTTP status.
// Message is safe to show to clients; Err holds the internal cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func (e *Error) Status() int {
	return statusFor(e.Kind)
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func StatusOf(err error) int {
	return statusFor(KindOf(err))
}

// PublicMessage returns the text a client may see for err. Server-side
// failures never expose their cause.
func PublicMessage(err error) string {
	var appErr *Error
	if !errors.As(err, &appErr) || appErr.Status() >= http.StatusInternalServerError {
		return "internal server error"
	}
	if appErr.Message == "" {
		return string(appErr.Kind)
	}
	return appErr.Message
}

func statusFor(kind Kind) int {
	switch kind {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindDuplicateCredential:
		return http.StatusConflict
	case KindInvalidCredentials, KindInvalidToken, KindExpiredToken, KindUnauthorized:
		return http.StatusUnauthorized
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
