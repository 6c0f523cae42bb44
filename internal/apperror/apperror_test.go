package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusOf(t *testing.T) {
	cases := map[Kind]int{
		KindInvalidInput:        http.StatusBadRequest,
		KindDuplicateCredential: http.StatusConflict,
		KindInvalidCredentials:  http.StatusUnauthorized,
		KindInvalidToken:        http.StatusUnauthorized,
		KindExpiredToken:        http.StatusUnauthorized,
		KindUnauthorized:        http.StatusUnauthorized,
		KindRateLimited:         http.StatusTooManyRequests,
		KindStoreUnavailable:    http.StatusInternalServerError,
	}

	for kind, want := range cases {
		if got := StatusOf(New(kind, "x")); got != want {
			t.Errorf("kind %s: expected status %d, got %d", kind, want, got)
		}
	}
}

func TestStatusOf_PlainError(t *testing.T) {
	if got := StatusOf(errors.New("boom")); got != http.StatusInternalServerError {
		t.Errorf("expected 500 for plain error, got %d", got)
	}
}

func TestIs_MatchesKindThroughWrapping(t *testing.T) {
	err := fmt.Errorf("register: %w", New(KindDuplicateCredential, "email already registered"))

	if !errors.Is(err, ErrDuplicateCredential) {
		t.Error("expected wrapped error to match ErrDuplicateCredential")
	}
	if errors.Is(err, ErrInvalidInput) {
		t.Error("expected wrapped error not to match ErrInvalidInput")
	}
}

func TestPublicMessage_HidesInternalCause(t *testing.T) {
	err := Wrap(KindStoreUnavailable, "failed to find user", errors.New("dial tcp 10.0.0.3:5432: timeout"))

	if got := PublicMessage(err); got != "internal server error" {
		t.Errorf("expected generic message, got %q", got)
	}
	if got := PublicMessage(errors.New("raw")); got != "internal server error" {
		t.Errorf("expected generic message for raw error, got %q", got)
	}
}

func TestPublicMessage_ClientError(t *testing.T) {
	err := New(KindInvalidCredentials, "invalid email or password")

	if got := PublicMessage(err); got != "invalid email or password" {
		t.Errorf("expected client message, got %q", got)
	}
}

func TestError_IncludesCause(t *testing.T) {
	cause := errors.New("cause")
	err := Wrap(KindStoreUnavailable, "failed", cause)

	if err.Error() != "failed: cause" {
		t.Errorf("unexpected error string: %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("expected Unwrap to expose cause")
	}
}
