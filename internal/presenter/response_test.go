package presenter

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Varun5711/authcore/internal/apperror"
)

func TestAppError_ClientError(t *testing.T) {
	rec := httptest.NewRecorder()

	AppError(rec, apperror.New(apperror.KindDuplicateCredential, "email already registered"))

	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON content type, got %s", ct)
	}

	var body map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["success"] != false || body["error"] != "email already registered" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestAppError_InternalErrorIsGeneric(t *testing.T) {
	rec := httptest.NewRecorder()

	AppError(rec, apperror.Wrap(apperror.KindStoreUnavailable, "failed to get user", errors.New("pq: password authentication failed for user auth")))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "password authentication") {
		t.Errorf("internal detail leaked: %s", rec.Body.String())
	}
}
