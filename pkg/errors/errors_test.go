package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
)

func TestErrorString(t *testing.T) {
	plain := New(CodeValidation, "checkout before or equal to checkin", http.StatusUnprocessableEntity)
	if got := plain.Error(); got != "VALIDATION_ERROR: checkout before or equal to checkin" {
		t.Errorf("unexpected error string: %s", got)
	}

	cause := errors.New("connection refused")
	wrapped := Wrap(cause, CodeStore, "Failed to save booking", http.StatusBadGateway)
	if !strings.Contains(wrapped.Error(), "caused by: connection refused") {
		t.Errorf("expected cause in error string, got: %s", wrapped.Error())
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Store("Failed to save booking", cause)
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to see through AppError")
	}
}

func TestHelperStatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantCode   string
		wantStatus int
	}{
		{"not found", NotFound("booking"), CodeNotFound, http.StatusNotFound},
		{"validation", Validation("empty guest name", nil), CodeValidation, http.StatusUnprocessableEntity},
		{"invalid input", InvalidInput("missing id"), CodeInvalidInput, http.StatusBadRequest},
		{"conflict", Conflict("dates conflict", nil), CodeConflict, http.StatusConflict},
		{"store", Store("save failed", nil), CodeStore, http.StatusBadGateway},
		{"load", Load("load failed", nil), CodeLoad, http.StatusBadGateway},
		{"internal", Internal("boom", nil), CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", tt.err.Code, tt.wantCode)
			}
			if tt.err.StatusCode() != tt.wantStatus {
				t.Errorf("status = %d, want %d", tt.err.StatusCode(), tt.wantStatus)
			}
		})
	}
}

func TestNotFoundWithID(t *testing.T) {
	err := NotFoundWithID("booking", "abc-123")
	if err.Details["id"] != "abc-123" {
		t.Errorf("expected id detail, got %v", err.Details)
	}
	if err.Message != "booking not found" {
		t.Errorf("unexpected message: %s", err.Message)
	}
}

func TestToJSONOmitsInternals(t *testing.T) {
	err := Store("Failed to save booking", errors.New("secret dsn in here"))
	err.WithDetails(map[string]any{"bookingId": "abc"})

	var decoded map[string]any
	if jsonErr := json.Unmarshal(err.ToJSON(), &decoded); jsonErr != nil {
		t.Fatalf("invalid JSON: %v", jsonErr)
	}

	if decoded["code"] != CodeStore {
		t.Errorf("unexpected code: %v", decoded["code"])
	}
	if _, exposed := decoded["err"]; exposed {
		t.Error("wrapped cause must not be serialized")
	}
	if strings.Contains(string(err.ToJSON()), "secret dsn") {
		t.Error("wrapped cause leaked into JSON")
	}
	details, _ := decoded["details"].(map[string]any)
	if details["bookingId"] != "abc" {
		t.Errorf("expected details preserved, got %v", decoded["details"])
	}
}

func TestAsAppError(t *testing.T) {
	app := Conflict("dates conflict", nil)
	if got := AsAppError(app); got != app {
		t.Error("expected passthrough for AppError values")
	}

	plain := errors.New("boom")
	got := AsAppError(plain)
	if got.Code != CodeInternal {
		t.Errorf("expected INTERNAL_ERROR wrapper, got %s", got.Code)
	}
	if !errors.Is(got, plain) {
		t.Error("expected the original error to be wrapped")
	}

	if !IsAppError(app) || IsAppError(plain) {
		t.Error("IsAppError misclassified")
	}
}
