package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("domain", "not a host", "expected a valid host name")
	if !errors.Is(err, ErrInvalidInput) {
		t.Error("ValidationError should match ErrInvalidInput")
	}
	want := "validation failed for domain: expected a valid host name"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestValidationErrorNoField(t *testing.T) {
	err := &ValidationError{Message: "bad input"}
	if err.Error() != "validation failed: bad input" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestAPIErrorStatusMapping(t *testing.T) {
	tests := []struct {
		status int
		target error
		match  bool
	}{
		{429, ErrRateLimited, true},
		{500, ErrServiceUnavailable, true},
		{503, ErrServiceUnavailable, true},
		{404, ErrRateLimited, false},
		{404, ErrServiceUnavailable, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status_%d", tt.status), func(t *testing.T) {
			err := NewAPIError("osmt", "http://osmt.example.com/api/skills", tt.status, "boom")
			if got := errors.Is(err, tt.target); got != tt.match {
				t.Errorf("errors.Is(%d, %v) = %v, want %v", tt.status, tt.target, got, tt.match)
			}
		})
	}
}

func TestAPIErrorMessageIncludesEndpoint(t *testing.T) {
	err := NewAPIError("assistant", "https://sandbox.credentialengine.org/assistant/search/ctdl", 401, "unauthorized")
	msg := err.Error()
	if want := "https://sandbox.credentialengine.org/assistant/search/ctdl"; !strings.Contains(msg, want) {
		t.Errorf("error message %q should contain endpoint %q", msg, want)
	}
}

func TestAPIErrorUnwrap(t *testing.T) {
	inner := errors.New("connection refused")
	err := &APIError{Service: "registry", Endpoint: "https://example.com", Message: "request failed", Err: inner}
	if !errors.Is(err, inner) {
		t.Error("APIError should unwrap to the inner error")
	}
}

func TestWrapResourceNil(t *testing.T) {
	if WrapResource("fetch", "skill", "abc", nil) != nil {
		t.Error("WrapResource(nil) should return nil")
	}
}

func TestWrapResource(t *testing.T) {
	inner := errors.New("boom")
	err := WrapResource("fetch", "skill", "abc", inner)
	if !errors.Is(err, inner) {
		t.Error("wrapped error should unwrap to the inner error")
	}
	if !strings.Contains(err.Error(), "abc") {
		t.Errorf("error message %q should contain the resource id", err.Error())
	}
}
