package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "without cause",
			err:  New(ErrCodeInvalidLockfile, "a mapping is expected"),
			want: "INVALID_LOCKFILE: a mapping is expected",
		},
		{
			name: "with cause",
			err:  Wrap(ErrCodeNetwork, stderrors.New("connection refused"), "fetch %s", "lodash"),
			want: "NETWORK_ERROR: fetch lodash: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeInvalidLockfile, "bad descriptor")

	if !Is(err, ErrCodeInvalidLockfile) {
		t.Error("Is() = false, want true for matching code")
	}
	if Is(err, ErrCodeNetwork) {
		t.Error("Is() = true, want false for different code")
	}
	if Is(stderrors.New("plain"), ErrCodeInvalidLockfile) {
		t.Error("Is() = true, want false for non-coded error")
	}
}

func TestIs_Wrapped(t *testing.T) {
	inner := New(ErrCodeNotFound, "no such package")
	outer := fmt.Errorf("resolving: %w", inner)

	if !Is(outer, ErrCodeNotFound) {
		t.Error("Is() should unwrap the error chain")
	}
}

func TestUnsupportedResolutionError(t *testing.T) {
	err := &UnsupportedResolutionError{Resolution: "pkg@unknown:1.0.0"}

	if got := err.Error(); got != "unsupported resolution: pkg@unknown:1.0.0" {
		t.Errorf("Error() = %q", got)
	}
	if !IsUnsupportedResolution(err) {
		t.Error("IsUnsupportedResolution() = false, want true")
	}
	if !Is(err, ErrCodeUnsupportedResolution) {
		t.Error("Is() = false, want true for unsupported resolution code")
	}

	wrapped := fmt.Errorf("entry 3: %w", err)
	if !IsUnsupportedResolution(wrapped) {
		t.Error("IsUnsupportedResolution() should unwrap the error chain")
	}
	if IsUnsupportedResolution(stderrors.New("plain")) {
		t.Error("IsUnsupportedResolution() = true, want false for plain error")
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"coded error", New(ErrCodeTimeout, "deadline"), ErrCodeTimeout},
		{"unsupported resolution", &UnsupportedResolutionError{Resolution: "x@y:1"}, ErrCodeUnsupportedResolution},
		{"plain error", stderrors.New("plain"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.want {
				t.Errorf("GetCode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInternal, "boom")); got != "boom" {
		t.Errorf("UserMessage() = %q, want %q", got, "boom")
	}
	if got := UserMessage(stderrors.New("plain")); got != "plain" {
		t.Errorf("UserMessage() = %q, want %q", got, "plain")
	}
}
