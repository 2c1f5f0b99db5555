package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidLayout, "bad token: %s", "0B")

	if err.Code != ErrCodeInvalidLayout {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidLayout)
	}

	if err.Message != "bad token: 0B" {
		t.Errorf("Message = %v, want %v", err.Message, "bad token: 0B")
	}

	expected := "INVALID_LAYOUT: bad token: 0B"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("permission denied")
	err := Wrap(ErrCodeExportWrite, cause, "write out.png")

	if err.Code != ErrCodeExportWrite {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeExportWrite)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeImageLoad, "test"),
			code:     ErrCodeImageLoad,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeImageLoad, "test"),
			code:     ErrCodeExportWrite,
			expected: false,
		},
		{
			name:     "outer code wins",
			err:      Wrap(ErrCodeExportWrite, New(ErrCodeInvalidPath, "inner"), "outer"),
			code:     ErrCodeExportWrite,
			expected: true,
		},
		{
			name:     "fmt wrapped",
			err:      fmt.Errorf("rebuild: %w", New(ErrCodeInvalidLayout, "inner")),
			code:     ErrCodeInvalidLayout,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeEmptyInput, "no photos")); got != ErrCodeEmptyInput {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeEmptyInput)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"structured", New(ErrCodeInvalidLayout, "token %q is empty", ""), `token "" is empty`},
		{"structured with cause", Wrap(ErrCodeImageLoad, errors.New("eof"), "decode a.jpg"), "decode a.jpg: eof"},
		{"plain", errors.New("boom"), "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRecoverable(t *testing.T) {
	tests := []struct {
		code Code
		want bool
	}{
		{ErrCodeImageLoad, true},
		{ErrCodeSwapTargetNotFound, true},
		{ErrCodeInvalidLayout, true},
		{ErrCodeExportWrite, true},
		{ErrCodeEmptyInput, false},
		{ErrCodeInternal, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := Recoverable(New(tt.code, "x")); got != tt.want {
				t.Errorf("Recoverable(%s) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}
