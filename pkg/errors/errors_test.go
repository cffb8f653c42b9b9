package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ErrCodeSchemaMissingColumn, "devices file: missing column %q", "latitude")
	want := `SCHEMA_MISSING_COLUMN: devices file: missing column "latitude"`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Wrap(ErrCodeOfflineFetch, cause, "fetch offline nodes")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match its cause with errors.Is")
	}
	if got := GetCode(err); got != ErrCodeOfflineFetch {
		t.Errorf("GetCode() = %q, want %q", got, ErrCodeOfflineFetch)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"matching code", New(ErrCodeTimeout, "timed out"), ErrCodeTimeout, true},
		{"different code", New(ErrCodeTimeout, "timed out"), ErrCodeNetwork, false},
		{"plain error", fmt.Errorf("plain"), ErrCodeTimeout, false},
		{"wrapped in plain error", fmt.Errorf("outer: %w", New(ErrCodeNetwork, "inner")), ErrCodeNetwork, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is(%v, %q) = %v, want %v", tt.err, tt.code, got, tt.want)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidSeparator, "unknown separator mode: %q", "pipe")
	if got := UserMessage(err); got != `unknown separator mode: "pipe"` {
		t.Errorf("UserMessage() = %q", got)
	}

	plain := fmt.Errorf("plain error")
	if got := UserMessage(plain); got != "plain error" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}

func TestIsFatal(t *testing.T) {
	if !IsFatal(New(ErrCodeSchemaMissingColumn, "missing ID")) {
		t.Error("schema errors must be fatal")
	}
	if IsFatal(New(ErrCodeOfflineFetch, "dashboard unreachable")) {
		t.Error("offline fetch errors must not be fatal")
	}
	if IsFatal(New(ErrCodeInvalidRecord, "ragged row")) {
		t.Error("record errors must not be fatal")
	}
}
