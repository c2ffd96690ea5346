package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestPrismaError_Error(t *testing.T) {
	tests := []struct {
		name    string
		err     *PrismaError
		wantMsg string
	}{
		{
			name:    "without cause",
			err:     New(ExitGeneralError, "something went wrong"),
			wantMsg: "something went wrong",
		},
		{
			name:    "with cause",
			err:     Wrap(ExitGeneralError, "operation failed", fmt.Errorf("underlying error")),
			wantMsg: "operation failed: underlying error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestPrismaError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := Wrap(ExitGeneralError, "wrapped", cause)

	if unwrapped := err.Unwrap(); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	errNoCause := New(ExitGeneralError, "no cause")
	if unwrapped := errNoCause.Unwrap(); unwrapped != nil {
		t.Errorf("Unwrap() = %v, want nil", unwrapped)
	}
}

func TestConstructors(t *testing.T) {
	cause := fmt.Errorf("boom")

	tests := []struct {
		name     string
		err      *PrismaError
		wantCode int
		wantMsg  string
	}{
		{"config", ConfigError("failed to load settings", cause), ExitConfigError, "failed to load settings: boom"},
		{"unknown section", UnknownSection("gnss"), ExitScriptError, "unknown section: gnss"},
		{"unknown field", UnknownField("database", "engine2"), ExitScriptError, "unknown field: database.engine2"},
		{"script", ScriptError("line 3", cause), ExitScriptError, "line 3: boom"},
		{"validation single", ValidationFailed(1), ExitValidation, "1 edit rejected"},
		{"validation plural", ValidationFailed(3), ExitValidation, "3 edits rejected"},
		{"output", OutputError("write", cause), ExitOutputError, "output write failed: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %d, want %d", tt.err.Code, tt.wantCode)
			}
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{
			name:     "PrismaError",
			err:      UnknownSection("test"),
			wantCode: ExitScriptError,
		},
		{
			name:     "wrapped PrismaError",
			err:      fmt.Errorf("outer: %w", ValidationFailed(2)),
			wantCode: ExitValidation,
		},
		{
			name:     "regular error",
			err:      fmt.Errorf("some error"),
			wantCode: ExitGeneralError,
		},
		{
			name:     "nil error",
			err:      nil,
			wantCode: ExitGeneralError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.wantCode {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.wantCode)
			}
		})
	}
}

func TestErrorChaining(t *testing.T) {
	root := fmt.Errorf("root cause")
	middle := Wrap(ExitConfigError, "config error", root)
	outer := fmt.Errorf("operation failed: %w", middle)

	if !errors.Is(outer, root) {
		t.Error("errors.Is should find root cause")
	}

	var prismaErr *PrismaError
	if !As(outer, &prismaErr) {
		t.Error("As should find PrismaError")
	}

	if prismaErr.Code != ExitConfigError {
		t.Errorf("Code = %d, want %d", prismaErr.Code, ExitConfigError)
	}

	if !Is(outer, root) {
		t.Error("Is should find root cause")
	}
}
