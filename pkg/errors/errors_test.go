package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestEngineError_Error(t *testing.T) {
	tests := []struct {
		name    string
		err     *EngineError
		wantMsg string
	}{
		{
			name: "error without wrapped error",
			err: &EngineError{
				Code:    ErrCodeDefinitionNotFound,
				Message: "definition not found: test-def",
				Err:     nil,
			},
			wantMsg: "DEFINITION_NOT_FOUND: definition not found: test-def",
		},
		{
			name: "error with wrapped error",
			err: &EngineError{
				Code:    ErrCodeStoreError,
				Message: "store error during upsert",
				Err:     errors.New("connection timeout"),
			},
			wantMsg: "STORE_ERROR: store error during upsert: connection timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.wantMsg {
				t.Errorf("EngineError.Error() = %v, want %v", got, tt.wantMsg)
			}
		})
	}
}

func TestEngineError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	err := &EngineError{
		Code:    ErrCodeStoreError,
		Message: "test error",
		Err:     originalErr,
	}

	if unwrapped := err.Unwrap(); unwrapped != originalErr {
		t.Errorf("Unwrap() returned %v, want %v", unwrapped, originalErr)
	}

	if !errors.Is(err, originalErr) {
		t.Error("errors.Is should match the wrapped error")
	}
}

func TestErrDefinitionNotFound(t *testing.T) {
	err := ErrDefinitionNotFound("def-123")

	if err.Code != ErrCodeDefinitionNotFound {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeDefinitionNotFound)
	}
	if !strings.Contains(err.Message, "def-123") {
		t.Errorf("Message should contain definition ID, got %v", err.Message)
	}
}

func TestErrProgressNotFound(t *testing.T) {
	err := ErrProgressNotFound("player-1", "def-123")

	if err.Code != ErrCodeProgressNotFound {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeProgressNotFound)
	}
	if !strings.Contains(err.Message, "player-1") || !strings.Contains(err.Message, "def-123") {
		t.Errorf("Message should contain player and definition IDs, got %v", err.Message)
	}
}

func TestErrAlreadyClaimed(t *testing.T) {
	err := ErrAlreadyClaimed("def-123")

	if err.Code != ErrCodeAlreadyClaimed {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeAlreadyClaimed)
	}
	if !strings.Contains(err.Message, "def-123") {
		t.Errorf("Message should contain definition ID, got %v", err.Message)
	}
}

func TestErrNotCompleted(t *testing.T) {
	err := ErrNotCompleted("def-123")

	if err.Code != ErrCodeNotCompleted {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeNotCompleted)
	}
}

func TestErrStoreError(t *testing.T) {
	cause := errors.New("deadlock detected")
	err := ErrStoreError("upsert progress", cause)

	if err.Code != ErrCodeStoreError {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeStoreError)
	}
	if !strings.Contains(err.Message, "upsert progress") {
		t.Errorf("Message should contain operation, got %v", err.Message)
	}
	if !errors.Is(err, cause) {
		t.Error("wrapped cause should be matchable with errors.Is")
	}
}

func TestErrRewardGrantFailed(t *testing.T) {
	cause := errors.New("wallet unavailable")
	err := ErrRewardGrantFailed("points", "def-123", cause)

	if err.Code != ErrCodeRewardGrantFailed {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeRewardGrantFailed)
	}
	if !strings.Contains(err.Message, "points") || !strings.Contains(err.Message, "def-123") {
		t.Errorf("Message should contain reward kind and definition ID, got %v", err.Message)
	}
}

func TestErrBonusTemplateNotFound(t *testing.T) {
	err := ErrBonusTemplateNotFound("tpl-9")

	if err.Code != ErrCodeBonusTemplateNotFound {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeBonusTemplateNotFound)
	}
	if !strings.Contains(err.Message, "tpl-9") {
		t.Errorf("Message should contain template ID, got %v", err.Message)
	}
}

func TestErrConfigInvalid(t *testing.T) {
	err := ErrConfigInvalid("duplicate definition ID")

	if err.Code != ErrCodeConfigInvalid {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeConfigInvalid)
	}
	if !strings.Contains(err.Message, "duplicate definition ID") {
		t.Errorf("Message should contain reason, got %v", err.Message)
	}
}
