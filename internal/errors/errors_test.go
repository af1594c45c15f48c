package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "error without cause",
			err: &AppError{
				Code:    ErrCodeUnauthorized,
				Message: "token expired",
			},
			want: "token expired",
		},
		{
			name: "error with cause",
			err: &AppError{
				Code:    ErrCodeNetwork,
				Message: "request failed",
				Cause:   errors.New("connection refused"),
			},
			want: "request failed: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("AppError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Network(cause)

	if unwrapped := err.Unwrap(); !errors.Is(unwrapped, cause) {
		t.Errorf("AppError.Unwrap() = %v, want %v", unwrapped, cause)
	}
}

func TestNetwork_NilCause(t *testing.T) {
	if err := Network(nil); err != nil {
		t.Errorf("Network(nil) = %v, want nil", err)
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantCode   ErrorCode
		wantStatus int
	}{
		{"not authenticated", NotAuthenticated(), ErrCodeNotAuthenticated, 0},
		{"unauthorized", Unauthorized(401, "nope"), ErrCodeUnauthorized, 401},
		{"auth failed", AuthFailed(403, "bad password"), ErrCodeAuthFailed, 403},
		{"registration failed", RegistrationFailed(409, "taken"), ErrCodeRegistrationFailed, 409},
		{"server", Server(500, "boom"), ErrCodeServer, 500},
		{"validation", Validation("name is required"), ErrCodeValidation, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %v, want %v", tt.err.Code, tt.wantCode)
			}
			if tt.err.Status != tt.wantStatus {
				t.Errorf("Status = %v, want %v", tt.err.Status, tt.wantStatus)
			}
		})
	}
}

func TestIsHelpers_ThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("list departments: %w", Unauthorized(400, "token expired"))

	if !IsUnauthorized(wrapped) {
		t.Error("IsUnauthorized() = false, want true")
	}
	if IsServer(wrapped) {
		t.Error("IsServer() = true, want false")
	}
	if !RequiresReauth(wrapped) {
		t.Error("RequiresReauth() = false, want true")
	}
	if got := GetStatus(wrapped); got != 400 {
		t.Errorf("GetStatus() = %d, want 400", got)
	}
	if got := Message(wrapped); got != "token expired" {
		t.Errorf("Message() = %q, want %q", got, "token expired")
	}
}

func TestRequiresReauth(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"not authenticated", NotAuthenticated(), true},
		{"unauthorized", Unauthorized(401, "x"), true},
		{"server", Server(500, "x"), false},
		{"plain", errors.New("x"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RequiresReauth(tt.err); got != tt.want {
				t.Errorf("RequiresReauth() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode_NonAppError(t *testing.T) {
	if code := GetCode(errors.New("plain")); code != "" {
		t.Errorf("GetCode() = %q, want empty", code)
	}
	if field := GetField(errors.New("plain")); field != "" {
		t.Errorf("GetField() = %q, want empty", field)
	}
}

func TestValidationField(t *testing.T) {
	err := ValidationField("name", "name is required")
	if !IsValidation(err) {
		t.Fatal("IsValidation() = false, want true")
	}
	if GetField(err) != "name" {
		t.Errorf("GetField() = %q, want %q", GetField(err), "name")
	}
}

func TestMessage_PlainError(t *testing.T) {
	if got := Message(errors.New("plain")); got != "plain" {
		t.Errorf("Message() = %q, want %q", got, "plain")
	}
	if got := Message(nil); got != "" {
		t.Errorf("Message(nil) = %q, want empty", got)
	}
}

func TestWrapf(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrapf(cause, ErrCodeInternal, "save token for %s", "default")
	if err.Message != "save token for default" {
		t.Errorf("Message = %q", err.Message)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
	if Wrap(nil, ErrCodeInternal, "x") != nil {
		t.Error("Wrap(nil) should return nil")
	}
}
