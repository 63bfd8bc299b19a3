package app

import (
	"errors"
	"testing"
)

func TestOperationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *OperationError
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "op only",
			err:      &OperationError{Op: "cache"},
			expected: "cache",
		},
		{
			name:     "op and target",
			err:      &OperationError{Op: "open", Target: "/books/a.txt"},
			expected: "open /books/a.txt",
		},
		{
			name:     "full error",
			err:      &OperationError{Op: "open", Target: "/books/a.txt", Err: errors.New("io error")},
			expected: "open /books/a.txt: io error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.err.Error()
			if result != tt.expected {
				t.Errorf("Error() = '%s', expected '%s'", result, tt.expected)
			}
		})
	}
}

func TestOperationError_Unwrap(t *testing.T) {
	base := errors.New("base")
	err := NewOperationError("save", "/cache/file.json", base)

	if !errors.Is(err, base) {
		t.Error("expected errors.Is to find the wrapped error")
	}

	var nilErr *OperationError
	if nilErr.Unwrap() != nil {
		t.Error("expected nil Unwrap on nil receiver")
	}
}

func TestInitError(t *testing.T) {
	base := errors.New("no tty")
	err := &InitError{Component: "backend", Err: base}

	if err.Error() != "init backend: no tty" {
		t.Errorf("unexpected message '%s'", err.Error())
	}
	if !errors.Is(err, base) {
		t.Error("expected errors.Is to find the wrapped error")
	}
}
