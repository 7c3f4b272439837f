package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	plain := New(ErrCodeInvalidGraph, "graph %s is empty", "g.json")
	if got, want := plain.Error(), "INVALID_GRAPH: graph g.json is empty"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	cause := stderrors.New("connection refused")
	wrapped := Wrap(ErrCodeNetwork, cause, "fetch links for %s", "a")
	if got, want := wrapped.Error(), "NETWORK_ERROR: fetch links for a: connection refused"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !stderrors.Is(wrapped, cause) {
		t.Error("wrapped error should unwrap to its cause")
	}
}

func TestIsAndGetCode(t *testing.T) {
	err := New(ErrCodeNodeNotFound, "node %q", "x")
	deep := fmt.Errorf("outer: %w", err)

	if !Is(deep, ErrCodeNodeNotFound) {
		t.Error("Is should match through wrapping")
	}
	if Is(deep, ErrCodeNetwork) {
		t.Error("Is should not match a different code")
	}
	if got := GetCode(deep); got != ErrCodeNodeNotFound {
		t.Errorf("GetCode = %q, want %q", got, ErrCodeNodeNotFound)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode on plain error = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeTimeout, "search timed out")); got != "search timed out" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(stderrors.New("plain failure")); got != "plain failure" {
		t.Errorf("UserMessage on plain error = %q", got)
	}
}
