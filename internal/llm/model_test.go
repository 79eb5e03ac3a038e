package llm

import (
	"errors"
	"fmt"
	"testing"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "read tcp: i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		transient bool
	}{
		{"nil error", nil, false},
		{"rate limited", errors.New("API returned 429 Too Many Requests"), true},
		{"rate limit text", errors.New("rate limit exceeded"), true},
		{"overloaded", errors.New("overloaded_error: try again later"), true},
		{"service unavailable", errors.New("HTTP 503 service unavailable"), true},
		{"connection refused", errors.New("dial tcp 127.0.0.1:11434: connection refused"), true},
		{"net timeout", timeoutErr{}, true},
		{"wrapped transient", fmt.Errorf("generate: %w", errors.New("connection reset by peer")), true},
		{"sentinel", fmt.Errorf("generate: %w", ErrTransient), true},
		{"invalid api key", errors.New("invalid api key"), false},
		{"bad request", errors.New("HTTP 400: max_tokens required"), false},
		{"quota exhausted", errors.New("insufficient credit balance"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsTransient(tt.err)
			if got != tt.transient {
				t.Errorf("IsTransient(%v) = %v, want %v", tt.err, got, tt.transient)
			}
		})
	}
}
