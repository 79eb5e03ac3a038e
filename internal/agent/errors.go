package agent

import (
	"fmt"

	"github.com/jdelaney/contentpipe-go/internal/schema"
)

// AgentError is a terminal failure of one agent run, after retries.
type AgentError struct {
	Role schema.Role
	Err  error
}

func (e *AgentError) Error() string {
	return fmt.Sprintf("agent %s failed: %v", e.Role, e.Err)
}

func (e *AgentError) Unwrap() error {
	return e.Err
}
